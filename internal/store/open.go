package store

import (
	"fmt"

	"github.com/joestump/ambient-prompt/internal/config"
	"github.com/joestump/ambient-prompt/internal/db"
)

// Open builds the backend selected by store.driver. The returned close func
// releases any database handle and is safe to call for every driver.
func Open(cfg *config.Config) (Backend, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Store.Driver {
	case "", "file":
		b, err := NewFileBackend(cfg.Store.Dir)
		if err != nil {
			return nil, nil, err
		}
		return b, noop, nil
	case "memory":
		return NewMemoryBackend(), noop, nil
	case "sqlite3", "mysql", "postgres":
		database, err := db.New(cfg.Store.Driver, cfg.Store.DSN)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(database, cfg.Store.Driver); err != nil {
			_ = database.Close()
			return nil, nil, err
		}
		return NewSQLBackend(database), database.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
}
