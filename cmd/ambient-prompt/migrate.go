package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/joestump/ambient-prompt/internal/config"
	"github.com/joestump/ambient-prompt/internal/db"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run prompt store migrations (sqlite3, mysql, postgres drivers)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			switch cfg.Store.Driver {
			case "sqlite3", "mysql", "postgres":
			default:
				return fmt.Errorf("store driver %q has no migrations", cfg.Store.Driver)
			}

			database, err := db.New(cfg.Store.Driver, cfg.Store.DSN)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			if err := db.Migrate(database, cfg.Store.Driver); err != nil {
				return err
			}

			log.Println("migrations complete")
			return nil
		},
	}
}
