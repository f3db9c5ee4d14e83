package migrations

// The slot key column type differs by driver: MySQL cannot index an unbounded
// TEXT primary key, so it gets a VARCHAR.

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreatePromptSlots, downCreatePromptSlots)
}

func upCreatePromptSlots(ctx context.Context, tx *sql.Tx) error {
	var ddl string
	switch dialect {
	case "postgres":
		ddl = `CREATE TABLE IF NOT EXISTS prompt_slots (
    slot_key   TEXT PRIMARY KEY,
    prompt     TEXT NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
)`
	case "mysql":
		ddl = `CREATE TABLE IF NOT EXISTS prompt_slots (
    slot_key   VARCHAR(191) PRIMARY KEY,
    prompt     TEXT NOT NULL,
    updated_at TIMESTAMP(6) NOT NULL
)`
	default: // sqlite3
		ddl = `CREATE TABLE IF NOT EXISTS prompt_slots (
    slot_key   TEXT PRIMARY KEY,
    prompt     TEXT NOT NULL,
    updated_at DATETIME NOT NULL
)`
	}
	if _, err := tx.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create prompt_slots table: %w", err)
	}
	return nil
}

func downCreatePromptSlots(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS prompt_slots`)
	return err
}
