package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

// SQLBackend stores values in the prompt_slots table.
type SQLBackend struct {
	db *sqlx.DB
}

func NewSQLBackend(db *sqlx.DB) *SQLBackend {
	return &SQLBackend{db: db}
}

// q rebinds ? placeholders to the driver's native format ($1,$2,... for PostgreSQL).
func (s *SQLBackend) q(query string) string { return s.db.Rebind(query) }

func (s *SQLBackend) Get(ctx context.Context, key string) (string, error) {
	var prompt string
	err := s.db.GetContext(ctx, &prompt, s.q(`SELECT prompt FROM prompt_slots WHERE slot_key = ?`), key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return prompt, nil
}

// Put replaces the row in one transaction so the slot never holds two values.
func (s *SQLBackend) Put(ctx context.Context, key, value string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, s.q(`DELETE FROM prompt_slots WHERE slot_key = ?`), key); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, s.q(`
		INSERT INTO prompt_slots (slot_key, prompt, updated_at) VALUES (?, ?, ?)
	`), key, value, time.Now().UTC()); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLBackend) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, s.q(`DELETE FROM prompt_slots WHERE slot_key = ?`), key)
	return err
}
