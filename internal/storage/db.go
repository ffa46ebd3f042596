package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var ErrNotFound = errors.New("not found")

const schema = `
CREATE TABLE IF NOT EXISTS journal_entries (
	id        BIGSERIAL PRIMARY KEY,
	text      TEXT NOT NULL,
	mood      VARCHAR(20) NOT NULL,
	neg       DOUBLE PRECISION NOT NULL,
	neu       DOUBLE PRECISION NOT NULL,
	pos       DOUBLE PRECISION NOT NULL,
	compound  DOUBLE PRECISION NOT NULL,
	timestamp TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_journal_entries_timestamp ON journal_entries (timestamp);

CREATE TABLE IF NOT EXISTS prompts (
	id        BIGSERIAL PRIMARY KEY,
	text      TEXT NOT NULL,
	mood      TEXT NOT NULL,
	timestamp TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_prompts_timestamp ON prompts (timestamp);

CREATE TABLE IF NOT EXISTS prompt_feedback (
	id        BIGSERIAL PRIMARY KEY,
	prompt_id BIGINT NOT NULL,
	feedback  BOOLEAN NOT NULL,
	timestamp TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// Connect opens the pool, checks the connection and creates missing tables.
func Connect(ctx context.Context, dsn string, logger *zap.Logger) (*pgxpool.Pool, error) {
	op := "storage.Connect"

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: unable to create pool: %w", op, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: unable to ping db: %w", op, err)
	}

	if err := Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("connected to db successfully")
	return pool, nil
}

func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	op := "storage.Migrate"

	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("%s: failed to create schema: %w", op, err)
	}
	return nil
}
