package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// Open connects to Postgres using the given URL and verifies the connection.
func Open(ctx context.Context, dbURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// EnsureSchema creates the tables and constraints the application relies on.
// The CHECK constraints on events and the UNIQUE index on registrations are
// load-bearing: they are the store-level arbiters behind the capacity ledger
// and the one-registration-per-user rule.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	const schema = `
	CREATE EXTENSION IF NOT EXISTS pgcrypto;

	CREATE TABLE IF NOT EXISTS users (
		id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		username      TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		email         TEXT NOT NULL,
		role          TEXT NOT NULL DEFAULT 'participant',
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS events (
		id                      UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		title                   TEXT NOT NULL,
		location                TEXT NOT NULL,
		date                    TIMESTAMPTZ NOT NULL,
		max_participants        INT NOT NULL CHECK (max_participants > 0),
		registered_participants INT NOT NULL DEFAULT 0
			CHECK (registered_participants >= 0 AND registered_participants <= max_participants)
	);

	CREATE TABLE IF NOT EXISTS registrations (
		id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id    UUID NOT NULL REFERENCES users(id),
		event_id   UUID NOT NULL REFERENCES events(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (user_id, event_id)
	);
	`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
