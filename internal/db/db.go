// Package db provides PostgreSQL-backed session storage. It implements
// session.Store so the server can survive restarts; the in-memory store
// remains the default when no DATABASE_URL is configured.
package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/cv-builder/internal/session"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// EnsureSchema creates the sessions table if it does not exist
func (db *DB) EnsureSchema(ctx context.Context) error {
	_, err := db.pool.Exec(ctx,
		`CREATE TABLE IF NOT EXISTS sessions (
			id UUID PRIMARY KEY,
			stage TEXT NOT NULL,
			state JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("failed to create sessions table: %w", err)
	}
	return nil
}

// Load retrieves a session state by id
func (db *DB) Load(ctx context.Context, id uuid.UUID) (*session.State, error) {
	var stateJSON []byte
	err := db.pool.QueryRow(ctx,
		`SELECT state FROM sessions WHERE id = $1`,
		id,
	).Scan(&stateJSON)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &session.NotFoundError{ID: id}
		}
		return nil, fmt.Errorf("failed to load session %s: %w", id, err)
	}

	var state session.State
	if err := json.Unmarshal(stateJSON, &state); err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", id, err)
	}
	return &state, nil
}

// Save upserts a session state
func (db *DB) Save(ctx context.Context, state *session.State) error {
	stateJSON, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode session %s: %w", state.ID, err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO sessions (id, stage, state, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO UPDATE SET stage = $2, state = $3, updated_at = $5`,
		state.ID, string(state.Stage), stateJSON, state.CreatedAt, state.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save session %s: %w", state.ID, err)
	}
	return nil
}

// Delete removes a session. Deleting an unknown id is not an error.
func (db *DB) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := db.pool.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session %s: %w", id, err)
	}
	return nil
}

// DeleteExpired removes sessions not updated within the TTL and returns how
// many were removed.
func (db *DB) DeleteExpired(ctx context.Context, ttl time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-ttl)
	tag, err := db.pool.Exec(ctx, `DELETE FROM sessions WHERE updated_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}
