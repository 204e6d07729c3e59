// Package pgx stores the web edge's cookie-to-token mapping in Postgres.
package pgx

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/infopadd/infopadd-go/core"
)

// Schema is the table the adapter needs. Hosts with a migration pipeline
// can fold it in there instead of calling EnsureSchema.
const Schema = `
CREATE TABLE IF NOT EXISTS edge_sessions (
    id         TEXT PRIMARY KEY,
    token      TEXT NOT NULL,
    expires_at TIMESTAMPTZ NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS edge_sessions_expires_at_idx ON edge_sessions (expires_at);
`

type Adapter struct {
	pool *pgxpool.Pool
}

var _ core.EdgeSessionStorage = (*Adapter)(nil)

func New(pool *pgxpool.Pool) *Adapter {
	return &Adapter{pool: pool}
}

// EnsureSchema creates the edge_sessions table when it does not exist.
func (a *Adapter) EnsureSchema(ctx context.Context) error {
	if _, err := a.pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to ensure edge_sessions schema: %w", err)
	}
	return nil
}

// Put stores or refreshes the mapping for id.
func (a *Adapter) Put(ctx context.Context, id, token string, expiresAt time.Time) error {
	_, err := a.pool.Exec(ctx,
		`INSERT INTO edge_sessions (id, token, expires_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO UPDATE SET token = $2, expires_at = $3`,
		id, token, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to store edge session: %w", err)
	}
	return nil
}

// Get returns the token behind id. An expired or unknown id is
// ErrEdgeSessionMissing.
func (a *Adapter) Get(ctx context.Context, id string) (string, error) {
	var token string
	err := a.pool.QueryRow(ctx,
		`SELECT token FROM edge_sessions
		 WHERE id = $1 AND expires_at > now()`,
		id,
	).Scan(&token)

	if errors.Is(err, pgx.ErrNoRows) {
		return "", core.ErrEdgeSessionMissing
	}
	if err != nil {
		return "", fmt.Errorf("failed to load edge session: %w", err)
	}
	return token, nil
}

// Delete removes the mapping for id. A missing row is not an error.
func (a *Adapter) Delete(ctx context.Context, id string) error {
	_, err := a.pool.Exec(ctx,
		`DELETE FROM edge_sessions WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete edge session: %w", err)
	}
	return nil
}

// DeleteExpired removes dead mappings and reports how many went. Meant
// for a periodic sweep.
func (a *Adapter) DeleteExpired(ctx context.Context) (int, error) {
	tag, err := a.pool.Exec(ctx,
		`DELETE FROM edge_sessions WHERE expires_at <= now()`,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to sweep edge sessions: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
