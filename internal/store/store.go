// Package store owns all Postgres access. It is the single authority for
// reservation existence and status; slot uniqueness is enforced by the
// database, not by application-level checks.
package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	pool *pgxpool.Pool
}

// New wraps an explicitly constructed pool. The handle is passed in rather
// than held as package state so tests and multiple instances can each bring
// their own.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}
