package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNoDatabase is returned by every call on a Querier built without a pool.
var ErrNoDatabase = errors.New("database not configured")

// PoolQuerier adapts pool to Querier. A nil pool yields a Querier whose calls
// fail with ErrNoDatabase, which the repositories report as ErrDataLayer.
func PoolQuerier(pool *pgxpool.Pool) Querier {
	if pool == nil {
		return unavailable{}
	}
	return pool
}

type unavailable struct{}

func (unavailable) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, ErrNoDatabase
}

func (unavailable) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, ErrNoDatabase
}

func (unavailable) QueryRow(context.Context, string, ...any) pgx.Row {
	return errRow{err: ErrNoDatabase}
}

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }
