// Package repository implements all database queries for the event
// management system. It uses pgx directly (no ORM) for transparency and
// performance.
package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when a uniqueness constraint would be violated.
var ErrDuplicate = errors.New("duplicate")

// Querier is the subset of pgx operations shared by pools and transactions.
// Ledger operations accept it so they can run inside a booking transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TxBeginner starts transactions. pgxpool.Pool satisfies it.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// DB is the surface the booking repository needs: direct queries plus
// transactions. pgxpool.Pool satisfies it.
type DB interface {
	Querier
	TxBeginner
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
