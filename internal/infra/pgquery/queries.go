// Package pgquery holds the SQL statements used by the read stores and
// repositories. Every method takes the DBTX to run on, so the same Queries
// value serves both pooled reads and transactional writes.
package pgquery

import (
	"context"

	"lab-seat-reservation/internal/infra/db"

	"github.com/jackc/pgx/v5"
)

type Queries struct{}

func New() *Queries {
	return &Queries{}
}

func collectOne[T any](ctx context.Context, dbtx db.DBTX, sql string, args ...any) (T, error) {
	rows, err := dbtx.Query(ctx, sql, args...)
	if err != nil {
		var zero T
		return zero, err
	}
	return pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[T])
}

func collectAll[T any](ctx context.Context, dbtx db.DBTX, sql string, args ...any) ([]T, error) {
	rows, err := dbtx.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[T])
}
