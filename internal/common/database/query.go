package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	apperrors "iwms-dashboard/internal/common/errors"
)

// ScanFunc reads one row.
type ScanFunc[T any] func(rows *sql.Rows) (T, error)

// QueryAll runs query with timeout and scans every row. Failures are
// returned as QUERY_TIMEOUT or QUERY_EXECUTION_FAILED errors.
func QueryAll[T any](ctx context.Context, c *PostgresClient, timeout time.Duration, op, query string, scan ScanFunc[T], args ...interface{}) ([]T, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	rows, err := c.Query(ctx, query, args...)
	if err != nil {
		return nil, queryError(ctx, op, err)
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, queryError(ctx, op, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, queryError(ctx, op, err)
	}
	return out, nil
}

// QueryOne is QueryAll for lookups by key. notFound is returned when no row
// matches.
func QueryOne[T any](ctx context.Context, c *PostgresClient, timeout time.Duration, op, query string, scan ScanFunc[T], notFound error, args ...interface{}) (T, error) {
	var zero T
	rows, err := QueryAll(ctx, c, timeout, op, query, scan, args...)
	if err != nil {
		return zero, err
	}
	if len(rows) == 0 {
		return zero, notFound
	}
	return rows[0], nil
}

func queryError(ctx context.Context, op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return apperrors.NewQueryTimeoutError(op)
	}
	return apperrors.NewQueryExecutionFailedError(op, err)
}
