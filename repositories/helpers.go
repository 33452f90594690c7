package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrVersionConflict is returned when an optimistic update matched the row id
// but not its version. Callers retry on a fresh read.
var ErrVersionConflict = errors.New("row version conflict")

// SQLExecutor lets repository methods run either on the pool or inside a
// caller-owned transaction.
type SQLExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func checkAffectedRows(result sql.Result, notFoundError error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return notFoundError
	}
	return nil
}
