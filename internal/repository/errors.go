package repository

import (
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
)

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("repository: record not found")
	// ErrDuplicateEntry indicates a unique constraint was violated.
	ErrDuplicateEntry = errors.New("repository: duplicate entry")
)

const mysqlDuplicateEntry = 1062

// mapError translates driver-level failures into the repository sentinels
// so callers never have to inspect mysql error numbers themselves.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
		return ErrDuplicateEntry
	}
	return err
}
