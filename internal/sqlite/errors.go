package sqlite

import (
	"errors"

	sqlite3 "modernc.org/sqlite"
	sqlitelib "modernc.org/sqlite/lib"

	"github.com/en-arthur/initflow-be/pkg/types"
)

// mapStoreError converts driver-level failures into the store's error
// taxonomy. Busy and locked are transient and retryable; a violated
// uniqueness constraint means a concurrent writer won the race.
func mapStoreError(err error) error {
	if err == nil {
		return nil
	}
	var se *sqlite3.Error
	if errors.As(err, &se) {
		switch se.Code() & 0xff {
		case sqlitelib.SQLITE_BUSY, sqlitelib.SQLITE_LOCKED:
			return types.ErrUnavailable
		case sqlitelib.SQLITE_CONSTRAINT:
			return types.ErrConflict
		}
	}
	return err
}
