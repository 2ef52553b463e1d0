package db

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ErrStorage marks failures of the underlying persistence layer.
var ErrStorage = errors.New("storage_failure")

// StorageError wraps err so callers can match it with errors.Is(err, ErrStorage)
// while keeping the driver error in the chain.
func StorageError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrStorage) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrStorage, err)
}

func IsDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	// PostgreSQL (error code 23505)
	if strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
		return true
	}

	// MySQL (error code 1062)
	if strings.Contains(err.Error(), "Error 1062") {
		return true
	}

	// SQLite (error code 2067)
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return true
	}

	return false
}
