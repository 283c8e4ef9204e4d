package sqlite

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Helper functions for SQLite error checking
func isUniqueConstraintViolation(err error) bool {
	// Check for GORM's translated duplicate key error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	// SQLite reports untranslated violations as "UNIQUE constraint failed: table.column"
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint")
}
