package repositories

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	domainerrors "github.com/Erik-List/ranked-capital/internal/domain/errors"
)

// translateWriteError maps driver-level unique violations onto the domain
// conflict error so callers can treat a lost race as retryable.
func translateWriteError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domainerrors.ErrConflict
	}
	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "duplicate key value") {
		return domainerrors.ErrConflict
	}
	return err
}
