package repositories

import (
	stderrors "errors"
	"strings"

	"github.com/mroshb/shooty_game/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// isDuplicateKey reports unique and primary key violations. TranslateError covers the
// configured dialectors; the message check catches drivers opened without it.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if stderrors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "duplicate entry")
}

// translateWriteError maps a gorm write error to an AppError.
func translateWriteError(err error, conflictMsg, failMsg string) error {
	switch {
	case err == nil:
		return nil
	case isDuplicateKey(err):
		return errors.Wrap(err, errors.ErrCodeStoreConflict, conflictMsg)
	case stderrors.Is(err, gorm.ErrInvalidData):
		return errors.Wrap(err, errors.ErrCodeValidation, "invalid data")
	case stderrors.Is(err, gorm.ErrForeignKeyViolated):
		return errors.Wrap(err, errors.ErrCodeNotFound, "referenced record not found")
	}
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return err
	}
	return errors.Wrap(err, errors.ErrCodeInternalError, failMsg)
}

// translateReadError maps a gorm read error to an AppError.
func translateReadError(err error, notFoundMsg, failMsg string) error {
	if err == nil {
		return nil
	}
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return errors.New(errors.ErrCodeNotFound, notFoundMsg)
	}
	return errors.Wrap(err, errors.ErrCodeInternalError, failMsg)
}

// forUpdate adds a row lock on dialects that support one.
func forUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "sqlite" {
		return db
	}
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}
