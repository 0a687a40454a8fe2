package repositories

import (
	stderrors "errors"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	domainerrors "mercato.backend/internal/domain/errors"
)

func isUniqueConstraintViolation(err error) bool {
	if stderrors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}

func isCheckConstraintViolation(err error) bool {
	if stderrors.Is(err, gorm.ErrCheckConstraintViolated) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "check constraint")
}

// translate maps driver errors to domain sentinels and wraps everything else with context.
func translate(err error, msg string) error {
	switch {
	case err == nil:
		return nil
	case stderrors.Is(err, gorm.ErrRecordNotFound):
		return domainerrors.ErrNotFound
	case isUniqueConstraintViolation(err):
		return errors.Wrap(domainerrors.ErrAlreadyExists, msg)
	case isCheckConstraintViolation(err):
		return errors.Wrap(domainerrors.ErrInvalidInput, msg)
	default:
		return errors.Wrap(err, msg)
	}
}
