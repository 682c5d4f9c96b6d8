package services

import (
	"errors"

	"gorm.io/gorm"
)

// Common service errors
var (
	ErrNotFound          = errors.New("record not found")
	ErrInvalidState      = errors.New("invalid state transition")
	ErrDuplicate         = errors.New("duplicate record")
	ErrValidation        = errors.New("validation failed")
	ErrUnsupportedFormat = errors.New("unsupported export format")
)

// notFound maps gorm's missing-row error onto ErrNotFound and passes anything else through
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
