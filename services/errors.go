package services

import (
	"errors"
	"fmt"

	"github.com/wangyukai585/BioAlgoDB/database"
	"github.com/wangyukai585/BioAlgoDB/utils"
)

// Sentinel errors; handlers map them to HTTP status codes
var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrForbidden          = errors.New("admin role required")
	ErrUnsupportedHash    = utils.ErrUnsupportedHash
)

// Error carries a user-facing message and the sentinel it belongs to
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func notFound(entity string, id uint) error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf("%s %d not found", entity, id)}
}

func conflict(format string, args ...interface{}) error {
	return &Error{Kind: ErrConflict, Message: fmt.Sprintf(format, args...)}
}

func invalid(format string, args ...interface{}) error {
	return &Error{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

// lookupError turns gorm's missing-record error into ErrNotFound
func lookupError(err error, entity string, id uint) error {
	if database.IsNotFound(err) {
		return notFound(entity, id)
	}
	return fmt.Errorf("find %s %d: %w", entity, id, err)
}

// writeError translates constraint failures raised while inserting or updating.
// A unique violation lost to a concurrent writer becomes a conflict; a dangling
// reference becomes a validation error.
func writeError(err error, entity string) error {
	switch {
	case err == nil:
		return nil
	case database.IsUniqueViolation(err):
		return conflict("%s already exists", entity)
	case database.IsForeignKeyViolation(err):
		return invalid("%s references a record that does not exist", entity)
	}
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return err
	}
	return fmt.Errorf("save %s: %w", entity, err)
}
