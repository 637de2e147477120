// Package apperr holds the error kinds shared by the services and the HTTP layer.
package apperr

import (
	"errors"
	"fmt"
)

// ErrNotFound marks a validation failure caused by a referenced entity that does not exist.
var ErrNotFound = errors.New("not found")

// ValidationError reports caller input that violates a business rule.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Invalid returns a ValidationError with the given message.
func Invalid(message string) error {
	return &ValidationError{Message: message}
}

// NotFound returns a ValidationError that matches ErrNotFound.
func NotFound(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...), Err: ErrNotFound}
}

// DataAccessError wraps a failure of the underlying store.
type DataAccessError struct {
	Op  string
	Err error
}

func (e *DataAccessError) Error() string {
	if e.Err == nil {
		return e.Op
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *DataAccessError) Unwrap() error {
	return e.Err
}

// DataAccess wraps err into a DataAccessError. A nil err stays nil and an
// error that is already a DataAccessError is returned unchanged.
func DataAccess(op string, err error) error {
	if err == nil {
		return nil
	}
	var dae *DataAccessError
	if errors.As(err, &dae) {
		return err
	}
	return &DataAccessError{Op: op, Err: err}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsDataAccess reports whether err is a DataAccessError.
func IsDataAccess(err error) bool {
	var dae *DataAccessError
	return errors.As(err, &dae)
}
