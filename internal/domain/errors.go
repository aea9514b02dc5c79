package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrDuplicateRegistration means more than one registration row exists for
	// a (shift, user) pair, which the registration protocol never produces on
	// its own.
	ErrDuplicateRegistration = errors.New("multiple registrations found for shift and user")
	ErrNoProfile             = errors.New("No user profile to update")
	// ErrRegistrationConflict is an insert rejected by the optional unique
	// (shift_id, user_id) index.
	ErrRegistrationConflict = errors.New("registration already exists")
)

// ValidationError is returned for malformed input before any storage access.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// StorageError wraps a failed database operation. Its message is the
// underlying error's message, unmodified.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

// RegistrationError wraps any failure of the register-for-shift protocol.
type RegistrationError struct {
	ShiftID int32
	UserID  int32
	Err     error
}

func (e *RegistrationError) Error() string {
	return e.Err.Error()
}

func (e *RegistrationError) Unwrap() error {
	return e.Err
}

// TransportError is produced by API clients for network failures and non-2xx
// responses.
type TransportError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *TransportError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("HTTP error! status: %d", e.StatusCode)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
