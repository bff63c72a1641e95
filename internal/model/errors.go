package model

import "errors"

// Common errors used across the application
var (
	// Input errors
	ErrValidation = errors.New("validation failed")

	// Account errors
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")

	// Catalog errors
	ErrGameNotFound = errors.New("game not found")

	// Library errors
	ErrAlreadyOwned = errors.New("you already own this game")

	// Store errors
	ErrStore = errors.New("the store is unavailable, please try again later")
)

// ValidationError reports a required or malformed input field.
// It is raised before any store call is made.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a ValidationError for the given field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is lets errors.Is(err, ErrValidation) match any ValidationError
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// StoreError wraps an unexpected store failure.
// Error() is deliberately generic; the cause is kept for logging via Unwrap.
type StoreError struct {
	Op  string
	Err error
}

// NewStoreError wraps err as a StoreError for the named operation
func NewStoreError(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}

func (e *StoreError) Error() string {
	return ErrStore.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrStore) match any StoreError
func (e *StoreError) Is(target error) bool {
	return target == ErrStore
}

// UserMessage returns the text shown to a user for an error returned by the
// storefront. Unexpected errors get the opaque store message.
func UserMessage(err error) string {
	var vErr *ValidationError
	switch {
	case errors.As(err, &vErr):
		return vErr.Message
	case errors.Is(err, ErrDuplicateEmail):
		return "An account with this email already exists."
	case errors.Is(err, ErrInvalidCredentials):
		return "Invalid email or password."
	case errors.Is(err, ErrAlreadyOwned):
		return "You already own this game."
	case errors.Is(err, ErrGameNotFound):
		return "Game not found."
	case errors.Is(err, ErrUserNotFound):
		return "Account not found."
	default:
		return "The store is unavailable, please try again later."
	}
}
