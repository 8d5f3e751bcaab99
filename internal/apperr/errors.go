// Package apperr defines the error taxonomy shared by the repository,
// service, and HTTP layers.
package apperr

import (
	"errors"
	"fmt"
)

// NotFoundError reports that a referenced entity does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s with id %s not found", e.Resource, e.ID)
}

// ValidationError reports caller input that fails a domain rule.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Validation builds a ValidationError from a format string.
func Validation(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// PersistenceError wraps an underlying store failure, including constraint
// violations that were not pre-checked.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// InvalidCredentialError reports a bad, expired, or malformed credential.
type InvalidCredentialError struct {
	Reason string
}

func (e *InvalidCredentialError) Error() string { return e.Reason }

// ConfigurationError reports required runtime configuration that is missing
// or unusable. It is fatal at process start, never per-request.
type ConfigurationError struct {
	Key string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("missing required configuration: %s", e.Key)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsInvalidCredential reports whether err is an InvalidCredentialError.
func IsInvalidCredential(err error) bool {
	var ic *InvalidCredentialError
	return errors.As(err, &ic)
}
