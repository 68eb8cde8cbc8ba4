/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrNotFound is returned when a reachable store holds no document for the key
	ErrNotFound = errors.New("document not found")

	// ErrUnavailable is returned when the document store cannot be reached,
	// is not configured, or did not answer in time
	ErrUnavailable = errors.New("document store unavailable")

	// ErrUnsupportedLanguage is returned when a caller asks for a language
	// outside the configured set
	ErrUnsupportedLanguage = errors.New("unsupported language")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)

// NotFoundError represents a missing document
type NotFoundError struct {
	Collection string
	ID         string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("document %s/%s not found", e.Collection, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// UnavailableError wraps the transport or configuration failure behind an
// unavailable store
type UnavailableError struct {
	Op  string
	Err error
}

func (e *UnavailableError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("document store unavailable during %s", e.Op)
	}
	return fmt.Sprintf("document store unavailable during %s: %v", e.Op, e.Err)
}

func (e *UnavailableError) Is(target error) bool {
	return target == ErrUnavailable
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

// UnsupportedLanguageError carries the rejected language code
type UnsupportedLanguageError struct {
	Code string
}

func (e *UnsupportedLanguageError) Error() string {
	return fmt.Sprintf("unsupported language %q", e.Code)
}

func (e *UnsupportedLanguageError) Is(target error) bool {
	return target == ErrUnsupportedLanguage
}

// ValidationError represents an input validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Helper functions for creating errors

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(collection, id string) error {
	return &NotFoundError{Collection: collection, ID: id}
}

// NewUnavailableError creates a new UnavailableError
func NewUnavailableError(op string, err error) error {
	return &UnavailableError{Op: op, Err: err}
}

// NewUnsupportedLanguageError creates a new UnsupportedLanguageError
func NewUnsupportedLanguageError(code string) error {
	return &UnsupportedLanguageError{Code: code}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnavailable checks if an error reports an unavailable store
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

// IsUnsupportedLanguage checks if an error is an unsupported language error
func IsUnsupportedLanguage(err error) bool {
	return errors.Is(err, ErrUnsupportedLanguage)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
