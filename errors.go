package byteguard

import (
	"errors"
	"fmt"
)

// ValidationErrorType represents different types of validation errors
type ValidationErrorType string

const (
	ErrorTypeSize      ValidationErrorType = "size"
	ErrorTypeFileName  ValidationErrorType = "filename"
	ErrorTypeExtension ValidationErrorType = "extension"
	ErrorTypeSignature ValidationErrorType = "signature"
	ErrorTypeConfig    ValidationErrorType = "config"
	ErrorTypeInput     ValidationErrorType = "input"
	ErrorTypeArchive   ValidationErrorType = "archive"
	ErrorTypeLimit     ValidationErrorType = "limit"
	ErrorTypeStructure ValidationErrorType = "structure"
	ErrorTypeScan      ValidationErrorType = "scan"
)

// ValidationError represents a custom error for file validation.
// It implements the error interface and includes the error type for programmatic handling.
type ValidationError struct {
	// Type categorizes the validation failure (size, extension, signature,
	// config, input, archive, limit, structure, scan).
	Type ValidationErrorType

	// Message is the human-readable error description.
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s validation error: %s", e.Type, e.Message)
}

// NewValidationError creates a new ValidationError
func NewValidationError(errType ValidationErrorType, message string) *ValidationError {
	return &ValidationError{
		Type:    errType,
		Message: message,
	}
}

// IsValidationError checks if an error is a ValidationError
func IsValidationError(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsErrorOfType checks if an error is a ValidationError of the specified type
func IsErrorOfType(err error, errType ValidationErrorType) bool {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Type == errType
	}
	return false
}

// GetErrorType returns the type of a ValidationError, or empty string if not a ValidationError
func GetErrorType(err error) ValidationErrorType {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Type
	}
	return ""
}

// GetErrorMessage returns the message of a ValidationError, or empty string if not a ValidationError
func GetErrorMessage(err error) string {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}
	return ""
}
