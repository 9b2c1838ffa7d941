package byteguard

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError_Error(t *testing.T) {
	err := NewValidationError(ErrorTypeSize, "file too large")
	expected := "size validation error: file too large"
	if err.Error() != expected {
		t.Errorf("Error() = %s, want %s", err.Error(), expected)
	}
}

func TestIsValidationError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "ValidationError",
			err:      NewValidationError(ErrorTypeSize, "test"),
			expected: true,
		},
		{
			name:     "Wrapped ValidationError",
			err:      fmt.Errorf("upload failed: %w", NewValidationError(ErrorTypeLimit, "test")),
			expected: true,
		},
		{
			name:     "Regular error",
			err:      errors.New("regular error"),
			expected: false,
		},
		{
			name:     "Nil error",
			err:      nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsValidationError(tt.err)
			if result != tt.expected {
				t.Errorf("IsValidationError() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestIsErrorOfType(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		errorType ValidationErrorType
		expected  bool
	}{
		{
			name:      "Matching type",
			err:       NewValidationError(ErrorTypeLimit, "test"),
			errorType: ErrorTypeLimit,
			expected:  true,
		},
		{
			name:      "Non-matching type",
			err:       NewValidationError(ErrorTypeLimit, "test"),
			errorType: ErrorTypeArchive,
			expected:  false,
		},
		{
			name:      "Wrapped matching type",
			err:       fmt.Errorf("preflight: %w", NewValidationError(ErrorTypeArchive, "test")),
			errorType: ErrorTypeArchive,
			expected:  true,
		},
		{
			name:      "Regular error",
			err:       errors.New("regular error"),
			errorType: ErrorTypeSize,
			expected:  false,
		},
		{
			name:      "Nil error",
			err:       nil,
			errorType: ErrorTypeSize,
			expected:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsErrorOfType(tt.err, tt.errorType)
			if result != tt.expected {
				t.Errorf("IsErrorOfType() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestGetErrorType(t *testing.T) {
	if got := GetErrorType(NewValidationError(ErrorTypeScan, "infected")); got != ErrorTypeScan {
		t.Errorf("GetErrorType() = %v, want %v", got, ErrorTypeScan)
	}
	if got := GetErrorType(errors.New("regular error")); got != "" {
		t.Errorf("GetErrorType() = %v, want empty", got)
	}
	if got := GetErrorType(nil); got != "" {
		t.Errorf("GetErrorType() = %v, want empty", got)
	}
}

func TestGetErrorMessage(t *testing.T) {
	if got := GetErrorMessage(NewValidationError(ErrorTypeInput, "nil reader")); got != "nil reader" {
		t.Errorf("GetErrorMessage() = %q, want %q", got, "nil reader")
	}
	if got := GetErrorMessage(errors.New("regular error")); got != "" {
		t.Errorf("GetErrorMessage() = %q, want empty", got)
	}
}
