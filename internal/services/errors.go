package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Define common service errors
var (
	ErrNotFound             = errors.New("resource not found")
	ErrForbidden            = errors.New("forbidden")
	ErrConflict             = errors.New("conflict") // e.g., profile already exists
	ErrValidation           = errors.New("validation failed")
	ErrInvalidTransition    = errors.New("invalid state transition")
	ErrConsentRequired      = errors.New("consent is required")
	ErrModelUnavailable     = errors.New("language model unavailable")
	ErrMalformedModelOutput = errors.New("malformed model output")
	ErrUploadRejected       = errors.New("upload rejected")
)

// ValidationError carries per-field messages and matches ErrValidation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(parts, "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func newValidationError(fields map[string]string) error {
	return &ValidationError{Fields: fields}
}
