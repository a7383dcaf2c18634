package core

import (
	"errors"
	"fmt"
)

// ErrorCategory classifies errors for handling decisions.
type ErrorCategory string

const (
	ErrCatValidation ErrorCategory = "validation" // Invalid input
	ErrCatNotFound   ErrorCategory = "not_found"  // Resource not found
	ErrCatParse      ErrorCategory = "parse"      // Malformed content
	ErrCatState      ErrorCategory = "state"      // Project metadata corruption/conflict
	ErrCatStorage    ErrorCategory = "storage"    // Filesystem failure
	ErrCatInternal   ErrorCategory = "internal"   // Unexpected internal error
)

// DomainError represents a structured error from the domain layer.
type DomainError struct {
	Category  ErrorCategory
	Code      string
	Message   string
	Retryable bool
	Cause     error
	Details   map[string]interface{}
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %s (%v)", e.Category, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Category, e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches a target.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Category == t.Category && e.Code == t.Code
}

// WithCause wraps an underlying error.
func (e *DomainError) WithCause(cause error) *DomainError {
	e.Cause = cause
	return e
}

// WithDetail adds contextual information.
func (e *DomainError) WithDetail(key string, value interface{}) *DomainError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ErrValidation creates a validation error.
func ErrValidation(code, message string) *DomainError {
	return &DomainError{
		Category:  ErrCatValidation,
		Code:      code,
		Message:   message,
		Retryable: false,
	}
}

// ErrNotFound creates a not found error.
func ErrNotFound(resource, id string) *DomainError {
	return &DomainError{
		Category:  ErrCatNotFound,
		Code:      "NOT_FOUND",
		Message:   fmt.Sprintf("%s not found: %s", resource, id),
		Retryable: false,
	}
}

// ErrParse creates a parse error.
func ErrParse(code, message string) *DomainError {
	return &DomainError{
		Category:  ErrCatParse,
		Code:      code,
		Message:   message,
		Retryable: false,
	}
}

// ErrState creates a state error.
func ErrState(code, message string) *DomainError {
	return &DomainError{
		Category:  ErrCatState,
		Code:      code,
		Message:   message,
		Retryable: false,
	}
}

// ErrStorage creates a storage error. Filesystem errors are worth one
// retry from the caller's side, so they are marked retryable.
func ErrStorage(code, message string) *DomainError {
	return &DomainError{
		Category:  ErrCatStorage,
		Code:      code,
		Message:   message,
		Retryable: true,
	}
}

// IsRetryable checks if an error is retryable.
func IsRetryable(err error) bool {
	var domErr *DomainError
	if errors.As(err, &domErr) {
		return domErr.Retryable
	}
	return false
}

// GetCategory extracts the error category.
func GetCategory(err error) ErrorCategory {
	var domErr *DomainError
	if errors.As(err, &domErr) {
		return domErr.Category
	}
	return ErrCatInternal
}

// IsCategory checks if an error belongs to a category.
func IsCategory(err error, cat ErrorCategory) bool {
	return GetCategory(err) == cat
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return IsCategory(err, ErrCatNotFound)
}

// Predefined error codes
const (
	CodeChecklistNotFound = "CHECKLIST_NOT_FOUND"
	CodeTemplateNotFound  = "TEMPLATE_NOT_FOUND"
	CodeArtifactNotFound  = "ARTIFACT_NOT_FOUND"
	CodeInvalidMode       = "INVALID_MODE"
	CodeInvalidPath       = "INVALID_PATH"
	CodeEmptyDocument     = "EMPTY_DOCUMENT"
	CodeMetaCorrupted     = "META_CORRUPTED"
	CodeWriteFailed       = "WRITE_FAILED"
	CodeReadFailed        = "READ_FAILED"
	CodeFrontmatterBroken = "FRONTMATTER_BROKEN"
	CodeHistoryUnavailable = "HISTORY_UNAVAILABLE"
)
