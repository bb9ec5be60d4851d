package shared

import "errors"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Details lists per-field validation failures
	Details []FieldViolation `json:"details,omitempty"`
}

// FieldViolation is a validation failure bound to one input field
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is matches domain errors by code so wrapped sentinels compare with errors.Is
func (e *DomainError) Is(target error) bool {
	var other *DomainError
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewFieldError creates a validation error bound to a single input field
func NewFieldError(field, message string) *DomainError {
	return &DomainError{
		Code:    CodeValidation,
		Message: message,
		Details: []FieldViolation{{Field: field, Message: message}},
	}
}

// FieldErrors accumulates validation failures across several fields
type FieldErrors struct {
	violations []FieldViolation
}

// Add records a failure for field
func (f *FieldErrors) Add(field, message string) {
	f.violations = append(f.violations, FieldViolation{Field: field, Message: message})
}

// Empty reports whether nothing was recorded
func (f *FieldErrors) Empty() bool {
	return len(f.violations) == 0
}

// Err returns nil when empty, otherwise a validation DomainError carrying every
// recorded violation. The message is the first violation's message.
func (f *FieldErrors) Err() error {
	if f.Empty() {
		return nil
	}
	return &DomainError{
		Code:    CodeValidation,
		Message: f.violations[0].Message,
		Details: append([]FieldViolation(nil), f.violations...),
	}
}

// NewValidationError creates a validation error that is not tied to a field
func NewValidationError(message string) *DomainError {
	return NewDomainError(CodeValidation, message)
}

// NewForbiddenError creates a permission error with a custom message
func NewForbiddenError(message string) *DomainError {
	return NewDomainError(CodeForbidden, message)
}

// NewNotFoundError creates a not-found error with a custom message
func NewNotFoundError(message string) *DomainError {
	return NewDomainError(CodeNotFound, message)
}

// NewProtectedError reports a delete blocked by referencing rows
func NewProtectedError(message string) *DomainError {
	return NewDomainError(CodeProtected, message)
}

// Domain error codes
const (
	CodeNotFound      = "NOT_FOUND"
	CodeAlreadyExists = "ALREADY_EXISTS"
	CodeInvalidInput  = "INVALID_INPUT"
	CodeValidation    = "VALIDATION_ERROR"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeForbidden     = "FORBIDDEN"
	CodeInvalidState  = "INVALID_STATE"
	CodeProtected     = "PROTECTED"
)

// Common domain errors
var (
	ErrNotFound      = NewDomainError(CodeNotFound, "Not found.")
	ErrAlreadyExists = NewDomainError(CodeAlreadyExists, "Resource already exists")
	ErrInvalidInput  = NewDomainError(CodeInvalidInput, "Invalid input provided")
	ErrValidation    = NewDomainError(CodeValidation, "Invalid data.")
	ErrUnauthorized  = NewDomainError(CodeUnauthorized, "Not authorized to perform this action")
	ErrForbidden     = NewDomainError(CodeForbidden, "You do not have permission to perform this action.")
	ErrInvalidState  = NewDomainError(CodeInvalidState, "Operation not allowed in current state")
	ErrProtected     = NewDomainError(CodeProtected, "Cannot delete because it is referenced by other records.")
)

// IsNotFound reports whether err is or wraps a not-found domain error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
