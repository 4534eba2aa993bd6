package domain

import (
	"errors"
	"fmt"
	"time"
)

// Code is the machine-readable discriminator carried by every domain error
type Code string

const (
	CodeValidation     Code = "VALIDATION_ERROR"
	CodeAuthorization  Code = "AUTHORIZATION_ERROR"
	CodeNotFound       Code = "NOT_FOUND"
	CodeConflict       Code = "CONFLICT"
	CodeInfrastructure Code = "INFRASTRUCTURE_ERROR"
)

// Error is implemented by every error the domain layer and its adapters hand to callers
type Error interface {
	error
	Code() Code
	Timestamp() time.Time
	Payload() ErrorPayload
}

// ErrorPayload is the JSON-safe shape of a domain error
type ErrorPayload struct {
	Code         Code      `json:"code"`
	Message      string    `json:"message"`
	Timestamp    time.Time `json:"timestamp"`
	Field        string    `json:"field,omitempty"`
	RequiredRole string    `json:"requiredRole,omitempty"`
	EntityType   string    `json:"entityType,omitempty"`
	EntityID     string    `json:"entityId,omitempty"`
	Cause        string    `json:"cause,omitempty"`
}

type baseError struct {
	code    Code
	message string
	at      time.Time
}

func newBase(code Code, message string) baseError {
	return baseError{code: code, message: message, at: Now()}
}

func (e baseError) Error() string        { return e.message }
func (e baseError) Code() Code           { return e.code }
func (e baseError) Timestamp() time.Time { return e.at }

func (e baseError) payload() ErrorPayload {
	return ErrorPayload{Code: e.code, Message: e.message, Timestamp: e.at}
}

// ValidationError reports input that failed a domain rule
type ValidationError struct {
	baseError
	Field string
}

// NewValidationError creates a validation error, optionally naming the offending field
func NewValidationError(message string, field ...string) *ValidationError {
	e := &ValidationError{baseError: newBase(CodeValidation, message)}
	if len(field) > 0 {
		e.Field = field[0]
	}
	return e
}

func (e *ValidationError) Payload() ErrorPayload {
	p := e.payload()
	p.Field = e.Field
	return p
}

// AuthorizationError reports an actor whose role does not allow the operation
type AuthorizationError struct {
	baseError
	RequiredRole Role
}

func NewAuthorizationError(message string, requiredRole Role) *AuthorizationError {
	return &AuthorizationError{baseError: newBase(CodeAuthorization, message), RequiredRole: requiredRole}
}

func (e *AuthorizationError) Payload() ErrorPayload {
	p := e.payload()
	p.RequiredRole = string(e.RequiredRole)
	return p
}

// NotFoundError reports a missing aggregate
type NotFoundError struct {
	baseError
	EntityType string
	EntityID   string
}

func NewNotFoundError(entityType, entityID string) *NotFoundError {
	return &NotFoundError{
		baseError:  newBase(CodeNotFound, fmt.Sprintf("%s not found: %s", entityType, entityID)),
		EntityType: entityType,
		EntityID:   entityID,
	}
}

func (e *NotFoundError) Payload() ErrorPayload {
	p := e.payload()
	p.EntityType = e.EntityType
	p.EntityID = e.EntityID
	return p
}

// ConflictError reports a uniqueness or state conflict against stored data
type ConflictError struct {
	baseError
	Field string
}

func NewConflictError(message string, field ...string) *ConflictError {
	e := &ConflictError{baseError: newBase(CodeConflict, message)}
	if len(field) > 0 {
		e.Field = field[0]
	}
	return e
}

func (e *ConflictError) Payload() ErrorPayload {
	p := e.payload()
	p.Field = e.Field
	return p
}

// InfrastructureError wraps a storage or transport failure.
// Workflows never return it.
type InfrastructureError struct {
	baseError
	Cause error
}

func NewInfrastructureError(message string, cause error) *InfrastructureError {
	return &InfrastructureError{baseError: newBase(CodeInfrastructure, message), Cause: cause}
}

func (e *InfrastructureError) Error() string {
	if e.Cause == nil {
		return e.message
	}
	return e.message + ": " + e.Cause.Error()
}

func (e *InfrastructureError) Unwrap() error { return e.Cause }

func (e *InfrastructureError) Payload() ErrorPayload {
	p := e.payload()
	if e.Cause != nil {
		p.Cause = e.Cause.Error()
	}
	return p
}

// AsError finds the first domain error in err's chain
func AsError(err error) (Error, bool) {
	var de Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// CodeOf returns the domain code of err, or CodeInfrastructure for foreign errors
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	if de, ok := AsError(err); ok {
		return de.Code()
	}
	return CodeInfrastructure
}
