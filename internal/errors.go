package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidStatus    ErrorCode = "INVALID_STATUS"
	ErrCodeInvalidRole      ErrorCode = "INVALID_ROLE"
	ErrCodeReasonRequired   ErrorCode = "REASON_REQUIRED"
	ErrCodePasswordTooShort ErrorCode = "PASSWORD_TOO_SHORT"
	ErrCodeEmailTaken       ErrorCode = "EMAIL_TAKEN"

	ErrCodeUserNotFound        ErrorCode = "USER_NOT_FOUND"
	ErrCodeEventNotFound       ErrorCode = "EVENT_NOT_FOUND"
	ErrCodeAssociationNotFound ErrorCode = "ASSOCIATION_NOT_FOUND"

	ErrCodeInsufficientRole    ErrorCode = "INSUFFICIENT_ROLE"
	ErrCodeSelfActionForbidden ErrorCode = "SELF_ACTION_FORBIDDEN"
	ErrCodeInvalidTransition   ErrorCode = "INVALID_TRANSITION"
	ErrCodeNoOpTransition      ErrorCode = "NOOP_TRANSITION"
	ErrCodeUnsupportedAction   ErrorCode = "UNSUPPORTED_TRANSITION"
	ErrCodeConcurrentWrite     ErrorCode = "CONCURRENT_MODIFICATION"
	ErrCodeAssociationExists   ErrorCode = "ASSOCIATION_EXISTS"
	ErrCodePersistenceFailed   ErrorCode = "PERSISTENCE_FAILED"

	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeUserInactive       ErrorCode = "USER_INACTIVE"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	clone := *e
	clone.Cause = cause
	return &clone
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	clone := *e
	clone.Details = details
	return &clone
}

// Retryable reports whether the caller may retry the whole operation from a
// fresh fetch. Only storage-layer failures qualify; rule violations never do.
func (e *AppError) Retryable() bool {
	return e.Type == ErrorTypeConflict || e.Code == ErrCodePersistenceFailed
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewForbiddenError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeForbidden,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       ErrCodePersistenceFailed,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

var (
	ErrUserNotFound        = NewNotFoundError("user not found", ErrCodeUserNotFound)
	ErrEventNotFound       = NewNotFoundError("event not found", ErrCodeEventNotFound)
	ErrAssociationNotFound = NewNotFoundError("association not found", ErrCodeAssociationNotFound)

	ErrInsufficientRole    = NewForbiddenError("insufficient role for this action", ErrCodeInsufficientRole)
	ErrSelfActionForbidden = NewForbiddenError("you cannot perform this action on your own account", ErrCodeSelfActionForbidden)

	ErrInvalidTransition = NewValidationError("transition is not legal from the current state", ErrCodeInvalidTransition)
	ErrNoOpTransition    = NewValidationError("entity is already in the requested status", ErrCodeNoOpTransition)
	ErrUnsupportedAction = NewValidationError("action is not supported for this entity state", ErrCodeUnsupportedAction)
	ErrReasonRequired    = NewValidationError("a non-empty reason is required", ErrCodeReasonRequired)
	ErrConcurrentWrite   = NewConflictError("entity was modified concurrently, retry with a fresh fetch", ErrCodeConcurrentWrite)
	ErrEmailTaken        = NewValidationError("a user with this email already exists", ErrCodeEmailTaken)

	ErrInvalidCredentials = NewUnauthorizedError("invalid email or password", ErrCodeInvalidCredentials)
	ErrUserInactive       = NewForbiddenError("user account is inactive", ErrCodeUserInactive)
	ErrInvalidToken       = NewUnauthorizedError("invalid token", ErrCodeInvalidToken)
	ErrTokenExpired       = NewUnauthorizedError("token has expired", ErrCodeTokenExpired)
)

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, Response{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
