// Package errors defines the coded application errors shared by the loader,
// the store and the HTTP layer.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode represents application error codes
type ErrorCode string

const (
	// General errors (1xxx)
	ErrCodeInternal     ErrorCode = "E1000"
	ErrCodeValidation   ErrorCode = "E1001"
	ErrCodeNotFound     ErrorCode = "E1002"
	ErrCodeConflict     ErrorCode = "E1003"
	ErrCodeForbidden    ErrorCode = "E1004"
	ErrCodeUnauthorized ErrorCode = "E1005"

	// Session and skill value errors (4xxx)
	ErrCodeSessionNotFound ErrorCode = "E4001"
	ErrCodeSkillUnknown    ErrorCode = "E4002"
	ErrCodeValueOutOfRange ErrorCode = "E4003"

	// Database errors (5xxx)
	ErrCodeDBConnection ErrorCode = "E5001"
	ErrCodeDBQuery      ErrorCode = "E5002"
	ErrCodeDBMigration  ErrorCode = "E5003"

	// Configuration errors (6xxx)
	ErrCodeConfigNotFound        ErrorCode = "E6001"
	ErrCodeConfigInvalid         ErrorCode = "E6002"
	ErrCodeConfigParse           ErrorCode = "E6003"
	ErrCodeAdminCredentialsEmpty ErrorCode = "E6004"
	ErrCodePasswordComplexity    ErrorCode = "E6005"
	ErrCodeJWTSecretInvalid      ErrorCode = "E6006"

	// Content pipeline errors (7xxx)
	ErrCodeStructuralViolation ErrorCode = "E7001"
	ErrCodeContentLoad         ErrorCode = "E7002"
	ErrCodeTemplateRender      ErrorCode = "E7003"
)

// Exit codes for startup failures
const (
	// ExitCodeConfigValidation is used when the configuration is rejected
	ExitCodeConfigValidation = 2
	// ExitCodeContentInvalid is used when the content tree cannot be loaded
	ExitCodeContentInvalid = 3
)

// AppError represents an application-level error with code and context
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
	Details any       `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the error code to a response status.
func (e *AppError) HTTPStatus() int {
	switch e.Code {
	case ErrCodeNotFound, ErrCodeSessionNotFound, ErrCodeSkillUnknown:
		return http.StatusNotFound
	case ErrCodeValidation, ErrCodeValueOutOfRange:
		return http.StatusBadRequest
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// New creates a new AppError
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap wraps an existing error with AppError
func Wrap(code ErrorCode, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// WithDetails adds details to the error
func (e *AppError) WithDetails(details any) *AppError {
	e.Details = details
	return e
}

func ErrInternal(message string, err error) *AppError {
	return Wrap(ErrCodeInternal, message, err)
}

func ErrValidation(message string) *AppError {
	return New(ErrCodeValidation, message)
}

// ErrNotFound creates a not found error for the named resource
func ErrNotFound(resource string) *AppError {
	return New(ErrCodeNotFound, fmt.Sprintf("%s not found", resource))
}

func ErrUnauthorized(message string) *AppError {
	return New(ErrCodeUnauthorized, message)
}

func ErrForbidden(message string) *AppError {
	return New(ErrCodeForbidden, message)
}

// IsAppError reports whether err is, or wraps, an AppError.
func IsAppError(err error) bool {
	_, ok := AsAppError(err)
	return ok
}

// AsAppError returns the first AppError in err's chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err carries the given code anywhere in its chain.
func HasCode(err error, code ErrorCode) bool {
	for err != nil {
		var appErr *AppError
		if !stderrors.As(err, &appErr) {
			return false
		}
		if appErr.Code == code {
			return true
		}
		err = appErr.Err
	}
	return false
}
