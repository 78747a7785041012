package failure

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure beyond its HTTP code. Validation and
// Unsupported both answer 400, so the code alone cannot tell them apart.
type Kind string

const (
	KindNotFound    Kind = "not_found"
	KindValidation  Kind = "validation"
	KindUnsupported Kind = "unsupported"
	KindForbidden   Kind = "forbidden"
	KindConflict    Kind = "conflict"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
type Failure struct {
	Code    int    `json:"code"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// Error returns the failure message.
func (e *Failure) Error() string {
	return e.Message
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(msg string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Kind:    KindNotFound,
		Message: msg,
	}
}

// NotFoundf is NotFound with a formatted message.
func NotFoundf(format string, args ...any) error {
	return NotFound(fmt.Sprintf(format, args...))
}

// Validation returns a new Failure with code for requests that fail a business rule.
func Validation(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Kind:    KindValidation,
		Message: msg,
	}
}

// Validationf is Validation with a formatted message.
func Validationf(format string, args ...any) error {
	return Validation(fmt.Sprintf(format, args...))
}

// BadRequest returns a Validation failure with message derived from an error interface.
func BadRequest(err error) error {
	if err != nil {
		return Validation(err.Error())
	}

	return nil
}

// Unsupported returns a new Failure for tokens the service does not recognize.
// It answers 400 like Validation but stays a distinct kind.
func Unsupported(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Kind:    KindUnsupported,
		Message: msg,
	}
}

// Forbidden returns a new Failure with code for callers that may not touch a resource.
func Forbidden(msg string) error {
	return &Failure{
		Code:    http.StatusForbidden,
		Kind:    KindForbidden,
		Message: msg,
	}
}

// Conflict returns a new Failure with code for conflict situations.
func Conflict(msg string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Kind:    KindConflict,
		Message: msg,
	}
}

// InternalError returns a new Failure with code for internal error and message derived from an error interface.
func InternalError(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusInternalServerError,
			Message: err.Error(),
		}
	}

	return nil
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// KindOf returns the failure kind, or an empty Kind for plain errors.
func KindOf(err error) Kind {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Kind
	}

	return ""
}

// IsKind reports whether err is a Failure of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
