package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an AppError. The string values are part of the public
// error contract returned to API clients.
type Kind string

const (
	KindValidation    Kind = "VALIDATION"
	KindJSONParse     Kind = "JSON_PARSE"
	KindJSONStringify Kind = "JSON_STRINGIFY"
	KindNotFound      Kind = "NOT_FOUND"
	KindUnauthorized  Kind = "UNAUTHORIZED"
	KindInternal      Kind = "INTERNAL"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrJSONParse indicates that a payload could not be decoded.
var ErrJSONParse = errors.New("json parse error")

// ErrJSONStringify indicates that a value could not be encoded.
var ErrJSONStringify = errors.New("json stringify error")

// ErrUnauthorized indicates a missing or invalid credential.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInternal indicates a failure in a collaborator (storage, sync).
var ErrInternal = errors.New("internal error")

var kindSentinels = map[Kind]error{
	KindValidation:    ErrValidation,
	KindJSONParse:     ErrJSONParse,
	KindJSONStringify: ErrJSONStringify,
	KindNotFound:      ErrNotFound,
	KindUnauthorized:  ErrUnauthorized,
	KindInternal:      ErrInternal,
}

// AppError is the structured error returned by the calculation engine and
// the services around it. Field names the offending input when known.
type AppError struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	msg := string(e.Kind) + ": " + e.Message
	if e.Field != "" {
		msg = fmt.Sprintf("%s (field %q)", msg, e.Field)
	}
	if e.Err != nil {
		msg = msg + ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes the wrapped cause, if any.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match an AppError against the package sentinels.
func (e *AppError) Is(target error) bool {
	if sentinel, ok := kindSentinels[e.Kind]; ok && sentinel == target {
		return true
	}
	if t, ok := target.(*AppError); ok {
		return t.Kind == e.Kind && (t.Field == "" || t.Field == e.Field)
	}
	return false
}

// NewAppError builds an AppError of the given kind wrapping cause.
func NewAppError(kind Kind, message string, cause error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: cause}
}

// NewValidationError reports invalid input for field.
func NewValidationError(field, message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message, Field: field}
}

// NewValidationFailedError wraps an underlying validation failure.
func NewValidationFailedError(message string, cause error) *AppError {
	return &AppError{Kind: KindValidation, Message: message, Err: cause}
}

// NewNotFoundError reports a missing resource.
func NewNotFoundError(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

// KindOf returns the kind of the first AppError in err's chain.
// Errors that are not AppErrors report KindInternal.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// FieldOf returns the offending field of the first AppError in err's chain.
func FieldOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Field
	}
	return ""
}
