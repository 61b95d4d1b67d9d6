package domain

import "errors"

// ErrorKind classifies a business-rule failure so callers can map it to a
// response without string matching.
type ErrorKind string

const (
	KindValidation       ErrorKind = "validation"
	KindNotFound         ErrorKind = "not_found"
	KindConflict         ErrorKind = "conflict"
	KindInvalidOperation ErrorKind = "invalid_operation"
	KindForbidden        ErrorKind = "forbidden"
	KindOwnerRequired    ErrorKind = "owner_required"
	KindUnauthorized     ErrorKind = "unauthorized"
	KindInternal         ErrorKind = "internal"
)

// Error is the tagged failure returned by every service operation.
type Error struct {
	Kind    ErrorKind           `json:"kind"`
	Message string              `json:"message"`
	Fields  map[string][]string `json:"field_errors,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

// Is lets errors.Is match two domain errors by kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func newError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// ErrValidation reports malformed or out-of-range input.
func ErrValidation(message string) *Error {
	return newError(KindValidation, message)
}

// ErrFieldValidation reports per-field validation failures.
func ErrFieldValidation(message string, fields map[string][]string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

// ErrNotFound reports an absent workspace, plan, expense or user.
func ErrNotFound(message string) *Error {
	return newError(KindNotFound, message)
}

// ErrConflict reports a uniqueness violation.
func ErrConflict(message string) *Error {
	return newError(KindConflict, message)
}

// ErrInvalidOperation reports an operation the business rules forbid
// regardless of role, such as an owner removing themself.
func ErrInvalidOperation(message string) *Error {
	return newError(KindInvalidOperation, message)
}

// ErrForbidden reports an authenticated user without workspace access.
func ErrForbidden(message string) *Error {
	return newError(KindForbidden, message)
}

// ErrOwnerRequired reports a member attempting an owner-gated action.
func ErrOwnerRequired(message string) *Error {
	return newError(KindOwnerRequired, message)
}

// ErrUnauthorized reports a missing or invalid credential.
func ErrUnauthorized(message string) *Error {
	return newError(KindUnauthorized, message)
}

// ErrInternal reports an unexpected collaborator failure. The message is
// safe to show to callers; the cause is expected to be logged separately.
func ErrInternal(message string) *Error {
	return newError(KindInternal, message)
}

// Is reports whether err is a domain error of the given kind.
func Is(err error, kind ErrorKind) bool {
	de, ok := AsError(err)
	return ok && de.Kind == kind
}

// AsError extracts a *Error from an error chain.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
