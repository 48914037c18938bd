package services

import "errors"

// Kind classifies a domain failure so the HTTP layer can map it to a
// status code without string matching.
type Kind string

const (
	KindNotFound     Kind = "not_found"
	KindUnauthorized Kind = "unauthorized"
	KindInvalidState Kind = "invalid_state"
	KindCapacity     Kind = "capacity"
	KindConflict     Kind = "conflict"
	KindGateClosed   Kind = "gate_closed"
	KindValidation   Kind = "validation"
)

// ConflictInfo is the payload attached to a venue-conflict error, one
// entry per colliding event.
type ConflictInfo struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Time     string `json:"time"`
	Location string `json:"location"`
}

type Error struct {
	Kind      Kind
	Message   string
	Conflicts []ConflictInfo
}

func (e *Error) Error() string { return e.Message }

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func errNotFound(msg string) *Error     { return newError(KindNotFound, msg) }
func errUnauthorized(msg string) *Error { return newError(KindUnauthorized, msg) }
func errInvalidState(msg string) *Error { return newError(KindInvalidState, msg) }
func errCapacity(msg string) *Error     { return newError(KindCapacity, msg) }
func errConflict(msg string) *Error     { return newError(KindConflict, msg) }
func errGateClosed(msg string) *Error   { return newError(KindGateClosed, msg) }
func errValidation(msg string) *Error   { return newError(KindValidation, msg) }

// KindOf extracts the kind from err, or "" for non-domain errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
