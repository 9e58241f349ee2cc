// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package directory

import (
	"fmt"
	"net/http"
)

// Kind buckets every failure surfaced by the directory service into a small
// taxonomy the callers can branch on.
type Kind string

const (
	// KindInvalidArgument marks malformed input, a caller bug.
	KindInvalidArgument Kind = "invalid_argument"
	// KindNotFound marks a named entity that is absent remotely.
	KindNotFound Kind = "not_found"
	// KindPermissionDenied marks a remote authorization failure.
	KindPermissionDenied Kind = "permission_denied"
	// KindTransientIO marks a remote 5xx or network failure, safe to retry
	// manually.
	KindTransientIO Kind = "transient_io"
	// KindUnknownIO marks an unclassified remote error. Code and Message carry
	// the remote payload for diagnostics.
	KindUnknownIO Kind = "unknown_io"
	// KindInvalidState marks remote data violating one of our invariants.
	KindInvalidState Kind = "invalid_state"
)

// Error is the typed error returned at every remote-call boundary.
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s-%s", e.Kind, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is matches any *Error of the same Kind, so errors.Is(err, ErrNotFound)
// works regardless of the wrapped remote detail.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for use with errors.Is.
var (
	ErrInvalidArgument  = &Error{Kind: KindInvalidArgument}
	ErrNotFound         = &Error{Kind: KindNotFound}
	ErrPermissionDenied = &Error{Kind: KindPermissionDenied}
	ErrTransientIO      = &Error{Kind: KindTransientIO}
	ErrUnknownIO        = &Error{Kind: KindUnknownIO}
	ErrInvalidState     = &Error{Kind: KindInvalidState}
)

func NewInvalidArgument(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

func NewNotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func NewPermissionDenied(format string, args ...interface{}) *Error {
	return &Error{Kind: KindPermissionDenied, Message: fmt.Sprintf(format, args...)}
}

func NewTransientIO(format string, args ...interface{}) *Error {
	return &Error{Kind: KindTransientIO, Message: fmt.Sprintf(format, args...)}
}

func NewUnknownIO(code, message string) *Error {
	return &Error{Kind: KindUnknownIO, Code: code, Message: message}
}

func NewInvalidState(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidState, Message: fmt.Sprintf(format, args...)}
}

// classify maps a remote (status, code, message) triple onto the taxonomy.
// This is the single place HTTP statuses are interpreted; every remote call
// funnels its non-2xx responses through here.
func classify(status int, code, message string) *Error {
	switch {
	case status == http.StatusBadRequest:
		return &Error{Kind: KindInvalidArgument, Code: code, Message: message}
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &Error{Kind: KindPermissionDenied, Code: code, Message: message}
	case status == http.StatusNotFound:
		return &Error{Kind: KindNotFound, Code: code, Message: message}
	case status >= http.StatusInternalServerError:
		return &Error{Kind: KindTransientIO, Code: code, Message: message}
	default:
		return &Error{Kind: KindUnknownIO, Code: code, Message: message}
	}
}
