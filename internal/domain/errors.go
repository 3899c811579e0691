package domain

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindInvalidInput      Kind = "InvalidInput"
	KindNotFound          Kind = "NotFound"
	KindDuplicateListing  Kind = "DuplicateListing"
	KindDuplicateSchedule Kind = "DuplicateSchedule"
	KindAlreadyEnrolled   Kind = "AlreadyEnrolled"
	KindAlreadySold       Kind = "AlreadySold"
	KindSoldOut           Kind = "SoldOut"
	KindUnauthorized      Kind = "Unauthorized"
)

// Error is a business-rule failure. Message is safe to show to callers.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

// Is lets errors.Is(err, ErrSoldOut) match any SoldOut error regardless of
// its message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Message == ""
}

var (
	ErrInvalidInput      = &Error{Kind: KindInvalidInput}
	ErrNotFound          = &Error{Kind: KindNotFound}
	ErrDuplicateListing  = &Error{Kind: KindDuplicateListing}
	ErrDuplicateSchedule = &Error{Kind: KindDuplicateSchedule}
	ErrAlreadyEnrolled   = &Error{Kind: KindAlreadyEnrolled}
	ErrAlreadySold       = &Error{Kind: KindAlreadySold}
	ErrSoldOut           = &Error{Kind: KindSoldOut}
	ErrUnauthorized      = &Error{Kind: KindUnauthorized}
)

func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of a domain error, or "" for anything else.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}
