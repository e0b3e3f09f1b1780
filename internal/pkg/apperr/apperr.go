package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the HTTP boundary.
type Kind int

const (
	KindStore Kind = iota
	KindValidation
	KindInvalidCredentials
	KindUnauthorized
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindInvalidCredentials:
		return "invalid_credentials"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	default:
		return "store"
	}
}

// Error is an application error carrying a Kind and a client-facing message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error by Kind, so errors.Is(err, apperr.ErrNotFound) works.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind && t.Message == "" && t.Err == nil
}

// Kind markers for errors.Is.
var (
	ErrValidation         = &Error{Kind: KindValidation}
	ErrInvalidCredentials = &Error{Kind: KindInvalidCredentials}
	ErrUnauthorized       = &Error{Kind: KindUnauthorized}
	ErrNotFound           = &Error{Kind: KindNotFound}
	ErrStore              = &Error{Kind: KindStore}
)

func Validation(msg string) error {
	return &Error{Kind: KindValidation, Message: msg}
}

func Validationf(format string, args ...interface{}) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func InvalidCredentials(msg string) error {
	if msg == "" {
		msg = "Invalid credentials"
	}
	return &Error{Kind: KindInvalidCredentials, Message: msg}
}

func Unauthorized() error {
	return &Error{Kind: KindUnauthorized, Message: "Unauthorized"}
}

func NotFound(msg string) error {
	if msg == "" {
		msg = "Not Found"
	}
	return &Error{Kind: KindNotFound, Message: msg}
}

// Store wraps an unexpected persistence failure. Nil stays nil.
func Store(err error) error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return err
	}
	return &Error{Kind: KindStore, Err: err}
}

// KindOf classifies err; anything unclassified is a store failure.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindStore
}

// Message returns the client-facing text for err.
func Message(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		if ae.Message != "" {
			return ae.Message
		}
		if ae.Err != nil {
			return ae.Err.Error()
		}
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
