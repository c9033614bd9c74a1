package model

import (
	"errors"
	"fmt"
)

// ErrorKind discriminates the three failure classes of the user directory.
type ErrorKind int

const (
	KindInvalidInput ErrorKind = iota + 1
	KindDuplicate
	KindStore
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindDuplicate:
		return "duplicate"
	case KindStore:
		return "store_error"
	default:
		return "unknown"
	}
}

// DuplicateField names which unique field(s) collided.
type DuplicateField string

const (
	DuplicateUsername DuplicateField = "username"
	DuplicateEmail    DuplicateField = "email"
	DuplicateBoth     DuplicateField = "both"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrDuplicate    = errors.New("duplicate user")
	ErrStore        = errors.New("store error")

	// ErrUserNotFound matches store errors raised for a missing user.
	ErrUserNotFound = errors.New("user not found")
)

// UserError is the single error type returned by the validator and the user
// store. Callers branch on Kind (or errors.Is against the Err* sentinels).
type UserError struct {
	Kind    ErrorKind
	Field   DuplicateField // set for KindDuplicate only
	Message string

	notFound bool
}

func (e *UserError) Error() string {
	return e.Message
}

// Is matches the sentinel of the error's kind, and ErrUserNotFound for
// not-found store errors.
func (e *UserError) Is(target error) bool {
	switch target {
	case ErrInvalidInput:
		return e.Kind == KindInvalidInput
	case ErrDuplicate:
		return e.Kind == KindDuplicate
	case ErrStore:
		return e.Kind == KindStore
	case ErrUserNotFound:
		return e.notFound
	}
	return false
}

func NewInvalidInput(reason string) *UserError {
	return &UserError{Kind: KindInvalidInput, Message: reason}
}

func NewDuplicate(field DuplicateField) *UserError {
	var msg string
	switch field {
	case DuplicateUsername:
		msg = "Username already exists"
	case DuplicateEmail:
		msg = "Email already exists"
	default:
		field = DuplicateBoth
		msg = "Username and email already exist"
	}
	return &UserError{Kind: KindDuplicate, Field: field, Message: msg}
}

func NewStoreError(format string, args ...interface{}) *UserError {
	return &UserError{Kind: KindStore, Message: fmt.Sprintf(format, args...)}
}

func NewNotFound(format string, args ...interface{}) *UserError {
	return &UserError{Kind: KindStore, Message: fmt.Sprintf(format, args...), notFound: true}
}

// KindOf returns the kind of a UserError anywhere in err's chain, or 0.
func KindOf(err error) ErrorKind {
	var ue *UserError
	if errors.As(err, &ue) {
		return ue.Kind
	}
	return 0
}
