package catalog

import (
	"errors"
	"fmt"
)

// Kind classifies catalog failures. Every fallible catalog operation reports
// exactly one kind; the transport layer maps kinds to HTTP statuses.
type Kind string

const (
	KindLoad       Kind = "load_failure"
	KindSave       Kind = "save_failure"
	KindDelete     Kind = "delete_failure"
	KindValidation Kind = "validation_failure"
)

// Error wraps an underlying cause with the failure kind.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a catalog error of the given kind.
func IsKind(err error, kind Kind) bool {
	var cerr *Error
	return errors.As(err, &cerr) && cerr.Kind == kind
}

func loadFailure(err error) error {
	return &Error{Kind: KindLoad, Err: err}
}

func saveFailure(err error) error {
	return &Error{Kind: KindSave, Err: err}
}

func deleteFailure(err error) error {
	return &Error{Kind: KindDelete, Err: err}
}

func validationFailure(format string, args ...interface{}) error {
	return &Error{Kind: KindValidation, Err: fmt.Errorf(format, args...)}
}
