package pptxpack

import (
	"errors"
	"fmt"
)

// Sentinel errors identifying the failure modes of the engine. The
// typed errors below wrap these, so callers can use errors.Is for the
// condition and errors.As for the context.
var (
	ErrNoActiveSlide     = errors.New("no active slide")
	ErrNoOpenPackage     = errors.New("no open package")
	ErrNoDestination     = errors.New("no destination path")
	ErrNoSlides          = errors.New("package has no slides")
	ErrSlideNotFound     = errors.New("slide not found")
	ErrPartNotFound      = errors.New("part not found")
	ErrNodeNotFound      = errors.New("node not found")
	ErrUnresolvedPart    = errors.New("no content type resolves for part")
	ErrConflictingType   = errors.New("conflicting content type")
	ErrInvalidStyleValue = errors.New("invalid style value")
)

// StateError reports an operation that is invalid for the current
// package or slide-buffer state. The triggering call fails and leaves
// prior state unmodified.
type StateError struct {
	Op  string
	Err error
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StateError) Unwrap() error { return e.Err }

func stateError(op string, base error) error {
	return &StateError{Op: op, Err: base}
}

// ValidationError reports a malformed option value: wrong arity,
// out-of-domain enum keyword, non-numeric where numeric is required.
type ValidationError struct {
	Field string
	Value interface{}
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("%v for %s: %v", e.Err, e.Field, e.Value)
	}
	return fmt.Sprintf("%v for %s", e.Err, e.Field)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func styleError(field string, value interface{}) error {
	return &ValidationError{Field: field, Value: value, Err: ErrInvalidStyleValue}
}

// NotFoundError reports an absent slide ordinal, part path, XML node,
// or relationship id.
type NotFoundError struct {
	Name string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%v: %s", e.Err, e.Name)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

func notFound(base error, name string) error {
	return &NotFoundError{Name: name, Err: base}
}

// IOError reports a filesystem or archival failure during open or
// save. A save failure never destroys a previously valid destination
// file; the error surfaces the underlying cause instead.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func ioError(op string, err error) error {
	return &IOError{Op: op, Err: err}
}

// IntegrityWarning records a non-fatal mismatch detected while opening
// an existing package. The engine logs it, trusts the counts derived
// from the linked parts, and continues; warnings never abort the open.
type IntegrityWarning struct {
	Msg      string
	Declared int
	Observed int
}

func (w IntegrityWarning) String() string {
	return fmt.Sprintf("%s: declared %d, observed %d", w.Msg, w.Declared, w.Observed)
}
