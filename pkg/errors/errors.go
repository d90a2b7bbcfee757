// Package errors provides structured error handling for the card scroller.
//
// The engine itself treats degenerate geometry as values rather than errors;
// the errors here cover the few real failure modes (an engine used before
// its first layout pass, invalid tuning parameters) and the host surface
// (configuration files, rendering, recovered panics in host callbacks).
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindLayout indicates the engine has no usable card dimensions yet.
	KindLayout
	// KindConfig indicates an invalid tuning parameter or configuration file.
	KindConfig
	// KindInput indicates host input the engine cannot act on.
	KindInput
	// KindRender indicates a failure in a rendering host.
	KindRender
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindLayout:
		return "layout"
	case KindConfig:
		return "config"
	case KindInput:
		return "input"
	case KindRender:
		return "render"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

var (
	// ErrNotLaidOut is returned when card height or pitch is not positive,
	// typically before the host has reported a viewport size.
	ErrNotLaidOut = stderrors.New("cards not yet laid out")

	// ErrInvalidParameter is returned for out-of-domain tuning values.
	ErrInvalidParameter = stderrors.New("invalid parameter")
)

// EngineError represents a structured error raised by the engine or a host.
type EngineError struct {
	// Op is the operation that failed (e.g., "cards.Scroller.ScrollTo").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *EngineError) Unwrap() error {
	return e.Err
}

// New returns an EngineError wrapping err.
func New(op string, kind ErrorKind, err error) *EngineError {
	return &EngineError{Op: op, Kind: kind, Err: err}
}

// Newf returns an EngineError wrapping a formatted error.
// The format may use %w to wrap a sentinel such as ErrInvalidParameter.
func Newf(op string, kind ErrorKind, format string, args ...any) *EngineError {
	return &EngineError{Op: op, Kind: kind, Err: fmt.Errorf(format, args...)}
}

// KindOf reports the kind of the first EngineError in err's chain.
func KindOf(err error) ErrorKind {
	var ee *EngineError
	if stderrors.As(err, &ee) {
		return ee.Kind
	}
	return KindUnknown
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "term.Host.handleEvent").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported through Report and ReportPanic.
type ErrorHandler interface {
	// HandleError is called when an error is reported.
	HandleError(err *EngineError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
