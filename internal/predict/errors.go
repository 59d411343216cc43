package predict

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind tells which stage of a prediction failed
type ErrorKind string

const (
	// KindLoad indicates the model artifact could not be read or parsed
	KindLoad ErrorKind = "load"

	// KindEvaluate indicates the model produced no usable prediction
	KindEvaluate ErrorKind = "evaluate"
)

// ErrPredictionUnavailable matches every prediction failure regardless of kind.
// Callers only ever distinguish "got a prediction" from "did not".
var ErrPredictionUnavailable = errors.New("prediction unavailable")

// Error is returned by every Predictor in this package
type Error struct {
	// Kind categorizes the failure
	Kind ErrorKind

	// Source names the artifact that was used (file path or "embedded")
	Source string

	// Message provides a human-readable description
	Message string

	// Cause is the underlying error, if any
	Cause error
}

// Error implements the error interface
func (e *Error) Error() string {
	parts := []string{fmt.Sprintf("kind=%s", e.Kind)}

	if e.Source != "" {
		parts = append(parts, fmt.Sprintf("source=%s", e.Source))
	}

	parts = append(parts, e.Message)

	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("cause=%s", e.Cause.Error()))
	}

	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is ErrPredictionUnavailable or an *Error of the same kind
func (e *Error) Is(target error) bool {
	if target == ErrPredictionUnavailable {
		return true
	}
	if pe, ok := target.(*Error); ok {
		return e.Kind == pe.Kind
	}
	return false
}

// NewLoadError creates a load failure for the given source
func NewLoadError(source, message string, cause error) *Error {
	return &Error{
		Kind:    KindLoad,
		Source:  source,
		Message: message,
		Cause:   cause,
	}
}

// NewEvaluateError creates an evaluation failure for the given source
func NewEvaluateError(source, message string, cause error) *Error {
	return &Error{
		Kind:    KindEvaluate,
		Source:  source,
		Message: message,
		Cause:   cause,
	}
}

// Unavailable wraps any error so that it matches ErrPredictionUnavailable.
// Errors that already match are returned unchanged.
func Unavailable(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrPredictionUnavailable) {
		return err
	}
	return NewEvaluateError("", "predictor failed", err)
}

// KindOf returns the kind of a prediction error, or "" if err is not one
func KindOf(err error) ErrorKind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}
