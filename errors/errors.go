// Package errors provides the error helpers used throughout thinkmode.
//
// Plain contextual errors are built with New and Wrapf, which prefix the
// message with the caller's file and line. Failures that callers need to
// branch on are *Error values carrying a Kind (input, execution,
// configuration) and, for execution failures, a Reason.
package errors

import (
	stderrors "errors"
	"fmt"
	"path/filepath"
	"runtime"
)

// Re-exported so callers can import only this package.
var (
	Is   = stderrors.Is
	As   = stderrors.As
	Join = stderrors.Join
)

// New creates a new error with file and line number information.
func New(format string, a ...interface{}) error {
	return fmt.Errorf("[%s] %s", caller(), fmt.Sprintf(format, a...))
}

// Wrapf adds context (including file and line number) to an existing error.
// If the provided error is nil, Wrapf returns nil.
func Wrapf(err error, format string, a ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("[%s] %s: %w", caller(), fmt.Sprintf(format, a...), err)
}

func caller() string {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		return "???:0"
	}
	return fmt.Sprintf("%s:%d", filepath.Base(file), line)
}

// Kind classifies an *Error.
type Kind string

const (
	// KindInput marks requests rejected before any processing.
	KindInput Kind = "input"
	// KindExecution marks a failed backend call for a single task.
	KindExecution Kind = "execution"
	// KindConfiguration marks invalid thresholds or settings.
	KindConfiguration Kind = "configuration"
)

// Reason narrows down an execution failure.
type Reason string

const (
	ReasonTimeout   Reason = "timeout"
	ReasonTransport Reason = "transport"
	ReasonAuth      Reason = "auth"
	ReasonMalformed Reason = "malformed"
)

// Error is a structured failure. Err, when set, is the underlying cause
// and is reachable through errors.Is / errors.As.
type Error struct {
	Kind    Kind
	Reason  Reason
	Message string
	Err     error
}

func (e *Error) Error() string {
	prefix := string(e.Kind) + " error"
	if e.Reason != "" {
		prefix += " (" + string(e.Reason) + ")"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Sentinel causes for input errors.
var (
	ErrEmptyBatch      = stderrors.New("empty batch")
	ErrDuplicateTaskID = stderrors.New("duplicate task id")
)

// Input returns an input error wrapping cause.
func Input(cause error, format string, a ...interface{}) error {
	return &Error{Kind: KindInput, Message: fmt.Sprintf(format, a...), Err: cause}
}

// Configuration returns a configuration error.
func Configuration(format string, a ...interface{}) error {
	return &Error{Kind: KindConfiguration, Message: fmt.Sprintf(format, a...)}
}

// Execution returns an execution error with the given reason.
func Execution(reason Reason, cause error, format string, a ...interface{}) error {
	return &Error{Kind: KindExecution, Reason: reason, Message: fmt.Sprintf(format, a...), Err: cause}
}

// KindOf returns the Kind of the first *Error in err's chain, or "".
func KindOf(err error) Kind {
	var e *Error
	if As(err, &e) {
		return e.Kind
	}
	return ""
}

// ReasonOf returns the Reason of the first *Error in err's chain, or "".
func ReasonOf(err error) Reason {
	var e *Error
	if As(err, &e) {
		return e.Reason
	}
	return ""
}

func IsInput(err error) bool         { return KindOf(err) == KindInput }
func IsExecution(err error) bool     { return KindOf(err) == KindExecution }
func IsConfiguration(err error) bool { return KindOf(err) == KindConfiguration }
