// Package clierr defines the error taxonomy shared by the guardrail
// engine and the command layer. Every failure surfaced to a caller is a
// *Error carrying one of the codes below; the code decides the process
// exit status.
package clierr

import (
	"errors"
	"fmt"
)

type Code string

const (
	// ValidationError means the caller handed this core malformed input:
	// a bad order intent, a bad trading_window string. Caller-fixable.
	ValidationError Code = "VALIDATION_ERROR"

	// SafetyPolicyBlock is a policy decision that correctly refused the
	// action. Expected, frequent, not a bug.
	SafetyPolicyBlock Code = "SAFETY_POLICY_BLOCK"

	// LiveModeOff means the persisted live-mode flag is off. Checked as a
	// precondition before token authorization is even attempted.
	LiveModeOff Code = "LIVE_MODE_OFF"

	// InternalError is a storage I/O failure. Fatal, never retried.
	InternalError Code = "INTERNAL_ERROR"
)

var exitCodes = map[Code]int{
	ValidationError:   2,
	LiveModeOff:       6,
	SafetyPolicyBlock: 6,
	InternalError:     10,
}

type Error struct {
	Code      Code
	Message   string
	Retriable bool
	Cause     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// ExitCode maps the error code to a process exit status. Unknown codes
// map to the internal-error status.
func (e *Error) ExitCode() int {
	if c, ok := exitCodes[e.Code]; ok {
		return c
	}
	return 10
}

func New(code Code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

func Validationf(format string, args ...any) *Error {
	return &Error{Code: ValidationError, Message: fmt.Sprintf(format, args...)}
}

func Blockf(format string, args ...any) *Error {
	return &Error{Code: SafetyPolicyBlock, Message: fmt.Sprintf(format, args...)}
}

// Internal wraps a storage-layer failure, surfacing the cause verbatim.
func Internal(msg string, cause error) *Error {
	full := msg
	if cause != nil {
		full = fmt.Sprintf("%s: %v", msg, cause)
	}
	return &Error{Code: InternalError, Message: full, Cause: cause}
}

// CodeOf returns the taxonomy code of err, or InternalError when err is
// not a *Error.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return InternalError
}

// ExitCodeOf returns the exit status for any error; non-taxonomy errors
// count as internal.
func ExitCodeOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.ExitCode()
	}
	return 10
}
