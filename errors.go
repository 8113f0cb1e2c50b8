package sclisp

import "fmt"

// Code is one of the stable error codes from the embedder-facing error
// alphabet. Zero is success; every other value is a failure.
type Code int

const (
	CodeOK          Code = 0
	CodeErr         Code = 1
	CodeNoMem       Code = 2
	CodeBadArg      Code = 3
	CodeUnsupported Code = 4
	CodeOverflow    Code = 5
	CodeBug         Code = 0xBADB01
)

func (c Code) String() string {
	switch c {
	case CodeOK:
		return "SCLISP_OK"
	case CodeErr:
		return "SCLISP_ERR"
	case CodeNoMem:
		return "SCLISP_NOMEM"
	case CodeBadArg:
		return "SCLISP_BADARG"
	case CodeUnsupported:
		return "SCLISP_UNSUPPORTED"
	case CodeOverflow:
		return "SCLISP_OVERFLOW"
	case CodeBug:
		return "SCLISP_BUG"
	default:
		return "SCLISP_UNKNOWN"
	}
}

// Error is the single error type returned by every fallible operation
// in the package. The Code is what a host embedding cares about; the
// Message is for humans.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Code.String()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newError(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func newErrorf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// codeOf extracts the Code carried by err, defaulting to CodeErr for
// any non-nil error that isn't one of ours (should not happen inside
// this package, but keeps the boundary safe).
func codeOf(err error) Code {
	if err == nil {
		return CodeOK
	}
	if e, ok := err.(*Error); ok {
		return e.Code
	}
	return CodeErr
}
