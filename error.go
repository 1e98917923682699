package explainer

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EINVALID      = "invalid"       // validation failed
	ENOTFOUND     = "not_found"     // entity does not exist
	EINTERNAL     = "internal"      // internal error
	ESTARTUP      = "startup"       // model asset missing or corrupt; fatal
	ESEGMENTATION = "segmentation"  // input is not explainable text; request-fatal
	EINFERENCE    = "inference"     // single-unit inference failed; recovered
	ETIMEOUT      = "timeout"       // deadline exceeded; recovered
)

// Error represents an application error with a machine-readable code.
type Error struct {
	// Machine-readable error code.
	Code string

	// Human-readable message.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL; nil returns the empty string.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error."; nil returns the
// empty string.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}
