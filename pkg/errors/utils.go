package errors

import (
	"fmt"
	"strings"
)

// InternalError is implemented by error types from other packages that
// know how to convert themselves into *Error.
type InternalError interface {
	error
	Transform() *Error
}

// IsSiftError reports whether err is our *Error type.
func IsSiftError(err error) bool {
	_, ok := err.(*Error)
	return ok
}

// GetContext extracts the context map, or nil for foreign errors.
func GetContext(err error) map[string]string {
	if siftErr, ok := err.(*Error); ok {
		return siftErr.Context
	}
	return nil
}

// GetCode returns the code string, or "" for foreign errors.
func GetCode(err error) string {
	if siftErr, ok := err.(*Error); ok {
		return siftErr.Code.String()
	}
	return ""
}

// HasCode reports whether err is an *Error carrying the given code.
func HasCode(err error, code Code) bool {
	if siftErr, ok := err.(*Error); ok {
		return siftErr.Code.Equals(code)
	}
	return false
}

// FormatError renders an error with code, context and cause on separate
// lines. Used for terminal output where the one-line form is too dense.
func FormatError(err error) string {
	if siftErr, ok := err.(*Error); ok {
		var parts []string
		parts = append(parts, fmt.Sprintf("Code: %s", siftErr.Code))
		parts = append(parts, fmt.Sprintf("Message: %s", siftErr.Message))

		if len(siftErr.Context) > 0 {
			parts = append(parts, "Context:")
			for k, v := range siftErr.Context {
				parts = append(parts, fmt.Sprintf("  %s: %v", k, v))
			}
		}

		if siftErr.Cause != nil {
			parts = append(parts, fmt.Sprintf("Cause: %v", siftErr.Cause))
		}

		return strings.Join(parts, "\n")
	}
	return err.Error()
}

// AsError converts any error to *Error:
//   - InternalError implementations are converted via Transform()
//   - existing *Error values are returned as-is
//   - anything else is wrapped as a generic internal error
//
// Boundary code (HTTP handlers, CLI exits) should funnel every error
// through this before inspecting the code.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}

	if ie, ok := err.(InternalError); ok {
		return ie.Transform()
	}

	if siftErr, ok := err.(*Error); ok {
		return siftErr
	}

	return New(CommonInternal, err.Error(), err)
}
