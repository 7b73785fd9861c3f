package sdk

import (
	"fmt"
	"net/http"

	"github.com/go-faster/errors"
)

// APIError is a typed refusal from the server. Status carries the HTTP
// status, Code the stable machine-readable code from the error
// envelope.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (%s)", e.Message, e.Code)
}

// IsNotFound reports whether err is a not-found answer. For session
// handles that means expired, evicted or never created, and the right
// reaction is a fresh upload.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// IsValidation reports whether err is a rejected-request answer, where
// retrying unchanged cannot help.
func IsValidation(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && (apiErr.Status == http.StatusBadRequest ||
		apiErr.Status == http.StatusRequestEntityTooLarge)
}
