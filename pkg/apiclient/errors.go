package apiclient

import (
	"errors"
	"fmt"
)

// ErrResponseTooLarge is returned when a response body exceeds MaxResponseSize.
var ErrResponseTooLarge = errors.New("response body exceeds limit")

// StatusError reports a non-2xx response from the backend.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Method, e.URL, e.Status)
}

// IsStatus reports whether err is a StatusError with the given status code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}
