// Package crmerrors defines the transport error type for the Twenty REST API
// and maps HTTP status codes to human-readable remediation hints.
package crmerrors

import (
	"errors"
	"fmt"
)

// HTTPError captures a non-2xx response with enough detail for the tool
// boundary to build a structured error payload. It is never retried
// automatically.
type HTTPError struct {
	Status     int               `json:"status"`
	StatusText string            `json:"statusText"`
	Body       any               `json:"body,omitempty"`
	Endpoint   string            `json:"endpoint"`
	Method     string            `json:"method"`
	Headers    map[string]string `json:"headers,omitempty"`
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s %s: http %d %s", e.Method, e.Endpoint, e.Status, e.StatusText)
}

// AsHTTPError unwraps an HTTPError from an error chain.
func AsHTTPError(err error) (*HTTPError, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}

// statusHints maps response codes to remediation guidance surfaced alongside
// failed operations.
var statusHints = map[int]string{
	400: "The request body was rejected. Check field names and value shapes against the object schema.",
	401: "Authentication failed. Check the API key and that it has not expired.",
	403: "Authentication failed. Check the API key and that it has not expired.",
	404: "The record or endpoint does not exist. Verify the object name and record id.",
	409: "The request conflicts with existing data, often a duplicate unique field.",
	422: "The payload failed validation. A required field may be missing or an enum value invalid.",
	429: "You're sending requests too quickly. Wait a moment, then try again.",
	500: "The CRM server encountered an error. Try again later.",
	502: "The CRM server is unreachable. Try again later.",
	503: "The CRM service is busy right now. Try again in a moment.",
}

// RemediationHint returns guidance for a status code, or "" when none is
// defined.
func RemediationHint(status int) string {
	return statusHints[status]
}
