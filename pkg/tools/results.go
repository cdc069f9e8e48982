package tools

import (
	"fmt"

	"github.com/atilladeniz/twenty-crm-mcp-server/pkg/crmerrors"
)

// SuccessResult builds a success result with a short message and payload.
func SuccessResult(message string, payload any) *Result {
	return &Result{Status: ResultSuccess, Message: message, Payload: payload}
}

// ResolutionError builds the result for errors detected before any network
// call: unknown objects, missing identifiers, malformed arguments.
func ResolutionError(format string, args ...any) *Result {
	message := fmt.Sprintf(format, args...)
	return &Result{
		Status:  ResultError,
		Message: message,
		Error:   &ErrorPayload{Message: message},
	}
}

// TransportError converts a failed API call into a structured error result.
// HTTP errors carry full response detail and a remediation hint; other
// errors surface their message only.
func TransportError(err error) *Result {
	if httpErr, ok := crmerrors.AsHTTPError(err); ok {
		return &Result{
			Status:  ResultError,
			Message: httpErr.Error(),
			Error: &ErrorPayload{
				Message:  httpErr.Error(),
				Status:   httpErr.Status,
				Endpoint: httpErr.Endpoint,
				Method:   httpErr.Method,
				Body:     httpErr.Body,
				Headers:  httpErr.Headers,
				Hint:     crmerrors.RemediationHint(httpErr.Status),
			},
		}
	}
	return &Result{
		Status:  ResultError,
		Message: err.Error(),
		Error:   &ErrorPayload{Message: err.Error()},
	}
}
