package crmerrors

import (
	"fmt"
	"testing"
)

func TestRemediationHintCoversSpecifiedStatuses(t *testing.T) {
	for _, status := range []int{400, 401, 403, 404, 409, 422, 429, 500, 502, 503} {
		if RemediationHint(status) == "" {
			t.Fatalf("expected a remediation hint for status %d", status)
		}
	}
	if RemediationHint(418) != "" {
		t.Fatal("expected no hint for unmapped status")
	}
}

func TestAsHTTPError(t *testing.T) {
	base := &HTTPError{Status: 404, StatusText: "Not Found", Method: "GET", Endpoint: "/rest/people/x"}
	wrapped := fmt.Errorf("call failed: %w", base)

	got, ok := AsHTTPError(wrapped)
	if !ok || got.Status != 404 {
		t.Fatalf("expected to unwrap HTTPError, got %v %v", got, ok)
	}
	if _, ok := AsHTTPError(fmt.Errorf("plain")); ok {
		t.Fatal("plain errors must not unwrap as HTTPError")
	}
}
