package tools

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atilladeniz/twenty-crm-mcp-server/pkg/crmerrors"
)

func TestNoteWithLinksCreatesThenLinksInOrder(t *testing.T) {
	transport := &fakeTransport{responses: []string{
		`{"id": "n1"}`,
		`{"id": "l1"}`,
		`{"id": "l2"}`,
	}}
	deps := fallbackDeps(t, transport)
	tool := findTool(t, Synthesize(deps, deps.Registry.Current()), "create_note_with_links")

	res := tool.Execute(context.Background(), map[string]any{
		"note":      map[string]any{"title": "T"},
		"personId":  "p1",
		"companyId": "c1",
	})
	require.False(t, res.IsError(), "unexpected error: %+v", res.Error)

	require.Len(t, transport.calls, 3)
	assert.Equal(t, "/rest/notes", transport.calls[0].Endpoint)
	assert.Equal(t, map[string]any{"title": "T"}, transport.calls[0].Body)

	assert.Equal(t, http.MethodPost, transport.calls[1].Method)
	assert.Equal(t, "/rest/noteTargets", transport.calls[1].Endpoint)
	assert.Equal(t, map[string]any{"noteId": "n1", "personId": "p1"}, transport.calls[1].Body)
	assert.Equal(t, map[string]any{"noteId": "n1", "companyId": "c1"}, transport.calls[2].Body)

	payload := res.Payload.(map[string]any)
	assert.Equal(t, "n1", payload["noteId"])
	assert.Len(t, payload["links"], 2)
}

func TestNoteWithLinksRequiresNoteAndPerson(t *testing.T) {
	transport := &fakeTransport{}
	deps := fallbackDeps(t, transport)
	tool := findTool(t, Synthesize(deps, deps.Registry.Current()), "create_note_with_links")

	res := tool.Execute(context.Background(), map[string]any{"note": map[string]any{"title": "T"}})
	require.True(t, res.IsError())
	assert.Empty(t, transport.calls)
}

func TestNoteWithLinksLinkFailureKeepsNote(t *testing.T) {
	transport := &fakeTransport{
		responses: []string{`{"id": "n1"}`, ``},
		errs:      []error{nil, &crmerrors.HTTPError{Status: 500, StatusText: "Internal Server Error"}},
	}
	deps := fallbackDeps(t, transport)
	tool := findTool(t, Synthesize(deps, deps.Registry.Current()), "create_note_with_links")

	res := tool.Execute(context.Background(), map[string]any{
		"note":      map[string]any{"title": "T"},
		"personId":  "p1",
		"companyId": "c1",
	})
	require.True(t, res.IsError())
	assert.Contains(t, res.Message, "n1")
	assert.Len(t, transport.calls, 2, "no rollback and no further links after a failure")

	payload := res.Payload.(map[string]any)
	assert.Equal(t, "n1", payload["noteId"])
	assert.Empty(t, payload["links"])
}

func TestBuildLinkRequestsDeduplicates(t *testing.T) {
	requests := buildLinkRequests("n1", "p1", "c1", []any{
		map[string]any{"personId": "p1"},
		map[string]any{"companyId": "c1"},
		map[string]any{"workspaceMemberId": "w1"},
		map[string]any{},
		"not a map",
	})
	require.Len(t, requests, 3)
	assert.Equal(t, map[string]any{"noteId": "n1", "personId": "p1"}, requests[0])
	assert.Equal(t, map[string]any{"noteId": "n1", "companyId": "c1"}, requests[1])
	assert.Equal(t, map[string]any{"noteId": "n1", "workspaceMemberId": "w1"}, requests[2])
}

func TestBuildLinkRequestsNoCompany(t *testing.T) {
	requests := buildLinkRequests("n1", "p1", "", nil)
	require.Len(t, requests, 1)
	assert.Equal(t, map[string]any{"noteId": "n1", "personId": "p1"}, requests[0])
}

func TestExtractRecordID(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{`{"id": "abc"}`, "abc"},
		{`{"id": 42}`, "42"},
		{`{"data": {"id": "nested"}}`, "nested"},
		{`{"record": {"id": "rec"}}`, "rec"},
		{`[{"id": "first"}, {"id": "second"}]`, "first"},
		{`{"data": [{"id": "inner"}]}`, "inner"},
		{`{"name": "no id"}`, ""},
		{`"just a string"`, ""},
		{`{"id": ""}`, ""},
	}
	for _, tc := range tests {
		if got := extractRecordID([]byte(tc.raw)); got != tc.want {
			t.Fatalf("extractRecordID(%s) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}
