package sanitize

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atilladeniz/twenty-crm-mcp-server/pkg/schema"
)

func personContract() *schema.ObjectContract {
	return &schema.ObjectContract{
		NameSingular: "person",
		NamePlural:   "people",
		Properties: map[string]any{
			"name":      map[string]any{"type": "string"},
			"linkedin":  map[string]any{"type": "object"},
			"companyId": map[string]any{"type": "string"},
		},
		Relations: []schema.Relation{
			{FieldName: "company", TargetObject: "company", Cardinality: schema.CardinalitySingle, Alias: "companyId"},
			{FieldName: "noteTargets", TargetObject: "noteTarget", Cardinality: schema.CardinalityMultiple, Alias: "noteTargetsIds"},
		},
		Kinds: map[string]schema.FieldKind{
			"name":     schema.KindText,
			"linkedin": schema.KindLinks,
		},
	}
}

func sanitize(t *testing.T, payload map[string]any) map[string]any {
	t.Helper()
	return New(zerolog.Nop()).Sanitize(payload, personContract())
}

func TestSanitizeSingleRelationObjectForm(t *testing.T) {
	got := sanitize(t, map[string]any{"company": map[string]any{"id": "X"}})
	assert.Equal(t, map[string]any{"companyId": "X"}, got)
}

func TestSanitizeSingleRelationForms(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  any
		emit  bool
	}{
		{name: "null clears", value: nil, want: nil, emit: true},
		{name: "string id", value: " p-7 ", want: "p-7", emit: true},
		{name: "number id", value: float64(42), want: "42", emit: true},
		{name: "object value field", value: map[string]any{"value": "v1"}, want: "v1", emit: true},
		{name: "empty string omitted", value: "  ", emit: false},
		{name: "object without id omitted", value: map[string]any{"name": "Acme"}, emit: false},
		{name: "bool omitted", value: true, emit: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := sanitize(t, map[string]any{"company": tc.value})
			v, present := got["companyId"]
			if present != tc.emit {
				t.Fatalf("emit = %v, want %v (out: %#v)", present, tc.emit, got)
			}
			if tc.emit {
				assert.Equal(t, tc.want, v)
			}
		})
	}
}

func TestSanitizeAliasKeyDirect(t *testing.T) {
	got := sanitize(t, map[string]any{"companyId": map[string]any{"id": "c9"}})
	assert.Equal(t, map[string]any{"companyId": "c9"}, got)
}

func TestSanitizeMultipleRelationMixedForms(t *testing.T) {
	got := sanitize(t, map[string]any{"noteTargets": []any{map[string]any{"id": "a"}, "b"}})
	ids, ok := got["noteTargetsIds"].([]string)
	require.True(t, ok, "expected id list, got %#v", got)
	assert.ElementsMatch(t, []string{"a", "b"}, ids)
}

func TestSanitizeMultipleRelationDeduplicates(t *testing.T) {
	got := sanitize(t, map[string]any{"noteTargets": []any{"a", "a", map[string]any{"id": "a"}, "b"}})
	ids := got["noteTargetsIds"].([]string)
	assert.ElementsMatch(t, []string{"a", "b"}, ids)
}

func TestSanitizeMultipleRelationClears(t *testing.T) {
	for name, value := range map[string]any{
		"null":        nil,
		"empty array": []any{},
		"empty ids":   map[string]any{"ids": []any{}},
	} {
		t.Run(name, func(t *testing.T) {
			got := sanitize(t, map[string]any{"noteTargets": value})
			assert.Equal(t, []string{}, got["noteTargetsIds"], "explicit clear emits an empty list")
		})
	}
}

func TestSanitizeMultipleRelationUnusableOmitted(t *testing.T) {
	got := sanitize(t, map[string]any{"noteTargets": []any{map[string]any{"name": "no id"}, ""}})
	_, present := got["noteTargetsIds"]
	assert.False(t, present, "unusable non-clear input is omitted, not cleared")
}

func TestSanitizeIDAlwaysStripped(t *testing.T) {
	got := sanitize(t, map[string]any{"id": "r1", "name": "Ada"})
	assert.Equal(t, map[string]any{"name": "Ada"}, got)
}

func TestSanitizeOriginalRelationKeyNeverEmitted(t *testing.T) {
	got := sanitize(t, map[string]any{"company": "c1", "noteTargets": []any{"n1"}})
	assert.NotContains(t, got, "company")
	assert.NotContains(t, got, "noteTargets")
}

func TestSanitizeLinkField(t *testing.T) {
	got := sanitize(t, map[string]any{"linkedin": "https://x.com"})
	assert.Equal(t, map[string]any{
		"primaryLinkUrl":   "https://x.com",
		"primaryLinkLabel": "",
		"secondaryLinks":   nil,
	}, got["linkedin"])
}

func TestSanitizePassThrough(t *testing.T) {
	payload := map[string]any{"name": "Ada", "custom": map[string]any{"nested": true}}
	got := sanitize(t, payload)
	assert.Equal(t, "Ada", got["name"])
	assert.Equal(t, payload["custom"], got["custom"])
}

func TestNormalizeLinkIdempotent(t *testing.T) {
	wrapped := NormalizeLink("https://x.com")
	assert.Equal(t, wrapped, NormalizeLink(wrapped))

	partial := map[string]any{"primaryLinkLabel": "Home"}
	assert.Equal(t, partial, NormalizeLink(partial))
}

func TestNormalizeLinkEmptyString(t *testing.T) {
	assert.Equal(t, map[string]any{
		"primaryLinkUrl":   "",
		"primaryLinkLabel": "",
		"secondaryLinks":   nil,
	}, NormalizeLink(""))
}

func TestNormalizeLinkPassThrough(t *testing.T) {
	assert.Nil(t, NormalizeLink(nil))
	assert.Equal(t, 7, NormalizeLink(7))
	assert.Equal(t, []any{"x"}, NormalizeLink([]any{"x"}))
}
