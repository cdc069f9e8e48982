package normalize

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

func TestNormalizeBareArray(t *testing.T) {
	res, ok := Normalize(decode(t, `[{"id":"a"},{"id":"b"}]`))
	require.True(t, ok)
	assert.Len(t, res.Items, 2)
	assert.Nil(t, res.Summary)
}

func TestNormalizeDataWithTopLevelCounts(t *testing.T) {
	res, ok := Normalize(decode(t, `{"data": [{"id": 1}], "totalCount": 50, "hasNextPage": true}`))
	require.True(t, ok)
	require.Len(t, res.Items, 1)
	require.NotNil(t, res.Summary)
	require.NotNil(t, res.Summary.Total)
	assert.Equal(t, float64(50), *res.Summary.Total)
	require.NotNil(t, res.Summary.HasNextPage)
	assert.True(t, *res.Summary.HasNextPage)
	assert.Equal(t, map[string]any{"totalCount": float64(50), "hasNextPage": true}, res.Pagination)
}

func TestNormalizeStringEncodedTotal(t *testing.T) {
	res, ok := Normalize(decode(t, `{"data": [{"id": 1}], "totalCount": "50"}`))
	require.True(t, ok)
	require.NotNil(t, res.Summary)
	require.NotNil(t, res.Summary.Total)
	assert.Equal(t, float64(50), *res.Summary.Total)

	res, ok = Normalize(decode(t, `{"data": [], "totalCount": "not a number", "total": 3}`))
	require.True(t, ok)
	require.NotNil(t, res.Summary)
	require.NotNil(t, res.Summary.Total)
	assert.Equal(t, float64(3), *res.Summary.Total)
}

func TestNormalizeRecordKeyOrder(t *testing.T) {
	// data wins over items and records when several arrays are present.
	res, ok := Normalize(decode(t, `{"records": [{"id":"r"}], "data": [{"id":"d"}], "items": [{"id":"i"}]}`))
	require.True(t, ok)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "d", res.Items[0].(map[string]any)["id"])
}

func TestNormalizePageInfoPreferred(t *testing.T) {
	res, ok := Normalize(decode(t, `{
		"items": [{"id":"x"}],
		"pageInfo": {"nextCursor": "abc", "hasNextPage": false},
		"totalCount": 9
	}`))
	require.True(t, ok)
	assert.Equal(t, map[string]any{"nextCursor": "abc", "hasNextPage": false}, res.Pagination)
	require.NotNil(t, res.Summary)
	require.NotNil(t, res.Summary.HasNextPage)
	assert.False(t, *res.Summary.HasNextPage)
	require.NotNil(t, res.Summary.Total)
	assert.Equal(t, float64(9), *res.Summary.Total)
}

func TestNormalizeMetaPagination(t *testing.T) {
	res, ok := Normalize(decode(t, `{"records": [{}], "meta": {"total": 3, "page": 1}}`))
	require.True(t, ok)
	assert.Equal(t, map[string]any{"total": float64(3), "page": float64(1)}, res.Pagination)
	require.NotNil(t, res.Summary)
	require.NotNil(t, res.Summary.Total)
	assert.Equal(t, float64(3), *res.Summary.Total)
}

func TestNormalizeHasMoreFallback(t *testing.T) {
	res, ok := Normalize(decode(t, `{"data": [], "hasMore": true}`))
	require.True(t, ok)
	require.NotNil(t, res.Summary)
	require.NotNil(t, res.Summary.HasNextPage)
	assert.True(t, *res.Summary.HasNextPage)
}

func TestNormalizeNextCursorTruthiness(t *testing.T) {
	res, ok := Normalize(decode(t, `{"data": [], "nextCursor": "c2"}`))
	require.True(t, ok)
	require.NotNil(t, res.Summary)
	require.NotNil(t, res.Summary.HasNextPage)
	assert.True(t, *res.Summary.HasNextPage)

	res, ok = Normalize(decode(t, `{"data": [], "nextCursor": null}`))
	require.True(t, ok)
	require.NotNil(t, res.Summary)
	require.NotNil(t, res.Summary.HasNextPage)
	assert.False(t, *res.Summary.HasNextPage)
}

func TestNormalizeNoRecordArrayFound(t *testing.T) {
	for _, raw := range []string{
		`{"id": "single-record", "name": {"firstName": "Ada"}}`,
		`{"data": {"person": {"id": "x"}}}`,
		`"plain string"`,
		`42`,
	} {
		if _, ok := Normalize(decode(t, raw)); ok {
			t.Fatalf("expected no normalization for %s", raw)
		}
	}
}
