package server

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atilladeniz/twenty-crm-mcp-server/pkg/config"
)

func testConfig(t *testing.T, metadata string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "metadata.json")
	if metadata != "" {
		require.NoError(t, os.WriteFile(path, []byte(metadata), 0o644))
	}
	cfg := (&config.Config{
		APIKey:       "test-key",
		MetadataPath: path,
	}).WithDefaults()
	return cfg
}

func TestNewPublishesFallbackTools(t *testing.T) {
	s, err := New(testConfig(t, ""), "test", zerolog.Nop())
	require.NoError(t, err)

	// 6 fallback objects x 5 CRUD + 3 metadata + search + composite.
	assert.Equal(t, 6*5+4+1, s.tools.Len())
	assert.True(t, s.builder.Snapshot().FromFallback())
	assert.Nil(t, s.cron, "refresh is off by default")
}

func TestNewRejectsMissingAPIKey(t *testing.T) {
	cfg := (&config.Config{}).WithDefaults()
	_, err := New(cfg, "test", zerolog.Nop())
	require.Error(t, err)
}

func TestNewRejectsBadRefreshSchedule(t *testing.T) {
	cfg := testConfig(t, "")
	enabled := true
	cfg.Refresh.Enabled = &enabled
	cfg.Refresh.Cron = "not a schedule"
	_, err := New(cfg, "test", zerolog.Nop())
	require.Error(t, err)
}

func TestRefreshRepublishesAfterMetadataChange(t *testing.T) {
	metadata := `{"objects": [
		{"nameSingular": "person", "namePlural": "people", "isActive": true, "fields": [
			{"name": "jobTitle", "type": "TEXT", "isActive": true, "isNullable": true}
		]}
	]}`
	cfg := testConfig(t, metadata)
	s, err := New(cfg, "test", zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 1*5+4, s.tools.Len())
	assert.False(t, s.builder.Snapshot().FromFallback())

	grown := `{"objects": [
		{"nameSingular": "person", "namePlural": "people", "isActive": true, "fields": [
			{"name": "jobTitle", "type": "TEXT", "isActive": true, "isNullable": true}
		]},
		{"nameSingular": "company", "namePlural": "companies", "isActive": true, "fields": [
			{"name": "name", "type": "TEXT", "isActive": true, "isNullable": false}
		]}
	]}`
	require.NoError(t, os.WriteFile(cfg.MetadataPath, []byte(grown), 0o644))

	s.refresh()
	assert.Equal(t, 2*5+4, s.tools.Len())
	assert.NotNil(t, s.tools.Get("create_company"))
}

func TestDecodeArguments(t *testing.T) {
	got, err := decodeArguments(nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = decodeArguments(map[string]any{"a": float64(1)})
	require.NoError(t, err)
	assert.Equal(t, float64(1), got["a"])

	got, err = decodeArguments(json.RawMessage(`{"a": "b"}`))
	require.NoError(t, err)
	assert.Equal(t, "b", got["a"])

	got, err = decodeArguments(json.RawMessage(``))
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = decodeArguments(json.RawMessage(`null`))
	require.NoError(t, err)
	assert.NotNil(t, got)

	_, err = decodeArguments(json.RawMessage(`[1,2]`))
	require.Error(t, err)

	_, err = decodeArguments(42)
	require.Error(t, err)
}
