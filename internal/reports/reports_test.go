package reports

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	now := time.Date(2026, 1, 20, 12, 42, 36, 0, time.UTC)

	path, err := writeJSON(dir, NewEnvelope("blocks", "local", map[string]int{"blocks": 2}), "blocks", now)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "blocks-20260120-124236.json"), path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var got struct {
		Command string         `json:"command"`
		Source  string         `json:"source"`
		Data    map[string]int `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "blocks", got.Command)
	assert.Equal(t, "local", got.Source)
	assert.Equal(t, 2, got.Data["blocks"])
}

func TestWriteJSONDefaultPrefix(t *testing.T) {
	path, err := writeJSON(t.TempDir(), []int{1}, "", time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "report-20260102-030405.json", filepath.Base(path))
}

func TestWriteJSONUnmarshalable(t *testing.T) {
	_, err := writeJSON(t.TempDir(), make(chan int), "bad", time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "marshal JSON")
}
