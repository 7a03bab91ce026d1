// pkg/migration/artifacts_test.go
package migration

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDumpBlobWritesRecord(t *testing.T) {
	dir := t.TempDir()
	w, err := NewArtifactWriter(dir, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, w.DumpBlob("Pipeline Overview", "Tabular", StageCaptured, "col1%2Ccol2"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasPrefix(entries[0].Name(), "pipeline-overview_tabular_captured_"))

	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)

	var record struct {
		RunID   string `json:"runId"`
		Report  string `json:"report"`
		Subtype string `json:"subtype"`
		Stage   string `json:"stage"`
		Encoded string `json:"encoded"`
	}
	require.NoError(t, json.Unmarshal(data, &record))
	assert.Equal(t, w.RunID(), record.RunID)
	assert.Equal(t, "Pipeline Overview", record.Report)
	assert.Equal(t, "Tabular", record.Subtype)
	assert.Equal(t, StageCaptured, record.Stage)
	assert.Equal(t, "col1%2Ccol2", record.Encoded)
}

func TestDumpBlobDisabledWriter(t *testing.T) {
	w, err := NewArtifactWriter("", zap.NewNop())
	require.NoError(t, err)
	assert.NoError(t, w.DumpBlob("R", "Tabular", StageRewrote, "x"))
}

func TestAppendErrorAccumulatesLines(t *testing.T) {
	dir := t.TempDir()
	w, err := NewArtifactWriter(dir, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, w.AppendError(errors.New("first failure")))
	require.NoError(t, w.AppendError(errors.New("second failure")))

	data, err := os.ReadFile(filepath.Join(dir, "errors.log"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "first failure")
	assert.Contains(t, lines[0], "run="+w.RunID())
	assert.Contains(t, lines[1], "second failure")
}

func TestAppendErrorNilIsNoop(t *testing.T) {
	dir := t.TempDir()
	w, err := NewArtifactWriter(dir, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, w.AppendError(nil))
	_, statErr := os.Stat(filepath.Join(dir, "errors.log"))
	assert.True(t, os.IsNotExist(statErr))
}
