// pkg/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/David-Botos/report-migrator/pkg/model"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "migrate.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
reports:
  - Pipeline Overview
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Pipeline Overview"}, cfg.Reports)
	assert.Equal(t, model.ReportSubtypes, cfg.Subtypes)
	assert.Equal(t, "reportLayout", cfg.LayoutParam)
	assert.Equal(t, "59.0", cfg.APIVersion)
	assert.Equal(t, 1500*time.Millisecond, cfg.InterActionDelay())
	assert.False(t, cfg.CreateMissingReports)
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
reports:
  - Pipeline Overview
  - Quarterly Revenue
subtypes:
  - Tabular
  - Matrix
createMissingReports: true
headless: true
interActionDelayMs: 400
layoutParam: layoutSpec
apiVersion: "61.0"
artifactsDir: /tmp/artifacts
imagePolicy:
  strip: true
  replacement: REMOVED
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Tabular", "Matrix"}, cfg.Subtypes)
	assert.True(t, cfg.CreateMissingReports)
	assert.True(t, cfg.Headless)
	assert.Equal(t, 400*time.Millisecond, cfg.InterActionDelay())
	assert.Equal(t, "layoutSpec", cfg.LayoutParam)
	assert.Equal(t, "61.0", cfg.APIVersion)
	assert.True(t, cfg.ImagePolicy.Strip)
	assert.Equal(t, "REMOVED", cfg.ImagePolicy.Replacement)
}

func TestLoadRejectsEmptyReports(t *testing.T) {
	path := writeConfig(t, "reports: []\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one report")
}

func TestLoadRejectsBlankReportName(t *testing.T) {
	path := writeConfig(t, `
reports:
  - Pipeline Overview
  - ""
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "index 1")
}

func TestLoadRejectsUnknownSubtype(t *testing.T) {
	path := writeConfig(t, `
reports:
  - Pipeline Overview
subtypes:
  - Pivot
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Pivot")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadOrgRequiresAllVariables(t *testing.T) {
	t.Setenv("SOURCE_LOGIN_URL", "https://login.example.com")
	t.Setenv("SOURCE_USERNAME", "admin@example.com")
	t.Setenv("SOURCE_PASSWORD", "")

	_, err := LoadSourceOrg()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SOURCE_PASSWORD")
}

func TestLoadOrgReadsCredentials(t *testing.T) {
	t.Setenv("TARGET_LOGIN_URL", "https://login.example.com")
	t.Setenv("TARGET_USERNAME", "admin@example.com")
	t.Setenv("TARGET_PASSWORD", "hunter2")

	creds, err := LoadTargetOrg()
	require.NoError(t, err)
	assert.Equal(t, "https://login.example.com", creds.LoginURL)
	assert.Equal(t, "admin@example.com", creds.Username)
	assert.Equal(t, "hunter2", creds.Password)
}
