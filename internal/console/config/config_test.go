package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	home := t.TempDir()
	cfg, err := Load(DefaultPath(home), home)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/v1", cfg.APIURL)
	assert.Equal(t, filepath.Join(home, ".fieldops", "fieldops.db"), cfg.DBPath)
	assert.Equal(t, 1500*time.Millisecond, cfg.FallbackDelay)
	assert.True(t, cfg.ReportFix)
}

func TestLoad_FileThenEnv(t *testing.T) {
	home := t.TempDir()
	path := DefaultPath(home)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte(`
api_url: https://ops.example.com/v1
team: equipe-norte
platform: android
timeout: 5s
report_location: false
`), 0o600))

	t.Setenv("FIELDOPS_TEAM", "equipe-sul")
	t.Setenv("FIELDOPS_LOCATION", "-23.5,-46.6")

	cfg, err := Load(path, home)
	require.NoError(t, err)
	assert.Equal(t, "https://ops.example.com/v1", cfg.APIURL)
	assert.Equal(t, "equipe-sul", cfg.Team)
	assert.Equal(t, "android", cfg.Platform)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.False(t, cfg.ReportFix)
	assert.Equal(t, "-23.5,-46.6", cfg.Location)
}

func TestLoad_BadValues(t *testing.T) {
	home := t.TempDir()
	path := filepath.Join(home, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_url: [unclosed"), 0o600))
	_, err := Load(path, home)
	assert.Error(t, err)

	t.Setenv("FIELDOPS_TIMEOUT", "soon")
	_, err = Load(DefaultPath(home), home)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	home := t.TempDir()
	path := DefaultPath(home)
	cfg := Default(home)
	cfg.Team = "equipe-norte"
	require.NoError(t, Save(path, cfg))

	got, err := Load(path, home)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
