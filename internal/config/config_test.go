package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 3.0, cfg.Scan.MinDividendYield)
	assert.Equal(t, "data/scan_result.txt", cfg.Scan.OutputFile)
	assert.Equal(t, "1h", cfg.Monitor.Cooldown)
	assert.Equal(t, "Asia/Taipei", cfg.Window.Timezone)
	assert.Equal(t, "09:00", cfg.Window.Open)
	assert.Equal(t, "13:30", cfg.Window.Close)

	d, err := cfg.CooldownDuration()
	require.NoError(t, err)
	assert.Equal(t, time.Hour, d)
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
scan:
  min_dividend_yield: 4.5
monitor:
  notify_base_url: https://example.org/insert.php?num=
  cooldown: 30m
`), 0644))

	t.Setenv("ALERT_COOLDOWN", "2h")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4.5, cfg.Scan.MinDividendYield)
	assert.Equal(t, "2h", cfg.Monitor.Cooldown) // env wins over file
	require.NoError(t, cfg.Validate())
}

func TestValidate_Errors(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	// notify_base_url has no default and is required.
	assert.Error(t, cfg.Validate())

	cfg.Monitor.NotifyBaseURL = "https://example.org/insert.php?num="
	require.NoError(t, cfg.Validate())

	cfg.Monitor.Cooldown = "soon"
	assert.Error(t, cfg.Validate())
}
