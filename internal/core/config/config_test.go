package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_missing_file_returns_defaults(t *testing.T) {
	dataDir := t.TempDir()

	cfg, err := Load(filepath.Join(dataDir, "nope.yaml"), dataDir)
	require.NoError(t, err)

	assert.Equal(t, "mpv", cfg.Player.Command)
	assert.Equal(t, filepath.Join(dataDir, "sockets"), cfg.Player.SocketDir)
	assert.Equal(t, "**/*.dub.json", cfg.Library.Pattern)
	assert.Equal(t, "tokyo-night", cfg.TUI.Theme)
	assert.NotEmpty(t, cfg.Emotions)
	assert.Equal(t, "split", cfg.Keybindings["s"].Op)
}

func TestLoad_user_keybindings_override_defaults(t *testing.T) {
	path := writeConfig(t, `
keybindings:
  s:
    op: save
    help: quick save
  x:
    op: delete
    help: delete segment
`)

	cfg, err := Load(path, t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "save", cfg.Keybindings["s"].Op)
	assert.Equal(t, "delete", cfg.Keybindings["x"].Op)
	// Untouched defaults survive the merge.
	assert.Equal(t, "merge", cfg.Keybindings["m"].Op)
}

func TestLoad_rejects_unknown_theme(t *testing.T) {
	path := writeConfig(t, `
tui:
  theme: neon-dreams
`)

	_, err := Load(path, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestLoad_rejects_unknown_keybinding_op(t *testing.T) {
	path := writeConfig(t, `
keybindings:
  z:
    op: teleport
`)

	_, err := Load(path, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "teleport")
}

func TestLoad_rejects_malformed_yaml(t *testing.T) {
	path := writeConfig(t, "player: [not a map")

	_, err := Load(path, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestConfig_DatabasePath(t *testing.T) {
	cfg := Config{DataDir: "/var/lib/dubcal"}
	assert.Equal(t, filepath.Join("/var/lib/dubcal", "dubcal.db"), cfg.DatabasePath())
}
