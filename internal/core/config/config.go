// Package config handles configuration loading and validation for dubcal.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Player      PlayerConfig          `yaml:"player"`
	Library     LibraryConfig         `yaml:"library"`
	TUI         TUIConfig             `yaml:"tui"`
	Emotions    []EmotionLabel        `yaml:"emotions"`
	Keybindings map[string]Keybinding `yaml:"keybindings"`
	DataDir     string                `yaml:"-"` // set by caller, not from config file
}

// PlayerConfig configures the external media player.
type PlayerConfig struct {
	// Command is the player binary. Only mpv's JSON IPC is spoken.
	Command string `yaml:"command"`
	// SocketDir is where per-session IPC sockets are created.
	// Defaults to <data-dir>/sockets.
	SocketDir string `yaml:"socket_dir"`
}

// LibraryConfig configures document discovery.
type LibraryConfig struct {
	// Roots are directories scanned for calibration documents.
	Roots []string `yaml:"roots"`
	// Pattern is the doublestar glob matched under each root.
	Pattern string `yaml:"pattern"`
}

// TUIConfig holds interface options.
type TUIConfig struct {
	Theme string `yaml:"theme"`
}

// EmotionLabel is one entry of the global emotion label set offered when
// editing a segment's emotion field.
type EmotionLabel struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// Keybinding maps a key to an editor operation.
type Keybinding struct {
	Op   string `yaml:"op"`   // operation name (split, merge, delete, undo, redo, save, ...)
	Help string `yaml:"help"` // help text shown in the TUI
}

// defaultKeybindings provides built-in keybindings that users can override.
var defaultKeybindings = map[string]Keybinding{
	"s":      {Op: "split", Help: "split at playhead"},
	"m":      {Op: "merge", Help: "merge with next"},
	"d":      {Op: "delete", Help: "delete segment"},
	"i":      {Op: "insert", Help: "insert segment"},
	"u":      {Op: "undo", Help: "undo"},
	"ctrl+r": {Op: "redo", Help: "redo"},
	"ctrl+s": {Op: "save", Help: "save"},
	" ":      {Op: "toggle-play", Help: "play/pause"},
	"left":   {Op: "seek-back", Help: "seek back 1s"},
	"right":  {Op: "seek-fwd", Help: "seek forward 1s"},
	"+":      {Op: "zoom-in", Help: "zoom timeline in"},
	"-":      {Op: "zoom-out", Help: "zoom timeline out"},
}

// DefaultEmotions mirrors the upstream global emotion set.
var DefaultEmotions = []EmotionLabel{
	{Name: "Neutral", Value: "neutral"},
	{Name: "Happy", Value: "happy"},
	{Name: "Sad", Value: "sad"},
	{Name: "Angry", Value: "angry"},
	{Name: "Fearful", Value: "fearful"},
	{Name: "Surprised", Value: "surprised"},
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Player: PlayerConfig{
			Command: "mpv",
		},
		Library: LibraryConfig{
			Pattern: "**/*.dub.json",
		},
		TUI: TUIConfig{
			Theme: "tokyo-night",
		},
		Emotions:    DefaultEmotions,
		Keybindings: map[string]Keybinding{},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the
// provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.Keybindings = mergeKeybindings(defaultKeybindings, cfg.Keybindings)
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// mergeKeybindings merges user keybindings over the defaults.
func mergeKeybindings(defaults, user map[string]Keybinding) map[string]Keybinding {
	merged := make(map[string]Keybinding, len(defaults)+len(user))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range user {
		merged[k] = v
	}
	return merged
}

// applyDefaults fills zero values that the YAML file may have cleared.
func (c *Config) applyDefaults() {
	if c.Player.Command == "" {
		c.Player.Command = "mpv"
	}
	if c.Player.SocketDir == "" {
		c.Player.SocketDir = filepath.Join(c.DataDir, "sockets")
	}
	if c.Library.Pattern == "" {
		c.Library.Pattern = "**/*.dub.json"
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = "tokyo-night"
	}
	if len(c.Emotions) == 0 {
		c.Emotions = DefaultEmotions
	}
}

// DatabasePath returns the path of the preferences database.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "dubcal.db")
}
