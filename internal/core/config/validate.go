package config

import (
	"fmt"
	"strings"

	"github.com/colonyops/dubcal/internal/core/styles"
)

// knownOps are the operation names a keybinding may dispatch. Every entry
// maps onto the editor service's command surface; there is no other
// mutation path.
var knownOps = map[string]bool{
	"split":       true,
	"merge":       true,
	"delete":      true,
	"insert":      true,
	"undo":        true,
	"redo":        true,
	"save":        true,
	"toggle-play": true,
	"seek-back":   true,
	"seek-fwd":    true,
	"zoom-in":     true,
	"zoom-out":    true,
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if _, ok := styles.GetPalette(c.TUI.Theme); !ok {
		return fmt.Errorf("unknown theme %q (valid: %s)", c.TUI.Theme, strings.Join(styles.ThemeNames(), ", "))
	}

	for key, kb := range c.Keybindings {
		if !knownOps[kb.Op] {
			return fmt.Errorf("keybinding %q: unknown op %q", key, kb.Op)
		}
	}

	for i, e := range c.Emotions {
		if strings.TrimSpace(e.Value) == "" {
			return fmt.Errorf("emotions[%d]: value is required", i)
		}
	}

	return nil
}
