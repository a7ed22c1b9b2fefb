package tui

import (
	"sort"

	"github.com/colonyops/dubcal/internal/core/config"
	"github.com/colonyops/dubcal/internal/tui/components"
)

// Editor operations reachable through configurable keybindings.
const (
	opSplit      = "split"
	opMerge      = "merge"
	opDelete     = "delete"
	opInsert     = "insert"
	opUndo       = "undo"
	opRedo       = "redo"
	opSave       = "save"
	opTogglePlay = "toggle-play"
	opSeekBack   = "seek-back"
	opSeekFwd    = "seek-fwd"
	opZoomIn     = "zoom-in"
	opZoomOut    = "zoom-out"
)

// KeybindingResolver maps key presses to editor operations per the merged
// configuration.
type KeybindingResolver struct {
	bindings map[string]config.Keybinding
}

// NewKeybindingResolver creates a resolver over the merged keybindings.
func NewKeybindingResolver(bindings map[string]config.Keybinding) *KeybindingResolver {
	return &KeybindingResolver{bindings: bindings}
}

// Resolve returns the operation bound to a key, if any.
func (r *KeybindingResolver) Resolve(key string) (string, bool) {
	kb, ok := r.bindings[key]
	if !ok {
		return "", false
	}
	return kb.Op, true
}

// HelpSections builds the help dialog content: configured operations plus
// the fixed navigation and editing keys.
func (r *KeybindingResolver) HelpSections() []components.HelpDialogSection {
	keys := make([]string, 0, len(r.bindings))
	for k := range r.bindings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	editing := make([]components.HelpEntry, 0, len(keys))
	for _, k := range keys {
		kb := r.bindings[k]
		label := k
		if label == " " {
			label = "space"
		}
		editing = append(editing, components.HelpEntry{Key: label, Desc: kb.Help})
	}

	return []components.HelpDialogSection{
		{Title: "Editing", Entries: editing},
		{Title: "Fields", Entries: []components.HelpEntry{
			{Key: "enter", Desc: "edit source text"},
			{Key: "t", Desc: "edit translated text"},
			{Key: "e", Desc: "cycle emotion label"},
		}},
		{Title: "Navigation", Entries: []components.HelpEntry{
			{Key: "up/down", Desc: "select previous/next segment"},
			{Key: "?", Desc: "toggle help"},
			{Key: "q", Desc: "quit"},
		}},
	}
}
