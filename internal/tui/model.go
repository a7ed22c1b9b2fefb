// Package tui implements the terminal interface for the calibration editor:
// the segment list, the timeline strip, and the transport bar, all rendering
// the same store and clock through the view coordinator.
package tui

import (
	"context"
	"path/filepath"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/colonyops/dubcal/internal/core/config"
	"github.com/colonyops/dubcal/internal/core/notify"
	"github.com/colonyops/dubcal/internal/core/styles"
	"github.com/colonyops/dubcal/internal/data/stores"
	"github.com/colonyops/dubcal/internal/editor"
	"github.com/colonyops/dubcal/internal/editor/edit"
	"github.com/colonyops/dubcal/internal/playback"
	"github.com/colonyops/dubcal/internal/timeline"
	"github.com/colonyops/dubcal/internal/tui/components"
	tuinotify "github.com/colonyops/dubcal/internal/tui/notify"
	"github.com/colonyops/dubcal/pkg/kv"
)

// UIState represents the current state of the TUI.
type UIState int

const (
	stateNormal UIState = iota
	stateEditingField
	stateContextMenu
	stateConfirmingQuit
	stateShowingHelp
)

// Heights of the fixed chrome rows around the segment list.
const (
	titleBarHeight  = 1
	timelineHeight  = 3
	statusBarHeight = 1
)

// Options configures the TUI behavior.
type Options struct {
	Config  *config.Config
	Service *editor.Service
	Sync    *playback.Sync
	Events  <-chan playback.Event   // player notifications (optional)
	Prefs   *stores.PrefsStore      // view state persistence (optional)
	DocPath string                  // path of the open document
	Bus     *tuinotify.Bus          // notification bus for toasts
	Log     zerolog.Logger
}

// Model is the main Bubble Tea model for the TUI.
type Model struct {
	cfg      *config.Config
	service  *editor.Service
	sync     *playback.Sync
	events   <-chan playback.Event
	timeline *timeline.Controller
	resolver *KeybindingResolver
	bus      *tuinotify.Bus
	prefs    *stores.PrefsStore
	docPath  string
	log      zerolog.Logger

	state  UIState
	width  int
	height int

	// Segment list scrolling.
	listOffset int

	// Field editing.
	fieldInput   textinput.Model
	editingID    string
	editingField edit.Field
	editingOld   string

	// Modals.
	confirm components.ConfirmModal
	help    *components.HelpDialog
	menu    timeline.Menu
	menuIdx int

	// Toasts.
	toasts    *ToastController
	toastView *ToastView

	// Cached per-speaker row styles.
	speakerStyles *kv.Store[string, lipgloss.Style]

	quitting bool
}

// New builds the TUI model around an assembled editing session.
func New(opts Options) *Model {
	ti := textinput.New()
	ti.CharLimit = 0

	toasts := NewToastController()
	m := &Model{
		cfg:           opts.Config,
		service:       opts.Service,
		sync:          opts.Sync,
		events:        opts.Events,
		timeline:      timeline.NewController(opts.Service),
		resolver:      NewKeybindingResolver(opts.Config.Keybindings),
		bus:           opts.Bus,
		prefs:         opts.Prefs,
		docPath:       opts.DocPath,
		log:           opts.Log,
		fieldInput:    ti,
		toasts:        toasts,
		toastView:     NewToastView(toasts),
		speakerStyles: kv.New[string, lipgloss.Style](),
	}
	m.help = components.NewHelpDialog("dubcal", m.resolver.HelpSections())

	if opts.Bus != nil {
		opts.Bus.Subscribe(func(n notify.Notification) {
			m.toasts.Push(n)
		})
	}

	m.restorePrefs()
	return m
}

// restorePrefs applies any remembered view state for this document.
func (m *Model) restorePrefs() {
	if m.prefs == nil {
		return
	}
	p, err := m.prefs.GetDocPrefs(context.Background(), m.docPath)
	if err != nil {
		return
	}
	m.timeline.SetZoom(p.Zoom)
	m.timeline.SetScrollOffset(p.ScrollMs)
	if p.SelectedID != "" {
		if _, ok := m.service.Store().Get(p.SelectedID); ok {
			m.service.Select(p.SelectedID)
		}
	}
}

// savePrefs persists the current view state for this document.
func (m *Model) savePrefs() {
	if m.prefs == nil {
		return
	}
	err := m.prefs.SaveDocPrefs(context.Background(), stores.DocPrefs{
		Path:       m.docPath,
		Zoom:       m.timeline.Projection().Zoom(),
		ScrollMs:   m.timeline.Projection().ScrollOffsetMs(),
		SelectedID: m.service.Coordinator().SelectedID(),
	})
	if err != nil {
		m.log.Warn().Err(err).Msg("save view prefs")
	}
}

// Init starts listening for player notifications.
func (m *Model) Init() tea.Cmd {
	return m.listenForPlayerEvents()
}

// speakerStyle returns the cached row style for a speaker label.
func (m *Model) speakerStyle(speaker string) lipgloss.Style {
	return m.speakerStyles.GetOrSet(speaker, func() lipgloss.Style {
		return lipgloss.NewStyle().Foreground(styles.SpeakerColor(speaker))
	})
}

// title returns the document name shown in the title bar.
func (m *Model) title() string {
	return filepath.Base(m.docPath)
}

// listHeight returns the row count available to the segment list.
func (m *Model) listHeight() int {
	h := m.height - titleBarHeight - timelineHeight - statusBarHeight
	if h < 1 {
		h = 1
	}
	return h
}

// timelineTop returns the first screen row of the timeline pane.
func (m *Model) timelineTop() int {
	return titleBarHeight + m.listHeight()
}
