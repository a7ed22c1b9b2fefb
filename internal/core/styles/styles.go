// Package styles provides shared lipgloss styles for the TUI.
package styles

import (
	"hash/fnv"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Palette defines a minimal semantic theme palette.
type Palette struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Background lipgloss.Color
	Surface    lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
}

// DefaultTheme is the name of the default theme.
const DefaultTheme = "tokyo-night"

// themes holds the built-in named palettes.
var themes = map[string]Palette{
	"tokyo-night": {
		Primary:    lipgloss.Color("#7aa2f7"),
		Secondary:  lipgloss.Color("#7dcfff"),
		Foreground: lipgloss.Color("#c0caf5"),
		Muted:      lipgloss.Color("#565f89"),
		Background: lipgloss.Color("#1a1b26"),
		Surface:    lipgloss.Color("#3b4261"),
		Success:    lipgloss.Color("#9ece6a"),
		Warning:    lipgloss.Color("#e0af68"),
		Error:      lipgloss.Color("#f7768e"),
	},
	"gruvbox": {
		Primary:    lipgloss.Color("#83a598"),
		Secondary:  lipgloss.Color("#8ec07c"),
		Foreground: lipgloss.Color("#ebdbb2"),
		Muted:      lipgloss.Color("#665c54"),
		Background: lipgloss.Color("#282828"),
		Surface:    lipgloss.Color("#3c3836"),
		Success:    lipgloss.Color("#b8bb26"),
		Warning:    lipgloss.Color("#fabd2f"),
		Error:      lipgloss.Color("#fb4934"),
	},
}

// ThemeNames returns sorted names of all built-in themes.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetPalette returns the palette for the given theme name.
func GetPalette(name string) (Palette, bool) {
	p, ok := themes[name]
	return p, ok
}

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Notification icons.
const (
	IconNotifyInfo    = "ℹ"
	IconNotifyWarning = "▲"
	IconNotifyError   = "✗"
)

// Derived styles, rebuilt by SetTheme.
var (
	TextPrimaryStyle     lipgloss.Style
	TextPrimaryBoldStyle lipgloss.Style
	TextForegroundStyle  lipgloss.Style
	TextMutedStyle       lipgloss.Style
	TextErrorStyle       lipgloss.Style
	TextWarningStyle     lipgloss.Style
	TextSuccessStyle     lipgloss.Style
	SelectedRowStyle     lipgloss.Style
	PlayingRowStyle      lipgloss.Style
	StatusBarStyle       lipgloss.Style
	DirtyMarkerStyle     lipgloss.Style
	TimelineRulerStyle   lipgloss.Style
	ModalBorderStyle     lipgloss.Style
	ToastInfoStyle       lipgloss.Style
	ToastWarningStyle    lipgloss.Style
	ToastErrorStyle      lipgloss.Style
)

func init() {
	SetTheme(themes[DefaultTheme])
}

// SetTheme applies a palette and rebuilds the derived styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	TextPrimaryStyle = lipgloss.NewStyle().Foreground(p.Primary)
	TextPrimaryBoldStyle = lipgloss.NewStyle().Foreground(p.Primary).Bold(true)
	TextForegroundStyle = lipgloss.NewStyle().Foreground(p.Foreground)
	TextMutedStyle = lipgloss.NewStyle().Foreground(p.Muted)
	TextErrorStyle = lipgloss.NewStyle().Foreground(p.Error)
	TextWarningStyle = lipgloss.NewStyle().Foreground(p.Warning)
	TextSuccessStyle = lipgloss.NewStyle().Foreground(p.Success)
	SelectedRowStyle = lipgloss.NewStyle().Foreground(p.Foreground).Background(p.Surface).Bold(true)
	PlayingRowStyle = lipgloss.NewStyle().Foreground(p.Background).Background(p.Success).Bold(true)
	StatusBarStyle = lipgloss.NewStyle().Foreground(p.Foreground).Background(p.Surface)
	DirtyMarkerStyle = lipgloss.NewStyle().Foreground(p.Warning).Bold(true)
	TimelineRulerStyle = lipgloss.NewStyle().Foreground(p.Muted)
	ModalBorderStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Primary).Padding(0, 1)

	toastBase := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	ToastInfoStyle = toastBase.BorderForeground(p.Secondary).Foreground(p.Foreground)
	ToastWarningStyle = toastBase.BorderForeground(p.Warning).Foreground(p.Warning)
	ToastErrorStyle = toastBase.BorderForeground(p.Error).Foreground(p.Error)
}

// SpeakerColor derives a stable, distinct hue for a speaker label so the
// same speaker renders with the same color across views and sessions.
func SpeakerColor(speaker string) lipgloss.Color {
	h := fnv.New32a()
	_, _ = h.Write([]byte(speaker))
	hue := float64(h.Sum32() % 360)
	return lipgloss.Color(colorful.Hsl(hue, 0.55, 0.65).Hex())
}
