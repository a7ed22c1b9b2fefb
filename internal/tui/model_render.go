package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/colonyops/dubcal/internal/core/segment"
	"github.com/colonyops/dubcal/internal/core/styles"
	"github.com/colonyops/dubcal/internal/editor"
	"github.com/colonyops/dubcal/internal/timeline"
)

// View renders the full frame: title bar, segment list, timeline strip, and
// the transport bar, with any active modal on top.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "loading..."
	}

	switch m.state {
	case stateShowingHelp:
		return m.help.Center(m.width, m.height)
	case stateConfirmingQuit:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.confirm.View())
	case stateContextMenu:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.renderMenu())
	}

	view := lipgloss.JoinVertical(lipgloss.Left,
		m.renderTitleBar(),
		m.renderList(),
		m.renderTimeline(),
		m.renderStatusBar(),
	)

	return m.toastView.Overlay(view, m.width, m.height)
}

func (m *Model) renderTitleBar() string {
	title := styles.TextPrimaryBoldStyle.Render(m.title())
	rev := styles.TextMutedStyle.Render(fmt.Sprintf("rev %d", m.service.Rev()))
	dirty := ""
	if m.service.Dirty() {
		dirty = styles.DirtyMarkerStyle.Render(" ● modified")
	}
	line := " " + title + "  " + rev + dirty
	return padLine(line, m.width)
}

func (m *Model) renderList() string {
	segs := m.service.Store().All()
	coord := m.service.Coordinator()
	h := m.listHeight()

	rows := make([]string, 0, h)
	for i := m.listOffset; i < len(segs) && len(rows) < h; i++ {
		rows = append(rows, m.renderListRow(segs[i], coord))
	}
	for len(rows) < h {
		rows = append(rows, strings.Repeat(" ", m.width))
	}
	return strings.Join(rows, "\n")
}

func (m *Model) renderListRow(s segment.Segment, coord *editor.Coordinator) string {
	highlight := coord.HighlightFor(s.ID)

	// Highlighted rows are styled whole, so their content stays unstyled.
	if highlight != editor.HighlightNone {
		line := truncate(listRowText(s), m.width)
		if highlight == editor.HighlightPlaying {
			return styles.PlayingRowStyle.Render(padLine(line, m.width))
		}
		return styles.SelectedRowStyle.Render(padLine(line, m.width))
	}

	overlap := " "
	if s.Flags.Overlap {
		overlap = styles.TextWarningStyle.Render("!")
	}
	translated := ""
	if s.TextEn != "" {
		translated = styles.TextMutedStyle.Render(" ⇢ " + s.TextEn)
	}

	line := fmt.Sprintf(" %s %s–%s %s %-8s %-9s %s%s",
		overlap,
		formatMs(s.StartMs), formatMs(s.EndMs),
		m.speakerStyle(s.Speaker).Render("S"+s.Speaker),
		truncate(s.Emotion, 8),
		truncate(s.Type, 9),
		s.Text,
		translated,
	)
	return padLine(truncate(line, m.width), m.width)
}

// listRowText renders a row's content without any inline styling.
func listRowText(s segment.Segment) string {
	overlap := " "
	if s.Flags.Overlap {
		overlap = "!"
	}
	translated := ""
	if s.TextEn != "" {
		translated = " ⇢ " + s.TextEn
	}
	return fmt.Sprintf(" %s %s–%s S%s %-8s %-9s %s%s",
		overlap,
		formatMs(s.StartMs), formatMs(s.EndMs),
		s.Speaker,
		truncate(s.Emotion, 8),
		truncate(s.Type, 9),
		s.Text,
		translated,
	)
}

// renderTimeline draws the ruler, the segment track, and the playhead line.
func (m *Model) renderTimeline() string {
	proj := m.timeline.Projection()
	segs := m.service.Store().All()
	coord := m.service.Coordinator()

	return strings.Join([]string{
		m.renderRuler(proj),
		m.renderTrack(proj, segs, coord),
		m.renderPlayheadLine(proj),
	}, "\n")
}

// renderRuler draws second ticks with time labels, spaced out as the zoom
// gets denser.
func (m *Model) renderRuler(proj timeline.Projection) string {
	cells := blankCells(m.width)

	labelEverySec := 10
	switch {
	case proj.Zoom() >= 80:
		labelEverySec = 1
	case proj.Zoom() >= 20:
		labelEverySec = 5
	}

	fromMs, toMs := proj.VisibleRangeMs(float64(m.width))
	for sec := fromMs / 1000; sec <= toMs/1000+1; sec++ {
		x := int(proj.MsToPixel(sec * 1000))
		if x < 0 || x >= m.width {
			continue
		}
		if sec%labelEverySec == 0 {
			label := fmt.Sprintf("╹%02d:%02d", sec/60, sec%60)
			for i, r := range []rune(label) {
				if x+i < m.width {
					cells[x+i] = string(r)
				}
			}
		} else {
			cells[x] = "╵"
		}
	}

	return styles.TimelineRulerStyle.Render(strings.Join(cells, ""))
}

// renderTrack fills segment spans with speaker-colored blocks, highlighting
// the selected and playing segments, and overlays the playhead column.
func (m *Model) renderTrack(proj timeline.Projection, segs []segment.Segment, coord *editor.Coordinator) string {
	cells := make([]string, m.width)
	gap := styles.TextMutedStyle.Render("·")
	for x := range cells {
		cells[x] = gap
	}

	for _, s := range segs {
		style := m.speakerStyle(s.Speaker)
		switch coord.HighlightFor(s.ID) {
		case editor.HighlightPlaying:
			style = styles.PlayingRowStyle
		case editor.HighlightSelected:
			style = styles.SelectedRowStyle
		}

		startX := int(proj.MsToPixel(s.StartMs))
		endX := int(proj.MsToPixel(s.EndMs))
		for x := startX; x <= endX; x++ {
			if x < 0 || x >= m.width {
				continue
			}
			ch := "█"
			if x == startX || x == endX {
				ch = "▐"
				if x == endX {
					ch = "▌"
				}
			}
			cells[x] = style.Render(ch)
		}
	}

	phX := int(proj.MsToPixel(m.service.Clock().CurrentMs()))
	if phX >= 0 && phX < m.width {
		cells[phX] = styles.TextErrorStyle.Bold(true).Render("┃")
	}

	return strings.Join(cells, "")
}

func (m *Model) renderPlayheadLine(proj timeline.Projection) string {
	phX := int(proj.MsToPixel(m.service.Clock().CurrentMs()))
	cells := blankCells(m.width)
	if phX >= 0 && phX < m.width {
		cells[phX] = styles.TextErrorStyle.Render("▲")
	}

	if drag := m.timeline.Dragging(); drag != nil {
		label := styles.TextWarningStyle.Render("adjusting " + drag.SegmentID)
		return overlayRight(strings.Join(cells, ""), label, m.width)
	}
	return strings.Join(cells, "")
}

func (m *Model) renderStatusBar() string {
	if m.state == stateEditingField {
		prompt := styles.TextPrimaryBoldStyle.Render(string(m.editingField) + " ▸ ")
		return padLine(" "+prompt+m.fieldInput.View(), m.width)
	}

	clock := m.service.Clock()
	icon := "⏸"
	if clock.IsPlaying() {
		icon = "▶"
	}

	left := fmt.Sprintf(" %s %s / %s  %d segments  zoom %.0fpx/s",
		icon,
		formatMs(clock.CurrentMs()),
		formatMs(clock.DurationMs()),
		m.service.Store().Len(),
		m.timeline.Projection().Zoom(),
	)
	right := "? help "

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return styles.StatusBarStyle.Render(left + strings.Repeat(" ", gap) + right)
}

func (m *Model) renderMenu() string {
	var b strings.Builder
	b.WriteString(styles.TextPrimaryBoldStyle.Render("Segment actions"))
	b.WriteString("\n\n")

	for i, a := range m.menu.Actions {
		label := menuLabel(a)
		if i == m.menuIdx {
			label = styles.SelectedRowStyle.Render("▸ " + label)
		} else {
			label = "  " + label
		}
		b.WriteString(label)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.TextMutedStyle.Render("enter apply · esc close"))
	return styles.ModalBorderStyle.Render(b.String())
}

func menuLabel(a timeline.MenuAction) string {
	switch a {
	case timeline.MenuSplit:
		return "Split at this point"
	case timeline.MenuMergeNext:
		return "Merge with next"
	case timeline.MenuDelete:
		return "Delete segment"
	case timeline.MenuInsertAt:
		return "Insert segment here"
	case timeline.MenuUndo:
		return "Undo"
	case timeline.MenuRedo:
		return "Redo"
	}
	return ""
}

// formatMs renders milliseconds as mm:ss.t.
func formatMs(ms int) string {
	if ms < 0 {
		ms = 0
	}
	return fmt.Sprintf("%02d:%02d.%d", ms/60000, ms%60000/1000, ms%1000/100)
}

func blankCells(w int) []string {
	cells := make([]string, w)
	for i := range cells {
		cells[i] = " "
	}
	return cells
}

// truncate cuts a string to at most w display cells, ANSI-aware.
func truncate(s string, w int) string {
	if lipgloss.Width(s) <= w {
		return s
	}
	return ansi.Truncate(s, w, "…")
}

// padLine pads a styled line with spaces to the full width.
func padLine(s string, w int) string {
	gap := w - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}

// overlayRight replaces the right end of a cell line with a label.
func overlayRight(line, label string, w int) string {
	lw := lipgloss.Width(label)
	if lw >= w {
		return label
	}
	return ansi.Truncate(line, w-lw-1, "") + label + " "
}
