package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/colonyops/dubcal/internal/editor/edit"
	"github.com/colonyops/dubcal/internal/playback"
	"github.com/colonyops/dubcal/internal/timeline"
	"github.com/colonyops/dubcal/internal/tui/components"
)

type playerEventMsg playback.Event

type playerGoneMsg struct{}

// listenForPlayerEvents waits for the next player notification.
func (m *Model) listenForPlayerEvents() tea.Cmd {
	if m.events == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return playerGoneMsg{}
		}
		return playerEventMsg(ev)
	}
}

// Update is the single-threaded message loop. All mutations dispatch through
// the editor service; views re-derive their state on render.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case playerEventMsg:
		m.sync.HandleEvent(playback.Event(msg))
		m.followPlayback()
		cmd = m.listenForPlayerEvents()

	case playerGoneMsg:
		if m.bus != nil {
			m.bus.Warnf("player disconnected")
		}
		m.events = nil

	case toastTickMsg:
		m.toasts.Tick(toastTickInterval)
		if m.toasts.HasToasts() {
			cmd = scheduleToastTick()
		} else {
			m.toasts.SetTicking(false)
		}

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tea.KeyMsg:
		cmd = m.handleKey(msg)
	}

	if m.toasts.HasToasts() && !m.toasts.Ticking() {
		m.toasts.SetTicking(true)
		return m, tea.Batch(cmd, scheduleToastTick())
	}
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch m.state {
	case stateEditingField:
		return m.handleFieldKey(msg)
	case stateContextMenu:
		m.handleMenuKey(msg)
		return nil
	case stateConfirmingQuit:
		return m.handleConfirmKey(msg)
	case stateShowingHelp:
		switch msg.String() {
		case "?", "esc", "q":
			m.state = stateNormal
		}
		return nil
	}
	return m.handleNormalKey(msg)
}

func (m *Model) handleNormalKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return m.requestQuit()
	case "?":
		m.state = stateShowingHelp
		return nil
	case "up", "k":
		m.moveSelection(-1)
		return nil
	case "down", "j":
		m.moveSelection(1)
		return nil
	case "enter":
		m.beginFieldEdit(edit.FieldText)
		return nil
	case "t":
		m.beginFieldEdit(edit.FieldTextEn)
		return nil
	case "e":
		m.cycleEmotion()
		return nil
	}

	if op, ok := m.resolver.Resolve(key); ok {
		return m.dispatchOp(op)
	}
	return nil
}

// dispatchOp executes a configurable editor operation. Rejected edit
// preconditions are silent no-ops, matching direct manipulation behavior.
func (m *Model) dispatchOp(op string) tea.Cmd {
	clock := m.service.Clock()
	coord := m.service.Coordinator()

	switch op {
	case opSplit:
		if s, ok := coord.SegmentAt(clock.CurrentMs()); ok {
			m.service.Split(s.ID, clock.CurrentMs())
		}
	case opMerge:
		if id := coord.SelectedID(); id != "" {
			m.service.MergeWithNext(id)
		}
	case opDelete:
		if id := coord.SelectedID(); id != "" {
			m.service.Delete(id)
		}
	case opInsert:
		m.service.InsertBlankAt(clock.CurrentMs())
	case opUndo:
		m.undoWithToast()
	case opRedo:
		m.redoWithToast()
	case opSave:
		m.saveDocument()
	case opTogglePlay:
		if err := m.sync.TogglePlayback(context.Background()); err != nil && m.bus != nil {
			m.bus.Errorf("playback: %v", err)
		}
	case opSeekBack:
		m.service.Seek(clock.CurrentMs() - 1000)
	case opSeekFwd:
		m.service.Seek(clock.CurrentMs() + 1000)
	case opZoomIn:
		m.timeline.Wheel(0, 1, true)
	case opZoomOut:
		m.timeline.Wheel(0, -1, true)
	}
	return nil
}

func (m *Model) saveDocument() {
	if err := m.service.Save(context.Background()); err != nil {
		if m.bus != nil {
			m.bus.Errorf("save failed: %v", err)
		}
		return
	}
	if m.bus != nil {
		m.bus.Infof("saved rev %d", m.service.Rev())
	}
}

// requestQuit exits immediately when clean, or raises the unsaved-changes
// guard when the document is dirty.
func (m *Model) requestQuit() tea.Cmd {
	if !m.service.Dirty() {
		m.savePrefs()
		m.quitting = true
		return tea.Quit
	}
	m.confirm = components.NewConfirmModal("You have unsaved changes. Quit without saving?")
	m.state = stateConfirmingQuit
	return nil
}

func (m *Model) handleConfirmKey(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	m.confirm, cmd = m.confirm.Update(msg)
	switch {
	case m.confirm.Confirmed():
		m.savePrefs()
		m.quitting = true
		return tea.Quit
	case m.confirm.Cancelled():
		m.state = stateNormal
	}
	return cmd
}

// moveSelection selects the previous or next segment in sequence order.
func (m *Model) moveSelection(delta int) {
	segs := m.service.Store().All()
	if len(segs) == 0 {
		return
	}

	idx := m.service.Store().IndexOf(m.service.Coordinator().SelectedID())
	if idx < 0 {
		idx = 0
	} else {
		idx += delta
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= len(segs) {
		idx = len(segs) - 1
	}

	m.service.Select(segs[idx].ID)
	m.scrollListTo(idx)
	m.followPlayback()
}

// scrollListTo keeps the given row index visible in the segment list.
func (m *Model) scrollListTo(idx int) {
	h := m.listHeight()
	if idx < m.listOffset {
		m.listOffset = idx
	}
	if idx >= m.listOffset+h {
		m.listOffset = idx - h + 1
	}
	if m.listOffset < 0 {
		m.listOffset = 0
	}
}

// followPlayback applies the auto-scroll rules for both the timeline and the
// segment list after any event that moved the playhead or the selection.
func (m *Model) followPlayback() {
	clock := m.service.Clock()
	coord := m.service.Coordinator()
	segs := m.service.Store().All()

	m.timeline.AutoScroll(segs, clock.CurrentMs(), clock.IsPlaying(), coord.SelectedID(), float64(m.width))

	if id, ok := coord.ListScrollTarget(); ok {
		if idx := m.service.Store().IndexOf(id); idx >= 0 {
			m.scrollListTo(idx)
		}
	}
}

// beginFieldEdit opens the inline input over the selected segment's field.
func (m *Model) beginFieldEdit(f edit.Field) {
	id := m.service.Coordinator().SelectedID()
	if id == "" {
		return
	}
	s, ok := m.service.Store().Get(id)
	if !ok {
		return
	}

	m.editingID = id
	m.editingField = f
	m.editingOld = edit.FieldValue(s, f)
	m.fieldInput.SetValue(m.editingOld)
	m.fieldInput.CursorEnd()
	m.fieldInput.Focus()
	m.state = stateEditingField
}

func (m *Model) handleFieldKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		m.service.PatchField(m.editingID, m.editingField, m.editingOld, m.fieldInput.Value())
		m.endFieldEdit()
		return nil
	case "esc":
		m.endFieldEdit()
		return nil
	}

	var cmd tea.Cmd
	m.fieldInput, cmd = m.fieldInput.Update(msg)
	return cmd
}

func (m *Model) endFieldEdit() {
	m.fieldInput.Blur()
	m.editingID = ""
	m.state = stateNormal
}

// cycleEmotion advances the selected segment's emotion through the
// configured label set.
func (m *Model) cycleEmotion() {
	id := m.service.Coordinator().SelectedID()
	if id == "" || len(m.cfg.Emotions) == 0 {
		return
	}
	s, ok := m.service.Store().Get(id)
	if !ok {
		return
	}

	next := m.cfg.Emotions[0].Value
	for i, em := range m.cfg.Emotions {
		if em.Value == s.Emotion {
			next = m.cfg.Emotions[(i+1)%len(m.cfg.Emotions)].Value
			break
		}
	}
	m.service.PatchField(id, edit.FieldEmotion, s.Emotion, next)
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	top := m.timelineTop()
	inTimeline := msg.Y >= top && msg.Y < top+timelineHeight
	inList := msg.Y >= titleBarHeight && msg.Y < titleBarHeight+m.listHeight()

	// An in-flight drag follows the pointer wherever it goes.
	if m.timeline.Dragging() != nil {
		switch msg.Action {
		case tea.MouseActionMotion:
			m.timeline.PointerMove(float64(msg.X))
		case tea.MouseActionRelease:
			m.timeline.PointerUp(float64(msg.X))
		}
		return
	}

	switch {
	case inTimeline:
		m.handleTimelineMouse(msg)
	case inList:
		m.handleListMouse(msg)
	}
}

func (m *Model) handleTimelineMouse(msg tea.MouseMsg) {
	segs := m.service.Store().All()
	x := float64(msg.X)

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.timeline.Wheel(0, 1, msg.Ctrl || msg.Alt)
		return
	case tea.MouseButtonWheelDown:
		m.timeline.Wheel(0, -1, msg.Ctrl || msg.Alt)
		return
	}

	if msg.Action != tea.MouseActionPress {
		return
	}

	switch msg.Button {
	case tea.MouseButtonLeft:
		m.timeline.PointerDown(segs, x)
	case tea.MouseButtonRight:
		m.menu = m.timeline.ContextMenu(segs, x)
		m.menuIdx = 0
		m.state = stateContextMenu
	}
}

func (m *Model) handleListMouse(msg tea.MouseMsg) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scrollListBy(-1)
		return
	case tea.MouseButtonWheelDown:
		m.scrollListBy(1)
		return
	}

	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return
	}

	idx := m.listOffset + msg.Y - titleBarHeight
	segs := m.service.Store().All()
	if idx >= 0 && idx < len(segs) {
		m.service.Select(segs[idx].ID)
		m.followPlayback()
	}
}

func (m *Model) scrollListBy(delta int) {
	m.listOffset += delta
	maxOffset := m.service.Store().Len() - m.listHeight()
	if maxOffset < 0 {
		maxOffset = 0
	}
	if m.listOffset > maxOffset {
		m.listOffset = maxOffset
	}
	if m.listOffset < 0 {
		m.listOffset = 0
	}
}

func (m *Model) handleMenuKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "esc", "q":
		m.state = stateNormal
	case "up", "k":
		if m.menuIdx > 0 {
			m.menuIdx--
		}
	case "down", "j":
		if m.menuIdx < len(m.menu.Actions)-1 {
			m.menuIdx++
		}
	case "enter":
		m.state = stateNormal
		m.runMenuAction(m.menu.Actions[m.menuIdx])
	}
}

func (m *Model) runMenuAction(a timeline.MenuAction) {
	switch a {
	case timeline.MenuSplit:
		m.service.Split(m.menu.TargetID, m.menu.AtMs)
	case timeline.MenuMergeNext:
		m.service.MergeWithNext(m.menu.TargetID)
	case timeline.MenuDelete:
		m.service.Delete(m.menu.TargetID)
	case timeline.MenuInsertAt:
		m.service.InsertBlankAt(m.menu.AtMs)
	case timeline.MenuUndo:
		m.undoWithToast()
	case timeline.MenuRedo:
		m.redoWithToast()
	}
}

// undoWithToast reverts the most recent command and names it in a toast.
func (m *Model) undoWithToast() {
	desc := m.service.UndoDescription()
	if m.service.Undo() && m.bus != nil {
		m.bus.Infof("undid: %s", desc)
	}
}

// redoWithToast re-applies the most recently undone command and names it.
func (m *Model) redoWithToast() {
	desc := m.service.RedoDescription()
	if m.service.Redo() && m.bus != nil {
		m.bus.Infof("redid: %s", desc)
	}
}
