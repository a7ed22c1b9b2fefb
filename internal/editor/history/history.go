// Package history implements the undo/redo command engine.
//
// A Command is a reversible change with paired apply/inverse actions. The
// engine is the only sanctioned path for reversible mutation: Execute applies
// a command and records it; Undo and Redo move commands between the two
// stacks. Stacks are discarded wholesale on document switch.
package history

// Command is a reversible change. Apply and Invert must be exact inverses:
// replaying Apply for every command on the undo stack, bottom to top,
// against the originally loaded document reproduces the current content.
type Command interface {
	Apply()
	Invert()
	Description() string
}

// Engine holds the undo and redo stacks for one editing session.
type Engine struct {
	undo []Command
	redo []Command
}

// NewEngine creates an engine with empty stacks.
func NewEngine() *Engine {
	return &Engine{}
}

// Execute applies the command, pushes it onto the undo stack, and clears
// the redo stack.
func (e *Engine) Execute(cmd Command) {
	cmd.Apply()
	e.undo = append(e.undo, cmd)
	e.redo = nil
}

// Undo reverts the most recent command. No-op when the undo stack is empty.
func (e *Engine) Undo() bool {
	if len(e.undo) == 0 {
		return false
	}
	cmd := e.undo[len(e.undo)-1]
	e.undo = e.undo[:len(e.undo)-1]
	cmd.Invert()
	e.redo = append(e.redo, cmd)
	return true
}

// Redo re-applies the most recently undone command. No-op when the redo
// stack is empty.
func (e *Engine) Redo() bool {
	if len(e.redo) == 0 {
		return false
	}
	cmd := e.redo[len(e.redo)-1]
	e.redo = e.redo[:len(e.redo)-1]
	cmd.Apply()
	e.undo = append(e.undo, cmd)
	return true
}

// CanUndo reports whether the undo stack is non-empty.
func (e *Engine) CanUndo() bool {
	return len(e.undo) > 0
}

// CanRedo reports whether the redo stack is non-empty.
func (e *Engine) CanRedo() bool {
	return len(e.redo) > 0
}

// UndoDescription returns the description of the command Undo would revert.
func (e *Engine) UndoDescription() string {
	if len(e.undo) == 0 {
		return ""
	}
	return e.undo[len(e.undo)-1].Description()
}

// RedoDescription returns the description of the command Redo would re-apply.
func (e *Engine) RedoDescription() string {
	if len(e.redo) == 0 {
		return ""
	}
	return e.redo[len(e.redo)-1].Description()
}

// Clear discards both stacks. Called on document switch; there is no
// cross-document undo.
func (e *Engine) Clear() {
	e.undo = nil
	e.redo = nil
}

// FuncCommand adapts apply/invert closures into a Command. Closures must
// capture immutable snapshots, never live references.
type FuncCommand struct {
	Desc     string
	ApplyFn  func()
	InvertFn func()
}

// Apply runs the apply closure.
func (c FuncCommand) Apply() { c.ApplyFn() }

// Invert runs the invert closure.
func (c FuncCommand) Invert() { c.InvertFn() }

// Description returns the human-readable command description.
func (c FuncCommand) Description() string { return c.Desc }
