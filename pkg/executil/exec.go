// Package executil provides an abstraction for locating and spawning
// external processes.
package executil

import (
	"context"
	"fmt"
	"os/exec"
)

// Executor locates and constructs external commands.
type Executor interface {
	// Command builds a command bound to ctx, ready to start.
	Command(ctx context.Context, name string, args ...string) *exec.Cmd
	// LookPath reports where a binary resolves on PATH.
	LookPath(name string) (string, error)
}

// RealExecutor spawns actual processes.
type RealExecutor struct{}

// Command builds a command bound to ctx.
func (e *RealExecutor) Command(ctx context.Context, name string, args ...string) *exec.Cmd {
	return exec.CommandContext(ctx, name, args...)
}

// LookPath resolves a binary on PATH.
func (e *RealExecutor) LookPath(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("lookup %s: %w", name, err)
	}
	return path, nil
}
