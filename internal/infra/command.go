package infra

import (
	"context"
	"os/exec"

	"github.com/eliteGoblin/focusd/brewsvc/internal/domain"
)

// RealCommandRunner executes real system commands.
type RealCommandRunner struct{}

// NewCommandRunner creates a runner backed by os/exec.
func NewCommandRunner() domain.CommandRunner {
	return &RealCommandRunner{}
}

// Output executes a command and returns its stdout.
// The command is killed when ctx is done.
func (r *RealCommandRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = nil // Prevent any interactive prompts
	return cmd.Output()
}

// Ensure RealCommandRunner implements domain.CommandRunner.
var _ domain.CommandRunner = (*RealCommandRunner)(nil)
