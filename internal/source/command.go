package source

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"navmenu/internal/menu"
)

// DefaultCommandTimeout bounds how long a menu command may run.
const DefaultCommandTimeout = 10 * time.Second

// ErrNoCommand is returned when the command line is empty.
var ErrNoCommand = errors.New("no menu command configured")

// FromCommand runs an external command and parses its stdout as a JSON menu.
// The command gets DefaultCommandTimeout on top of any deadline in ctx.
func FromCommand(ctx context.Context, command []string) ([]*menu.Node, error) {
	if len(command) == 0 {
		return nil, ErrNoCommand
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultCommandTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, command[0], command[1:]...)
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			if stderr := strings.TrimSpace(string(exitErr.Stderr)); stderr != "" {
				return nil, fmt.Errorf("failed to run %s: %w: %s", command[0], err, stderr)
			}
		}
		return nil, fmt.Errorf("failed to run %s: %w", command[0], err)
	}

	tree, err := Parse(output, FormatJSON)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s output: %w", command[0], err)
	}
	return tree, nil
}
