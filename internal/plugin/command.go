package plugin

import (
	"context"
	"os/exec"
	"strings"

	"github.com/DigeeX/raider/internal/users"
)

// Command runs a shell command and captures its stdout, stripped of the
// trailing newline, each time it is resolved.
type Command struct {
	name string
	cmd  string
	args []string
}

// NewCommand builds a Command plugin running cmd with args.
func NewCommand(name, cmd string, args ...string) *Command {
	return &Command{name: name, cmd: cmd, args: args}
}

func (c *Command) Name() string { return c.name }
func (c *Command) Flags() Flag  { return 0 }

func (c *Command) ResolveInput(ctx context.Context, _ *users.User, _ *Store) (string, bool) {
	out, err := exec.CommandContext(ctx, c.cmd, c.args...).Output()
	if err != nil {
		return "", false
	}
	return strings.TrimRight(string(out), "\n"), true
}

func (c *Command) ExtractOutput(Response, *Store) (string, bool) { return "", false }
