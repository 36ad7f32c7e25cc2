package plugin

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"

	"github.com/DigeeX/raider/internal/users"
)

// terminalMu serialises terminal reads across concurrent runs: the
// terminal is a single process-wide resource and two runs prompting at
// once would interleave their output.
var terminalMu sync.Mutex

// Prompt reads a line from the interactive terminal at resolution time.
// The value is cached for the lifetime of the Store it was resolved
// against (one authentication run) so the operator is not asked twice in
// the same run.
type Prompt struct {
	name    string
	message string
	hidden  bool // read without echo via golang.org/x/term

	in  io.Reader
	out io.Writer
}

// NewPrompt builds a Prompt plugin that asks message on the terminal.
func NewPrompt(name, message string, hidden bool) *Prompt {
	return &Prompt{name: name, message: message, hidden: hidden, in: os.Stdin, out: os.Stderr}
}

func (p *Prompt) Name() string { return p.name }
func (p *Prompt) Flags() Flag  { return 0 }

func (p *Prompt) ResolveInput(_ context.Context, _ *users.User, store *Store) (string, bool) {
	if store.promptedOnce(p.name) {
		return store.Get(p.name)
	}
	val, err := p.read()
	if err != nil {
		return "", false
	}
	store.Set(p.name, val)
	return val, true
}

func (p *Prompt) ExtractOutput(Response, *Store) (string, bool) { return "", false }

func (p *Prompt) read() (string, error) {
	terminalMu.Lock()
	defer terminalMu.Unlock()

	fmt.Fprintf(p.out, "%s: ", p.message)

	if p.hidden {
		if f, ok := p.in.(*os.File); ok {
			raw, err := term.ReadPassword(int(f.Fd()))
			fmt.Fprintln(p.out)
			if err != nil {
				return "", err
			}
			return string(raw), nil
		}
	}

	reader := bufio.NewReader(p.in)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
