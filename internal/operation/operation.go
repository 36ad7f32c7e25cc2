// Package operation implements the post-response action variants attached
// to a flow: control-flow (NextStage), conditionals (Http, Grep), and side
// effects (Print, Save, Error).
package operation

import (
	"fmt"
	"log"
	"os"
	"regexp"

	"github.com/DigeeX/raider/internal/plugin"
	"github.com/DigeeX/raider/internal/response"
)

// VerdictKind distinguishes the possible outcomes of evaluating an operation.
type VerdictKind int

const (
	// Continue means "move on to the next operation".
	Continue VerdictKind = iota
	// Next means "transition to the named stage". A NextStage with an
	// empty name yields Stop, not Next.
	Next
	// Stop means "authentication finished successfully".
	Stop
	// Err means "abort with an error message".
	Err
)

// Verdict is the result of evaluating one operation.
type Verdict struct {
	Kind    VerdictKind
	Name    string // target stage name, only meaningful when Kind == Next
	Message string // only meaningful when Kind == Err
}

// IsTerminal reports whether v ends flow evaluation.
func (v Verdict) IsTerminal() bool { return v.Kind != Continue }

var continueVerdict = Verdict{Kind: Continue}

// Operation is a post-response action. Evaluate runs it against resp and
// returns the resulting verdict.
type Operation interface {
	Evaluate(resp *response.Response, store *plugin.Store) Verdict
}

// List is an ordered sequence of operations, evaluated in order,
// short-circuiting on the first terminal verdict.
type List []Operation

func (l List) Evaluate(resp *response.Response, store *plugin.Store) Verdict {
	for _, op := range l {
		v := op.Evaluate(resp, store)
		if v.IsTerminal() {
			return v
		}
	}
	return continueVerdict
}

// NextStage is a terminal control-flow verdict. Name == "" means "stop
// authentication normally".
type NextStage struct {
	Name string
}

func (n NextStage) Evaluate(*response.Response, *plugin.Store) Verdict {
	if n.Name == "" {
		return Verdict{Kind: Stop}
	}
	return Verdict{Kind: Next, Name: n.Name}
}

// Error is a terminal "abort with message" operation.
type Error struct {
	Message string
}

func (e Error) Evaluate(*response.Response, *plugin.Store) Verdict {
	return Verdict{Kind: Err, Message: e.Message}
}

// Item is one thing Print can render: either a literal string or a plugin's
// current value.
type Item struct {
	Literal string
	Plugin  plugin.Plugin
}

func LitItem(s string) Item         { return Item{Literal: s} }
func PluginItem(p plugin.Plugin) Item { return Item{Plugin: p} }

func (i Item) render(store *plugin.Store) string {
	if i.Plugin == nil {
		return i.Literal
	}
	if v, ok := store.Get(i.Plugin.Name()); ok {
		return v
	}
	return ""
}

// PrintMode selects what Print prints: the literal items (PrintItems), or
// instead of them the body, headers or cookies.
type PrintMode int

const (
	PrintItems PrintMode = iota
	PrintBody
	PrintHeaders
	PrintCookies
)

// Print prints each item on its own line (continue verdict); also supports
// the Print.body / Print.headers[name] / Print.cookies[name] variants.
type Print struct {
	Mode  PrintMode
	Items []Item
	Name  string // header/cookie name filter; empty means "all"
	out   func(string)
}

func NewPrint(items ...Item) *Print {
	return &Print{Mode: PrintItems, Items: items}
}

func NewPrintBody() *Print { return &Print{Mode: PrintBody} }

func NewPrintHeaders(name string) *Print { return &Print{Mode: PrintHeaders, Name: name} }

func NewPrintCookies(name string) *Print { return &Print{Mode: PrintCookies, Name: name} }

// SetOutputForTest overrides where Print writes its lines, for tests that
// need to observe side effects without capturing stdout.
func (p *Print) SetOutputForTest(out func(string)) { p.out = out }

func (p *Print) print(line string) {
	if p.out != nil {
		p.out(line)
		return
	}
	fmt.Println(line)
}

func (p *Print) Evaluate(resp *response.Response, store *plugin.Store) Verdict {
	switch p.Mode {
	case PrintBody:
		p.print(string(resp.Body()))
	case PrintHeaders:
		if p.Name != "" {
			if v, ok := resp.Header(p.Name); ok {
				p.print(p.Name + ": " + v)
			}
			break
		}
		for name, vals := range resp.Headers() {
			for _, v := range vals {
				p.print(name + ": " + v)
			}
		}
	case PrintCookies:
		if p.Name != "" {
			if v, ok := resp.Cookie(p.Name); ok {
				p.print(p.Name + "=" + v)
			}
			break
		}
		for _, c := range resp.Cookies() {
			p.print(c.Name + "=" + c.Value)
		}
	default:
		for _, item := range p.Items {
			p.print(item.render(store))
		}
	}
	return continueVerdict
}

// Save writes a plugin's current value (or the response body) to a
// filesystem path.
type Save struct {
	Path   string
	Plugin plugin.Plugin // nil means "save the response body"
	Append bool
}

func (s Save) Evaluate(resp *response.Response, store *plugin.Store) Verdict {
	var data []byte
	if s.Plugin == nil {
		data = resp.Body()
	} else if v, ok := store.Get(s.Plugin.Name()); ok {
		data = []byte(v)
	}

	flags := os.O_CREATE | os.O_WRONLY
	if s.Append {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	f, err := os.OpenFile(s.Path, flags, 0o644)
	if err != nil {
		log.Printf("[WARN] save: open %s: %v", s.Path, err)
		return continueVerdict
	}
	defer f.Close()
	if _, err := f.Write(data); err != nil {
		log.Printf("[WARN] save: write %s: %v", s.Path, err)
	}
	return continueVerdict
}

// Http evaluates Action when resp's status equals Status, else Otherwise
// (if present); a false predicate with no Otherwise contributes Continue.
type Http struct {
	Status    int
	Action    Operation
	Otherwise Operation
}

func (h Http) Evaluate(resp *response.Response, store *plugin.Store) Verdict {
	if resp.StatusCode() == h.Status {
		return h.Action.Evaluate(resp, store)
	}
	if h.Otherwise != nil {
		return h.Otherwise.Evaluate(resp, store)
	}
	return continueVerdict
}

// Grep evaluates Action when resp's body matches Pattern, else Otherwise.
type Grep struct {
	Pattern   *regexp.Regexp
	Action    Operation
	Otherwise Operation
}

// NewGrep compiles pattern once, at graph construction.
func NewGrep(pattern string, action, otherwise Operation) (*Grep, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return &Grep{Pattern: re, Action: action, Otherwise: otherwise}, nil
}

func (g *Grep) Evaluate(resp *response.Response, store *plugin.Store) Verdict {
	if g.Pattern.Match(resp.Body()) {
		return g.Action.Evaluate(resp, store)
	}
	if g.Otherwise != nil {
		return g.Otherwise.Evaluate(resp, store)
	}
	return continueVerdict
}
