package plugin

import (
	"context"
	"log"
	"regexp"

	"github.com/DigeeX/raider/internal/users"
)

// Regex extracts the first capturing group from a response body match.
// The pattern is compiled once at construction rather than per match.
type Regex struct {
	name    string
	pattern *regexp.Regexp
}

// NewRegex builds a Regex plugin named name, matching pattern against the
// response body and extracting capture group 1.
func NewRegex(name, pattern string) (*Regex, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return &Regex{name: name, pattern: re}, nil
}

func (r *Regex) Name() string { return r.name }
func (r *Regex) Flags() Flag  { return NeedsResponse }

func (r *Regex) ResolveInput(_ context.Context, _ *users.User, store *Store) (string, bool) {
	return store.Get(r.name)
}

func (r *Regex) ExtractOutput(resp Response, _ *Store) (string, bool) {
	m := r.pattern.FindSubmatch(resp.Body())
	if len(m) < 2 {
		log.Printf("[WARN] plugin %q: regex %q had no match", r.name, r.pattern.String())
		return "", false
	}
	return string(m[1]), true
}
