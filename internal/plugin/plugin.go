// Package plugin implements Raider's named value carriers: the small set of
// building blocks a flow graph splices into outgoing requests and fills from
// incoming responses.
package plugin

import (
	"context"
	"fmt"

	"github.com/DigeeX/raider/internal/users"
)

// Flag is a capability bit describing how a plugin may be resolved.
type Flag int

const (
	// NeedsUserData means resolve_input requires the active user record.
	NeedsUserData Flag = 1 << iota
	// NeedsResponse means the value can only be produced from an HTTP response.
	NeedsResponse
	// DependsOnOtherPlugins means resolution reads other plugins' values.
	DependsOnOtherPlugins
)

func (f Flag) Has(bit Flag) bool { return f&bit != 0 }

// Response is the minimal view of an HTTP response plugins extract from. It
// is implemented by internal/response so this package has no dependency on
// net/http.
type Response interface {
	StatusCode() int
	Body() []byte
	Header(name string) (string, bool)
	Cookie(name string) (string, bool)
}

// Store is the plugin-value store: the last known value of every plugin,
// keyed by name, surviving across flows within one authentication run.
type Store struct {
	values map[string]string
	prompt map[string]bool // names already prompted in this run, for the Prompt cache rule
}

// NewStore returns an empty plugin-value store.
func NewStore() *Store {
	return &Store{values: make(map[string]string), prompt: make(map[string]bool)}
}

// Get returns the last known value of name, if any.
func (s *Store) Get(name string) (string, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Set records value as the current value of name.
func (s *Store) Set(name, value string) {
	s.values[name] = value
}

// Snapshot returns a copy of the store's values, for persistence.
func (s *Store) Snapshot() map[string]string {
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Restore replaces the store's values wholesale, for persistence reload.
func (s *Store) Restore(values map[string]string) {
	s.values = make(map[string]string, len(values))
	for k, v := range values {
		s.values[k] = v
	}
}

func (s *Store) promptedOnce(name string) bool {
	if s.prompt[name] {
		return true
	}
	s.prompt[name] = true
	return false
}

// Plugin is a named value carrier. Implementations are the tagged variants
// in this package (Variable, Prompt, Command, Cookie, Header, Regex, Html,
// Json, Empty, Alter, Combine, UrlParser).
type Plugin interface {
	// Name is the identifier used inside the flow graph; unique per graph.
	Name() string
	// Flags reports this plugin's capability bits.
	Flags() Flag
	// ResolveInput produces the value to splice into an outgoing request.
	// Absent (ok=false) is not an error: callers log a resolution warning
	// and proceed without the value.
	ResolveInput(ctx context.Context, user *users.User, store *Store) (value string, ok bool)
	// ExtractOutput produces the value to bind from a response. Only
	// meaningful for response-extractable plugins (NeedsResponse flag).
	ExtractOutput(resp Response, store *Store) (value string, ok bool)
}

// Registry indexes plugins by name for graph construction and lookup.
type Registry struct {
	byName map[string]Plugin
}

// NewRegistry builds a Registry, returning an error on duplicate names:
// every plugin name must be unique within a registry.
func NewRegistry(plugins ...Plugin) (*Registry, error) {
	r := &Registry{byName: make(map[string]Plugin, len(plugins))}
	for _, p := range plugins {
		if _, dup := r.byName[p.Name()]; dup {
			return nil, fmt.Errorf("plugin: duplicate name %q", p.Name())
		}
		r.byName[p.Name()] = p
	}
	return r, nil
}

// Get looks up a plugin by name.
func (r *Registry) Get(name string) (Plugin, bool) {
	p, ok := r.byName[name]
	return p, ok
}
