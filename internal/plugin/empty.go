package plugin

import (
	"context"

	"github.com/DigeeX/raider/internal/users"
)

// Empty is a placeholder plugin with no intrinsic resolver: it is filled by
// direct Store assignment (e.g. by an Operation) rather than by extraction
// or input resolution.
type Empty struct {
	name string
}

// NewEmpty builds an Empty plugin named name.
func NewEmpty(name string) *Empty { return &Empty{name: name} }

func (e *Empty) Name() string { return e.name }
func (e *Empty) Flags() Flag  { return NeedsResponse }

func (e *Empty) ResolveInput(_ context.Context, _ *users.User, store *Store) (string, bool) {
	return store.Get(e.name)
}

func (e *Empty) ExtractOutput(_ Response, store *Store) (string, bool) {
	return store.Get(e.name)
}
