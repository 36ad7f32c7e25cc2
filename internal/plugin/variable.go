package plugin

import (
	"context"

	"github.com/DigeeX/raider/internal/users"
)

// Variable reads a field from the active user, e.g. "username" or "password".
type Variable struct {
	name  string
	field string
}

// NewVariable builds a Variable plugin named name, reading field from the
// active user.
func NewVariable(name, field string) *Variable {
	return &Variable{name: name, field: field}
}

func (v *Variable) Name() string { return v.name }
func (v *Variable) Flags() Flag  { return NeedsUserData }

func (v *Variable) ResolveInput(_ context.Context, user *users.User, _ *Store) (string, bool) {
	if user == nil {
		return "", false
	}
	val, ok := user.Field(v.field)
	if !ok {
		return "", false
	}
	return val, true
}

func (v *Variable) ExtractOutput(Response, *Store) (string, bool) { return "", false }
