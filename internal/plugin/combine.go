package plugin

import (
	"context"
	"strings"

	"github.com/DigeeX/raider/internal/users"
)

// Combine concatenates the string values of several plugins in order.
type Combine struct {
	name  string
	parts []Plugin
}

// NewCombine builds a Combine plugin named name, concatenating parts in order.
func NewCombine(name string, parts ...Plugin) *Combine {
	return &Combine{name: name, parts: parts}
}

func (c *Combine) Name() string { return c.name }
func (c *Combine) Flags() Flag  { return DependsOnOtherPlugins }

func (c *Combine) ResolveInput(ctx context.Context, user *users.User, store *Store) (string, bool) {
	var b strings.Builder
	for _, p := range c.parts {
		val, ok := p.ResolveInput(ctx, user, store)
		if !ok {
			return "", false
		}
		b.WriteString(val)
	}
	return b.String(), true
}

func (c *Combine) ExtractOutput(resp Response, store *Store) (string, bool) {
	var b strings.Builder
	for _, p := range c.parts {
		val, ok := p.ExtractOutput(resp, store)
		if !ok {
			return "", false
		}
		b.WriteString(val)
	}
	return b.String(), true
}
