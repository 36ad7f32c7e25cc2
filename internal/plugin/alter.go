package plugin

import (
	"context"
	"strings"

	"github.com/DigeeX/raider/internal/users"
)

// Alter wraps another plugin, post-processing its resolved value: the
// literal replace is applied first, then the prefix and suffix are added.
type Alter struct {
	name   string
	inner  Plugin
	prefix string
	suffix string
	old    string
	new    string
}

// NewAlter builds an Alter plugin named name, wrapping inner.
func NewAlter(name string, inner Plugin, prefix, suffix, old, new string) *Alter {
	return &Alter{name: name, inner: inner, prefix: prefix, suffix: suffix, old: old, new: new}
}

func (a *Alter) Name() string { return a.name }
func (a *Alter) Flags() Flag  { return DependsOnOtherPlugins }

func (a *Alter) apply(val string) string {
	if a.old != "" {
		val = strings.ReplaceAll(val, a.old, a.new)
	}
	return a.prefix + val + a.suffix
}

func (a *Alter) ResolveInput(ctx context.Context, user *users.User, store *Store) (string, bool) {
	val, ok := a.inner.ResolveInput(ctx, user, store)
	if !ok {
		return "", false
	}
	return a.apply(val), true
}

func (a *Alter) ExtractOutput(resp Response, store *Store) (string, bool) {
	val, ok := a.inner.ExtractOutput(resp, store)
	if !ok {
		return "", false
	}
	return a.apply(val), true
}
