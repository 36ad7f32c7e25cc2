package plugin

import (
	"context"
	"fmt"

	"github.com/DigeeX/raider/internal/users"
)

// Cookie is a cookie-backed plugin: as an output it picks a response cookie
// by name; as an input it emits a "name=value" pair using its last known
// value from the store.
type Cookie struct {
	name       string
	cookieName string
}

// NewCookie builds a Cookie plugin named name, keyed on the response cookie
// cookieName.
func NewCookie(name, cookieName string) *Cookie {
	return &Cookie{name: name, cookieName: cookieName}
}

func (c *Cookie) Name() string { return c.name }
func (c *Cookie) Flags() Flag  { return NeedsResponse }

func (c *Cookie) ResolveInput(_ context.Context, _ *users.User, store *Store) (string, bool) {
	val, ok := store.Get(c.name)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%s=%s", c.cookieName, val), true
}

func (c *Cookie) ExtractOutput(resp Response, _ *Store) (string, bool) {
	return resp.Cookie(c.cookieName)
}
