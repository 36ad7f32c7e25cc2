package plugin

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/DigeeX/raider/internal/users"
)

// Header is a header-backed plugin: as an output it picks a response header
// by name; as an input it emits a "name: value" pair.
type Header struct {
	name       string
	headerName string

	// authKind, when non-empty, makes this a basicauth/bearerauth
	// constructor instead of a plain named-header plugin.
	authKind string // "", "basic", "bearer"
	user     string // basicauth username, or bearer token literal
	pass     string // basicauth password
	token    Plugin // bearerauth token source, when set instead of a literal
}

// NewHeader builds a plain Header plugin named name, keyed on the response
// header headerName; as input it emits "headerName: value".
func NewHeader(name, headerName string) *Header {
	return &Header{name: name, headerName: headerName}
}

// NewBasicAuthHeader builds an Authorization: Basic header plugin from a
// literal username/password pair.
func NewBasicAuthHeader(name, user, pass string) *Header {
	return &Header{name: name, headerName: "Authorization", authKind: "basic", user: user, pass: pass}
}

// NewBearerAuthHeader builds an Authorization: Bearer header plugin whose
// token comes from another plugin's resolved value (DependsOnOtherPlugins).
func NewBearerAuthHeader(name string, token Plugin) *Header {
	return &Header{name: name, headerName: "Authorization", authKind: "bearer", token: token}
}

func (h *Header) Name() string { return h.name }

func (h *Header) Flags() Flag {
	if h.authKind != "" {
		return DependsOnOtherPlugins
	}
	return NeedsResponse
}

func (h *Header) ResolveInput(ctx context.Context, user *users.User, store *Store) (string, bool) {
	switch h.authKind {
	case "basic":
		creds := base64.StdEncoding.EncodeToString([]byte(h.user + ":" + h.pass))
		return fmt.Sprintf("Authorization: Basic %s", creds), true
	case "bearer":
		tok, ok := h.token.ResolveInput(ctx, user, store)
		if !ok {
			return "", false
		}
		return fmt.Sprintf("Authorization: Bearer %s", tok), true
	default:
		val, ok := store.Get(h.name)
		if !ok {
			return "", false
		}
		return fmt.Sprintf("%s: %s", h.headerName, val), true
	}
}

func (h *Header) ExtractOutput(resp Response, _ *Store) (string, bool) {
	return resp.Header(h.headerName)
}
