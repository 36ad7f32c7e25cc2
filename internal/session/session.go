// Package session implements the per-run process state: the cookie jar
// (owned by the transport client), the plugin-value store, the active
// user, and HTTP transport wiring. One Session belongs to exactly one
// authentication run; sessions must not be shared across runs.
package session

import (
	"net/http"

	"github.com/DigeeX/raider/internal/plugin"
	"github.com/DigeeX/raider/internal/transport"
	"github.com/DigeeX/raider/internal/users"
)

// Session is process-wide per-project state for one run.
type Session struct {
	client  *transport.Client
	baseURL string
	store   *plugin.Store
	users   *users.Store
	cookies *cookieMirror
}

// New builds a Session; baseURL is the graph's optional _base_url. client
// owns the cookie jar, so sessions built on the same client share one jar.
func New(client *transport.Client, baseURL string, userStore *users.Store) *Session {
	return &Session{
		client:  client,
		baseURL: baseURL,
		store:   plugin.NewStore(),
		users:   userStore,
		cookies: newCookieMirror(),
	}
}

func (s *Session) Client() *transport.Client { return s.client }
func (s *Session) BaseURL() string           { return s.baseURL }
func (s *Session) Store() *plugin.Store      { return s.store }
func (s *Session) ActiveUser() *users.User   { return s.users.Active() }
func (s *Session) Users() *users.Store       { return s.users }

// RecordSetCookies mirrors a response's Set-Cookie list for later
// persistence. The real domain-matching and sending logic lives entirely
// in the transport client's net/http/cookiejar.Jar; this is a parallel,
// enumerable record kept only so Session state can be dumped and reloaded
// deterministically.
func (s *Session) RecordSetCookies(rawURL string, cookies []*http.Cookie) {
	s.cookies.record(rawURL, cookies)
}

// CookieSnapshot returns every cookie the session has observed, for
// internal/persistence.Dump.
func (s *Session) CookieSnapshot() []CookieRecord { return s.cookies.snapshot() }

// RestoreCookies replaces the session's cookie mirror, for
// internal/persistence.Load.
func (s *Session) RestoreCookies(records []CookieRecord) { s.cookies.restore(records) }
