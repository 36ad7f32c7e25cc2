package session

import (
	"net/http"
	"net/url"
	"sync"
	"time"
)

// cookieKey identifies one jar entry by (domain, path, name).
type cookieKey struct {
	Domain string
	Path   string
	Name   string
}

// CookieRecord is one persisted jar entry.
type CookieRecord struct {
	Domain string
	Path   string
	Name   string
	Value  string
}

// cookieMirror tracks every Set-Cookie a Session has observed, independent
// of net/http/cookiejar's opaque internal state, so the session can be
// dumped and reloaded deterministically: the mirror, unlike the jar, can
// be enumerated.
type cookieMirror struct {
	mu      sync.RWMutex
	entries map[cookieKey]CookieRecord
}

func newCookieMirror() *cookieMirror {
	return &cookieMirror{entries: make(map[cookieKey]CookieRecord)}
}

// record merges the Set-Cookie list for rawURL into the mirror. A cookie
// with Max-Age <= 0 or an Expires in the past clears the entry: the
// server explicitly asked for it to be forgotten.
func (m *cookieMirror) record(rawURL string, cookies []*http.Cookie) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return
	}
	domain := u.Hostname()
	path := u.Path
	if path == "" {
		path = "/"
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range cookies {
		d := c.Domain
		if d == "" {
			d = domain
		}
		p := c.Path
		if p == "" {
			p = path
		}
		key := cookieKey{Domain: d, Path: p, Name: c.Name}

		expired := c.MaxAge < 0 || (!c.Expires.IsZero() && c.Expires.Before(time.Now()))
		if expired {
			delete(m.entries, key)
			continue
		}
		m.entries[key] = CookieRecord{Domain: d, Path: p, Name: c.Name, Value: c.Value}
	}
}

// snapshot returns every tracked cookie, for persistence dump.
func (m *cookieMirror) snapshot() []CookieRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]CookieRecord, 0, len(m.entries))
	for _, v := range m.entries {
		out = append(out, v)
	}
	return out
}

// restore replaces the mirror's contents wholesale, for persistence reload.
func (m *cookieMirror) restore(records []CookieRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[cookieKey]CookieRecord, len(records))
	for _, r := range records {
		m.entries[cookieKey{Domain: r.Domain, Path: r.Path, Name: r.Name}] = r
	}
}
