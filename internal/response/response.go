// Package response implements the concrete HTTP response view plugins
// extract from (plugin.Response) and the output-binding step: after each
// round-trip, walk a flow's declared output plugins and fill their values
// from the response.
package response

import (
	"log"
	"net/http"

	"github.com/DigeeX/raider/internal/plugin"
)

// Response is the concrete plugin.Response backing one HTTP round-trip.
type Response struct {
	status     int
	header     http.Header
	setCookies []*http.Cookie
	body       []byte
}

// New builds a Response from the pieces the transport boundary returns:
// status, headers, set-cookies, and body.
func New(status int, header http.Header, setCookies []*http.Cookie, body []byte) *Response {
	return &Response{status: status, header: header, setCookies: setCookies, body: body}
}

func (r *Response) StatusCode() int { return r.status }
func (r *Response) Body() []byte    { return r.body }

// Header looks name up as an exact key of the header map first and, when
// that key is absent, through net/http's canonical lookup, which ignores
// letter case: a name that differs from the response header only in case
// still matches. When the header has several values, the last wins.
func (r *Response) Header(name string) (string, bool) {
	if vals, ok := r.header[name]; ok && len(vals) > 0 {
		return vals[len(vals)-1], true
	}
	vals := r.header.Values(name)
	if len(vals) == 0 {
		return "", false
	}
	return vals[len(vals)-1], true
}

// Cookie matches a Set-Cookie by name; when multiple, the last wins.
func (r *Response) Cookie(name string) (string, bool) {
	var value string
	var found bool
	for _, c := range r.setCookies {
		if c.Name == name {
			value = c.Value
			found = true
		}
	}
	return value, found
}

// Headers returns the full response header set, for callers that need to
// enumerate rather than look up a single name.
func (r *Response) Headers() http.Header { return r.header }

// Cookies returns every Set-Cookie on the response, in declaration order,
// for callers that need to enumerate rather than look up a single name.
func (r *Response) Cookies() []*http.Cookie { return r.setCookies }

// BindOutputs walks outputs and fills their values from resp into store:
// on success the store is updated; on failure a warning is logged and the
// previous value (or absence) is left intact.
func BindOutputs(resp *Response, outputs []plugin.Plugin, store *plugin.Store) {
	for _, p := range outputs {
		val, ok := p.ExtractOutput(resp, store)
		if !ok {
			log.Printf("[WARN] couldn't extract output: %s", p.Name())
			continue
		}
		store.Set(p.Name(), val)
	}
}
