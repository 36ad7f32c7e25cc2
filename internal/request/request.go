// Package request implements the Request template and its materialisation
// into a concrete outgoing HTTP message.
package request

import (
	"context"
	"log"
	"strings"

	"github.com/DigeeX/raider/internal/plugin"
	"github.com/DigeeX/raider/internal/users"
)

// Field is either a literal string or a plugin reference, used for map keys
// and values in a Request body: both keys and values may be either
// literals or plugin references.
type Field struct {
	Literal string
	Plugin  plugin.Plugin // nil when this is a literal
}

// Lit builds a literal Field.
func Lit(s string) Field { return Field{Literal: s} }

// Ref builds a plugin-reference Field.
func Ref(p plugin.Plugin) Field { return Field{Plugin: p} }

func (f Field) resolve(ctx context.Context, user *users.User, store *plugin.Store) (string, bool) {
	if f.Plugin == nil {
		return f.Literal, true
	}
	return f.Plugin.ResolveInput(ctx, user, store)
}

// Request is the template for one HTTP exchange.
type Request struct {
	Method string

	// Exactly one of URL or Path is set; Path is joined to BaseURL.
	URL  string
	Path string

	Cookies []plugin.Plugin // ordered set of cookie-plugin references
	Headers []plugin.Plugin // ordered set of header-plugin references

	// Body is either a key/value map (Form) or a RawBody string; at most
	// one is set. JSONBody, if non-nil, takes precedence over both.
	Form     []FormField
	RawBody  string
	JSONBody map[string]Field
}

// FormField is one key/value pair of a form-encoded body; both Key and
// Value may be literal or plugin-backed.
type FormField struct {
	Key   Field
	Value Field
}

// Materialised is the concrete message ready to send.
type Materialised struct {
	Method  string
	URL     string
	Headers map[string]string // literal "name: value" already split
	Cookies []string          // "name=value" pairs
	Body    []byte
}

// Materialise lowers req into a Materialised message.
// Resolution errors (an unresolvable plugin) are non-fatal: the warning is
// logged via warn and the field is omitted/empty; the request is still
// built.
func Materialise(ctx context.Context, req *Request, baseURL string, user *users.User, store *plugin.Store, warn func(string)) *Materialised {
	if warn == nil {
		warn = func(msg string) { log.Printf("[WARN] %s", msg) }
	}

	m := &Materialised{
		Method:  req.Method,
		URL:     resolveURL(req, baseURL),
		Headers: make(map[string]string),
	}

	for _, h := range req.Headers {
		val, ok := h.ResolveInput(ctx, user, store)
		if !ok {
			warn("resolution warning: header plugin " + h.Name() + " has no value")
			continue
		}
		name, value, ok := splitHeaderPair(val)
		if !ok {
			warn("resolution warning: header plugin " + h.Name() + " produced an unparsable header")
			continue
		}
		m.Headers[name] = value
	}

	for _, c := range req.Cookies {
		val, ok := c.ResolveInput(ctx, user, store)
		if !ok {
			warn("resolution warning: cookie plugin " + c.Name() + " has no value")
			continue
		}
		m.Cookies = append(m.Cookies, val)
	}

	m.Body = materialiseBody(ctx, req, user, store, warn)

	return m
}

func resolveURL(req *Request, baseURL string) string {
	if req.URL != "" {
		return req.URL
	}
	return joinURL(baseURL, req.Path)
}

// joinURL concatenates base and path normalising exactly one "/" at the join.
func joinURL(base, path string) string {
	base = strings.TrimRight(base, "/")
	path = "/" + strings.TrimLeft(path, "/")
	return base + path
}

func splitHeaderPair(val string) (name, value string, ok bool) {
	idx := strings.Index(val, ":")
	if idx < 0 {
		return "", "", false
	}
	name = strings.TrimSpace(val[:idx])
	value = strings.TrimSpace(val[idx+1:])
	return name, value, true
}

func materialiseBody(ctx context.Context, req *Request, user *users.User, store *plugin.Store, warn func(string)) []byte {
	switch {
	case req.JSONBody != nil:
		return materialiseJSONBody(ctx, req.JSONBody, user, store, warn)
	case req.Form != nil:
		return materialiseFormBody(ctx, req.Form, user, store, warn)
	default:
		return []byte(req.RawBody)
	}
}

func materialiseFormBody(ctx context.Context, fields []FormField, user *users.User, store *plugin.Store, warn func(string)) []byte {
	var parts []string
	for _, f := range fields {
		key, keyOK := f.Key.resolve(ctx, user, store)
		if !keyOK {
			// A plugin-backed key with no value: the entry is omitted
			// entirely.
			warn("resolution warning: body key plugin has no value, omitting field")
			continue
		}
		value, valueOK := f.Value.resolve(ctx, user, store)
		if !valueOK {
			// Literal key whose plugin value resolved absent: keep
			// the key with an empty string.
			warn("resolution warning: body value for " + key + " has no value, using empty string")
			value = ""
		}
		parts = append(parts, key+"="+value)
	}
	return []byte(strings.Join(parts, "&"))
}

func materialiseJSONBody(ctx context.Context, fields map[string]Field, user *users.User, store *plugin.Store, warn func(string)) []byte {
	obj := make(map[string]any, len(fields))
	for key, f := range fields {
		val, ok := f.resolve(ctx, user, store)
		if !ok {
			warn("resolution warning: json body field " + key + " has no value, omitting")
			continue
		}
		obj[key] = val
	}
	return encodeJSON(obj)
}
