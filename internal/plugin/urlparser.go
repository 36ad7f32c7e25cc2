package plugin

import (
	"context"
	"net/url"

	"github.com/DigeeX/raider/internal/users"
)

// UrlComponent names the part of a URL UrlParser extracts.
type UrlComponent string

const (
	ComponentScheme UrlComponent = "scheme"
	ComponentHost   UrlComponent = "host"
	ComponentPath   UrlComponent = "path"
	ComponentQuery  UrlComponent = "query"
)

// UrlParser extracts one component from another plugin's resolved value,
// parsed as a URL.
type UrlParser struct {
	name      string
	inner     Plugin
	component UrlComponent
}

// NewUrlParser builds a UrlParser plugin named name, extracting component
// from inner's resolved value.
func NewUrlParser(name string, inner Plugin, component UrlComponent) *UrlParser {
	return &UrlParser{name: name, inner: inner, component: component}
}

func (u *UrlParser) Name() string { return u.name }
func (u *UrlParser) Flags() Flag  { return DependsOnOtherPlugins }

func (u *UrlParser) extract(raw string) (string, bool) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	switch u.component {
	case ComponentScheme:
		return parsed.Scheme, true
	case ComponentHost:
		return parsed.Host, true
	case ComponentPath:
		return parsed.Path, true
	case ComponentQuery:
		return parsed.RawQuery, true
	default:
		return "", false
	}
}

func (u *UrlParser) ResolveInput(ctx context.Context, user *users.User, store *Store) (string, bool) {
	val, ok := u.inner.ResolveInput(ctx, user, store)
	if !ok {
		return "", false
	}
	return u.extract(val)
}

func (u *UrlParser) ExtractOutput(resp Response, store *Store) (string, bool) {
	val, ok := u.inner.ExtractOutput(resp, store)
	if !ok {
		return "", false
	}
	return u.extract(val)
}
