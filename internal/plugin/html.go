package plugin

import (
	"bytes"
	"context"
	"log"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/DigeeX/raider/internal/users"
)

// AttrMatch is an attribute-value predicate: either an exact string or a
// compiled regex, normalised at graph construction so matching never has
// to branch on the predicate's original shape.
type AttrMatch struct {
	exact string
	re    *regexp.Regexp
}

// Exact builds an AttrMatch requiring an exact string match.
func Exact(value string) AttrMatch { return AttrMatch{exact: value} }

// Pattern builds an AttrMatch requiring a regex match; the caller writes
// ^...$ when a full-value match is wanted.
func Pattern(pattern string) (AttrMatch, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return AttrMatch{}, err
	}
	return AttrMatch{re: re}, nil
}

func (m AttrMatch) matches(value string) bool {
	if m.re != nil {
		return m.re.MatchString(value)
	}
	return value == m.exact
}

// Html parses the response body as HTML via goquery, selects the first
// tag of the given name whose attributes all satisfy the given
// predicates, and extracts either a named attribute or — when
// Extract == "data" — the tag's inner text.
type Html struct {
	name    string
	tag     string
	attrs   map[string]AttrMatch
	extract string // attribute name, or "data" for inner text
}

// NewHtml builds an Html plugin named name.
func NewHtml(name, tag string, attrs map[string]AttrMatch, extract string) *Html {
	return &Html{name: name, tag: tag, attrs: attrs, extract: extract}
}

func (h *Html) Name() string { return h.name }
func (h *Html) Flags() Flag  { return NeedsResponse }

func (h *Html) ResolveInput(_ context.Context, _ *users.User, store *Store) (string, bool) {
	return store.Get(h.name)
}

func (h *Html) ExtractOutput(resp Response, _ *Store) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body()))
	if err != nil {
		log.Printf("[WARN] plugin %q: html parse failed: %v", h.name, err)
		return "", false
	}

	var value string
	var found bool
	doc.Find(h.tag).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		for attrName, want := range h.attrs {
			got, ok := sel.Attr(attrName)
			if !ok || !want.matches(got) {
				return true // keep looking
			}
		}
		if h.extract == "data" {
			value = strings.TrimSpace(sel.Text())
		} else {
			value, found = sel.Attr(h.extract)
			if !found {
				return true
			}
		}
		found = true
		return false // stop: first candidate wins
	})

	if !found {
		log.Printf("[WARN] plugin %q: no <%s> matched", h.name, h.tag)
		return "", false
	}
	return value, true
}
