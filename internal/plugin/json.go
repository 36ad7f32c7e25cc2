package plugin

import (
	"context"
	"log"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/DigeeX/raider/internal/users"
)

// Json extracts a value at a dotted path from a JSON response body, using
// gjson for dotted-path lookups without decoding into a concrete struct.
type Json struct {
	name string
	path string
}

// NewJson builds a Json plugin named name, reading dotted path from the
// response body.
func NewJson(name, path string) *Json {
	return &Json{name: name, path: strings.TrimPrefix(path, ".")}
}

func (j *Json) Name() string { return j.name }
func (j *Json) Flags() Flag  { return NeedsResponse }

func (j *Json) ResolveInput(_ context.Context, _ *users.User, store *Store) (string, bool) {
	return store.Get(j.name)
}

func (j *Json) ExtractOutput(resp Response, _ *Store) (string, bool) {
	result := gjson.GetBytes(resp.Body(), j.path)
	if !result.Exists() {
		log.Printf("[WARN] plugin %q: json path %q missing", j.name, j.path)
		return "", false
	}
	return result.String(), true
}
