// Package persistence writes and reads a project's cookie jar and
// plugin-value store to a named slot on disk. Dump output must round-trip
// (reload-then-dump equals dump), so both sections are sorted before
// encoding: goccy/go-yaml then produces byte-identical output across a
// dump/reload/dump cycle.
package persistence

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	yaml "github.com/goccy/go-yaml"

	"github.com/DigeeX/raider/internal/session"
)

const (
	cookiesFile = "cookies.yaml"
	pluginsFile = "plugins.yaml"
	dirPerm     = 0o755
	filePerm    = 0o644
)

type cookieDump struct {
	Domain string `yaml:"domain"`
	Path   string `yaml:"path"`
	Name   string `yaml:"name"`
	Value  string `yaml:"value"`
}

// Dump writes dir/cookies.yaml and dir/plugins.yaml from s, creating dir if
// needed: one directory per project, one cookie jar file, one plugin-value
// store file.
func Dump(dir string, s *session.Session) error {
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("persistence: mkdir %s: %w", dir, err)
	}

	records := s.CookieSnapshot()
	dumps := make([]cookieDump, len(records))
	for i, r := range records {
		dumps[i] = cookieDump{Domain: r.Domain, Path: r.Path, Name: r.Name, Value: r.Value}
	}
	sort.Slice(dumps, func(i, j int) bool {
		if dumps[i].Domain != dumps[j].Domain {
			return dumps[i].Domain < dumps[j].Domain
		}
		if dumps[i].Path != dumps[j].Path {
			return dumps[i].Path < dumps[j].Path
		}
		return dumps[i].Name < dumps[j].Name
	})
	if err := writeYAML(filepath.Join(dir, cookiesFile), dumps); err != nil {
		return err
	}

	values := s.Store().Snapshot()
	if err := writeYAML(filepath.Join(dir, pluginsFile), sortedMap(values)); err != nil {
		return err
	}
	return nil
}

// Load reads dir/cookies.yaml and dir/plugins.yaml into s, overwriting its
// current cookie mirror and plugin-value store.
func Load(dir string, s *session.Session) error {
	var dumps []cookieDump
	if err := readYAML(filepath.Join(dir, cookiesFile), &dumps); err != nil {
		return err
	}
	records := make([]session.CookieRecord, len(dumps))
	for i, d := range dumps {
		records[i] = session.CookieRecord{Domain: d.Domain, Path: d.Path, Name: d.Name, Value: d.Value}
	}
	s.RestoreCookies(records)

	var values map[string]string
	if err := readYAML(filepath.Join(dir, pluginsFile), &values); err != nil {
		return err
	}
	s.Store().Restore(values)
	return nil
}

// sortedMap copies values into a new map, inserting keys in sorted order.
// A Go map keeps no order, so the stable key order in the output comes
// from goccy/go-yaml, which sorts map keys when encoding.
func sortedMap(values map[string]string) map[string]string {
	out := make(map[string]string, len(values))
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out[k] = values[k]
	}
	return out
}

func writeYAML(path string, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("persistence: marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, filePerm); err != nil {
		return fmt.Errorf("persistence: write %s: %w", path, err)
	}
	return nil
}

func readYAML(path string, v any) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("persistence: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("persistence: parse %s: %w", path, err)
	}
	return nil
}
