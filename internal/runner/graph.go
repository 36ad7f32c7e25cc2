// Package runner drives the flow graph from a start stage, honouring
// NextStage verdicts, and terminates on sentinel, error, or unknown stage.
package runner

import (
	"fmt"

	"github.com/DigeeX/raider/internal/flow"
)

// Graph is the authentication graph: an ordered list of authentication
// flows plus a set of non-authentication "function" flows, indexed by name
// once at construction so stage lookups per verdict are O(1).
type Graph struct {
	Authentication []*flow.Flow
	Functions      []*flow.Flow

	authByName map[string]*flow.Flow
	fnByName   map[string]*flow.Flow
}

// NewGraph builds a Graph, indexing both lists by name. Returns an error on
// a duplicate flow name within either list.
func NewGraph(authentication, functions []*flow.Flow) (*Graph, error) {
	g := &Graph{
		Authentication: authentication,
		Functions:      functions,
		authByName:     make(map[string]*flow.Flow, len(authentication)),
		fnByName:       make(map[string]*flow.Flow, len(functions)),
	}
	for _, f := range authentication {
		if _, dup := g.authByName[f.Name]; dup {
			return nil, fmt.Errorf("runner: duplicate authentication flow name %q", f.Name)
		}
		g.authByName[f.Name] = f
	}
	for _, f := range functions {
		if _, dup := g.fnByName[f.Name]; dup {
			return nil, fmt.Errorf("runner: duplicate function flow name %q", f.Name)
		}
		g.fnByName[f.Name] = f
	}
	return g, nil
}

func (g *Graph) authStage(name string) (*flow.Flow, bool) {
	f, ok := g.authByName[name]
	return f, ok
}

func (g *Graph) function(name string) (*flow.Flow, bool) {
	f, ok := g.fnByName[name]
	return f, ok
}

func (g *Graph) indexOf(f *flow.Flow) int {
	for i, a := range g.Authentication {
		if a == f {
			return i
		}
	}
	return -1
}
