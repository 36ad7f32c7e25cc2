package runner

import (
	"context"

	"github.com/DigeeX/raider/internal/flow"
	"github.com/DigeeX/raider/internal/operation"
)

// FunctionsRunner invokes non-authentication flows standalone by name.
// Execution is identical to a single flow's run; a NextStage verdict
// still chains into further functions or authentication stages.
type FunctionsRunner struct {
	Graph     *Graph
	LoopGuard int
}

// NewFunctionsRunner builds a FunctionsRunner with the default loop guard.
func NewFunctionsRunner(g *Graph) *FunctionsRunner {
	return &FunctionsRunner{Graph: g, LoopGuard: DefaultLoopGuard}
}

func (r *FunctionsRunner) loopGuard() int {
	if r.LoopGuard <= 0 {
		return DefaultLoopGuard
	}
	return r.LoopGuard
}

// RunFunction runs the named function flow to completion. Invoking a
// function before Authenticate succeeds is allowed; nothing here enforces
// call ordering between the two.
func (r *FunctionsRunner) RunFunction(ctx context.Context, sess flow.Session, name string) (Result, error) {
	fn, ok := r.Graph.function(name)
	if !ok {
		result := Result{Outcome: ErrorOutcome, Message: "unknown stage: " + name}
		return result, &RunError{Result: result}
	}

	stats := &Stats{}
	verdict, err := runChain(ctx, r.Graph, fn, sess, r.loopGuard(), stats)
	if err != nil {
		result := Result{Outcome: ErrorOutcome, Message: err.Error(), LastFlow: fn.Name, Stats: *stats}
		return result, &RunError{Result: result}
	}

	if verdict.Kind == operation.Err {
		result := Result{Outcome: ErrorOutcome, Message: verdict.Message, LastFlow: fn.Name, Stats: *stats}
		return result, &RunError{Result: result}
	}

	return Result{Outcome: OK, LastFlow: fn.Name, Stats: *stats}, nil
}
