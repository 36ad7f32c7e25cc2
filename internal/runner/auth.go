package runner

import (
	"context"
	"fmt"

	"github.com/DigeeX/raider/internal/flow"
	"github.com/DigeeX/raider/internal/operation"
)

// DefaultLoopGuard bounds the number of stage transitions a single run
// may take before it is aborted as non-terminating; configurable.
const DefaultLoopGuard = 25

// EventSink receives run progress notifications; implemented by
// internal/dashboard.Hub for the live-view ambient component. A nil sink is
// a valid, silent no-op.
type EventSink interface {
	StageEntered(stage string)
	RunEnded(result Result)
}

// AuthRunner drives the authentication flow list to completion.
type AuthRunner struct {
	Graph      *Graph
	LoopGuard  int // 0 means DefaultLoopGuard
	StartIndex int // index into Graph.Authentication to start from; default 0
	Events     EventSink
}

// NewAuthRunner builds an AuthRunner with the default loop guard.
func NewAuthRunner(g *Graph) *AuthRunner {
	return &AuthRunner{Graph: g, LoopGuard: DefaultLoopGuard}
}

func (r *AuthRunner) loopGuard() int {
	if r.LoopGuard <= 0 {
		return DefaultLoopGuard
	}
	return r.LoopGuard
}

func (r *AuthRunner) notify(stage string) {
	if r.Events != nil {
		r.Events.StageEntered(stage)
	}
}

func (r *AuthRunner) finish(result Result) (Result, error) {
	if r.Events != nil {
		r.Events.RunEnded(result)
	}
	if result.Outcome == ErrorOutcome {
		return result, &RunError{Result: result}
	}
	return result, nil
}

// Authenticate drives the authentication graph from r.StartIndex (default
// 0), following NextStage verdicts, until a stop, error, unknown-stage, or
// loop-guard termination.
func (r *AuthRunner) Authenticate(ctx context.Context, sess flow.Session) (Result, error) {
	if len(r.Graph.Authentication) == 0 {
		// An empty authentication list succeeds immediately.
		return r.finish(Result{Outcome: OK})
	}

	if r.StartIndex < 0 || r.StartIndex >= len(r.Graph.Authentication) {
		return r.finish(Result{
			Outcome: ErrorOutcome,
			Message: fmt.Sprintf("start index %d out of range [0,%d)", r.StartIndex, len(r.Graph.Authentication)),
		})
	}

	current := r.Graph.Authentication[r.StartIndex]
	var stats Stats

	for {
		if err := ctx.Err(); err != nil {
			return r.finish(Result{Outcome: ErrorOutcome, Message: "cancelled: " + err.Error(), LastFlow: current.Name, Stats: stats})
		}

		if stats.StepsTaken >= r.loopGuard() {
			return r.finish(Result{
				Outcome:  ErrorOutcome,
				Message:  fmt.Sprintf("authentication loop exceeded %d steps", r.loopGuard()),
				LastFlow: current.Name,
				Stats:    stats,
			})
		}
		stats.StepsTaken++

		r.notify(current.Name)

		verdict, err := current.Run(ctx, sess)
		if err != nil {
			return r.finish(Result{Outcome: ErrorOutcome, Message: err.Error(), LastFlow: current.Name, Stats: stats})
		}

		switch verdict.Kind {
		case operation.Stop:
			return r.finish(Result{Outcome: OK, LastFlow: current.Name, Stats: stats})

		case operation.Err:
			return r.finish(Result{Outcome: ErrorOutcome, Message: verdict.Message, LastFlow: current.Name, Stats: stats})

		case operation.Next:
			next, ok := r.Graph.authStage(verdict.Name)
			if ok {
				current = next
				continue
			}
			if fn, ok := r.Graph.function(verdict.Name); ok {
				// A NextStage naming a function flow runs that function to
				// completion and stops, as if authentication itself had
				// ended there.
				fnVerdict, err := runChain(ctx, r.Graph, fn, sess, r.loopGuard(), &stats)
				if err != nil {
					return r.finish(Result{Outcome: ErrorOutcome, Message: err.Error(), LastFlow: fn.Name, Stats: stats})
				}
				if fnVerdict.Kind == operation.Err {
					return r.finish(Result{Outcome: ErrorOutcome, Message: fnVerdict.Message, LastFlow: fn.Name, Stats: stats})
				}
				return r.finish(Result{Outcome: OK, LastFlow: fn.Name, Stats: stats})
			}
			return r.finish(Result{
				Outcome:  ErrorOutcome,
				Message:  "unknown stage: " + verdict.Name,
				LastFlow: current.Name,
				Stats:    stats,
			})

		default: // operation.Continue
			idx := r.Graph.indexOf(current)
			if idx < 0 || idx == len(r.Graph.Authentication)-1 {
				return r.finish(Result{Outcome: OK, LastFlow: current.Name, Stats: stats})
			}
			current = r.Graph.Authentication[idx+1]
		}
	}
}

// runChain runs f and, should it itself produce a NextStage(name) verdict,
// chains into subsequent functions, bounded by the same loop guard.
func runChain(ctx context.Context, g *Graph, f *flow.Flow, sess flow.Session, loopGuard int, stats *Stats) (operation.Verdict, error) {
	current := f
	for {
		if stats.StepsTaken >= loopGuard {
			return operation.Verdict{}, fmt.Errorf("authentication loop exceeded %d steps", loopGuard)
		}
		stats.StepsTaken++

		verdict, err := current.Run(ctx, sess)
		if err != nil {
			return operation.Verdict{}, err
		}
		if verdict.Kind != operation.Next {
			return verdict, nil
		}
		next, ok := g.function(verdict.Name)
		if !ok {
			next, ok = g.authStage(verdict.Name)
		}
		if !ok {
			return operation.Verdict{}, fmt.Errorf("unknown stage: %s", verdict.Name)
		}
		current = next
	}
}
