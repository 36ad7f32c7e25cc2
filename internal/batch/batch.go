// Package batch drives multiple independent authentication runs
// concurrently, one per Session. Each run owns its own session; sessions
// are never shared across runs.
package batch

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/DigeeX/raider/internal/flow"
	"github.com/DigeeX/raider/internal/runner"
)

// Result pairs one session's outcome with its index in the input slice, so
// callers can correlate a result back to the user/session that produced it.
type Result struct {
	Index  int
	Result runner.Result
	Err    error
}

// RunAll runs r.Authenticate once per session concurrently via
// golang.org/x/sync/errgroup, bounded by limit concurrent goroutines (0
// means unbounded). Each session is owned exclusively by its own
// goroutine; no session is touched by more than one goroutine.
func RunAll(ctx context.Context, r *runner.AuthRunner, sessions []flow.Session, limit int) []Result {
	results := make([]Result, len(sessions))

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, sess := range sessions {
		i, sess := i, sess
		g.Go(func() error {
			result, err := r.Authenticate(gctx, sess)
			results[i] = Result{Index: i, Result: result, Err: err}
			// Per-session errors do not cancel sibling runs: each run
			// is independent, so we deliberately swallow err here
			// rather than returning it to the errgroup.
			return nil
		})
	}
	_ = g.Wait()

	return results
}
