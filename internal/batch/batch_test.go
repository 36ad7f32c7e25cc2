package batch_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DigeeX/raider/internal/batch"
	"github.com/DigeeX/raider/internal/flow"
	"github.com/DigeeX/raider/internal/operation"
	"github.com/DigeeX/raider/internal/request"
	"github.com/DigeeX/raider/internal/runner"
	"github.com/DigeeX/raider/internal/session"
	"github.com/DigeeX/raider/internal/transport"
	"github.com/DigeeX/raider/internal/users"
)

func TestRunAll_EachSessionIndependent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	start := &flow.Flow{
		Name:       "start",
		Request:    &request.Request{Method: http.MethodGet, Path: "/"},
		Operations: operation.List{operation.NextStage{}},
	}
	graph, err := runner.NewGraph([]*flow.Flow{start}, nil)
	require.NoError(t, err)

	const n = 5
	sessions := make([]flow.Session, n)
	for i := 0; i < n; i++ {
		client, err := transport.New(transport.DefaultConfig())
		require.NoError(t, err)
		sessions[i] = session.New(client, srv.URL, users.NewStore(nil))
	}

	r := runner.NewAuthRunner(graph)
	results := batch.RunAll(context.Background(), r, sessions, 3)

	require.Len(t, results, n)
	for _, res := range results {
		assert.NoError(t, res.Err)
		assert.Equal(t, runner.OK, res.Result.Outcome)
	}
}
