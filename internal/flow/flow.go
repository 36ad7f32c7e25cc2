// Package flow implements one stage of the authentication state machine:
// a Request plus its declared output plugins and post-response operations.
package flow

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/DigeeX/raider/internal/operation"
	"github.com/DigeeX/raider/internal/plugin"
	"github.com/DigeeX/raider/internal/request"
	"github.com/DigeeX/raider/internal/response"
	"github.com/DigeeX/raider/internal/transport"
	"github.com/DigeeX/raider/internal/users"
)

// Flow is one node in the authentication graph: read-only after
// construction, so the same Flow value can be re-entered safely.
type Flow struct {
	Name       string
	Request    *request.Request
	Outputs    []plugin.Plugin
	Operations operation.List
}

// Session is the minimal view of session state a Flow needs to run: an
// HTTP client and the shared plugin/user state. Implemented by
// internal/session.Session; declared here so this package does not import
// internal/session.
type Session interface {
	Client() *transport.Client
	BaseURL() string
	Store() *plugin.Store
	ActiveUser() *users.User
	RecordSetCookies(rawURL string, cookies []*http.Cookie)
}

// Run materialises the request, performs the round-trip, binds outputs,
// and evaluates operations, returning the resulting verdict.
func (f *Flow) Run(ctx context.Context, sess Session) (operation.Verdict, error) {
	store := sess.Store()

	var warnings []string
	mat := request.Materialise(ctx, f.Request, sess.BaseURL(), sess.ActiveUser(), store, func(msg string) {
		warnings = append(warnings, msg)
	})
	for _, w := range warnings {
		log.Printf("[WARN] flow %q: %s", f.Name, w)
	}

	status, header, cookies, body, err := sess.Client().Send(ctx, mat.Method, mat.URL, mat.Headers, mat.Cookies, mat.Body)
	if err != nil {
		return operation.Verdict{}, fmt.Errorf("flow %q: transport failure: %w", f.Name, err)
	}

	sess.RecordSetCookies(mat.URL, cookies)

	resp := response.New(status, header, cookies, body)
	response.BindOutputs(resp, f.Outputs, store)

	return f.Operations.Evaluate(resp, store), nil
}
