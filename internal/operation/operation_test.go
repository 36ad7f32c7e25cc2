package operation_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DigeeX/raider/internal/operation"
	"github.com/DigeeX/raider/internal/plugin"
	"github.com/DigeeX/raider/internal/response"
)

func TestList_ShortCircuitsOnTerminalVerdict(t *testing.T) {
	var printed []string
	sideEffect := &operation.Print{Mode: operation.PrintItems, Items: []operation.Item{operation.LitItem("before")}}
	sideEffect.SetOutputForTest(func(s string) { printed = append(printed, s) })

	after := &operation.Print{Mode: operation.PrintItems, Items: []operation.Item{operation.LitItem("after")}}
	after.SetOutputForTest(func(s string) { printed = append(printed, s) })

	list := operation.List{
		sideEffect,
		operation.NextStage{Name: "done"},
		after,
	}

	resp := response.New(200, http.Header{}, nil, nil)
	v := list.Evaluate(resp, plugin.NewStore())

	require.Equal(t, operation.Next, v.Kind)
	assert.Equal(t, "done", v.Name)
	assert.Equal(t, []string{"before"}, printed, "operations after the terminal verdict must not run")
}

func TestHttp_MatchesStatusRunsAction(t *testing.T) {
	h := operation.Http{
		Status:    200,
		Action:    operation.NextStage{},
		Otherwise: operation.Error{Message: "bad"},
	}
	resp := response.New(200, http.Header{}, nil, nil)
	v := h.Evaluate(resp, plugin.NewStore())
	assert.Equal(t, operation.Stop, v.Kind)
}

func TestHttp_FallsThroughToOtherwise(t *testing.T) {
	h := operation.Http{
		Status:    200,
		Action:    operation.NextStage{},
		Otherwise: operation.Error{Message: "bad"},
	}
	resp := response.New(400, http.Header{}, nil, nil)
	v := h.Evaluate(resp, plugin.NewStore())
	assert.Equal(t, operation.Err, v.Kind)
	assert.Equal(t, "bad", v.Message)
}

func TestHttp_NoOtherwiseContinues(t *testing.T) {
	h := operation.Http{Status: 200, Action: operation.NextStage{Name: "x"}}
	resp := response.New(404, http.Header{}, nil, nil)
	v := h.Evaluate(resp, plugin.NewStore())
	assert.Equal(t, operation.Continue, v.Kind)
}

func TestGrep_MatchesBody(t *testing.T) {
	g, err := operation.NewGrep("TWO_FA_REQUIRED", operation.NextStage{Name: "multi_factor"}, operation.NextStage{})
	require.NoError(t, err)

	resp := response.New(200, http.Header{}, nil, []byte(`{"error":"TWO_FA_REQUIRED"}`))
	v := g.Evaluate(resp, plugin.NewStore())
	assert.Equal(t, operation.Next, v.Kind)
	assert.Equal(t, "multi_factor", v.Name)
}

func TestGrep_NoMatchUsesOtherwise(t *testing.T) {
	g, err := operation.NewGrep("TWO_FA_REQUIRED", operation.NextStage{Name: "multi_factor"}, operation.NextStage{})
	require.NoError(t, err)

	resp := response.New(200, http.Header{}, nil, []byte(`{"ok":true}`))
	v := g.Evaluate(resp, plugin.NewStore())
	assert.Equal(t, operation.Stop, v.Kind)
}

func TestPrint_HeadersWithNoNamePrintsAll(t *testing.T) {
	var printed []string
	p := operation.NewPrintHeaders("")
	p.SetOutputForTest(func(s string) { printed = append(printed, s) })

	header := http.Header{}
	header.Set("X-Csrf-Token", "abc")
	header.Set("Content-Type", "text/html")

	resp := response.New(200, header, nil, nil)
	v := p.Evaluate(resp, plugin.NewStore())

	assert.Equal(t, operation.Continue, v.Kind)
	assert.Contains(t, printed, "X-Csrf-Token: abc")
	assert.Contains(t, printed, "Content-Type: text/html")
	assert.Len(t, printed, 2)
}

func TestPrint_HeadersWithNameFiltersToOne(t *testing.T) {
	var printed []string
	p := operation.NewPrintHeaders("X-Csrf-Token")
	p.SetOutputForTest(func(s string) { printed = append(printed, s) })

	header := http.Header{}
	header.Set("X-Csrf-Token", "abc")
	header.Set("Content-Type", "text/html")

	resp := response.New(200, header, nil, nil)
	p.Evaluate(resp, plugin.NewStore())

	assert.Equal(t, []string{"X-Csrf-Token: abc"}, printed)
}

func TestPrint_CookiesWithNoNamePrintsAll(t *testing.T) {
	var printed []string
	p := operation.NewPrintCookies("")
	p.SetOutputForTest(func(s string) { printed = append(printed, s) })

	resp := response.New(200, http.Header{}, []*http.Cookie{
		{Name: "sid", Value: "abc"},
		{Name: "csrf", Value: "deadbeef"},
	}, nil)
	v := p.Evaluate(resp, plugin.NewStore())

	assert.Equal(t, operation.Continue, v.Kind)
	assert.Equal(t, []string{"sid=abc", "csrf=deadbeef"}, printed)
}

func TestPrint_CookiesWithNameFiltersToOne(t *testing.T) {
	var printed []string
	p := operation.NewPrintCookies("csrf")
	p.SetOutputForTest(func(s string) { printed = append(printed, s) })

	resp := response.New(200, http.Header{}, []*http.Cookie{
		{Name: "sid", Value: "abc"},
		{Name: "csrf", Value: "deadbeef"},
	}, nil)
	p.Evaluate(resp, plugin.NewStore())

	assert.Equal(t, []string{"csrf=deadbeef"}, printed)
}
