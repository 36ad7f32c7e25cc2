package plugin_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DigeeX/raider/internal/plugin"
	"github.com/DigeeX/raider/internal/response"
)

func TestHtml_ExtractsHiddenCsrfValue(t *testing.T) {
	body := `<html><body>
		<input type="hidden" name="csrf_token" value="0123456789abcdef0123456789abcdef01234567">
	</body></html>`

	exact, err := plugin.Pattern(`^[0-9a-f]{40}$`)
	require.NoError(t, err)

	p := plugin.NewHtml("csrf_token", "input", map[string]plugin.AttrMatch{
		"name":  plugin.Exact("csrf_token"),
		"type":  plugin.Exact("hidden"),
		"value": exact,
	}, "value")

	resp := response.New(200, http.Header{}, nil, []byte(body))
	store := plugin.NewStore()

	val, ok := p.ExtractOutput(resp, store)
	require.True(t, ok)
	assert.Equal(t, "0123456789abcdef0123456789abcdef01234567", val)
}

func TestHtml_NoMatchingTag(t *testing.T) {
	p := plugin.NewHtml("csrf_token", "input", map[string]plugin.AttrMatch{
		"name": plugin.Exact("csrf_token"),
	}, "value")

	resp := response.New(200, http.Header{}, nil, []byte(`<html><body><p>nothing here</p></body></html>`))
	_, ok := p.ExtractOutput(resp, plugin.NewStore())
	assert.False(t, ok)
}

func TestHtml_ExtractInnerText(t *testing.T) {
	p := plugin.NewHtml("welcome", "span", map[string]plugin.AttrMatch{
		"class": plugin.Exact("welcome"),
	}, "data")

	resp := response.New(200, http.Header{}, nil, []byte(`<span class="welcome">  Hi Alice  </span>`))
	val, ok := p.ExtractOutput(resp, plugin.NewStore())
	require.True(t, ok)
	assert.Equal(t, "Hi Alice", val)
}
