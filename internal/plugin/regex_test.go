package plugin_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DigeeX/raider/internal/plugin"
	"github.com/DigeeX/raider/internal/response"
)

func TestRegex_ExtractsFirstCaptureGroup(t *testing.T) {
	p, err := plugin.NewRegex("access_token", `"accessToken":"([^"]+)"`)
	require.NoError(t, err)

	resp := response.New(200, http.Header{}, nil, []byte(`{"accessToken":"TOK","other":1}`))
	val, ok := p.ExtractOutput(resp, plugin.NewStore())
	require.True(t, ok)
	assert.Equal(t, "TOK", val)
}

func TestRegex_NoMatchIsAbsent(t *testing.T) {
	p, err := plugin.NewRegex("access_token", `"accessToken":"([^"]+)"`)
	require.NoError(t, err)

	resp := response.New(200, http.Header{}, nil, []byte(`{"nope":true}`))
	_, ok := p.ExtractOutput(resp, plugin.NewStore())
	assert.False(t, ok)
}

func TestJson_ExtractsDottedPath(t *testing.T) {
	p := plugin.NewJson("user_id", "data.user.id")
	resp := response.New(200, http.Header{}, nil, []byte(`{"data":{"user":{"id":"42"}}}`))
	val, ok := p.ExtractOutput(resp, plugin.NewStore())
	require.True(t, ok)
	assert.Equal(t, "42", val)
}

func TestJson_MissingIntermediateKeyIsAbsent(t *testing.T) {
	p := plugin.NewJson("user_id", "data.user.id")
	resp := response.New(200, http.Header{}, nil, []byte(`{"data":{}}`))
	_, ok := p.ExtractOutput(resp, plugin.NewStore())
	assert.False(t, ok)
}
