package plugin_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DigeeX/raider/internal/plugin"
)

func TestCombine_ConcatenatesInOrder(t *testing.T) {
	store := plugin.NewStore()
	a := plugin.NewEmpty("a")
	b := plugin.NewEmpty("b")
	store.Set("a", "foo")
	store.Set("b", "bar")

	c := plugin.NewCombine("ab", a, b)
	val, ok := c.ResolveInput(nil, nil, store)
	require.True(t, ok)
	assert.Equal(t, "foobar", val)
}

func TestCombine_AbsentPartFailsWhole(t *testing.T) {
	store := plugin.NewStore()
	a := plugin.NewEmpty("a")
	b := plugin.NewEmpty("b")
	store.Set("a", "foo")

	c := plugin.NewCombine("ab", a, b)
	_, ok := c.ResolveInput(nil, nil, store)
	assert.False(t, ok)
}

func TestAlter_PrefixSuffixReplace(t *testing.T) {
	store := plugin.NewStore()
	inner := plugin.NewEmpty("raw")
	store.Set("raw", "hello-world")

	a := plugin.NewAlter("altered", inner, ">>", "<<", "-", "_")
	val, ok := a.ResolveInput(nil, nil, store)
	require.True(t, ok)
	assert.Equal(t, ">>hello_world<<", val)
}

func TestUrlParser_ExtractsComponents(t *testing.T) {
	store := plugin.NewStore()
	inner := plugin.NewEmpty("location")
	store.Set("location", "https://example.com/a/b?x=1")

	host := plugin.NewUrlParser("host", inner, plugin.ComponentHost)
	val, ok := host.ResolveInput(nil, nil, store)
	require.True(t, ok)
	assert.Equal(t, "example.com", val)

	path := plugin.NewUrlParser("path", inner, plugin.ComponentPath)
	val, ok = path.ResolveInput(nil, nil, store)
	require.True(t, ok)
	assert.Equal(t, "/a/b", val)
}
