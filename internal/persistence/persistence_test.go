package persistence_test

import (
	"net/http"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DigeeX/raider/internal/persistence"
	"github.com/DigeeX/raider/internal/session"
	"github.com/DigeeX/raider/internal/transport"
	"github.com/DigeeX/raider/internal/users"
)

func newSession(t *testing.T) *session.Session {
	t.Helper()
	client, err := transport.New(transport.DefaultConfig())
	require.NoError(t, err)
	return session.New(client, "https://target.test", users.NewStore(nil))
}

func TestDumpLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	s := newSession(t)
	s.Store().Set("sid", "abc")
	s.Store().Set("csrf", "deadbeef")
	s.RecordSetCookies("https://target.test/login", []*http.Cookie{
		{Name: "sid", Value: "abc", Path: "/"},
	})

	require.NoError(t, persistence.Dump(dir, s))

	reloaded := newSession(t)
	require.NoError(t, persistence.Load(dir, reloaded))

	val, ok := reloaded.Store().Get("sid")
	require.True(t, ok)
	assert.Equal(t, "abc", val)

	val, ok = reloaded.Store().Get("csrf")
	require.True(t, ok)
	assert.Equal(t, "deadbeef", val)

	cookies := reloaded.CookieSnapshot()
	require.Len(t, cookies, 1)
	assert.Equal(t, "sid", cookies[0].Name)
	assert.Equal(t, "abc", cookies[0].Value)
}

func TestDumpThenDump_IsByteEqual(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()

	s := newSession(t)
	s.Store().Set("sid", "abc")
	s.RecordSetCookies("https://target.test/login", []*http.Cookie{{Name: "sid", Value: "abc", Path: "/"}})
	require.NoError(t, persistence.Dump(dirA, s))

	reloaded := newSession(t)
	require.NoError(t, persistence.Load(dirA, reloaded))
	require.NoError(t, persistence.Dump(dirB, reloaded))

	for _, name := range []string{"cookies.yaml", "plugins.yaml"} {
		a := readFile(t, dirA+"/"+name)
		b := readFile(t, dirB+"/"+name)
		assert.Equal(t, a, b, "dump -> reload -> dump must be byte-equal for %s", name)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
