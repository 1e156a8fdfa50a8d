package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/yatter-client/internal/infrastructure/sqlite"
	"github.com/oksasatya/yatter-client/internal/router"
	"github.com/oksasatya/yatter-client/pkg/helpers"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func setup(t *testing.T) func(args ...string) (string, string, int) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	srv := httptest.NewServer(router.New(newStore(t), router.Options{Logger: helpers.Discard()}))
	t.Cleanup(srv.Close)

	t.Setenv("APP_ENV", "test")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("API_URL", srv.URL)
	t.Setenv("SESSION_BACKEND", "file")
	t.Setenv("SESSION_FILE", filepath.Join(t.TempDir(), "session.toml"))

	return func(args ...string) (string, string, int) {
		var out, errOut bytes.Buffer
		code := run(context.Background(), args, &out, &errOut)
		return out.String(), errOut.String(), code
	}
}

func TestCLI_Flow(t *testing.T) {
	yatter := setup(t)

	out, _, code := yatter("start")
	require.Equal(t, 0, code)
	assert.Equal(t, "login\n", out)

	_, errOut, code := yatter("register", "-u", "alice", "-p", "weak")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "password needs")

	out, errOut, code = yatter("register", "-u", "alice", "-p", "Password1%")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "alice")

	out, _, code = yatter("start")
	require.Equal(t, 0, code)
	assert.Equal(t, "public timeline\n", out)

	img := filepath.Join(t.TempDir(), "pic.png")
	require.NoError(t, os.WriteFile(img, []byte("\x89PNG\r\n\x1a\n0000"), 0o600))
	out, errOut, code = yatter("post", "-m", img, "hello", "world")
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, "posted\n", out)

	out, _, code = yatter("timeline")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "alice: hello world")
	assert.Contains(t, out, "image http")

	out, _, code = yatter("whoami")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "alice")

	out, _, code = yatter("logout")
	require.Equal(t, 0, code)
	assert.Equal(t, "logged out\n", out)

	_, errOut, code = yatter("post", "again")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "not logged in")
}

func TestCLI_Follow(t *testing.T) {
	yatter := setup(t)
	_, errOut, code := yatter("register", "-u", "bob", "-p", "Password1%")
	require.Equal(t, 0, code, errOut)
	_, errOut, code = yatter("register", "-u", "alice", "-p", "Password1%")
	require.Equal(t, 0, code, errOut)

	out, errOut, code := yatter("follow", "bob")
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, "bob following=true followed_by=false\n", out)

	out, _, code = yatter("followers", "bob")
	require.Equal(t, 0, code)
	assert.Equal(t, "alice\n", out)

	_, errOut, code = yatter("follow", "alice")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "yourself")
}

func TestCLI_Usage(t *testing.T) {
	yatter := setup(t)
	_, errOut, code := yatter()
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "usage:")

	_, _, code = yatter("dance")
	assert.Equal(t, 2, code)
}
