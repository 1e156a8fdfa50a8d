package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/yatter-client/internal/infrastructure/sqlite"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func init() { gin.SetMode(gin.TestMode) }

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestIDMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	_, err := uuid.Parse(w.Body.String())
	require.NoError(t, err)
	assert.Equal(t, w.Body.String(), w.Header().Get(RequestIDHeader))

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, id)
	assert.Equal(t, id, serve(r, req).Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "not-a-uuid")
	assert.NotEqual(t, "not-a-uuid", serve(r, req).Body.String())
}

func TestAuth(t *testing.T) {
	store := newStore(t)
	_, err := store.CreateAccount(context.Background(), "alice", "Password1%")
	require.NoError(t, err)

	r := gin.New()
	r.Use(Auth(store))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(CtxUsernameKey)) })

	cases := map[string]int{
		"":               http.StatusUnauthorized,
		"Bearer x":       http.StatusUnauthorized,
		"username bob":   http.StatusUnauthorized,
		"username alice": http.StatusOK,
	}
	for header, want := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set(AuthenticationHeader, header)
		}
		w := serve(r, req)
		assert.Equal(t, want, w.Code, "header %q", header)
		if want == http.StatusOK {
			assert.Equal(t, "alice", w.Body.String())
		}
	}
}

func TestRealIP(t *testing.T) {
	r := gin.New()
	r.Use(RealIP())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("real_ip")) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "203.0.113.7", serve(r, req).Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Real-IP", "198.51.100.2")
	req.Header.Set("X-Forwarded-For", "203.0.113.7")
	assert.Equal(t, "198.51.100.2", serve(r, req).Body.String())
}

func TestRateLimit(t *testing.T) {
	r := gin.New()
	r.Use(RealIP(), RateLimit(2, time.Minute, KeyByIP()))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	from := func(ip string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Real-IP", ip)
		return req
	}

	assert.Equal(t, http.StatusOK, serve(r, from("192.0.2.1")).Code)
	assert.Equal(t, http.StatusOK, serve(r, from("192.0.2.1")).Code)
	w := serve(r, from("192.0.2.1"))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, serve(r, from("192.0.2.2")).Code, "other clients have their own bucket")
}

func TestRateLimit_Disabled(t *testing.T) {
	r := gin.New()
	r.Use(RateLimit(0, time.Minute, KeyByIP()))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	for i := 0; i < 10; i++ {
		assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
	}
}
