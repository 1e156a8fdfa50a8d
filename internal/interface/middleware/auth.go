package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/yatter-client/internal/auth"
	"github.com/oksasatya/yatter-client/internal/infrastructure/sqlite"
	"github.com/oksasatya/yatter-client/pkg/response"
)

const (
	AuthenticationHeader = "Authentication"
	CtxUsernameKey       = "username"
)

// Auth resolves the "Authentication: username <name>" header to an existing
// account and stores the name under CtxUsernameKey.
func Auth(store *sqlite.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(AuthenticationHeader)
		if header == "" {
			response.Error(c, http.StatusUnauthorized, "missing authentication", nil)
			return
		}
		username, ok := auth.ParseToken(header)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "malformed authentication", nil)
			return
		}
		if _, err := store.Account(c.Request.Context(), username); err != nil {
			response.Error(c, http.StatusUnauthorized, "unknown account", nil)
			return
		}
		c.Set(CtxUsernameKey, username)
		c.Next()
	}
}
