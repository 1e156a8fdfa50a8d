package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/yatter-client/internal/infrastructure/sqlite"
	handlers "github.com/oksasatya/yatter-client/internal/interface/http"
	"github.com/oksasatya/yatter-client/internal/interface/middleware"
)

// AccountModule wires account and follow routes.
// Public: POST /accounts, GET /accounts/:username, GET /accounts/:username/{following,followers}
// Protected: POST /accounts/update_credentials, POST /accounts/:username/{follow,unfollow},
// GET /accounts/relationships
type AccountModule struct {
	Handler *handlers.AccountHandler
	Store   *sqlite.Store
}

func NewAccountModule(h *handlers.AccountHandler, store *sqlite.Store) *AccountModule {
	return &AccountModule{Handler: h, Store: store}
}

func (m *AccountModule) Name() string { return "accounts" }

func (m *AccountModule) Register(rg *gin.RouterGroup) {
	rg.POST("/accounts", m.Handler.Create)
	rg.GET("/accounts/:username", m.Handler.Get)
	rg.GET("/accounts/:username/following", m.Handler.Following)
	rg.GET("/accounts/:username/followers", m.Handler.Followers)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Store))
	{
		auth.POST("/accounts/update_credentials", m.Handler.UpdateCredentials)
		auth.GET("/accounts/relationships", m.Handler.Relationships)
		auth.POST("/accounts/:username/follow", m.Handler.Follow)
		auth.POST("/accounts/:username/unfollow", m.Handler.Unfollow)
	}
}
