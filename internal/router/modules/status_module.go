package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/yatter-client/internal/infrastructure/sqlite"
	handlers "github.com/oksasatya/yatter-client/internal/interface/http"
	"github.com/oksasatya/yatter-client/internal/interface/middleware"
)

// StatusModule wires statuses, timelines and media.
type StatusModule struct {
	Statuses  *handlers.StatusHandler
	Timelines *handlers.TimelineHandler
	Media     *handlers.MediaHandler
	Store     *sqlite.Store
}

func NewStatusModule(s *handlers.StatusHandler, t *handlers.TimelineHandler, md *handlers.MediaHandler, store *sqlite.Store) *StatusModule {
	return &StatusModule{Statuses: s, Timelines: t, Media: md, Store: store}
}

func (m *StatusModule) Name() string { return "statuses" }

func (m *StatusModule) Register(rg *gin.RouterGroup) {
	rg.GET("/timelines/public", m.Timelines.Public)
	rg.GET("/statuses/:id", m.Statuses.Get)
	rg.GET("/media/files/:id", m.Media.Serve)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Store))
	{
		auth.GET("/timelines/home", m.Timelines.Home)
		auth.POST("/statuses", m.Statuses.Create)
		auth.DELETE("/statuses/:id", m.Statuses.Delete)
		auth.POST("/media", m.Media.Upload)
	}
}
