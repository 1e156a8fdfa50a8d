package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/yatter-client/internal/infrastructure/sqlite"
	handlers "github.com/oksasatya/yatter-client/internal/interface/http"
	"github.com/oksasatya/yatter-client/internal/interface/middleware"
	"github.com/oksasatya/yatter-client/internal/router/modules"
	"github.com/oksasatya/yatter-client/pkg/validation"
)

type Options struct {
	Logger         *logrus.Logger
	HTTPLogEnabled bool
	// RateLimit is requests per minute per client; 0 disables limiting.
	RateLimit int
	// CORSOrigins enables CORS for browser clients when non-empty.
	CORSOrigins []string
}

// InitModules builds every module over store and registers it.
func InitModules(r *Registry, store *sqlite.Store, logger *logrus.Logger) {
	r.Add(modules.NewHealthModule())
	r.Add(modules.NewAccountModule(handlers.NewAccountHandler(store, logger), store))
	r.Add(modules.NewStatusModule(
		handlers.NewStatusHandler(store, logger),
		handlers.NewTimelineHandler(store),
		handlers.NewMediaHandler(store, logger),
		store,
	))
}

// New returns a gin engine serving the Yatter API from store.
func New(store *sqlite.Store, opts Options) *gin.Engine {
	validation.Init()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  opts.CORSOrigins,
			AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authentication", middleware.RequestIDHeader},
			ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
			MaxAge:        12 * time.Hour,
		}))
	}
	if opts.HTTPLogEnabled {
		r.Use(gin.Logger())
	}
	metrics := middleware.NewMetrics()
	r.Use(metrics.Middleware())
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	reg := NewRegistry(r, opts.Logger)
	reg.Use(middleware.RateLimit(opts.RateLimit, time.Minute, middleware.KeyByIP()))
	InitModules(reg, store, opts.Logger)
	reg.RegisterAll()
	return r
}
