// Package router wires the middleware chain and every HTTP route.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/skilltreedocs/skilltreedocs/consts"
	"github.com/skilltreedocs/skilltreedocs/internal/api/handler"
	"github.com/skilltreedocs/skilltreedocs/internal/api/middleware"
	"github.com/skilltreedocs/skilltreedocs/internal/assets"
	"github.com/skilltreedocs/skilltreedocs/internal/config"
	"github.com/skilltreedocs/skilltreedocs/internal/registry"
	"github.com/skilltreedocs/skilltreedocs/internal/render"
	"github.com/skilltreedocs/skilltreedocs/internal/skilltree"
	"github.com/skilltreedocs/skilltreedocs/internal/store"
	"github.com/skilltreedocs/skilltreedocs/pkg/telemetry"
)

// Deps are the components the routes are served from.
type Deps struct {
	Config    *config.Config
	Registry  *registry.Registry
	Engine    *render.Engine
	Store     store.Store
	Telemetry *telemetry.Telemetry
}

// Setup configures all routes on r.
func Setup(r *gin.Engine, d Deps) {
	cfg := d.Config

	r.Use(middleware.Recovery())
	r.Use(middleware.Logger(&middleware.LoggerConfig{
		AccessLog: cfg.Logging.AccessLog,
	}))
	r.Use(middleware.CORS(cfg.Server.CORSOrigins))
	r.Use(middleware.RequestID())
	r.Use(middleware.Metrics())
	r.Use(middleware.ErrorHandler(cfg.Server.Debug))
	r.Use(otelgin.Middleware(consts.ServiceName))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if h := d.Telemetry.MetricsHandler(); h != nil {
		r.GET("/metrics", gin.WrapH(h))
	}
	assets.RegisterRoutes(r, cfg.Content.StaticDir)

	// ============== Site pages ==============

	site := handler.NewSiteHandler(d.Registry, d.Engine, d.Store)
	r.GET("/", site.Index)
	r.GET("/skills", site.ListSkills)
	r.GET(skilltree.DefaultEndpoints.SkillPrefix+":skill", site.GetSkill)
	r.GET("/packages", site.ListPackages)
	r.GET("/packages/:package/:tab", site.GetTab)
	r.GET("/missing", site.Missing)

	// Called by the controls injected into every tab.
	update := handler.NewUpdateHandler(d.Registry, d.Store)
	r.PUT(skilltree.DefaultEndpoints.Update, update.Update)

	// ============== API v1 ==============

	v1 := r.Group("/api/v1")

	users := handler.NewUsersHandler(d.Registry, d.Store)
	v1.POST("/users", users.Create)
	v1.GET("/users/:session/skills", users.GetValues)

	authHandler := handler.NewAuthHandler(cfg.Admin)
	v1.POST("/auth/login", authHandler.Login)
	v1.GET("/auth/me", middleware.JWTAuth(authHandler), authHandler.Me)

	adminHandler := handler.NewAdminHandler(d.Registry, d.Store)
	admin := v1.Group("/admin")
	admin.Use(middleware.JWTAuth(authHandler))
	{
		admin.GET("/me", authHandler.Me)
		admin.GET("/missing", adminHandler.GetMissing)
		admin.GET("/status", adminHandler.GetStatus)
	}
}
