package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/campus-event-allocation/internal/config"
	"github.com/iliyamo/campus-event-allocation/internal/handler"
	"github.com/iliyamo/campus-event-allocation/internal/middleware"
	"github.com/iliyamo/campus-event-allocation/internal/workflow"
)

// Deps carries everything route registration needs.
type Deps struct {
	Cfg       config.Config
	Auth      *handler.AuthHandler
	Events    *handler.EventHandler
	Catalog   *handler.CatalogHandler
	Dashboard *handler.DashboardHandler
	Redis     *redis.Client
}

// Register wires every route of the API onto the Echo instance.
//
//	/healthz                    public liveness check
//	/v1/auth/*                  register, login, refresh
//	/v1/*                       JWT-protected application surface
//
// The protected group carries the token-bucket rate limiter; the
// read-mostly catalog routes additionally sit behind the Redis
// response cache.  Role gates are applied per route: reviewers
// decide, coordinators create and complete, admins manage catalogs.
func Register(e *echo.Echo, d Deps) {
	e.GET("/healthz", handler.Health)

	// Session endpoints; no JWT required.
	auth := e.Group("/v1/auth")
	auth.POST("/register", d.Auth.Register)
	auth.POST("/login", d.Auth.Login)
	auth.POST("/refresh", d.Auth.Refresh)

	cache := middleware.NewRedisCache(config.LoadCacheConfig(), d.Redis)
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), d.Redis)

	g := e.Group("/v1",
		middleware.JWTAuth(d.Cfg.JWTSecret),
		middleware.RequireRole(
			workflow.RoleCoordinator,
			workflow.RoleHOD,
			workflow.RoleDean,
			workflow.RoleHead,
			workflow.RoleAdmin,
		),
		limiter,
	)

	g.GET("/me", d.Auth.Me)
	g.POST("/auth/logout", d.Auth.Logout)

	// ---- Events ----
	g.POST("/events", d.Events.Create, middleware.RequireRole(workflow.RoleCoordinator))
	g.GET("/events", d.Events.List)
	g.GET("/events/:id", d.Events.Detail)
	g.POST("/events/:id/decide", d.Events.Decide,
		middleware.RequireRole(workflow.RoleHOD, workflow.RoleDean, workflow.RoleHead))
	g.POST("/events/:id/complete", d.Events.Complete, middleware.RequireRole(workflow.RoleCoordinator))

	// ---- Catalogs ----
	g.GET("/venues", d.Catalog.ListVenues, cache)
	g.POST("/venues", d.Catalog.CreateVenue, middleware.RequireRole(workflow.RoleAdmin))
	g.GET("/resources", d.Catalog.ListResources, cache)
	g.POST("/resources", d.Catalog.CreateResource, middleware.RequireRole(workflow.RoleAdmin))

	// ---- Dashboard ----
	// Not cached: the counters depend on the viewer's role scope.
	g.GET("/dashboard/stats", d.Dashboard.Stats)
}
