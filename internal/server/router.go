// Package server assembles the gin engine and the HTTP server around it.
package server

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/items-api/internal/auth"
	"github.com/yukikurage/items-api/internal/handlers"
	"github.com/yukikurage/items-api/internal/middleware"
	"github.com/yukikurage/items-api/internal/ratelimit"
	"github.com/yukikurage/items-api/internal/services"
	"gorm.io/gorm"
)

// Deps are the long-lived collaborators the routes are built from.
type Deps struct {
	DB          *gorm.DB
	Logger      *slog.Logger
	Version     string
	Tokens      *auth.TokenIssuer
	Transport   auth.Transport
	AuthService *services.AuthService
	ItemService *services.ItemService
	// Limiter is optional; sign-up and sign-in are rate limited when set.
	Limiter ratelimit.Limiter
	// TrustedProxies may set client IPs through forwarding headers. Empty means none.
	TrustedProxies []string
}

// NewRouter registers every route under /api
func NewRouter(deps Deps) *gin.Engine {
	r := gin.New()
	if err := r.SetTrustedProxies(deps.TrustedProxies); err != nil {
		deps.Logger.Error("invalid trusted proxies, trusting none", "error", err)
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(deps.Logger),
		gin.Recovery(),
		deps.Transport.Middleware(),
	)

	authHandler := handlers.NewAuthHandler(deps.AuthService, deps.Transport, deps.Logger)
	itemHandler := handlers.NewItemHandler(deps.ItemService, deps.Logger)
	healthHandler := handlers.NewHealthHandler(deps.DB, deps.Version, deps.Logger)

	requireAuth := middleware.RequireAuth(deps.Tokens, deps.Transport)
	var throttle gin.HandlerFunc = func(c *gin.Context) { c.Next() }
	if deps.Limiter != nil {
		throttle = middleware.RateLimit(deps.Limiter, deps.Logger)
	}

	api := r.Group("/api")
	{
		api.GET("/health", healthHandler.Health)
		api.GET("/ready", healthHandler.Ready)

		// Auth routes (public except /me)
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/signup", throttle, authHandler.Signup)
			authRoutes.POST("/signin", throttle, authHandler.Signin)
			authRoutes.POST("/signout", authHandler.Signout)
			authRoutes.GET("/me", requireAuth, authHandler.Me)
		}

		// Item routes (protected)
		items := api.Group("/items")
		items.Use(requireAuth)
		{
			items.GET("", itemHandler.ListItems)
			items.POST("", itemHandler.CreateItem)
			items.GET("/:id", itemHandler.GetItem)
			items.PATCH("/:id", itemHandler.UpdateItem)
			items.DELETE("/:id", itemHandler.DeleteItem)
		}
	}

	return r
}
