package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/consultkit/consultkit/internal/interfaces/http/handlers"
	"github.com/consultkit/consultkit/internal/interfaces/http/middleware"
)

// AuthRouteConfig holds dependencies for authentication routes.
type AuthRouteConfig struct {
	AuthHandler    *handlers.AuthHandler
	AuthMiddleware *middleware.AuthMiddleware
	RateLimiter    *middleware.RateLimiter
}

// SetupAuthRoutes configures authentication routes.
func SetupAuthRoutes(engine *gin.Engine, cfg *AuthRouteConfig) {
	auth := engine.Group("/auth")
	{
		auth.POST("/register", cfg.RateLimiter.Limit(), cfg.AuthHandler.Register)
		auth.POST("/login", cfg.RateLimiter.Limit(), cfg.AuthHandler.Login)
		auth.POST("/refresh", cfg.RateLimiter.Limit(), cfg.AuthHandler.RefreshToken)

		auth.GET("/oauth/google", cfg.AuthHandler.InitiateGoogleOAuth)
		auth.GET("/oauth/google/callback", cfg.AuthHandler.HandleGoogleCallback)

		// Logout must also clear cookies for callers whose access token expired.
		auth.POST("/logout", cfg.AuthMiddleware.OptionalAuth(), cfg.AuthHandler.Logout)
		auth.GET("/me", cfg.AuthMiddleware.RequireAuth(), cfg.AuthHandler.GetCurrentUser)
	}
}
