package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/consultkit/consultkit/internal/interfaces/http/handlers"
	"github.com/consultkit/consultkit/internal/interfaces/http/middleware"
)

// ToolRouteConfig holds dependencies for the catalog and tool run routes.
type ToolRouteConfig struct {
	ToolHandler    *handlers.ToolHandler
	AuthMiddleware *middleware.AuthMiddleware
	// RateLimiter throttles anonymous runs of public tools.
	RateLimiter *middleware.RateLimiter
}

// SetupToolRoutes configures tool routes under the given API group.
// Running a non-public tool is rejected by the handler when no user is attached.
func SetupToolRoutes(api *gin.RouterGroup, cfg *ToolRouteConfig) {
	tools := api.Group("/tools")
	{
		tools.GET("", cfg.ToolHandler.ListTools)
		tools.GET("/categories", cfg.ToolHandler.ListCategories)
		tools.GET("/:slug", cfg.ToolHandler.GetTool)
		tools.POST("/:slug",
			cfg.AuthMiddleware.OptionalAuth(),
			cfg.RateLimiter.LimitAnonymous(),
			cfg.ToolHandler.RunTool,
		)
	}
}
