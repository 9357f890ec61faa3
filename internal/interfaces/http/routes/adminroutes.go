package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/consultkit/consultkit/internal/infrastructure/permission"
	adminHandlers "github.com/consultkit/consultkit/internal/interfaces/http/handlers/admin"
	"github.com/consultkit/consultkit/internal/interfaces/http/middleware"
)

// AdminRouteConfig holds dependencies for admin routes.
type AdminRouteConfig struct {
	PlanHandler          *adminHandlers.PlanHandler
	UserHandler          *adminHandlers.UserHandler
	AnalyticsHandler     *adminHandlers.AnalyticsHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupAdminRoutes configures admin routes. Every route checks a casbin policy.
func SetupAdminRoutes(engine *gin.Engine, cfg *AdminRouteConfig) {
	admin := engine.Group("/admin", cfg.AuthMiddleware.RequireAuth())

	readPlans := cfg.PermissionMiddleware.RequirePermission(permission.ResourcePlans, permission.ActionRead)
	writePlans := cfg.PermissionMiddleware.RequirePermission(permission.ResourcePlans, permission.ActionWrite)

	plans := admin.Group("/plans")
	{
		plans.GET("", readPlans, cfg.PlanHandler.List)
		plans.POST("", writePlans, cfg.PlanHandler.Create)
		plans.GET("/:id", readPlans, cfg.PlanHandler.Get)
		plans.PUT("/:id", writePlans, cfg.PlanHandler.Update)
		plans.DELETE("/:id", writePlans, cfg.PlanHandler.Delete)
		plans.PATCH("/:id/status", writePlans, cfg.PlanHandler.UpdateStatus)
		plans.PUT("/:id/tools", writePlans, cfg.PlanHandler.SetTools)
	}

	users := admin.Group("/users")
	{
		users.GET("", cfg.PermissionMiddleware.RequirePermission(permission.ResourceUsers, permission.ActionRead), cfg.UserHandler.List)
		users.PUT("/:id/subscription",
			cfg.PermissionMiddleware.RequirePermission(permission.ResourceUsers, permission.ActionWrite),
			cfg.UserHandler.AssignSubscription,
		)
	}

	admin.GET("/analytics/overview",
		cfg.PermissionMiddleware.RequirePermission(permission.ResourceAnalytics, permission.ActionRead),
		cfg.AnalyticsHandler.Overview,
	)
}
