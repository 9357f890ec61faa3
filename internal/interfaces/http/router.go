package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/consultkit/consultkit/docs"
	"github.com/consultkit/consultkit/internal/interfaces/http/middleware"
	"github.com/consultkit/consultkit/internal/interfaces/http/routes"
	"github.com/consultkit/consultkit/internal/shared/utils"
)

// SetupRoutes configures all HTTP routes.
func (c *Container) SetupRoutes() {
	c.engine.Use(middleware.RequestID())
	c.engine.Use(middleware.Recovery(c.log))
	c.engine.Use(middleware.CustomLogger(c.log))
	c.engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))
	c.engine.Use(middleware.SecurityHeaders())

	if gin.Mode() != gin.ReleaseMode {
		c.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	c.engine.GET("/health", c.healthCheck)

	routes.SetupAuthRoutes(c.engine, &routes.AuthRouteConfig{
		AuthHandler:    c.hdlrs.authHandler,
		AuthMiddleware: c.authMiddleware,
		RateLimiter:    c.authRateLimiter,
	})

	api := c.engine.Group("/api")

	routes.SetupToolRoutes(api, &routes.ToolRouteConfig{
		ToolHandler:    c.hdlrs.toolHandler,
		AuthMiddleware: c.authMiddleware,
		RateLimiter:    c.toolRateLimiter,
	})

	routes.SetupAccountRoutes(api, &routes.AccountRouteConfig{
		UsageHandler:      c.hdlrs.usageHandler,
		FavoriteHandler:   c.hdlrs.favoriteHandler,
		PreferenceHandler: c.hdlrs.preferenceHandler,
		AnalyticsHandler:  c.hdlrs.analyticsHandler,
		AuthMiddleware:    c.authMiddleware,
	})

	routes.SetupAdminRoutes(c.engine, &routes.AdminRouteConfig{
		PlanHandler:          c.hdlrs.adminPlanHandler,
		UserHandler:          c.hdlrs.adminUserHandler,
		AnalyticsHandler:     c.hdlrs.adminAnalyticsHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})
}

// healthCheck godoc
// @Summary Health check
// @Description Reports whether the database and redis are reachable.
// @Tags System
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 503 {object} utils.APIResponse
// @Router /health [get]
func (c *Container) healthCheck(ctx *gin.Context) {
	reqCtx := ctx.Request.Context()

	sqlDB, err := c.db.DB()
	if err == nil {
		err = sqlDB.PingContext(reqCtx)
	}
	if err != nil {
		c.log.Warnw("health check: database unreachable", "error", err)
		utils.ErrorResponse(ctx, http.StatusServiceUnavailable, "database unavailable")
		return
	}

	if err := c.redis.Ping(reqCtx).Err(); err != nil {
		c.log.Warnw("health check: redis unreachable", "error", err)
		utils.ErrorResponse(ctx, http.StatusServiceUnavailable, "redis unavailable")
		return
	}

	utils.SuccessResponse(ctx, http.StatusOK, "ok", gin.H{"status": "healthy", "tools": len(c.catalog.All())})
}
