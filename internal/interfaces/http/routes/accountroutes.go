package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/consultkit/consultkit/internal/interfaces/http/handlers"
	"github.com/consultkit/consultkit/internal/interfaces/http/middleware"
)

// AccountRouteConfig holds dependencies for the signed-in user's own resources.
type AccountRouteConfig struct {
	UsageHandler      *handlers.UsageHandler
	FavoriteHandler   *handlers.FavoriteHandler
	PreferenceHandler *handlers.PreferenceHandler
	AnalyticsHandler  *handlers.AnalyticsHandler
	AuthMiddleware    *middleware.AuthMiddleware
}

// SetupAccountRoutes configures usage, favorites, preferences and personal analytics.
func SetupAccountRoutes(api *gin.RouterGroup, cfg *AccountRouteConfig) {
	account := api.Group("", cfg.AuthMiddleware.RequireAuth())

	usage := account.Group("/usage")
	{
		usage.GET("", cfg.UsageHandler.GetUsage)
		usage.GET("/tools/:slug", cfg.UsageHandler.GetToolUsage)
	}

	favorites := account.Group("/favorites")
	{
		favorites.GET("", cfg.FavoriteHandler.ListFavorites)
		favorites.PUT("/:slug", cfg.FavoriteHandler.AddFavorite)
		favorites.DELETE("/:slug", cfg.FavoriteHandler.RemoveFavorite)
	}

	account.GET("/preferences", cfg.PreferenceHandler.GetPreferences)
	account.PATCH("/preferences", cfg.PreferenceHandler.UpdatePreferences)

	account.GET("/analytics/me", cfg.AnalyticsHandler.GetMyAnalytics)
}
