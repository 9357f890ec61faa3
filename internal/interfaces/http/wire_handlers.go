package http

import (
	"github.com/consultkit/consultkit/internal/interfaces/http/handlers"
	adminHandlers "github.com/consultkit/consultkit/internal/interfaces/http/handlers/admin"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	authHandler       *handlers.AuthHandler
	toolHandler       *handlers.ToolHandler
	usageHandler      *handlers.UsageHandler
	favoriteHandler   *handlers.FavoriteHandler
	preferenceHandler *handlers.PreferenceHandler
	analyticsHandler  *handlers.AnalyticsHandler

	adminPlanHandler      *adminHandlers.PlanHandler
	adminUserHandler      *adminHandlers.UserHandler
	adminAnalyticsHandler *adminHandlers.AnalyticsHandler
}

func (c *Container) initHandlers() {
	ucs := c.ucs
	log := c.log
	h := &allHandlers{}

	h.authHandler = handlers.NewAuthHandler(
		ucs.registerUC,
		ucs.loginUC,
		ucs.refreshTokenUC,
		ucs.logoutUC,
		ucs.getUserUC,
		ucs.initiateOAuthUC,
		ucs.handleOAuthUC,
		c.cfg.Auth.Cookie,
		c.cfg.Auth.JWT,
		c.cfg.Server.FrontendCallbackURL,
		log,
	)
	h.toolHandler = handlers.NewToolHandler(ucs.listToolsUC, ucs.listCategoriesUC, ucs.getToolUC, ucs.runToolUC, log)
	h.usageHandler = handlers.NewUsageHandler(ucs.usageSummaryUC, ucs.quotaService, c.catalog, log)
	h.favoriteHandler = handlers.NewFavoriteHandler(ucs.addFavoriteUC, ucs.removeFavoriteUC, ucs.listFavoritesUC, log)
	h.preferenceHandler = handlers.NewPreferenceHandler(ucs.getPreferencesUC, ucs.updatePreferencesUC, log)
	h.analyticsHandler = handlers.NewAnalyticsHandler(ucs.userAnalyticsUC, log)

	h.adminPlanHandler = adminHandlers.NewPlanHandler(
		ucs.createPlanUC,
		ucs.updatePlanUC,
		ucs.getPlanUC,
		ucs.listPlansUC,
		ucs.deletePlanUC,
		ucs.setPlanStatusUC,
		ucs.setPlanToolsUC,
		log,
	)
	h.adminUserHandler = adminHandlers.NewUserHandler(ucs.listUsersUC, ucs.assignSubscriptionUC, log)
	h.adminAnalyticsHandler = adminHandlers.NewAnalyticsHandler(ucs.overviewUC, log)

	c.hdlrs = h
}
