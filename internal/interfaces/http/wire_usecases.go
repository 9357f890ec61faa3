package http

import (
	analyticsUsecases "github.com/consultkit/consultkit/internal/application/analytics/usecases"
	favoriteUsecases "github.com/consultkit/consultkit/internal/application/favorite/usecases"
	planUsecases "github.com/consultkit/consultkit/internal/application/plan/usecases"
	preferenceUsecases "github.com/consultkit/consultkit/internal/application/preference/usecases"
	toolUsecases "github.com/consultkit/consultkit/internal/application/tool/usecases"
	usageUsecases "github.com/consultkit/consultkit/internal/application/usage/usecases"
	"github.com/consultkit/consultkit/internal/application/user/helpers"
	"github.com/consultkit/consultkit/internal/application/user/usecases"
	"github.com/consultkit/consultkit/internal/shared/db"
)

// allUseCases holds all use case instances used by the application.
type allUseCases struct {
	// User / Auth
	registerUC      *usecases.RegisterWithPasswordUseCase
	loginUC         *usecases.LoginWithPasswordUseCase
	refreshTokenUC  *usecases.RefreshTokenUseCase
	logoutUC        *usecases.LogoutUseCase
	getUserUC       *usecases.GetUserUseCase
	listUsersUC     *usecases.ListUsersUseCase
	initiateOAuthUC *usecases.InitiateOAuthLoginUseCase
	handleOAuthUC   *usecases.HandleOAuthCallbackUseCase

	// Tools
	listToolsUC      *toolUsecases.ListToolsUseCase
	listCategoriesUC *toolUsecases.ListCategoriesUseCase
	getToolUC        *toolUsecases.GetToolUseCase
	runToolUC        *toolUsecases.RunToolUseCase

	// Usage
	quotaService   *usageUsecases.QuotaService
	usageSummaryUC *usageUsecases.GetUsageSummaryUseCase

	// Plans
	createPlanUC         *planUsecases.CreatePlanUseCase
	updatePlanUC         *planUsecases.UpdatePlanUseCase
	getPlanUC            *planUsecases.GetPlanUseCase
	listPlansUC          *planUsecases.ListPlansUseCase
	deletePlanUC         *planUsecases.DeletePlanUseCase
	setPlanStatusUC      *planUsecases.SetPlanStatusUseCase
	setPlanToolsUC       *planUsecases.SetPlanToolsUseCase
	assignSubscriptionUC *planUsecases.AssignSubscriptionUseCase

	// Favorites & preferences
	addFavoriteUC       *favoriteUsecases.AddFavoriteUseCase
	removeFavoriteUC    *favoriteUsecases.RemoveFavoriteUseCase
	listFavoritesUC     *favoriteUsecases.ListFavoritesUseCase
	getPreferencesUC    *preferenceUsecases.GetPreferencesUseCase
	updatePreferencesUC *preferenceUsecases.UpdatePreferencesUseCase

	// Analytics
	userAnalyticsUC *analyticsUsecases.GetUserAnalyticsUseCase
	overviewUC      *analyticsUsecases.GetOverviewUseCase
}

func (c *Container) initUseCases() {
	r := c.repos
	log := c.log
	ucs := &allUseCases{}
	txManager := db.NewTransactionManager(c.db)

	authHelper := helpers.NewAuthHelper(r.userRepo, r.sessionRepo, c.jwtService, log)
	ucs.registerUC = usecases.NewRegisterWithPasswordUseCase(r.userRepo, c.hasher, authHelper, log)
	ucs.loginUC = usecases.NewLoginWithPasswordUseCase(r.userRepo, c.hasher, authHelper, log)
	ucs.refreshTokenUC = usecases.NewRefreshTokenUseCase(r.userRepo, r.sessionRepo, c.jwtService, authHelper, log)
	ucs.logoutUC = usecases.NewLogoutUseCase(r.sessionRepo, log)
	ucs.getUserUC = usecases.NewGetUserUseCase(r.userRepo, log)
	ucs.listUsersUC = usecases.NewListUsersUseCase(r.userRepo, log)
	ucs.initiateOAuthUC = usecases.NewInitiateOAuthLoginUseCase(c.googleClient, c.stateStore, log)
	ucs.handleOAuthUC = usecases.NewHandleOAuthCallbackUseCase(r.userRepo, r.oauthRepo, c.googleClient, c.stateStore, authHelper, log)

	notifier := usageUsecases.NewQuotaNotifier(r.userRepo, r.preferenceRepo, c.mailer, log)
	ucs.quotaService = usageUsecases.NewQuotaService(r.planRepo, r.planToolRepo, r.subscriptionRepo, r.usageRepo, notifier, log)
	ucs.usageSummaryUC = usageUsecases.NewGetUsageSummaryUseCase(ucs.quotaService, r.planToolRepo, r.usageRepo, c.catalog, log)

	ucs.listToolsUC = toolUsecases.NewListToolsUseCase(c.catalog)
	ucs.listCategoriesUC = toolUsecases.NewListCategoriesUseCase(c.catalog)
	ucs.getToolUC = toolUsecases.NewGetToolUseCase(c.catalog, c.markdown, log)
	ucs.runToolUC = toolUsecases.NewRunToolUseCase(
		c.catalog,
		c.completer,
		ucs.quotaService,
		r.analyticsRepo,
		c.markdown.StripHTML,
		c.cfg.Tools.ExposeErrorDetails,
		log,
	)

	ucs.createPlanUC = planUsecases.NewCreatePlanUseCase(r.planRepo, txManager, log)
	ucs.updatePlanUC = planUsecases.NewUpdatePlanUseCase(r.planRepo, r.planToolRepo, txManager, log)
	ucs.getPlanUC = planUsecases.NewGetPlanUseCase(r.planRepo, r.planToolRepo, log)
	ucs.listPlansUC = planUsecases.NewListPlansUseCase(r.planRepo, log)
	ucs.deletePlanUC = planUsecases.NewDeletePlanUseCase(r.planRepo, r.subscriptionRepo, log)
	ucs.setPlanStatusUC = planUsecases.NewSetPlanStatusUseCase(r.planRepo, log)
	ucs.setPlanToolsUC = planUsecases.NewSetPlanToolsUseCase(r.planRepo, r.planToolRepo, c.catalog, log)
	ucs.assignSubscriptionUC = planUsecases.NewAssignSubscriptionUseCase(r.userRepo, r.planRepo, r.subscriptionRepo, log)

	ucs.addFavoriteUC = favoriteUsecases.NewAddFavoriteUseCase(r.favoriteRepo, c.catalog, log)
	ucs.removeFavoriteUC = favoriteUsecases.NewRemoveFavoriteUseCase(r.favoriteRepo, log)
	ucs.listFavoritesUC = favoriteUsecases.NewListFavoritesUseCase(r.favoriteRepo, c.catalog, log)
	ucs.getPreferencesUC = preferenceUsecases.NewGetPreferencesUseCase(r.preferenceRepo, log)
	ucs.updatePreferencesUC = preferenceUsecases.NewUpdatePreferencesUseCase(r.preferenceRepo, log)

	ucs.userAnalyticsUC = analyticsUsecases.NewGetUserAnalyticsUseCase(r.analyticsRepo, log)
	ucs.overviewUC = analyticsUsecases.NewGetOverviewUseCase(r.analyticsRepo, log)

	c.ucs = ucs
}
