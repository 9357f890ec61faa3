package http

import (
	"gorm.io/gorm"

	"github.com/consultkit/consultkit/internal/domain/analytics"
	"github.com/consultkit/consultkit/internal/domain/favorite"
	"github.com/consultkit/consultkit/internal/domain/plan"
	"github.com/consultkit/consultkit/internal/domain/preference"
	"github.com/consultkit/consultkit/internal/domain/usage"
	"github.com/consultkit/consultkit/internal/domain/user"
	"github.com/consultkit/consultkit/internal/infrastructure/repository"
	"github.com/consultkit/consultkit/internal/shared/logger"
)

// repositories holds all repository instances used by the application.
type repositories struct {
	userRepo         user.Repository
	sessionRepo      user.SessionRepository
	oauthRepo        user.OAuthAccountRepository
	planRepo         plan.Repository
	planToolRepo     plan.PlanToolRepository
	subscriptionRepo plan.SubscriptionRepository
	usageRepo        usage.Repository
	favoriteRepo     favorite.Repository
	preferenceRepo   preference.Repository
	analyticsRepo    analytics.Repository
}

func newRepositories(db *gorm.DB, log logger.Interface) *repositories {
	return &repositories{
		userRepo:         repository.NewUserRepository(db, log),
		sessionRepo:      repository.NewSessionRepository(db, log),
		oauthRepo:        repository.NewOAuthAccountRepository(db),
		planRepo:         repository.NewPlanRepository(db, log),
		planToolRepo:     repository.NewPlanToolRepository(db, log),
		subscriptionRepo: repository.NewSubscriptionRepository(db, log),
		usageRepo:        repository.NewUsageRepository(db, log),
		favoriteRepo:     repository.NewFavoriteRepository(db, log),
		preferenceRepo:   repository.NewPreferenceRepository(db, log),
		analyticsRepo:    repository.NewAnalyticsRepository(db, log),
	}
}
