package handlers

import (
	"context"

	analyticsdto "github.com/consultkit/consultkit/internal/application/analytics/dto"
	favoriteusecases "github.com/consultkit/consultkit/internal/application/favorite/usecases"
	preferenceusecases "github.com/consultkit/consultkit/internal/application/preference/usecases"
	toolusecases "github.com/consultkit/consultkit/internal/application/tool/usecases"
	usageusecases "github.com/consultkit/consultkit/internal/application/usage/usecases"
	userusecases "github.com/consultkit/consultkit/internal/application/user/usecases"
	"github.com/consultkit/consultkit/internal/domain/preference"
	"github.com/consultkit/consultkit/internal/domain/tool"
	"github.com/consultkit/consultkit/internal/domain/usage"
	"github.com/consultkit/consultkit/internal/domain/user"
)

// Auth use cases.

type registerUseCase interface {
	Execute(ctx context.Context, cmd userusecases.RegisterWithPasswordCommand) (*userusecases.AuthResult, error)
}

type loginUseCase interface {
	Execute(ctx context.Context, cmd userusecases.LoginWithPasswordCommand) (*userusecases.AuthResult, error)
}

type refreshTokenUseCase interface {
	Execute(ctx context.Context, cmd userusecases.RefreshTokenCommand) (*userusecases.AuthResult, error)
}

type logoutUseCase interface {
	Execute(ctx context.Context, cmd userusecases.LogoutCommand) error
}

type getUserUseCase interface {
	Execute(ctx context.Context, userID uint) (*user.User, error)
}

type initiateOAuthUseCase interface {
	Execute(ctx context.Context) (*userusecases.InitiateOAuthLoginResult, error)
}

type handleOAuthUseCase interface {
	Execute(ctx context.Context, cmd userusecases.HandleOAuthCallbackCommand) (*userusecases.AuthResult, error)
}

// Tool use cases.

type listToolsUseCase interface {
	Execute(q toolusecases.ListToolsQuery) *toolusecases.ListToolsResult
}

type listCategoriesUseCase interface {
	Execute() []toolusecases.CategoryCount
}

type getToolUseCase interface {
	Execute(slug string) (*toolusecases.ToolDetail, error)
}

type runToolUseCase interface {
	Execute(ctx context.Context, cmd toolusecases.RunToolCommand) (*tool.Result, error)
}

// Usage use cases.

type usageSummaryUseCase interface {
	Execute(ctx context.Context, userID uint) (*usageusecases.UsageSummary, error)
}

type quotaEvaluator interface {
	Evaluate(ctx context.Context, userID uint, slug string) (usage.Quota, error)
}

// Favorites, preferences and analytics.

type addFavoriteUseCase interface {
	Execute(ctx context.Context, userID uint, slug string) error
}

type removeFavoriteUseCase interface {
	Execute(ctx context.Context, userID uint, slug string) error
}

type listFavoritesUseCase interface {
	Execute(ctx context.Context, userID uint) ([]favoriteusecases.FavoriteDTO, error)
}

type getPreferencesUseCase interface {
	Execute(ctx context.Context, userID uint) (*preference.Preferences, error)
}

type updatePreferencesUseCase interface {
	Execute(ctx context.Context, cmd preferenceusecases.UpdatePreferencesCommand) (*preference.Preferences, error)
}

type userAnalyticsUseCase interface {
	Execute(ctx context.Context, userID uint, days int) (*analyticsdto.UserAnalyticsDTO, error)
}
