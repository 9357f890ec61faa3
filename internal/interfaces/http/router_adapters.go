package http

import (
	"context"

	"github.com/consultkit/consultkit/internal/application/user/helpers"
	usageusecases "github.com/consultkit/consultkit/internal/application/usage/usecases"
	"github.com/consultkit/consultkit/internal/application/user/usecases"
	"github.com/consultkit/consultkit/internal/infrastructure/auth"
	"github.com/consultkit/consultkit/internal/infrastructure/cache"
	"github.com/consultkit/consultkit/internal/infrastructure/email"
	"github.com/consultkit/consultkit/internal/shared/authorization"
)

// jwtServiceAdapter adapts auth.JWTService to usecases.JWTService interface
type jwtServiceAdapter struct {
	*auth.JWTService
}

func (a *jwtServiceAdapter) Generate(userID uint, sessionID string, role authorization.UserRole) (*helpers.TokenPair, error) {
	pair, err := a.JWTService.Generate(userID, sessionID, role)
	if err != nil {
		return nil, err
	}
	return &helpers.TokenPair{
		AccessToken:      pair.AccessToken,
		RefreshToken:     pair.RefreshToken,
		ExpiresIn:        pair.ExpiresIn,
		RefreshExpiresAt: pair.RefreshExpiresAt,
	}, nil
}

func (a *jwtServiceAdapter) VerifyRefresh(token string) (uint, string, error) {
	claims, err := a.JWTService.Verify(token, auth.TokenTypeRefresh)
	if err != nil {
		return 0, "", err
	}
	return claims.UserID, claims.SessionID, nil
}

// stateStoreAdapter adapts cache.RedisStateStore to usecases.StateStore interface
type stateStoreAdapter struct {
	store *cache.RedisStateStore
}

func (a *stateStoreAdapter) Set(ctx context.Context, state string, codeVerifier string) error {
	return a.store.Set(ctx, state, codeVerifier)
}

func (a *stateStoreAdapter) VerifyAndGet(ctx context.Context, state string) (string, error) {
	info, err := a.store.VerifyAndGet(ctx, state)
	if err != nil {
		return "", err
	}
	return info.CodeVerifier, nil
}

// googleOAuthAdapter adapts auth.GoogleOAuthClient to usecases.OAuthClient interface
type googleOAuthAdapter struct {
	client *auth.GoogleOAuthClient
}

func (a *googleOAuthAdapter) AuthURL(state string) (string, string) {
	return a.client.AuthURL(state)
}

func (a *googleOAuthAdapter) Exchange(ctx context.Context, code, codeVerifier string) (*usecases.OAuthUserInfo, error) {
	info, err := a.client.Exchange(ctx, code, codeVerifier)
	if err != nil {
		return nil, err
	}
	return &usecases.OAuthUserInfo{
		Email:         info.Email,
		Name:          info.Name,
		EmailVerified: info.EmailVerified,
		ProviderID:    info.ProviderID,
	}, nil
}

type quotaEmailSender interface {
	SendQuotaReached(ctx context.Context, q email.QuotaReached) error
}

// quotaMailerAdapter adapts the email service to usageusecases.QuotaMailer interface
type quotaMailerAdapter struct {
	sender quotaEmailSender
}

func (a *quotaMailerAdapter) SendQuotaReached(ctx context.Context, mail usageusecases.QuotaMail) error {
	return a.sender.SendQuotaReached(ctx, email.QuotaReached{
		To:       mail.To,
		Name:     mail.Name,
		ToolName: mail.ToolName,
		Limit:    mail.Limit,
		ResetsAt: mail.ResetsAt,
	})
}
