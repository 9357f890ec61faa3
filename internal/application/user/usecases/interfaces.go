package usecases

import (
	"context"

	"github.com/consultkit/consultkit/internal/application/user/helpers"
	"github.com/consultkit/consultkit/internal/domain/user"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

// JWTService issues token pairs and validates refresh tokens.
type JWTService interface {
	helpers.TokenIssuer
	// VerifyRefresh returns the user and session a refresh token was issued for.
	VerifyRefresh(token string) (userID uint, sessionID string, err error)
}

// StateStore keeps the PKCE verifier for an OAuth state until the callback.
type StateStore interface {
	Set(ctx context.Context, state string, codeVerifier string) error
	// VerifyAndGet consumes the state and returns its verifier.
	VerifyAndGet(ctx context.Context, state string) (string, error)
}

type OAuthUserInfo struct {
	Email         string
	Name          string
	EmailVerified bool
	ProviderID    string
}

type OAuthClient interface {
	AuthURL(state string) (authURL, codeVerifier string)
	Exchange(ctx context.Context, code, codeVerifier string) (*OAuthUserInfo, error)
}

// AuthResult is what every sign-in flow returns.
type AuthResult struct {
	User         *user.User
	SessionID    string
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
	IsNewUser    bool
}

func newAuthResult(u *user.User, s *helpers.SessionWithTokens) *AuthResult {
	return &AuthResult{
		User:         u,
		SessionID:    s.Session.ID,
		AccessToken:  s.Tokens.AccessToken,
		RefreshToken: s.Tokens.RefreshToken,
		ExpiresIn:    s.Tokens.ExpiresIn,
	}
}
