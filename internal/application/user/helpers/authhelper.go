package helpers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/consultkit/consultkit/internal/domain/user"
	"github.com/consultkit/consultkit/internal/shared/authorization"
	"github.com/consultkit/consultkit/internal/shared/errors"
	"github.com/consultkit/consultkit/internal/shared/logger"
)

type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	ExpiresIn        int64
	RefreshExpiresAt time.Time
}

// TokenIssuer signs access/refresh pairs bound to a session.
type TokenIssuer interface {
	Generate(userID uint, sessionID string, role authorization.UserRole) (*TokenPair, error)
}

// DeviceInfo describes the client a session is opened for.
type DeviceInfo struct {
	IPAddress string
	UserAgent string
}

type SessionWithTokens struct {
	Session *user.Session
	Tokens  *TokenPair
}

// AuthHelper provides common authentication helper methods
type AuthHelper struct {
	userRepo    user.Repository
	sessionRepo user.SessionRepository
	tokens      TokenIssuer
	logger      logger.Interface
}

func NewAuthHelper(userRepo user.Repository, sessionRepo user.SessionRepository, tokens TokenIssuer, logger logger.Interface) *AuthHelper {
	return &AuthHelper{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		tokens:      tokens,
		logger:      logger,
	}
}

// HashToken generates SHA256 hash of a token for secure storage
func (h *AuthHelper) HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

// PromoteIfFirstUser grants admin to the first account ever created.
func (h *AuthHelper) PromoteIfFirstUser(ctx context.Context, u *user.User) {
	_, total, err := h.userRepo.List(ctx, user.ListFilter{Page: 1, PageSize: 1})
	if err != nil {
		h.logger.Errorw("failed to count users", "error", err)
		return
	}
	if total != 1 {
		return
	}

	if err := u.SetRole(authorization.RoleAdmin); err != nil {
		h.logger.Errorw("failed to set admin role", "error", err)
		return
	}
	if err := h.userRepo.Update(ctx, u); err != nil {
		h.logger.Errorw("failed to update user role to admin", "error", err, "user_id", u.ID())
		return
	}
	h.logger.Infow("admin role assigned to first user", "user_id", u.ID())
}

// ValidateUserCanLogin rejects deactivated accounts.
func (h *AuthHelper) ValidateUserCanLogin(u *user.User) error {
	if !u.IsActive() {
		return errors.NewAccountInactiveError()
	}
	return nil
}

// CreateSessionWithTokens opens a session and issues its first token pair.
// Only the refresh token's hash is stored.
func (h *AuthHelper) CreateSessionWithTokens(ctx context.Context, u *user.User, device DeviceInfo) (*SessionWithTokens, error) {
	session, err := user.NewSession(u.ID(), device.IPAddress, device.UserAgent, time.Now().UTC())
	if err != nil {
		h.logger.Errorw("failed to create session", "error", err, "user_id", u.ID())
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	tokens, err := h.tokens.Generate(u.ID(), session.ID, u.Role())
	if err != nil {
		h.logger.Errorw("failed to generate tokens", "error", err, "user_id", u.ID())
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}
	session.Rotate(h.HashToken(tokens.RefreshToken), tokens.RefreshExpiresAt)

	if err := h.sessionRepo.Create(ctx, session); err != nil {
		h.logger.Errorw("failed to save session", "error", err, "user_id", u.ID())
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return &SessionWithTokens{Session: session, Tokens: tokens}, nil
}
