package usecases

import (
	"context"
	"fmt"

	"github.com/consultkit/consultkit/internal/application/user/helpers"
	"github.com/consultkit/consultkit/internal/domain/user"
	"github.com/consultkit/consultkit/internal/shared/errors"
	"github.com/consultkit/consultkit/internal/shared/logger"
)

type RefreshTokenCommand struct {
	RefreshToken string
}

// RefreshTokenUseCase rotates a session's refresh token. Presenting a
// refresh token that was already rotated revokes the session.
type RefreshTokenUseCase struct {
	userRepo    user.Repository
	sessionRepo user.SessionRepository
	jwtService  JWTService
	authHelper  *helpers.AuthHelper
	logger      logger.Interface
}

func NewRefreshTokenUseCase(
	userRepo user.Repository,
	sessionRepo user.SessionRepository,
	jwtService JWTService,
	authHelper *helpers.AuthHelper,
	logger logger.Interface,
) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		jwtService:  jwtService,
		authHelper:  authHelper,
		logger:      logger,
	}
}

func (uc *RefreshTokenUseCase) Execute(ctx context.Context, cmd RefreshTokenCommand) (*AuthResult, error) {
	if cmd.RefreshToken == "" {
		return nil, errors.NewTokenInvalidError("refresh token")
	}

	userID, sessionID, err := uc.jwtService.VerifyRefresh(cmd.RefreshToken)
	if err != nil {
		return nil, errors.NewTokenInvalidError("refresh token")
	}

	session, err := uc.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		uc.logger.Errorw("failed to get session", "error", err, "session_id", sessionID)
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil || session.UserID != userID {
		return nil, errors.NewTokenInvalidError("refresh token")
	}
	if session.IsExpired() {
		return nil, errors.NewTokenExpiredError("Session")
	}

	if session.RefreshTokenHash != uc.authHelper.HashToken(cmd.RefreshToken) {
		uc.logger.Warnw("refresh token reuse detected, revoking session", "user_id", userID, "session_id", sessionID)
		if err := uc.sessionRepo.Delete(ctx, sessionID); err != nil {
			uc.logger.Errorw("failed to revoke session", "error", err, "session_id", sessionID)
		}
		return nil, errors.NewTokenInvalidError("refresh token")
	}

	existingUser, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to get user", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if existingUser == nil {
		return nil, errors.NewTokenInvalidError("refresh token")
	}
	if err := uc.authHelper.ValidateUserCanLogin(existingUser); err != nil {
		return nil, err
	}

	tokens, err := uc.jwtService.Generate(existingUser.ID(), session.ID, existingUser.Role())
	if err != nil {
		uc.logger.Errorw("failed to generate tokens", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}
	session.Rotate(uc.authHelper.HashToken(tokens.RefreshToken), tokens.RefreshExpiresAt)

	if err := uc.sessionRepo.Update(ctx, session); err != nil {
		uc.logger.Errorw("failed to update session", "error", err, "session_id", sessionID)
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	uc.logger.Infow("token refreshed successfully", "user_id", userID, "session_id", sessionID)
	return newAuthResult(existingUser, &helpers.SessionWithTokens{Session: session, Tokens: tokens}), nil
}
