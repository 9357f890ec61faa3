package usecases

import (
	"context"
	"fmt"

	"github.com/consultkit/consultkit/internal/application/user/helpers"
	"github.com/consultkit/consultkit/internal/domain/user"
	"github.com/consultkit/consultkit/internal/shared/errors"
	"github.com/consultkit/consultkit/internal/shared/logger"
)

type LoginWithPasswordCommand struct {
	Email     string
	Password  string
	IPAddress string
	UserAgent string
}

type LoginWithPasswordUseCase struct {
	userRepo       user.Repository
	passwordHasher PasswordHasher
	authHelper     *helpers.AuthHelper
	logger         logger.Interface
}

func NewLoginWithPasswordUseCase(
	userRepo user.Repository,
	hasher PasswordHasher,
	authHelper *helpers.AuthHelper,
	logger logger.Interface,
) *LoginWithPasswordUseCase {
	return &LoginWithPasswordUseCase{
		userRepo:       userRepo,
		passwordHasher: hasher,
		authHelper:     authHelper,
		logger:         logger,
	}
}

func (uc *LoginWithPasswordUseCase) Execute(ctx context.Context, cmd LoginWithPasswordCommand) (*AuthResult, error) {
	email, err := user.NormalizeEmail(cmd.Email)
	if err != nil {
		return nil, errors.NewInvalidCredentialsError()
	}

	existingUser, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		uc.logger.Errorw("failed to get user by email", "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	// Same answer for unknown emails and OAuth-only accounts.
	if existingUser == nil || !existingUser.HasPassword() {
		return nil, errors.NewInvalidCredentialsError()
	}

	if err := uc.passwordHasher.Verify(cmd.Password, *existingUser.PasswordHash()); err != nil {
		uc.logger.Warnw("failed login attempt", "user_id", existingUser.ID())
		return nil, errors.NewInvalidCredentialsError()
	}

	if err := uc.authHelper.ValidateUserCanLogin(existingUser); err != nil {
		return nil, err
	}

	session, err := uc.authHelper.CreateSessionWithTokens(ctx, existingUser, helpers.DeviceInfo{
		IPAddress: cmd.IPAddress,
		UserAgent: cmd.UserAgent,
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("user logged in successfully", "user_id", existingUser.ID(), "session_id", session.Session.ID)
	return newAuthResult(existingUser, session), nil
}
