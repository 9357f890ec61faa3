package usecases

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/consultkit/consultkit/internal/application/user/helpers"
	"github.com/consultkit/consultkit/internal/domain/user"
	"github.com/consultkit/consultkit/internal/shared/errors"
	"github.com/consultkit/consultkit/internal/shared/logger"
)

const MinPasswordLength = 8

type RegisterWithPasswordCommand struct {
	Email     string
	Password  string
	Name      string
	IPAddress string
	UserAgent string
}

type RegisterWithPasswordUseCase struct {
	userRepo       user.Repository
	passwordHasher PasswordHasher
	authHelper     *helpers.AuthHelper
	logger         logger.Interface
}

func NewRegisterWithPasswordUseCase(
	userRepo user.Repository,
	hasher PasswordHasher,
	authHelper *helpers.AuthHelper,
	logger logger.Interface,
) *RegisterWithPasswordUseCase {
	return &RegisterWithPasswordUseCase{
		userRepo:       userRepo,
		passwordHasher: hasher,
		authHelper:     authHelper,
		logger:         logger,
	}
}

// Execute creates the account and signs it in.
func (uc *RegisterWithPasswordUseCase) Execute(ctx context.Context, cmd RegisterWithPasswordCommand) (*AuthResult, error) {
	if len(cmd.Password) < MinPasswordLength {
		return nil, errors.NewValidationError(fmt.Sprintf("Password must be at least %d characters", MinPasswordLength))
	}

	newUser, err := user.NewUser(cmd.Email, cmd.Name)
	if err != nil {
		return nil, errors.NewValidationError("Invalid registration data", err.Error())
	}

	exists, err := uc.userRepo.ExistsByEmail(ctx, newUser.Email())
	if err != nil {
		uc.logger.Errorw("failed to check email existence", "error", err)
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, errors.NewConflictError("Email already registered")
	}

	hash, err := uc.passwordHasher.Hash(cmd.Password)
	if err != nil {
		uc.logger.Errorw("failed to hash password", "error", err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	newUser.SetPasswordHash(hash)

	if err := uc.userRepo.Create(ctx, newUser); err != nil {
		if stderrors.Is(err, user.ErrEmailTaken) {
			return nil, errors.NewConflictError("Email already registered")
		}
		uc.logger.Errorw("failed to create user", "error", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	uc.authHelper.PromoteIfFirstUser(ctx, newUser)

	session, err := uc.authHelper.CreateSessionWithTokens(ctx, newUser, helpers.DeviceInfo{
		IPAddress: cmd.IPAddress,
		UserAgent: cmd.UserAgent,
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("user registered", "user_id", newUser.ID())

	result := newAuthResult(newUser, session)
	result.IsNewUser = true
	return result, nil
}
