package usecases

import (
	"context"
	"fmt"

	"github.com/consultkit/consultkit/internal/application/user/helpers"
	"github.com/consultkit/consultkit/internal/domain/user"
	"github.com/consultkit/consultkit/internal/shared/errors"
	"github.com/consultkit/consultkit/internal/shared/logger"
)

type HandleOAuthCallbackCommand struct {
	Code      string
	State     string
	IPAddress string
	UserAgent string
}

// HandleOAuthCallbackUseCase completes Google sign-in. It signs in the linked
// account, links a verified email to an existing account, or registers a new one.
type HandleOAuthCallbackUseCase struct {
	userRepo    user.Repository
	oauthRepo   user.OAuthAccountRepository
	oauthClient OAuthClient
	stateStore  StateStore
	authHelper  *helpers.AuthHelper
	logger      logger.Interface
}

func NewHandleOAuthCallbackUseCase(
	userRepo user.Repository,
	oauthRepo user.OAuthAccountRepository,
	oauthClient OAuthClient,
	stateStore StateStore,
	authHelper *helpers.AuthHelper,
	logger logger.Interface,
) *HandleOAuthCallbackUseCase {
	return &HandleOAuthCallbackUseCase{
		userRepo:    userRepo,
		oauthRepo:   oauthRepo,
		oauthClient: oauthClient,
		stateStore:  stateStore,
		authHelper:  authHelper,
		logger:      logger,
	}
}

func (uc *HandleOAuthCallbackUseCase) Execute(ctx context.Context, cmd HandleOAuthCallbackCommand) (*AuthResult, error) {
	if uc.oauthClient == nil {
		return nil, errors.NewBadRequestError("Google sign-in is not configured")
	}
	if cmd.Code == "" || cmd.State == "" {
		return nil, errors.NewBadRequestError("Missing code or state")
	}

	verifier, err := uc.stateStore.VerifyAndGet(ctx, cmd.State)
	if err != nil {
		uc.logger.Warnw("invalid oauth state", "error", err)
		return nil, errors.NewBadRequestError("Invalid or expired state")
	}

	info, err := uc.oauthClient.Exchange(ctx, cmd.Code, verifier)
	if err != nil {
		uc.logger.Errorw("failed to exchange oauth code", "error", err)
		return nil, errors.NewOAuthError("google", "exchange")
	}

	u, isNew, err := uc.resolveUser(ctx, info)
	if err != nil {
		return nil, err
	}

	if err := uc.authHelper.ValidateUserCanLogin(u); err != nil {
		return nil, err
	}

	session, err := uc.authHelper.CreateSessionWithTokens(ctx, u, helpers.DeviceInfo{
		IPAddress: cmd.IPAddress,
		UserAgent: cmd.UserAgent,
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("oauth login successful", "user_id", u.ID(), "is_new_user", isNew)

	result := newAuthResult(u, session)
	result.IsNewUser = isNew
	return result, nil
}

func (uc *HandleOAuthCallbackUseCase) resolveUser(ctx context.Context, info *OAuthUserInfo) (*user.User, bool, error) {
	account, err := uc.oauthRepo.GetByProviderAndUserID(ctx, user.ProviderGoogle, info.ProviderID)
	if err != nil {
		uc.logger.Errorw("failed to get oauth account", "error", err)
		return nil, false, fmt.Errorf("failed to get oauth account: %w", err)
	}

	if account != nil {
		u, err := uc.userRepo.GetByID(ctx, account.UserID)
		if err != nil {
			uc.logger.Errorw("failed to get user", "error", err, "user_id", account.UserID)
			return nil, false, fmt.Errorf("failed to get user: %w", err)
		}
		if u == nil {
			return nil, false, errors.NewNotFoundError("User not found")
		}
		account.RecordLogin()
		if err := uc.oauthRepo.Update(ctx, account); err != nil {
			uc.logger.Warnw("failed to update oauth account", "error", err, "user_id", u.ID())
		}
		return u, false, nil
	}

	if !info.EmailVerified {
		return nil, false, errors.NewUnauthorizedError("Google account email is not verified")
	}

	email, err := user.NormalizeEmail(info.Email)
	if err != nil {
		return nil, false, errors.NewBadRequestError("Google account has no usable email")
	}

	u, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		uc.logger.Errorw("failed to get user by email", "error", err)
		return nil, false, fmt.Errorf("failed to get user: %w", err)
	}

	isNew := false
	if u == nil {
		u, err = user.NewUser(email, info.Name)
		if err != nil {
			return nil, false, errors.NewBadRequestError("Invalid Google profile", err.Error())
		}
		if err := uc.userRepo.Create(ctx, u); err != nil {
			uc.logger.Errorw("failed to create user", "error", err)
			return nil, false, fmt.Errorf("failed to create user: %w", err)
		}
		uc.authHelper.PromoteIfFirstUser(ctx, u)
		isNew = true
	}

	account, err = user.NewOAuthAccount(u.ID(), user.ProviderGoogle, info.ProviderID, email)
	if err != nil {
		return nil, false, fmt.Errorf("failed to link oauth account: %w", err)
	}
	if err := uc.oauthRepo.Create(ctx, account); err != nil {
		uc.logger.Errorw("failed to create oauth account", "error", err, "user_id", u.ID())
		return nil, false, fmt.Errorf("failed to link oauth account: %w", err)
	}

	return u, isNew, nil
}
