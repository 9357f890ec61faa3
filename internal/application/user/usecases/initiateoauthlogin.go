package usecases

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/consultkit/consultkit/internal/shared/errors"
	"github.com/consultkit/consultkit/internal/shared/logger"
)

type InitiateOAuthLoginResult struct {
	AuthURL string
	State   string
}

type InitiateOAuthLoginUseCase struct {
	oauthClient OAuthClient
	stateStore  StateStore
	logger      logger.Interface
}

// NewInitiateOAuthLoginUseCase accepts a nil client when Google sign-in is not configured.
func NewInitiateOAuthLoginUseCase(oauthClient OAuthClient, stateStore StateStore, logger logger.Interface) *InitiateOAuthLoginUseCase {
	return &InitiateOAuthLoginUseCase{
		oauthClient: oauthClient,
		stateStore:  stateStore,
		logger:      logger,
	}
}

func (uc *InitiateOAuthLoginUseCase) Execute(ctx context.Context) (*InitiateOAuthLoginResult, error) {
	if uc.oauthClient == nil {
		return nil, errors.NewBadRequestError("Google sign-in is not configured")
	}

	state, err := generateState()
	if err != nil {
		uc.logger.Errorw("failed to generate oauth state", "error", err)
		return nil, fmt.Errorf("failed to generate state: %w", err)
	}

	authURL, verifier := uc.oauthClient.AuthURL(state)
	if err := uc.stateStore.Set(ctx, state, verifier); err != nil {
		uc.logger.Errorw("failed to store oauth state", "error", err)
		return nil, fmt.Errorf("failed to store state: %w", err)
	}

	return &InitiateOAuthLoginResult{AuthURL: authURL, State: state}, nil
}

func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
