package user

import (
	"fmt"
	"time"
)

const ProviderGoogle = "google"

// OAuthAccount links an external identity to a user.
type OAuthAccount struct {
	ID             uint
	UserID         uint
	Provider       string
	ProviderUserID string
	ProviderEmail  string
	LastLoginAt    *time.Time
	LoginCount     uint
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func NewOAuthAccount(userID uint, provider, providerUserID, providerEmail string) (*OAuthAccount, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if provider == "" || providerUserID == "" {
		return nil, fmt.Errorf("provider and provider user ID are required")
	}

	now := time.Now().UTC()
	return &OAuthAccount{
		UserID:         userID,
		Provider:       provider,
		ProviderUserID: providerUserID,
		ProviderEmail:  providerEmail,
		LastLoginAt:    &now,
		LoginCount:     1,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

func (o *OAuthAccount) RecordLogin() {
	now := time.Now().UTC()
	o.LoginCount++
	o.LastLoginAt = &now
	o.UpdatedAt = now
}
