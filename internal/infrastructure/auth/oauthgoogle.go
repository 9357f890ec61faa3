package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/consultkit/consultkit/internal/shared/config"
)

const (
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
	httpClientTimeout = 30 * time.Second
)

type OAuthUserInfo struct {
	Email         string
	Name          string
	EmailVerified bool
	Provider      string
	ProviderID    string
}

type GoogleOAuthClient struct {
	config *oauth2.Config
}

func NewGoogleOAuthClient(cfg config.GoogleOAuthConfig) *GoogleOAuthClient {
	return &GoogleOAuthClient{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
	}
}

// AuthURL returns the consent URL and the PKCE verifier that must be
// presented again in Exchange.
func (c *GoogleOAuthClient) AuthURL(state string) (authURL, codeVerifier string) {
	codeVerifier = oauth2.GenerateVerifier()
	authURL = c.config.AuthCodeURL(state, oauth2.S256ChallengeOption(codeVerifier))
	return authURL, codeVerifier
}

// Exchange trades the authorization code for a token and fetches the profile.
func (c *GoogleOAuthClient) Exchange(ctx context.Context, code, codeVerifier string) (*OAuthUserInfo, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Timeout: httpClientTimeout})

	token, err := c.config.Exchange(ctx, code, oauth2.VerifierOption(codeVerifier))
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, googleUserInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.config.Client(ctx, token).Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get user info: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to get user info: status %d, body: %s", resp.StatusCode, string(body))
	}

	var info struct {
		ID            string `json:"id"`
		Email         string `json:"email"`
		VerifiedEmail bool   `json:"verified_email"`
		Name          string `json:"name"`
	}
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user info: %w", err)
	}

	return &OAuthUserInfo{
		Email:         info.Email,
		Name:          info.Name,
		EmailVerified: info.VerifiedEmail,
		Provider:      "google",
		ProviderID:    info.ID,
	}, nil
}
