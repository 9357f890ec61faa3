package auth

import "github.com/consultkit/consultkit/internal/shared/config"

func googleTestConfig() config.GoogleOAuthConfig {
	return config.GoogleOAuthConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURL:  "http://localhost:8080/auth/oauth/google/callback",
	}
}
