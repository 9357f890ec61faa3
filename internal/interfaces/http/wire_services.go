package http

import (
	"context"
	"fmt"
	"time"

	"github.com/consultkit/consultkit/internal/application/user/usecases"
	"github.com/consultkit/consultkit/internal/infrastructure/auth"
	"github.com/consultkit/consultkit/internal/infrastructure/cache"
	"github.com/consultkit/consultkit/internal/infrastructure/catalog"
	"github.com/consultkit/consultkit/internal/infrastructure/completion"
	"github.com/consultkit/consultkit/internal/infrastructure/email"
	"github.com/consultkit/consultkit/internal/infrastructure/permission"
	"github.com/consultkit/consultkit/internal/infrastructure/ratelimit"
	"github.com/consultkit/consultkit/internal/interfaces/http/middleware"
	"github.com/consultkit/consultkit/internal/shared/services/markdown"
)

const (
	oauthStatePrefix = "oauth:state:"
	rateLimitWindow  = time.Minute
)

// initServices builds the infrastructure services every use case depends on.
func (c *Container) initServices(ctx context.Context) error {
	cfg := c.cfg
	log := c.log

	c.jwtSvc = auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes, cfg.Auth.JWT.RefreshExpDays)
	c.jwtService = &jwtServiceAdapter{c.jwtSvc}
	c.hasher = auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)

	stateTTL := time.Duration(cfg.Auth.OAuth.StateTTLMinutes) * time.Minute
	c.stateStore = &stateStoreAdapter{store: cache.NewRedisStateStore(c.redis, oauthStatePrefix, stateTTL)}

	// googleClient stays a nil interface when sign-in with Google is off.
	if cfg.Auth.OAuth.Google.Enabled() {
		c.googleClient = &googleOAuthAdapter{client: auth.NewGoogleOAuthClient(cfg.Auth.OAuth.Google)}
		log.Infow("google sign-in enabled")
	}

	registry, err := catalog.NewLoader(cfg.Tools.CatalogPath, catalog.Defaults{
		Temperature: cfg.Tools.DefaultTemperature,
		MaxTokens:   cfg.Tools.DefaultMaxTokens,
	}, log).Load()
	if err != nil {
		return fmt.Errorf("failed to load tool catalog: %w", err)
	}
	c.catalog = registry
	log.Infow("tool catalog loaded", "tools", registry.Len())

	c.completer, err = completion.NewClient(ctx, cfg.Completion, log)
	if err != nil {
		return fmt.Errorf("failed to create completion client: %w", err)
	}

	c.enforcer, err = permission.NewEnforcer(c.db, log)
	if err != nil {
		return fmt.Errorf("failed to create permission enforcer: %w", err)
	}
	if err := c.enforcer.SeedDefaultPolicies(); err != nil {
		return fmt.Errorf("failed to seed permission policies: %w", err)
	}

	if cfg.Email.Enabled() {
		c.mailer = &quotaMailerAdapter{sender: email.NewSMTPEmailService(cfg.Email, cfg.Server.BaseURL)}
	} else {
		log.Infow("smtp not configured, quota emails disabled")
		c.mailer = &quotaMailerAdapter{sender: email.NoopEmailService{}}
	}

	c.markdown = markdown.NewService()

	limiter := ratelimit.NewRedisRateLimiter(c.redis)
	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, log)
	c.permissionMiddleware = middleware.NewPermissionMiddleware(c.enforcer, log)
	c.authRateLimiter = middleware.NewRateLimiter(limiter, "auth", cfg.RateLimit.AuthRequestsPerMinute, rateLimitWindow, log)
	c.toolRateLimiter = middleware.NewRateLimiter(limiter, "tool-run", cfg.RateLimit.PublicToolRunsPerMinute, rateLimitWindow, log)

	return nil
}

var (
	_ usecases.OAuthClient = (*googleOAuthAdapter)(nil)
	_ usecases.JWTService  = (*jwtServiceAdapter)(nil)
	_ usecases.StateStore  = (*stateStoreAdapter)(nil)
)
