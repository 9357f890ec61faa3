package http

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	usageUsecases "github.com/consultkit/consultkit/internal/application/usage/usecases"
	"github.com/consultkit/consultkit/internal/application/user/usecases"
	"github.com/consultkit/consultkit/internal/domain/tool"
	"github.com/consultkit/consultkit/internal/infrastructure/auth"
	"github.com/consultkit/consultkit/internal/infrastructure/config"
	"github.com/consultkit/consultkit/internal/infrastructure/permission"
	"github.com/consultkit/consultkit/internal/infrastructure/scheduler"
	"github.com/consultkit/consultkit/internal/interfaces/http/middleware"
	"github.com/consultkit/consultkit/internal/shared/logger"
	"github.com/consultkit/consultkit/internal/shared/services/markdown"
)

// Container holds every dependency the HTTP server needs. Construction is
// split into services, use cases and handlers; see the wire_*.go files.
type Container struct {
	engine *gin.Engine
	db     *gorm.DB
	redis  *redis.Client
	cfg    *config.Config
	log    logger.Interface

	// Services
	jwtSvc       *auth.JWTService
	jwtService   usecases.JWTService
	hasher       usecases.PasswordHasher
	stateStore   usecases.StateStore
	googleClient usecases.OAuthClient
	completer    tool.Completer
	catalog      tool.Catalog
	enforcer     *permission.Enforcer
	mailer       usageUsecases.QuotaMailer
	markdown     markdown.Service

	// Middleware
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	authRateLimiter      *middleware.RateLimiter
	toolRateLimiter      *middleware.RateLimiter

	scheduler *scheduler.SchedulerManager

	repos *repositories
	ucs   *allUseCases
	hdlrs *allHandlers
}

// NewContainer wires the application. The database must already be migrated.
func NewContainer(ctx context.Context, db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) (*Container, error) {
	if cfg.Server.Mode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	c := &Container{
		engine: gin.New(),
		db:     db,
		redis:  redisClient,
		cfg:    cfg,
		log:    log,
	}

	c.repos = newRepositories(db, log)
	if err := c.initServices(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}
	c.initUseCases()
	c.initHandlers()
	c.SetupRoutes()
	if err := c.initScheduler(); err != nil {
		return nil, err
	}

	return c, nil
}

// Engine returns the configured gin engine.
func (c *Container) Engine() *gin.Engine {
	return c.engine
}

// Shutdown releases resources held by the container.
func (c *Container) Shutdown() {
	if c.scheduler != nil {
		if err := c.scheduler.Stop(); err != nil {
			c.log.Warnw("failed to stop scheduler", "error", err)
		}
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close redis client", "error", err)
		}
	}
}
