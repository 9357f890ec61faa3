package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/consultkit/consultkit/internal/infrastructure/auth"
	"github.com/consultkit/consultkit/internal/shared/constants"
	"github.com/consultkit/consultkit/internal/shared/logger"
	"github.com/consultkit/consultkit/internal/shared/utils"
)

// TokenVerifier checks a signed token of the expected type.
type TokenVerifier interface {
	Verify(token string, expected auth.TokenType) (*auth.Claims, error)
}

type AuthMiddleware struct {
	jwtService TokenVerifier
	logger     logger.Interface
}

func NewAuthMiddleware(jwtService TokenVerifier, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		logger:     logger,
	}
}

// RequireAuth rejects requests without a valid access token.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := accessToken(c)
		if !ok {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		claims, err := m.jwtService.Verify(token, auth.TokenTypeAccess)
		if err != nil {
			m.logger.Debugw("failed to verify token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}

// OptionalAuth attaches the caller's identity when a valid token is present
// and otherwise lets the request through anonymously.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := accessToken(c); ok {
			if claims, err := m.jwtService.Verify(token, auth.TokenTypeAccess); err == nil {
				setIdentity(c, claims)
			}
		}
		c.Next()
	}
}

// accessToken reads the access_token cookie, then the Bearer header.
func accessToken(c *gin.Context) (string, bool) {
	if token := utils.GetTokenFromCookie(c, utils.AccessTokenCookie); token != "" {
		return token, true
	}

	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func setIdentity(c *gin.Context, claims *auth.Claims) {
	c.Set(constants.ContextKeyUserID, claims.UserID)
	c.Set(constants.ContextKeySessionID, claims.SessionID)
	c.Set(constants.ContextKeyUserRole, string(claims.Role))
}

// CurrentUserID returns the authenticated user, if any.
func CurrentUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(constants.ContextKeyUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}
