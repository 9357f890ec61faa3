package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consultkit/consultkit/internal/infrastructure/auth"
	"github.com/consultkit/consultkit/internal/infrastructure/ratelimit"
	"github.com/consultkit/consultkit/internal/shared/authorization"
	"github.com/consultkit/consultkit/internal/shared/constants"
	"github.com/consultkit/consultkit/internal/shared/id"
	"github.com/consultkit/consultkit/internal/shared/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		id, _ := CurrentUserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": id, "role": c.GetString(constants.ContextKeyUserRole)})
	})
	r.GET("/", handlers...)
	return r
}

func TestAuthMiddleware(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", 15, 7)
	tokens, err := jwtService.Generate(7, "sess-1", authorization.RoleAdmin)
	require.NoError(t, err)
	m := NewAuthMiddleware(jwtService, logger.NewNopLogger())

	tests := []struct {
		name       string
		setup      func(r *http.Request)
		required   int
		optional   int
		wantUserID bool
	}{
		{name: "no token", setup: func(r *http.Request) {}, required: http.StatusUnauthorized, optional: http.StatusOK},
		{
			name:       "bearer token",
			setup:      func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+tokens.AccessToken) },
			required:   http.StatusOK,
			optional:   http.StatusOK,
			wantUserID: true,
		},
		{
			name:       "cookie token",
			setup:      func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "access_token", Value: tokens.AccessToken}) },
			required:   http.StatusOK,
			optional:   http.StatusOK,
			wantUserID: true,
		},
		{
			name:     "refresh token is not an access token",
			setup:    func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+tokens.RefreshToken) },
			required: http.StatusUnauthorized,
			optional: http.StatusOK,
		},
		{
			name:     "malformed header",
			setup:    func(r *http.Request) { r.Header.Set("Authorization", "Token abc") },
			required: http.StatusUnauthorized,
			optional: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, mode := range []struct {
				handler gin.HandlerFunc
				want    int
			}{{m.RequireAuth(), tt.required}, {m.OptionalAuth(), tt.optional}} {
				req := httptest.NewRequest(http.MethodGet, "/", nil)
				tt.setup(req)
				w := httptest.NewRecorder()
				newTestRouter(mode.handler).ServeHTTP(w, req)

				assert.Equal(t, mode.want, w.Code)
				if mode.want == http.StatusOK && tt.wantUserID {
					assert.Contains(t, w.Body.String(), `"user_id":7`)
					assert.Contains(t, w.Body.String(), `"role":"admin"`)
				}
			}
		})
	}
}

type stubEnforcer struct {
	allowed bool
	err     error
	gotRole string
}

func (s *stubEnforcer) Enforce(role, resource, action string) (bool, error) {
	s.gotRole = role
	return s.allowed, s.err
}

func withIdentity(userID uint, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID != 0 {
			c.Set(constants.ContextKeyUserID, userID)
			c.Set(constants.ContextKeyUserRole, role)
		}
		c.Next()
	}
}

func TestRequirePermission(t *testing.T) {
	tests := []struct {
		name     string
		userID   uint
		enforcer *stubEnforcer
		want     int
	}{
		{name: "anonymous", enforcer: &stubEnforcer{allowed: true}, want: http.StatusUnauthorized},
		{name: "allowed", userID: 1, enforcer: &stubEnforcer{allowed: true}, want: http.StatusOK},
		{name: "denied", userID: 1, enforcer: &stubEnforcer{}, want: http.StatusForbidden},
		{name: "enforcer error", userID: 1, enforcer: &stubEnforcer{err: errors.New("boom")}, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewPermissionMiddleware(tt.enforcer, logger.NewNopLogger())
			w := httptest.NewRecorder()
			newTestRouter(withIdentity(tt.userID, "admin"), m.RequirePermission("plans", "write")).
				ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, tt.want, w.Code)
		})
	}

	enforcer := &stubEnforcer{allowed: true}
	m := NewPermissionMiddleware(enforcer, logger.NewNopLogger())
	newTestRouter(withIdentity(2, "bogus"), m.RequirePermission("plans", "read")).
		ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "user", enforcer.gotRole)
}

type countingLimiter struct {
	hits  map[string]int
	err   error
	limit int
}

func (l *countingLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (ratelimit.Result, error) {
	if l.err != nil {
		return ratelimit.Result{}, l.err
	}
	l.hits[key]++
	remaining := limit - l.hits[key]
	if remaining < 0 {
		return ratelimit.Result{Allowed: false, RetryAfter: 1500 * time.Millisecond}, nil
	}
	return ratelimit.Result{Allowed: true, Remaining: remaining}, nil
}

func TestRateLimiter(t *testing.T) {
	limiter := &countingLimiter{hits: map[string]int{}}
	rl := NewRateLimiter(limiter, "auth", 2, time.Minute, logger.NewNopLogger())
	router := newTestRouter(rl.Limit())

	var codes []int
	var last *httptest.ResponseRecorder
	for range 3 {
		last = httptest.NewRecorder()
		router.ServeHTTP(last, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, last.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	assert.Equal(t, "2", last.Header().Get("Retry-After"))
	assert.Contains(t, last.Body.String(), `"success":false`)
}

func TestRateLimiter_FailsOpen(t *testing.T) {
	limiter := &countingLimiter{err: errors.New("redis down")}
	rl := NewRateLimiter(limiter, "auth", 1, time.Minute, logger.NewNopLogger())
	router := newTestRouter(rl.Limit())

	for range 3 {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimiter_AnonymousOnly(t *testing.T) {
	limiter := &countingLimiter{hits: map[string]int{}}
	rl := NewRateLimiter(limiter, "tools", 1, time.Minute, logger.NewNopLogger())

	signedIn := newTestRouter(withIdentity(5, "user"), rl.LimitAnonymous())
	for range 3 {
		w := httptest.NewRecorder()
		signedIn.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
	assert.Empty(t, limiter.hits)

	anon := newTestRouter(rl.LimitAnonymous())
	w := httptest.NewRecorder()
	anon.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	w = httptest.NewRecorder()
	anon.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestRequestID(t *testing.T) {
	router := newTestRouter(RequestID())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	router.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NoError(t, id.ValidatePrefix(w.Header().Get("X-Request-ID"), id.PrefixRequest))
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(logger.NewNopLogger()))
	r.GET("/", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Internal server error occurred"}`, w.Body.String())
}
