package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consultkit/consultkit/internal/application/user/usecases"
	"github.com/consultkit/consultkit/internal/domain/user"
	"github.com/consultkit/consultkit/internal/interfaces/http/handlers/testutil"
	"github.com/consultkit/consultkit/internal/shared/config"
	"github.com/consultkit/consultkit/internal/shared/errors"
	"github.com/consultkit/consultkit/internal/shared/logger"
)

// =====================================================================
// Mock use cases
// =====================================================================

type mockRegisterUC struct {
	result *usecases.AuthResult
	err    error
	got    usecases.RegisterWithPasswordCommand
}

func (m *mockRegisterUC) Execute(ctx context.Context, cmd usecases.RegisterWithPasswordCommand) (*usecases.AuthResult, error) {
	m.got = cmd
	return m.result, m.err
}

type mockLoginUC struct {
	result *usecases.AuthResult
	err    error
}

func (m *mockLoginUC) Execute(ctx context.Context, cmd usecases.LoginWithPasswordCommand) (*usecases.AuthResult, error) {
	return m.result, m.err
}

type mockRefreshUC struct {
	result *usecases.AuthResult
	err    error
	got    string
}

func (m *mockRefreshUC) Execute(ctx context.Context, cmd usecases.RefreshTokenCommand) (*usecases.AuthResult, error) {
	m.got = cmd.RefreshToken
	return m.result, m.err
}

type mockLogoutUC struct {
	sessionIDs []string
}

func (m *mockLogoutUC) Execute(ctx context.Context, cmd usecases.LogoutCommand) error {
	m.sessionIDs = append(m.sessionIDs, cmd.SessionID)
	return nil
}

type mockGetUserUC struct {
	result *user.User
	err    error
}

func (m *mockGetUserUC) Execute(ctx context.Context, userID uint) (*user.User, error) {
	return m.result, m.err
}

type mockInitiateOAuthUC struct {
	result *usecases.InitiateOAuthLoginResult
	err    error
}

func (m *mockInitiateOAuthUC) Execute(ctx context.Context) (*usecases.InitiateOAuthLoginResult, error) {
	return m.result, m.err
}

type mockHandleOAuthUC struct {
	result *usecases.AuthResult
	err    error
}

func (m *mockHandleOAuthUC) Execute(ctx context.Context, cmd usecases.HandleOAuthCallbackCommand) (*usecases.AuthResult, error) {
	return m.result, m.err
}

type authMocks struct {
	register *mockRegisterUC
	login    *mockLoginUC
	refresh  *mockRefreshUC
	logout   *mockLogoutUC
	getUser  *mockGetUserUC
	initiate *mockInitiateOAuthUC
	callback *mockHandleOAuthUC
}

func newTestAuthHandler() (*AuthHandler, *authMocks) {
	m := &authMocks{
		register: &mockRegisterUC{},
		login:    &mockLoginUC{},
		refresh:  &mockRefreshUC{},
		logout:   &mockLogoutUC{},
		getUser:  &mockGetUserUC{},
		initiate: &mockInitiateOAuthUC{},
		callback: &mockHandleOAuthUC{},
	}
	h := NewAuthHandler(
		m.register, m.login, m.refresh, m.logout, m.getUser, m.initiate, m.callback,
		config.CookieConfig{Path: "/", SameSite: "Lax"},
		config.JWTConfig{AccessExpMinutes: 15, RefreshExpDays: 7},
		"http://localhost:3000/auth/callback",
		logger.NewNopLogger(),
	)
	return h, m
}

func testUser(t *testing.T) *user.User {
	t.Helper()
	u, err := user.NewUser("ada@example.com", "Ada")
	require.NoError(t, err)
	require.NoError(t, u.SetID(1))
	return u
}

func testAuthResult(t *testing.T) *usecases.AuthResult {
	return &usecases.AuthResult{
		User:         testUser(t),
		SessionID:    "sess-1",
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		ExpiresIn:    900,
	}
}

func cookiesByName(w *httptest.ResponseRecorder) map[string]*http.Cookie {
	out := map[string]*http.Cookie{}
	for _, ck := range w.Result().Cookies() {
		out[ck.Name] = ck
	}
	return out
}

// =====================================================================
// Tests
// =====================================================================

func TestAuthHandler_Register(t *testing.T) {
	h, m := newTestAuthHandler()
	m.register.result = testAuthResult(t)

	c, w := testutil.NewTestContext(http.MethodPost, "/auth/register", map[string]any{
		"email": "ada@example.com", "password": "correct-horse", "name": "Ada",
	})
	h.Register(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "ada@example.com", m.register.got.Email)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var data AuthResponse
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, "access-token", data.AccessToken)
	assert.Equal(t, "Bearer", data.TokenType)
	assert.Equal(t, "ada@example.com", data.User.Email)

	cookies := cookiesByName(w)
	require.Contains(t, cookies, "access_token")
	assert.Equal(t, 15*60, cookies["access_token"].MaxAge)
	assert.Equal(t, 7*24*60*60, cookies["refresh_token"].MaxAge)
	assert.True(t, cookies["refresh_token"].HttpOnly)
}

func TestAuthHandler_RegisterValidation(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing email", map[string]any{"password": "correct-horse"}},
		{"bad email", map[string]any{"email": "nope", "password": "correct-horse"}},
		{"short password", map[string]any{"email": "ada@example.com", "password": "short"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestAuthHandler()
			c, w := testutil.NewTestContext(http.MethodPost, "/auth/register", tt.body)
			h.Register(c)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestAuthHandler_LoginInvalidCredentials(t *testing.T) {
	h, m := newTestAuthHandler()
	m.login.err = errors.NewInvalidCredentialsError()

	c, w := testutil.NewTestContext(http.MethodPost, "/auth/login", map[string]any{
		"email": "ada@example.com", "password": "wrong-password",
	})
	h.Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Result().Cookies())
}

func TestAuthHandler_RefreshPrefersCookie(t *testing.T) {
	h, m := newTestAuthHandler()
	m.refresh.result = testAuthResult(t)

	c, w := testutil.NewTestContext(http.MethodPost, "/auth/refresh", map[string]any{"refresh_token": "from-body"})
	c.Request.AddCookie(&http.Cookie{Name: "refresh_token", Value: "from-cookie"})
	h.RefreshToken(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "from-cookie", m.refresh.got)
}

func TestAuthHandler_RefreshFallsBackToBody(t *testing.T) {
	h, m := newTestAuthHandler()
	m.refresh.result = testAuthResult(t)

	c, w := testutil.NewTestContext(http.MethodPost, "/auth/refresh", map[string]any{"refresh_token": "from-body"})
	h.RefreshToken(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "from-body", m.refresh.got)
}

func TestAuthHandler_RefreshFailureClearsCookies(t *testing.T) {
	h, m := newTestAuthHandler()
	m.refresh.err = errors.NewTokenInvalidError("refresh token")

	c, w := testutil.NewTestContext(http.MethodPost, "/auth/refresh", nil)
	h.RefreshToken(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	cookies := cookiesByName(w)
	require.Contains(t, cookies, "refresh_token")
	assert.Negative(t, cookies["refresh_token"].MaxAge)
}

func TestAuthHandler_Logout(t *testing.T) {
	t.Run("revokes the attached session", func(t *testing.T) {
		h, m := newTestAuthHandler()
		c, w := testutil.NewTestContext(http.MethodPost, "/auth/logout", nil)
		testutil.SetAuthContext(c, 1)

		h.Logout(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"test-session-id"}, m.logout.sessionIDs)
		assert.Contains(t, cookiesByName(w), "access_token")
	})

	t.Run("anonymous only clears cookies", func(t *testing.T) {
		h, m := newTestAuthHandler()
		c, w := testutil.NewTestContext(http.MethodPost, "/auth/logout", nil)

		h.Logout(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, m.logout.sessionIDs)
		assert.Contains(t, cookiesByName(w), "refresh_token")
	})
}

func TestAuthHandler_GetCurrentUser(t *testing.T) {
	h, m := newTestAuthHandler()
	m.getUser.result = testUser(t)

	c, w := testutil.NewTestContext(http.MethodGet, "/auth/me", nil)
	h.GetCurrentUser(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	c, w = testutil.NewTestContext(http.MethodGet, "/auth/me", nil)
	testutil.SetAuthContext(c, 1)
	h.GetCurrentUser(c)
	require.Equal(t, http.StatusOK, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var data UserResponse
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, uint(1), data.ID)
	assert.Equal(t, "user", data.Role)
}

func TestAuthHandler_InitiateGoogleOAuth(t *testing.T) {
	h, m := newTestAuthHandler()
	m.initiate.result = &usecases.InitiateOAuthLoginResult{AuthURL: "https://accounts.google.com/o/oauth2/auth?state=abc", State: "abc"}

	c, w := testutil.NewTestContext(http.MethodGet, "/auth/oauth/google", nil)
	h.InitiateGoogleOAuth(c)

	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, m.initiate.result.AuthURL, w.Header().Get("Location"))
}

func TestAuthHandler_InitiateGoogleOAuthDisabled(t *testing.T) {
	h, m := newTestAuthHandler()
	m.initiate.err = errors.NewBadRequestError("Google sign-in is not configured")

	c, w := testutil.NewTestContext(http.MethodGet, "/auth/oauth/google", nil)
	h.InitiateGoogleOAuth(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_GoogleCallback(t *testing.T) {
	t.Run("success sets cookies and redirects", func(t *testing.T) {
		h, m := newTestAuthHandler()
		result := testAuthResult(t)
		result.IsNewUser = true
		m.callback.result = result

		c, w := testutil.NewTestContext(http.MethodGet, "/auth/oauth/google/callback?code=c&state=s", nil)
		h.HandleGoogleCallback(c)

		require.Equal(t, http.StatusFound, w.Code)
		loc, err := url.Parse(w.Header().Get("Location"))
		require.NoError(t, err)
		assert.Equal(t, "/auth/callback", loc.Path)
		assert.Equal(t, "success", loc.Query().Get("status"))
		assert.Equal(t, "true", loc.Query().Get("new_user"))
		assert.Contains(t, cookiesByName(w), "access_token")
	})

	t.Run("failure redirects with error code", func(t *testing.T) {
		h, m := newTestAuthHandler()
		m.callback.err = errors.NewOAuthError("google", "exchange")

		c, w := testutil.NewTestContext(http.MethodGet, "/auth/oauth/google/callback?code=c&state=s", nil)
		h.HandleGoogleCallback(c)

		require.Equal(t, http.StatusFound, w.Code)
		loc, err := url.Parse(w.Header().Get("Location"))
		require.NoError(t, err)
		assert.NotEmpty(t, loc.Query().Get("error"))
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("provider denial", func(t *testing.T) {
		h, _ := newTestAuthHandler()

		c, w := testutil.NewTestContext(http.MethodGet, "/auth/oauth/google/callback?error=access_denied", nil)
		h.HandleGoogleCallback(c)

		require.Equal(t, http.StatusFound, w.Code)
		assert.Contains(t, w.Header().Get("Location"), "error=access_denied")
	})
}
