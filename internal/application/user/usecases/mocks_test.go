package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/consultkit/consultkit/internal/application/user/helpers"
	"github.com/consultkit/consultkit/internal/domain/user"
	"github.com/consultkit/consultkit/internal/shared/authorization"
	"github.com/consultkit/consultkit/internal/shared/logger"
)

// memUserRepository is a small in-memory user store.
type memUserRepository struct {
	mu     sync.Mutex
	users  map[uint]*user.User
	nextID uint

	CreateErr error
}

func newMemUserRepository() *memUserRepository {
	return &memUserRepository{users: make(map[uint]*user.User), nextID: 1}
}

func (r *memUserRepository) Create(ctx context.Context, u *user.User) error {
	if r.CreateErr != nil {
		return r.CreateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email() == u.Email() {
			return user.ErrEmailTaken
		}
	}
	if err := u.SetID(r.nextID); err != nil {
		return err
	}
	r.users[r.nextID] = u
	r.nextID++
	return nil
}

func (r *memUserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users[id], nil
}

func (r *memUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email() == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepository) Update(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID()] = u
	return nil
}

func (r *memUserRepository) List(ctx context.Context, filter user.ListFilter) ([]*user.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*user.User
	for id := uint(1); id < r.nextID; id++ {
		u, ok := r.users[id]
		if !ok {
			continue
		}
		if filter.Email != "" && !strings.Contains(u.Email(), filter.Email) {
			continue
		}
		if filter.Role != "" && string(u.Role()) != filter.Role {
			continue
		}
		out = append(out, u)
	}
	return out, int64(len(out)), nil
}

func (r *memUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	u, _ := r.GetByEmail(ctx, email)
	return u != nil, nil
}

type memSessionRepository struct {
	mu       sync.Mutex
	sessions map[string]*user.Session
}

func newMemSessionRepository() *memSessionRepository {
	return &memSessionRepository{sessions: make(map[string]*user.Session)}
}

func (r *memSessionRepository) Create(ctx context.Context, s *user.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.sessions[s.ID] = &cp
	return nil
}

func (r *memSessionRepository) GetByID(ctx context.Context, id string) (*user.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *memSessionRepository) Update(ctx context.Context, s *user.Session) error {
	return r.Create(ctx, s)
}

func (r *memSessionRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

func (r *memSessionRepository) DeleteExpired(ctx context.Context) (int64, error) { return 0, nil }

func (r *memSessionRepository) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

type mockOAuthAccountRepository struct {
	accounts []*user.OAuthAccount
}

func (m *mockOAuthAccountRepository) Create(ctx context.Context, a *user.OAuthAccount) error {
	a.ID = uint(len(m.accounts) + 1)
	m.accounts = append(m.accounts, a)
	return nil
}

func (m *mockOAuthAccountRepository) GetByProviderAndUserID(ctx context.Context, provider, providerUserID string) (*user.OAuthAccount, error) {
	for _, a := range m.accounts {
		if a.Provider == provider && a.ProviderUserID == providerUserID {
			return a, nil
		}
	}
	return nil, nil
}

func (m *mockOAuthAccountRepository) Update(ctx context.Context, a *user.OAuthAccount) error {
	return nil
}

// plainHasher stores passwords with a visible prefix.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) Verify(password, hash string) error {
	if hash != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

// fakeJWT issues predictable tokens: "<kind>-<user>-<session>-<n>".
type fakeJWT struct {
	mu sync.Mutex
	n  int
}

func (f *fakeJWT) Generate(userID uint, sessionID string, role authorization.UserRole) (*helpers.TokenPair, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.n++
	return &helpers.TokenPair{
		AccessToken:      fmt.Sprintf("access|%d|%s|%d", userID, sessionID, f.n),
		RefreshToken:     fmt.Sprintf("refresh|%d|%s|%d", userID, sessionID, f.n),
		ExpiresIn:        900,
		RefreshExpiresAt: time.Now().Add(time.Hour),
	}, nil
}

func (f *fakeJWT) VerifyRefresh(token string) (uint, string, error) {
	parts := strings.Split(token, "|")
	if len(parts) != 4 || parts[0] != "refresh" {
		return 0, "", errors.New("invalid token")
	}
	var id uint
	if _, err := fmt.Sscanf(parts[1], "%d", &id); err != nil {
		return 0, "", err
	}
	return id, parts[2], nil
}

type memStateStore struct {
	states map[string]string
}

func newMemStateStore() *memStateStore {
	return &memStateStore{states: make(map[string]string)}
}

func (s *memStateStore) Set(ctx context.Context, state, verifier string) error {
	s.states[state] = verifier
	return nil
}

func (s *memStateStore) VerifyAndGet(ctx context.Context, state string) (string, error) {
	v, ok := s.states[state]
	if !ok {
		return "", errors.New("state not found")
	}
	delete(s.states, state)
	return v, nil
}

type mockOAuthClient struct {
	info        *OAuthUserInfo
	err         error
	gotVerifier string
}

func (m *mockOAuthClient) AuthURL(state string) (string, string) {
	return "https://accounts.example.com/auth?state=" + state, "verifier-" + state
}

func (m *mockOAuthClient) Exchange(ctx context.Context, code, verifier string) (*OAuthUserInfo, error) {
	m.gotVerifier = verifier
	return m.info, m.err
}

func testLogger() logger.Interface {
	return logger.NewNopLogger()
}

type fixture struct {
	users    *memUserRepository
	sessions *memSessionRepository
	jwt      *fakeJWT
	helper   *helpers.AuthHelper
}

func newFixture() *fixture {
	f := &fixture{
		users:    newMemUserRepository(),
		sessions: newMemSessionRepository(),
		jwt:      &fakeJWT{},
	}
	f.helper = helpers.NewAuthHelper(f.users, f.sessions, f.jwt, testLogger())
	return f
}

func (f *fixture) register(email, password string) *AuthResult {
	uc := NewRegisterWithPasswordUseCase(f.users, plainHasher{}, f.helper, testLogger())
	res, err := uc.Execute(context.Background(), RegisterWithPasswordCommand{Email: email, Password: password})
	if err != nil {
		panic(err)
	}
	return res
}
