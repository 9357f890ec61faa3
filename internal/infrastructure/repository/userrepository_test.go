package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consultkit/consultkit/internal/domain/user"
	"github.com/consultkit/consultkit/internal/shared/authorization"
)

func createTestUser(t *testing.T, repo user.Repository, email string) *user.User {
	t.Helper()
	u, err := user.NewUser(email, "")
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t), testLogger())
	ctx := context.Background()

	u := createTestUser(t, repo, "Ada@Example.com")
	assert.NotZero(t, u.ID())

	byID, err := repo.GetByID(ctx, u.ID())
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "ada@example.com", byID.Email())
	assert.Equal(t, u.UUID(), byID.UUID())
	assert.Equal(t, authorization.RoleUser, byID.Role())
	assert.False(t, byID.HasPassword())

	byEmail, err := repo.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, u.ID(), byEmail.ID())

	missing, err := repo.GetByID(ctx, 9999)
	assert.NoError(t, err)
	assert.Nil(t, missing)

	exists, err := repo.ExistsByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t), testLogger())
	createTestUser(t, repo, "dup@example.com")

	again, err := user.NewUser("dup@example.com", "Other")
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Create(context.Background(), again), user.ErrEmailTaken)
}

func TestUserRepository_Update(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t), testLogger())
	ctx := context.Background()

	u := createTestUser(t, repo, "grace@example.com")
	u.SetPasswordHash("hash")
	require.NoError(t, u.SetRole(authorization.RoleAdmin))
	require.NoError(t, repo.Update(ctx, u))

	got, err := repo.GetByID(ctx, u.ID())
	require.NoError(t, err)
	assert.True(t, got.HasPassword())
	assert.True(t, got.IsAdmin())

	ghost, err := user.ReconstructUser(4242, "x", "ghost@example.com", "ghost", nil, "user", "active", time.Now(), time.Now())
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Update(ctx, ghost), user.ErrUserNotFound)
}

func TestUserRepository_List(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t), testLogger())
	ctx := context.Background()

	for _, email := range []string{"a@example.com", "b@example.com", "c@other.org"} {
		createTestUser(t, repo, email)
	}

	users, total, err := repo.List(ctx, user.ListFilter{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, users, 2)

	users, total, err = repo.List(ctx, user.ListFilter{Email: "example.com"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, users, 2)
}

func TestSessionRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSessionRepository(db, testLogger())
	ctx := context.Background()

	s, err := user.NewSession(7, "127.0.0.1", "test-agent", time.Now().Add(time.Hour).UTC())
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, s))

	s.Rotate("new-hash", time.Now().Add(2*time.Hour).UTC())
	require.NoError(t, repo.Update(ctx, s))

	got, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "new-hash", got.RefreshTokenHash)

	expired, err := user.NewSession(7, "", "", time.Now().Add(-time.Hour).UTC())
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, expired))

	n, err := repo.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, repo.Delete(ctx, s.ID))
	got, err = repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestOAuthAccountRepository(t *testing.T) {
	repo := NewOAuthAccountRepository(setupTestDB(t))
	ctx := context.Background()

	acc, err := user.NewOAuthAccount(3, user.ProviderGoogle, "g-123", "x@example.com")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, acc))
	assert.NotZero(t, acc.ID)

	acc.RecordLogin()
	require.NoError(t, repo.Update(ctx, acc))

	got, err := repo.GetByProviderAndUserID(ctx, user.ProviderGoogle, "g-123")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, uint(2), got.LoginCount)

	none, err := repo.GetByProviderAndUserID(ctx, user.ProviderGoogle, "nope")
	assert.NoError(t, err)
	assert.Nil(t, none)
}
