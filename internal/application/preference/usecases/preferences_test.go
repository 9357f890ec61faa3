package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consultkit/consultkit/internal/domain/preference"
	"github.com/consultkit/consultkit/internal/shared/errors"
	"github.com/consultkit/consultkit/internal/shared/logger"
)

type memPreferenceRepository struct {
	stored map[uint]*preference.Preferences
	saves  int
}

func (m *memPreferenceRepository) Get(ctx context.Context, userID uint) (*preference.Preferences, error) {
	p, ok := m.stored[userID]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *memPreferenceRepository) Save(ctx context.Context, p *preference.Preferences) error {
	m.saves++
	cp := *p
	m.stored[p.UserID] = &cp
	return nil
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestGetPreferences_Defaults(t *testing.T) {
	repo := &memPreferenceRepository{stored: map[uint]*preference.Preferences{}}
	got, err := NewGetPreferencesUseCase(repo, logger.NewNopLogger()).Execute(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, preference.Defaults(3), got)
	assert.Zero(t, repo.saves)
}

func TestUpdatePreferences_Partial(t *testing.T) {
	ctx := context.Background()
	repo := &memPreferenceRepository{stored: map[uint]*preference.Preferences{}}
	uc := NewUpdatePreferencesUseCase(repo, logger.NewNopLogger())

	_, err := uc.Execute(ctx, UpdatePreferencesCommand{UserID: 3, Update: preference.Update{
		Theme:    strPtr("dark"),
		Settings: map[string]any{"compact": true},
	}})
	require.NoError(t, err)

	got, err := uc.Execute(ctx, UpdatePreferencesCommand{UserID: 3, Update: preference.Update{
		EmailNotifications: boolPtr(false),
	}})
	require.NoError(t, err)
	assert.Equal(t, preference.ThemeDark, got.Theme)
	assert.Equal(t, "en", got.Language)
	assert.False(t, got.EmailNotifications)
	assert.Equal(t, map[string]any{"compact": true}, got.Settings)
	assert.Equal(t, 2, repo.saves)
}

func TestUpdatePreferences_InvalidLeavesStoredValues(t *testing.T) {
	ctx := context.Background()
	repo := &memPreferenceRepository{stored: map[uint]*preference.Preferences{}}
	uc := NewUpdatePreferencesUseCase(repo, logger.NewNopLogger())

	_, err := uc.Execute(ctx, UpdatePreferencesCommand{UserID: 3, Update: preference.Update{
		Theme:    strPtr("dark"),
		Language: strPtr("x"),
	}})
	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeValidation, appErr.Type)
	assert.Zero(t, repo.saves)
}
