package preference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestApply(t *testing.T) {
	p := Defaults(4)
	p.Settings["compact"] = true
	p.Settings["sidebar"] = "left"

	err := p.Apply(Update{
		Theme:              strPtr("dark"),
		EmailNotifications: boolPtr(false),
		Settings:           map[string]any{"sidebar": nil, "fontSize": float64(14)},
	})
	require.NoError(t, err)

	assert.Equal(t, ThemeDark, p.Theme)
	assert.Equal(t, "en", p.Language)
	assert.False(t, p.EmailNotifications)
	assert.Equal(t, map[string]any{"compact": true, "fontSize": float64(14)}, p.Settings)
	assert.False(t, p.UpdatedAt.IsZero())
}

func TestApply_Invalid(t *testing.T) {
	p := Defaults(4)
	assert.Error(t, p.Apply(Update{Theme: strPtr("sepia")}))
	assert.Error(t, p.Apply(Update{Language: strPtr("x")}))
	assert.Equal(t, ThemeSystem, p.Theme)
}
