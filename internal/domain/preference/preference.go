// Package preference holds per-user UI and notification settings.
package preference

import (
	"context"
	"fmt"
	"time"
)

type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

func (t Theme) IsValid() bool {
	return t == ThemeLight || t == ThemeDark || t == ThemeSystem
}

type Preferences struct {
	UserID             uint
	Theme              Theme
	Language           string
	EmailNotifications bool
	DefaultCategory    string
	Settings           map[string]any
	UpdatedAt          time.Time
}

// Defaults are returned for users that never saved preferences.
func Defaults(userID uint) *Preferences {
	return &Preferences{
		UserID:             userID,
		Theme:              ThemeSystem,
		Language:           "en",
		EmailNotifications: true,
		Settings:           map[string]any{},
	}
}

// Update is a partial change; nil fields are left alone. Settings keys are
// merged, and a key set to nil is removed.
type Update struct {
	Theme              *string
	Language           *string
	EmailNotifications *bool
	DefaultCategory    *string
	Settings           map[string]any
}

func (p *Preferences) Apply(u Update) error {
	if u.Theme != nil {
		theme := Theme(*u.Theme)
		if !theme.IsValid() {
			return fmt.Errorf("invalid theme: %s", *u.Theme)
		}
		p.Theme = theme
	}
	if u.Language != nil {
		if l := len(*u.Language); l < 2 || l > 10 {
			return fmt.Errorf("invalid language code: %s", *u.Language)
		}
		p.Language = *u.Language
	}
	if u.EmailNotifications != nil {
		p.EmailNotifications = *u.EmailNotifications
	}
	if u.DefaultCategory != nil {
		p.DefaultCategory = *u.DefaultCategory
	}
	if len(u.Settings) > 0 {
		if p.Settings == nil {
			p.Settings = map[string]any{}
		}
		for k, v := range u.Settings {
			if v == nil {
				delete(p.Settings, k)
				continue
			}
			p.Settings[k] = v
		}
	}
	p.UpdatedAt = time.Now().UTC()
	return nil
}

type Repository interface {
	// Get returns (nil, nil) when the user has no stored preferences.
	Get(ctx context.Context, userID uint) (*Preferences, error)
	Save(ctx context.Context, prefs *Preferences) error
}
