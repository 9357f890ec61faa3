package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	userusecases "github.com/consultkit/consultkit/internal/application/user/usecases"
	"github.com/consultkit/consultkit/internal/domain/preference"
	"github.com/consultkit/consultkit/internal/domain/usage"
	"github.com/consultkit/consultkit/internal/domain/user"
	"github.com/consultkit/consultkit/internal/shared/errors"
)

type UserResponse struct {
	ID        uint      `json:"id"`
	UUID      string    `json:"uuid"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func ToUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:        u.ID(),
		UUID:      u.UUID(),
		Email:     u.Email(),
		Name:      u.Name(),
		Role:      u.Role().String(),
		Status:    string(u.Status()),
		CreatedAt: u.CreatedAt(),
	}
}

func ToUserResponses(users []*user.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserResponse(u))
	}
	return out
}

type AuthResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int64        `json:"expires_in"`
}

func toAuthResponse(r *userusecases.AuthResult) AuthResponse {
	return AuthResponse{
		User:         ToUserResponse(r.User),
		AccessToken:  r.AccessToken,
		RefreshToken: r.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    r.ExpiresIn,
	}
}

type QuotaResponse struct {
	ToolSlug    string    `json:"tool_slug"`
	ToolName    string    `json:"tool_name,omitempty"`
	HasAccess   bool      `json:"has_access"`
	Unlimited   bool      `json:"unlimited"`
	Limit       int       `json:"limit"`
	Used        int       `json:"used"`
	Remaining   int       `json:"remaining"`
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
}

func toQuotaResponse(name string, q usage.Quota) QuotaResponse {
	return QuotaResponse{
		ToolSlug:    q.ToolSlug,
		ToolName:    name,
		HasAccess:   q.HasAccess,
		Unlimited:   q.Unlimited,
		Limit:       q.Limit,
		Used:        q.Used,
		Remaining:   q.Remaining,
		PeriodStart: q.PeriodStart,
		PeriodEnd:   q.PeriodEnd,
	}
}

type UsagePlanResponse struct {
	ID   uint   `json:"id"`
	Slug string `json:"slug"`
	Name string `json:"name"`
}

type UsageSummaryResponse struct {
	Plan        *UsagePlanResponse `json:"plan"`
	PeriodStart time.Time          `json:"period_start"`
	PeriodEnd   time.Time          `json:"period_end"`
	Tools       []QuotaResponse    `json:"tools"`
}

type PreferencesResponse struct {
	Theme              string         `json:"theme"`
	Language           string         `json:"language"`
	EmailNotifications bool           `json:"email_notifications"`
	DefaultCategory    string         `json:"default_category"`
	Settings           map[string]any `json:"settings"`
	UpdatedAt          *time.Time     `json:"updated_at,omitempty"`
}

func toPreferencesResponse(p *preference.Preferences) PreferencesResponse {
	out := PreferencesResponse{
		Theme:              string(p.Theme),
		Language:           p.Language,
		EmailNotifications: p.EmailNotifications,
		DefaultCategory:    p.DefaultCategory,
		Settings:           p.Settings,
	}
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		out.UpdatedAt = &t
	}
	return out
}

// parseIDParam reads a positive numeric path parameter.
func parseIDParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError("Invalid " + name)
	}
	return uint(id), nil
}
