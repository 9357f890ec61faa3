package user

import (
	"fmt"
	"time"

	"github.com/consultkit/consultkit/internal/shared/biztime"
	"github.com/consultkit/consultkit/internal/shared/id"
)

// Session backs one refresh token. Refreshing rotates RefreshTokenHash;
// logging out deletes the session.
type Session struct {
	ID               string
	UserID           uint
	IPAddress        string
	UserAgent        string
	RefreshTokenHash string
	ExpiresAt        time.Time
	LastActivityAt   time.Time
	CreatedAt        time.Time
}

func NewSession(userID uint, ipAddress, userAgent string, expiresAt time.Time) (*Session, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}

	sid, err := id.NewSessionID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session ID: %w", err)
	}

	now := biztime.NowUTC()
	return &Session{
		ID:             sid,
		UserID:         userID,
		IPAddress:      ipAddress,
		UserAgent:      userAgent,
		ExpiresAt:      expiresAt,
		LastActivityAt: now,
		CreatedAt:      now,
	}, nil
}

func (s *Session) IsExpired() bool {
	return biztime.NowUTC().After(s.ExpiresAt)
}

func (s *Session) Rotate(refreshTokenHash string, expiresAt time.Time) {
	s.RefreshTokenHash = refreshTokenHash
	s.ExpiresAt = expiresAt
	s.LastActivityAt = biztime.NowUTC()
}
