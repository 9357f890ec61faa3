package user

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/consultkit/consultkit/internal/shared/authorization"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

var emailRegex = regexp.MustCompile(`^[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}$`)

// NormalizeEmail lower-cases and trims an address and checks its shape.
func NormalizeEmail(email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return "", fmt.Errorf("email cannot be empty")
	}
	if len(normalized) > 255 {
		return "", fmt.Errorf("email cannot exceed 255 characters")
	}
	if !emailRegex.MatchString(normalized) {
		return "", fmt.Errorf("invalid email format: %s", email)
	}
	return normalized, nil
}

// User is an account. OAuth-only users have no password hash.
type User struct {
	id           uint
	uuid         string
	email        string
	name         string
	passwordHash *string
	role         authorization.UserRole
	status       Status
	createdAt    time.Time
	updatedAt    time.Time
}

func NewUser(email, name string) (*User, error) {
	normalized, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = strings.SplitN(normalized, "@", 2)[0]
	}
	if len(name) > 100 {
		return nil, fmt.Errorf("name cannot exceed 100 characters")
	}

	now := time.Now().UTC()
	return &User{
		uuid:      uuid.NewString(),
		email:     normalized,
		name:      name,
		role:      authorization.RoleUser,
		status:    StatusActive,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructUser(id uint, uid, email, name string, passwordHash *string, role string, status string,
	createdAt, updatedAt time.Time) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}

	return &User{
		id:           id,
		uuid:         uid,
		email:        email,
		name:         name,
		passwordHash: passwordHash,
		role:         authorization.ParseUserRole(role),
		status:       Status(status),
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (u *User) ID() uint                     { return u.id }
func (u *User) UUID() string                 { return u.uuid }
func (u *User) Email() string                { return u.email }
func (u *User) Name() string                 { return u.name }
func (u *User) PasswordHash() *string        { return u.passwordHash }
func (u *User) Role() authorization.UserRole { return u.role }
func (u *User) Status() Status               { return u.status }
func (u *User) CreatedAt() time.Time         { return u.createdAt }
func (u *User) UpdatedAt() time.Time         { return u.updatedAt }

func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.id = id
	return nil
}

func (u *User) HasPassword() bool {
	return u.passwordHash != nil && *u.passwordHash != ""
}

func (u *User) SetPasswordHash(hash string) {
	u.passwordHash = &hash
	u.updatedAt = time.Now().UTC()
}

func (u *User) IsActive() bool {
	return u.status == StatusActive
}

func (u *User) IsAdmin() bool {
	return u.role.IsAdmin()
}

func (u *User) SetRole(role authorization.UserRole) error {
	if !role.IsValid() {
		return fmt.Errorf("invalid role: %s", role)
	}
	u.role = role
	u.updatedAt = time.Now().UTC()
	return nil
}

func (u *User) Deactivate() {
	u.status = StatusInactive
	u.updatedAt = time.Now().UTC()
}

func (u *User) Activate() {
	u.status = StatusActive
	u.updatedAt = time.Now().UTC()
}
