package user

import "context"

// Repository defines the interface for user data operations.
// Lookups return (nil, nil) when nothing matches.
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
	List(ctx context.Context, filter ListFilter) ([]*User, int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type ListFilter struct {
	Page     int
	PageSize int
	Email    string
	Role     string
	Status   string
}

type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	GetByID(ctx context.Context, sessionID string) (*Session, error)
	Update(ctx context.Context, session *Session) error
	Delete(ctx context.Context, sessionID string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

type OAuthAccountRepository interface {
	Create(ctx context.Context, account *OAuthAccount) error
	GetByProviderAndUserID(ctx context.Context, provider, providerUserID string) (*OAuthAccount, error)
	Update(ctx context.Context, account *OAuthAccount) error
}
