package user

import "context"

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	LinkCompany(ctx context.Context, id, companyID string, role Role) error
	LinkGoogleAccount(ctx context.Context, googleID, email string) (User, error)
	SetVerificationToken(ctx context.Context, id, token string) error
	// VerifyEmail marks the user verified when the token matches; returns
	// ErrUserNotFound when no user carries the token.
	VerifyEmail(ctx context.Context, token string) error
}
