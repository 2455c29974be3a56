package invitation

import (
	"context"
	"time"
)

// InvitationRepository defines the interface for invitation data access
type InvitationRepository interface {
	// Create creates a new invitation record
	Create(ctx context.Context, inv Invitation) (Invitation, error)

	// GetByToken retrieves an invitation by its opaque token
	GetByToken(ctx context.Context, token string) (Invitation, error)

	GetByID(ctx context.Context, id string) (Invitation, error)

	// FindLiveByEmailAndCompany retrieves the most recent pending non-expired
	// invitation for (email, company). Older live duplicates may exist but are
	// not actionable.
	FindLiveByEmailAndCompany(ctx context.Context, email, companyID string) (Invitation, error)

	// MarkAccepted flips status pending -> accepted as a conditional update.
	// Returns ErrInvitationAlreadyUsed when the row was not pending anymore,
	// so two concurrent redemptions of the same token cannot both succeed.
	MarkAccepted(ctx context.Context, token string) error

	// MarkRevoked marks an invitation as revoked
	MarkRevoked(ctx context.Context, id string) error

	// UpdateToken rotates the token and expiry (for resend)
	UpdateToken(ctx context.Context, id, newToken string, expiresAt time.Time) error
}
