package invitation

import "context"

// InvitationService defines the interface for invitation business logic
type InvitationService interface {
	// Issue creates an invitation (reusing a live one for the same email and
	// company when present) and sends the email best-effort
	Issue(ctx context.Context, req CreateRequest) (Invitation, error)

	// GetByToken retrieves invitation details by token (public endpoint)
	GetByToken(ctx context.Context, token string) (DetailResponse, error)

	// Redeem looks an invitation up and checks it is redeemable. It does not
	// consume the token; callers complete their own checks first and then call
	// MarkAccepted.
	Redeem(ctx context.Context, token string) (Invitation, error)

	// MarkAccepted consumes the token exactly once
	MarkAccepted(ctx context.Context, token string) error

	// Accept redeems an invitation for an already-registered user: links the
	// user to the company as a participant and consumes the token
	Accept(ctx context.Context, token, userID, userEmail string) (AcceptResponse, error)

	// Resend rotates the token on the live invitation and re-sends the email
	Resend(ctx context.Context, email, companyID string) error

	// Revoke revokes a pending invitation
	Revoke(ctx context.Context, id, companyID string) error
}
