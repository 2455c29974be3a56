package invitation

import "time"

// Status represents the status of an invitation
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRevoked  Status = "revoked"
)

// Invitation admits an email address into a company. Invitations are audit
// records: they are consumed exactly once and never deleted.
type Invitation struct {
	ID              string
	Email           string // normalized lowercase
	CompanyID       string
	InvitedByUserID string
	Token           string
	Status          Status
	ExpiresAt       time.Time
	AcceptedAt      *time.Time
	RevokedAt       *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsExpired checks the invitation against the given instant
func (i *Invitation) IsExpired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

// IsLive reports whether the invitation is still redeemable: pending and not
// expired at the given instant.
func (i *Invitation) IsLive(now time.Time) bool {
	return i.Status == StatusPending && !i.IsExpired(now)
}
