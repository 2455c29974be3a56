package user

import "time"

// Role determines what a user can do. Organizers own events and review join
// requests; participants join events. Pending users registered without an
// invitation and have no company yet.
type Role string

const (
	RolePending     Role = "pending"
	RoleParticipant Role = "participant"
	RoleOrganizer   Role = "organizer"
)

// User represents an authenticated account
type User struct {
	ID                      string
	CompanyID               *string
	Email                   string
	FullName                string
	PasswordHash            *string
	Role                    Role
	OAuthProvider           *string
	OAuthProviderID         *string
	EmailVerified           bool
	EmailVerificationToken  *string
	EmailVerificationSentAt *time.Time
	CreatedAt               time.Time
	UpdatedAt               time.Time
}
