package company

import "time"

// Company scopes organizers, participants and invitations
type Company struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
