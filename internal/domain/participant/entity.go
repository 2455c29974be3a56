package participant

import "time"

// Participant links a user identity to a company. Attendance records reference
// participants, not users, so a user joining events for two companies keeps
// separate attendance histories.
type Participant struct {
	ID        string
	UserID    string
	CompanyID string
	FullName  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
