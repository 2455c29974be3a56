package event

import "time"

// Event represents a time-bounded event with bounded attendance
type Event struct {
	ID            string
	Name          string
	Description   string
	Location      string
	Timezone      string // IANA zone name; all window comparisons happen in this zone
	StartAt       time.Time
	EndAt         time.Time
	JoinDeadline  *time.Time // nil = joinable until start
	AttendeeLimit *int       // nil = unlimited
	JoinApproval  bool       // true = organizer reviews each join request
	OrganizerID   string     // owning user id
	CompanyID     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// AgendaItem is a scheduled slot inside its parent event's window
type AgendaItem struct {
	ID          string
	EventID     string
	Title       string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
