package attendance

import "time"

// Status of a (participant, event) attendance record. There is no record at
// all before the first join request; Accepted and Rejected are terminal.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// Decision is an organizer's verdict on a pending request
type Decision string

const (
	DecisionAccept Decision = "accept"
	DecisionReject Decision = "reject"
)

// Attendance is one participant's join state for one event, unique per pair.
// Only the attendance service mutates it; capacity is consumed the moment a
// record becomes Accepted, never while it is Pending.
type Attendance struct {
	ID            string
	EventID       string
	ParticipantID string
	Status        Status
	ReviewedBy    *string // organizer user id, set on review
	ReviewedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// AttendanceWithParticipant joins the record with display fields
type AttendanceWithParticipant struct {
	Attendance
	ParticipantName  string
	ParticipantEmail string
}
