package attendance

import "context"

// AttendanceRepository defines the interface for attendance data access
type AttendanceRepository interface {
	// Create inserts a new record; the (participant, event) pair is unique
	Create(ctx context.Context, rec Attendance) (Attendance, error)

	GetByEventAndParticipant(ctx context.Context, eventID, participantID string) (Attendance, error)

	// UpdateStatus flips status from -> to as a conditional update and stamps
	// the reviewer. Returns ErrAlreadyReviewed when the record was no longer
	// in the expected state.
	UpdateStatus(ctx context.Context, id string, from, to Status, reviewerID *string) (Attendance, error)

	ListByEvent(ctx context.Context, eventID string) ([]AttendanceWithParticipant, error)

	CountByStatus(ctx context.Context, eventID string, status Status) (int, error)

	// DeleteByIDs removes records in bulk; used when the owning event is deleted
	DeleteByIDs(ctx context.Context, ids []string) error
}
