package attendance

import "context"

// AttendanceService governs the join state machine:
// none -> pending -> {accepted, rejected}, with accepted and rejected terminal.
type AttendanceService interface {
	// RequestJoin creates the record for the pair. Events without join
	// approval admit immediately subject to capacity; events with approval
	// queue the request as pending without consuming a seat.
	RequestJoin(ctx context.Context, eventID, participantID string) (AttendanceResponse, error)

	// Review applies an organizer decision to a pending request. Accept
	// re-checks capacity at decision time and leaves the record pending when
	// the event is full.
	Review(ctx context.Context, req ReviewRequest) (AttendanceResponse, error)

	// ListByEvent lists an event's attendance, organizer only
	ListByEvent(ctx context.Context, eventID, callerID string) ([]AttendanceResponse, error)
}
