package capacity

import (
	"context"
	"fmt"

	"github.com/gatherly/events-backend-go/internal/domain/attendance"
	"github.com/gatherly/events-backend-go/internal/domain/event"
)

// Ledger answers seat questions for an event. Only accepted attendance
// consumes capacity; pending requests never do. Reserve is only meaningful
// inside a transaction that already holds the event row lock.
type Ledger struct {
	attendanceRepo attendance.AttendanceRepository
}

func NewLedger(attendanceRepo attendance.AttendanceRepository) *Ledger {
	return &Ledger{attendanceRepo: attendanceRepo}
}

// AvailableSeats returns the remaining seat count, or nil when the event is
// unlimited. Never negative.
func (l *Ledger) AvailableSeats(ctx context.Context, ev event.Event) (*int, error) {
	if ev.AttendeeLimit == nil {
		return nil, nil
	}

	accepted, err := l.attendanceRepo.CountByStatus(ctx, ev.ID, attendance.StatusAccepted)
	if err != nil {
		return nil, fmt.Errorf("failed to count accepted attendees: %w", err)
	}

	remaining := *ev.AttendeeLimit - accepted
	if remaining < 0 {
		remaining = 0
	}

	return &remaining, nil
}

// Reserve checks that at least one seat is free. Returns ErrEventFull when
// the accepted count has reached the limit.
func (l *Ledger) Reserve(ctx context.Context, ev event.Event) error {
	if ev.AttendeeLimit == nil {
		return nil
	}

	accepted, err := l.attendanceRepo.CountByStatus(ctx, ev.ID, attendance.StatusAccepted)
	if err != nil {
		return fmt.Errorf("failed to count accepted attendees: %w", err)
	}

	if accepted >= *ev.AttendeeLimit {
		return attendance.ErrEventFull
	}

	return nil
}
