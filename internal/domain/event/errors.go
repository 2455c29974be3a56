package event

import "errors"

var (
	ErrEventNotFound     = errors.New("event not found")
	ErrNotEventOrganizer = errors.New("only the event organizer can perform this action")
	ErrInvalidTimezone   = errors.New("unknown time zone")

	// window validation, first failure wins
	ErrInvalidWindow       = errors.New("event start must be before event end")
	ErrInvalidJoinDeadline = errors.New("join deadline must not be after event start")
	ErrInvalidCapacity     = errors.New("attendee limit must be at least 1")
	ErrAgendaOutOfBounds   = errors.New("agenda item falls outside the event window")
	ErrAgendaInverted      = errors.New("agenda item start must not be after its end")

	// update-time capacity guard: shrinking below accepted attendees is
	// rejected, never truncated
	ErrCapacityBelowCurrentLoad = errors.New("attendee limit cannot be lower than the number of accepted attendees")
)
