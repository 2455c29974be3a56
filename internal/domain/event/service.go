package event

import "context"

// EventService defines the interface for event business logic
type EventService interface {
	// Create validates the window and persists a new event for the organizer
	Create(ctx context.Context, organizerID, companyID string, req CreateRequest) (EventResponse, error)

	// Update re-validates the window and rejects attendee limits below the
	// current accepted count
	Update(ctx context.Context, eventID, organizerID string, req UpdateRequest) (EventResponse, error)

	Delete(ctx context.Context, eventID, organizerID string) error

	Get(ctx context.Context, eventID string) (EventResponse, error)

	ListByOrganizer(ctx context.Context, organizerID string) ([]EventResponse, error)

	// AvailableSeats returns attendeeLimit - acceptedCount, nil for unlimited
	AvailableSeats(ctx context.Context, eventID string) (*int, error)
}
