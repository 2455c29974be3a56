package event

import "context"

// EventRepository defines the interface for event data access
type EventRepository interface {
	// Create persists an event with its agenda items
	Create(ctx context.Context, ev Event, items []AgendaItem) (Event, error)

	GetByID(ctx context.Context, id string) (Event, error)

	// GetByIDForUpdate locks the event row for the rest of the surrounding
	// transaction. Every admitting write and every capacity-shrinking update
	// must go through this lock; it is what makes the seat check atomic.
	GetByIDForUpdate(ctx context.Context, id string) (Event, error)

	// Update replaces the stored event and its agenda items
	Update(ctx context.Context, ev Event, items []AgendaItem) (Event, error)

	Delete(ctx context.Context, id string) error

	ListByOrganizer(ctx context.Context, organizerID string) ([]Event, error)

	ListAgenda(ctx context.Context, eventID string) ([]AgendaItem, error)
}
