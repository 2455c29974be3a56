package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/gatherly/events-backend-go/internal/domain/event"
	"github.com/gatherly/events-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type eventRepository struct {
	db *database.DB
}

func NewEventRepository(db *database.DB) event.EventRepository {
	return &eventRepository{db: db}
}

const eventColumns = `id, name, description, location, timezone, start_at, end_at,
		join_deadline, attendee_limit, join_approval, organizer_id, company_id,
		created_at, updated_at`

func (r *eventRepository) Create(ctx context.Context, ev event.Event, items []event.AgendaItem) (event.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO events (name, description, location, timezone, start_at, end_at,
			join_deadline, attendee_limit, join_approval, organizer_id, company_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + eventColumns

	row := q.QueryRow(ctx, query,
		ev.Name, ev.Description, ev.Location, ev.Timezone, ev.StartAt, ev.EndAt,
		ev.JoinDeadline, ev.AttendeeLimit, ev.JoinApproval, ev.OrganizerID, ev.CompanyID,
	)

	created, err := scanEvent(row)
	if err != nil {
		return event.Event{}, fmt.Errorf("failed to create event: %w", err)
	}

	if err := r.insertAgenda(ctx, q, created.ID, items); err != nil {
		return event.Event{}, err
	}

	return created, nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (event.Event, error) {
	return r.getByID(ctx, id, false)
}

func (r *eventRepository) GetByIDForUpdate(ctx context.Context, id string) (event.Event, error) {
	return r.getByID(ctx, id, true)
}

func (r *eventRepository) getByID(ctx context.Context, id string, forUpdate bool) (event.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	ev, err := scanEvent(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return event.Event{}, event.ErrEventNotFound
		}
		return event.Event{}, fmt.Errorf("failed to get event: %w", err)
	}

	return ev, nil
}

func (r *eventRepository) Update(ctx context.Context, ev event.Event, items []event.AgendaItem) (event.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE events
		SET name = $2, description = $3, location = $4, timezone = $5,
			start_at = $6, end_at = $7, join_deadline = $8, attendee_limit = $9,
			join_approval = $10, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + eventColumns

	row := q.QueryRow(ctx, query,
		ev.ID, ev.Name, ev.Description, ev.Location, ev.Timezone,
		ev.StartAt, ev.EndAt, ev.JoinDeadline, ev.AttendeeLimit, ev.JoinApproval,
	)

	updated, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return event.Event{}, event.ErrEventNotFound
		}
		return event.Event{}, fmt.Errorf("failed to update event: %w", err)
	}

	if _, err := q.Exec(ctx, `DELETE FROM agenda_items WHERE event_id = $1`, ev.ID); err != nil {
		return event.Event{}, fmt.Errorf("failed to clear agenda items: %w", err)
	}
	if err := r.insertAgenda(ctx, q, ev.ID, items); err != nil {
		return event.Event{}, err
	}

	return updated, nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return event.ErrEventNotFound
	}

	return nil
}

func (r *eventRepository) ListByOrganizer(ctx context.Context, organizerID string) ([]event.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + eventColumns + ` FROM events WHERE organizer_id = $1 ORDER BY start_at`

	rows, err := q.Query(ctx, query, organizerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []event.Event
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, ev)
	}

	return events, rows.Err()
}

func (r *eventRepository) ListAgenda(ctx context.Context, eventID string) ([]event.AgendaItem, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, event_id, title, description, start_time, end_time, created_at, updated_at
		FROM agenda_items
		WHERE event_id = $1
		ORDER BY start_time`

	rows, err := q.Query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list agenda items: %w", err)
	}
	defer rows.Close()

	var items []event.AgendaItem
	for rows.Next() {
		var it event.AgendaItem
		if err := rows.Scan(&it.ID, &it.EventID, &it.Title, &it.Description,
			&it.StartTime, &it.EndTime, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan agenda item: %w", err)
		}
		items = append(items, it)
	}

	return items, rows.Err()
}

func (r *eventRepository) insertAgenda(ctx context.Context, q database.Querier, eventID string, items []event.AgendaItem) error {
	for _, it := range items {
		_, err := q.Exec(ctx, `
			INSERT INTO agenda_items (event_id, title, description, start_time, end_time)
			VALUES ($1, $2, $3, $4, $5)`,
			eventID, it.Title, it.Description, it.StartTime, it.EndTime,
		)
		if err != nil {
			return fmt.Errorf("failed to create agenda item: %w", err)
		}
	}
	return nil
}

func scanEvent(row pgx.Row) (event.Event, error) {
	var ev event.Event
	err := row.Scan(
		&ev.ID, &ev.Name, &ev.Description, &ev.Location, &ev.Timezone,
		&ev.StartAt, &ev.EndAt, &ev.JoinDeadline, &ev.AttendeeLimit,
		&ev.JoinApproval, &ev.OrganizerID, &ev.CompanyID,
		&ev.CreatedAt, &ev.UpdatedAt,
	)
	return ev, err
}
