package event

import (
	"context"
	"fmt"

	"github.com/gatherly/events-backend-go/internal/domain/attendance"
	"github.com/gatherly/events-backend-go/internal/domain/event"
	"github.com/gatherly/events-backend-go/internal/pkg/database"
	"github.com/gatherly/events-backend-go/internal/service/capacity"
)

type eventService struct {
	eventRepo      event.EventRepository
	attendanceRepo attendance.AttendanceRepository
	ledger         *capacity.Ledger
	txManager      database.TxManager
}

func NewEventService(
	eventRepo event.EventRepository,
	attendanceRepo attendance.AttendanceRepository,
	ledger *capacity.Ledger,
	txManager database.TxManager,
) event.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		attendanceRepo: attendanceRepo,
		ledger:         ledger,
		txManager:      txManager,
	}
}

func (s *eventService) Create(ctx context.Context, organizerID, companyID string, req event.CreateRequest) (event.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return event.EventResponse{}, err
	}

	ev, items := req.ToEntity()
	ev.OrganizerID = organizerID
	ev.CompanyID = companyID

	if _, err := event.Normalize(&ev, items); err != nil {
		return event.EventResponse{}, err
	}
	if err := event.ValidateWindow(ev.StartAt, ev.EndAt, ev.JoinDeadline, ev.AttendeeLimit, items); err != nil {
		return event.EventResponse{}, err
	}

	var created event.Event
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.eventRepo.Create(ctx, ev, items)
		return err
	})
	if err != nil {
		return event.EventResponse{}, err
	}

	return s.toResponse(ctx, created)
}

func (s *eventService) Update(ctx context.Context, eventID, organizerID string, req event.UpdateRequest) (event.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return event.EventResponse{}, err
	}

	next, items := req.ToEntity()
	next.ID = eventID

	if _, err := event.Normalize(&next, items); err != nil {
		return event.EventResponse{}, err
	}
	if err := event.ValidateWindow(next.StartAt, next.EndAt, next.JoinDeadline, next.AttendeeLimit, items); err != nil {
		return event.EventResponse{}, err
	}

	var updated event.Event
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		// The row lock serializes the shrink check against concurrent
		// admissions on the same event.
		current, err := s.eventRepo.GetByIDForUpdate(ctx, eventID)
		if err != nil {
			return err
		}
		if current.OrganizerID != organizerID {
			return event.ErrNotEventOrganizer
		}

		if next.AttendeeLimit != nil {
			accepted, err := s.attendanceRepo.CountByStatus(ctx, eventID, attendance.StatusAccepted)
			if err != nil {
				return fmt.Errorf("failed to count accepted attendees: %w", err)
			}
			if accepted > *next.AttendeeLimit {
				return event.ErrCapacityBelowCurrentLoad
			}
		}

		next.OrganizerID = current.OrganizerID
		next.CompanyID = current.CompanyID

		updated, err = s.eventRepo.Update(ctx, next, items)
		return err
	})
	if err != nil {
		return event.EventResponse{}, err
	}

	return s.toResponse(ctx, updated)
}

func (s *eventService) Delete(ctx context.Context, eventID, organizerID string) error {
	return s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		ev, err := s.eventRepo.GetByIDForUpdate(ctx, eventID)
		if err != nil {
			return err
		}
		if ev.OrganizerID != organizerID {
			return event.ErrNotEventOrganizer
		}

		// Attendance records go first so a deleted event leaves no orphans.
		records, err := s.attendanceRepo.ListByEvent(ctx, eventID)
		if err != nil {
			return err
		}
		if len(records) > 0 {
			ids := make([]string, 0, len(records))
			for _, rec := range records {
				ids = append(ids, rec.ID)
			}
			if err := s.attendanceRepo.DeleteByIDs(ctx, ids); err != nil {
				return fmt.Errorf("failed to delete attendance records: %w", err)
			}
		}

		return s.eventRepo.Delete(ctx, eventID)
	})
}

func (s *eventService) Get(ctx context.Context, eventID string) (event.EventResponse, error) {
	ev, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return event.EventResponse{}, err
	}

	return s.toResponse(ctx, ev)
}

func (s *eventService) ListByOrganizer(ctx context.Context, organizerID string) ([]event.EventResponse, error) {
	events, err := s.eventRepo.ListByOrganizer(ctx, organizerID)
	if err != nil {
		return nil, err
	}

	responses := make([]event.EventResponse, 0, len(events))
	for _, ev := range events {
		resp, err := s.toResponse(ctx, ev)
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}

	return responses, nil
}

func (s *eventService) AvailableSeats(ctx context.Context, eventID string) (*int, error) {
	ev, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	return s.ledger.AvailableSeats(ctx, ev)
}

func (s *eventService) toResponse(ctx context.Context, ev event.Event) (event.EventResponse, error) {
	items, err := s.eventRepo.ListAgenda(ctx, ev.ID)
	if err != nil {
		return event.EventResponse{}, err
	}

	accepted, err := s.attendanceRepo.CountByStatus(ctx, ev.ID, attendance.StatusAccepted)
	if err != nil {
		return event.EventResponse{}, fmt.Errorf("failed to count accepted attendees: %w", err)
	}
	pending, err := s.attendanceRepo.CountByStatus(ctx, ev.ID, attendance.StatusPending)
	if err != nil {
		return event.EventResponse{}, fmt.Errorf("failed to count pending attendees: %w", err)
	}

	var available *int
	if ev.AttendeeLimit != nil {
		remaining := *ev.AttendeeLimit - accepted
		if remaining < 0 {
			remaining = 0
		}
		available = &remaining
	}

	return event.ToResponse(ev, items, accepted, pending, available), nil
}
