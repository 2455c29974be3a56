package attendance

import (
	"context"
	"errors"
	"time"

	"github.com/gatherly/events-backend-go/internal/domain/attendance"
	"github.com/gatherly/events-backend-go/internal/domain/event"
	"github.com/gatherly/events-backend-go/internal/pkg/clock"
	"github.com/gatherly/events-backend-go/internal/pkg/database"
	"github.com/gatherly/events-backend-go/internal/service/capacity"
)

type attendanceService struct {
	attendanceRepo attendance.AttendanceRepository
	eventRepo      event.EventRepository
	ledger         *capacity.Ledger
	txManager      database.TxManager
	clock          clock.Clock
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	eventRepo event.EventRepository,
	ledger *capacity.Ledger,
	txManager database.TxManager,
	clk clock.Clock,
) attendance.AttendanceService {
	return &attendanceService{
		attendanceRepo: attendanceRepo,
		eventRepo:      eventRepo,
		ledger:         ledger,
		txManager:      txManager,
		clock:          clk,
	}
}

func (s *attendanceService) RequestJoin(ctx context.Context, eventID, participantID string) (attendance.AttendanceResponse, error) {
	var created attendance.Attendance

	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		// Lock the event row so the seat check and the insert happen as one
		// unit against concurrent joins.
		ev, err := s.eventRepo.GetByIDForUpdate(ctx, eventID)
		if err != nil {
			return err
		}

		_, err = s.attendanceRepo.GetByEventAndParticipant(ctx, eventID, participantID)
		if err == nil {
			return attendance.ErrAlreadyRequested
		}
		if !errors.Is(err, attendance.ErrAttendanceNotFound) {
			return err
		}

		// No deadline means joins stay open indefinitely.
		if ev.JoinDeadline != nil && s.clock.Now().After(*ev.JoinDeadline) {
			return attendance.ErrJoinDeadlinePassed
		}

		status := attendance.StatusPending
		if !ev.JoinApproval {
			// Direct admission consumes a seat immediately.
			if err := s.ledger.Reserve(ctx, ev); err != nil {
				return err
			}
			status = attendance.StatusAccepted
		}

		created, err = s.attendanceRepo.Create(ctx, attendance.Attendance{
			EventID:       eventID,
			ParticipantID: participantID,
			Status:        status,
		})
		return err
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return toResponse(created), nil
}

func (s *attendanceService) Review(ctx context.Context, req attendance.ReviewRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var reviewed attendance.Attendance

	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		ev, err := s.eventRepo.GetByIDForUpdate(ctx, req.EventID)
		if err != nil {
			return err
		}
		if ev.OrganizerID != req.ReviewerID {
			return event.ErrNotEventOrganizer
		}
		if !ev.JoinApproval {
			return attendance.ErrApprovalNotRequired
		}

		rec, err := s.attendanceRepo.GetByEventAndParticipant(ctx, req.EventID, req.ParticipantID)
		if err != nil {
			return err
		}
		if rec.Status != attendance.StatusPending {
			return attendance.ErrAlreadyReviewed
		}

		target := attendance.StatusRejected
		if req.Decision == string(attendance.DecisionAccept) {
			// Capacity is re-checked at decision time; a full event leaves the
			// request pending rather than admitting over the limit.
			if err := s.ledger.Reserve(ctx, ev); err != nil {
				return err
			}
			target = attendance.StatusAccepted
		}

		reviewed, err = s.attendanceRepo.UpdateStatus(ctx, rec.ID, attendance.StatusPending, target, &req.ReviewerID)
		return err
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return toResponse(reviewed), nil
}

func (s *attendanceService) ListByEvent(ctx context.Context, eventID, callerID string) ([]attendance.AttendanceResponse, error) {
	ev, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if ev.OrganizerID != callerID {
		return nil, event.ErrNotEventOrganizer
	}

	records, err := s.attendanceRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, rec := range records {
		resp := toResponse(rec.Attendance)
		resp.ParticipantName = rec.ParticipantName
		resp.ParticipantEmail = rec.ParticipantEmail
		responses = append(responses, resp)
	}

	return responses, nil
}

func toResponse(rec attendance.Attendance) attendance.AttendanceResponse {
	resp := attendance.AttendanceResponse{
		ID:            rec.ID,
		EventID:       rec.EventID,
		ParticipantID: rec.ParticipantID,
		Status:        string(rec.Status),
		ReviewedBy:    rec.ReviewedBy,
		CreatedAt:     rec.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:     rec.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
	if rec.ReviewedAt != nil {
		reviewedAt := rec.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &reviewedAt
	}
	return resp
}
