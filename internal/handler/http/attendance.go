package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gatherly/events-backend-go/internal/domain/attendance"
	"github.com/gatherly/events-backend-go/internal/handler/http/middleware"
	"github.com/gatherly/events-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	Join(w http.ResponseWriter, r *http.Request)
	Review(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// Join implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Join(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if identity.ParticipantID == nil {
		response.Forbidden(w, "A participant profile is required to join events")
		return
	}

	eventID := chi.URLParam(r, "id")
	resp, err := h.attendanceService.RequestJoin(r.Context(), eventID, *identity.ParticipantID)
	if err != nil {
		slog.Error("Join event service error", "error", err, "event_id", eventID)
		response.HandleError(w, err)
		return
	}

	slog.Info("Join request recorded", "event_id", eventID, "status", resp.Status)
	response.Created(w, "Join request recorded", resp)
}

// Review implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Review(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req attendance.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Review decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EventID = chi.URLParam(r, "id")
	req.ParticipantID = chi.URLParam(r, "participantID")
	req.ReviewerID = identity.UserID

	resp, err := h.attendanceService.Review(r.Context(), req)
	if err != nil {
		slog.Error("Review service error", "error", err, "event_id", req.EventID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Join request reviewed", resp)
}

// List implements AttendanceHandler.
func (h *AttendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	records, err := h.attendanceService.ListByEvent(r.Context(), chi.URLParam(r, "id"), identity.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}
