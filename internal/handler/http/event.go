package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gatherly/events-backend-go/internal/domain/event"
	"github.com/gatherly/events-backend-go/internal/handler/http/middleware"
	"github.com/gatherly/events-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type EventHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	AvailableSeats(w http.ResponseWriter, r *http.Request)
}

type EventHandlerImpl struct {
	eventService event.EventService
}

func NewEventHandler(eventService event.EventService) EventHandler {
	return &EventHandlerImpl{eventService: eventService}
}

// Create implements EventHandler.
func (h *EventHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if identity.CompanyID == nil {
		response.Forbidden(w, "A company is required to create events")
		return
	}

	var req event.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create event decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.eventService.Create(r.Context(), identity.UserID, *identity.CompanyID, req)
	if err != nil {
		slog.Error("Create event service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Event created successfully", "event_id", resp.ID)
	response.Created(w, "Event created successfully", resp)
}

// Update implements EventHandler.
func (h *EventHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req event.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update event decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	eventID := chi.URLParam(r, "id")
	resp, err := h.eventService.Update(r.Context(), eventID, identity.UserID, req)
	if err != nil {
		slog.Error("Update event service error", "error", err, "event_id", eventID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Event updated successfully", resp)
}

// Delete implements EventHandler.
func (h *EventHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	eventID := chi.URLParam(r, "id")
	if err := h.eventService.Delete(r.Context(), eventID, identity.UserID); err != nil {
		slog.Error("Delete event service error", "error", err, "event_id", eventID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Event deleted successfully", nil)
}

// GetByID implements EventHandler.
func (h *EventHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	resp, err := h.eventService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// List implements EventHandler.
func (h *EventHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	events, err := h.eventService.ListByOrganizer(r.Context(), identity.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, events)
}

// AvailableSeats implements EventHandler.
func (h *EventHandlerImpl) AvailableSeats(w http.ResponseWriter, r *http.Request) {
	seats, err := h.eventService.AvailableSeats(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]*int{"available_seats": seats})
}
