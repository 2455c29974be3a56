package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gatherly/events-backend-go/internal/domain/invitation"
	"github.com/gatherly/events-backend-go/internal/handler/http/middleware"
	"github.com/gatherly/events-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type InvitationHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	GetByToken(w http.ResponseWriter, r *http.Request)
	Accept(w http.ResponseWriter, r *http.Request)
	Resend(w http.ResponseWriter, r *http.Request)
	Revoke(w http.ResponseWriter, r *http.Request)
}

type InvitationHandlerImpl struct {
	invitationService invitation.InvitationService
}

func NewInvitationHandler(invitationService invitation.InvitationService) InvitationHandler {
	return &InvitationHandlerImpl{invitationService: invitationService}
}

// Create implements InvitationHandler.
func (h *InvitationHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if identity.CompanyID == nil {
		response.Forbidden(w, "A company is required to invite participants")
		return
	}

	var req invitation.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create invitation decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.CompanyID = *identity.CompanyID
	req.InvitedByUserID = identity.UserID

	inv, err := h.invitationService.Issue(r.Context(), req)
	if err != nil {
		slog.Error("Create invitation service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Invitation issued", "email", inv.Email)
	response.Created(w, "Invitation sent successfully", map[string]string{
		"id":         inv.ID,
		"email":      inv.Email,
		"expires_at": inv.ExpiresAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

// GetByToken implements InvitationHandler.
func (h *InvitationHandlerImpl) GetByToken(w http.ResponseWriter, r *http.Request) {
	detail, err := h.invitationService.GetByToken(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, detail)
}

// Accept implements InvitationHandler.
func (h *InvitationHandlerImpl) Accept(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	req := invitation.AcceptRequest{
		Token:  chi.URLParam(r, "token"),
		UserID: identity.UserID,
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.invitationService.Accept(r.Context(), req.Token, req.UserID, identity.Email)
	if err != nil {
		slog.Error("Accept invitation service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Invitation accepted", "company_id", resp.CompanyID)
	response.SuccessWithMessage(w, "Invitation accepted successfully", resp)
}

// Resend implements InvitationHandler.
func (h *InvitationHandlerImpl) Resend(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if identity.CompanyID == nil {
		response.Forbidden(w, "A company is required to resend invitations")
		return
	}

	var req invitation.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Resend invitation decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.invitationService.Resend(r.Context(), req.Email, *identity.CompanyID); err != nil {
		slog.Error("Resend invitation service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Invitation re-sent successfully", nil)
}

// Revoke implements InvitationHandler.
func (h *InvitationHandlerImpl) Revoke(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if identity.CompanyID == nil {
		response.Forbidden(w, "A company is required to revoke invitations")
		return
	}

	if err := h.invitationService.Revoke(r.Context(), chi.URLParam(r, "id"), *identity.CompanyID); err != nil {
		slog.Error("Revoke invitation service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Invitation revoked successfully", nil)
}
