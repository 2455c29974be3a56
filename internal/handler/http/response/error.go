package response

import (
	"errors"
	"net/http"

	"github.com/gatherly/events-backend-go/internal/domain/attendance"
	"github.com/gatherly/events-backend-go/internal/domain/auth"
	"github.com/gatherly/events-backend-go/internal/domain/company"
	"github.com/gatherly/events-backend-go/internal/domain/event"
	"github.com/gatherly/events-backend-go/internal/domain/invitation"
	"github.com/gatherly/events-backend-go/internal/domain/participant"
	"github.com/gatherly/events-backend-go/internal/domain/user"
	"github.com/gatherly/events-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrEmailNotVerified):
		Forbidden(w, "Email not verified")
	case errors.Is(err, auth.ErrVerificationNotFound):
		NotFound(w, "Verification token not found")

	// User and company domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailAlreadyExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrOrganizerPrivilegeRequired):
		Forbidden(w, "Organizer privilege required")
	case errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")
	case errors.Is(err, participant.ErrParticipantNotFound):
		NotFound(w, "Participant not found")
	case errors.Is(err, participant.ErrAlreadyParticipant):
		Conflict(w, "User is already a participant of this company")

	// Event domain errors
	case errors.Is(err, event.ErrEventNotFound):
		NotFound(w, "Event not found")
	case errors.Is(err, event.ErrNotEventOrganizer):
		Forbidden(w, "Only the event organizer can perform this action")
	case errors.Is(err, event.ErrInvalidTimezone),
		errors.Is(err, event.ErrInvalidWindow),
		errors.Is(err, event.ErrInvalidJoinDeadline),
		errors.Is(err, event.ErrInvalidCapacity),
		errors.Is(err, event.ErrAgendaOutOfBounds),
		errors.Is(err, event.ErrAgendaInverted):
		UnprocessableEntity(w, err.Error())
	case errors.Is(err, event.ErrCapacityBelowCurrentLoad):
		Conflict(w, err.Error())

	// Invitation domain errors
	case errors.Is(err, invitation.ErrInvitationNotFound):
		NotFound(w, "Invitation not found")
	case errors.Is(err, invitation.ErrInvitationExpired):
		Gone(w, "Invitation has expired")
	case errors.Is(err, invitation.ErrInvitationRevoked):
		Gone(w, "Invitation has been revoked")
	case errors.Is(err, invitation.ErrInvitationAlreadyUsed):
		Conflict(w, "Invitation has already been used")
	case errors.Is(err, invitation.ErrEmailMismatch):
		Forbidden(w, err.Error())
	case errors.Is(err, invitation.ErrCannotRevokeAccepted):
		Conflict(w, err.Error())

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAlreadyRequested):
		Conflict(w, "Join request already exists for this event")
	case errors.Is(err, attendance.ErrJoinDeadlinePassed):
		Conflict(w, "Join deadline has passed")
	case errors.Is(err, attendance.ErrEventFull):
		Conflict(w, "Event has no seats left")
	case errors.Is(err, attendance.ErrAlreadyReviewed):
		Conflict(w, "Attendance request has already been reviewed")
	case errors.Is(err, attendance.ErrApprovalNotRequired):
		Conflict(w, "Event does not require join approval")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
