package attendance

import (
	"github.com/gatherly/events-backend-go/internal/pkg/validator"
)

// ReviewRequest - POST /events/{id}/attendance/{participantID}/review
type ReviewRequest struct {
	Decision string `json:"decision"` // "accept" or "reject"
	// From the URL and JWT, not the body
	EventID       string `json:"-"`
	ParticipantID string `json:"-"`
	ReviewerID    string `json:"-"`
}

func (r *ReviewRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Decision != string(DecisionAccept) && r.Decision != string(DecisionReject) {
		errs = append(errs, validator.ValidationError{
			Field:   "decision",
			Message: "decision must be \"accept\" or \"reject\"",
		})
	}

	if validator.IsEmpty(r.EventID) {
		errs = append(errs, validator.ValidationError{
			Field:   "event_id",
			Message: "event_id is required",
		})
	}

	if validator.IsEmpty(r.ParticipantID) {
		errs = append(errs, validator.ValidationError{
			Field:   "participant_id",
			Message: "participant_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// AttendanceResponse mirrors an attendance record on the wire
type AttendanceResponse struct {
	ID               string  `json:"id"`
	EventID          string  `json:"event_id"`
	ParticipantID    string  `json:"participant_id"`
	ParticipantName  string  `json:"participant_name,omitempty"`
	ParticipantEmail string  `json:"participant_email,omitempty"`
	Status           string  `json:"status"`
	ReviewedBy       *string `json:"reviewed_by,omitempty"`
	ReviewedAt       *string `json:"reviewed_at,omitempty"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        string  `json:"updated_at"`
}
