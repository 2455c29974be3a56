package invitation

import "github.com/gatherly/events-backend-go/internal/pkg/validator"

// CreateRequest - POST /invitations, issued by an organizer for their company
type CreateRequest struct {
	Email string `json:"email"`
	// Filled from the caller's token, not the body
	CompanyID       string `json:"-"`
	InvitedByUserID string `json:"-"`
}

func (r *CreateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email format is invalid",
		})
	}

	if validator.IsEmpty(r.CompanyID) {
		errs = append(errs, validator.ValidationError{
			Field:   "company_id",
			Message: "company_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// AcceptRequest for accepting an invitation as a logged-in user
type AcceptRequest struct {
	Token  string `json:"-"` // from Chi URL param
	UserID string // from JWT, not from the request body
}

func (r *AcceptRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Token) {
		errs = append(errs, validator.ValidationError{
			Field:   "token",
			Message: "token is required",
		})
	} else if !validator.IsValidUUID(r.Token) {
		errs = append(errs, validator.ValidationError{
			Field:   "token",
			Message: "token must be a valid UUID",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// DetailResponse - GET /invitations/{token}
type DetailResponse struct {
	Token     string `json:"token"`
	Email     string `json:"email"`
	CompanyID string `json:"company_id"`
	Status    string `json:"status"`
	ExpiresAt string `json:"expires_at"`
	IsExpired bool   `json:"is_expired"`
	CreatedAt string `json:"created_at"`
}

// AcceptResponse for invitation acceptance result
type AcceptResponse struct {
	Message       string `json:"message"`
	CompanyID     string `json:"company_id"`
	ParticipantID string `json:"participant_id"`
}
