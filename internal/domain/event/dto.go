package event

import (
	"time"

	"github.com/gatherly/events-backend-go/internal/pkg/validator"
)

// AgendaItemRequest carries one agenda slot on create/update
type AgendaItemRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	StartTime   string `json:"start_time"` // RFC3339
	EndTime     string `json:"end_time"`   // RFC3339
}

// CreateRequest - POST /events
type CreateRequest struct {
	Name          string              `json:"name"`
	Description   string              `json:"description"`
	Location      string              `json:"location"`
	Timezone      string              `json:"timezone"`
	StartAt       string              `json:"start_at"` // RFC3339
	EndAt         string              `json:"end_at"`   // RFC3339
	JoinDeadline  *string             `json:"join_deadline,omitempty"`
	AttendeeLimit *int                `json:"attendee_limit,omitempty"`
	JoinApproval  bool                `json:"join_approval"`
	Agenda        []AgendaItemRequest `json:"agenda,omitempty"`
}

func (r *CreateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if !validator.IsValidTimezone(r.Timezone) {
		errs = append(errs, validator.ValidationError{
			Field:   "timezone",
			Message: "timezone must be a valid IANA zone name",
		})
	}

	if _, ok := validator.IsValidDatetime(r.StartAt); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_at",
			Message: "start_at must be an RFC3339 datetime",
		})
	}

	if _, ok := validator.IsValidDatetime(r.EndAt); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_at",
			Message: "end_at must be an RFC3339 datetime",
		})
	}

	if r.JoinDeadline != nil {
		if _, ok := validator.IsValidDatetime(*r.JoinDeadline); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "join_deadline",
				Message: "join_deadline must be an RFC3339 datetime",
			})
		}
	}

	for _, item := range r.Agenda {
		if validator.IsEmpty(item.Title) {
			errs = append(errs, validator.ValidationError{
				Field:   "agenda.title",
				Message: "agenda item title is required",
			})
		}
		if _, ok := validator.IsValidDatetime(item.StartTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "agenda.start_time",
				Message: "agenda start_time must be an RFC3339 datetime",
			})
		}
		if _, ok := validator.IsValidDatetime(item.EndTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "agenda.end_time",
				Message: "agenda end_time must be an RFC3339 datetime",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ToEntity converts a validated request to entities. Must only be called after
// Validate returned nil.
func (r *CreateRequest) ToEntity() (Event, []AgendaItem) {
	startAt, _ := validator.IsValidDatetime(r.StartAt)
	endAt, _ := validator.IsValidDatetime(r.EndAt)

	ev := Event{
		Name:          r.Name,
		Description:   r.Description,
		Location:      r.Location,
		Timezone:      r.Timezone,
		StartAt:       startAt,
		EndAt:         endAt,
		AttendeeLimit: r.AttendeeLimit,
		JoinApproval:  r.JoinApproval,
	}
	if r.JoinDeadline != nil {
		d, _ := validator.IsValidDatetime(*r.JoinDeadline)
		ev.JoinDeadline = &d
	}

	items := make([]AgendaItem, 0, len(r.Agenda))
	for _, a := range r.Agenda {
		st, _ := validator.IsValidDatetime(a.StartTime)
		et, _ := validator.IsValidDatetime(a.EndTime)
		items = append(items, AgendaItem{
			Title:       a.Title,
			Description: a.Description,
			StartTime:   st,
			EndTime:     et,
		})
	}

	return ev, items
}

// UpdateRequest - PUT /events/{id}. The full window is re-submitted and
// re-validated; the agenda list replaces the stored one when present.
type UpdateRequest struct {
	Name          string              `json:"name"`
	Description   string              `json:"description"`
	Location      string              `json:"location"`
	Timezone      string              `json:"timezone"`
	StartAt       string              `json:"start_at"`
	EndAt         string              `json:"end_at"`
	JoinDeadline  *string             `json:"join_deadline,omitempty"`
	AttendeeLimit *int                `json:"attendee_limit,omitempty"`
	JoinApproval  bool                `json:"join_approval"`
	Agenda        []AgendaItemRequest `json:"agenda,omitempty"`
}

func (r *UpdateRequest) Validate() error {
	cr := CreateRequest(*r)
	return cr.Validate()
}

func (r *UpdateRequest) ToEntity() (Event, []AgendaItem) {
	cr := CreateRequest(*r)
	return cr.ToEntity()
}

// AgendaItemResponse mirrors AgendaItem on the wire
type AgendaItemResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
}

// EventResponse projects an event with its agenda and derived attendance counts
type EventResponse struct {
	ID             string               `json:"id"`
	Name           string               `json:"name"`
	Description    string               `json:"description,omitempty"`
	Location       string               `json:"location,omitempty"`
	Timezone       string               `json:"timezone"`
	StartAt        string               `json:"start_at"`
	EndAt          string               `json:"end_at"`
	JoinDeadline   *string              `json:"join_deadline,omitempty"`
	AttendeeLimit  *int                 `json:"attendee_limit,omitempty"`
	JoinApproval   bool                 `json:"join_approval"`
	OrganizerID    string               `json:"organizer_id"`
	CompanyID      string               `json:"company_id"`
	AcceptedCount  int                  `json:"accepted_count"`
	PendingCount   int                  `json:"pending_count"`
	AvailableSeats *int                 `json:"available_seats,omitempty"` // nil = unlimited
	Agenda         []AgendaItemResponse `json:"agenda"`
	CreatedAt      string               `json:"created_at"`
	UpdatedAt      string               `json:"updated_at"`
}

func formatInZone(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(time.RFC3339)
}

// ToResponse builds the display projection. Counts are supplied by the caller
// (they come from the attendance store).
func ToResponse(ev Event, items []AgendaItem, accepted, pending int, availableSeats *int) EventResponse {
	loc, err := LoadZone(ev.Timezone)
	if err != nil {
		loc = time.UTC
	}

	resp := EventResponse{
		ID:             ev.ID,
		Name:           ev.Name,
		Description:    ev.Description,
		Location:       ev.Location,
		Timezone:       ev.Timezone,
		StartAt:        formatInZone(ev.StartAt, loc),
		EndAt:          formatInZone(ev.EndAt, loc),
		AttendeeLimit:  ev.AttendeeLimit,
		JoinApproval:   ev.JoinApproval,
		OrganizerID:    ev.OrganizerID,
		CompanyID:      ev.CompanyID,
		AcceptedCount:  accepted,
		PendingCount:   pending,
		AvailableSeats: availableSeats,
		Agenda:         make([]AgendaItemResponse, 0, len(items)),
		CreatedAt:      ev.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:      ev.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
	if ev.JoinDeadline != nil {
		d := formatInZone(*ev.JoinDeadline, loc)
		resp.JoinDeadline = &d
	}
	for _, item := range items {
		resp.Agenda = append(resp.Agenda, AgendaItemResponse{
			ID:          item.ID,
			Title:       item.Title,
			Description: item.Description,
			StartTime:   formatInZone(item.StartTime, loc),
			EndTime:     formatInZone(item.EndTime, loc),
		})
	}
	return resp
}
