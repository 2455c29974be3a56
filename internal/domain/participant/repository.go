package participant

import "context"

// ParticipantRepository defines the interface for participant data access
type ParticipantRepository interface {
	Create(ctx context.Context, p Participant) (Participant, error)
	GetByID(ctx context.Context, id string) (Participant, error)
	GetByUserAndCompany(ctx context.Context, userID, companyID string) (Participant, error)
}
