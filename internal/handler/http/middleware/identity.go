package middleware

import (
	"context"

	"github.com/gatherly/events-backend-go/internal/domain/auth"
	"github.com/gatherly/events-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
)

// Identity is the caller's identity as carried by the access token. Handlers
// extract it once and pass explicit ids to the services; services never read
// token claims themselves.
type Identity struct {
	UserID        string
	Email         string
	CompanyID     *string
	ParticipantID *string
	Role          user.Role
}

// IdentityFromContext reads the verified claims placed in the request context
// by jwtauth.Verifier.
func IdentityFromContext(ctx context.Context) (Identity, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Identity{}, auth.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Identity{}, auth.ErrInvalidToken
	}

	identity := Identity{UserID: userID}
	if email, ok := claims["email"].(string); ok {
		identity.Email = email
	}
	if role, ok := claims["role"].(string); ok {
		identity.Role = user.Role(role)
	}
	if companyID, ok := claims["company_id"].(string); ok && companyID != "" {
		identity.CompanyID = &companyID
	}
	if participantID, ok := claims["participant_id"].(string); ok && participantID != "" {
		identity.ParticipantID = &participantID
	}

	return identity, nil
}
