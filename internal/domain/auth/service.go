package auth

import "context"

// AuthService defines the interface for authentication business logic
type AuthService interface {
	RegisterOrganizer(ctx context.Context, req RegisterOrganizerRequest) (TokenResponse, error)
	// RegisterParticipant consumes an invitation token atomically with the
	// account creation
	RegisterParticipant(ctx context.Context, req RegisterParticipantRequest) (TokenResponse, error)
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	LoginWithGoogle(ctx context.Context, googleEmail, googleID string) (TokenResponse, error)
	RefreshToken(ctx context.Context, req RefreshTokenRequest) (AccessTokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	VerifyEmail(ctx context.Context, req VerifyEmailRequest) error
}
