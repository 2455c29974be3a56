package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gatherly/events-backend-go/internal/domain/auth"
	"github.com/gatherly/events-backend-go/internal/domain/company"
	"github.com/gatherly/events-backend-go/internal/domain/invitation"
	"github.com/gatherly/events-backend-go/internal/domain/participant"
	"github.com/gatherly/events-backend-go/internal/domain/user"
	"github.com/gatherly/events-backend-go/internal/pkg/database"
	"github.com/gatherly/events-backend-go/internal/pkg/email"
	"github.com/gatherly/events-backend-go/internal/pkg/jwt"
	"github.com/gatherly/events-backend-go/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type authService struct {
	userRepo          user.UserRepository
	companyRepo       company.CompanyRepository
	participantRepo   participant.ParticipantRepository
	refreshTokenRepo  auth.RefreshTokenRepository
	invitationService invitation.InvitationService
	jwtService        jwt.Service
	emailService      email.EmailService
	txManager         database.TxManager
	frontendURL       string
}

func NewAuthService(
	userRepo user.UserRepository,
	companyRepo company.CompanyRepository,
	participantRepo participant.ParticipantRepository,
	refreshTokenRepo auth.RefreshTokenRepository,
	invitationService invitation.InvitationService,
	jwtService jwt.Service,
	emailService email.EmailService,
	txManager database.TxManager,
	frontendURL string,
) auth.AuthService {
	return &authService{
		userRepo:          userRepo,
		companyRepo:       companyRepo,
		participantRepo:   participantRepo,
		refreshTokenRepo:  refreshTokenRepo,
		invitationService: invitationService,
		jwtService:        jwtService,
		emailService:      emailService,
		txManager:         txManager,
		frontendURL:       frontendURL,
	}
}

func (s *authService) RegisterOrganizer(ctx context.Context, req auth.RegisterOrganizerRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}
	passwordHash := string(hashed)

	var created user.User
	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		c, err := s.companyRepo.Create(ctx, company.Company{Name: req.CompanyName})
		if err != nil {
			return err
		}

		created, err = s.userRepo.Create(ctx, user.User{
			CompanyID:    &c.ID,
			Email:        validator.NormalizeEmail(req.Email),
			FullName:     req.FullName,
			PasswordHash: &passwordHash,
			Role:         user.RoleOrganizer,
		})
		return err
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	s.sendVerificationEmail(ctx, created)

	return s.issueTokens(ctx, created, nil)
}

func (s *authService) RegisterParticipant(ctx context.Context, req auth.RegisterParticipantRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}
	passwordHash := string(hashed)

	var (
		created user.User
		p       participant.Participant
	)
	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		inv, err := s.invitationService.Redeem(ctx, req.InvitationToken)
		if err != nil {
			return err
		}

		normalized := validator.NormalizeEmail(req.Email)
		if inv.Email != normalized {
			return invitation.ErrEmailMismatch
		}

		created, err = s.userRepo.Create(ctx, user.User{
			CompanyID:    &inv.CompanyID,
			Email:        normalized,
			FullName:     req.FullName,
			PasswordHash: &passwordHash,
			Role:         user.RoleParticipant,
		})
		if err != nil {
			return err
		}

		p, err = s.participantRepo.Create(ctx, participant.Participant{
			UserID:    created.ID,
			CompanyID: inv.CompanyID,
			FullName:  req.FullName,
		})
		if err != nil {
			return err
		}

		// Consuming the token last keeps the invitation reusable when any of
		// the account writes fail.
		return s.invitationService.MarkAccepted(ctx, req.InvitationToken)
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	s.sendVerificationEmail(ctx, created)

	return s.issueTokens(ctx, created, &p.ID)
}

func (s *authService) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	u, err := s.userRepo.GetByEmail(ctx, validator.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, err
	}

	if u.PasswordHash == nil {
		// OAuth-only account
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, u, s.lookupParticipantID(ctx, u))
}

func (s *authService) LoginWithGoogle(ctx context.Context, googleEmail, googleID string) (auth.TokenResponse, error) {
	normalized := validator.NormalizeEmail(googleEmail)

	u, err := s.userRepo.GetByEmail(ctx, normalized)
	if err != nil {
		if !errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, err
		}

		provider := "google"
		u, err = s.userRepo.Create(ctx, user.User{
			Email:           normalized,
			FullName:        normalized,
			Role:            user.RolePending,
			OAuthProvider:   &provider,
			OAuthProviderID: &googleID,
			EmailVerified:   true,
		})
		if err != nil {
			return auth.TokenResponse{}, err
		}
	} else if u.OAuthProviderID == nil {
		u, err = s.userRepo.LinkGoogleAccount(ctx, googleID, normalized)
		if err != nil {
			return auth.TokenResponse{}, err
		}
	}

	return s.issueTokens(ctx, u, s.lookupParticipantID(ctx, u))
}

func (s *authService) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	userID, err := s.jwtService.ParseRefreshToken(req.RefreshToken)
	if err != nil {
		if errors.Is(err, jwtauth.ErrExpired) {
			return auth.AccessTokenResponse{}, auth.ErrTokenExpired
		}
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	revoked, err := s.refreshTokenRepo.IsRevoked(ctx, req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, err
	}
	if revoked {
		return auth.AccessTokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return auth.AccessTokenResponse{}, err
	}

	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(
		u.ID, u.Email, u.CompanyID, s.lookupParticipantID(ctx, u), u.Role,
	)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return auth.AccessTokenResponse{
		AccessToken:          accessToken,
		AccessTokenExpiresIn: expiresAt,
	}, nil
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	if err := s.refreshTokenRepo.Revoke(ctx, refreshToken); err != nil {
		return err
	}

	// Opportunistic pruning; the revocation above already succeeded.
	if err := s.refreshTokenRepo.DeleteExpired(ctx); err != nil {
		slog.Error("failed to prune expired refresh tokens", "error", err)
	}
	return nil
}

func (s *authService) VerifyEmail(ctx context.Context, req auth.VerifyEmailRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if err := s.userRepo.VerifyEmail(ctx, req.Token); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.ErrVerificationNotFound
		}
		return err
	}

	return nil
}

func (s *authService) issueTokens(ctx context.Context, u user.User, participantID *string) (auth.TokenResponse, error) {
	accessToken, accessExpiresAt, err := s.jwtService.GenerateAccessToken(
		u.ID, u.Email, u.CompanyID, participantID, u.Role,
	)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, refreshExpiresAt, err := s.jwtService.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if err := s.refreshTokenRepo.Create(ctx, refreshToken, u.ID, time.Unix(refreshExpiresAt, 0)); err != nil {
		return auth.TokenResponse{}, err
	}

	return auth.TokenResponse{
		AccessToken:           accessToken,
		AccessTokenExpiresIn:  accessExpiresAt,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresIn: refreshExpiresAt,
	}, nil
}

func (s *authService) lookupParticipantID(ctx context.Context, u user.User) *string {
	if u.CompanyID == nil || u.Role != user.RoleParticipant {
		return nil
	}

	p, err := s.participantRepo.GetByUserAndCompany(ctx, u.ID, *u.CompanyID)
	if err != nil {
		return nil
	}

	return &p.ID
}

func (s *authService) sendVerificationEmail(ctx context.Context, u user.User) {
	token := uuid.NewString()
	if err := s.userRepo.SetVerificationToken(ctx, u.ID, token); err != nil {
		slog.Error("failed to store verification token", "user_id", u.ID, "error", err)
		return
	}

	link := fmt.Sprintf("%s/verify-email?token=%s", s.frontendURL, token)
	if err := s.emailService.SendVerification(u.Email, link); err != nil {
		// Best-effort; the account works unverified until the link is clicked.
		slog.Error("failed to send verification email", "email", u.Email, "error", err)
	}
}
