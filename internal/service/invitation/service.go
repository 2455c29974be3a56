package invitation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gatherly/events-backend-go/internal/domain/company"
	"github.com/gatherly/events-backend-go/internal/domain/invitation"
	"github.com/gatherly/events-backend-go/internal/domain/participant"
	"github.com/gatherly/events-backend-go/internal/domain/user"
	"github.com/gatherly/events-backend-go/internal/pkg/clock"
	"github.com/gatherly/events-backend-go/internal/pkg/database"
	"github.com/gatherly/events-backend-go/internal/pkg/email"
	"github.com/gatherly/events-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
)

type invitationService struct {
	invitationRepo  invitation.InvitationRepository
	userRepo        user.UserRepository
	participantRepo participant.ParticipantRepository
	companyRepo     company.CompanyRepository
	emailService    email.EmailService
	txManager       database.TxManager
	clock           clock.Clock
	expiry          time.Duration
	frontendURL     string
}

func NewInvitationService(
	invitationRepo invitation.InvitationRepository,
	userRepo user.UserRepository,
	participantRepo participant.ParticipantRepository,
	companyRepo company.CompanyRepository,
	emailService email.EmailService,
	txManager database.TxManager,
	clk clock.Clock,
	expiry time.Duration,
	frontendURL string,
) invitation.InvitationService {
	return &invitationService{
		invitationRepo:  invitationRepo,
		userRepo:        userRepo,
		participantRepo: participantRepo,
		companyRepo:     companyRepo,
		emailService:    emailService,
		txManager:       txManager,
		clock:           clk,
		expiry:          expiry,
		frontendURL:     frontendURL,
	}
}

func (s *invitationService) Issue(ctx context.Context, req invitation.CreateRequest) (invitation.Invitation, error) {
	if err := req.Validate(); err != nil {
		return invitation.Invitation{}, err
	}

	normalized := validator.NormalizeEmail(req.Email)

	// A live invitation for the same email and company is reused instead of
	// piling up duplicates.
	inv, err := s.invitationRepo.FindLiveByEmailAndCompany(ctx, normalized, req.CompanyID)
	if err != nil {
		if !errors.Is(err, invitation.ErrInvitationNotFound) {
			return invitation.Invitation{}, err
		}

		inv, err = s.invitationRepo.Create(ctx, invitation.Invitation{
			Email:           normalized,
			CompanyID:       req.CompanyID,
			InvitedByUserID: req.InvitedByUserID,
			Token:           uuid.NewString(),
			Status:          invitation.StatusPending,
			ExpiresAt:       s.clock.Now().Add(s.expiry),
		})
		if err != nil {
			return invitation.Invitation{}, err
		}
	}

	s.sendInvitationEmail(ctx, inv)

	return inv, nil
}

func (s *invitationService) GetByToken(ctx context.Context, token string) (invitation.DetailResponse, error) {
	inv, err := s.invitationRepo.GetByToken(ctx, token)
	if err != nil {
		return invitation.DetailResponse{}, err
	}

	return invitation.DetailResponse{
		Token:     inv.Token,
		Email:     inv.Email,
		CompanyID: inv.CompanyID,
		Status:    string(inv.Status),
		ExpiresAt: inv.ExpiresAt.Format(time.RFC3339),
		IsExpired: inv.IsExpired(s.clock.Now()),
		CreatedAt: inv.CreatedAt.Format(time.RFC3339),
	}, nil
}

func (s *invitationService) Redeem(ctx context.Context, token string) (invitation.Invitation, error) {
	inv, err := s.invitationRepo.GetByToken(ctx, token)
	if err != nil {
		return invitation.Invitation{}, err
	}

	switch inv.Status {
	case invitation.StatusAccepted:
		return invitation.Invitation{}, invitation.ErrInvitationAlreadyUsed
	case invitation.StatusRevoked:
		return invitation.Invitation{}, invitation.ErrInvitationRevoked
	}

	if inv.IsExpired(s.clock.Now()) {
		return invitation.Invitation{}, invitation.ErrInvitationExpired
	}

	return inv, nil
}

func (s *invitationService) MarkAccepted(ctx context.Context, token string) error {
	return s.invitationRepo.MarkAccepted(ctx, token)
}

func (s *invitationService) Accept(ctx context.Context, token, userID, userEmail string) (invitation.AcceptResponse, error) {
	var resp invitation.AcceptResponse

	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		inv, err := s.Redeem(ctx, token)
		if err != nil {
			return err
		}

		if inv.Email != validator.NormalizeEmail(userEmail) {
			return invitation.ErrEmailMismatch
		}

		u, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			return err
		}

		if err := s.userRepo.LinkCompany(ctx, u.ID, inv.CompanyID, user.RoleParticipant); err != nil {
			return err
		}

		p, err := s.participantRepo.Create(ctx, participant.Participant{
			UserID:    u.ID,
			CompanyID: inv.CompanyID,
			FullName:  u.FullName,
		})
		if err != nil {
			return err
		}

		if err := s.invitationRepo.MarkAccepted(ctx, token); err != nil {
			return err
		}

		resp = invitation.AcceptResponse{
			Message:       "invitation accepted",
			CompanyID:     inv.CompanyID,
			ParticipantID: p.ID,
		}
		return nil
	})
	if err != nil {
		return invitation.AcceptResponse{}, err
	}

	return resp, nil
}

func (s *invitationService) Resend(ctx context.Context, emailAddr, companyID string) error {
	normalized := validator.NormalizeEmail(emailAddr)

	inv, err := s.invitationRepo.FindLiveByEmailAndCompany(ctx, normalized, companyID)
	if err != nil {
		return err
	}

	newToken := uuid.NewString()
	expiresAt := s.clock.Now().Add(s.expiry)
	if err := s.invitationRepo.UpdateToken(ctx, inv.ID, newToken, expiresAt); err != nil {
		return err
	}

	inv.Token = newToken
	inv.ExpiresAt = expiresAt
	s.sendInvitationEmail(ctx, inv)

	return nil
}

func (s *invitationService) Revoke(ctx context.Context, id, companyID string) error {
	inv, err := s.invitationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if inv.CompanyID != companyID {
		return invitation.ErrInvitationNotFound
	}
	if inv.Status == invitation.StatusAccepted {
		return invitation.ErrCannotRevokeAccepted
	}

	return s.invitationRepo.MarkRevoked(ctx, id)
}

func (s *invitationService) sendInvitationEmail(ctx context.Context, inv invitation.Invitation) {
	var inviterName, companyName string
	if u, err := s.userRepo.GetByID(ctx, inv.InvitedByUserID); err == nil {
		inviterName = u.FullName
	}
	if c, err := s.companyRepo.GetByID(ctx, inv.CompanyID); err == nil {
		companyName = c.Name
	}

	link := fmt.Sprintf("%s/invitations/%s", s.frontendURL, inv.Token)
	expiresAt := inv.ExpiresAt.Format("Jan 2, 2006 15:04 MST")

	if err := s.emailService.SendInvitation(inv.Email, inviterName, companyName, link, expiresAt); err != nil {
		// Delivery is best-effort; the invitation stays valid either way.
		slog.Error("failed to send invitation email", "email", inv.Email, "error", err)
	}
}
