package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gatherly/events-backend-go/internal/domain/invitation"
	"github.com/gatherly/events-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type invitationRepository struct {
	db *database.DB
}

func NewInvitationRepository(db *database.DB) invitation.InvitationRepository {
	return &invitationRepository{db: db}
}

const invitationColumns = `id, email, company_id, invited_by_user_id, token, status,
		expires_at, accepted_at, revoked_at, created_at, updated_at`

func (r *invitationRepository) Create(ctx context.Context, inv invitation.Invitation) (invitation.Invitation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO invitations (email, company_id, invited_by_user_id, token, status, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + invitationColumns

	created, err := scanInvitation(q.QueryRow(ctx, query,
		inv.Email, inv.CompanyID, inv.InvitedByUserID, inv.Token, inv.Status, inv.ExpiresAt,
	))
	if err != nil {
		return invitation.Invitation{}, fmt.Errorf("failed to create invitation: %w", err)
	}

	return created, nil
}

func (r *invitationRepository) GetByToken(ctx context.Context, token string) (invitation.Invitation, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + invitationColumns + ` FROM invitations WHERE token = $1`

	inv, err := scanInvitation(q.QueryRow(ctx, query, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return invitation.Invitation{}, invitation.ErrInvitationNotFound
		}
		return invitation.Invitation{}, fmt.Errorf("failed to get invitation: %w", err)
	}

	return inv, nil
}

func (r *invitationRepository) GetByID(ctx context.Context, id string) (invitation.Invitation, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + invitationColumns + ` FROM invitations WHERE id = $1`

	inv, err := scanInvitation(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return invitation.Invitation{}, invitation.ErrInvitationNotFound
		}
		return invitation.Invitation{}, fmt.Errorf("failed to get invitation: %w", err)
	}

	return inv, nil
}

func (r *invitationRepository) FindLiveByEmailAndCompany(ctx context.Context, email, companyID string) (invitation.Invitation, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + invitationColumns + `
		FROM invitations
		WHERE email = $1 AND company_id = $2 AND status = 'pending' AND expires_at > NOW()
		ORDER BY created_at DESC
		LIMIT 1`

	inv, err := scanInvitation(q.QueryRow(ctx, query, email, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return invitation.Invitation{}, invitation.ErrInvitationNotFound
		}
		return invitation.Invitation{}, fmt.Errorf("failed to find live invitation: %w", err)
	}

	return inv, nil
}

func (r *invitationRepository) MarkAccepted(ctx context.Context, token string) error {
	q := GetQuerier(ctx, r.db)

	// Conditional on pending status so a token can be consumed exactly once.
	query := `
		UPDATE invitations
		SET status = 'accepted', accepted_at = NOW(), updated_at = NOW()
		WHERE token = $1 AND status = 'pending'
		RETURNING id`

	var id string
	if err := q.QueryRow(ctx, query, token).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return invitation.ErrInvitationAlreadyUsed
		}
		return fmt.Errorf("failed to mark invitation accepted: %w", err)
	}

	return nil
}

func (r *invitationRepository) MarkRevoked(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE invitations
		SET status = 'revoked', revoked_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING id`

	var revoked string
	if err := q.QueryRow(ctx, query, id).Scan(&revoked); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return invitation.ErrInvitationNotFound
		}
		return fmt.Errorf("failed to revoke invitation: %w", err)
	}

	return nil
}

func (r *invitationRepository) UpdateToken(ctx context.Context, id, newToken string, expiresAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE invitations
		SET token = $2, expires_at = $3, updated_at = NOW()
		WHERE id = $1`

	tag, err := q.Exec(ctx, query, id, newToken, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to rotate invitation token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return invitation.ErrInvitationNotFound
	}

	return nil
}

func scanInvitation(row pgx.Row) (invitation.Invitation, error) {
	var inv invitation.Invitation
	err := row.Scan(
		&inv.ID, &inv.Email, &inv.CompanyID, &inv.InvitedByUserID,
		&inv.Token, &inv.Status, &inv.ExpiresAt,
		&inv.AcceptedAt, &inv.RevokedAt, &inv.CreatedAt, &inv.UpdatedAt,
	)
	return inv, err
}
