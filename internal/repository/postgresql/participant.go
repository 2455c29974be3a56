package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/gatherly/events-backend-go/internal/domain/participant"
	"github.com/gatherly/events-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type participantRepository struct {
	db *database.DB
}

func NewParticipantRepository(db *database.DB) participant.ParticipantRepository {
	return &participantRepository{db: db}
}

const participantColumns = `id, user_id, company_id, full_name, created_at, updated_at`

func (r *participantRepository) Create(ctx context.Context, p participant.Participant) (participant.Participant, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO participants (user_id, company_id, full_name)
		VALUES ($1, $2, $3)
		RETURNING ` + participantColumns

	created, err := scanParticipant(q.QueryRow(ctx, query, p.UserID, p.CompanyID, p.FullName))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return participant.Participant{}, participant.ErrAlreadyParticipant
		}
		return participant.Participant{}, fmt.Errorf("failed to create participant: %w", err)
	}

	return created, nil
}

func (r *participantRepository) GetByID(ctx context.Context, id string) (participant.Participant, error) {
	q := GetQuerier(ctx, r.db)

	p, err := scanParticipant(q.QueryRow(ctx,
		`SELECT `+participantColumns+` FROM participants WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return participant.Participant{}, participant.ErrParticipantNotFound
		}
		return participant.Participant{}, fmt.Errorf("failed to get participant: %w", err)
	}

	return p, nil
}

func (r *participantRepository) GetByUserAndCompany(ctx context.Context, userID, companyID string) (participant.Participant, error) {
	q := GetQuerier(ctx, r.db)

	p, err := scanParticipant(q.QueryRow(ctx,
		`SELECT `+participantColumns+` FROM participants WHERE user_id = $1 AND company_id = $2`,
		userID, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return participant.Participant{}, participant.ErrParticipantNotFound
		}
		return participant.Participant{}, fmt.Errorf("failed to get participant: %w", err)
	}

	return p, nil
}

func scanParticipant(row pgx.Row) (participant.Participant, error) {
	var p participant.Participant
	err := row.Scan(&p.ID, &p.UserID, &p.CompanyID, &p.FullName, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}
