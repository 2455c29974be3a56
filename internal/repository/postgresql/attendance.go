package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/gatherly/events-backend-go/internal/domain/attendance"
	"github.com/gatherly/events-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `id, event_id, participant_id, status, reviewed_by, reviewed_at,
		created_at, updated_at`

func (r *attendanceRepository) Create(ctx context.Context, rec attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO event_attendances (event_id, participant_id, status, reviewed_by, reviewed_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + attendanceColumns

	created, err := scanAttendance(q.QueryRow(ctx, query,
		rec.EventID, rec.ParticipantID, rec.Status, rec.ReviewedBy, rec.ReviewedAt,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.Attendance{}, attendance.ErrAlreadyRequested
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return created, nil
}

func (r *attendanceRepository) GetByEventAndParticipant(ctx context.Context, eventID, participantID string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + `
		FROM event_attendances
		WHERE event_id = $1 AND participant_id = $2`

	rec, err := scanAttendance(q.QueryRow(ctx, query, eventID, participantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	return rec, nil
}

func (r *attendanceRepository) UpdateStatus(ctx context.Context, id string, from, to attendance.Status, reviewerID *string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	// Conditional on the current status so a lost race surfaces as a conflict
	// instead of silently re-reviewing a settled record.
	query := `
		UPDATE event_attendances
		SET status = $3, reviewed_by = $4, reviewed_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status = $2
		RETURNING ` + attendanceColumns

	rec, err := scanAttendance(q.QueryRow(ctx, query, id, from, to, reviewerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAlreadyReviewed
		}
		return attendance.Attendance{}, fmt.Errorf("failed to update attendance status: %w", err)
	}

	return rec, nil
}

func (r *attendanceRepository) ListByEvent(ctx context.Context, eventID string) ([]attendance.AttendanceWithParticipant, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.event_id, a.participant_id, a.status, a.reviewed_by, a.reviewed_at,
			a.created_at, a.updated_at, p.full_name, u.email
		FROM event_attendances a
		JOIN participants p ON p.id = a.participant_id
		JOIN users u ON u.id = p.user_id
		WHERE a.event_id = $1
		ORDER BY a.created_at`

	rows, err := q.Query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	var records []attendance.AttendanceWithParticipant
	for rows.Next() {
		var rec attendance.AttendanceWithParticipant
		if err := rows.Scan(
			&rec.ID, &rec.EventID, &rec.ParticipantID, &rec.Status,
			&rec.ReviewedBy, &rec.ReviewedAt, &rec.CreatedAt, &rec.UpdatedAt,
			&rec.ParticipantName, &rec.ParticipantEmail,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

func (r *attendanceRepository) CountByStatus(ctx context.Context, eventID string, status attendance.Status) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM event_attendances WHERE event_id = $1 AND status = $2`,
		eventID, status,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	return count, nil
}

func (r *attendanceRepository) DeleteByIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM event_attendances WHERE id = ANY($1)`, ids); err != nil {
		return fmt.Errorf("failed to delete attendances: %w", err)
	}

	return nil
}

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var rec attendance.Attendance
	err := row.Scan(
		&rec.ID, &rec.EventID, &rec.ParticipantID, &rec.Status,
		&rec.ReviewedBy, &rec.ReviewedAt, &rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}
