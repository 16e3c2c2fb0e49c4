package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/HammerMeetNail/fitrank/internal/models"
)

var (
	ErrRecordNotFound   = errors.New("exercise record not found")
	ErrInvalidIntensity = errors.New("intensity must be between 0 and 10")
	ErrMissingField     = errors.New("missing required field")
)

const recordColumns = `id, user_id, date, time_of_day, intensity, exercise_type, COALESCE(memo, ''), created_at, updated_at`

type RecordService struct {
	db DB
}

func NewRecordService(db DB) *RecordService {
	return &RecordService{db: db}
}

func scanRecord(row Row) (models.ExerciseRecord, error) {
	var r models.ExerciseRecord
	err := row.Scan(&r.ID, &r.UserID, &r.Date, &r.TimeOfDay, &r.Intensity, &r.ExerciseType, &r.Memo, &r.CreatedAt, &r.UpdatedAt)
	return r, err
}

func collectRecords(rows Rows) ([]models.ExerciseRecord, error) {
	defer rows.Close()

	records := []models.ExerciseRecord{}
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning exercise record: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating exercise records: %w", err)
	}
	return records, nil
}

func (s *RecordService) Create(ctx context.Context, params models.CreateRecordParams) (*models.ExerciseRecord, error) {
	if !models.IsValidIntensity(params.Intensity) {
		return nil, ErrInvalidIntensity
	}
	if params.Date.IsZero() {
		return nil, fmt.Errorf("%w: date", ErrMissingField)
	}
	if strings.TrimSpace(params.TimeOfDay) == "" {
		return nil, fmt.Errorf("%w: time_of_day", ErrMissingField)
	}
	if strings.TrimSpace(params.ExerciseType) == "" {
		return nil, fmt.Errorf("%w: exercise_type", ErrMissingField)
	}

	r, err := scanRecord(s.db.QueryRow(ctx,
		`INSERT INTO exercise_records (user_id, date, time_of_day, intensity, exercise_type, memo)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+recordColumns,
		params.UserID, params.Date, params.TimeOfDay, params.Intensity, params.ExerciseType, params.Memo,
	))
	if isPgError(err, pgForeignKeyViolation) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("creating exercise record: %w", err)
	}
	return &r, nil
}

func (s *RecordService) GetByID(ctx context.Context, id uuid.UUID) (*models.ExerciseRecord, error) {
	return getRecord(ctx, s.db, id, "")
}

func getRecord(ctx context.Context, db DBConn, id uuid.UUID, lock string) (*models.ExerciseRecord, error) {
	r, err := scanRecord(db.QueryRow(ctx,
		`SELECT `+recordColumns+` FROM exercise_records WHERE id = $1`+lock,
		id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting exercise record: %w", err)
	}
	return &r, nil
}

// List returns a user's records, newest first.
func (s *RecordService) List(ctx context.Context, userID uuid.UUID, filter models.RecordFilter) ([]models.ExerciseRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM exercise_records WHERE user_id = $1`
	args := []any{userID}

	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}
	if t := strings.TrimSpace(filter.ExerciseType); t != "" {
		args = append(args, "%"+t+"%")
		query += fmt.Sprintf(" AND exercise_type ILIKE $%d", len(args))
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing exercise records: %w", err)
	}
	return collectRecords(rows)
}

// ListSince returns a user's records with created_at at or after start. No
// upper bound is applied.
func (s *RecordService) ListSince(ctx context.Context, userID uuid.UUID, start time.Time) ([]models.ExerciseRecord, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+recordColumns+`
		 FROM exercise_records
		 WHERE user_id = $1 AND created_at >= $2
		 ORDER BY created_at`,
		userID, start,
	)
	if err != nil {
		return nil, fmt.Errorf("fetching exercise records: %w", err)
	}
	return collectRecords(rows)
}

// Update applies the non-nil fields of params. The row stays locked from the
// read until the merged write commits.
func (s *RecordService) Update(ctx context.Context, id uuid.UUID, params models.UpdateRecordParams) (*models.ExerciseRecord, error) {
	if params.Intensity != nil && !models.IsValidIntensity(*params.Intensity) {
		return nil, ErrInvalidIntensity
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	current, err := getRecord(ctx, tx, id, " FOR UPDATE")
	if err != nil {
		return nil, err
	}

	if params.Date != nil {
		current.Date = *params.Date
	}
	if params.TimeOfDay != nil {
		current.TimeOfDay = *params.TimeOfDay
	}
	if params.Intensity != nil {
		current.Intensity = *params.Intensity
	}
	if params.ExerciseType != nil {
		current.ExerciseType = *params.ExerciseType
	}
	if params.Memo != nil {
		current.Memo = *params.Memo
	}

	r, err := scanRecord(tx.QueryRow(ctx,
		`UPDATE exercise_records
		 SET date = $2, time_of_day = $3, intensity = $4, exercise_type = $5, memo = $6, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+recordColumns,
		id, current.Date, current.TimeOfDay, current.Intensity, current.ExerciseType, current.Memo,
	))
	if err != nil {
		return nil, fmt.Errorf("updating exercise record: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}
	return &r, nil
}

func (s *RecordService) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.Exec(ctx, "DELETE FROM exercise_records WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deleting exercise record: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrRecordNotFound
	}
	return nil
}
