package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/HammerMeetNail/fitrank/internal/stats"
)

// ScoreService sums intensities straight from the store. Scores are never
// cached.
type ScoreService struct {
	db DBConn
}

func NewScoreService(db DBConn) *ScoreService {
	return &ScoreService{db: db}
}

// ScoreSince is the sum of intensity over the user's records created at or
// after start. A user with no such records scores 0.
func (s *ScoreService) ScoreSince(ctx context.Context, userID uuid.UUID, start time.Time) (int, error) {
	var score int
	err := s.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(intensity), 0)
		 FROM exercise_records
		 WHERE user_id = $1 AND created_at >= $2`,
		userID, start,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("summing weekly score: %w", err)
	}
	return score, nil
}

// WeeklyScore is ScoreSince(now - 7 days).
func (s *ScoreService) WeeklyScore(ctx context.Context, userID uuid.UUID, now time.Time) (int, error) {
	return s.ScoreSince(ctx, userID, stats.WeeklyScoreStart(now))
}
