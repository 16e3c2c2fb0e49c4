package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/HammerMeetNail/fitrank/internal/models"
	"github.com/HammerMeetNail/fitrank/internal/stats"
)

const (
	globalStatsDays       = 30
	popularExercisesLimit = 5
)

type StatisticsService struct {
	db      DBConn
	records RecordFetcher
	now     func() time.Time
	metrics *Metrics
}

func NewStatisticsService(db DBConn, records RecordFetcher, now func() time.Time, metrics *Metrics) *StatisticsService {
	return &StatisticsService{
		db:      db,
		records: records,
		now:     clockOrDefault(now),
		metrics: metrics,
	}
}

// GetStatistics builds the report for userID over period. A user with no
// records in the window, or no user row at all, gets a zero-shaped report.
func (s *StatisticsService) GetStatistics(ctx context.Context, userID uuid.UUID, period models.Period) (*models.StatisticsReport, error) {
	now := s.now()
	window, err := stats.ResolveWindow(period, now)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	defer s.metrics.observe("statistics", start)

	records, err := s.records.ListSince(ctx, userID, window.Start)
	if err != nil {
		return nil, err
	}
	return stats.BuildReport(period, records, now), nil
}

// Compare summarises both users over a week or month and pairs their daily
// average intensities.
func (s *StatisticsService) Compare(ctx context.Context, userID, friendID uuid.UUID, period models.Period) (*models.ComparisonReport, error) {
	now := s.now()
	window, days, err := stats.ResolveComparisonWindow(period, now)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	defer s.metrics.observe("compare", start)

	var userRecords, friendRecords []models.ExerciseRecord
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		userRecords, err = s.records.ListSince(gctx, userID, window.Start)
		return err
	})
	g.Go(func() error {
		var err error
		friendRecords, err = s.records.ListSince(gctx, friendID, window.Start)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &models.ComparisonReport{
		Period:         period,
		UserID:         userID,
		FriendID:       friendID,
		UserStats:      stats.Summarize(userRecords),
		FriendStats:    stats.Summarize(friendRecords),
		ComparisonData: stats.CompareSeries(userRecords, friendRecords, days, now),
	}, nil
}

// GetGlobalStatistics reports activity across all users over the last 30 days.
func (s *StatisticsService) GetGlobalStatistics(ctx context.Context) (*models.GlobalStatistics, error) {
	since := s.now().AddDate(0, 0, -globalStatsDays)

	start := time.Now()
	defer s.metrics.observe("global", start)

	result := &models.GlobalStatistics{
		Period:           fmt.Sprintf("last_%d_days", globalStatsDays),
		PopularExercises: []models.PopularExercise{},
	}

	var avg float64
	err := s.db.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(DISTINCT user_id), COALESCE(AVG(intensity), 0)::float8
		 FROM exercise_records
		 WHERE created_at >= $1`,
		since,
	).Scan(&result.TotalWorkoutRecords, &result.ActiveUsers, &avg)
	if err != nil {
		return nil, fmt.Errorf("aggregating global statistics: %w", err)
	}
	result.AverageIntensity = stats.Round1(avg)

	rows, err := s.db.Query(ctx,
		`SELECT exercise_type, COUNT(*) AS count
		 FROM exercise_records
		 WHERE created_at >= $1
		 GROUP BY exercise_type
		 ORDER BY count DESC, exercise_type
		 LIMIT $2`,
		since, popularExercisesLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing popular exercises: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.PopularExercise
		if err := rows.Scan(&p.ExerciseType, &p.Count); err != nil {
			return nil, fmt.Errorf("scanning popular exercise: %w", err)
		}
		result.PopularExercises = append(result.PopularExercises, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating popular exercises: %w", err)
	}

	return result, nil
}
