package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/HammerMeetNail/fitrank/internal/models"
)

// UserServiceInterface defines the contract for user operations.
type UserServiceInterface interface {
	Create(ctx context.Context, params models.CreateUserParams) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// RecordServiceInterface defines the contract for exercise record operations.
type RecordServiceInterface interface {
	Create(ctx context.Context, params models.CreateRecordParams) (*models.ExerciseRecord, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.ExerciseRecord, error)
	List(ctx context.Context, userID uuid.UUID, filter models.RecordFilter) ([]models.ExerciseRecord, error)
	Update(ctx context.Context, id uuid.UUID, params models.UpdateRecordParams) (*models.ExerciseRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ScoreServiceInterface defines the contract for weekly score reads.
type ScoreServiceInterface interface {
	WeeklyScore(ctx context.Context, userID uuid.UUID, now time.Time) (int, error)
}

// StatisticsServiceInterface defines the contract for statistics reports.
type StatisticsServiceInterface interface {
	GetStatistics(ctx context.Context, userID uuid.UUID, period models.Period) (*models.StatisticsReport, error)
	Compare(ctx context.Context, userID, friendID uuid.UUID, period models.Period) (*models.ComparisonReport, error)
	GetGlobalStatistics(ctx context.Context) (*models.GlobalStatistics, error)
}

// LeaderboardServiceInterface defines the contract for friend leaderboards.
type LeaderboardServiceInterface interface {
	GetLeaderboard(ctx context.Context, userID uuid.UUID) (*models.Leaderboard, error)
}

// FriendServiceInterface defines the contract for friendship operations.
type FriendServiceInterface interface {
	SendRequest(ctx context.Context, userID uuid.UUID, friendUsername string) (*models.Friendship, error)
	AcceptRequest(ctx context.Context, friendshipID uuid.UUID) (*models.Friendship, error)
	ListFriends(ctx context.Context, userID uuid.UUID) ([]models.FriendWithScore, error)
	RemoveFriend(ctx context.Context, userID, friendID uuid.UUID) error
}

// Narrow dependencies used between services.

type UserLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

type WeeklyScorer interface {
	WeeklyScore(ctx context.Context, userID uuid.UUID, now time.Time) (int, error)
}

type AcceptedFriendLister interface {
	AcceptedFriendIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type RecordFetcher interface {
	ListSince(ctx context.Context, userID uuid.UUID, start time.Time) ([]models.ExerciseRecord, error)
}

var (
	_ UserServiceInterface        = (*UserService)(nil)
	_ RecordServiceInterface      = (*RecordService)(nil)
	_ ScoreServiceInterface       = (*ScoreService)(nil)
	_ StatisticsServiceInterface  = (*StatisticsService)(nil)
	_ LeaderboardServiceInterface = (*LeaderboardService)(nil)
	_ FriendServiceInterface      = (*FriendService)(nil)
	_ UserLookup                  = (*UserService)(nil)
	_ WeeklyScorer                = (*ScoreService)(nil)
	_ AcceptedFriendLister        = (*FriendService)(nil)
	_ RecordFetcher               = (*RecordService)(nil)
)
