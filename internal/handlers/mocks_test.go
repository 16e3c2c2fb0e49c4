package handlers

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/HammerMeetNail/fitrank/internal/models"
)

type mockUserService struct {
	CreateFunc        func(ctx context.Context, params models.CreateUserParams) (*models.User, error)
	GetByIDFunc       func(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByUsernameFunc func(ctx context.Context, username string) (*models.User, error)
}

func (m *mockUserService) Create(ctx context.Context, params models.CreateUserParams) (*models.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *mockUserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.GetByUsernameFunc != nil {
		return m.GetByUsernameFunc(ctx, username)
	}
	return nil, nil
}

type mockRecordService struct {
	CreateFunc  func(ctx context.Context, params models.CreateRecordParams) (*models.ExerciseRecord, error)
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*models.ExerciseRecord, error)
	ListFunc    func(ctx context.Context, userID uuid.UUID, filter models.RecordFilter) ([]models.ExerciseRecord, error)
	UpdateFunc  func(ctx context.Context, id uuid.UUID, params models.UpdateRecordParams) (*models.ExerciseRecord, error)
	DeleteFunc  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockRecordService) Create(ctx context.Context, params models.CreateRecordParams) (*models.ExerciseRecord, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *mockRecordService) GetByID(ctx context.Context, id uuid.UUID) (*models.ExerciseRecord, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockRecordService) List(ctx context.Context, userID uuid.UUID, filter models.RecordFilter) ([]models.ExerciseRecord, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID, filter)
	}
	return []models.ExerciseRecord{}, nil
}

func (m *mockRecordService) Update(ctx context.Context, id uuid.UUID, params models.UpdateRecordParams) (*models.ExerciseRecord, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, params)
	}
	return nil, nil
}

func (m *mockRecordService) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

type mockScoreService struct {
	WeeklyScoreFunc func(ctx context.Context, userID uuid.UUID, now time.Time) (int, error)
}

func (m *mockScoreService) WeeklyScore(ctx context.Context, userID uuid.UUID, now time.Time) (int, error) {
	if m.WeeklyScoreFunc != nil {
		return m.WeeklyScoreFunc(ctx, userID, now)
	}
	return 0, nil
}

type mockStatisticsService struct {
	GetStatisticsFunc       func(ctx context.Context, userID uuid.UUID, period models.Period) (*models.StatisticsReport, error)
	CompareFunc             func(ctx context.Context, userID, friendID uuid.UUID, period models.Period) (*models.ComparisonReport, error)
	GetGlobalStatisticsFunc func(ctx context.Context) (*models.GlobalStatistics, error)
}

func (m *mockStatisticsService) GetStatistics(ctx context.Context, userID uuid.UUID, period models.Period) (*models.StatisticsReport, error) {
	if m.GetStatisticsFunc != nil {
		return m.GetStatisticsFunc(ctx, userID, period)
	}
	return &models.StatisticsReport{}, nil
}

func (m *mockStatisticsService) Compare(ctx context.Context, userID, friendID uuid.UUID, period models.Period) (*models.ComparisonReport, error) {
	if m.CompareFunc != nil {
		return m.CompareFunc(ctx, userID, friendID, period)
	}
	return &models.ComparisonReport{}, nil
}

func (m *mockStatisticsService) GetGlobalStatistics(ctx context.Context) (*models.GlobalStatistics, error) {
	if m.GetGlobalStatisticsFunc != nil {
		return m.GetGlobalStatisticsFunc(ctx)
	}
	return &models.GlobalStatistics{}, nil
}

type mockLeaderboardService struct {
	GetLeaderboardFunc func(ctx context.Context, userID uuid.UUID) (*models.Leaderboard, error)
}

func (m *mockLeaderboardService) GetLeaderboard(ctx context.Context, userID uuid.UUID) (*models.Leaderboard, error) {
	if m.GetLeaderboardFunc != nil {
		return m.GetLeaderboardFunc(ctx, userID)
	}
	return &models.Leaderboard{Entries: []models.LeaderboardEntry{}}, nil
}

type mockFriendService struct {
	SendRequestFunc   func(ctx context.Context, userID uuid.UUID, friendUsername string) (*models.Friendship, error)
	AcceptRequestFunc func(ctx context.Context, friendshipID uuid.UUID) (*models.Friendship, error)
	ListFriendsFunc   func(ctx context.Context, userID uuid.UUID) ([]models.FriendWithScore, error)
	RemoveFriendFunc  func(ctx context.Context, userID, friendID uuid.UUID) error
}

func (m *mockFriendService) SendRequest(ctx context.Context, userID uuid.UUID, friendUsername string) (*models.Friendship, error) {
	if m.SendRequestFunc != nil {
		return m.SendRequestFunc(ctx, userID, friendUsername)
	}
	return nil, nil
}

func (m *mockFriendService) AcceptRequest(ctx context.Context, friendshipID uuid.UUID) (*models.Friendship, error) {
	if m.AcceptRequestFunc != nil {
		return m.AcceptRequestFunc(ctx, friendshipID)
	}
	return nil, nil
}

func (m *mockFriendService) ListFriends(ctx context.Context, userID uuid.UUID) ([]models.FriendWithScore, error) {
	if m.ListFriendsFunc != nil {
		return m.ListFriendsFunc(ctx, userID)
	}
	return []models.FriendWithScore{}, nil
}

func (m *mockFriendService) RemoveFriend(ctx context.Context, userID, friendID uuid.UUID) error {
	if m.RemoveFriendFunc != nil {
		return m.RemoveFriendFunc(ctx, userID, friendID)
	}
	return nil
}
