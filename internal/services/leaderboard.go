package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/HammerMeetNail/fitrank/internal/models"
	"github.com/HammerMeetNail/fitrank/internal/stats"
)

type LeaderboardService struct {
	users   UserLookup
	friends AcceptedFriendLister
	scores  WeeklyScorer
	now     func() time.Time
	metrics *Metrics
}

func NewLeaderboardService(users UserLookup, friends AcceptedFriendLister, scores WeeklyScorer, now func() time.Time, metrics *Metrics) *LeaderboardService {
	return &LeaderboardService{
		users:   users,
		friends: friends,
		scores:  scores,
		now:     clockOrDefault(now),
		metrics: metrics,
	}
}

// GetLeaderboard ranks userID and every accepted friend by weekly score.
// Participants whose user row no longer exists are left out, including
// userID itself.
func (s *LeaderboardService) GetLeaderboard(ctx context.Context, userID uuid.UUID) (*models.Leaderboard, error) {
	start := time.Now()
	defer s.metrics.observe("leaderboard", start)

	friendIDs, err := s.friends.AcceptedFriendIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	candidates := make([]uuid.UUID, 0, len(friendIDs)+1)
	candidates = append(candidates, userID)
	candidates = append(candidates, friendIDs...)

	now := s.now()
	found := make([]*models.LeaderboardEntry, len(candidates))
	err = forEachParticipant(ctx, len(candidates), func(ctx context.Context, i int) error {
		user, err := s.users.GetByID(ctx, candidates[i])
		if errors.Is(err, ErrUserNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		score, err := s.scores.WeeklyScore(ctx, user.ID, now)
		if err != nil {
			return err
		}
		found[i] = &models.LeaderboardEntry{
			UserID:      user.ID,
			Username:    user.Username,
			WeeklyScore: score,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	entries := make([]models.LeaderboardEntry, 0, len(found))
	for _, e := range found {
		if e != nil {
			entries = append(entries, *e)
		}
	}

	ranked := stats.Rank(entries, userID)
	s.metrics.observeLeaderboardSize(len(ranked))
	return &models.Leaderboard{Entries: ranked, TotalParticipants: len(ranked)}, nil
}
