package models

import "github.com/google/uuid"

type LeaderboardEntry struct {
	UserID        uuid.UUID `json:"user_id"`
	Username      string    `json:"username"`
	WeeklyScore   int       `json:"weekly_score"`
	Rank          int       `json:"rank"`
	IsCurrentUser bool      `json:"is_current_user"`
}

type Leaderboard struct {
	Entries           []LeaderboardEntry `json:"leaderboard"`
	TotalParticipants int                `json:"total_participants"`
}
