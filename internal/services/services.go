package services

import "time"

// Services is the wired service graph shared by the HTTP server and the
// admin CLI.
type Services struct {
	Users       *UserService
	Records     *RecordService
	Scores      *ScoreService
	Friends     *FriendService
	Leaderboard *LeaderboardService
	Statistics  *StatisticsService
}

// New wires every service over db. now supplies the reference instant for
// windows and may be nil. metrics may be nil.
func New(db DB, now func() time.Time, metrics *Metrics) *Services {
	now = clockOrDefault(now)

	users := NewUserService(db)
	records := NewRecordService(db)
	scores := NewScoreService(db)
	friends := NewFriendService(db, users, scores, now)

	return &Services{
		Users:       users,
		Records:     records,
		Scores:      scores,
		Friends:     friends,
		Leaderboard: NewLeaderboardService(users, friends, scores, now, metrics),
		Statistics:  NewStatisticsService(db, records, now, metrics),
	}
}
