package stats

import (
	"sort"

	"github.com/google/uuid"

	"github.com/HammerMeetNail/fitrank/internal/models"
)

// Rank orders entries by weekly score, highest first, and assigns 1-based
// ranks. Equal scores keep their input order. Exactly the entries whose
// UserID is currentUser are flagged as the current user.
func Rank(entries []models.LeaderboardEntry, currentUser uuid.UUID) []models.LeaderboardEntry {
	ranked := make([]models.LeaderboardEntry, len(entries))
	copy(ranked, entries)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].WeeklyScore > ranked[j].WeeklyScore
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
		ranked[i].IsCurrentUser = ranked[i].UserID == currentUser
	}
	return ranked
}
