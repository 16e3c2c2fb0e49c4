package stats

import (
	"time"

	"github.com/HammerMeetNail/fitrank/internal/models"
)

// Summarize is the per-party summary used by friend comparisons.
func Summarize(records []models.ExerciseRecord) models.ComparisonStats {
	return models.ComparisonStats{
		TotalWorkouts:    len(records),
		AverageIntensity: AverageIntensity(records),
		TotalScore:       SumIntensity(records),
	}
}

// CompareSeries aligns two record sets by calendar Date over the trailing days
// ending on now, oldest first. Days without records show 0.
func CompareSeries(user, friend []models.ExerciseRecord, days int, now time.Time) []models.ComparisonPoint {
	userByDate := GroupByDate(user)
	friendByDate := GroupByDate(friend)

	keys := TrailingDays(now, days)
	points := make([]models.ComparisonPoint, len(keys))
	for i, day := range keys {
		points[i] = models.ComparisonPoint{
			Date:            day,
			UserIntensity:   AverageIntensity(userByDate[day]),
			FriendIntensity: AverageIntensity(friendByDate[day]),
		}
	}
	return points
}
