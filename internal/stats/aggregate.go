package stats

import (
	"strconv"
	"time"

	"github.com/HammerMeetNail/fitrank/internal/models"
)

// Round1 rounds to one decimal place. Rounding is applied to the exact binary
// value of x, so only exactly representable halves like 0.25 go to even;
// 0.15 is stored just below the half and rounds down.
func Round1(x float64) float64 {
	v, _ := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 1, 64), 64)
	return v
}

// SumIntensity is the score of a record set. An empty set scores 0.
func SumIntensity(records []models.ExerciseRecord) int {
	total := 0
	for _, r := range records {
		total += r.Intensity
	}
	return total
}

// AverageIntensity is the rounded mean intensity, or 0 for an empty set.
func AverageIntensity(records []models.ExerciseRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	return Round1(float64(SumIntensity(records)) / float64(len(records)))
}

func maxIntensity(records []models.ExerciseRecord) int {
	highest := 0
	for i, r := range records {
		if i == 0 || r.Intensity > highest {
			highest = r.Intensity
		}
	}
	return highest
}

// ConsistencyScore is the share of the week on which the user trained, as a
// percentage. It is only meaningful for the weekly period; every other period
// reports 0.
func ConsistencyScore(period models.Period, records []models.ExerciseRecord) float64 {
	if period != models.PeriodWeek || len(records) == 0 {
		return 0
	}
	days := make(map[string]struct{}, len(records))
	for _, r := range records {
		days[r.DateKey()] = struct{}{}
	}
	return Round1(float64(len(days)) / float64(WeeklyScoreDays) * 100)
}

// Distribution counts records per key. The result is never nil.
func Distribution(records []models.ExerciseRecord, key func(models.ExerciseRecord) string) map[string]int {
	counts := make(map[string]int)
	for _, r := range records {
		counts[key(r)]++
	}
	return counts
}

// GroupByDate buckets records by their calendar date.
func GroupByDate(records []models.ExerciseRecord) map[string][]models.ExerciseRecord {
	byDate := make(map[string][]models.ExerciseRecord)
	for _, r := range records {
		k := r.DateKey()
		byDate[k] = append(byDate[k], r)
	}
	return byDate
}

// DailyTrends returns the trailing seven calendar days ending on now, bucketed
// by record Date regardless of which period the records were fetched for.
func DailyTrends(records []models.ExerciseRecord, now time.Time) []models.DailyTrend {
	byDate := GroupByDate(records)
	days := TrailingDays(now, TrendDays)

	trends := make([]models.DailyTrend, len(days))
	for i, day := range days {
		bucket := byDate[day]
		trends[i] = models.DailyTrend{
			Date:             day,
			AverageIntensity: AverageIntensity(bucket),
			WorkoutCount:     len(bucket),
		}
	}
	return trends
}

// BuildReport computes the statistics report for records already filtered to
// the period's window. An empty record set yields the zero-shaped report.
func BuildReport(period models.Period, records []models.ExerciseRecord, now time.Time) *models.StatisticsReport {
	return &models.StatisticsReport{
		Period:                   period,
		TotalWorkouts:            len(records),
		AverageIntensity:         AverageIntensity(records),
		MaxIntensity:             maxIntensity(records),
		TotalIntensityScore:      SumIntensity(records),
		ConsistencyScore:         ConsistencyScore(period, records),
		TimeOfDayDistribution:    Distribution(records, func(r models.ExerciseRecord) string { return r.TimeOfDay }),
		ExerciseTypeDistribution: Distribution(records, func(r models.ExerciseRecord) string { return r.ExerciseType }),
		DailyTrends:              DailyTrends(records, now),
	}
}
