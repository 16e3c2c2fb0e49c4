// Package stats holds the score, statistics, ranking and comparison math.
// Nothing in here touches the store or reads the wall clock; callers pass the
// records and the reference time.
package stats

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/HammerMeetNail/fitrank/internal/models"
)

const (
	// WeeklyScoreDays is the look-back used for friend and leaderboard scores.
	WeeklyScoreDays = 7
	// TrendDays is the fixed length of the daily trend series.
	TrendDays = 7

	monthDays = 30
	yearDays  = 365
)

var (
	ErrInvalidPeriod           = errors.New("invalid period")
	ErrInvalidComparisonPeriod = errors.New("invalid comparison period")
)

// StatisticsPeriods are the periods accepted by ResolveWindow.
var StatisticsPeriods = []models.Period{models.PeriodDay, models.PeriodWeek, models.PeriodMonth, models.PeriodYear}

// ComparisonPeriods are the periods accepted by ResolveComparisonWindow.
var ComparisonPeriods = []models.Period{models.PeriodWeek, models.PeriodMonth}

// ValidationError reports a period outside the accepted set.
type ValidationError struct {
	Value   string
	Allowed []models.Period
	Err     error
}

func (e *ValidationError) Error() string {
	allowed := make([]string, len(e.Allowed))
	for i, p := range e.Allowed {
		allowed[i] = string(p)
	}
	return fmt.Sprintf("%v %q (allowed: %s)", e.Err, e.Value, strings.Join(allowed, ", "))
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Window is a time range over created_at. End is informational only: store
// queries filter on created_at >= Start and apply no upper bound.
type Window struct {
	Start time.Time
	End   time.Time
}

// ResolveWindow maps a statistics period to its window ending at now.
func ResolveWindow(period models.Period, now time.Time) (Window, error) {
	switch period {
	case models.PeriodDay:
		return Window{Start: StartOfDay(now), End: now}, nil
	case models.PeriodWeek:
		return Window{Start: now.AddDate(0, 0, -WeeklyScoreDays), End: now}, nil
	case models.PeriodMonth:
		return Window{Start: now.AddDate(0, 0, -monthDays), End: now}, nil
	case models.PeriodYear:
		return Window{Start: now.AddDate(0, 0, -yearDays), End: now}, nil
	}
	return Window{}, &ValidationError{Value: string(period), Allowed: StatisticsPeriods, Err: ErrInvalidPeriod}
}

// ResolveComparisonWindow is ResolveWindow restricted to week and month. It
// also returns the number of days in the comparison series.
func ResolveComparisonWindow(period models.Period, now time.Time) (Window, int, error) {
	switch period {
	case models.PeriodWeek:
		return Window{Start: now.AddDate(0, 0, -WeeklyScoreDays), End: now}, WeeklyScoreDays, nil
	case models.PeriodMonth:
		return Window{Start: now.AddDate(0, 0, -monthDays), End: now}, monthDays, nil
	}
	return Window{}, 0, &ValidationError{Value: string(period), Allowed: ComparisonPeriods, Err: ErrInvalidComparisonPeriod}
}

// WeeklyScoreStart is the created_at lower bound used for weekly scores.
func WeeklyScoreStart(now time.Time) time.Time {
	return now.AddDate(0, 0, -WeeklyScoreDays)
}

// StartOfDay truncates t to midnight in t's own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// TrailingDays returns n YYYY-MM-DD keys ending with now's calendar day,
// oldest first.
func TrailingDays(now time.Time, n int) []string {
	days := make([]string, n)
	for i := 0; i < n; i++ {
		days[i] = now.AddDate(0, 0, -(n - 1 - i)).Format(models.DateLayout)
	}
	return days
}
