package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/HammerMeetNail/fitrank/internal/models"
)

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

// renderLeaderboard prints one line per entry. The leader is yellow and the
// requesting user is bold green.
func renderLeaderboard(w io.Writer, board *models.Leaderboard) {
	if len(board.Entries) == 0 {
		fmt.Fprintln(w, "No participants.")
		return
	}

	faint := color.New(color.Faint)
	leader := color.New(color.FgYellow)
	self := color.New(color.FgGreen, color.Bold)

	for _, e := range board.Entries {
		line := fmt.Sprintf("%3d  %s %5d", e.Rank, padRight(e.Username, 20), e.WeeklyScore)
		switch {
		case e.IsCurrentUser:
			line = self.Sprint(line + "  (you)")
		case e.Rank == 1:
			line = leader.Sprint(line)
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w, faint.Sprintf("%d participants", board.TotalParticipants))
}

func renderStatistics(w io.Writer, username string, report *models.StatisticsReport) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	fmt.Fprintln(w, bold.Sprintf("%s, last %s", username, report.Period))
	fmt.Fprintf(w, "  workouts      %d\n", report.TotalWorkouts)
	fmt.Fprintf(w, "  total score   %d\n", report.TotalIntensityScore)
	fmt.Fprintf(w, "  avg intensity %.1f\n", report.AverageIntensity)
	fmt.Fprintf(w, "  max intensity %d\n", report.MaxIntensity)
	if report.Period == models.PeriodWeek {
		fmt.Fprintf(w, "  consistency   %.1f%%\n", report.ConsistencyScore)
	}

	renderDistribution(w, "time of day", report.TimeOfDayDistribution)
	renderDistribution(w, "exercise type", report.ExerciseTypeDistribution)

	fmt.Fprintln(w, faint.Sprint("  last 7 days"))
	for _, d := range report.DailyTrends {
		fmt.Fprintf(w, "    %s  %2d workouts  avg %.1f\n", d.Date, d.WorkoutCount, d.AverageIntensity)
	}
}

func renderDistribution(w io.Writer, title string, dist map[string]int) {
	if len(dist) == 0 {
		return
	}
	keys := make([]string, 0, len(dist))
	for k := range dist {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Fprintln(w, color.New(color.Faint).Sprintf("  %s", title))
	for _, k := range keys {
		fmt.Fprintf(w, "    %s %d\n", padRight(k, 14), dist[k])
	}
}

func renderComparison(w io.Writer, userName, friendName string, report *models.ComparisonReport) {
	bold := color.New(color.Bold)
	ahead := color.New(color.FgGreen)

	fmt.Fprintln(w, bold.Sprintf("%s vs %s, last %s", userName, friendName, report.Period))
	fmt.Fprintf(w, "  %s %8s %8s\n", padRight("", 14), truncate(userName, 8), truncate(friendName, 8))
	fmt.Fprintf(w, "  %s %8d %8d\n", padRight("workouts", 14), report.UserStats.TotalWorkouts, report.FriendStats.TotalWorkouts)
	fmt.Fprintf(w, "  %s %8d %8d\n", padRight("total score", 14), report.UserStats.TotalScore, report.FriendStats.TotalScore)
	fmt.Fprintf(w, "  %s %8.1f %8.1f\n", padRight("avg intensity", 14), report.UserStats.AverageIntensity, report.FriendStats.AverageIntensity)

	for _, p := range report.ComparisonData {
		line := fmt.Sprintf("    %s %8.1f %8.1f", p.Date, p.UserIntensity, p.FriendIntensity)
		if p.UserIntensity > p.FriendIntensity {
			line = ahead.Sprint(line)
		}
		fmt.Fprintln(w, line)
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-1] + "~"
}
