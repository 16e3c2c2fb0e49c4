package models

import "github.com/google/uuid"

type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// DailyTrend is one calendar day of the trailing seven-day trend.
type DailyTrend struct {
	Date             string  `json:"date"`
	AverageIntensity float64 `json:"average_intensity"`
	WorkoutCount     int     `json:"workout_count"`
}

// StatisticsReport is always fully shaped: maps are non-nil and DailyTrends
// has seven entries even when the user has no records.
type StatisticsReport struct {
	Period                   Period         `json:"period"`
	TotalWorkouts            int            `json:"total_workouts"`
	AverageIntensity         float64        `json:"average_intensity"`
	MaxIntensity             int            `json:"max_intensity"`
	TotalIntensityScore      int            `json:"total_intensity_score"`
	ConsistencyScore         float64        `json:"consistency_score"`
	TimeOfDayDistribution    map[string]int `json:"time_of_day_distribution"`
	ExerciseTypeDistribution map[string]int `json:"exercise_type_distribution"`
	DailyTrends              []DailyTrend   `json:"daily_trends"`
}

type ComparisonStats struct {
	TotalWorkouts    int     `json:"total_workouts"`
	AverageIntensity float64 `json:"average_intensity"`
	TotalScore       int     `json:"total_score"`
}

type ComparisonPoint struct {
	Date            string  `json:"date"`
	UserIntensity   float64 `json:"user_intensity"`
	FriendIntensity float64 `json:"friend_intensity"`
}

type ComparisonReport struct {
	Period         Period            `json:"period"`
	UserID         uuid.UUID         `json:"user_id"`
	FriendID       uuid.UUID         `json:"friend_id"`
	UserStats      ComparisonStats   `json:"user_stats"`
	FriendStats    ComparisonStats   `json:"friend_stats"`
	ComparisonData []ComparisonPoint `json:"comparison_data"`
}

type PopularExercise struct {
	ExerciseType string `json:"exercise_type"`
	Count        int    `json:"count"`
}

type GlobalStatistics struct {
	Period              string            `json:"period"`
	TotalWorkoutRecords int               `json:"total_workout_records"`
	ActiveUsers         int               `json:"active_users"`
	AverageIntensity    float64           `json:"average_intensity"`
	PopularExercises    []PopularExercise `json:"popular_exercises"`
}
