package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	DateLayout   = "2006-01-02"
	MinIntensity = 0
	MaxIntensity = 10
)

// ExerciseRecord is a single logged workout. Date is the calendar day the user
// says the workout happened; CreatedAt is when the row was written. Score
// windows filter on CreatedAt, daily trends bucket on Date.
type ExerciseRecord struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	Date         time.Time `json:"-"`
	TimeOfDay    string    `json:"time_of_day"`
	Intensity    int       `json:"intensity"`
	ExerciseType string    `json:"exercise_type"`
	Memo         string    `json:"memo"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DateKey returns the record's calendar date as YYYY-MM-DD.
func (r ExerciseRecord) DateKey() string {
	return r.Date.Format(DateLayout)
}

func (r ExerciseRecord) MarshalJSON() ([]byte, error) {
	type recordAlias ExerciseRecord
	return json.Marshal(struct {
		recordAlias
		Date string `json:"date"`
	}{
		recordAlias: recordAlias(r),
		Date:        r.DateKey(),
	})
}

// IsValidIntensity reports whether v is within the 0-10 scale.
func IsValidIntensity(v int) bool {
	return v >= MinIntensity && v <= MaxIntensity
}

// ParseDate parses a YYYY-MM-DD calendar date.
var ErrInvalidDate = errors.New("invalid date")

// ParseDate parses a YYYY-MM-DD calendar date as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: expected YYYY-MM-DD", ErrInvalidDate, s)
	}
	return d, nil
}

type CreateRecordParams struct {
	UserID       uuid.UUID
	Date         time.Time
	TimeOfDay    string
	Intensity    int
	ExerciseType string
	Memo         string
}

type UpdateRecordParams struct {
	Date         *time.Time
	TimeOfDay    *string
	Intensity    *int
	ExerciseType *string
	Memo         *string
}

// RecordFilter narrows a user's record listing. StartDate and EndDate are
// inclusive bounds on Date.
type RecordFilter struct {
	StartDate    *time.Time
	EndDate      *time.Time
	ExerciseType string
	Limit        int
}
