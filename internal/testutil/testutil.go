// Package testutil provides record fixtures and HTTP helpers shared by
// package tests.
package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/HammerMeetNail/fitrank/internal/models"
)

// Now is the reference instant fixtures are positioned against.
var Now = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

// Day returns midnight UTC n calendar days before Now.
func Day(daysAgo int) time.Time {
	y, m, d := Now.Date()
	return time.Date(y, m, d-daysAgo, 0, 0, 0, 0, time.UTC)
}

type RecordOption func(*models.ExerciseRecord)

// DaysAgo places the record's calendar date and creation time n days
// before Now. Creation lands an hour earlier than the same clock time so
// the record falls inside an n-day trailing window.
func DaysAgo(n int) RecordOption {
	return func(r *models.ExerciseRecord) {
		r.Date = Day(n)
		r.CreatedAt = Now.Add(-time.Duration(n)*24*time.Hour - time.Hour)
	}
}

func CreatedAt(t time.Time) RecordOption {
	return func(r *models.ExerciseRecord) { r.CreatedAt = t }
}

func OnDate(date time.Time) RecordOption {
	return func(r *models.ExerciseRecord) { r.Date = date }
}

func TimeOfDay(slot string) RecordOption {
	return func(r *models.ExerciseRecord) { r.TimeOfDay = slot }
}

func ExerciseType(name string) RecordOption {
	return func(r *models.ExerciseRecord) { r.ExerciseType = name }
}

// NewRecord builds a morning running record dated today and created an
// hour before Now, then applies opts.
func NewRecord(userID uuid.UUID, intensity int, opts ...RecordOption) models.ExerciseRecord {
	r := models.ExerciseRecord{
		ID:           uuid.New(),
		UserID:       userID,
		Date:         Day(0),
		TimeOfDay:    "morning",
		Intensity:    intensity,
		ExerciseType: "running",
		CreatedAt:    Now.Add(-time.Hour),
	}
	r.UpdatedAt = r.CreatedAt
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// AssertStatusCode checks if the response has the expected status code.
func AssertStatusCode(t *testing.T, rr *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if rr.Code != expected {
		t.Errorf("expected status %d, got %d. Body: %s", expected, rr.Code, rr.Body.String())
	}
}

// AssertJSONContains checks if the JSON response contains expected key-value pairs.
func AssertJSONContains(t *testing.T, body []byte, key string, expected interface{}) {
	t.Helper()
	result := ParseJSONResponse(t, body)
	if result[key] != expected {
		t.Errorf("expected %s to be %v, got %v", key, expected, result[key])
	}
}

// NewTestRequest creates a new HTTP request for testing.
func NewTestRequest(method, path string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// NewTestRequestWithJSON creates a new HTTP request with JSON body.
func NewTestRequestWithJSON(t *testing.T, method, path string, data interface{}) *http.Request {
	t.Helper()
	body, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("failed to marshal JSON: %v", err)
	}
	return NewTestRequest(method, path, strings.NewReader(string(body)))
}

// ParseJSONResponse parses a JSON response body into a map.
func ParseJSONResponse(t *testing.T, body []byte) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v", err)
	}
	return result
}
