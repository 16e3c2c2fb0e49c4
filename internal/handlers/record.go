package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/HammerMeetNail/fitrank/internal/logging"
	"github.com/HammerMeetNail/fitrank/internal/models"
	"github.com/HammerMeetNail/fitrank/internal/services"
)

type RecordHandler struct {
	recordService services.RecordServiceInterface
}

func NewRecordHandler(recordService services.RecordServiceInterface) *RecordHandler {
	return &RecordHandler{recordService: recordService}
}

type CreateRecordRequest struct {
	UserID       string  `json:"user_id"`
	Date         string  `json:"date"`
	TimeOfDay    string  `json:"time_of_day"`
	Intensity    *int    `json:"intensity"`
	ExerciseType string  `json:"exercise_type"`
	Memo         *string `json:"memo"`
}

type UpdateRecordRequest struct {
	Date         *string `json:"date"`
	TimeOfDay    *string `json:"time_of_day"`
	Intensity    *int    `json:"intensity"`
	ExerciseType *string `json:"exercise_type"`
	Memo         *string `json:"memo"`
}

type RecordListResponse struct {
	Records []models.ExerciseRecord `json:"records"`
	Count   int                     `json:"count"`
}

func (h *RecordHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRecordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	required := []struct {
		field   string
		missing bool
	}{
		{"user_id", strings.TrimSpace(req.UserID) == ""},
		{"date", strings.TrimSpace(req.Date) == ""},
		{"time_of_day", strings.TrimSpace(req.TimeOfDay) == ""},
		{"intensity", req.Intensity == nil},
		{"exercise_type", strings.TrimSpace(req.ExerciseType) == ""},
	}
	for _, f := range required {
		if f.missing {
			writeError(w, http.StatusBadRequest, f.field+" is required")
			return
		}
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	if !models.IsValidIntensity(*req.Intensity) {
		writeError(w, http.StatusBadRequest, "Intensity must be between 0 and 10")
		return
	}
	date, err := models.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (YYYY-MM-DD)")
		return
	}

	params := models.CreateRecordParams{
		UserID:       userID,
		Date:         date,
		TimeOfDay:    strings.TrimSpace(req.TimeOfDay),
		Intensity:    *req.Intensity,
		ExerciseType: strings.TrimSpace(req.ExerciseType),
	}
	if req.Memo != nil {
		params.Memo = *req.Memo
	}

	record, err := h.recordService.Create(r.Context(), params)
	if errors.Is(err, services.ErrUserNotFound) {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if writeRecordValidationError(w, err) {
		return
	}
	if err != nil {
		writeInternalError(w, "create_record", err, logging.Fields{"user_id": userID.String()})
		return
	}

	writeJSON(w, http.StatusCreated, record)
}

func (h *RecordHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(w, r, "id", "user ID")
	if !ok {
		return
	}

	q := r.URL.Query()
	var filter models.RecordFilter
	if v := q.Get("start_date"); v != "" {
		d, err := models.ParseDate(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid start_date format (YYYY-MM-DD)")
			return
		}
		filter.StartDate = &d
	}
	if v := q.Get("end_date"); v != "" {
		d, err := models.ParseDate(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid end_date format (YYYY-MM-DD)")
			return
		}
		filter.EndDate = &d
	}
	filter.ExerciseType = q.Get("exercise_type")
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		filter.Limit = limit
	}

	records, err := h.recordService.List(r.Context(), userID, filter)
	if err != nil {
		writeInternalError(w, "list_records", err, logging.Fields{"user_id": userID.String()})
		return
	}

	writeJSON(w, http.StatusOK, RecordListResponse{Records: records, Count: len(records)})
}

func (h *RecordHandler) Get(w http.ResponseWriter, r *http.Request) {
	recordID, ok := pathUUID(w, r, "id", "record ID")
	if !ok {
		return
	}

	record, err := h.recordService.GetByID(r.Context(), recordID)
	if errors.Is(err, services.ErrRecordNotFound) {
		writeError(w, http.StatusNotFound, "Exercise record not found")
		return
	}
	if err != nil {
		writeInternalError(w, "get_record", err, logging.Fields{"record_id": recordID.String()})
		return
	}

	writeJSON(w, http.StatusOK, record)
}

func (h *RecordHandler) Update(w http.ResponseWriter, r *http.Request) {
	recordID, ok := pathUUID(w, r, "id", "record ID")
	if !ok {
		return
	}

	var req UpdateRecordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	params := models.UpdateRecordParams{
		TimeOfDay:    req.TimeOfDay,
		Intensity:    req.Intensity,
		ExerciseType: req.ExerciseType,
		Memo:         req.Memo,
	}
	if req.Date != nil {
		d, err := models.ParseDate(*req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid date format (YYYY-MM-DD)")
			return
		}
		params.Date = &d
	}
	if req.Intensity != nil && !models.IsValidIntensity(*req.Intensity) {
		writeError(w, http.StatusBadRequest, "Intensity must be between 0 and 10")
		return
	}

	record, err := h.recordService.Update(r.Context(), recordID, params)
	if errors.Is(err, services.ErrRecordNotFound) {
		writeError(w, http.StatusNotFound, "Exercise record not found")
		return
	}
	if writeRecordValidationError(w, err) {
		return
	}
	if err != nil {
		writeInternalError(w, "update_record", err, logging.Fields{"record_id": recordID.String()})
		return
	}

	writeJSON(w, http.StatusOK, record)
}

func (h *RecordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	recordID, ok := pathUUID(w, r, "id", "record ID")
	if !ok {
		return
	}

	err := h.recordService.Delete(r.Context(), recordID)
	if errors.Is(err, services.ErrRecordNotFound) {
		writeError(w, http.StatusNotFound, "Exercise record not found")
		return
	}
	if err != nil {
		writeInternalError(w, "delete_record", err, logging.Fields{"record_id": recordID.String()})
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Exercise record deleted"})
}

// writeRecordValidationError answers 400 for validation failures the service
// reports and tells whether it did.
func writeRecordValidationError(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, services.ErrInvalidIntensity):
		writeError(w, http.StatusBadRequest, "Intensity must be between 0 and 10")
	case errors.Is(err, services.ErrMissingField):
		writeError(w, http.StatusBadRequest, "Missing required field")
	default:
		return false
	}
	return true
}
