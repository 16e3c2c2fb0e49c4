package handlers

import (
	"net/http"

	"github.com/HammerMeetNail/fitrank/internal/logging"
	"github.com/HammerMeetNail/fitrank/internal/models"
	"github.com/HammerMeetNail/fitrank/internal/services"
)

type StatisticsHandler struct {
	statsService services.StatisticsServiceInterface
}

func NewStatisticsHandler(statsService services.StatisticsServiceInterface) *StatisticsHandler {
	return &StatisticsHandler{statsService: statsService}
}

func periodParam(r *http.Request) models.Period {
	if p := r.URL.Query().Get("period"); p != "" {
		return models.Period(p)
	}
	return models.PeriodWeek
}

func (h *StatisticsHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(w, r, "id", "user ID")
	if !ok {
		return
	}

	report, err := h.statsService.GetStatistics(r.Context(), userID, periodParam(r))
	if writeValidationError(w, err) {
		return
	}
	if err != nil {
		writeInternalError(w, "get_statistics", err, logging.Fields{"user_id": userID.String()})
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func (h *StatisticsHandler) Compare(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(w, r, "id", "user ID")
	if !ok {
		return
	}
	friendID, ok := pathUUID(w, r, "friendID", "friend ID")
	if !ok {
		return
	}

	report, err := h.statsService.Compare(r.Context(), userID, friendID, periodParam(r))
	if writeValidationError(w, err) {
		return
	}
	if err != nil {
		writeInternalError(w, "compare", err, logging.Fields{
			"user_id":   userID.String(),
			"friend_id": friendID.String(),
		})
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func (h *StatisticsHandler) Global(w http.ResponseWriter, r *http.Request) {
	global, err := h.statsService.GetGlobalStatistics(r.Context())
	if err != nil {
		writeInternalError(w, "global_statistics", err, nil)
		return
	}
	writeJSON(w, http.StatusOK, global)
}
