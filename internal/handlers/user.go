package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/HammerMeetNail/fitrank/internal/logging"
	"github.com/HammerMeetNail/fitrank/internal/models"
	"github.com/HammerMeetNail/fitrank/internal/services"
)

type UserHandler struct {
	userService  services.UserServiceInterface
	scoreService services.ScoreServiceInterface
	now          func() time.Time
}

func NewUserHandler(userService services.UserServiceInterface, scoreService services.ScoreServiceInterface, now func() time.Time) *UserHandler {
	if now == nil {
		now = time.Now
	}
	return &UserHandler{userService: userService, scoreService: scoreService, now: now}
}

type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type WeeklyScoreResponse struct {
	UserID      uuid.UUID `json:"user_id"`
	WeeklyScore int       `json:"weekly_score"`
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.userService.Create(r.Context(), models.CreateUserParams{
		Username: req.Username,
		Email:    req.Email,
	})
	switch {
	case errors.Is(err, services.ErrInvalidUsername):
		writeError(w, http.StatusBadRequest, "Username must be between 3 and 50 characters")
		return
	case errors.Is(err, services.ErrInvalidEmail):
		writeError(w, http.StatusBadRequest, "Email is required")
		return
	case errors.Is(err, services.ErrUserExists):
		writeError(w, http.StatusConflict, "Username or email already exists")
		return
	case err != nil:
		writeInternalError(w, "create_user", err, nil)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(w, r, "id", "user ID")
	if !ok {
		return
	}

	user, err := h.userService.GetByID(r.Context(), userID)
	if errors.Is(err, services.ErrUserNotFound) {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		writeInternalError(w, "get_user", err, logging.Fields{"user_id": userID.String()})
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// WeeklyScore answers with the user's score over the last seven days. An
// unknown user scores 0.
func (h *UserHandler) WeeklyScore(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(w, r, "id", "user ID")
	if !ok {
		return
	}

	score, err := h.scoreService.WeeklyScore(r.Context(), userID, h.now())
	if err != nil {
		writeInternalError(w, "weekly_score", err, logging.Fields{"user_id": userID.String()})
		return
	}

	writeJSON(w, http.StatusOK, WeeklyScoreResponse{UserID: userID, WeeklyScore: score})
}
