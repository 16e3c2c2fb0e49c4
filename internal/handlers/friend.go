package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/HammerMeetNail/fitrank/internal/logging"
	"github.com/HammerMeetNail/fitrank/internal/models"
	"github.com/HammerMeetNail/fitrank/internal/services"
)

type FriendHandler struct {
	friendService      services.FriendServiceInterface
	leaderboardService services.LeaderboardServiceInterface
}

func NewFriendHandler(friendService services.FriendServiceInterface, leaderboardService services.LeaderboardServiceInterface) *FriendHandler {
	return &FriendHandler{
		friendService:      friendService,
		leaderboardService: leaderboardService,
	}
}

type SendRequestRequest struct {
	UserID         string `json:"user_id"`
	FriendUsername string `json:"friend_username"`
}

type AcceptRequestRequest struct {
	FriendshipID string `json:"friendship_id"`
}

type RemoveFriendRequest struct {
	UserID   string `json:"user_id"`
	FriendID string `json:"friend_id"`
}

type FriendListResponse struct {
	Friends []models.FriendWithScore `json:"friends"`
	Count   int                      `json:"count"`
}

func (h *FriendHandler) SendRequest(w http.ResponseWriter, r *http.Request) {
	var req SendRequestRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	if strings.TrimSpace(req.FriendUsername) == "" {
		writeError(w, http.StatusBadRequest, "friend_username is required")
		return
	}

	friendship, err := h.friendService.SendRequest(r.Context(), userID, req.FriendUsername)
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "User not found")
		return
	case errors.Is(err, services.ErrCannotFriendSelf):
		writeError(w, http.StatusBadRequest, "Cannot send friend request to yourself")
		return
	case errors.Is(err, services.ErrFriendshipExists):
		writeError(w, http.StatusConflict, "Friend request already exists")
		return
	case err != nil:
		writeInternalError(w, "send_friend_request", err, logging.Fields{"user_id": userID.String()})
		return
	}

	writeJSON(w, http.StatusCreated, friendship)
}

func (h *FriendHandler) AcceptRequest(w http.ResponseWriter, r *http.Request) {
	var req AcceptRequestRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	friendshipID, err := uuid.Parse(req.FriendshipID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid friendship ID")
		return
	}

	friendship, err := h.friendService.AcceptRequest(r.Context(), friendshipID)
	switch {
	case errors.Is(err, services.ErrFriendshipNotFound):
		writeError(w, http.StatusNotFound, "Friend request not found")
		return
	case errors.Is(err, services.ErrFriendshipNotPending):
		writeError(w, http.StatusBadRequest, "Friend request is not pending")
		return
	case err != nil:
		writeInternalError(w, "accept_friend_request", err, logging.Fields{"friendship_id": friendshipID.String()})
		return
	}

	writeJSON(w, http.StatusOK, friendship)
}

func (h *FriendHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(w, r, "id", "user ID")
	if !ok {
		return
	}

	friends, err := h.friendService.ListFriends(r.Context(), userID)
	if err != nil {
		writeInternalError(w, "list_friends", err, logging.Fields{"user_id": userID.String()})
		return
	}

	writeJSON(w, http.StatusOK, FriendListResponse{Friends: friends, Count: len(friends)})
}

func (h *FriendHandler) Remove(w http.ResponseWriter, r *http.Request) {
	var req RemoveFriendRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	friendID, err := uuid.Parse(req.FriendID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid friend ID")
		return
	}

	err = h.friendService.RemoveFriend(r.Context(), userID, friendID)
	if errors.Is(err, services.ErrFriendshipNotFound) {
		writeError(w, http.StatusNotFound, "Friendship not found")
		return
	}
	if err != nil {
		writeInternalError(w, "remove_friend", err, logging.Fields{"user_id": userID.String()})
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Friend removed"})
}

func (h *FriendHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(w, r, "id", "user ID")
	if !ok {
		return
	}

	board, err := h.leaderboardService.GetLeaderboard(r.Context(), userID)
	if err != nil {
		writeInternalError(w, "leaderboard", err, logging.Fields{"user_id": userID.String()})
		return
	}

	writeJSON(w, http.StatusOK, board)
}
