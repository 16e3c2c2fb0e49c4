package models

import (
	"bytes"
	"time"

	"github.com/google/uuid"
)

type FriendshipStatus string

const (
	FriendshipStatusPending  FriendshipStatus = "pending"
	FriendshipStatusAccepted FriendshipStatus = "accepted"
	FriendshipStatusBlocked  FriendshipStatus = "blocked"
)

type Friendship struct {
	ID        uuid.UUID        `json:"id"`
	UserID    uuid.UUID        `json:"user_id"`
	FriendID  uuid.UUID        `json:"friend_id"`
	Status    FriendshipStatus `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// OtherParty returns the endpoint of the friendship that is not userID.
func (f *Friendship) OtherParty(userID uuid.UUID) uuid.UUID {
	if f.UserID == userID {
		return f.FriendID
	}
	return f.UserID
}

// FriendPair is an unordered pair of users. Low always sorts before High so
// (a, b) and (b, a) produce the same value.
type FriendPair struct {
	Low  uuid.UUID
	High uuid.UUID
}

func NewFriendPair(a, b uuid.UUID) FriendPair {
	if bytes.Compare(a[:], b[:]) > 0 {
		a, b = b, a
	}
	return FriendPair{Low: a, High: b}
}

// FriendWithScore is an accepted friend as shown in a user's friend list.
type FriendWithScore struct {
	ID              uuid.UUID `json:"id"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	WeeklyScore     int       `json:"weekly_score"`
	FriendshipSince time.Time `json:"friendship_since"`
}
