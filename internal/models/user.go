package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	UsernameMinLength = 3
	UsernameMaxLength = 50
)

type User struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateUserParams struct {
	Username string
	Email    string
}
