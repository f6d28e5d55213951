package models

import "time"

// Session groups a sequence of conversation messages for one user.
// The ID is opaque and globally unique.
type Session struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
