package models

import "time"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

type Category string

const (
	CategoryQuestion Category = "question"
	CategoryTip      Category = "tip"
	CategoryAnalysis Category = "analysis"
	CategoryGeneral  Category = "general"
)

// Message is a single conversation entry. Intent, confidence, category and
// entities are stamped once at classification time; only the Read and
// Favorited flags may change afterwards.
type Message struct {
	ID         string    `json:"id"`
	SessionID  string    `json:"session_id"`
	Role       Role      `json:"role"`
	Content    string    `json:"content"`
	Intent     string    `json:"intent,omitempty"`
	Confidence float64   `json:"confidence"`
	Category   Category  `json:"category"`
	Entities   []string  `json:"entities,omitempty"`
	Read       bool      `json:"read"`
	Favorited  bool      `json:"favorited"`
	Language   string    `json:"language"`
	CreatedAt  time.Time `json:"created_at"`
}
