package worker

import (
	"context"

	"github.com/sunjohabdurazck/EcoHabit-sub001/internal/models"
)

type JobType string

const (
	Chat JobType = "chat"
	Stop JobType = "stop"
)

// Job is one inbound message bound for a session. Result is buffered so a
// worker never blocks handing the outcome back.
type Job struct {
	Type      JobType
	Ctx       context.Context
	SessionID string
	Text      string
	Profile   *models.Profile
	Result    chan Result
}

type Result struct {
	Reply *models.Message
	Err   error
}

// Handler runs the per-message conversation pipeline.
type Handler interface {
	HandleMessage(ctx context.Context, sessionID, text string, prof *models.Profile) (*models.Message, error)
}
