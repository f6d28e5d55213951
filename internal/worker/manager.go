package worker

import (
	"context"
	"errors"
	"time"

	"github.com/sunjohabdurazck/EcoHabit-sub001/internal/models"
)

// ErrDispatcherBusy is returned when the inbound queue is saturated.
var ErrDispatcherBusy = errors.New("dispatcher queue full")

type DispatcherConfig struct {
	MinWorkers        int
	MaxWorkers        int
	QueueSize         int
	WorkerIdleTimeout time.Duration
}

const (
	defaultMinWorkers = 2
	defaultMaxWorkers = 16
	defaultQueueSize  = 64
)

// Manager is the synchronous facade over the dispatcher: callers submit a
// message and block until the per-session pipeline produced the reply.
type Manager struct {
	dispatcher *Dispatcher
}

func NewManager(handler Handler, cfg DispatcherConfig) *Manager {
	if cfg.MinWorkers <= 0 {
		cfg.MinWorkers = defaultMinWorkers
	}
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = defaultMaxWorkers
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = defaultQueueSize
	}
	return &Manager{
		dispatcher: NewDispatcher(cfg.MinWorkers, cfg.MaxWorkers, cfg.QueueSize, handler, cfg.WorkerIdleTimeout),
	}
}

// Submit queues one message for its session and waits for the reply.
func (m *Manager) Submit(ctx context.Context, sessionID, text string, prof *models.Profile) (*models.Message, error) {
	result := make(chan Result, 1)
	job := Job{
		Type:      Chat,
		Ctx:       ctx,
		SessionID: sessionID,
		Text:      text,
		Profile:   prof,
		Result:    result,
	}
	select {
	case m.dispatcher.JobQueue <- job:
	default:
		return nil, ErrDispatcherBusy
	}

	select {
	case res := <-result:
		return res.Reply, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// CancelSession drops any queued work for a session that no longer exists.
func (m *Manager) CancelSession(sessionID string) {
	m.dispatcher.CancelSession(sessionID)
}
