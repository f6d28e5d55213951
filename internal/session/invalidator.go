package session

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"

	"github.com/sunjohabdurazck/EcoHabit-sub001/internal/redis"
)

const invalidateChannel = "conversation:invalidate"

type invalidateEvent struct {
	SessionID string `json:"session_id"`
}

// Invalidator broadcasts session removals over redis pub/sub so that other
// instances drop their cached logs. A nil Invalidator (or one built over a
// nil client) is a no-op, which keeps single-instance deployments free of a
// redis requirement.
type Invalidator struct {
	client *redis.Client
	logger *logrus.Logger
}

func NewInvalidator(client *redis.Client, logger *logrus.Logger) *Invalidator {
	if logger == nil {
		logger = logrus.New()
	}
	return &Invalidator{client: client, logger: logger}
}

// Publish announces that sessionID is gone.
func (i *Invalidator) Publish(ctx context.Context, sessionID string) {
	if i == nil || i.client == nil {
		return
	}
	payload, err := json.Marshal(invalidateEvent{SessionID: sessionID})
	if err != nil {
		return
	}
	if err := i.client.Publish(ctx, invalidateChannel, payload); err != nil {
		i.logger.WithError(err).Warn("publish session invalidation failed")
	}
}

// Listen subscribes to invalidation events and evicts the named sessions
// from the local store. It returns immediately; the subscription runs until
// the context is cancelled.
func (i *Invalidator) Listen(ctx context.Context, store Store) {
	if i == nil || i.client == nil || store == nil {
		return
	}
	raw := i.client.Raw()
	if raw == nil {
		return
	}
	go func() {
		pubsub := raw.Subscribe(ctx, invalidateChannel)
		defer pubsub.Close()
		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var event invalidateEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					i.logger.WithError(err).Warn("decode session invalidation failed")
					continue
				}
				store.Delete(event.SessionID)
			}
		}
	}()
}
