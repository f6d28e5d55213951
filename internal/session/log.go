package session

import (
	"sync"
	"time"

	"github.com/sunjohabdurazck/EcoHabit-sub001/internal/models"
)

// DefaultCapacity bounds how many messages a conversation retains.
const DefaultCapacity = 1000

// Log is an append-only, FIFO-bounded conversation history. Appends on one
// log are serialized by its own mutex; distinct logs never contend.
type Log struct {
	id        string
	userID    int64
	capacity  int
	createdAt time.Time

	mu       sync.Mutex
	messages []*models.Message
}

// NewLog creates an empty log. A non-positive capacity selects
// DefaultCapacity.
func NewLog(id string, userID int64, capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Log{
		id:        id,
		userID:    userID,
		capacity:  capacity,
		createdAt: time.Now().UTC(),
	}
}

func (l *Log) ID() string    { return l.id }
func (l *Log) UserID() int64 { return l.userID }

// Append adds a message to the tail. When the log exceeds its capacity the
// oldest messages are trimmed in one slice operation.
func (l *Log) Append(msg *models.Message) {
	if msg == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	l.messages = append(l.messages, msg)
	if overflow := len(l.messages) - l.capacity; overflow > 0 {
		trimmed := make([]*models.Message, l.capacity)
		copy(trimmed, l.messages[overflow:])
		l.messages = trimmed
	}
}

// History returns a snapshot of the retained messages in insertion order.
func (l *Log) History() []*models.Message {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*models.Message, len(l.messages))
	copy(out, l.messages)
	return out
}

// Len reports the number of retained messages.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.messages)
}

// LastActivity is the timestamp of the newest message, or the zero time for
// an empty log.
func (l *Log) LastActivity() time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.messages) == 0 {
		return time.Time{}
	}
	return l.messages[len(l.messages)-1].CreatedAt
}

// SetFlags updates the read/favorited flags of the named message and
// reports whether it was found.
func (l *Log) SetFlags(messageID string, read, favorited bool) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, msg := range l.messages {
		if msg.ID == messageID {
			msg.Read = read
			msg.Favorited = favorited
			return true
		}
	}
	return false
}

// CreatedAt is when the log was registered.
func (l *Log) CreatedAt() time.Time { return l.createdAt }
