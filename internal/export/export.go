package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/sunjohabdurazck/EcoHabit-sub001/internal/models"
)

// Sink consumes a session's ordered message history and writes it in some
// textual format.
type Sink interface {
	Export(w io.Writer, messages []*models.Message) error
}

type exportedMessage struct {
	Timestamp time.Time `json:"timestamp"`
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
}

// TextSink writes one "timestamp [sender] content" line per message.
type TextSink struct{}

func (TextSink) Export(w io.Writer, messages []*models.Message) error {
	for _, msg := range messages {
		_, err := fmt.Fprintf(w, "%s [%s] %s\n",
			msg.CreatedAt.UTC().Format(time.RFC3339), msg.Role, msg.Content)
		if err != nil {
			return fmt.Errorf("write export line: %w", err)
		}
	}
	return nil
}

// JSONSink writes the history as a JSON array of timestamp/sender/content
// records.
type JSONSink struct{}

func (JSONSink) Export(w io.Writer, messages []*models.Message) error {
	out := make([]exportedMessage, 0, len(messages))
	for _, msg := range messages {
		out = append(out, exportedMessage{
			Timestamp: msg.CreatedAt,
			Sender:    string(msg.Role),
			Content:   msg.Content,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	return nil
}

// ForFormat maps a format name to a sink; unknown formats get text.
func ForFormat(format string) Sink {
	if format == "json" {
		return JSONSink{}
	}
	return TextSink{}
}
