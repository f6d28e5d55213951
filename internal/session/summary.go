package session

import (
	"fmt"
	"sort"
)

const topIntentLimit = 5

// IntentCount pairs an intent label with how often it appeared.
type IntentCount struct {
	Intent string `json:"intent"`
	Count  int    `json:"count"`
}

// Summary condenses a conversation: size, elapsed span, dominant topics.
type Summary struct {
	MessageCount int           `json:"message_count"`
	Duration     string        `json:"duration"`
	TopIntents   []IntentCount `json:"top_intents"`
}

// Summarize reports the message count, the human-readable span between first
// and last message, and the five most frequent intents (count descending;
// equal counts keep first-encountered order).
func (l *Log) Summarize() Summary {
	history := l.History()
	summary := Summary{
		MessageCount: len(history),
		TopIntents:   make([]IntentCount, 0, topIntentLimit),
	}
	if len(history) == 0 {
		summary.Duration = "0 minutes"
		return summary
	}

	elapsed := history[len(history)-1].CreatedAt.Sub(history[0].CreatedAt)
	minutes := int(elapsed.Minutes())
	if minutes < 60 {
		summary.Duration = fmt.Sprintf("%d minutes", minutes)
	} else {
		summary.Duration = fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
	}

	index := make(map[string]int)
	counts := make([]IntentCount, 0)
	for _, msg := range history {
		if msg.Intent == "" {
			continue
		}
		if i, seen := index[msg.Intent]; seen {
			counts[i].Count++
			continue
		}
		index[msg.Intent] = len(counts)
		counts = append(counts, IntentCount{Intent: msg.Intent, Count: 1})
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	if len(counts) > topIntentLimit {
		counts = counts[:topIntentLimit]
	}
	summary.TopIntents = append(summary.TopIntents, counts...)
	return summary
}
