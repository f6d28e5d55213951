package session

import (
	"testing"
	"time"

	"github.com/sunjohabdurazck/EcoHabit-sub001/internal/models"
	"github.com/sunjohabdurazck/EcoHabit-sub001/internal/service/intent"
)

func intentMsg(id, label string, at time.Time) *models.Message {
	return &models.Message{ID: id, Intent: label, CreatedAt: at}
}

func TestSummarizeEmpty(t *testing.T) {
	log := NewLog("s1", 1, 0)
	summary := log.Summarize()
	if summary.MessageCount != 0 {
		t.Fatalf("expected zero messages, got %d", summary.MessageCount)
	}
	if summary.Duration != "0 minutes" {
		t.Fatalf("unexpected duration: %q", summary.Duration)
	}
	if len(summary.TopIntents) != 0 {
		t.Fatalf("expected no top intents, got %v", summary.TopIntents)
	}
}

func TestSummarizeDurationMinutes(t *testing.T) {
	log := NewLog("s1", 1, 0)
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	log.Append(intentMsg("m0", "greeting", base))
	log.Append(intentMsg("m1", "goodbye", base.Add(42*time.Minute)))
	if got := log.Summarize().Duration; got != "42 minutes" {
		t.Fatalf("duration = %q, want 42 minutes", got)
	}
}

func TestSummarizeDurationHours(t *testing.T) {
	log := NewLog("s1", 1, 0)
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	log.Append(intentMsg("m0", "greeting", base))
	log.Append(intentMsg("m1", "goodbye", base.Add(2*time.Hour+5*time.Minute)))
	if got := log.Summarize().Duration; got != "2h 5m" {
		t.Fatalf("duration = %q, want 2h 5m", got)
	}
}

func TestSummarizeTopIntents(t *testing.T) {
	log := NewLog("s1", 1, 0)
	base := time.Now().UTC()
	labels := []string{
		intent.CarbonFootprint, intent.CarbonFootprint, intent.CarbonFootprint,
		intent.EnergySaving, intent.EnergySaving,
		intent.Recycling,
		"", // untagged messages are skipped
	}
	for i, label := range labels {
		log.Append(intentMsg(string(rune('a'+i)), label, base.Add(time.Duration(i)*time.Second)))
	}

	summary := log.Summarize()
	if summary.MessageCount != 7 {
		t.Fatalf("message count = %d, want 7", summary.MessageCount)
	}
	want := []IntentCount{
		{Intent: intent.CarbonFootprint, Count: 3},
		{Intent: intent.EnergySaving, Count: 2},
		{Intent: intent.Recycling, Count: 1},
	}
	if len(summary.TopIntents) != len(want) {
		t.Fatalf("top intents = %v", summary.TopIntents)
	}
	for i, w := range want {
		if summary.TopIntents[i] != w {
			t.Fatalf("top intent %d = %v, want %v", i, summary.TopIntents[i], w)
		}
	}
}

func TestSummarizeTopIntentsTieKeepsFirstSeen(t *testing.T) {
	log := NewLog("s1", 1, 0)
	base := time.Now().UTC()
	for i, label := range []string{"beta", "alpha", "beta", "alpha"} {
		log.Append(intentMsg(string(rune('a'+i)), label, base.Add(time.Duration(i)*time.Second)))
	}
	top := log.Summarize().TopIntents
	if top[0].Intent != "beta" || top[1].Intent != "alpha" {
		t.Fatalf("tie must keep first-encountered order, got %v", top)
	}
}

func TestSummarizeLimitsToFive(t *testing.T) {
	log := NewLog("s1", 1, 0)
	base := time.Now().UTC()
	labels := []string{"a", "b", "c", "d", "e", "f", "g"}
	for i, label := range labels {
		log.Append(intentMsg(label, label, base.Add(time.Duration(i)*time.Second)))
	}
	if top := log.Summarize().TopIntents; len(top) != 5 {
		t.Fatalf("expected 5 top intents, got %d", len(top))
	}
}
