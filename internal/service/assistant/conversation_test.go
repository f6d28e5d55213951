package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sunjohabdurazck/EcoHabit-sub001/internal/models"
	"github.com/sunjohabdurazck/EcoHabit-sub001/internal/service/responder"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(Options{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func mustCreateSession(t *testing.T, svc *Service) string {
	t.Helper()
	id, err := svc.CreateSession(context.Background(), 1)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	return id
}

func TestHandleMessageCarbonQuestion(t *testing.T) {
	svc := newTestService(t)
	sessionID := mustCreateSession(t, svc)

	reply, err := svc.HandleMessage(context.Background(), sessionID, "How can I reduce my carbon footprint?", nil)
	if err != nil {
		t.Fatalf("handle message: %v", err)
	}
	if reply.Role != models.RoleAssistant {
		t.Fatalf("reply role = %s", reply.Role)
	}
	if reply.Intent != "carbon_footprint" {
		t.Fatalf("intent = %q, want carbon_footprint", reply.Intent)
	}
	if reply.Confidence != 0.7 {
		t.Fatalf("confidence = %v, want 0.7 (two keywords matched)", reply.Confidence)
	}
	if reply.Category != models.CategoryQuestion {
		t.Fatalf("category = %s, want question", reply.Category)
	}

	bank := responder.DefaultBank()["carbon_footprint"]
	found := false
	for _, candidate := range bank {
		if reply.Content == candidate {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("reply %q not drawn from the carbon_footprint bank", reply.Content)
	}

	log, err := svc.GetSession(context.Background(), sessionID)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	history := log.History()
	if len(history) != 2 {
		t.Fatalf("history length = %d, want 2", len(history))
	}
	if history[0].Role != models.RoleUser || history[1].Role != models.RoleAssistant {
		t.Fatalf("history order wrong: %s then %s", history[0].Role, history[1].Role)
	}
	hasCarbon := false
	for _, e := range history[0].Entities {
		if e == "carbon" {
			hasCarbon = true
		}
	}
	if !hasCarbon {
		t.Fatalf("user message entities missing 'carbon': %v", history[0].Entities)
	}
}

func TestHandleMessageCategories(t *testing.T) {
	svc := newTestService(t)
	sessionID := mustCreateSession(t, svc)
	ctx := context.Background()

	cases := []struct {
		text string
		want models.Category
	}{
		{"Any advice for me", models.CategoryTip},
		{"Show my progress report", models.CategoryAnalysis},
		{"hello there", models.CategoryGeneral},
		{"Is recycling plastic worth it?", models.CategoryQuestion},
	}
	for _, tc := range cases {
		reply, err := svc.HandleMessage(ctx, sessionID, tc.text, nil)
		if err != nil {
			t.Fatalf("handle %q: %v", tc.text, err)
		}
		log, _ := svc.GetSession(ctx, sessionID)
		history := log.History()
		userMsg := history[len(history)-2]
		if userMsg.Category != tc.want {
			t.Fatalf("%q categorized as %s, want %s", tc.text, userMsg.Category, tc.want)
		}
		_ = reply
	}
}

func TestHandleMessageRejectsInvalidInput(t *testing.T) {
	svc := newTestService(t)
	sessionID := mustCreateSession(t, svc)
	ctx := context.Background()

	cases := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"whitespace", "   \n\t "},
		{"too long", strings.Repeat("a", 2001)},
		{"spam pattern", strings.Repeat("ab", 10)},
	}
	for _, tc := range cases {
		if _, err := svc.HandleMessage(ctx, sessionID, tc.text, nil); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", tc.name, err)
		}
	}

	// At exactly the limit the message goes through.
	longest := strings.Repeat("abc", 666) + "ab"
	if _, err := svc.HandleMessage(ctx, sessionID, longest, nil); err != nil {
		t.Fatalf("2000-rune message should pass: %v", err)
	}

	log, _ := svc.GetSession(ctx, sessionID)
	if log.Len() != 2 {
		t.Fatalf("rejected input must not reach the log, got %d messages", log.Len())
	}
}

func TestHandleMessageUnknownSession(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.HandleMessage(context.Background(), "no-such-session", "hello there", nil); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestHandleMessageApologyFallback(t *testing.T) {
	svc := newTestService(t)
	sessionID := mustCreateSession(t, svc)

	// Force selection to panic; the pipeline must answer anyway.
	svc.selector = nil
	reply, err := svc.HandleMessage(context.Background(), sessionID, "hello there", nil)
	if err != nil {
		t.Fatalf("handle message: %v", err)
	}
	if reply.Content != defaultApologyReply {
		t.Fatalf("expected apology reply, got %q", reply.Content)
	}

	log, _ := svc.GetSession(context.Background(), sessionID)
	if log.Len() != 2 {
		t.Fatalf("apology turn must still be logged, got %d messages", log.Len())
	}
}

func TestLooksLikeSpam(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{strings.Repeat("ab", 10), true},
		{strings.Repeat("ab", 9), false},
		{"xx" + strings.Repeat("ab", 10) + "yy", true},
		{"a normal sentence about recycling habits", false},
		{strings.Repeat("ééé", 8), true},
	}
	for _, tc := range cases {
		if got := looksLikeSpam(tc.text); got != tc.want {
			t.Fatalf("looksLikeSpam(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestSetMessageFlags(t *testing.T) {
	svc := newTestService(t)
	sessionID := mustCreateSession(t, svc)
	ctx := context.Background()

	if _, err := svc.HandleMessage(ctx, sessionID, "hello there", nil); err != nil {
		t.Fatalf("handle message: %v", err)
	}
	log, _ := svc.GetSession(ctx, sessionID)
	msgID := log.History()[0].ID

	if err := svc.SetMessageFlags(ctx, sessionID, msgID, true, true); err != nil {
		t.Fatalf("set flags: %v", err)
	}
	if msg := log.History()[0]; !msg.Read || !msg.Favorited {
		t.Fatalf("flags not applied: %+v", msg)
	}
	if err := svc.SetMessageFlags(ctx, sessionID, "missing", true, false); err == nil {
		t.Fatalf("unknown message id should error")
	}
}
