package storage

import (
	"context"
	"database/sql"
	"errors"
	"reflect"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/sunjohabdurazck/EcoHabit-sub001/internal/models"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := Migrate(db, "sqlite3"); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func testMessage(id, sessionID string, at time.Time) *models.Message {
	return &models.Message{
		ID:         id,
		SessionID:  sessionID,
		Role:       models.RoleUser,
		Content:    "content " + id,
		Intent:     "carbon_footprint",
		Confidence: 0.7,
		Category:   models.CategoryQuestion,
		Entities:   []string{"carbon", "20kg"},
		Language:   "en",
		CreatedAt:  at,
	}
}

func TestStoreSessionAndMessageRoundTrip(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()
	store := NewStore(db)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	record := &models.Session{ID: "1-abc", UserID: 1, CreatedAt: now, UpdatedAt: now}
	if err := store.CreateSession(ctx, record); err != nil {
		t.Fatalf("create session: %v", err)
	}
	first := testMessage("m1", "1-abc", now.Add(time.Second))
	second := testMessage("m2", "1-abc", now.Add(2*time.Second))
	second.Role = models.RoleAssistant
	second.Intent = ""
	for _, msg := range []*models.Message{first, second} {
		if err := store.SaveMessage(ctx, msg); err != nil {
			t.Fatalf("save message %s: %v", msg.ID, err)
		}
	}

	loaded, messages, err := store.LoadSession(ctx, "1-abc")
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	if loaded.UserID != 1 {
		t.Fatalf("loaded session user mismatch: %+v", loaded)
	}
	// SaveMessage touches updated_at with the message timestamp.
	if !loaded.UpdatedAt.Equal(second.CreatedAt) {
		t.Fatalf("updated_at not touched: %v vs %v", loaded.UpdatedAt, second.CreatedAt)
	}
	if len(messages) != 2 || messages[0].ID != "m1" || messages[1].ID != "m2" {
		t.Fatalf("messages out of order: %+v", messages)
	}
	if messages[0].Intent != "carbon_footprint" || messages[0].Confidence != 0.7 {
		t.Fatalf("classification fields lost: %+v", messages[0])
	}
	if !reflect.DeepEqual(messages[0].Entities, []string{"carbon", "20kg"}) {
		t.Fatalf("entities lost: %v", messages[0].Entities)
	}
	if messages[1].Intent != "" {
		t.Fatalf("empty intent must stay empty, got %q", messages[1].Intent)
	}
}

func TestStoreLoadMissingSession(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()
	store := NewStore(db)
	_, _, err := store.LoadSession(context.Background(), "missing")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestStoreListExpired(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()
	store := NewStore(db)
	ctx := context.Background()
	now := time.Now().UTC()

	old := &models.Session{ID: "old", UserID: 1, CreatedAt: now.AddDate(0, 0, -40), UpdatedAt: now.AddDate(0, 0, -40)}
	fresh := &models.Session{ID: "fresh", UserID: 1, CreatedAt: now, UpdatedAt: now}
	for _, s := range []*models.Session{old, fresh} {
		if err := store.CreateSession(ctx, s); err != nil {
			t.Fatalf("create session %s: %v", s.ID, err)
		}
	}

	ids, err := store.ListExpired(ctx, now.AddDate(0, 0, -30))
	if err != nil {
		t.Fatalf("list expired: %v", err)
	}
	if len(ids) != 1 || ids[0] != "old" {
		t.Fatalf("expected [old], got %v", ids)
	}
}

func TestStoreDeleteSessionCascades(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()
	store := NewStore(db)
	ctx := context.Background()
	now := time.Now().UTC()

	if err := store.CreateSession(ctx, &models.Session{ID: "s", UserID: 1, CreatedAt: now, UpdatedAt: now}); err != nil {
		t.Fatalf("create session: %v", err)
	}
	if err := store.SaveMessage(ctx, testMessage("m1", "s", now)); err != nil {
		t.Fatalf("save message: %v", err)
	}
	if err := store.DeleteSession(ctx, "s"); err != nil {
		t.Fatalf("delete session: %v", err)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM messages WHERE session_id = ?`, "s").Scan(&count); err != nil {
		t.Fatalf("count messages: %v", err)
	}
	if count != 0 {
		t.Fatalf("messages survived session delete: %d", count)
	}
	if err := store.DeleteSession(ctx, "s"); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("second delete should report no rows, got %v", err)
	}
}

func TestStoreSetMessageFlags(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()
	store := NewStore(db)
	ctx := context.Background()
	now := time.Now().UTC()

	if err := store.CreateSession(ctx, &models.Session{ID: "s", UserID: 1, CreatedAt: now, UpdatedAt: now}); err != nil {
		t.Fatalf("create session: %v", err)
	}
	if err := store.SaveMessage(ctx, testMessage("m1", "s", now)); err != nil {
		t.Fatalf("save message: %v", err)
	}
	if err := store.SetMessageFlags(ctx, "m1", true, true); err != nil {
		t.Fatalf("set flags: %v", err)
	}
	_, messages, err := store.LoadSession(ctx, "s")
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	if !messages[0].Read || !messages[0].Favorited {
		t.Fatalf("flags not persisted: %+v", messages[0])
	}
	if err := store.SetMessageFlags(ctx, "missing", true, false); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("unknown message should report no rows, got %v", err)
	}
}
