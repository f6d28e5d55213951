package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sunjohabdurazck/EcoHabit-sub001/internal/models"
)

// Store materializes sessions and messages beyond process memory. It is an
// optional collaborator: the conversation core runs memory-only when no
// database is configured.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// CreateSession inserts a new session record.
func (s *Store) CreateSession(ctx context.Context, session *models.Session) error {
	if session == nil || session.ID == "" {
		return errors.New("session id is required")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, user_id, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		session.ID, session.UserID, session.CreatedAt, session.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// SaveMessage stores a message and touches the owning session's updated_at.
func (s *Store) SaveMessage(ctx context.Context, msg *models.Message) error {
	if msg == nil || msg.ID == "" {
		return errors.New("message id is required")
	}
	entities, err := json.Marshal(msg.Entities)
	if err != nil {
		return fmt.Errorf("encode entities: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO messages (id, session_id, role, content, intent, confidence, category, entities, is_read, is_favorited, language, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		msg.ID, msg.SessionID, msg.Role, msg.Content, nullableIntent(msg.Intent), msg.Confidence,
		msg.Category, string(entities), msg.Read, msg.Favorited, msg.Language, msg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	if _, err := s.db.ExecContext(ctx,
		`UPDATE sessions SET updated_at = ? WHERE id = ?`, msg.CreatedAt, msg.SessionID,
	); err != nil {
		return fmt.Errorf("touch session: %w", err)
	}
	return nil
}

// LoadSession returns one session and its messages in chronological order.
func (s *Store) LoadSession(ctx context.Context, sessionID string) (*models.Session, []*models.Message, error) {
	var session models.Session
	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, created_at, updated_at FROM sessions WHERE id = ?`, sessionID,
	).Scan(&session.ID, &session.UserID, &session.CreatedAt, &session.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("get session: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, role, content, intent, confidence, category, entities, is_read, is_favorited, language, created_at
		 FROM messages WHERE session_id = ? ORDER BY created_at ASC, id ASC`, sessionID,
	)
	if err != nil {
		return &session, nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var messages []*models.Message
	for rows.Next() {
		m := new(models.Message)
		var intentLabel sql.NullString
		var entities string
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Role, &m.Content, &intentLabel, &m.Confidence,
			&m.Category, &entities, &m.Read, &m.Favorited, &m.Language, &m.CreatedAt); err != nil {
			return &session, nil, fmt.Errorf("scan message: %w", err)
		}
		m.Intent = intentLabel.String
		if entities != "" {
			if err := json.Unmarshal([]byte(entities), &m.Entities); err != nil {
				return &session, nil, fmt.Errorf("decode entities: %w", err)
			}
		}
		messages = append(messages, m)
	}
	return &session, messages, rows.Err()
}

// ListExpired returns ids of sessions whose last activity predates cutoff.
func (s *Store) ListExpired(ctx context.Context, cutoff time.Time) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM sessions WHERE updated_at <= ?`, cutoff,
	)
	if err != nil {
		return nil, fmt.Errorf("list expired sessions: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan session id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// DeleteSession removes a session and all related messages.
func (s *Store) DeleteSession(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return errors.New("invalid session id")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, sessionID)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("session rows affected: %w", err)
	}
	if affected == 0 {
		tx.Rollback()
		return sql.ErrNoRows
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM messages WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("delete messages: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit delete session: %w", err)
	}
	return nil
}

// SetMessageFlags updates the only two mutable message fields.
func (s *Store) SetMessageFlags(ctx context.Context, messageID string, read, favorited bool) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE messages SET is_read = ?, is_favorited = ? WHERE id = ?`,
		read, favorited, messageID,
	)
	if err != nil {
		return fmt.Errorf("update message flags: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("message rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func nullableIntent(label string) interface{} {
	if label == "" {
		return nil
	}
	return label
}
