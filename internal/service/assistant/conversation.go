package assistant

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/sunjohabdurazck/EcoHabit-sub001/internal/models"
	"github.com/sunjohabdurazck/EcoHabit-sub001/internal/service/intent"
)

const (
	maxMessageLength = 2000

	// spamRepeatThreshold rejects input where any 2-rune pattern repeats
	// this many times back to back.
	spamRepeatThreshold = 10
)

// HandleMessage runs the full per-message pipeline: validate, classify,
// extract, respond, append. Both the stored user message and the returned
// assistant reply end up in the session log, in that order. Persistence
// writes happen behind an async boundary and are never waited on.
func (s *Service) HandleMessage(ctx context.Context, sessionID, text string, prof *models.Profile) (*models.Message, error) {
	if err := validateInput(text); err != nil {
		return nil, err
	}
	log, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	label, confidence := s.classifier.Classify(text)
	entities := s.extractor.Extract(text)

	userMsg := &models.Message{
		ID:         uuid.NewString(),
		SessionID:  sessionID,
		Role:       models.RoleUser,
		Content:    strings.TrimSpace(text),
		Intent:     label,
		Confidence: confidence,
		Category:   deriveCategory(text, label),
		Entities:   entities,
		Language:   s.language,
		CreatedAt:  time.Now().UTC(),
	}

	reply := s.safeReply(label, prof)
	replyMsg := &models.Message{
		ID:         uuid.NewString(),
		SessionID:  sessionID,
		Role:       models.RoleAssistant,
		Content:    reply,
		Intent:     label,
		Confidence: confidence,
		Category:   deriveCategory(reply, label),
		Language:   s.language,
		CreatedAt:  time.Now().UTC(),
	}

	log.Append(userMsg)
	log.Append(replyMsg)
	s.persistMessages(userMsg, replyMsg)
	return replyMsg, nil
}

// SetMessageFlags updates the read/favorited flags, the only message fields
// that stay mutable after classification.
func (s *Service) SetMessageFlags(ctx context.Context, sessionID, messageID string, read, favorited bool) error {
	log, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if !log.SetFlags(messageID, read, favorited) {
		return fmt.Errorf("message %s not found in session %s", messageID, sessionID)
	}
	if s.persistence != nil {
		if err := s.persistence.SetMessageFlags(ctx, messageID, read, favorited); err != nil && !errors.Is(err, sql.ErrNoRows) {
			return err
		}
	}
	return nil
}

// safeReply converts any selection failure into the apology reply so the
// conversation keeps going. Selection is pure in practice; this is the
// ClassificationFailure backstop.
func (s *Service) safeReply(label string, prof *models.Profile) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("%w: %v", ErrClassification, r)
			s.logger.WithError(err).Error("response selection failed")
			reply = s.apologyReply
		}
	}()
	return s.selector.Select(label, prof)
}

func (s *Service) persistMessages(messages ...*models.Message) {
	if s.persistence == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		for _, msg := range messages {
			if err := s.persistence.SaveMessage(ctx, msg); err != nil {
				s.logger.WithError(err).WithField("message_id", msg.ID).Warn("persist message failed")
			}
		}
	}()
}

func deriveCategory(text, label string) models.Category {
	switch {
	case strings.Contains(text, "?"):
		return models.CategoryQuestion
	case label == intent.TipsRequest:
		return models.CategoryTip
	case label == intent.DataAnalysis:
		return models.CategoryAnalysis
	default:
		return models.CategoryGeneral
	}
}

func validateInput(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: message is empty", ErrInvalidInput)
	}
	if utf8.RuneCountInString(text) > maxMessageLength {
		return fmt.Errorf("%w: message exceeds %d characters", ErrInvalidInput, maxMessageLength)
	}
	if looksLikeSpam(text) {
		return fmt.Errorf("%w: message looks like spam", ErrInvalidInput)
	}
	return nil
}

// looksLikeSpam reports whether any 2-rune substring repeats at least
// spamRepeatThreshold times consecutively.
func looksLikeSpam(text string) bool {
	runes := []rune(text)
	if len(runes) < 2*spamRepeatThreshold {
		return false
	}
	for i := 0; i+2*spamRepeatThreshold <= len(runes); i++ {
		a, b := runes[i], runes[i+1]
		count := 1
		for j := i + 2; j+2 <= len(runes) && runes[j] == a && runes[j+1] == b; j += 2 {
			count++
		}
		if count >= spamRepeatThreshold {
			return true
		}
	}
	return false
}
