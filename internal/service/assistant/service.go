package assistant

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/sunjohabdurazck/EcoHabit-sub001/internal/config"
	"github.com/sunjohabdurazck/EcoHabit-sub001/internal/models"
	"github.com/sunjohabdurazck/EcoHabit-sub001/internal/profile"
	"github.com/sunjohabdurazck/EcoHabit-sub001/internal/service/intent"
	"github.com/sunjohabdurazck/EcoHabit-sub001/internal/service/responder"
	"github.com/sunjohabdurazck/EcoHabit-sub001/internal/session"
	"github.com/sunjohabdurazck/EcoHabit-sub001/internal/storage"
)

const (
	defaultApologyReply = "Sorry, something went wrong on my end. Could you try asking that again?"

	// DefaultCleanupInterval paces the periodic retention sweep.
	DefaultCleanupInterval = time.Hour

	persistTimeout = 10 * time.Second
)

// Options wires the service's collaborators. Only Selector has no usable
// zero value; everything else gets a sensible default.
type Options struct {
	Store       session.Store
	Persistence *storage.Store
	Profiles    profile.Provider
	Classifier  *intent.Classifier
	Extractor   *intent.Extractor
	Selector    *responder.Selector
	Invalidator *session.Invalidator
	Logger      *logrus.Logger

	MaxSessionMessages int
	RetentionDays      int
	ApologyReply       string
	Language           string
}

// Service orchestrates per-message processing and owns session lifecycle.
type Service struct {
	store       session.Store
	persistence *storage.Store
	profiles    profile.Provider
	classifier  *intent.Classifier
	extractor   *intent.Extractor
	selector    *responder.Selector
	invalidator *session.Invalidator
	logger      *logrus.Logger

	maxMessages   int
	retentionDays int
	apologyReply  string
	language      string
}

// NewService builds the conversation service.
func NewService(opts Options) (*Service, error) {
	if opts.Store == nil {
		opts.Store = session.NewMemoryStore()
	}
	if opts.Classifier == nil {
		opts.Classifier = intent.NewClassifier(intent.DefaultRules(), nil)
	}
	if opts.Extractor == nil {
		opts.Extractor = intent.NewExtractor()
	}
	if opts.Selector == nil {
		selector, err := responder.NewSelector(responder.DefaultBank(), nil)
		if err != nil {
			return nil, fmt.Errorf("build selector: %w", err)
		}
		opts.Selector = selector
	}
	if opts.Logger == nil {
		opts.Logger = logrus.New()
	}
	if opts.MaxSessionMessages <= 0 {
		opts.MaxSessionMessages = config.DefaultMaxSessionMessages
	}
	if opts.RetentionDays <= 0 {
		opts.RetentionDays = config.DefaultRetentionDays
	}
	if opts.ApologyReply == "" {
		opts.ApologyReply = defaultApologyReply
	}
	if opts.Language == "" {
		opts.Language = "en"
	}
	return &Service{
		store:         opts.Store,
		persistence:   opts.Persistence,
		profiles:      opts.Profiles,
		classifier:    opts.Classifier,
		extractor:     opts.Extractor,
		selector:      opts.Selector,
		invalidator:   opts.Invalidator,
		logger:        opts.Logger,
		maxMessages:   opts.MaxSessionMessages,
		retentionDays: opts.RetentionDays,
		apologyReply:  opts.ApologyReply,
		language:      opts.Language,
	}, nil
}

// CreateSession registers an empty conversation log for the user and returns
// its id. The id embeds the user and creation instant, so it is unique per
// (user, instant) pair.
func (s *Service) CreateSession(ctx context.Context, userID int64) (string, error) {
	if userID <= 0 {
		return "", errors.New("user_id is required")
	}
	now := time.Now().UTC()
	id := fmt.Sprintf("%d-%d-%s", userID, now.UnixNano(), uuid.NewString()[:8])
	s.store.Put(session.NewLog(id, userID, s.maxMessages))

	if s.persistence != nil {
		record := &models.Session{ID: id, UserID: userID, CreatedAt: now, UpdatedAt: now}
		go func() {
			pctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
			defer cancel()
			if err := s.persistence.CreateSession(pctx, record); err != nil {
				s.logger.WithError(err).WithField("session_id", id).Warn("persist session failed")
			}
		}()
	}
	return id, nil
}

// GetSession returns the live log for a session, faulting it in from
// persistence when this instance has not seen it yet.
func (s *Service) GetSession(ctx context.Context, sessionID string) (*session.Log, error) {
	if log, ok := s.store.Get(sessionID); ok {
		return log, nil
	}
	if s.persistence == nil {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	record, messages, err := s.persistence.LoadSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
		}
		return nil, err
	}
	log := session.NewLog(record.ID, record.UserID, s.maxMessages)
	for _, msg := range messages {
		log.Append(msg)
	}
	s.store.Put(log)
	return log, nil
}

// DeleteSession drops a session everywhere: local store, other instances via
// pub/sub, and persistence.
func (s *Service) DeleteSession(ctx context.Context, sessionID string) error {
	_, ok := s.store.Get(sessionID)
	s.store.Delete(sessionID)
	s.invalidator.Publish(ctx, sessionID)

	if s.persistence != nil {
		err := s.persistence.DeleteSession(ctx, sessionID)
		if errors.Is(err, sql.ErrNoRows) {
			if !ok {
				return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
			}
			return nil
		}
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	return nil
}

// Profile resolves the user profile through the configured provider. Absent
// providers and absent profiles both yield nil.
func (s *Service) Profile(ctx context.Context, userID int64) *models.Profile {
	if s.profiles == nil {
		return nil
	}
	prof, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Warn("profile lookup failed")
		return nil
	}
	return prof
}

// Cleanup removes sessions whose last activity predates the retention
// horizon, plus sessions that never received a message. It iterates a
// snapshot of the store, so it is safe to run alongside ongoing appends.
// Returns the number of sessions removed from this instance.
func (s *Service) Cleanup(ctx context.Context, retentionDays int) int {
	if retentionDays <= 0 {
		retentionDays = s.retentionDays
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays)

	removed := 0
	for _, log := range s.store.Snapshot() {
		last := log.LastActivity()
		if !last.IsZero() && !last.Before(cutoff) {
			continue
		}
		s.store.Delete(log.ID())
		s.invalidator.Publish(ctx, log.ID())
		removed++
	}

	if s.persistence != nil {
		ids, err := s.persistence.ListExpired(ctx, cutoff)
		if err != nil {
			s.logger.WithError(err).Warn("list expired sessions failed")
			return removed
		}
		for _, id := range ids {
			if err := s.persistence.DeleteSession(ctx, id); err != nil && !errors.Is(err, sql.ErrNoRows) {
				s.logger.WithError(err).WithField("session_id", id).Warn("delete expired session failed")
				continue
			}
			s.store.Delete(id)
			s.invalidator.Publish(ctx, id)
		}
	}
	return removed
}

// StartCleanupLoop runs Cleanup on a fixed interval until ctx is cancelled.
func (s *Service) StartCleanupLoop(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultCleanupInterval
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				removed := s.Cleanup(ctx, s.retentionDays)
				if removed > 0 {
					s.logger.WithField("removed", removed).Info("session cleanup sweep")
				}
			}
		}
	}()
}
