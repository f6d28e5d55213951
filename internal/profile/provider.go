package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/sunjohabdurazck/EcoHabit-sub001/internal/models"
)

// Provider supplies read-only user profiles for reply personalization.
// An absent profile is (nil, nil), never an error.
type Provider interface {
	GetProfile(ctx context.Context, userID int64) (*models.Profile, error)
}

// SQLProvider reads profiles from the users table.
type SQLProvider struct {
	db *sql.DB
}

func NewSQLProvider(db *sql.DB) *SQLProvider {
	return &SQLProvider{db: db}
}

func (p *SQLProvider) GetProfile(ctx context.Context, userID int64) (*models.Profile, error) {
	var prof models.Profile
	err := p.db.QueryRowContext(ctx,
		`SELECT id, first_name, last_name, region, household_size FROM users WHERE id = ?`, userID,
	).Scan(&prof.UserID, &prof.FirstName, &prof.LastName, &prof.Region, &prof.HouseholdSize)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &prof, nil
}

// StaticProvider serves a fixed set of profiles; used in tests and in
// memory-only deployments where login is handled elsewhere.
type StaticProvider struct {
	mu       sync.RWMutex
	profiles map[int64]*models.Profile
}

func NewStaticProvider(profiles ...*models.Profile) *StaticProvider {
	p := &StaticProvider{profiles: make(map[int64]*models.Profile, len(profiles))}
	for _, prof := range profiles {
		if prof != nil {
			p.profiles[prof.UserID] = prof
		}
	}
	return p
}

func (p *StaticProvider) Put(prof *models.Profile) {
	if prof == nil {
		return
	}
	p.mu.Lock()
	p.profiles[prof.UserID] = prof
	p.mu.Unlock()
}

func (p *StaticProvider) GetProfile(_ context.Context, userID int64) (*models.Profile, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.profiles[userID], nil
}
