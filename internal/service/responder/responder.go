package responder

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/sunjohabdurazck/EcoHabit-sub001/internal/models"
	"github.com/sunjohabdurazck/EcoHabit-sub001/internal/service/intent"
)

// personalizeProbability is the chance a reply gets the user's first name
// woven in, given the profile carries one.
const personalizeProbability = 0.3

// Selector picks a reply template for an intent and optionally personalizes
// it. The random source is injected so tests can pin the choice.
type Selector struct {
	bank map[string][]string

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewSelector validates the bank and builds a selector. The "default" bank is
// mandatory and must be non-empty. A nil rnd gets a time-seeded source.
func NewSelector(bank map[string][]string, rnd *rand.Rand) (*Selector, error) {
	if len(bank[intent.Default]) == 0 {
		return nil, errors.New("template bank must contain a non-empty default entry")
	}
	for label, templates := range bank {
		if len(templates) == 0 {
			return nil, fmt.Errorf("template bank for %q is empty", label)
		}
	}
	if rnd == nil {
		rnd = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Selector{bank: bank, rnd: rnd}, nil
}

// Select returns a reply for the intent, drawn uniformly from its bank
// (falling back to the default bank for unknown intents). A nil profile or a
// profile without a first name skips personalization.
func (s *Selector) Select(label string, profile *models.Profile) string {
	templates, ok := s.bank[label]
	if !ok {
		templates = s.bank[intent.Default]
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	reply := templates[s.rnd.Intn(len(templates))]
	if profile == nil || profile.FirstName == "" {
		return reply
	}
	if s.rnd.Float64() >= personalizeProbability {
		return reply
	}
	switch s.rnd.Intn(3) {
	case 0:
		return profile.FirstName + ", " + reply
	case 1:
		return reply + "\n\nHope this helps, " + profile.FirstName + "!"
	default:
		return "Hi " + profile.FirstName + "! " + reply
	}
}
