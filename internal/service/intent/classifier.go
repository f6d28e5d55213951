package intent

import (
	"math"
	"strings"
)

// Default is the fallback label returned when no rule matches.
const Default = "default"

// Matcher decides whether a single keyword hits the (already lower-cased)
// input text. The stock implementation is plain substring containment, kept
// for parity with the desktop client's behavior; a token-boundary matcher can
// be swapped in without touching callers.
type Matcher interface {
	Match(text, keyword string) bool
}

type substringMatcher struct{}

func (substringMatcher) Match(text, keyword string) bool {
	return strings.Contains(text, keyword)
}

// SubstringMatcher returns the legacy containment matcher.
func SubstringMatcher() Matcher { return substringMatcher{} }

// Rule binds an intent label to its pipe-delimited keyword pattern.
// Registration order is priority order: the first rule with any matching
// keyword wins.
type Rule struct {
	Intent  string
	Pattern string
}

func (r Rule) keywords() []string {
	parts := strings.Split(r.Pattern, "|")
	keywords := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			keywords = append(keywords, strings.ToLower(p))
		}
	}
	return keywords
}

// Classifier maps raw message text to a discrete intent label. It is a pure
// lookup over static rules; safe for concurrent use.
type Classifier struct {
	rules   []Rule
	byLabel map[string][]string
	matcher Matcher
}

// NewClassifier builds a classifier over the given rules. A nil matcher
// selects substring containment.
func NewClassifier(rules []Rule, matcher Matcher) *Classifier {
	if matcher == nil {
		matcher = substringMatcher{}
	}
	c := &Classifier{
		rules:   rules,
		byLabel: make(map[string][]string, len(rules)),
		matcher: matcher,
	}
	for _, rule := range rules {
		c.byLabel[rule.Intent] = rule.keywords()
	}
	return c
}

// Classify returns the intent of the text and its confidence. Empty or
// whitespace-only input yields ("default", 0.5), as does text that matches no
// rule.
func (c *Classifier) Classify(text string) (string, float64) {
	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized == "" {
		return Default, 0.5
	}
	for _, rule := range c.rules {
		for _, kw := range c.byLabel[rule.Intent] {
			if c.matcher.Match(normalized, kw) {
				return rule.Intent, c.Confidence(text, rule.Intent)
			}
		}
	}
	return Default, 0.5
}

// Confidence scores how strongly the text supports the given intent:
// min(0.3 + 0.2 x matched keywords, 1.0) for registered intents, 0.5 for the
// keyword-less default intent, 0.3 for labels the classifier does not know.
func (c *Classifier) Confidence(text, label string) float64 {
	if label == Default {
		return 0.5
	}
	keywords, ok := c.byLabel[label]
	if !ok {
		return 0.3
	}
	normalized := strings.ToLower(text)
	matched := 0
	for _, kw := range keywords {
		if c.matcher.Match(normalized, kw) {
			matched++
		}
	}
	return math.Min(0.3+0.2*float64(matched), 1.0)
}
