package intent

import (
	"regexp"
	"strings"
)

// defaultVocabulary lists the domain terms the extractor scans for, in
// detection order.
var defaultVocabulary = []string{
	"energy", "carbon", "co2", "solar", "wind", "renewable", "electric",
	"hybrid", "organic", "local", "sustainable", "recycle", "compost",
	"waste", "water", "conservation",
}

// quantityPattern captures bare numbers and numbers with a known unit suffix.
var quantityPattern = regexp.MustCompile(`\d+\s?(?:%|kwh|kg|miles|gallons|dollars)?`)

// Extractor pulls domain keywords and numeric quantities out of message
// text. Extraction is pure and idempotent.
type Extractor struct {
	vocabulary []string
}

// NewExtractor builds an extractor over the default vocabulary plus any
// deployment-specific extra terms.
func NewExtractor(extraTerms ...string) *Extractor {
	vocab := make([]string, 0, len(defaultVocabulary)+len(extraTerms))
	vocab = append(vocab, defaultVocabulary...)
	for _, term := range extraTerms {
		if term = strings.ToLower(strings.TrimSpace(term)); term != "" {
			vocab = append(vocab, term)
		}
	}
	return &Extractor{vocabulary: vocab}
}

// Extract returns the entities found in text: vocabulary terms first, then
// numeric quantities, each in first-occurrence order with case-insensitive
// duplicates dropped. The result is never nil.
func (e *Extractor) Extract(text string) []string {
	entities := make([]string, 0, 4)
	if strings.TrimSpace(text) == "" {
		return entities
	}
	lower := strings.ToLower(text)
	seen := make(map[string]struct{})

	for _, term := range e.vocabulary {
		if !strings.Contains(lower, term) {
			continue
		}
		if _, dup := seen[term]; dup {
			continue
		}
		seen[term] = struct{}{}
		entities = append(entities, term)
	}

	for _, quantity := range quantityPattern.FindAllString(lower, -1) {
		quantity = strings.TrimSpace(quantity)
		if _, dup := seen[quantity]; dup {
			continue
		}
		seen[quantity] = struct{}{}
		entities = append(entities, quantity)
	}
	return entities
}
