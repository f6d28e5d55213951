package intent

import "testing"

func TestClassifyEmptyInput(t *testing.T) {
	c := NewClassifier(DefaultRules(), nil)
	for _, text := range []string{"", "   ", "\n\t "} {
		label, confidence := c.Classify(text)
		if label != Default || confidence != 0.5 {
			t.Fatalf("Classify(%q) = (%s, %v), want (default, 0.5)", text, label, confidence)
		}
	}
}

func TestClassifyNoMatch(t *testing.T) {
	c := NewClassifier(DefaultRules(), nil)
	label, confidence := c.Classify("xyzzy qwrt")
	if label != Default || confidence != 0.5 {
		t.Fatalf("expected default fallback, got (%s, %v)", label, confidence)
	}
}

func TestClassifySingleKeyword(t *testing.T) {
	c := NewClassifier(DefaultRules(), nil)
	label, confidence := c.Classify("what about my co2 output")
	if label != CarbonFootprint {
		t.Fatalf("expected carbon_footprint, got %s", label)
	}
	if confidence < 0.5 {
		t.Fatalf("single keyword match must score >= 0.5, got %v", confidence)
	}
}

func TestClassifyFirstRegisteredWins(t *testing.T) {
	rules := []Rule{
		{Intent: "first", Pattern: "shared|alpha"},
		{Intent: "second", Pattern: "shared|beta"},
	}
	c := NewClassifier(rules, nil)
	for i := 0; i < 10; i++ {
		label, _ := c.Classify("a shared keyword")
		if label != "first" {
			t.Fatalf("earlier registered intent must win, got %s", label)
		}
	}
}

func TestClassifySubstringMatching(t *testing.T) {
	c := NewClassifier(DefaultRules(), nil)
	// "recycl" hits inside "recycling"; no token boundaries by design.
	label, _ := c.Classify("tell me about recycling")
	if label != Recycling {
		t.Fatalf("expected recycling via substring, got %s", label)
	}
}

func TestClassifyCaseInsensitive(t *testing.T) {
	c := NewClassifier(DefaultRules(), nil)
	label, _ := c.Classify("CARBON Footprint HELP")
	if label != CarbonFootprint {
		t.Fatalf("expected carbon_footprint, got %s", label)
	}
}

func TestConfidenceScaling(t *testing.T) {
	c := NewClassifier(DefaultRules(), nil)

	one := c.Confidence("my carbon output", CarbonFootprint)
	if one != 0.5 {
		t.Fatalf("one keyword: want 0.5, got %v", one)
	}
	two := c.Confidence("carbon footprint", CarbonFootprint)
	if two != 0.7 {
		t.Fatalf("two keywords: want 0.7, got %v", two)
	}
	none := c.Confidence("nothing relevant", CarbonFootprint)
	if none != 0.3 {
		t.Fatalf("no keywords: want 0.3, got %v", none)
	}
}

func TestConfidenceCap(t *testing.T) {
	c := NewClassifier(DefaultRules(), nil)
	got := c.Confidence("carbon footprint co2 emission offset", CarbonFootprint)
	if got != 1.0 {
		t.Fatalf("confidence must cap at 1.0, got %v", got)
	}
}

func TestConfidenceUnrecognizedIntent(t *testing.T) {
	c := NewClassifier(DefaultRules(), nil)
	if got := c.Confidence("carbon", "no_such_intent"); got != 0.3 {
		t.Fatalf("unrecognized intent: want 0.3, got %v", got)
	}
}

func TestConfidenceDefaultIntent(t *testing.T) {
	c := NewClassifier(DefaultRules(), nil)
	if got := c.Confidence("anything", Default); got != 0.5 {
		t.Fatalf("default intent: want 0.5, got %v", got)
	}
}

type prefixMatcher struct{}

func (prefixMatcher) Match(text, keyword string) bool {
	return len(text) >= len(keyword) && text[:len(keyword)] == keyword
}

func TestCustomMatcherSwap(t *testing.T) {
	rules := []Rule{{Intent: "greeting", Pattern: "hello"}}
	c := NewClassifier(rules, prefixMatcher{})
	if label, _ := c.Classify("hello there"); label != "greeting" {
		t.Fatalf("prefix matcher should hit leading keyword, got %s", label)
	}
	if label, _ := c.Classify("say hello"); label != Default {
		t.Fatalf("prefix matcher must ignore mid-string keyword, got %s", label)
	}
}
