package session

import "github.com/sunjohabdurazck/EcoHabit-sub001/internal/service/intent"

const suggestionLimit = 3

// Opening prompts shown before any message exists. Four are defined by
// convention; only the first three are surfaced.
var openingPrompts = [4]string{
	"How can I reduce my carbon footprint?",
	"Give me an energy saving tip",
	"How do I recycle properly?",
	"Show me my progress so far",
}

var intentFollowUps = map[string][]string{
	intent.CarbonFootprint: {
		"How do I offset my emissions?",
		"Which travel choice saves the most CO2?",
		"Track my carbon footprint this week",
	},
	intent.EnergySaving: {
		"What uses the most electricity at home?",
		"Give me another energy saving tip",
		"How much can solar panels save?",
	},
}

var genericFollowUps = []string{
	"Tell me more",
	"Give me a practical tip",
	"Show me my progress",
}

// SuggestedReplies returns up to three prompts the user could send next,
// keyed on the intent of the most recent message.
func (l *Log) SuggestedReplies() []string {
	history := l.History()
	if len(history) == 0 {
		return clipSuggestions(openingPrompts[:])
	}
	last := history[len(history)-1]
	if followUps, ok := intentFollowUps[last.Intent]; ok {
		return clipSuggestions(followUps)
	}
	return clipSuggestions(genericFollowUps)
}

func clipSuggestions(prompts []string) []string {
	if len(prompts) > suggestionLimit {
		prompts = prompts[:suggestionLimit]
	}
	out := make([]string, len(prompts))
	copy(out, prompts)
	return out
}
