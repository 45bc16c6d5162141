package audio

import (
	"strings"
)

// Literal membership tables for audio-intent detection. Kept as exact
// string sets on purpose: the behavior is pinned by tests, so this stays a
// conservative matcher rather than anything learned.
var (
	intentKeywords = []string{"audio", "voice", "speak", "say", "narrate", "sound", "listen"}
	intentPhrases  = []string{"with audio", "read aloud", "say it"}

	// "tell me" counts only when immediately followed by one of these.
	// The adjacency requirement is asymmetric with the keyword table and
	// is preserved as-is.
	tellMeTriggers = map[string]bool{
		"with":  true,
		"in":    true,
		"voice": true,
		"audio": true,
		"speak": true,
		"say":   true,
	}
)

// WantsAudio reports whether the user's utterance asks for a spoken
// response. Case-insensitive; keywords match on word membership, phrases
// on substring.
func WantsAudio(utterance string) bool {
	lowered := strings.ToLower(utterance)

	for _, phrase := range intentPhrases {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}

	words := splitWords(lowered)
	wordSet := make(map[string]bool, len(words))
	for _, w := range words {
		wordSet[w] = true
	}
	for _, keyword := range intentKeywords {
		if wordSet[keyword] {
			return true
		}
	}

	for i := 0; i+2 < len(words); i++ {
		if words[i] == "tell" && words[i+1] == "me" && tellMeTriggers[words[i+2]] {
			return true
		}
	}

	return false
}

// splitWords breaks the lowered utterance into words, stripping punctuation.
func splitWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		switch {
		case r >= 'a' && r <= 'z':
			return false
		case r >= '0' && r <= '9':
			return false
		default:
			return true
		}
	})
}
