package audio

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWantsAudio_LiteralCases(t *testing.T) {
	cases := []struct {
		utterance string
		want      bool
	}{
		{"I want to request a day off with audio", true},
		{"I want to request a day off", false},
		{"Tell me about work from home policy in voice", true},
		{"What are the work hours?", false},
		{"Tell me a story", false},
		{"Tell me with audio", true},
		{"Can you speak the policy about vacation days?", true},
		{"I need to book a meeting room, please say it", true},
		{"What's the overtime policy? Audio please", true},
		{"Read aloud the company policies", true},
		{"Voice response for my leave request", true},
		{"Say the work schedule", true},
		{"What's the vacation policy?", false},
		{"Book a meeting room for tomorrow", false},
		{"Tell me about sick leave", false},
		{"Request overtime for Friday", false},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, WantsAudio(tc.utterance), "utterance: %q", tc.utterance)
	}
}

func TestWantsAudio_KeywordsMatchOnWordMembership(t *testing.T) {
	require.True(t, WantsAudio("Please SPEAK the answer"))
	require.True(t, WantsAudio("can you narrate that?"))
	require.True(t, WantsAudio("I'd like to listen."))

	// Keyword as a substring of a longer word is not a match.
	require.False(t, WantsAudio("the loudspeaker budget is approved"))
	require.False(t, WantsAudio("our soundproofing policy"))
}

func TestWantsAudio_PhrasesMatchOnSubstring(t *testing.T) {
	require.True(t, WantsAudio("could you read aloud the vacation policy"))
	require.True(t, WantsAudio("summarize it and say it"))
	require.False(t, WantsAudio("read the vacation policy"))
}

func TestWantsAudio_TellMeRequiresTriggerWord(t *testing.T) {
	require.True(t, WantsAudio("tell me in short"))
	require.True(t, WantsAudio("Tell me, say something"))
	require.False(t, WantsAudio("tell me about overtime"))
	require.False(t, WantsAudio("tell me"))
}
