package audio

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCleanText_StripsMarkdown(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"**Vacation Policy**", "Vacation Policy"},
		{"*emphasis* and _more_", "emphasis and more"},
		{"use `code` here", "use code here"},
		{"# Heading\nbody text", "Heading body text"},
		{"[the handbook](https://example.com/handbook)", "the handbook"},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, CleanText(tc.in))
	}
}

func TestCleanText_CollapsesWhitespace(t *testing.T) {
	require.Equal(t, "one two three", CleanText("one\n\ntwo\t three  "))
	require.Equal(t, "", CleanText("   \n\t "))
}
