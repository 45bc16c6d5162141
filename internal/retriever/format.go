package retriever

import (
	"fmt"
	"strings"
)

// FormatResults renders a ranked result list as prose for the conversation.
// Presentation only; the retrieval contract is the raw ranked list.
func FormatResults(results []Result) string {
	if len(results) == 0 {
		return "No relevant policies found."
	}
	if results[0].Unavailable {
		return results[0].Text
	}

	var b strings.Builder
	b.WriteString("Based on company policies:\n\n")
	for i, result := range results {
		category := result.Metadata["category"]
		if category == "" {
			category = "General"
		}
		fmt.Fprintf(&b, "%d. **%s** (Relevance: %.2f)\n", i+1, category, result.Score)
		fmt.Fprintf(&b, "   %s\n", result.Text)
		if effective := result.Metadata["effective_date"]; effective != "" {
			fmt.Fprintf(&b, "   *Effective: %s*\n", effective)
		}
		b.WriteString("\n")
	}

	return b.String()
}
