package builtin

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harunnryd/shoki/internal/retriever"
)

type policyQueryInput struct {
	Question string `json:"question"`
}

// PolicyQueryTool answers company policy questions by semantic search over
// the policy index. The one builtin that delegates instead of formatting
// locally.
type PolicyQueryTool struct {
	Retriever *retriever.Retriever
	TopK      int
}

func (t *PolicyQueryTool) Name() string { return "query_policy" }

func (t *PolicyQueryTool) Description() string {
	return "Answer questions about company policies (vacation, sick leave, remote work, overtime, dress code, meeting rooms, travel expenses)."
}

func (t *PolicyQueryTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"question": map[string]interface{}{
				"type":        "string",
				"description": "The policy question to look up",
			},
		},
		"required": []string{"question"},
	}
}

func (t *PolicyQueryTool) Execute(ctx context.Context, input json.RawMessage) (string, error) {
	var args policyQueryInput
	if err := json.Unmarshal(input, &args); err != nil {
		return "", fmt.Errorf("invalid input: %w", err)
	}

	results := t.Retriever.Query(ctx, args.Question, t.TopK)
	return retriever.FormatResults(results), nil
}
