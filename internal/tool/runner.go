package tool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Runner dispatches tool invocations coming back from the chat endpoint.
//
// Every failure is converted to a descriptive result string rather than an
// error: the chat protocol expects each tool call to produce *some* textual
// result to feed back into the conversation, so the model can recover
// conversationally from missing parameters or unknown tools.
type Runner struct {
	registry *Registry
}

func NewRunner(registry *Registry) *Runner {
	return &Runner{registry: registry}
}

// Dispatch executes the named tool with the raw JSON argument payload and
// returns a human-readable result. It never returns an error.
func (r *Runner) Dispatch(ctx context.Context, name string, rawArgs string) string {
	t, ok := r.registry.Get(name)
	if !ok {
		slog.Warn("Unknown tool requested", "tool", name)
		return fmt.Sprintf("Unknown function: %s", name)
	}

	// A malformed argument payload degrades to an empty argument object so
	// required-field validation can still name what is missing.
	args := json.RawMessage(rawArgs)
	var probe map[string]interface{}
	if err := json.Unmarshal(args, &probe); err != nil {
		slog.Warn("Malformed tool arguments, using empty object", "tool", name, "error", err)
		args = json.RawMessage("{}")
	}

	if err := ValidateInput(t.Parameters(), args); err != nil {
		var missing *MissingFieldError
		if errors.As(err, &missing) {
			return fmt.Sprintf("Error: missing parameter: %s", missing.Field)
		}
		return fmt.Sprintf("Error executing function: %s", err)
	}

	start := time.Now()
	result, err := t.Execute(ctx, args)
	if err != nil {
		slog.Error("Tool execution failed", "tool", name, "error", err, "duration", time.Since(start))
		return fmt.Sprintf("Error executing function: %s", err)
	}

	slog.Debug("Tool executed", "tool", name, "duration", time.Since(start))
	return result
}

// WrapResult encodes a dispatch result as the tool message content.
func WrapResult(result string) string {
	payload, err := json.Marshal(map[string]string{"result": result})
	if err != nil {
		return `{"result":""}`
	}
	return string(payload)
}
