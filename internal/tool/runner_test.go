package tool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

type echoTool struct {
	name     string
	required []string
	execErr  error
}

func (t *echoTool) Name() string        { return t.name }
func (t *echoTool) Description() string { return "echoes its date argument" }
func (t *echoTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"date": map[string]interface{}{"type": "string"},
		},
		"required": t.required,
	}
}

func (t *echoTool) Execute(ctx context.Context, input json.RawMessage) (string, error) {
	if t.execErr != nil {
		return "", t.execErr
	}
	var args struct {
		Date string `json:"date"`
	}
	if err := json.Unmarshal(input, &args); err != nil {
		return "", err
	}
	return fmt.Sprintf("echo %s", args.Date), nil
}

func TestDispatch_Success(t *testing.T) {
	registry := NewRegistry()
	registry.Register(&echoTool{name: "echo_date", required: []string{"date"}})
	runner := NewRunner(registry)

	result := runner.Dispatch(context.Background(), "echo_date", `{"date": "2025-11-05"}`)
	require.Equal(t, "echo 2025-11-05", result)
}

func TestDispatch_UnknownTool(t *testing.T) {
	runner := NewRunner(NewRegistry())

	result := runner.Dispatch(context.Background(), "no_such_tool", `{}`)
	require.Equal(t, "Unknown function: no_such_tool", result)
}

func TestDispatch_MissingRequiredField(t *testing.T) {
	registry := NewRegistry()
	registry.Register(&echoTool{name: "echo_date", required: []string{"date"}})
	runner := NewRunner(registry)

	result := runner.Dispatch(context.Background(), "echo_date", `{}`)
	require.Equal(t, "Error: missing parameter: date", result)
}

func TestDispatch_MalformedArgumentsDegradeToEmptyObject(t *testing.T) {
	registry := NewRegistry()
	registry.Register(&echoTool{name: "echo_date", required: []string{"date"}})
	runner := NewRunner(registry)

	// Broken JSON becomes an empty object, so validation still names the
	// missing field instead of failing on the parse.
	result := runner.Dispatch(context.Background(), "echo_date", `{"date": `)
	require.Equal(t, "Error: missing parameter: date", result)
}

func TestDispatch_ExecutionError(t *testing.T) {
	registry := NewRegistry()
	registry.Register(&echoTool{name: "echo_date", execErr: errors.New("backend down")})
	runner := NewRunner(registry)

	result := runner.Dispatch(context.Background(), "echo_date", `{"date": "2025-11-05"}`)
	require.Equal(t, "Error executing function: backend down", result)
}

func TestWrapResult(t *testing.T) {
	require.JSONEq(t, `{"result": "Day off request for 2025-11-05 has been submitted."}`,
		WrapResult("Day off request for 2025-11-05 has been submitted."))
}

func TestRegistryDescriptors_SortedByName(t *testing.T) {
	registry := NewRegistry()
	registry.Register(&echoTool{name: "zeta"})
	registry.Register(&echoTool{name: "alpha"})

	defs := registry.Descriptors()
	require.Len(t, defs, 2)
	require.Equal(t, "alpha", defs[0].Name)
	require.Equal(t, "zeta", defs[1].Name)
}
