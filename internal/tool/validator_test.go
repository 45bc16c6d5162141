package tool

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"date": map[string]interface{}{
				"type": "string",
			},
			"hours": map[string]interface{}{
				"type": "number",
			},
			"assets": map[string]interface{}{
				"type": "array",
				"items": map[string]interface{}{
					"type": "string",
				},
			},
		},
		"required": []string{"date"},
	}
}

func TestValidateInput_Valid(t *testing.T) {
	input := json.RawMessage(`{"date": "2025-11-05", "hours": 2, "assets": ["laptop"]}`)
	require.NoError(t, ValidateInput(sampleSchema(), input))
}

func TestValidateInput_MissingRequiredField(t *testing.T) {
	err := ValidateInput(sampleSchema(), json.RawMessage(`{}`))
	require.Error(t, err)

	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, "date", missing.Field)
}

func TestValidateInput_WrongType(t *testing.T) {
	err := ValidateInput(sampleSchema(), json.RawMessage(`{"date": "2025-11-05", "hours": "two"}`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "hours")
}

func TestValidateInput_ArrayItemType(t *testing.T) {
	err := ValidateInput(sampleSchema(), json.RawMessage(`{"date": "2025-11-05", "assets": ["laptop", 3]}`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "assets[1]")
}

func TestValidateInput_ExtraFieldsPassThrough(t *testing.T) {
	input := json.RawMessage(`{"date": "2025-11-05", "note": "anything"}`)
	require.NoError(t, ValidateInput(sampleSchema(), input))
}

func TestValidateInput_RequiredAsInterfaceSlice(t *testing.T) {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
		"required":   []interface{}{"room_id"},
	}

	err := ValidateInput(schema, json.RawMessage(`{}`))
	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, "room_id", missing.Field)
}
