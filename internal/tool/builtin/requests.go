package builtin

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// The office request tools simulate submission: each is a pure function
// from validated arguments to a confirmation sentence, no state persisted.

type dayOffInput struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

// DayOffTool submits a day-off request.
type DayOffTool struct{}

func (t *DayOffTool) Name() string { return "request_day_off" }

func (t *DayOffTool) Description() string {
	return "Request a day off from work."
}

func (t *DayOffTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"date": map[string]interface{}{
				"type":        "string",
				"description": "The date for the day off in YYYY-MM-DD format",
			},
			"reason": map[string]interface{}{
				"type":        "string",
				"description": "Reason for the day off",
			},
		},
		"required": []string{"date"},
	}
}

func (t *DayOffTool) Execute(ctx context.Context, input json.RawMessage) (string, error) {
	var args dayOffInput
	if err := json.Unmarshal(input, &args); err != nil {
		return "", fmt.Errorf("invalid input: %w", err)
	}
	return fmt.Sprintf("Day off request for %s%s has been submitted.", args.Date, reasonSuffix(args.Reason)), nil
}

type wfhInput struct {
	Date string `json:"date"`
}

// WFHTool submits a work-from-home request.
type WFHTool struct{}

func (t *WFHTool) Name() string { return "request_wfh" }

func (t *WFHTool) Description() string {
	return "Request to work from home."
}

func (t *WFHTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"date": map[string]interface{}{
				"type":        "string",
				"description": "The date for working from home in YYYY-MM-DD format",
			},
		},
		"required": []string{"date"},
	}
}

func (t *WFHTool) Execute(ctx context.Context, input json.RawMessage) (string, error) {
	var args wfhInput
	if err := json.Unmarshal(input, &args); err != nil {
		return "", fmt.Errorf("invalid input: %w", err)
	}
	return fmt.Sprintf("Work-from-home request for %s has been submitted.", args.Date), nil
}

type lateComingInput struct {
	Date   string `json:"date"`
	Time   string `json:"time"`
	Reason string `json:"reason"`
}

// LateComingTool submits a late-arrival request.
type LateComingTool struct{}

func (t *LateComingTool) Name() string { return "request_late_coming" }

func (t *LateComingTool) Description() string {
	return "Request permission to arrive late to work."
}

func (t *LateComingTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"date": map[string]interface{}{
				"type":        "string",
				"description": "The date for late arrival in YYYY-MM-DD format",
			},
			"time": map[string]interface{}{
				"type":        "string",
				"description": "The expected arrival time in HH:MM format",
			},
			"reason": map[string]interface{}{
				"type":        "string",
				"description": "Reason for arriving late",
			},
		},
		"required": []string{"date", "time"},
	}
}

func (t *LateComingTool) Execute(ctx context.Context, input json.RawMessage) (string, error) {
	var args lateComingInput
	if err := json.Unmarshal(input, &args); err != nil {
		return "", fmt.Errorf("invalid input: %w", err)
	}
	return fmt.Sprintf("Late arrival request for %s at %s%s has been submitted.", args.Date, args.Time, reasonSuffix(args.Reason)), nil
}

type overtimeInput struct {
	Date  string  `json:"date"`
	Hours float64 `json:"hours"`
}

// OvertimeTool submits an overtime request.
type OvertimeTool struct{}

func (t *OvertimeTool) Name() string { return "request_overtime" }

func (t *OvertimeTool) Description() string {
	return "Request to work overtime."
}

func (t *OvertimeTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"date": map[string]interface{}{
				"type":        "string",
				"description": "The date for overtime work in YYYY-MM-DD format",
			},
			"hours": map[string]interface{}{
				"type":        "number",
				"description": "Number of overtime hours requested",
			},
		},
		"required": []string{"date", "hours"},
	}
}

func (t *OvertimeTool) Execute(ctx context.Context, input json.RawMessage) (string, error) {
	var args overtimeInput
	if err := json.Unmarshal(input, &args); err != nil {
		return "", fmt.Errorf("invalid input: %w", err)
	}
	return fmt.Sprintf("Overtime request for %s hours on %s has been submitted.", formatHours(args.Hours), args.Date), nil
}

type assetsInput struct {
	Assets []string `json:"assets"`
}

// AssetsTool submits an equipment request.
type AssetsTool struct{}

func (t *AssetsTool) Name() string { return "request_assets" }

func (t *AssetsTool) Description() string {
	return "Request assets or equipment for work."
}

func (t *AssetsTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"assets": map[string]interface{}{
				"type":        "array",
				"description": "List of assets requested",
				"items": map[string]interface{}{
					"type":        "string",
					"description": "Name of an asset (e.g., laptop, monitor)",
				},
			},
		},
		"required": []string{"assets"},
	}
}

func (t *AssetsTool) Execute(ctx context.Context, input json.RawMessage) (string, error) {
	var args assetsInput
	if err := json.Unmarshal(input, &args); err != nil {
		return "", fmt.Errorf("invalid input: %w", err)
	}
	return fmt.Sprintf("Asset request for %s has been submitted.", strings.Join(args.Assets, ", ")), nil
}

type meetingRoomInput struct {
	Date      string  `json:"date"`
	StartTime string  `json:"start_time"`
	Duration  float64 `json:"duration"`
	RoomID    string  `json:"room_id"`
}

// MeetingRoomTool books a meeting room.
type MeetingRoomTool struct{}

func (t *MeetingRoomTool) Name() string { return "book_meeting_room" }

func (t *MeetingRoomTool) Description() string {
	return "Book a meeting room for a specific time."
}

func (t *MeetingRoomTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"date": map[string]interface{}{
				"type":        "string",
				"description": "The date for the meeting in YYYY-MM-DD format",
			},
			"start_time": map[string]interface{}{
				"type":        "string",
				"description": "Start time of the meeting in HH:MM format",
			},
			"duration": map[string]interface{}{
				"type":        "number",
				"description": "Duration of the meeting in hours",
			},
			"room_id": map[string]interface{}{
				"type":        "string",
				"description": "Identifier for the meeting room",
			},
		},
		"required": []string{"date", "start_time", "duration", "room_id"},
	}
}

func (t *MeetingRoomTool) Execute(ctx context.Context, input json.RawMessage) (string, error) {
	var args meetingRoomInput
	if err := json.Unmarshal(input, &args); err != nil {
		return "", fmt.Errorf("invalid input: %w", err)
	}
	return fmt.Sprintf("Meeting room %s booked on %s from %s for %s hours.",
		args.RoomID, args.Date, args.StartTime, formatHours(args.Duration)), nil
}

func reasonSuffix(reason string) string {
	if strings.TrimSpace(reason) == "" {
		return ""
	}
	return " for " + reason
}

// formatHours renders whole hours without a decimal point ("2", "1.5").
func formatHours(hours float64) string {
	if hours == float64(int64(hours)) {
		return fmt.Sprintf("%d", int64(hours))
	}
	return fmt.Sprintf("%g", hours)
}
