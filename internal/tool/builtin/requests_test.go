package builtin

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/harunnryd/shoki/internal/config"
	"github.com/harunnryd/shoki/internal/retriever"
	toolcore "github.com/harunnryd/shoki/internal/tool"

	"github.com/stretchr/testify/require"
)

func TestRequestTools_Formatting(t *testing.T) {
	cases := []struct {
		tool  toolcore.Tool
		input string
		want  string
	}{
		{
			tool:  &DayOffTool{},
			input: `{"date": "2025-11-05"}`,
			want:  "Day off request for 2025-11-05 has been submitted.",
		},
		{
			tool:  &DayOffTool{},
			input: `{"date": "2025-11-05", "reason": "family event"}`,
			want:  "Day off request for 2025-11-05 for family event has been submitted.",
		},
		{
			tool:  &WFHTool{},
			input: `{"date": "2025-11-06"}`,
			want:  "Work-from-home request for 2025-11-06 has been submitted.",
		},
		{
			tool:  &LateComingTool{},
			input: `{"date": "2025-11-07", "time": "10:30"}`,
			want:  "Late arrival request for 2025-11-07 at 10:30 has been submitted.",
		},
		{
			tool:  &OvertimeTool{},
			input: `{"date": "2025-11-08", "hours": 2}`,
			want:  "Overtime request for 2 hours on 2025-11-08 has been submitted.",
		},
		{
			tool:  &OvertimeTool{},
			input: `{"date": "2025-11-08", "hours": 1.5}`,
			want:  "Overtime request for 1.5 hours on 2025-11-08 has been submitted.",
		},
		{
			tool:  &AssetsTool{},
			input: `{"assets": ["laptop", "monitor", "keyboard"]}`,
			want:  "Asset request for laptop, monitor, keyboard has been submitted.",
		},
		{
			tool:  &MeetingRoomTool{},
			input: `{"date": "2025-11-05", "start_time": "14:00", "duration": 2, "room_id": "A1"}`,
			want:  "Meeting room A1 booked on 2025-11-05 from 14:00 for 2 hours.",
		},
	}

	for _, tc := range cases {
		got, err := tc.tool.Execute(context.Background(), json.RawMessage(tc.input))
		require.NoError(t, err, "tool: %s", tc.tool.Name())
		require.Equal(t, tc.want, got)
	}
}

func TestMeetingRoomResult_ContainsBookingDetails(t *testing.T) {
	got, err := (&MeetingRoomTool{}).Execute(context.Background(),
		json.RawMessage(`{"date": "2025-11-05", "start_time": "14:00", "duration": 2, "room_id": "A1"}`))
	require.NoError(t, err)
	require.Contains(t, got, "A1")
	require.Contains(t, got, "2025-11-05")
	require.Contains(t, got, "14:00")
	require.Contains(t, got, "2")
}

func TestPolicyQueryTool_DegradedRetriever(t *testing.T) {
	// No embedder: the retriever opens but stays unavailable.
	ret := retriever.New(config.RetrieverConfig{}, nil)
	tool := &PolicyQueryTool{Retriever: ret, TopK: 3}

	got, err := tool.Execute(context.Background(), json.RawMessage(`{"question": "how many vacation days?"}`))
	require.NoError(t, err)
	require.Equal(t, retriever.UnavailableMessage, got)
}

func TestRegisterAll_RegistersEverything(t *testing.T) {
	reg := toolcore.NewRegistry()
	RegisterAll(reg, retriever.New(config.RetrieverConfig{}, nil), 3)

	for _, name := range []string{
		"request_day_off", "request_wfh", "request_late_coming",
		"request_overtime", "request_assets", "book_meeting_room", "query_policy",
	} {
		_, ok := reg.Get(name)
		require.True(t, ok, "tool not registered: %s", name)
	}
}
