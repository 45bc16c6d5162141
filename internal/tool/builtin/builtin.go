package builtin

import (
	"github.com/harunnryd/shoki/internal/retriever"
	toolcore "github.com/harunnryd/shoki/internal/tool"
)

// RegisterAll wires the office builtins into the registry.
func RegisterAll(reg *toolcore.Registry, ret *retriever.Retriever, topK int) {
	reg.Register(&DayOffTool{})
	reg.Register(&WFHTool{})
	reg.Register(&LateComingTool{})
	reg.Register(&OvertimeTool{})
	reg.Register(&AssetsTool{})
	reg.Register(&MeetingRoomTool{})
	reg.Register(&PolicyQueryTool{Retriever: ret, TopK: topK})
}
