package streaming

import (
	"sort"

	"github.com/emesal/ratatoskr/pkg/provider/types"
)

// ToolCallAccumulator reassembles streamed tool-call fragments into the
// contiguous-from-0 index space ChatEvent requires (spec §4.4, §8
// invariant v). Each adapter's stream decoder owns one accumulator and
// feeds it raw (providerIndex, id, name, argsFragment) tuples as they
// arrive off the wire; the accumulator remaps provider indices (which may
// be sparse or non-zero-based) to the dense index sequence callers expect
// and emits the ChatEvents in order.
type ToolCallAccumulator struct {
	order      []int          // provider index, in first-seen order
	remap      map[int]int    // provider index -> dense index
	args       map[int]string // dense index -> accumulated arguments (for non-streaming collapse)
	ids        map[int]string
	names      map[int]string
}

// NewToolCallAccumulator builds an empty accumulator.
func NewToolCallAccumulator() *ToolCallAccumulator {
	return &ToolCallAccumulator{
		remap: make(map[int]int),
		args:  make(map[int]string),
		ids:   make(map[int]string),
		names: make(map[int]string),
	}
}

// Start records the first sighting of providerIndex and returns the
// ChatEvent to emit (ToolCallStart), plus the dense index assigned to it.
// Calling Start again for an already-seen providerIndex is a no-op and
// returns ok=false.
func (a *ToolCallAccumulator) Start(providerIndex int, id, name string) (types.ChatEvent, int, bool) {
	if _, exists := a.remap[providerIndex]; exists {
		return types.ChatEvent{}, 0, false
	}
	dense := len(a.order)
	a.order = append(a.order, providerIndex)
	a.remap[providerIndex] = dense
	a.ids[dense] = id
	a.names[dense] = name
	a.args[dense] = ""
	return types.ToolCallStartEvent(dense, id, name), dense, true
}

// Delta records an argument fragment for providerIndex, auto-starting the
// call (with empty id/name) if a Start frame was never observed — some
// providers omit an explicit start marker and begin deltas immediately.
func (a *ToolCallAccumulator) Delta(providerIndex int, argumentsFragment string) types.ChatEvent {
	dense, ok := a.remap[providerIndex]
	if !ok {
		_, dense, _ = a.Start(providerIndex, "", "")
	}
	a.args[dense] += argumentsFragment
	return types.ToolCallDeltaEvent(dense, argumentsFragment)
}

// ToolCalls returns the fully assembled tool calls in dense-index order,
// for the non-streaming collapse (§4.4).
func (a *ToolCallAccumulator) ToolCalls() []types.ToolCall {
	denseIndices := make([]int, 0, len(a.args))
	for idx := range a.args {
		denseIndices = append(denseIndices, idx)
	}
	sort.Ints(denseIndices)

	calls := make([]types.ToolCall, 0, len(denseIndices))
	for _, idx := range denseIndices {
		calls = append(calls, types.ToolCall{
			ID:        a.ids[idx],
			Name:      a.names[idx],
			Arguments: a.args[idx],
		})
	}
	return calls
}

// CollapseResponse folds a complete, ordered ChatEvent sequence into the
// non-streaming ChatResponse shape (§4.4 "non-streaming collapse"):
// Content/Reasoning concatenate, tool_calls assemble per index, the last
// Usage/Model/RequestId win, and finishReason is supplied by the caller
// (adapters derive it from the provider's terminal record, not from the
// event stream itself).
func CollapseResponse(events []types.ChatEvent, finishReason types.FinishReason) types.ChatResponse {
	resp := types.ChatResponse{FinishReason: finishReason}
	acc := NewToolCallAccumulator()

	for _, ev := range events {
		switch ev.Type {
		case types.ChatEventContent:
			resp.Content += ev.Text
		case types.ChatEventReasoning:
			resp.Reasoning += ev.Text
		case types.ChatEventToolCallStart:
			acc.Start(ev.Index, ev.ToolID, ev.ToolName)
		case types.ChatEventToolCallDelta:
			acc.Delta(ev.Index, ev.Arguments)
		case types.ChatEventUsage:
			resp.Usage = ev.Usage
		case types.ChatEventModel:
			resp.Model = ev.Model
		case types.ChatEventRequestID:
			resp.RequestID = ev.RequestID
		}
	}

	resp.ToolCalls = acc.ToolCalls()
	if resp.ToolCalls == nil {
		resp.ToolCalls = []types.ToolCall{}
	}
	return resp
}
