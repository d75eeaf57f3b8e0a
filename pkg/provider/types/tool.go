package types

import "encoding/json"

// ToolDefinition describes a tool the model may call. Parameters is a
// JSON-Schema value, forwarded to the provider verbatim.
type ToolDefinition struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  json.RawMessage `json:"parameters"`
}

// ToolCall is a single invocation of a tool, produced by the model.
// Arguments deliberately stays a JSON-encoded string rather than a parsed
// map so streaming fragments can be concatenated without mid-stream
// reparsing; callers decode it once the call is complete.
type ToolCall struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// ToolChoiceKind selects how the model should use the available tools.
type ToolChoiceKind string

const (
	ToolChoiceAuto     ToolChoiceKind = "auto"
	ToolChoiceNone     ToolChoiceKind = "none"
	ToolChoiceRequired ToolChoiceKind = "required"
	ToolChoiceFunction ToolChoiceKind = "function"
)

// ToolChoice is the tagged `tool_choice` option. Name is only meaningful
// when Kind == ToolChoiceFunction.
type ToolChoice struct {
	Kind ToolChoiceKind `json:"kind"`
	Name string         `json:"name,omitempty"`
}

// AutoToolChoice lets the model decide whether to call tools.
func AutoToolChoice() ToolChoice { return ToolChoice{Kind: ToolChoiceAuto} }

// NoneToolChoice prevents the model from calling any tools.
func NoneToolChoice() ToolChoice { return ToolChoice{Kind: ToolChoiceNone} }

// RequiredToolChoice forces the model to call at least one tool.
func RequiredToolChoice() ToolChoice { return ToolChoice{Kind: ToolChoiceRequired} }

// FunctionToolChoice forces the model to call the named tool.
func FunctionToolChoice(name string) ToolChoice {
	return ToolChoice{Kind: ToolChoiceFunction, Name: name}
}
