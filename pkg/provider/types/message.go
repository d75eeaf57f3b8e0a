package types

// MessageRole represents the role of a message sender in a conversation.
type MessageRole string

const (
	// RoleSystem represents system instructions.
	RoleSystem MessageRole = "system"
	// RoleUser represents user input.
	RoleUser MessageRole = "user"
	// RoleAssistant represents model responses.
	RoleAssistant MessageRole = "assistant"
	// RoleTool represents tool execution results.
	RoleTool MessageRole = "tool"
)

// MessageContent is a tagged variant over the kinds of content a message
// can carry. Only text exists today; the Type tag lets richer content be
// added later without breaking callers that switch on it.
type MessageContent struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// TextContent builds a text MessageContent.
func TextContent(text string) MessageContent {
	return MessageContent{Type: "text", Text: text}
}

// Message is a single turn in a conversation.
type Message struct {
	// Role of the message sender.
	Role MessageRole `json:"role"`

	// Content of the message. Empty for assistant messages that are
	// tool-calls-only.
	Content MessageContent `json:"content"`

	// ToolCalls is populated on assistant messages that invoked tools.
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`

	// Name is an optional sender name.
	Name string `json:"name,omitempty"`

	// ToolCallID identifies the tool call this message answers.
	// Required when Role == RoleTool.
	ToolCallID string `json:"tool_call_id,omitempty"`
}

// NewSystemMessage builds a system message with plain text content.
func NewSystemMessage(text string) Message {
	return Message{Role: RoleSystem, Content: TextContent(text)}
}

// NewUserMessage builds a user message with plain text content.
func NewUserMessage(text string) Message {
	return Message{Role: RoleUser, Content: TextContent(text)}
}

// NewAssistantMessage builds an assistant message with plain text content.
func NewAssistantMessage(text string) Message {
	return Message{Role: RoleAssistant, Content: TextContent(text)}
}

// NewToolMessage builds a tool-result message answering toolCallID.
func NewToolMessage(toolCallID, text string) Message {
	return Message{Role: RoleTool, Content: TextContent(text), ToolCallID: toolCallID}
}
