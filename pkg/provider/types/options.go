package types

import "encoding/json"

// ReasoningEffort selects how much effort a reasoning-capable model should
// spend before answering.
type ReasoningEffort string

const (
	ReasoningEffortLow    ReasoningEffort = "low"
	ReasoningEffortMedium ReasoningEffort = "med"
	ReasoningEffortHigh   ReasoningEffort = "high"
)

// ReasoningOptions configures a reasoning-capable model's thinking budget.
// Every field is optional; absence means "let the provider decide".
type ReasoningOptions struct {
	Effort             *ReasoningEffort `json:"effort,omitempty"`
	MaxTokens          *int64           `json:"max_tokens,omitempty"`
	ExcludeFromOutput  *bool            `json:"exclude_from_output,omitempty"`
}

// ResponseFormatKind tags the ResponseFormat variant.
type ResponseFormatKind string

const (
	ResponseFormatText       ResponseFormatKind = "text"
	ResponseFormatJSONObject ResponseFormatKind = "json_object"
	ResponseFormatJSONSchema ResponseFormatKind = "json_schema"
)

// ResponseFormat constrains the shape of the model's output. Schema is only
// meaningful when Kind == ResponseFormatJSONSchema.
type ResponseFormat struct {
	Kind   ResponseFormatKind `json:"kind"`
	Schema json.RawMessage    `json:"schema,omitempty"`
}

// TextResponseFormat requests plain text output.
func TextResponseFormat() ResponseFormat { return ResponseFormat{Kind: ResponseFormatText} }

// JSONObjectResponseFormat requests an unconstrained JSON object.
func JSONObjectResponseFormat() ResponseFormat {
	return ResponseFormat{Kind: ResponseFormatJSONObject}
}

// JSONSchemaResponseFormat requests output conforming to schema.
func JSONSchemaResponseFormat(schema json.RawMessage) ResponseFormat {
	return ResponseFormat{Kind: ResponseFormatJSONSchema, Schema: schema}
}

// ChatOptions carries every generation knob recognized by spec §3. All
// knobs except Model are pointers: nil means "let the provider or preset
// decide". ApplyDefaults (model.go) relies on this to fill only the
// fields the caller left unset — never replace the whole struct.
type ChatOptions struct {
	Model string `json:"model"`

	Temperature       *float64 `json:"temperature,omitempty"`
	MaxTokens         *int64   `json:"max_tokens,omitempty"`
	TopP              *float64 `json:"top_p,omitempty"`
	TopK              *int64   `json:"top_k,omitempty"`
	Stop              []string `json:"stop,omitempty"`
	FrequencyPenalty  *float64 `json:"frequency_penalty,omitempty"`
	PresencePenalty   *float64 `json:"presence_penalty,omitempty"`
	Seed              *int64   `json:"seed,omitempty"`

	Tools      []ToolDefinition `json:"tools,omitempty"`
	ToolChoice *ToolChoice      `json:"tool_choice,omitempty"`

	ResponseFormat     *ResponseFormat `json:"response_format,omitempty"`
	ParallelToolCalls  *bool           `json:"parallel_tool_calls,omitempty"`
	CachePrompt        *bool           `json:"cache_prompt,omitempty"`
	Reasoning          *ReasoningOptions `json:"reasoning,omitempty"`

	// RawProviderOptions is forwarded verbatim into the provider envelope;
	// adapters MUST NOT interpret it.
	RawProviderOptions json.RawMessage `json:"raw_provider_options,omitempty"`
}

// GenerateOptions is the non-chat counterpart of ChatOptions. It shares the
// same field set (§3 describes ChatOptions/GenerateOptions as one knob
// list); the distinct name preserves the capability distinction without
// duplicating the struct.
type GenerateOptions = ChatOptions

// Clone returns a shallow copy of o suitable for apply_defaults to mutate
// without aliasing the caller's struct.
func (o ChatOptions) Clone() ChatOptions {
	clone := o
	if o.Stop != nil {
		clone.Stop = append([]string(nil), o.Stop...)
	}
	if o.Tools != nil {
		clone.Tools = append([]ToolDefinition(nil), o.Tools...)
	}
	return clone
}
