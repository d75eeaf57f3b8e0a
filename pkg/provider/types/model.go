package types

import "encoding/json"

// ModelInfo is the identity and capability surface of a registered model.
type ModelInfo struct {
	ID            string       `json:"id"`
	Provider      string       `json:"provider"`
	Capabilities  Capabilities `json:"capabilities"`
	ContextWindow *int64       `json:"context_window,omitempty"`
	Dimensions    *int64       `json:"dimensions,omitempty"`
}

// Pricing is per-million-token pricing for a model, when known.
type Pricing struct {
	PromptPerMTok     *float64 `json:"prompt_per_mtok,omitempty"`
	CompletionPerMTok *float64 `json:"completion_per_mtok,omitempty"`
}

// ModelMetadata is a single entry in the model registry (§3, §4.6).
type ModelMetadata struct {
	Info            ModelInfo         `json:"info"`
	Parameters      map[string]any    `json:"parameters,omitempty"`
	Pricing         *Pricing          `json:"pricing,omitempty"`
	MaxOutputTokens *int64            `json:"max_output_tokens,omitempty"`
}

// Merge applies incoming per-field onto m per spec §4.6: parameters merge
// key-by-key (incoming keys overwrite, absent keys preserved); pricing,
// max_output_tokens, and context_window replace only if incoming is
// non-nil; capabilities replace only if incoming is non-empty; id/provider
// never change. Merge returns the merged value; m is not mutated.
func (m ModelMetadata) Merge(incoming ModelMetadata) ModelMetadata {
	merged := m

	if len(incoming.Parameters) > 0 {
		merged.Parameters = make(map[string]any, len(m.Parameters)+len(incoming.Parameters))
		for k, v := range m.Parameters {
			merged.Parameters[k] = v
		}
	}
	for k, v := range incoming.Parameters {
		merged.Parameters[k] = v
	}

	if incoming.Pricing != nil {
		merged.Pricing = incoming.Pricing
	}
	if incoming.MaxOutputTokens != nil {
		merged.MaxOutputTokens = incoming.MaxOutputTokens
	}
	if incoming.Info.ContextWindow != nil {
		merged.Info.ContextWindow = incoming.Info.ContextWindow
	}
	if incoming.Info.Dimensions != nil {
		merged.Info.Dimensions = incoming.Info.Dimensions
	}
	if len(incoming.Info.Capabilities.List()) > 0 {
		merged.Info.Capabilities = incoming.Info.Capabilities
	}

	return merged
}

// PresetParameters mirrors the nullable fields of ChatOptions/GenerateOptions
// that a preset may supply as defaults (§3, §4.6).
type PresetParameters struct {
	Temperature      *float64          `json:"temperature,omitempty"`
	MaxTokens        *int64            `json:"max_tokens,omitempty"`
	TopP             *float64          `json:"top_p,omitempty"`
	TopK             *int64            `json:"top_k,omitempty"`
	Stop             []string          `json:"stop,omitempty"`
	FrequencyPenalty *float64          `json:"frequency_penalty,omitempty"`
	PresencePenalty  *float64          `json:"presence_penalty,omitempty"`
	Seed             *int64            `json:"seed,omitempty"`
	ToolChoice       *ToolChoice       `json:"tool_choice,omitempty"`
	ResponseFormat   *ResponseFormat   `json:"response_format,omitempty"`
	ParallelToolCalls *bool            `json:"parallel_tool_calls,omitempty"`
	CachePrompt      *bool             `json:"cache_prompt,omitempty"`
	Reasoning        *ReasoningOptions `json:"reasoning,omitempty"`
}

// IsEmpty reports whether no field of p is set (used to decide whether a
// PresetEntry serializes as a bare string or a structured form, §9).
func (p *PresetParameters) IsEmpty() bool {
	if p == nil {
		return true
	}
	return p.Temperature == nil && p.MaxTokens == nil && p.TopP == nil &&
		p.TopK == nil && len(p.Stop) == 0 && p.FrequencyPenalty == nil &&
		p.PresencePenalty == nil && p.Seed == nil && p.ToolChoice == nil &&
		p.ResponseFormat == nil && p.ParallelToolCalls == nil &&
		p.CachePrompt == nil && p.Reasoning == nil
}

// PresetEntry is either a bare model id or a model id plus default
// parameters (§4.6).
type PresetEntry struct {
	ModelID    string            `json:"model"`
	Parameters *PresetParameters `json:"parameters,omitempty"`
}

// MarshalJSON writes the bare-string form when Parameters carries no
// defaults, and the structured `{model, parameters}` form otherwise, for
// stable diffs (§9: "always write the structured form when parameters is
// non-empty and the bare form otherwise").
func (e PresetEntry) MarshalJSON() ([]byte, error) {
	if e.Parameters.IsEmpty() {
		return json.Marshal(e.ModelID)
	}
	type structured PresetEntry
	return json.Marshal(structured(e))
}

// UnmarshalJSON accepts both the legacy bare-string form and the
// structured form (§4.6, §6: "Legacy bare strings MUST load without
// migration").
func (e *PresetEntry) UnmarshalJSON(data []byte) error {
	var bare string
	if err := json.Unmarshal(data, &bare); err == nil {
		e.ModelID = bare
		e.Parameters = nil
		return nil
	}
	type structured PresetEntry
	var s structured
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*e = PresetEntry(s)
	return nil
}

// ResolvedModel is the result of resolving a caller-supplied model string,
// possibly a `registry:TIER/CAPABILITY` preset reference (§4.5).
type ResolvedModel struct {
	ModelID          string
	PresetParameters *PresetParameters
}

// ApplyDefaults fills every nil field of opts from preset, leaving fields
// the caller already set untouched. It is pure: opts and preset are not
// mutated, and the same (opts, preset) pair always yields the same result
// (spec §8 invariant ii, §9).
func ApplyDefaults(opts ChatOptions, preset *PresetParameters) ChatOptions {
	if preset == nil {
		return opts
	}
	result := opts.Clone()
	if result.Temperature == nil {
		result.Temperature = preset.Temperature
	}
	if result.MaxTokens == nil {
		result.MaxTokens = preset.MaxTokens
	}
	if result.TopP == nil {
		result.TopP = preset.TopP
	}
	if result.TopK == nil {
		result.TopK = preset.TopK
	}
	if result.Stop == nil {
		result.Stop = preset.Stop
	}
	if result.FrequencyPenalty == nil {
		result.FrequencyPenalty = preset.FrequencyPenalty
	}
	if result.PresencePenalty == nil {
		result.PresencePenalty = preset.PresencePenalty
	}
	if result.Seed == nil {
		result.Seed = preset.Seed
	}
	if result.ToolChoice == nil {
		result.ToolChoice = preset.ToolChoice
	}
	if result.ResponseFormat == nil {
		result.ResponseFormat = preset.ResponseFormat
	}
	if result.ParallelToolCalls == nil {
		result.ParallelToolCalls = preset.ParallelToolCalls
	}
	if result.CachePrompt == nil {
		result.CachePrompt = preset.CachePrompt
	}
	if result.Reasoning == nil {
		result.Reasoning = preset.Reasoning
	}
	return result
}
