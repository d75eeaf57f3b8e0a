package rpc

import "github.com/emesal/ratatoskr/pkg/provider/types"

// ChatRequest is the payload for OpChat and OpChatStream.
type ChatRequest struct {
	Messages []types.Message   `json:"messages"`
	Options  types.ChatOptions `json:"options"`
}

// GenerateRequest is the payload for OpGenerate and OpGenerateStream.
type GenerateRequest struct {
	Prompt  string                `json:"prompt"`
	Options types.GenerateOptions `json:"options"`
}

// EmbedRequest is the payload for OpEmbed.
type EmbedRequest struct {
	ModelID string `json:"model_id"`
	Input   string `json:"input"`
}

// EmbedBatchRequest is the payload for OpEmbedBatch.
type EmbedBatchRequest struct {
	ModelID string   `json:"model_id"`
	Inputs  []string `json:"inputs"`
}

// NliRequest is the payload for OpInferNli.
type NliRequest struct {
	ModelID    string `json:"model_id"`
	Premise    string `json:"premise"`
	Hypothesis string `json:"hypothesis"`
}

// ClassifyZeroShotRequest is the payload for OpClassifyZeroShot.
type ClassifyZeroShotRequest struct {
	ModelID string   `json:"model_id"`
	Text    string   `json:"text"`
	Labels  []string `json:"labels"`
}

// ClassifyStanceRequest is the payload for OpClassifyStance.
type ClassifyStanceRequest struct {
	ModelID string `json:"model_id"`
	Text    string `json:"text"`
	Target  string `json:"target"`
}

// CountTokensRequest is the payload for OpCountTokens.
type CountTokensRequest struct {
	ModelID string `json:"model_id"`
	Text    string `json:"text"`
}

// CountTokensReply is the response payload for OpCountTokens.
type CountTokensReply struct {
	Count int64 `json:"count"`
}

// ListModelsReply is the response payload for OpListModels.
type ListModelsReply struct {
	Models []types.ModelMetadata `json:"models"`
}

// ModelStatusRequest is the payload for OpModelStatus.
type ModelStatusRequest struct {
	ID string `json:"id"`
}

// ModelStatusReply is the response payload for OpModelStatus.
type ModelStatusReply struct {
	Model types.ModelMetadata `json:"model"`
	Found bool                `json:"found"`
}

// ResolvePresetRequest is the payload for OpResolvePreset.
type ResolvePresetRequest struct {
	ModelString string `json:"model_string"`
}

// GetCapabilitiesReply is the response payload for OpGetCapabilities. The
// capability set is reported in canonical-sorted order, matching
// types.Capabilities.MarshalJSON (§9 Open Question (b): aggregate only —
// per-model capabilities are reachable via OpListModels instead).
type GetCapabilitiesReply struct {
	Capabilities []types.Capability `json:"capabilities"`
}

// HealthReply is the response payload for OpHealth.
type HealthReply struct {
	OK        bool     `json:"ok"`
	Providers []string `json:"providers"`
}
