package huggingface

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/emesal/ratatoskr/pkg/internal/httpclient"
	providererrors "github.com/emesal/ratatoskr/pkg/provider/errors"
	"github.com/emesal/ratatoskr/pkg/provider/types"
	"github.com/emesal/ratatoskr/pkg/providerutils/httperror"
)

// Embed performs one inference call per input (spec §4.2: "single POST per
// call").
func (p *Provider) Embed(ctx context.Context, modelID, input string) (*types.EmbeddingResult, error) {
	embedding, err := p.postEmbedding(ctx, modelID, input)
	if err != nil {
		return nil, err
	}
	tokens := int64(len(input) / 4)
	return &types.EmbeddingResult{
		Embedding: embedding,
		Usage:     types.EmbeddingUsage{PromptTokens: tokens, TotalTokens: tokens},
	}, nil
}

// EmbedBatch returns one embedding per input, in request order (spec §8
// scenario 4).
func (p *Provider) EmbedBatch(ctx context.Context, modelID string, inputs []string) (*types.EmbeddingsResult, error) {
	embeddings := make([][]float64, 0, len(inputs))
	var totalTokens int64

	for _, input := range inputs {
		embedding, err := p.postEmbedding(ctx, modelID, input)
		if err != nil {
			return nil, err
		}
		embeddings = append(embeddings, embedding)
		totalTokens += int64(len(input) / 4)
	}

	return &types.EmbeddingsResult{
		Embeddings: embeddings,
		Usage:      types.EmbeddingUsage{PromptTokens: totalTokens, TotalTokens: totalTokens},
	}, nil
}

func (p *Provider) postEmbedding(ctx context.Context, modelID, input string) ([]float64, error) {
	resp, err := p.client.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   "/models/" + modelID,
		Body:   map[string]interface{}{"inputs": input},
	})
	if err != nil {
		return nil, providererrors.NewHTTPError("huggingface embedding request failed", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, httperror.MapStatus("huggingface", resp.StatusCode, resp.Body, resp.Headers, nil)
	}
	return parseEmbeddingResponse(resp.Body)
}

func parseEmbeddingResponse(body []byte) ([]float64, error) {
	var embedding []float64
	if err := json.Unmarshal(body, &embedding); err == nil {
		return embedding, nil
	}

	var embeddings [][]float64
	if err := json.Unmarshal(body, &embeddings); err == nil && len(embeddings) > 0 {
		return embeddings[0], nil
	}

	var objResp struct {
		Embedding []float64 `json:"embedding"`
	}
	if err := json.Unmarshal(body, &objResp); err == nil && len(objResp.Embedding) > 0 {
		return objResp.Embedding, nil
	}

	var errResp hfErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return nil, providererrors.NewAPIError("huggingface", 0, errResp.Error, nil)
	}

	return nil, providererrors.NewJSONError(fmt.Sprintf("unexpected embedding response format: %s", string(body)), nil)
}

type hfErrorResponse struct {
	Error string `json:"error"`
}
