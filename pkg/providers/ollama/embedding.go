package ollama

import (
	"context"
	"net/http"

	"github.com/emesal/ratatoskr/pkg/internal/httpclient"
	"github.com/emesal/ratatoskr/pkg/provider/types"
	"github.com/emesal/ratatoskr/pkg/providerutils/httperror"
)

type ollamaEmbedResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
	Usage struct {
		PromptTokens int64 `json:"prompt_tokens"`
		TotalTokens  int64 `json:"total_tokens"`
	} `json:"usage"`
}

func (p *Provider) Embed(ctx context.Context, modelID, input string) (*types.EmbeddingResult, error) {
	result, err := p.EmbedBatch(ctx, modelID, []string{input})
	if err != nil {
		return nil, err
	}
	return &types.EmbeddingResult{Embedding: result.Embeddings[0], Usage: result.Usage}, nil
}

func (p *Provider) EmbedBatch(ctx context.Context, modelID string, inputs []string) (*types.EmbeddingsResult, error) {
	var resp ollamaEmbedResponse
	if err := p.client.DoJSON(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   "/v1/embeddings",
		Body:   map[string]interface{}{"model": modelID, "input": inputs},
	}, &resp); err != nil {
		return nil, httperror.Map("ollama", err)
	}

	embeddings := make([][]float64, len(resp.Data))
	for i, item := range resp.Data {
		embeddings[i] = item.Embedding
	}

	return &types.EmbeddingsResult{
		Embeddings: embeddings,
		Usage: types.EmbeddingUsage{
			PromptTokens: resp.Usage.PromptTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}
