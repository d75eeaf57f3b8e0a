package huggingface

import (
	"context"
	"net/http"

	"github.com/emesal/ratatoskr/pkg/internal/httpclient"
	providererrors "github.com/emesal/ratatoskr/pkg/provider/errors"
	"github.com/emesal/ratatoskr/pkg/provider/types"
	"github.com/emesal/ratatoskr/pkg/providerutils/httperror"
)

type hfZeroShotResponse struct {
	Sequence string    `json:"sequence"`
	Labels   []string  `json:"labels"`
	Scores   []float64 `json:"scores"`
}

// ClassifyZeroShot runs the HuggingFace zero-shot-classification pipeline
// and returns per-label scores plus the top label (spec §4.2).
func (p *Provider) ClassifyZeroShot(ctx context.Context, modelID, text string, labels []string) (*types.ClassifyResult, error) {
	return p.classify(ctx, modelID, text, labels, "")
}

// ClassifyStance reuses the zero-shot-classification pipeline with a
// hypothesis template that plugs the target into each candidate stance
// label, since HuggingFace has no dedicated stance-detection pipeline.
func (p *Provider) ClassifyStance(ctx context.Context, modelID, text, target string) (*types.ClassifyResult, error) {
	labels := []string{"favor", "against", "neutral"}
	template := "This text is in {} of " + target + "."
	return p.classify(ctx, modelID, text, labels, template)
}

func (p *Provider) classify(ctx context.Context, modelID, text string, labels []string, hypothesisTemplate string) (*types.ClassifyResult, error) {
	parameters := map[string]interface{}{"candidate_labels": labels}
	if hypothesisTemplate != "" {
		parameters["hypothesis_template"] = hypothesisTemplate
	}

	var resp hfZeroShotResponse
	if err := p.client.DoJSON(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   "/models/" + modelID,
		Body: map[string]interface{}{
			"inputs":     text,
			"parameters": parameters,
		},
	}, &resp); err != nil {
		return nil, httperror.Map("huggingface", err)
	}

	if len(resp.Labels) == 0 {
		return nil, providererrors.ErrEmptyResponse
	}

	scores := make(map[string]float64, len(resp.Labels))
	for i, label := range resp.Labels {
		if i < len(resp.Scores) {
			scores[label] = resp.Scores[i]
		}
	}

	return &types.ClassifyResult{
		TopLabel:   resp.Labels[0],
		Confidence: resp.Scores[0],
		Scores:     scores,
	}, nil
}
