package huggingface

import (
	"context"
	"net/http"

	"github.com/emesal/ratatoskr/pkg/internal/httpclient"
	"github.com/emesal/ratatoskr/pkg/provider/types"
	"github.com/emesal/ratatoskr/pkg/providerutils/httperror"
)

// hfClassificationLabel is one label/score pair as returned by a HuggingFace
// text-classification pipeline.
type hfClassificationLabel struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// InferNli runs a premise/hypothesis pair through a text-classification
// pipeline model (e.g. roberta-large-mnli) and derives a tri-label result
// by taking the top-scoring label (spec §4.2).
func (p *Provider) InferNli(ctx context.Context, modelID, premise, hypothesis string) (*types.NliResult, error) {
	var raw []hfClassificationLabel
	if err := p.client.DoJSON(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   "/models/" + modelID,
		Body: map[string]interface{}{
			"inputs": map[string]string{
				"text":      premise,
				"text_pair": hypothesis,
			},
		},
	}, &raw); err != nil {
		return nil, httperror.Map("huggingface", err)
	}

	scores := make(map[types.NliLabel]float64, len(raw))
	var top types.NliLabel
	var topScore float64
	for i, entry := range raw {
		label := mapNliLabel(entry.Label)
		scores[label] = entry.Score
		if i == 0 || entry.Score > topScore {
			top = label
			topScore = entry.Score
		}
	}

	return &types.NliResult{Label: top, Scores: scores}, nil
}

func mapNliLabel(raw string) types.NliLabel {
	switch normalizeLabel(raw) {
	case "entailment":
		return types.NliEntailment
	case "contradiction":
		return types.NliContradiction
	default:
		return types.NliNeutral
	}
}

func normalizeLabel(raw string) string {
	out := make([]rune, 0, len(raw))
	for _, r := range raw {
		if r >= 'A' && r <= 'Z' {
			r = r - 'A' + 'a'
		}
		out = append(out, r)
	}
	return string(out)
}
