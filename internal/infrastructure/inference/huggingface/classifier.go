package huggingface

import (
	"context"
	"fmt"

	"github.com/vkuzmin/visudoc/internal/core/domain"
)

// Classifier ranks candidate labels through a hosted zero-shot model.
type Classifier struct {
	client *Client
	model  string
}

func NewClassifier(client *Client, model string) *Classifier {
	if model == "" {
		model = DefaultZeroShotModel
	}
	return &Classifier{client: client, model: model}
}

// Classify passes the candidate labels through verbatim and returns the
// model's ranked output. A model that never becomes ready within the retry
// budget is a soft failure: the document is labeled Other with score 0
// instead of surfacing an error.
func (c *Classifier) Classify(ctx context.Context, text string, labels []string) ([]domain.LabelScore, error) {
	payload := map[string]any{
		"inputs": text,
		"parameters": map[string]any{
			"candidate_labels": labels,
		},
	}

	var response struct {
		Labels []string  `json:"labels"`
		Scores []float64 `json:"scores"`
	}
	if err := c.client.call(ctx, "zero_shot_classification", c.model, payload, &response); err != nil {
		if isModelLoading(err) {
			return []domain.LabelScore{{Label: domain.LabelOther, Score: 0}}, nil
		}
		return nil, fmt.Errorf("zero-shot classify: %w", err)
	}

	if len(response.Labels) == 0 {
		return []domain.LabelScore{{Label: domain.LabelOther, Score: 0}}, nil
	}

	out := make([]domain.LabelScore, 0, len(response.Labels))
	for i, label := range response.Labels {
		score := 0.0
		if i < len(response.Scores) {
			score = response.Scores[i]
		}
		out = append(out, domain.LabelScore{Label: label, Score: score})
	}
	return out, nil
}
