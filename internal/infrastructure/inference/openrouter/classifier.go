package openrouter

import (
	"context"
	"strings"

	"github.com/vkuzmin/visudoc/internal/core/domain"
)

// Classifier picks a document category by asking the chat model to name one
// label from a fixed list. The model's free-text reply is matched back to the
// label set; a prompted match carries a fixed confidence rather than a model
// probability.
type Classifier struct {
	client *Client
}

func NewClassifier(client *Client) *Classifier {
	return &Classifier{client: client}
}

func (c *Classifier) Classify(ctx context.Context, text string, labels []string) ([]domain.LabelScore, error) {
	if len(labels) == 0 {
		labels = domain.DefaultCategories
	}

	reply, err := c.client.complete(ctx, "classify", classifyPrompt(text, labels), classifyPromptMaxTokens)
	if err != nil {
		return nil, domain.WrapError(domain.ErrAIService, "classification", err)
	}

	if label, ok := matchLabel(reply, labels); ok {
		return []domain.LabelScore{{Label: label, Score: matchedLabelConfidence}}, nil
	}
	return []domain.LabelScore{{Label: domain.LabelOther, Score: 0}}, nil
}

// matchLabel resolves a model reply to one of the candidate labels. Exact
// match wins; otherwise a case-insensitive containment check in either
// direction catches replies like "Category: Invoice" or "Invoice.".
func matchLabel(reply string, labels []string) (string, bool) {
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", false
	}
	for _, label := range labels {
		if reply == label {
			return label, true
		}
	}
	lowered := strings.ToLower(reply)
	for _, label := range labels {
		lowLabel := strings.ToLower(label)
		if strings.Contains(lowered, lowLabel) || strings.Contains(lowLabel, lowered) {
			return label, true
		}
	}
	return "", false
}
