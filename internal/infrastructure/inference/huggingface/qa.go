package huggingface

import (
	"context"
	"strings"

	"github.com/vkuzmin/visudoc/internal/core/domain"
)

// QA answers questions through a hosted extractive QA model, which returns an
// answer span together with a native probability.
type QA struct {
	client *Client
	model  string
}

func NewQA(client *Client, model string) *QA {
	if model == "" {
		model = DefaultQAModel
	}
	return &QA{client: client, model: model}
}

func (q *QA) AnswerQuestion(ctx context.Context, contextText, question string) (domain.Answer, error) {
	payload := map[string]any{
		"inputs": map[string]string{
			"question": question,
			"context":  contextText,
		},
	}

	var response struct {
		Answer string  `json:"answer"`
		Score  float64 `json:"score"`
	}
	if err := q.client.call(ctx, "question_answering", q.model, payload, &response); err != nil {
		return domain.Answer{}, domain.WrapError(domain.ErrAIService, "question answering", err)
	}

	answer := strings.TrimSpace(response.Answer)
	if answer == "" {
		return domain.Answer{}, nil
	}
	return domain.Answer{Text: answer, Confidence: response.Score}, nil
}
