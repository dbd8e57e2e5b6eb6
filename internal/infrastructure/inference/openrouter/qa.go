package openrouter

import (
	"context"
	"strings"

	"github.com/vkuzmin/visudoc/internal/core/domain"
)

// QA answers questions by prompting the chat model with the document text. The
// model is told to reply "Not found" when the document has no answer; such
// replies keep their text but are reported with a low confidence so callers
// can tell them apart from real answers.
type QA struct {
	client *Client
}

func NewQA(client *Client) *QA {
	return &QA{client: client}
}

func (q *QA) AnswerQuestion(ctx context.Context, contextText, question string) (domain.Answer, error) {
	reply, err := q.client.complete(ctx, "question_answering", answerPrompt(contextText, question), answerPromptMaxTokens)
	if err != nil {
		return domain.Answer{}, domain.WrapError(domain.ErrAIService, "question answering", err)
	}

	// Only the first line counts as the answer; chat models tend to append
	// explanations after it.
	answer := reply
	if idx := strings.IndexByte(answer, '\n'); idx >= 0 {
		answer = answer[:idx]
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return domain.Answer{}, nil
	}
	if strings.HasPrefix(strings.ToLower(answer), notFoundSentinel) {
		return domain.Answer{Text: answer, Confidence: sentinelAnswerConfidence}, nil
	}
	return domain.Answer{Text: answer, Confidence: answeredConfidence}, nil
}
