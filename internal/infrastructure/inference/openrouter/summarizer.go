package openrouter

import (
	"context"

	"github.com/vkuzmin/visudoc/internal/core/domain"
	"github.com/vkuzmin/visudoc/internal/infrastructure/chunking"
)

// Summarizer asks the chat model for a complete summary in one call. Unlike a
// dedicated summarization model there is no chunking pass; the input is capped
// and the summary type is expressed through the prompt, with docType steering
// the structured variant.
type Summarizer struct {
	client *Client
}

func NewSummarizer(client *Client) *Summarizer {
	return &Summarizer{client: client}
}

func (s *Summarizer) Summarize(ctx context.Context, text string, summaryType domain.SummaryType, docType string) (string, error) {
	text = chunking.ClipBytes(text, summaryInputMaxChars)

	reply, err := s.client.complete(ctx, "summarization", summaryPrompt(text, summaryType, docType), summaryPromptMaxTokens)
	if err != nil {
		return "", domain.WrapError(domain.ErrAIService, "summarization", err)
	}
	return reply, nil
}
