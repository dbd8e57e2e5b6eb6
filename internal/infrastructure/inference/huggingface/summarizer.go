package huggingface

import (
	"context"
	"strings"

	"github.com/vkuzmin/visudoc/internal/core/domain"
	"github.com/vkuzmin/visudoc/internal/infrastructure/chunking"
)

// maxChunksPerSummary bounds cost: only the leading chunks of a very long
// document are summarized.
const maxChunksPerSummary = 3

// fallbackPrefixChars is summarized directly when no chunk produced output.
const fallbackPrefixChars = 3000

const (
	chunkWordsBrief   = 400
	chunkWordsDefault = 700
)

type lengthBounds struct {
	min int
	max int
}

// summaryLengths keys the abstractive model's length bounds by summary type.
var summaryLengths = map[domain.SummaryType]lengthBounds{
	domain.SummaryBrief:      {min: 15, max: 60},
	domain.SummaryKeyPoints:  {min: 60, max: 200},
	domain.SummaryStructured: {min: 50, max: 160},
	domain.SummaryGeneral:    {min: 30, max: 130},
}

// Summarizer implements the extractive-chunked strategy: fixed-size word
// chunks summarized independently, joined with newlines.
type Summarizer struct {
	client *Client
	model  string
}

func NewSummarizer(client *Client, model string) *Summarizer {
	if model == "" {
		model = DefaultSummaryModel
	}
	return &Summarizer{client: client, model: model}
}

func (s *Summarizer) Summarize(ctx context.Context, text string, summaryType domain.SummaryType, _ string) (string, error) {
	bounds, ok := summaryLengths[summaryType]
	if !ok {
		bounds = summaryLengths[domain.SummaryGeneral]
	}

	chunkWords := chunkWordsDefault
	if summaryType == domain.SummaryBrief {
		chunkWords = chunkWordsBrief
	}

	chunks := chunking.NewSplitter(chunkWords).Split(text)
	if len(chunks) > maxChunksPerSummary {
		chunks = chunks[:maxChunksPerSummary]
	}

	summaries := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		summary, err := s.summarizeChunk(ctx, chunk, bounds)
		if err != nil {
			return "", err
		}
		if summary != "" {
			summaries = append(summaries, summary)
		}
	}

	combined := strings.Join(summaries, "\n")
	if combined != "" {
		return combined, nil
	}

	// Nothing usable per chunk; summarize a bounded prefix directly.
	return s.summarizeChunk(ctx, chunking.ClipBytes(text, fallbackPrefixChars), bounds)
}

func (s *Summarizer) summarizeChunk(ctx context.Context, text string, bounds lengthBounds) (string, error) {
	payload := map[string]any{
		"inputs": text,
		"parameters": map[string]any{
			"min_length": bounds.min,
			"max_length": bounds.max,
		},
	}

	// The endpoint wraps the result in a single-element list.
	var response []struct {
		SummaryText string `json:"summary_text"`
	}
	if err := s.client.call(ctx, "summarization", s.model, payload, &response); err != nil {
		return "", domain.WrapError(domain.ErrAIService, "summarization", err)
	}
	if len(response) == 0 {
		return "", nil
	}
	return strings.TrimSpace(response[0].SummaryText), nil
}
