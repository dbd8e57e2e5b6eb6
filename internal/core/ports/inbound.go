package ports

import (
	"context"

	"github.com/vkuzmin/visudoc/internal/core/domain"
)

// DocumentAnalyzer is the inbound contract for the OCR + classification stage.
type DocumentAnalyzer interface {
	Analyze(ctx context.Context, id, filename, path string) (*domain.Document, error)
}

// DocumentQA answers a user question about already-extracted text.
type DocumentQA interface {
	Ask(ctx context.Context, text, question, docType string) (domain.Answer, error)
}

// DocumentSummarizer produces a summary of already-extracted text.
type DocumentSummarizer interface {
	Summarize(ctx context.Context, text string, summaryType domain.SummaryType, docType string) (string, error)
}
