package ports

import (
	"context"
	"io"
	"time"

	"github.com/vkuzmin/visudoc/internal/core/domain"
)

// TextExtractor turns a stored file into plain text.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (domain.Extraction, error)
}

// DocumentClassifier ranks candidate labels for extracted text, highest
// confidence first. Implementations must return at least one pair.
type DocumentClassifier interface {
	Classify(ctx context.Context, text string, labels []string) ([]domain.LabelScore, error)
}

// QuestionAnswerer answers a question strictly from the supplied context text.
type QuestionAnswerer interface {
	AnswerQuestion(ctx context.Context, contextText, question string) (domain.Answer, error)
}

// TextSummarizer produces the combined summary text for a document. The
// docType hint is only used by backends that tailor their instruction to the
// document kind; post-processing of the combined text happens in the core.
type TextSummarizer interface {
	Summarize(ctx context.Context, text string, summaryType domain.SummaryType, docType string) (string, error)
}

// FieldExtractor derives structured fields from text deterministically.
// It never fails; absent fields come back as empty strings.
type FieldExtractor interface {
	ExtractFields(text string) domain.StructuredFields
}

// DocumentStore caches analyzed documents by id. The core never touches it;
// it belongs to the routing layer.
type DocumentStore interface {
	Put(doc domain.Document)
	Get(id string) (domain.Document, bool)
	EvictOlderThan(age time.Duration) []domain.Document
}

// ObjectStorage stores uploaded source files on disk.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) (string, error)
	Find(ctx context.Context, keyPrefix string) (string, error)
	Remove(ctx context.Context, path string) error
}
