package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/vkuzmin/visudoc/internal/core/domain"
	"github.com/vkuzmin/visudoc/internal/core/ports"
)

// classifyMaxChars bounds the text prefix sent to the classification backend;
// longer inputs are costly and some models reject them outright.
const classifyMaxChars = 4000

type AnalyzeDocumentUseCase struct {
	extractor  ports.TextExtractor
	classifier ports.DocumentClassifier
}

func NewAnalyzeDocumentUseCase(
	extractor ports.TextExtractor,
	classifier ports.DocumentClassifier,
) *AnalyzeDocumentUseCase {
	return &AnalyzeDocumentUseCase{
		extractor:  extractor,
		classifier: classifier,
	}
}

// Analyze runs OCR over the stored file and classifies the extracted text.
// Empty extraction is reported as domain.ErrNoContent so callers can tell
// "nothing to work with" apart from a broken file.
func (uc *AnalyzeDocumentUseCase) Analyze(ctx context.Context, id, filename, path string) (*domain.Document, error) {
	extraction, err := uc.extractor.Extract(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("extract text: %w", err)
	}

	text := strings.TrimSpace(extraction.Text)
	if text == "" {
		return nil, domain.WrapError(domain.ErrNoContent, "extract text", errors.New("no text extracted"))
	}

	docType, confidence, err := uc.documentType(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("classify document: %w", err)
	}

	return &domain.Document{
		ID:         id,
		Filename:   filename,
		Path:       path,
		FileType:   extraction.FileType,
		Text:       text,
		DocType:    docType,
		Confidence: confidence,
		Pages:      extraction.Pages,
		CreatedAt:  time.Now().UTC(),
	}, nil
}

// documentType returns the top-ranked label, defaulting to Other with score 0
// when the backend produced nothing usable.
func (uc *AnalyzeDocumentUseCase) documentType(ctx context.Context, text string) (string, float64, error) {
	results, err := uc.classifier.Classify(ctx, truncate(text, classifyMaxChars), domain.DefaultCategories)
	if err != nil {
		return "", 0, err
	}
	if len(results) == 0 {
		return domain.LabelOther, 0, nil
	}
	return results[0].Label, results[0].Score, nil
}

// truncate cuts s to at most max bytes without splitting a multi-byte rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
