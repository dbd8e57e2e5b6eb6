package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/vkuzmin/visudoc/internal/core/domain"
	"github.com/vkuzmin/visudoc/internal/core/ports"
)

// keyPointsMaxBullets caps the key_points summary output.
const keyPointsMaxBullets = 8

type SummarizeUseCase struct {
	summarizer ports.TextSummarizer
	fields     ports.FieldExtractor
}

func NewSummarizeUseCase(
	summarizer ports.TextSummarizer,
	fields ports.FieldExtractor,
) *SummarizeUseCase {
	return &SummarizeUseCase{
		summarizer: summarizer,
		fields:     fields,
	}
}

// Summarize runs the configured summarization backend and applies the
// deterministic per-type post-processing to its combined output. Empty input
// short-circuits without touching the backend.
func (uc *SummarizeUseCase) Summarize(ctx context.Context, text string, summaryType domain.SummaryType, docType string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", nil
	}

	summaryType = domain.ParseSummaryType(string(summaryType))
	combined, err := uc.summarizer.Summarize(ctx, text, summaryType, docType)
	if err != nil {
		return "", fmt.Errorf("summarize: %w", err)
	}
	combined = strings.TrimSpace(combined)

	switch summaryType {
	case domain.SummaryKeyPoints:
		return uc.keyPoints(combined), nil
	case domain.SummaryStructured:
		return uc.structured(combined, text, docType), nil
	default:
		return combined, nil
	}
}

// keyPoints renders the combined summary as capped, deduplicated dash bullets.
func (uc *SummarizeUseCase) keyPoints(combined string) string {
	sentences := dedupeSentences(splitSentences(strings.ReplaceAll(combined, "\n", " ")))
	if len(sentences) > keyPointsMaxBullets {
		sentences = sentences[:keyPointsMaxBullets]
	}
	bullets := make([]string, 0, len(sentences))
	for _, s := range sentences {
		bullets = append(bullets, "- "+s+".")
	}
	return strings.Join(bullets, "\n")
}

// structured prepends heuristic field blocks for known document kinds and
// always closes with Summary and Key Points sections.
func (uc *SummarizeUseCase) structured(combined, text, docType string) string {
	var lines []string

	switch strings.ToLower(docType) {
	case "invoice", "receipt":
		extracted := uc.fields.ExtractFields(text)
		lines = append(lines, "Structured Fields:")
		lines = append(lines, fieldLines(extracted, domain.FieldDate, domain.FieldTotal, domain.FieldVendor)...)
		lines = append(lines, "")
	case "resume":
		extracted := uc.fields.ExtractFields(text)
		lines = append(lines, "Candidate:")
		lines = append(lines, fieldLines(extracted, domain.FieldName, domain.FieldEmail, domain.FieldPhone)...)
		lines = append(lines, "")
	}

	lines = append(lines, "Summary:", combined, "", "Key Points:")
	for _, s := range dedupeSentences(splitSentences(combined)) {
		lines = append(lines, "- "+s+".")
	}
	return strings.Join(lines, "\n")
}

func fieldLines(extracted domain.StructuredFields, keys ...string) []string {
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		value := extracted[key]
		if value == "" {
			continue
		}
		out = append(out, "- "+titleKey(key)+": "+value)
	}
	return out
}

func titleKey(key string) string {
	if key == "" {
		return key
	}
	return strings.ToUpper(key[:1]) + key[1:]
}

func splitSentences(text string) []string {
	parts := strings.Split(text, ".")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// dedupeSentences drops case-insensitive duplicates, keeping first occurrence.
func dedupeSentences(sentences []string) []string {
	seen := make(map[string]struct{}, len(sentences))
	out := make([]string, 0, len(sentences))
	for _, s := range sentences {
		key := strings.ToLower(s)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}
