package usecase

import (
	"context"

	"github.com/vkuzmin/visudoc/internal/core/domain"
)

type fakeExtractor struct {
	extraction domain.Extraction
	err        error
	lastPath   string
}

func (f *fakeExtractor) Extract(_ context.Context, path string) (domain.Extraction, error) {
	f.lastPath = path
	return f.extraction, f.err
}

type fakeClassifier struct {
	results    []domain.LabelScore
	err        error
	calls      int
	lastText   string
	lastLabels []string
}

func (f *fakeClassifier) Classify(_ context.Context, text string, labels []string) ([]domain.LabelScore, error) {
	f.calls++
	f.lastText = text
	f.lastLabels = labels
	return f.results, f.err
}

type fakeQA struct {
	answer      domain.Answer
	err         error
	calls       int
	lastContext string
}

func (f *fakeQA) AnswerQuestion(_ context.Context, contextText, _ string) (domain.Answer, error) {
	f.calls++
	f.lastContext = contextText
	return f.answer, f.err
}

type fakeSummarizer struct {
	combined string
	err      error
	calls    int
	lastType domain.SummaryType
}

func (f *fakeSummarizer) Summarize(_ context.Context, _ string, summaryType domain.SummaryType, _ string) (string, error) {
	f.calls++
	f.lastType = summaryType
	return f.combined, f.err
}

type fakeFields struct {
	fields domain.StructuredFields
}

func (f *fakeFields) ExtractFields(string) domain.StructuredFields {
	if f.fields == nil {
		return domain.StructuredFields{}
	}
	return f.fields
}
