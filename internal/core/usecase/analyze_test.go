package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/vkuzmin/visudoc/internal/core/domain"
)

func TestAnalyzeProducesClassifiedDocument(t *testing.T) {
	extractor := &fakeExtractor{extraction: domain.Extraction{
		Text:     "  Invoice #42 from Acme  ",
		FileType: domain.FileTypePDF,
		Pages:    2,
	}}
	classifier := &fakeClassifier{results: []domain.LabelScore{
		{Label: "Invoice", Score: 0.91},
		{Label: "Receipt", Score: 0.05},
	}}
	uc := NewAnalyzeDocumentUseCase(extractor, classifier)

	doc, err := uc.Analyze(context.Background(), "id-1", "invoice.pdf", "/tmp/invoice.pdf")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if doc.Text != "Invoice #42 from Acme" {
		t.Fatalf("text not trimmed: %q", doc.Text)
	}
	if doc.DocType != "Invoice" || doc.Confidence != 0.91 {
		t.Fatalf("unexpected classification: %s %v", doc.DocType, doc.Confidence)
	}
	if doc.FileType != domain.FileTypePDF || doc.Pages != 2 {
		t.Fatalf("extraction metadata lost: %+v", doc)
	}
	if doc.CreatedAt.IsZero() {
		t.Fatal("CreatedAt not set")
	}
	if extractor.lastPath != "/tmp/invoice.pdf" {
		t.Fatalf("extractor called with %q", extractor.lastPath)
	}
}

func TestAnalyzeEmptyExtractionIsNoContent(t *testing.T) {
	extractor := &fakeExtractor{extraction: domain.Extraction{Text: "   \n  "}}
	classifier := &fakeClassifier{}
	uc := NewAnalyzeDocumentUseCase(extractor, classifier)

	_, err := uc.Analyze(context.Background(), "id-1", "blank.png", "/tmp/blank.png")
	if !domain.IsKind(err, domain.ErrNoContent) {
		t.Fatalf("expected ErrNoContent, got %v", err)
	}
	if classifier.calls != 0 {
		t.Fatal("classifier must not run on empty text")
	}
}

func TestAnalyzeExtractionErrorPropagates(t *testing.T) {
	boom := errors.New("ocr exploded")
	uc := NewAnalyzeDocumentUseCase(&fakeExtractor{err: boom}, &fakeClassifier{})

	_, err := uc.Analyze(context.Background(), "id-1", "f.pdf", "/tmp/f.pdf")
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped extractor error, got %v", err)
	}
}

func TestAnalyzeEmptyClassificationDefaultsToOther(t *testing.T) {
	extractor := &fakeExtractor{extraction: domain.Extraction{Text: "text", FileType: domain.FileTypeImage}}
	uc := NewAnalyzeDocumentUseCase(extractor, &fakeClassifier{results: nil})

	doc, err := uc.Analyze(context.Background(), "id-1", "f.png", "/tmp/f.png")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if doc.DocType != domain.LabelOther || doc.Confidence != 0 {
		t.Fatalf("expected (Other, 0.0), got (%s, %v)", doc.DocType, doc.Confidence)
	}
}

func TestAnalyzeTruncatesClassifierInput(t *testing.T) {
	long := strings.Repeat("x", classifyMaxChars+1000)
	extractor := &fakeExtractor{extraction: domain.Extraction{Text: long}}
	classifier := &fakeClassifier{results: []domain.LabelScore{{Label: "Report", Score: 0.5}}}
	uc := NewAnalyzeDocumentUseCase(extractor, classifier)

	doc, err := uc.Analyze(context.Background(), "id-1", "f.pdf", "/tmp/f.pdf")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if len(classifier.lastText) != classifyMaxChars {
		t.Fatalf("classifier saw %d chars, want %d", len(classifier.lastText), classifyMaxChars)
	}
	if len(doc.Text) != len(long) {
		t.Fatal("stored document text must keep the full extraction")
	}
}

func TestTruncateStopsAtRuneBoundary(t *testing.T) {
	cases := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 100, "short"},
		{"abcdef", 4, "abcd"},
		{"naïve", 3, "na"},  // ï is 2 bytes; a 3-byte cut would land inside it
		{"résumé", 7, "résum"},
		{"данные", 5, "да"}, // Cyrillic runes are 2 bytes each
	}
	for _, c := range cases {
		got := truncate(c.in, c.max)
		if got != c.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", c.in, c.max, got, c.want)
		}
		if !utf8.ValidString(got) {
			t.Fatalf("truncate(%q, %d) produced invalid UTF-8: %q", c.in, c.max, got)
		}
	}
}
