package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/vkuzmin/visudoc/internal/core/domain"
	"github.com/vkuzmin/visudoc/internal/core/ports"
)

// qaContextMaxChars bounds the document prefix handed to the remote QA call.
const qaContextMaxChars = 7000

// fieldMatchConfidence is assigned to answers produced by deterministic field
// extraction; they bypass the remote model entirely.
const fieldMatchConfidence = 0.9

// roleLabels is the closed candidate set used when a resume question asks
// which position the candidate fits.
var roleLabels = []string{
	"Software Engineer",
	"Data Scientist",
	"Product Manager",
	"Designer",
	"Marketing Specialist",
	"Sales Representative",
	"Accountant",
	domain.LabelOther,
}

type AnswerQuestionUseCase struct {
	qa         ports.QuestionAnswerer
	classifier ports.DocumentClassifier
	fields     ports.FieldExtractor
}

func NewAnswerQuestionUseCase(
	qa ports.QuestionAnswerer,
	classifier ports.DocumentClassifier,
	fields ports.FieldExtractor,
) *AnswerQuestionUseCase {
	return &AnswerQuestionUseCase{
		qa:         qa,
		classifier: classifier,
		fields:     fields,
	}
}

// Ask applies the answer priority chain: deterministic resume heuristics
// first, then the remote QA backend. Heuristics never fail; only the remote
// path can surface an error.
func (uc *AnswerQuestionUseCase) Ask(ctx context.Context, text, question, docType string) (domain.Answer, error) {
	if answer, ok := uc.resumeHeuristic(ctx, text, question, docType); ok {
		return answer, nil
	}

	answer, err := uc.qa.AnswerQuestion(ctx, truncate(text, qaContextMaxChars), question)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("remote qa: %w", err)
	}
	if strings.TrimSpace(answer.Text) == "" {
		return domain.Answer{}, nil
	}
	return answer, nil
}

// resumeHeuristic handles recognized resume intents without a remote call.
// A miss (empty field, classifier failure) falls through to the QA backend.
func (uc *AnswerQuestionUseCase) resumeHeuristic(ctx context.Context, text, question, docType string) (domain.Answer, bool) {
	if !strings.EqualFold(docType, "resume") {
		return domain.Answer{}, false
	}

	q := strings.ToLower(question)
	extracted := uc.fields.ExtractFields(text)

	var field string
	switch {
	case strings.Contains(q, "email"):
		field = extracted[domain.FieldEmail]
	case strings.Contains(q, "phone"):
		field = extracted[domain.FieldPhone]
	case strings.Contains(q, "name"):
		field = extracted[domain.FieldName]
	case strings.Contains(q, "position"), strings.Contains(q, "role"), strings.Contains(q, "best fit"):
		return uc.matchRole(ctx, text)
	default:
		return domain.Answer{}, false
	}

	if field == "" {
		return domain.Answer{}, false
	}
	return domain.Answer{Text: field, Confidence: fieldMatchConfidence}, true
}

func (uc *AnswerQuestionUseCase) matchRole(ctx context.Context, text string) (domain.Answer, bool) {
	results, err := uc.classifier.Classify(ctx, truncate(text, classifyMaxChars), roleLabels)
	if err != nil || len(results) == 0 {
		return domain.Answer{}, false
	}
	top := results[0]
	if top.Label == "" || top.Label == domain.LabelOther {
		return domain.Answer{}, false
	}
	return domain.Answer{Text: top.Label, Confidence: top.Score}, true
}
