package openrouter

import (
	"fmt"
	"strings"

	"github.com/vkuzmin/visudoc/internal/core/domain"
)

const (
	classifyPromptMaxTokens  = 20
	answerPromptMaxTokens    = 200
	summaryPromptMaxTokens   = 600
	summaryInputMaxChars     = 8000
	notFoundSentinel         = "not found"
	matchedLabelConfidence   = 0.85
	answeredConfidence       = 0.85
	sentinelAnswerConfidence = 0.1
)

func classifyPrompt(text string, labels []string) string {
	return fmt.Sprintf(
		"Classify this document into exactly one of these categories: %s.\n"+
			"Respond with only the category name, nothing else.\n\n"+
			"Document text:\n%s",
		strings.Join(labels, ", "), text)
}

func answerPrompt(contextText, question string) string {
	return fmt.Sprintf(
		"Answer the question using only the document below. "+
			"Reply with a short answer on a single line. "+
			"If the document does not contain the answer, reply exactly \"Not found\".\n\n"+
			"Document:\n%s\n\nQuestion: %s",
		contextText, question)
}

func summaryPrompt(text string, summaryType domain.SummaryType, docType string) string {
	var b strings.Builder
	switch summaryType {
	case domain.SummaryBrief:
		b.WriteString("Summarize the document below in 2-3 sentences.")
	case domain.SummaryKeyPoints:
		b.WriteString("List the 5-10 most important points of the document below, one per line, each starting with \"- \".")
	case domain.SummaryStructured:
		b.WriteString("Extract structured information from the document below.\n")
		switch strings.ToLower(docType) {
		case "invoice", "receipt":
			b.WriteString("Report the date, the total amount and the vendor name if present.\n")
		case "resume":
			b.WriteString("Report the person's name, email address and phone number if present.\n")
		}
		b.WriteString("Then give a short summary followed by the key points as \"- \" bullets.")
	default:
		b.WriteString("Summarize the document below in a single concise paragraph.")
	}
	b.WriteString("\n\nDocument:\n")
	b.WriteString(text)
	return b.String()
}
