package fields

import (
	"regexp"
	"strings"

	"github.com/vkuzmin/visudoc/internal/core/domain"
)

// Extractor derives structured fields from plain text with fixed patterns.
// It is pure and never fails: a field with no match is an empty string.
type Extractor struct{}

func New() *Extractor { return &Extractor{} }

var (
	reDate   = regexp.MustCompile(`\d{4}-\d{2}-\d{2}|\d{2}/\d{2}/\d{4}`)
	reAmount = regexp.MustCompile(`(?i)(?:total|amount due|balance)\s*:?\s*([$€£]?\s?\d[\d,]*\.?\d{0,2})`)
	reEmail  = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	rePhone  = regexp.MustCompile(`\+?[\d\s\-()]{8,}`)
	reLetter = regexp.MustCompile(`[A-Za-z]`)
)

// nameStopWords disqualify a line from being the candidate name on a resume.
var nameStopWords = []string{"phone", "email", "resume", "curriculum vitae", "linkedin", "github"}

func (e *Extractor) ExtractFields(text string) domain.StructuredFields {
	return domain.StructuredFields{
		domain.FieldDate:   e.Date(text),
		domain.FieldTotal:  e.Total(text),
		domain.FieldVendor: e.Vendor(text),
		domain.FieldName:   e.Name(text),
		domain.FieldEmail:  e.Email(text),
		domain.FieldPhone:  e.Phone(text),
	}
}

func (e *Extractor) Date(text string) string {
	return reDate.FindString(text)
}

func (e *Extractor) Total(text string) string {
	m := reAmount.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1]
}

// Vendor takes the first plausible line near the top of the document.
func (e *Extractor) Vendor(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) > 10 {
		lines = lines[:10]
	}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) <= 2 {
			continue
		}
		lower := strings.ToLower(line)
		if strings.Contains(lower, "invoice") || strings.Contains(lower, "receipt") {
			continue
		}
		return line
	}
	return ""
}

// Name picks the first line that looks like a person heading rather than a
// contact or section line.
func (e *Extractor) Name(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) < 3 || len(line) > 79 {
			continue
		}
		if !reLetter.MatchString(line) {
			continue
		}
		lower := strings.ToLower(line)
		disqualified := false
		for _, stop := range nameStopWords {
			if strings.Contains(lower, stop) {
				disqualified = true
				break
			}
		}
		if disqualified {
			continue
		}
		return line
	}
	return ""
}

func (e *Extractor) Email(text string) string {
	return reEmail.FindString(text)
}

// Phone requires at least 8 digits to avoid matching stray number runs.
func (e *Extractor) Phone(text string) string {
	for _, candidate := range rePhone.FindAllString(text, -1) {
		digits := 0
		for _, r := range candidate {
			if r >= '0' && r <= '9' {
				digits++
			}
		}
		if digits >= 8 {
			return strings.TrimSpace(candidate)
		}
	}
	return ""
}
