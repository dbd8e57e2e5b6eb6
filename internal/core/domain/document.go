package domain

import (
	"strings"
	"time"
)

type FileType string

const (
	FileTypePDF     FileType = "pdf"
	FileTypeImage   FileType = "image"
	FileTypeUnknown FileType = "unknown"
)

// Document is the unit the whole pipeline revolves around. It is created once
// OCR succeeds and is immutable afterwards; retention is handled by the
// document store, not by the core.
type Document struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	Path       string    `json:"-"`
	FileType   FileType  `json:"file_type"`
	Text       string    `json:"extracted_text"`
	DocType    string    `json:"document_type"`
	Confidence float64   `json:"confidence"`
	Pages      int       `json:"pages,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Extraction is the raw OCR output before classification.
type Extraction struct {
	Text     string
	FileType FileType
	Pages    int
}

// LabelScore is one ranked classification candidate.
type LabelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Answer carries a QA reply. An empty Text always has Confidence 0.
type Answer struct {
	Text       string  `json:"answer"`
	Confidence float64 `json:"confidence"`
}

type SummaryType string

const (
	SummaryGeneral    SummaryType = "general"
	SummaryBrief      SummaryType = "brief"
	SummaryKeyPoints  SummaryType = "key_points"
	SummaryStructured SummaryType = "structured"
)

// ParseSummaryType maps unknown values to SummaryGeneral.
func ParseSummaryType(s string) SummaryType {
	switch SummaryType(strings.ToLower(strings.TrimSpace(s))) {
	case SummaryBrief:
		return SummaryBrief
	case SummaryKeyPoints:
		return SummaryKeyPoints
	case SummaryStructured:
		return SummaryStructured
	default:
		return SummaryGeneral
	}
}

const LabelOther = "Other"

// DefaultCategories is the candidate label set used when the caller does not
// supply its own.
var DefaultCategories = []string{
	"Invoice", "Receipt", "Letter", "Contract", "Resume", "Report", LabelOther,
}

// StructuredFields maps a canonical field name to its extracted value.
// Missing fields hold an empty string.
type StructuredFields map[string]string

const (
	FieldDate   = "date"
	FieldTotal  = "total"
	FieldVendor = "vendor"
	FieldName   = "name"
	FieldEmail  = "email"
	FieldPhone  = "phone"
)
