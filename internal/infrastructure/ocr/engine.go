package ocr

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/vkuzmin/visudoc/internal/core/domain"
	"github.com/vkuzmin/visudoc/internal/infrastructure/imaging"
)

// pageSeparator joins per-page text in the final extraction.
const pageSeparator = "\n\n"

type Config struct {
	DPI      int // rasterization DPI for PDF pages, default 300
	MaxPages int // 0 = no limit
	Language string
}

// Engine turns stored files into plain text: images go straight through
// preprocessing and recognition, PDFs are rasterized page by page first.
type Engine struct {
	cfg        Config
	recognizer Recognizer
	renderers  []PageRenderer
	logger     *slog.Logger
}

func NewEngine(cfg Config, recognizer Recognizer, renderers []PageRenderer, logger *slog.Logger) *Engine {
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		cfg:        cfg,
		recognizer: recognizer,
		renderers:  renderers,
		logger:     logger,
	}
}

// Extract picks a strategy based on the detected file type.
func (e *Engine) Extract(ctx context.Context, path string) (domain.Extraction, error) {
	fileType := DetectFileType(path)
	switch fileType {
	case domain.FileTypePDF:
		text, pages, err := e.ExtractTextFromPDF(ctx, path)
		if err != nil {
			return domain.Extraction{}, err
		}
		return domain.Extraction{Text: text, FileType: fileType, Pages: pages}, nil
	case domain.FileTypeImage:
		text, err := e.ExtractTextFromImage(ctx, path)
		if err != nil {
			return domain.Extraction{}, err
		}
		return domain.Extraction{Text: text, FileType: fileType, Pages: 1}, nil
	default:
		return domain.Extraction{}, domain.WrapError(domain.ErrInvalidInput, "detect file type",
			fmt.Errorf("unsupported file: %s", path))
	}
}

// ExtractTextFromImage decodes, preprocesses and recognizes one raster image.
func (e *Engine) ExtractTextFromImage(ctx context.Context, path string) (string, error) {
	img, err := decodeImage(path)
	if err != nil {
		return "", domain.WrapError(domain.ErrOCR, "image ocr", err)
	}

	text, err := e.recognizer.Recognize(ctx, imaging.Preprocess(img))
	if err != nil {
		return "", domain.WrapError(domain.ErrOCR, "image ocr", err)
	}
	return strings.TrimSpace(text), nil
}

// ExtractTextFromPDF rasterizes every page through the first available
// renderer and recognizes each in order. Pages whose text trims to empty are
// dropped; a PDF with no extractable pages yields empty text, not an error.
func (e *Engine) ExtractTextFromPDF(ctx context.Context, path string) (string, int, error) {
	renderer := firstAvailable(e.renderers)
	if renderer == nil {
		return "", 0, domain.WrapError(domain.ErrOCR, "pdf ocr", errors.New("no pdf rendering backend available"))
	}

	// The structural probe knows the true page total before anything is
	// rasterized, so truncation can be reported up front and pages past the
	// cap are never rendered.
	if total, err := pageCount(path); err == nil {
		if e.cfg.MaxPages > 0 && total > e.cfg.MaxPages {
			e.logger.Warn("pdf truncated", "path", path, "pages", total, "max_pages", e.cfg.MaxPages)
		} else {
			e.logger.Debug("pdf probe", "path", path, "pages", total, "renderer", renderer.Name())
		}
	}

	pages, err := renderer.RenderPages(ctx, path, e.cfg.DPI, e.cfg.MaxPages)
	if err != nil {
		return "", 0, domain.WrapError(domain.ErrOCR, "pdf ocr", err)
	}
	if e.cfg.MaxPages > 0 && len(pages) > e.cfg.MaxPages {
		pages = pages[:e.cfg.MaxPages]
	}

	texts := make([]string, 0, len(pages))
	for i, page := range pages {
		pageText, err := e.recognizer.Recognize(ctx, imaging.Preprocess(page))
		if err != nil {
			return "", 0, domain.WrapError(domain.ErrOCR, fmt.Sprintf("pdf ocr page %d", i+1), err)
		}
		pageText = strings.TrimSpace(pageText)
		if pageText == "" {
			continue
		}
		texts = append(texts, pageText)
	}
	return strings.Join(texts, pageSeparator), len(pages), nil
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// pageCount probes the PDF structure without rendering; used for logging and
// diagnostics only, rendering remains the source of truth.
func pageCount(path string) (int, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return reader.NumPage(), nil
}
