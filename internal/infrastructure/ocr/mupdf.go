package ocr

import (
	"context"
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

// MuPDFRenderer rasterizes PDF pages in-process through the MuPDF bindings.
// It needs no external binaries, so it sits first in the preference order.
type MuPDFRenderer struct{}

func NewMuPDFRenderer() *MuPDFRenderer { return &MuPDFRenderer{} }

func (r *MuPDFRenderer) Name() string { return "mupdf" }

func (r *MuPDFRenderer) Available() bool { return true }

func (r *MuPDFRenderer) RenderPages(ctx context.Context, path string, dpi, maxPages int) ([]image.Image, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer doc.Close()

	total := doc.NumPage()
	if maxPages > 0 && total > maxPages {
		total = maxPages
	}

	pages := make([]image.Image, 0, total)
	for i := 0; i < total; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img, err := doc.ImageDPI(i, float64(dpi))
		if err != nil {
			return nil, fmt.Errorf("render page %d: %w", i+1, err)
		}
		pages = append(pages, img)
	}
	return pages, nil
}
