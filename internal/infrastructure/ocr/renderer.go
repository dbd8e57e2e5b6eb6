package ocr

import "context"
import "image"

// PageRenderer rasterizes the first maxPages pages of a PDF at the requested
// DPI, in page order (maxPages <= 0 means all pages). Implementations report
// availability so the engine can fall through a fixed preference list; the
// extraction result must not depend on which backend did the rendering.
type PageRenderer interface {
	Name() string
	Available() bool
	RenderPages(ctx context.Context, path string, dpi, maxPages int) ([]image.Image, error)
}

func firstAvailable(renderers []PageRenderer) PageRenderer {
	for _, r := range renderers {
		if r.Available() {
			return r
		}
	}
	return nil
}
