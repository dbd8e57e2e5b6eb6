package ocr

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
)

// PopplerRenderer shells out to pdftoppm, the external-converter fallback for
// hosts without the MuPDF bindings.
type PopplerRenderer struct {
	binary string
	runner Runner
}

func NewPopplerRenderer(binary string) *PopplerRenderer {
	if binary == "" {
		binary = "pdftoppm"
	}
	return &PopplerRenderer{binary: binary, runner: execRunner{}}
}

func (r *PopplerRenderer) Name() string { return "poppler" }

func (r *PopplerRenderer) Available() bool {
	_, err := exec.LookPath(r.binary)
	return err == nil
}

func (r *PopplerRenderer) RenderPages(ctx context.Context, path string, dpi, maxPages int) ([]image.Image, error) {
	tmpDir, err := os.MkdirTemp("", "visudoc-pp-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpDir)

	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -r <dpi> -png [-f 1 -l <max>] <in.pdf> <tmp/page>
	args := []string{"-r", fmt.Sprintf("%d", dpi), "-png"}
	if maxPages > 0 {
		args = append(args, "-f", "1", "-l", fmt.Sprintf("%d", maxPages))
	}
	args = append(args, path, prefix)
	if _, errb, err := r.runner.Run(ctx, r.binary, args...); err != nil {
		return nil, fmt.Errorf("pdftoppm: %w: %s", err, truncateOutput(string(errb), 1024))
	}

	// generated as prefix-1.png, prefix-2.png, ...
	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)

	pages := make([]image.Image, 0, len(matches))
	for _, file := range matches {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img, err := decodePNG(file)
		if err != nil {
			return nil, fmt.Errorf("decode rendered page %s: %w", filepath.Base(file), err)
		}
		pages = append(pages, img)
	}
	return pages, nil
}

func decodePNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return png.Decode(f)
}
