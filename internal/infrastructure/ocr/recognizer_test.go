package ocr

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"os/exec"
	"strings"
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/vkuzmin/visudoc/internal/infrastructure/imaging"
)

func ensureTesseractAvailable(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("tesseract"); err != nil {
		t.Skip("tesseract not installed in PATH")
	}
}

func drawTextImage(text string) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 240, 80))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.Black,
		Face: basicfont.Face7x13,
		Dot:  fixed.P(10, 50),
	}
	d.DrawString(text)
	return img
}

func TestTesseractRecognize(t *testing.T) {
	ensureTesseractAvailable(t)

	img := drawTextImage("Hello Invoice")
	r := NewTesseractRecognizer("eng", 300)

	text, err := r.Recognize(context.Background(), img)
	if err != nil {
		t.Fatalf("Recognize() error = %v", err)
	}
	got := strings.ToLower(text)
	if !strings.Contains(got, "hello") || !strings.Contains(got, "invoice") {
		t.Fatalf("unexpected recognition output: %q", text)
	}
}

func TestTesseractRecognizePreprocessedPage(t *testing.T) {
	ensureTesseractAvailable(t)

	page := imaging.Preprocess(drawTextImage("Total 45"))
	r := NewTesseractRecognizer("eng", 300)

	text, err := r.Recognize(context.Background(), page)
	if err != nil {
		t.Fatalf("Recognize() error = %v", err)
	}
	if !strings.Contains(strings.ToLower(text), "total") {
		t.Fatalf("unexpected recognition output: %q", text)
	}
}

func TestTesseractRecognizeCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewTesseractRecognizer("eng", 300)
	if _, err := r.Recognize(ctx, drawTextImage("x")); err == nil {
		t.Fatal("expected context error")
	}
}
