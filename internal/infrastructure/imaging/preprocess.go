package imaging

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/effect"
)

// Preprocess normalizes a scanned page before recognition: grayscale,
// auto-contrast stretch, then a 3x3 median filter. The output keeps the
// source dimensions and is always single-channel.
func Preprocess(src image.Image) *image.Gray {
	gray := grayscale(src)
	stretchContrast(gray)
	return grayscale(effect.Median(gray, 3))
}

func grayscale(src image.Image) *image.Gray {
	if g, ok := src.(*image.Gray); ok {
		return g
	}
	bounds := src.Bounds()
	gray := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.Set(x, y, color.GrayModel.Convert(src.At(x, y)))
		}
	}
	return gray
}

// stretchContrast maps the observed intensity range linearly onto the full
// 0..255 range in place. Flat images are left untouched.
func stretchContrast(img *image.Gray) {
	lo, hi := uint8(255), uint8(0)
	for _, v := range img.Pix {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi <= lo {
		return
	}
	scale := 255.0 / float64(hi-lo)
	for i, v := range img.Pix {
		img.Pix[i] = uint8(float64(v-lo)*scale + 0.5)
	}
}
