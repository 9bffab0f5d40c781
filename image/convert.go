package image

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/makeworld-the-better-one/dither/v2"
	"github.com/nfnt/resize"

	"github.com/xgd16/tspl-generator/tspl"
)

// DefaultThreshold splits light from dark pixels when Threshold is zero.
const DefaultThreshold = 0.5

type Converter struct {
	// The maximum line width of the printer, in dots. Wider images are scaled
	// down keeping their aspect ratio. Zero means no limit.
	MaxWidth int

	// The threshold between white and black dots
	Threshold float64

	// Dither spreads the error with Floyd-Steinberg instead of thresholding,
	// for photos and gradients.
	Dither bool
}

// ToRaster scales img to fit MaxWidth and packs it into a 1-bit raster.
func (c *Converter) ToRaster(img image.Image) *Raster {
	maxWidth, threshold, dithered := 0, DefaultThreshold, false
	if c != nil {
		dithered = c.Dither
		maxWidth = c.MaxWidth
		if c.Threshold > 0 {
			threshold = c.Threshold
		}
	}

	if maxWidth > 0 && img.Bounds().Dx() > maxWidth {
		img = resize.Resize(uint(maxWidth), 0, img, resize.Lanczos3)
	}

	if dithered {
		return ditherRaster(img)
	}

	b := img.Bounds()
	r := NewRaster(b.Dx(), b.Dy())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			if lightness(img.At(b.Min.X+x, b.Min.Y+y)) <= threshold {
				r.SetBlack(x, y)
			}
		}
	}
	return r
}

var monochrome = []color.Color{color.Black, color.White}

func ditherRaster(img image.Image) *Raster {
	b := img.Bounds()
	// flatten onto white so transparent areas stay unprinted
	flat := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(flat, flat.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(flat, flat.Bounds(), img, b.Min, draw.Over)

	d := dither.NewDitherer(monochrome)
	d.Matrix = dither.FloydSteinberg
	d.Serpentine = true
	p := d.DitherPaletted(flat)

	r := NewRaster(b.Dx(), b.Dy())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			if p.ColorIndexAt(x, y) == 0 {
				r.SetBlack(x, y)
			}
		}
	}
	return r
}

// Options converts img and returns BITMAP options placed at x,y.
func (c *Converter) Options(img image.Image, x, y int, mode tspl.BitmapMode) tspl.BitmapOptions {
	return c.ToRaster(img).Options(x, y, mode)
}

const (
	lumR, lumG, lumB = 55, 182, 18
)

// lightness is 0 for black and 1 for white. Transparent pixels count as
// white.
func lightness(c color.Color) float64 {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return 1
	}

	return float64(lumR*r+lumG*g+lumB*b) / float64(0xffff*(lumR+lumG+lumB))
}
