package image

import (
	"encoding/hex"
	"strings"

	"github.com/xgd16/tspl-generator/tspl"
)

// Raster is a packed 1-bit image in TSPL bit order: rows top to bottom,
// most significant bit leftmost, 1 for white and 0 for a printed dot.
type Raster struct {
	Width, Height int
	WidthBytes    int
	Data          []byte
}

// NewRaster returns an all white raster. Padding bits past Width stay white.
func NewRaster(width, height int) *Raster {
	widthBytes := (width + 7) >> 3
	data := make([]byte, widthBytes*height)
	for i := range data {
		data[i] = 0xFF
	}
	return &Raster{Width: width, Height: height, WidthBytes: widthBytes, Data: data}
}

// SetBlack marks the dot at x,y to be printed.
func (r *Raster) SetBlack(x, y int) {
	r.Data[y*r.WidthBytes+x/8] &^= 0x80 >> uint(x%8)
}

// Black reports whether the dot at x,y is printed.
func (r *Raster) Black(x, y int) bool {
	return r.Data[y*r.WidthBytes+x/8]&(0x80>>uint(x%8)) == 0
}

// Hex returns the raster as upper case hexadecimal text.
func (r *Raster) Hex() string {
	return strings.ToUpper(hex.EncodeToString(r.Data))
}

// Options returns BITMAP options for the raster placed at x,y.
func (r *Raster) Options(x, y int, mode tspl.BitmapMode) tspl.BitmapOptions {
	return tspl.BitmapOptions{
		X:          x,
		Y:          y,
		WidthBytes: r.WidthBytes,
		Height:     r.Height,
		Mode:       mode,
		Data:       r.Hex(),
	}
}
