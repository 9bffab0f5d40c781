package printer

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	imgInternal "github.com/xgd16/tspl-generator/image"
)

// DefaultMaxImageWidth is the print head width, in dots, of a 4 inch 203 dpi
// printer.
const DefaultMaxImageWidth = 832

// LoadImage decodes a PNG, JPEG or GIF file.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return img, nil
}

// AddImageFile loads path and appends it as a BITMAP at x,y. A nil conv
// limits the width to DefaultMaxImageWidth.
func (l *Label) AddImageFile(x, y int, path string, conv *imgInternal.Converter) *Label {
	if l.err != nil {
		return l
	}
	img, err := LoadImage(path)
	if err != nil {
		l.fail("BITMAP", err)
		return l
	}
	if conv == nil {
		conv = &imgInternal.Converter{MaxWidth: DefaultMaxImageWidth, Threshold: imgInternal.DefaultThreshold}
	}
	return l.AddImage(x, y, img, conv)
}
