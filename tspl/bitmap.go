package tspl

import "fmt"

// BitmapOptions describes a BITMAP command. Data is the packed 1-bit image
// as hexadecimal text, WidthBytes bytes per row and Height rows.
type BitmapOptions struct {
	X, Y       int
	WidthBytes int
	Height     int
	Mode       BitmapMode
	Data       string
}

// Bitmap returns the BITMAP command for o.
func Bitmap(o BitmapOptions) (string, error) {
	if err := checkCoordinates(o.X, o.Y); err != nil {
		return "", err
	}
	if o.WidthBytes < 1 || o.Height < 1 {
		return "", fmt.Errorf("%w: bitmap %dx%d", ErrInvalidDimension, o.WidthBytes, o.Height)
	}
	if o.Mode != BitmapOverwrite && o.Mode != BitmapXOR {
		return "", fmt.Errorf("%w: bitmap %d", ErrInvalidMode, int(o.Mode))
	}
	if want := 2 * o.WidthBytes * o.Height; len(o.Data) != want {
		return "", fmt.Errorf("%w: got %d hex digits, want %d", ErrBitmapSizeMismatch, len(o.Data), want)
	}
	for i := 0; i < len(o.Data); i++ {
		if !isHex(o.Data[i]) {
			return "", fmt.Errorf("%w: non-hex byte %q at %d", ErrBitmapSizeMismatch, o.Data[i], i)
		}
	}
	return command("BITMAP", itoa(o.X), itoa(o.Y), itoa(o.WidthBytes), itoa(o.Height), itoa(int(o.Mode)), o.Data), nil
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}
