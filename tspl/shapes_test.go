package tspl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShapes(t *testing.T) {
	testCases := []struct {
		name string
		fn   func() (string, error)
		want string
	}{
		{"box", func() (string, error) { return Box(BoxOptions{X1: 10, Y1: 10, X2: 200, Y2: 100, Thickness: 2}) }, "BOX 10,10,200,100,2\r\n"},
		{"rounded box", func() (string, error) {
			return Box(BoxOptions{X1: 0, Y1: 0, X2: 50, Y2: 50, Thickness: 1, Radius: 8})
		}, "BOX 0,0,50,50,1,8\r\n"},
		{"horizontal line", func() (string, error) { return Line(LineOptions{X1: 100, Y1: 40, X2: 10, Y2: 40, Thickness: 3}) }, "BAR 10,40,91,3\r\n"},
		{"vertical line", func() (string, error) { return Line(LineOptions{X1: 5, Y1: 0, X2: 5, Y2: 9, Thickness: 2}) }, "BAR 5,0,2,10\r\n"},
		{"diagonal line", func() (string, error) { return Line(LineOptions{X1: 0, Y1: 0, X2: 30, Y2: 40, Thickness: 1}) }, "DIAGONAL 0,0,30,40,1\r\n"},
		{"circle", func() (string, error) { return Circle(CircleOptions{X: 100, Y: 100, Diameter: 50, Thickness: 4}) }, "CIRCLE 100,100,50,4\r\n"},
		{"ellipse", func() (string, error) {
			return Ellipse(EllipseOptions{X: 10, Y: 20, Width: 80, Height: 40, Thickness: 2})
		}, "ELLIPSE 10,20,80,40,2\r\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.fn()
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestShapesRejectThinLines(t *testing.T) {
	_, err := Box(BoxOptions{X2: 10, Y2: 10})
	assert.ErrorIs(t, err, ErrInvalidThickness)
	_, err = Line(LineOptions{X2: 10, Thickness: -1})
	assert.ErrorIs(t, err, ErrInvalidThickness)
	_, err = Circle(CircleOptions{Diameter: 10})
	assert.ErrorIs(t, err, ErrInvalidThickness)
	_, err = Ellipse(EllipseOptions{Width: 10, Height: 10})
	assert.ErrorIs(t, err, ErrInvalidThickness)

	_, err = Circle(CircleOptions{Thickness: 1})
	assert.ErrorIs(t, err, ErrInvalidDimension)
	_, err = Box(BoxOptions{X1: -4, Thickness: 1})
	assert.ErrorIs(t, err, ErrInvalidCoordinate)
}

func TestBitmap(t *testing.T) {
	got, err := Bitmap(BitmapOptions{X: 0, Y: 0, WidthBytes: 2, Height: 2, Mode: BitmapOverwrite, Data: "FF00a55A"})
	require.NoError(t, err)
	assert.Equal(t, "BITMAP 0,0,2,2,0,FF00a55A\r\n", got)

	_, err = Bitmap(BitmapOptions{WidthBytes: 2, Height: 2, Mode: BitmapXOR, Data: "FF00A5"})
	assert.ErrorIs(t, err, ErrBitmapSizeMismatch)

	_, err = Bitmap(BitmapOptions{WidthBytes: 1, Height: 1, Data: "ZZ"})
	assert.ErrorIs(t, err, ErrBitmapSizeMismatch)

	_, err = Bitmap(BitmapOptions{WidthBytes: 1, Height: 1, Mode: 2, Data: "00"})
	assert.ErrorIs(t, err, ErrInvalidMode)
}
