package printer

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	imgInternal "github.com/xgd16/tspl-generator/image"
	"github.com/xgd16/tspl-generator/tspl"
)

func lines(program string) []string {
	program = strings.TrimSuffix(program, tspl.Terminator)
	if program == "" {
		return nil
	}
	return strings.Split(program, tspl.Terminator)
}

func TestInitializeOrder(t *testing.T) {
	l := NewLabel().Initialize(LabelConfig{Width: 40, Height: 30, Measurement: tspl.Metric})
	require.NoError(t, l.Err())

	assert.Equal(t, []string{
		"SIZE 40 mm,30 mm",
		"SPEED 3",
		"DENSITY 8",
		"GAP 3 mm,0 mm",
		"CLS",
	}, lines(l.Buffer()))
	assert.True(t, l.Initialized())
}

func TestInitializeOverrides(t *testing.T) {
	l := NewLabel(WithMeasurement(tspl.Dots)).Initialize(LabelConfig{
		Width: 320, Height: 240, Speed: 5, Density: Density(0), Gap: 24, GapOffset: 2,
	})
	require.NoError(t, l.Err())

	assert.Equal(t, []string{
		"SIZE 320 dot,240 dot",
		"SPEED 5",
		"DENSITY 0",
		"GAP 24 dot,2 dot",
		"CLS",
	}, lines(l.Buffer()))

	// call override beats the instance default
	l.Initialize(LabelConfig{Width: 2, Height: 1, Measurement: tspl.English})
	assert.Equal(t, "SIZE 2,1", lines(l.Buffer())[0])
	assert.Equal(t, "GAP 3,0", lines(l.Buffer())[3])
}

func TestInitializeFailureAppendsNothing(t *testing.T) {
	l := NewLabel().Initialize(LabelConfig{Width: 40, Height: 30, Density: Density(-1)})

	assert.ErrorIs(t, l.Err(), tspl.ErrInvalidDensity)
	assert.Empty(t, l.Buffer())
	assert.False(t, l.Initialized())

	tiny := NewLabel().Initialize(LabelConfig{Width: 0.004, Height: 30})
	assert.ErrorIs(t, tiny.Err(), tspl.ErrInvalidDimension)
	assert.Empty(t, tiny.Buffer())
}

func TestWorkedExample(t *testing.T) {
	l := NewLabel().
		Initialize(LabelConfig{Width: 40, Height: 30, Measurement: tspl.Metric}).
		AddText(tspl.TextOptions{X: 10, Y: 10, Font: "1", Text: `A"B`}).
		Print(1)
	require.NoError(t, l.Err())

	buf := l.Buffer()
	got := lines(buf)
	require.Len(t, got, 7)
	assert.Equal(t, 7, strings.Count(buf, tspl.Terminator))
	assert.True(t, strings.HasSuffix(buf, tspl.Terminator))
	assert.Contains(t, got, `TEXT 10,10,"1",0,1,1,"A\"B"`)
	assert.Equal(t, "PRINT 1", got[6])
}

func TestChainingReturnsSameLabel(t *testing.T) {
	l := NewLabel().Initialize(LabelConfig{Width: 40, Height: 30})
	a := tspl.TextOptions{X: 1, Y: 1, Text: "a"}
	b := tspl.TextOptions{X: 2, Y: 2, Text: "b"}

	assert.Same(t, l, l.AddText(a))
	assert.Same(t, l, l.AddText(b).Print(1))

	got := lines(l.Buffer())
	assert.Equal(t, `TEXT 1,1,"1",0,1,1,"a"`, got[5])
	assert.Equal(t, `TEXT 2,2,"1",0,1,1,"b"`, got[6])
}

func TestIndependentLabelsAreDeterministic(t *testing.T) {
	build := func() string {
		return NewLabel().
			Initialize(LabelConfig{Width: 50, Height: 25.4}).
			AddText(tspl.TextOptions{X: 3, Y: 4, Text: "same"}).
			AddBarcode(tspl.BarcodeOptions{Type: tspl.EAN13, Content: "590123412345"}).
			AddQRCode(tspl.QRCodeOptions{Content: "x"}).
			Print(2).
			Buffer()
	}
	assert.Equal(t, build(), build())
}

func TestInvalidRotationAppendsNothing(t *testing.T) {
	for name, add := range map[string]func(*Label) *Label{
		"text":    func(l *Label) *Label { return l.AddText(tspl.TextOptions{Rotation: 45}) },
		"block":   func(l *Label) *Label { return l.AddTextBlock(tspl.BlockOptions{TextOptions: tspl.TextOptions{Rotation: 45}, Width: 1, Height: 1}) },
		"barcode": func(l *Label) *Label { return l.AddBarcode(tspl.BarcodeOptions{Type: tspl.Code128, Rotation: 45}) },
		"qrcode":  func(l *Label) *Label { return l.AddQRCode(tspl.QRCodeOptions{Rotation: 45}) },
	} {
		t.Run(name, func(t *testing.T) {
			l := NewLabel().Initialize(LabelConfig{Width: 40, Height: 30})
			before := l.Buffer()

			add(l)
			assert.ErrorIs(t, l.Err(), tspl.ErrInvalidRotation)
			assert.Equal(t, before, l.Buffer())
		})
	}
}

func TestErrorIsSticky(t *testing.T) {
	l := NewLabel().Initialize(LabelConfig{Width: 40, Height: 30})
	l.AddBox(tspl.BoxOptions{X2: 10, Y2: 10}).
		AddText(tspl.TextOptions{Text: "after"}).
		AddCommand("SOUND 1,100")

	assert.ErrorIs(t, l.Err(), tspl.ErrInvalidThickness)
	assert.Equal(t, 5, l.Len())
}

func TestNotInitialized(t *testing.T) {
	l := NewLabel().AddText(tspl.TextOptions{Text: "x"})
	assert.ErrorIs(t, l.Err(), ErrNotInitialized)
	assert.Empty(t, l.Buffer())

	lax := NewLabel(WithStrict(false)).AddText(tspl.TextOptions{Text: "x"}).Print(1)
	require.NoError(t, lax.Err())
	assert.Equal(t, "TEXT 0,0,\"1\",0,1,1,\"x\"\r\nPRINT 1\r\n", lax.Buffer())
}

func TestRawCommand(t *testing.T) {
	l := NewLabel().AddCommand("SET TEAR ON").AddCommand("SOUND 5,200\r\n")
	require.NoError(t, l.Err())

	assert.Equal(t, "SET TEAR ON\r\nSOUND 5,200\r\n", l.Buffer())
	cmds := l.Commands()
	require.Len(t, cmds, 2)
	assert.Equal(t, Command{Kind: Raw, Name: "SET", Text: "SET TEAR ON\r\n"}, cmds[0])
	assert.Equal(t, Raw, cmds[1].Kind)
}

func TestRawCommandLineEndings(t *testing.T) {
	l := NewLabel().
		AddCommand("SET TEAR ON\n").
		AddCommand("SET CUTTER OFF\r").
		AddCommand("SOUND 5,200\r\n").
		AddCommand("CLS")
	require.NoError(t, l.Err())

	assert.Equal(t, "SET TEAR ON\r\nSET CUTTER OFF\r\nSOUND 5,200\r\nCLS\r\n", l.Buffer())
	assert.Equal(t, []string{"SET TEAR ON", "SET CUTTER OFF", "SOUND 5,200", "CLS"}, lines(l.Buffer()))
}

func TestCommandsAreTagged(t *testing.T) {
	l := NewLabel().Initialize(LabelConfig{Width: 40, Height: 30}).AddCommand("SOUND 1,1").Print(1)
	for i, c := range l.Commands() {
		if i == 5 {
			assert.Equal(t, Raw, c.Kind)
			continue
		}
		assert.Equal(t, Typed, c.Kind, c.Name)
	}
}

func TestResetEmptiesBuffer(t *testing.T) {
	l := NewLabel().Initialize(LabelConfig{Width: 40, Height: 30}).Print(1)
	l.Reset()
	assert.Empty(t, l.Buffer())
	assert.False(t, l.Initialized())

	failed := NewLabel().Print(1)
	require.Error(t, failed.Err())
	failed.Reset()
	assert.NoError(t, failed.Err())
	assert.Empty(t, failed.Buffer())
}

func TestBufferHasNoSideEffects(t *testing.T) {
	l := NewLabel().Initialize(LabelConfig{Width: 40, Height: 30})
	first := l.Buffer()
	assert.Equal(t, first, l.Buffer())
	l.Print(1)
	assert.True(t, strings.HasPrefix(l.Buffer(), first))
}

func TestDrawingCommands(t *testing.T) {
	l := NewLabel().Initialize(LabelConfig{Width: 100, Height: 50}).
		SetGap(2, 1).
		AddTextBlock(tspl.BlockOptions{TextOptions: tspl.TextOptions{Text: "wrap me"}, Width: 200, Height: 80, Alignment: tspl.AlignRight}).
		AddBox(tspl.BoxOptions{X1: 0, Y1: 0, X2: 100, Y2: 50, Thickness: 2}).
		AddLine(tspl.LineOptions{X1: 0, Y1: 60, X2: 100, Y2: 60, Thickness: 2}).
		AddCircle(tspl.CircleOptions{X: 10, Y: 10, Diameter: 20, Thickness: 1}).
		AddEllipse(tspl.EllipseOptions{X: 10, Y: 10, Width: 20, Height: 10, Thickness: 1}).
		AddBitmap(tspl.BitmapOptions{X: 1, Y: 2, WidthBytes: 1, Height: 2, Data: "00FF"}).
		AddBMP(0, 0, "LOGO.BMP").
		AddDirection(1, false).
		AddReference(0, 0).
		AddFeed(40).
		AddHome().
		Clear().
		PrintSets(1, 2)
	require.NoError(t, l.Err())

	assert.Equal(t, []string{
		"GAP 2 mm,1 mm",
		`BLOCK 0,0,200,80,"1",0,1,1,0,3,"wrap me"`,
		"BOX 0,0,100,50,2",
		"BAR 0,60,101,2",
		"CIRCLE 10,10,20,1",
		"ELLIPSE 10,10,20,10,1",
		"BITMAP 1,2,1,2,0,00FF",
		`PUTBMP 0,0,"LOGO.BMP"`,
		"DIRECTION 1,0",
		"REFERENCE 0,0",
		"FEED 40",
		"HOME",
		"CLS",
		"PRINT 1,2",
	}, lines(l.Buffer())[5:])
}

func TestBitmapSizeMismatchAppendsNothing(t *testing.T) {
	l := NewLabel().Initialize(LabelConfig{Width: 40, Height: 30})
	l.AddBitmap(tspl.BitmapOptions{WidthBytes: 2, Height: 2, Data: "FF"})
	assert.ErrorIs(t, l.Err(), tspl.ErrBitmapSizeMismatch)
	assert.Equal(t, 5, l.Len())
}

func TestAddImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 8, 2))
	for x := 0; x < 8; x++ {
		img.SetGray(x, 1, color.Gray{Y: 255})
	}
	l := NewLabel().Initialize(LabelConfig{Width: 40, Height: 30}).AddImage(4, 6, img, nil)
	require.NoError(t, l.Err())
	assert.Equal(t, "BITMAP 4,6,1,2,0,00FF", lines(l.Buffer())[5])
}

func TestAddImageFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logo.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewGray(image.Rect(0, 0, 16, 1))))
	require.NoError(t, f.Close())

	l := NewLabel().Initialize(LabelConfig{Width: 40, Height: 30}).
		AddImageFile(0, 0, path, &imgInternal.Converter{MaxWidth: 8})
	require.NoError(t, l.Err())
	assert.Equal(t, "BITMAP 0,0,1,1,0,00", lines(l.Buffer())[5])

	missing := NewLabel().Initialize(LabelConfig{Width: 40, Height: 30}).
		AddImageFile(0, 0, filepath.Join(t.TempDir(), "nope.png"), nil)
	assert.ErrorIs(t, missing.Err(), os.ErrNotExist)
}

func TestLabelLogsCommands(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	NewLabel(WithLogger(zap.New(core))).
		Initialize(LabelConfig{Width: 40, Height: 30}).
		AddText(tspl.TextOptions{Text: "x"}).
		AddText(tspl.TextOptions{Rotation: 1})

	appended := logs.FilterMessage("command appended").All()
	require.Len(t, appended, 1)
	assert.Equal(t, "TEXT", appended[0].ContextMap()["command"])

	rejected := logs.FilterMessage("command rejected").All()
	require.Len(t, rejected, 1)
}
