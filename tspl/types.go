package tspl

import "fmt"

// MeasurementSystem selects the unit used for SIZE and GAP.
type MeasurementSystem int

const (
	// MeasurementUnset means "inherit from the next level".
	MeasurementUnset MeasurementSystem = iota
	Metric
	English
	Dots
)

// DefaultMeasurement is used when neither the call nor the label sets one.
const DefaultMeasurement = Metric

func (m MeasurementSystem) String() string {
	switch m {
	case MeasurementUnset:
		return "unset"
	case Metric:
		return "metric"
	case English:
		return "english"
	case Dots:
		return "dots"
	}
	return fmt.Sprintf("MeasurementSystem(%d)", int(m))
}

// ParseMeasurement maps a config string to a MeasurementSystem.
// An empty string yields MeasurementUnset.
func ParseMeasurement(s string) (MeasurementSystem, error) {
	switch s {
	case "":
		return MeasurementUnset, nil
	case "metric", "mm":
		return Metric, nil
	case "english", "inch":
		return English, nil
	case "dots", "dot":
		return Dots, nil
	}
	return MeasurementUnset, fmt.Errorf("%w: %q", ErrInvalidMeasurement, s)
}

// ResolveMeasurement returns the call override if set, then the instance
// default, then DefaultMeasurement.
func ResolveMeasurement(call, instance MeasurementSystem) MeasurementSystem {
	if call != MeasurementUnset {
		return call
	}
	if instance != MeasurementUnset {
		return instance
	}
	return DefaultMeasurement
}

// Rotation is a clockwise rotation in degrees.
type Rotation int

const (
	Rotate0   Rotation = 0
	Rotate90  Rotation = 90
	Rotate180 Rotation = 180
	Rotate270 Rotation = 270
)

func (r Rotation) valid() bool {
	switch r {
	case Rotate0, Rotate90, Rotate180, Rotate270:
		return true
	}
	return false
}

// Font is a built-in font number or the name of a font stored on the printer.
type Font string

const (
	Font1     Font = "1" // 8 x 12 dots
	Font2     Font = "2" // 12 x 20 dots
	Font3     Font = "3" // 16 x 24 dots
	Font4     Font = "4" // 24 x 32 dots
	Font5     Font = "5" // 32 x 48 dots
	Font6     Font = "6" // 14 x 19 dots OCR-B
	Font7     Font = "7" // 21 x 27 dots OCR-B
	Font8     Font = "8" // 14 x 25 dots OCR-A
	FontRoman Font = "ROMAN.TTF"
)

// DefaultFont is used when a text command leaves Font empty.
const DefaultFont = Font1

// Alignment of a BLOCK paragraph.
type Alignment string

const (
	AlignLeft    Alignment = "L"
	AlignCenter  Alignment = "C"
	AlignRight   Alignment = "R"
	AlignJustify Alignment = "J"
)

// TSPL has no dedicated justify code; J maps to the firmware default.
var alignmentTokens = map[Alignment]string{
	AlignLeft:    "1",
	AlignCenter:  "2",
	AlignRight:   "3",
	AlignJustify: "0",
}

// Readable controls the human readable line under a barcode.
type Readable int

const (
	ReadableNone Readable = iota
	ReadableLeft
	ReadableCenter
	ReadableRight
)

// ECCLevel is the QR code error correction tier.
type ECCLevel string

const (
	ECCLow      ECCLevel = "L"
	ECCMedium   ECCLevel = "M"
	ECCQuartile ECCLevel = "Q"
	ECCHigh     ECCLevel = "H"
)

// QRMode selects automatic or manual QR encoding.
type QRMode string

const (
	QRAuto   QRMode = "A"
	QRManual QRMode = "M"
)

// BitmapMode is the BITMAP merge mode.
type BitmapMode int

const (
	BitmapOverwrite BitmapMode = 0
	BitmapXOR       BitmapMode = 1
)
