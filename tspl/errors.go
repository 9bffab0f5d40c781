package tspl

import "errors"

// Errors returned by the encoder. They are wrapped with the offending value,
// match them with errors.Is.
var (
	ErrInvalidDimension   = errors.New("tspl: invalid dimension")
	ErrInvalidMeasurement = errors.New("tspl: invalid measurement system")
	ErrInvalidCoordinate  = errors.New("tspl: invalid coordinate")
	ErrInvalidRotation    = errors.New("tspl: invalid rotation")
	ErrInvalidMultiplier  = errors.New("tspl: invalid multiplier")
	ErrInvalidThickness   = errors.New("tspl: invalid thickness")
	ErrInvalidAlignment   = errors.New("tspl: invalid alignment")
	ErrInvalidEccLevel    = errors.New("tspl: invalid ecc level")
	ErrInvalidMode        = errors.New("tspl: invalid mode")
	ErrInvalidReadable    = errors.New("tspl: invalid readable option")
	ErrInvalidSpeed       = errors.New("tspl: invalid speed")
	ErrInvalidDensity     = errors.New("tspl: invalid density")
	ErrInvalidCopies      = errors.New("tspl: invalid copies")
	ErrInvalidFilename    = errors.New("tspl: invalid filename")
	ErrInvalidDirection   = errors.New("tspl: invalid direction")
	ErrInvalidFont        = errors.New("tspl: invalid font")
	ErrUnknownSymbology   = errors.New("tspl: unknown barcode symbology")
	ErrBitmapSizeMismatch = errors.New("tspl: bitmap size mismatch")
	ErrUnescapedPayload   = errors.New("tspl: unescaped payload")
)
