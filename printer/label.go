package printer

import (
	"errors"
	"image"
	"strings"

	"go.uber.org/zap"

	imgInternal "github.com/xgd16/tspl-generator/image"
	"github.com/xgd16/tspl-generator/tspl"
)

// ErrNotInitialized is recorded when a drawing or print command is added to
// a strict Label before Initialize.
var ErrNotInitialized = errors.New("printer: label not initialized")

// Page setup defaults applied by Initialize.
const (
	DefaultSpeed     = 3
	DefaultDensity   = 8
	DefaultGap       = 3
	DefaultGapOffset = 0
)

// LabelConfig is the page setup consumed by Initialize.
// Zero Speed and Gap and a nil Density take the package defaults.
type LabelConfig struct {
	Width, Height float64
	Speed         float64
	Density       *int
	Gap           float64
	GapOffset     float64
	Measurement   tspl.MeasurementSystem
}

// Density returns a pointer for LabelConfig.Density.
func Density(n int) *int {
	return &n
}

// CommandKind tells encoder output apart from raw passthrough.
type CommandKind int

const (
	// Typed commands were produced and validated by the tspl encoder.
	Typed CommandKind = iota
	// Raw commands were passed through AddCommand without validation.
	Raw
)

func (k CommandKind) String() string {
	if k == Raw {
		return "raw"
	}
	return "typed"
}

// Command is one line of a label program.
type Command struct {
	Kind CommandKind
	Name string
	Text string
}

// Label accumulates TSPL commands into one program.
//
// Every Add method appends exactly one command and returns the same Label.
// The first failure is kept in Err; the failing call and every later one
// append nothing until Reset or Initialize. A Label is not safe for
// concurrent use.
type Label struct {
	cmds []Command

	// measurement is the instance default, active the one resolved by the
	// last Initialize.
	measurement tspl.MeasurementSystem
	active      tspl.MeasurementSystem

	initialized bool
	strict      bool
	err         error

	log *zap.Logger
}

// LabelOption configures a Label.
type LabelOption func(*Label)

// WithMeasurement sets the instance default measurement system.
func WithMeasurement(m tspl.MeasurementSystem) LabelOption {
	return func(l *Label) { l.measurement = m }
}

// WithLogger makes the Label log every appended command at debug level.
func WithLogger(logger *zap.Logger) LabelOption {
	return func(l *Label) {
		if logger != nil {
			l.log = logger
		}
	}
}

// WithStrict controls whether commands before Initialize fail with
// ErrNotInitialized. Labels are strict by default.
func WithStrict(strict bool) LabelOption {
	return func(l *Label) { l.strict = strict }
}

// NewLabel creates an empty, uninitialized Label.
func NewLabel(opts ...LabelOption) *Label {
	l := &Label{
		strict: true,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Initialize resets the program and appends SIZE, SPEED, DENSITY, GAP and CLS
// in that order. Nothing is appended if any of them fails.
func (l *Label) Initialize(cfg LabelConfig) *Label {
	l.Reset()

	m := tspl.ResolveMeasurement(cfg.Measurement, l.measurement)
	speed := cfg.Speed
	if speed == 0 {
		speed = DefaultSpeed
	}
	density := DefaultDensity
	if cfg.Density != nil {
		density = *cfg.Density
	}
	gap := cfg.Gap
	if gap == 0 {
		gap = DefaultGap
	}

	setup := []struct {
		name   string
		encode func() (string, error)
	}{
		{"SIZE", func() (string, error) { return tspl.Size(cfg.Width, cfg.Height, m) }},
		{"SPEED", func() (string, error) { return tspl.Speed(speed) }},
		{"DENSITY", func() (string, error) { return tspl.Density(density) }},
		{"GAP", func() (string, error) { return tspl.Gap(gap, cfg.GapOffset, m) }},
		{"CLS", func() (string, error) { return tspl.Cls(), nil }},
	}
	cmds := make([]Command, 0, len(setup))
	for _, s := range setup {
		line, err := s.encode()
		if err != nil {
			l.fail(s.name, err)
			return l
		}
		cmds = append(cmds, Command{Kind: Typed, Name: s.name, Text: line})
	}

	l.cmds = cmds
	l.active = m
	l.initialized = true
	l.log.Debug("label initialized",
		zap.Float64("width", cfg.Width),
		zap.Float64("height", cfg.Height),
		zap.Stringer("measurement", m),
	)
	return l
}

// SetGap appends a GAP command in the measurement system of the last
// Initialize, or the instance default.
func (l *Label) SetGap(distance, offset float64) *Label {
	m := l.active
	if !l.initialized {
		m = tspl.ResolveMeasurement(tspl.MeasurementUnset, l.measurement)
	}
	return l.add("GAP", func() (string, error) { return tspl.Gap(distance, offset, m) })
}

// AddText appends a TEXT command. Empty font and zero multipliers take
// defaults.
func (l *Label) AddText(opts tspl.TextOptions) *Label {
	return l.add("TEXT", func() (string, error) { return tspl.Text(opts.WithDefaults()) })
}

// AddTextBlock appends a BLOCK command.
func (l *Label) AddTextBlock(opts tspl.BlockOptions) *Label {
	return l.add("BLOCK", func() (string, error) { return tspl.Block(opts.WithDefaults()) })
}

// AddBarcode appends a BARCODE command.
func (l *Label) AddBarcode(opts tspl.BarcodeOptions) *Label {
	return l.add("BARCODE", func() (string, error) { return tspl.Barcode(opts.WithDefaults()) })
}

// AddQRCode appends a QRCODE command.
func (l *Label) AddQRCode(opts tspl.QRCodeOptions) *Label {
	return l.add("QRCODE", func() (string, error) { return tspl.QRCode(opts.WithDefaults()) })
}

func (l *Label) AddBox(opts tspl.BoxOptions) *Label {
	return l.add("BOX", func() (string, error) { return tspl.Box(opts) })
}

func (l *Label) AddLine(opts tspl.LineOptions) *Label {
	return l.add("LINE", func() (string, error) { return tspl.Line(opts) })
}

func (l *Label) AddCircle(opts tspl.CircleOptions) *Label {
	return l.add("CIRCLE", func() (string, error) { return tspl.Circle(opts) })
}

func (l *Label) AddEllipse(opts tspl.EllipseOptions) *Label {
	return l.add("ELLIPSE", func() (string, error) { return tspl.Ellipse(opts) })
}

// AddBitmap appends a BITMAP command from pre-packed hex data.
func (l *Label) AddBitmap(opts tspl.BitmapOptions) *Label {
	return l.add("BITMAP", func() (string, error) { return tspl.Bitmap(opts) })
}

// AddImage converts img with conv and appends it as a BITMAP command.
func (l *Label) AddImage(x, y int, img image.Image, conv *imgInternal.Converter) *Label {
	return l.add("BITMAP", func() (string, error) {
		return tspl.Bitmap(conv.Options(img, x, y, tspl.BitmapOverwrite))
	})
}

// AddBMP appends a PUTBMP command for a BMP stored on the printer.
func (l *Label) AddBMP(x, y int, filename string) *Label {
	return l.add("PUTBMP", func() (string, error) { return tspl.PutBMP(x, y, filename) })
}

func (l *Label) AddDirection(direction int, mirror bool) *Label {
	return l.add("DIRECTION", func() (string, error) { return tspl.Direction(direction, mirror) })
}

func (l *Label) AddReference(x, y int) *Label {
	return l.add("REFERENCE", func() (string, error) { return tspl.Reference(x, y) })
}

// AddFeed appends FEED dots.
func (l *Label) AddFeed(dots int) *Label {
	return l.add("FEED", func() (string, error) { return tspl.Feed(dots) })
}

func (l *Label) AddHome() *Label {
	return l.add("HOME", func() (string, error) { return tspl.Home(), nil })
}

// AddCommand appends cmd verbatim as a Raw command. A bare LF or CR line
// ending is replaced by the CRLF terminator, which is added if missing. It
// is accepted before Initialize.
func (l *Label) AddCommand(cmd string) *Label {
	if l.err != nil {
		return l
	}
	if !strings.HasSuffix(cmd, tspl.Terminator) {
		cmd = strings.TrimSuffix(strings.TrimSuffix(cmd, "\n"), "\r") + tspl.Terminator
	}
	name, _, _ := strings.Cut(strings.TrimSpace(cmd), " ")
	l.cmds = append(l.cmds, Command{Kind: Raw, Name: name, Text: cmd})
	l.log.Debug("raw command appended", zap.String("command", name))
	return l
}

// Print appends PRINT copies.
func (l *Label) Print(copies int) *Label {
	return l.add("PRINT", func() (string, error) { return tspl.Print(copies) })
}

// PrintSets appends PRINT sets,copies.
func (l *Label) PrintSets(sets, copies int) *Label {
	return l.add("PRINT", func() (string, error) { return tspl.PrintSets(sets, copies) })
}

// Clear appends CLS, clearing the printer's image buffer. The program held
// by the Label is not affected; see Reset for that.
func (l *Label) Clear() *Label {
	return l.add("CLS", func() (string, error) { return tspl.Cls(), nil })
}

// Buffer returns the program accumulated so far.
func (l *Label) Buffer() string {
	var b strings.Builder
	for _, c := range l.cmds {
		b.WriteString(c.Text)
	}
	return b.String()
}

// Commands returns a copy of the accumulated commands.
func (l *Label) Commands() []Command {
	out := make([]Command, len(l.cmds))
	copy(out, l.cmds)
	return out
}

// Len reports the number of accumulated commands.
func (l *Label) Len() int {
	return len(l.cmds)
}

// Err returns the first error recorded since the last Reset.
func (l *Label) Err() error {
	return l.err
}

// Initialized reports whether page setup has been issued.
func (l *Label) Initialized() bool {
	return l.initialized
}

// Reset discards every command and the recorded error. Page setup is not
// reissued.
func (l *Label) Reset() *Label {
	l.cmds = nil
	l.err = nil
	l.initialized = false
	l.active = tspl.MeasurementUnset
	return l
}

func (l *Label) add(name string, encode func() (string, error)) *Label {
	if l.err != nil {
		return l
	}
	if l.strict && !l.initialized {
		l.fail(name, ErrNotInitialized)
		return l
	}
	line, err := encode()
	if err != nil {
		l.fail(name, err)
		return l
	}
	l.cmds = append(l.cmds, Command{Kind: Typed, Name: name, Text: line})
	l.log.Debug("command appended",
		zap.String("command", name),
		zap.String("line", strings.TrimSuffix(line, tspl.Terminator)),
	)
	return l
}

func (l *Label) fail(name string, err error) {
	l.err = err
	l.log.Warn("command rejected", zap.String("command", name), zap.Error(err))
}
