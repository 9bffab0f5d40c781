// Package job decodes label job files and replays them onto a printer.Label.
package job

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/xgd16/tspl-generator/config"
	imgInternal "github.com/xgd16/tspl-generator/image"
	"github.com/xgd16/tspl-generator/printer"
	"github.com/xgd16/tspl-generator/tspl"
)

// Job is one label: its page setup and the elements drawn on it, in order.
type Job struct {
	Label    config.LabelConfig `mapstructure:"label"`
	Elements []Element          `mapstructure:"elements"`

	// Dir is the directory of the job file; relative image paths resolve
	// against it.
	Dir string `mapstructure:"-"`
}

// Element is one drawing, setup or print instruction. Type selects which
// fields are read.
type Element struct {
	Type string `mapstructure:"type"`

	X         int `mapstructure:"x"`
	Y         int `mapstructure:"y"`
	X2        int `mapstructure:"x2"`
	Y2        int `mapstructure:"y2"`
	Width     int `mapstructure:"width"`
	Height    int `mapstructure:"height"`
	Rotation  int `mapstructure:"rotation"`
	Thickness int `mapstructure:"thickness"`
	Radius    int `mapstructure:"radius"`
	Diameter  int `mapstructure:"diameter"`

	Font        string `mapstructure:"font"`
	XMultiplier int    `mapstructure:"x_mul"`
	YMultiplier int    `mapstructure:"y_mul"`
	Text        string `mapstructure:"text"`
	LineSpacing int    `mapstructure:"line_spacing"`
	Align       string `mapstructure:"align"`

	Symbology string `mapstructure:"symbology"`
	RawType   string `mapstructure:"raw_type"`
	Readable  int    `mapstructure:"readable"`
	Narrow    int    `mapstructure:"narrow"`
	Wide      int    `mapstructure:"wide"`

	ECC       string `mapstructure:"ecc"`
	CellWidth int    `mapstructure:"cell_width"`
	Mode      string `mapstructure:"mode"`
	Model     string `mapstructure:"model"`
	Mask      string `mapstructure:"mask"`

	WidthBytes int     `mapstructure:"width_bytes"`
	BitmapMode int     `mapstructure:"bitmap_mode"`
	Data       string  `mapstructure:"data"`
	File       string  `mapstructure:"file"`
	MaxWidth   int     `mapstructure:"max_width"`
	Threshold  float64 `mapstructure:"threshold"`
	Dither     bool    `mapstructure:"dither"`

	Copies    int     `mapstructure:"copies"`
	Sets      int     `mapstructure:"sets"`
	Distance  float64 `mapstructure:"distance"`
	Offset    float64 `mapstructure:"offset"`
	Direction int     `mapstructure:"direction"`
	Feed      int     `mapstructure:"feed"`
	Mirror    bool    `mapstructure:"mirror"`
	Command   string  `mapstructure:"command"`
}

// ImageLoader loads the image behind an "image" element.
type ImageLoader func(path string) (image.Image, error)

// Load reads a YAML or JSON job file. Label fields missing from the file
// take their value from defaults.
func Load(path string, defaults config.LabelConfig) (*Job, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("label.width", defaults.Width)
	v.SetDefault("label.height", defaults.Height)
	v.SetDefault("label.speed", defaults.Speed)
	v.SetDefault("label.density", defaults.Density)
	v.SetDefault("label.gap", defaults.Gap)
	v.SetDefault("label.gap_offset", defaults.GapOffset)
	v.SetDefault("label.measurement", defaults.Measurement)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading job file: %w", err)
	}
	var j Job
	if err := v.Unmarshal(&j); err != nil {
		return nil, fmt.Errorf("unable to decode job: %w", err)
	}
	j.Dir = filepath.Dir(path)
	return &j, nil
}

// Apply initializes l with the job's page setup and appends every element.
// A nil loader reads images with printer.LoadImage.
func Apply(j *Job, l *printer.Label, load ImageLoader) error {
	if load == nil {
		load = printer.LoadImage
	}
	setup, err := j.Label.PageSetup()
	if err != nil {
		return err
	}
	if err := l.Initialize(setup).Err(); err != nil {
		return fmt.Errorf("page setup: %w", err)
	}

	for i, e := range j.Elements {
		if err := apply(j, l, e, load); err != nil {
			return fmt.Errorf("element %d (%s): %w", i, e.Type, err)
		}
		if err := l.Err(); err != nil {
			return fmt.Errorf("element %d (%s): %w", i, e.Type, err)
		}
	}
	return nil
}

func apply(j *Job, l *printer.Label, e Element, load ImageLoader) error {
	switch e.Type {
	case "text":
		l.AddText(e.textOptions())
	case "block":
		l.AddTextBlock(tspl.BlockOptions{
			TextOptions: e.textOptions(),
			Width:       e.Width,
			Height:      e.Height,
			LineSpacing: e.LineSpacing,
			Alignment:   tspl.Alignment(e.Align),
		})
	case "barcode":
		l.AddBarcode(tspl.BarcodeOptions{
			X: e.X, Y: e.Y,
			Type:     tspl.BarcodeType(e.Symbology),
			RawType:  e.RawType,
			Height:   e.Height,
			Readable: tspl.Readable(e.Readable),
			Rotation: tspl.Rotation(e.Rotation),
			Narrow:   e.Narrow,
			Wide:     e.Wide,
			Content:  e.Text,
		})
	case "qrcode":
		l.AddQRCode(tspl.QRCodeOptions{
			X: e.X, Y: e.Y,
			ECC:       tspl.ECCLevel(e.ECC),
			CellWidth: e.CellWidth,
			Mode:      tspl.QRMode(e.Mode),
			Rotation:  tspl.Rotation(e.Rotation),
			Model:     e.Model,
			Mask:      e.Mask,
			Content:   e.Text,
		})
	case "box":
		l.AddBox(tspl.BoxOptions{X1: e.X, Y1: e.Y, X2: e.X2, Y2: e.Y2, Thickness: e.Thickness, Radius: e.Radius})
	case "line":
		l.AddLine(tspl.LineOptions{X1: e.X, Y1: e.Y, X2: e.X2, Y2: e.Y2, Thickness: e.Thickness})
	case "circle":
		l.AddCircle(tspl.CircleOptions{X: e.X, Y: e.Y, Diameter: e.Diameter, Thickness: e.Thickness})
	case "ellipse":
		l.AddEllipse(tspl.EllipseOptions{X: e.X, Y: e.Y, Width: e.Width, Height: e.Height, Thickness: e.Thickness})
	case "bitmap":
		l.AddBitmap(tspl.BitmapOptions{
			X: e.X, Y: e.Y,
			WidthBytes: e.WidthBytes,
			Height:     e.Height,
			Mode:       tspl.BitmapMode(e.BitmapMode),
			Data:       e.Data,
		})
	case "image":
		path := e.File
		if !filepath.IsAbs(path) {
			path = filepath.Join(j.Dir, path)
		}
		img, err := load(path)
		if err != nil {
			return err
		}
		maxWidth := e.MaxWidth
		if maxWidth == 0 {
			maxWidth = printer.DefaultMaxImageWidth
		}
		l.AddImage(e.X, e.Y, img, &imgInternal.Converter{MaxWidth: maxWidth, Threshold: e.Threshold, Dither: e.Dither})
	case "bmp":
		l.AddBMP(e.X, e.Y, e.File)
	case "gap":
		l.SetGap(e.Distance, e.Offset)
	case "direction":
		l.AddDirection(e.Direction, e.Mirror)
	case "reference":
		l.AddReference(e.X, e.Y)
	case "feed":
		l.AddFeed(e.Feed)
	case "home":
		l.AddHome()
	case "raw":
		l.AddCommand(e.Command)
	case "clear":
		l.Clear()
	case "print":
		copies := e.Copies
		if copies == 0 {
			copies = 1
		}
		if e.Sets > 0 {
			l.PrintSets(e.Sets, copies)
		} else {
			l.Print(copies)
		}
	default:
		return fmt.Errorf("unknown element type %q", e.Type)
	}
	return nil
}

func (e Element) textOptions() tspl.TextOptions {
	return tspl.TextOptions{
		X: e.X, Y: e.Y,
		Font:        tspl.Font(e.Font),
		Rotation:    tspl.Rotation(e.Rotation),
		XMultiplier: e.XMultiplier,
		YMultiplier: e.YMultiplier,
		Text:        e.Text,
	}
}
