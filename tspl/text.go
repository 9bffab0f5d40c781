package tspl

import (
	"fmt"
	"strings"
)

// TextOptions describes a TEXT command. Coordinates are always dots.
type TextOptions struct {
	X, Y        int
	Font        Font
	Rotation    Rotation
	XMultiplier int
	YMultiplier int
	Text        string
}

// WithDefaults fills an empty font and zero multipliers.
func (o TextOptions) WithDefaults() TextOptions {
	if o.Font == "" {
		o.Font = DefaultFont
	}
	o.XMultiplier = orDefault(o.XMultiplier, 1)
	o.YMultiplier = orDefault(o.YMultiplier, 1)
	return o
}

// BlockOptions describes a BLOCK command: text wrapped inside a box.
type BlockOptions struct {
	TextOptions
	Width, Height int
	LineSpacing   int
	Alignment     Alignment
}

// WithDefaults fills the embedded text defaults and left alignment.
func (o BlockOptions) WithDefaults() BlockOptions {
	o.TextOptions = o.TextOptions.WithDefaults()
	if o.Alignment == "" {
		o.Alignment = AlignLeft
	}
	return o
}

func fontToken(f Font) (string, error) {
	if f == "" || strings.ContainsAny(string(f), "\"\\\r\n") {
		return "", fmt.Errorf("%w: %q", ErrInvalidFont, f)
	}
	return `"` + string(f) + `"`, nil
}

// textArgs validates and renders the tokens shared by TEXT and BLOCK after
// the coordinates: font, rotation and multipliers.
func textArgs(o TextOptions) ([]string, error) {
	if err := checkRotation(o.Rotation); err != nil {
		return nil, err
	}
	if err := checkMultiplier("x", o.XMultiplier); err != nil {
		return nil, err
	}
	if err := checkMultiplier("y", o.YMultiplier); err != nil {
		return nil, err
	}
	font, err := fontToken(o.Font)
	if err != nil {
		return nil, err
	}
	return []string{font, itoa(int(o.Rotation)), itoa(o.XMultiplier), itoa(o.YMultiplier)}, nil
}

// Text returns the TEXT command for o.
func Text(o TextOptions) (string, error) {
	if err := checkCoordinates(o.X, o.Y); err != nil {
		return "", err
	}
	args, err := textArgs(o)
	if err != nil {
		return "", err
	}
	content, err := quote(o.Text)
	if err != nil {
		return "", err
	}
	args = append([]string{itoa(o.X), itoa(o.Y)}, args...)
	return command("TEXT", append(args, content)...), nil
}

// Block returns the BLOCK command for o.
func Block(o BlockOptions) (string, error) {
	if err := checkCoordinates(o.X, o.Y); err != nil {
		return "", err
	}
	if o.Width < 1 || o.Height < 1 {
		return "", fmt.Errorf("%w: block %dx%d", ErrInvalidDimension, o.Width, o.Height)
	}
	if o.LineSpacing < 0 {
		return "", fmt.Errorf("%w: line spacing %d", ErrInvalidDimension, o.LineSpacing)
	}
	align, ok := alignmentTokens[o.Alignment]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidAlignment, o.Alignment)
	}
	textTokens, err := textArgs(o.TextOptions)
	if err != nil {
		return "", err
	}
	content, err := quote(o.Text)
	if err != nil {
		return "", err
	}
	args := []string{itoa(o.X), itoa(o.Y), itoa(o.Width), itoa(o.Height)}
	args = append(args, textTokens...)
	args = append(args, itoa(o.LineSpacing), align, content)
	return command("BLOCK", args...), nil
}
