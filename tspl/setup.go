package tspl

import (
	"fmt"
	"strings"
)

// Size returns the SIZE command for a label of width x height in m units.
func Size(width, height float64, m MeasurementSystem) (string, error) {
	if !(width > 0) || !(height > 0) {
		return "", fmt.Errorf("%w: size %vx%v", ErrInvalidDimension, width, height)
	}
	w, err := formatPositiveLength(width, m)
	if err != nil {
		return "", err
	}
	h, err := formatPositiveLength(height, m)
	if err != nil {
		return "", err
	}
	return command("SIZE", w, h), nil
}

// Gap returns the GAP command. distance must be positive, offset non-negative.
func Gap(distance, offset float64, m MeasurementSystem) (string, error) {
	if !(distance > 0) || !(offset >= 0) {
		return "", fmt.Errorf("%w: gap %v,%v", ErrInvalidDimension, distance, offset)
	}
	d, err := formatPositiveLength(distance, m)
	if err != nil {
		return "", err
	}
	o, err := formatLength(offset, m)
	if err != nil {
		return "", err
	}
	return command("GAP", d, o), nil
}

// Speed returns the SPEED command. The value is not clamped to the printer's
// supported steps.
func Speed(v float64) (string, error) {
	if !finite(v) {
		return "", fmt.Errorf("%w: %v", ErrInvalidSpeed, v)
	}
	d := roundDecimal(v, physicalPrecision)
	if !d.IsPositive() {
		return "", fmt.Errorf("%w: %v rounds to %s", ErrInvalidSpeed, v, d)
	}
	return command("SPEED", d.String()), nil
}

// Density returns the DENSITY command. The value is not clamped.
func Density(n int) (string, error) {
	if n < 0 {
		return "", fmt.Errorf("%w: %d", ErrInvalidDensity, n)
	}
	return command("DENSITY", itoa(n)), nil
}

// Cls clears the printer's image buffer.
func Cls() string {
	return command("CLS")
}

// Print prints the image buffer copies times.
func Print(copies int) (string, error) {
	if copies < 1 {
		return "", fmt.Errorf("%w: %d", ErrInvalidCopies, copies)
	}
	return command("PRINT", itoa(copies)), nil
}

// PrintSets prints sets label sets with copies copies of each.
func PrintSets(sets, copies int) (string, error) {
	if sets < 1 || copies < 1 {
		return "", fmt.Errorf("%w: %d,%d", ErrInvalidCopies, sets, copies)
	}
	return command("PRINT", itoa(sets), itoa(copies)), nil
}

// Direction sets the printout direction (0 or 1) and optional mirror image.
func Direction(direction int, mirror bool) (string, error) {
	if direction != 0 && direction != 1 {
		return "", fmt.Errorf("%w: %d", ErrInvalidDirection, direction)
	}
	m := "0"
	if mirror {
		m = "1"
	}
	return command("DIRECTION", itoa(direction), m), nil
}

// Reference moves the label origin to x,y dots.
func Reference(x, y int) (string, error) {
	if err := checkCoordinates(x, y); err != nil {
		return "", err
	}
	return command("REFERENCE", itoa(x), itoa(y)), nil
}

// Feed advances the label by dots.
func Feed(dots int) (string, error) {
	if dots < 1 {
		return "", fmt.Errorf("%w: feed %d", ErrInvalidDimension, dots)
	}
	return command("FEED", itoa(dots)), nil
}

// Home feeds to the start of the next label.
func Home() string {
	return command("HOME")
}

// PutBMP draws a BMP file already stored on the printer. The name is sent
// verbatim.
func PutBMP(x, y int, filename string) (string, error) {
	if err := checkCoordinates(x, y); err != nil {
		return "", err
	}
	if filename == "" || strings.ContainsAny(filename, "\"\r\n") {
		return "", fmt.Errorf("%w: %q", ErrInvalidFilename, filename)
	}
	return command("PUTBMP", itoa(x), itoa(y), `"`+filename+`"`), nil
}
