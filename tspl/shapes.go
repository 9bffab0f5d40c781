package tspl

import "fmt"

// BoxOptions describes a BOX command from (X1,Y1) to (X2,Y2).
// Radius rounds the corners when positive.
type BoxOptions struct {
	X1, Y1    int
	X2, Y2    int
	Thickness int
	Radius    int
}

// Box returns the BOX command for o.
func Box(o BoxOptions) (string, error) {
	if err := checkCoordinates(o.X1, o.Y1, o.X2, o.Y2); err != nil {
		return "", err
	}
	if err := checkThickness(o.Thickness); err != nil {
		return "", err
	}
	if o.Radius < 0 {
		return "", fmt.Errorf("%w: radius %d", ErrInvalidDimension, o.Radius)
	}
	args := []string{itoa(o.X1), itoa(o.Y1), itoa(o.X2), itoa(o.Y2), itoa(o.Thickness)}
	if o.Radius > 0 {
		args = append(args, itoa(o.Radius))
	}
	return command("BOX", args...), nil
}

// LineOptions describes a straight line from (X1,Y1) to (X2,Y2).
type LineOptions struct {
	X1, Y1    int
	X2, Y2    int
	Thickness int
}

// Line returns a BAR command for horizontal and vertical lines and a
// DIAGONAL command otherwise.
func Line(o LineOptions) (string, error) {
	if err := checkCoordinates(o.X1, o.Y1, o.X2, o.Y2); err != nil {
		return "", err
	}
	if err := checkThickness(o.Thickness); err != nil {
		return "", err
	}
	x, y := min(o.X1, o.X2), min(o.Y1, o.Y2)
	switch {
	case o.Y1 == o.Y2:
		return command("BAR", itoa(x), itoa(y), itoa(abs(o.X2-o.X1)+1), itoa(o.Thickness)), nil
	case o.X1 == o.X2:
		return command("BAR", itoa(x), itoa(y), itoa(o.Thickness), itoa(abs(o.Y2-o.Y1)+1)), nil
	}
	return command("DIAGONAL", itoa(o.X1), itoa(o.Y1), itoa(o.X2), itoa(o.Y2), itoa(o.Thickness)), nil
}

// CircleOptions describes a CIRCLE whose bounding box starts at (X,Y).
type CircleOptions struct {
	X, Y      int
	Diameter  int
	Thickness int
}

// Circle returns the CIRCLE command for o.
func Circle(o CircleOptions) (string, error) {
	if err := checkCoordinates(o.X, o.Y); err != nil {
		return "", err
	}
	if o.Diameter < 1 {
		return "", fmt.Errorf("%w: diameter %d", ErrInvalidDimension, o.Diameter)
	}
	if err := checkThickness(o.Thickness); err != nil {
		return "", err
	}
	return command("CIRCLE", itoa(o.X), itoa(o.Y), itoa(o.Diameter), itoa(o.Thickness)), nil
}

// EllipseOptions describes an ELLIPSE whose bounding box starts at (X,Y).
type EllipseOptions struct {
	X, Y          int
	Width, Height int
	Thickness     int
}

// Ellipse returns the ELLIPSE command for o.
func Ellipse(o EllipseOptions) (string, error) {
	if err := checkCoordinates(o.X, o.Y); err != nil {
		return "", err
	}
	if o.Width < 1 || o.Height < 1 {
		return "", fmt.Errorf("%w: ellipse %dx%d", ErrInvalidDimension, o.Width, o.Height)
	}
	if err := checkThickness(o.Thickness); err != nil {
		return "", err
	}
	return command("ELLIPSE", itoa(o.X), itoa(o.Y), itoa(o.Width), itoa(o.Height), itoa(o.Thickness)), nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
