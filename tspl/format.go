package tspl

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Terminator ends every command line.
const Terminator = "\r\n"

// physicalPrecision is the number of decimals kept for mm and inch values.
const physicalPrecision = 2

func command(name string, args ...string) string {
	if len(args) == 0 {
		return name + Terminator
	}
	return name + " " + strings.Join(args, ",") + Terminator
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

// roundDecimal rounds v to at most places decimals.
func roundDecimal(v float64, places int32) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(places)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// roundLength rounds a physical distance to the precision printed for m.
func roundLength(v float64, m MeasurementSystem) (decimal.Decimal, error) {
	if !finite(v) {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrInvalidDimension, v)
	}
	switch m {
	case Metric, English:
		return roundDecimal(v, physicalPrecision), nil
	case Dots:
		return roundDecimal(v, 0), nil
	}
	return decimal.Zero, fmt.Errorf("%w: %v", ErrInvalidMeasurement, m)
}

// formatLength renders a physical distance in the token form of m.
func formatLength(v float64, m MeasurementSystem) (string, error) {
	d, err := roundLength(v, m)
	if err != nil {
		return "", err
	}
	return lengthToken(d, m), nil
}

// formatPositiveLength is formatLength for values that must stay above zero
// once rounded.
func formatPositiveLength(v float64, m MeasurementSystem) (string, error) {
	d, err := roundLength(v, m)
	if err != nil {
		return "", err
	}
	if !d.IsPositive() {
		return "", fmt.Errorf("%w: %v rounds to %s", ErrInvalidDimension, v, d)
	}
	return lengthToken(d, m), nil
}

func lengthToken(d decimal.Decimal, m MeasurementSystem) string {
	switch m {
	case Metric:
		return d.String() + " mm"
	case Dots:
		return d.String() + " dot"
	}
	return d.String()
}

func checkCoordinates(pairs ...int) error {
	for _, v := range pairs {
		if v < 0 {
			return fmt.Errorf("%w: %d", ErrInvalidCoordinate, v)
		}
	}
	return nil
}

func checkRotation(r Rotation) error {
	if !r.valid() {
		return fmt.Errorf("%w: %d", ErrInvalidRotation, int(r))
	}
	return nil
}

func checkThickness(t int) error {
	if t < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidThickness, t)
	}
	return nil
}

func checkMultiplier(name string, v int) error {
	if v < 1 {
		return fmt.Errorf("%w: %s %d", ErrInvalidMultiplier, name, v)
	}
	return nil
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
