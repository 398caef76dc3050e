package fullcontrol

import (
	"fmt"
	"math"
	"strings"
)

// Color is an RGB triple with components in 0..1.
type Color [3]float64

type ColorScheme string

const (
	ColorZGradient                ColorScheme = "z_gradient"
	ColorPrintSequence            ColorScheme = "print_sequence"
	ColorPrintSequenceFluctuating ColorScheme = "print_sequence_fluctuating"
	ColorManual                   ColorScheme = "manual"
)

var (
	travelColor        = Color{0.75, 0.5, 0.5}
	defaultManualColor = Color{0, 0, 1}
)

// ParseColorScheme accepts scheme names with either underscores or hyphens.
func ParseColorScheme(s string) (ColorScheme, error) {
	switch c := ColorScheme(strings.ReplaceAll(s, "-", "_")); c {
	case ColorZGradient, ColorPrintSequence, ColorPrintSequenceFluctuating, ColorManual:
		return c, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownColorScheme, s)
}

type colorInput struct {
	extruding bool
	z         float64
	manual    *Color
	bounds    BoundingBox
	now       int
	total     int
}

// sampleColor computes the color of a plot sample. Components are rounded
// to 3 decimal places.
func sampleColor(scheme ColorScheme, in colorInput) (Color, error) {
	var c Color
	switch {
	case !in.extruding:
		c = travelColor
	case scheme == ColorManual:
		c = defaultManualColor
		if in.manual != nil {
			c = *in.manual
		}
	case scheme == ColorZGradient:
		span := math.Max(in.bounds.RangeZ, 1e-8)
		frac := (in.z - round3(in.bounds.MinZ)) / span
		c = Color{0, math.Max(0, math.Min(1, frac)), 1}
	case scheme == ColorPrintSequence:
		p := float64(in.now) / float64(in.total)
		c = Color{0.8 * math.Max(1-2*p, 0), math.Max(2*p-1, 0), 1}
	case scheme == ColorPrintSequenceFluctuating:
		fluc := float64(in.total) / 5
		phase := (math.Mod(float64(in.now), fluc) + 0.00001) / fluc
		c = Color{0.25 + 0.25*math.Sin(2*math.Pi*phase), 0.5 - 0.5*math.Cos(2*math.Pi*phase), 1}
	default:
		return Color{}, fmt.Errorf("%w: %s", ErrUnknownColorScheme, scheme)
	}
	for i := range c {
		c[i] = round3(c[i])
	}
	return c, nil
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
