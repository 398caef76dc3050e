package fullcontrol

import (
	"log/slog"
	"strings"
)

const (
	PrimerNone             = "no_primer"
	PrimerTravel           = "travel"
	PrimerX                = "x"
	PrimerY                = "y"
	PrimerFrontLinesThenX  = "front_lines_then_x"
	PrimerFrontLinesThenY  = "front_lines_then_y"
	PrimerFrontLinesThenXY = "front_lines_then_xy"
)

var primerAliases = map[string]string{
	"none":     PrimerNone,
	"x_then_y": PrimerX,
	"y_then_x": PrimerY,
}

// NormalisePrimer maps hyphenated and descriptive primer names onto the
// canonical ones. The second result is false for unknown names.
func NormalisePrimer(name string) (string, bool) {
	n := strings.ReplaceAll(strings.ToLower(name), "-", "_")
	if a, ok := primerAliases[n]; ok {
		n = a
	}
	switch n {
	case PrimerNone, PrimerTravel, PrimerX, PrimerY, PrimerFrontLinesThenX, PrimerFrontLinesThenY, PrimerFrontLinesThenXY:
		return n, true
	}
	return "", false
}

// Primer returns the steps that take the nozzle from the end of the start
// procedure to target, leaving the extruder on and the nozzle at target.
// target must be fully defined.
func Primer(name string, target Point, log *slog.Logger) []Step {
	n, ok := NormalisePrimer(name)
	if !ok {
		orDiscard(log).Warn("unrecognised primer, no primer will be used", "primer", name)
		return nil
	}

	end := Point{X: Float(*target.X), Y: Float(*target.Y), Z: Float(*target.Z)}

	switch n {
	case PrimerTravel:
		return []Step{
			Extruder{On: Bool(false)},
			end,
			Extruder{On: Bool(true)},
		}
	case PrimerX, PrimerY:
		steps := primerStart(end)
		steps = append(steps, approach(n == PrimerX, *end.X, *end.Y)...)
		return append(steps, primerEnd())
	case PrimerFrontLinesThenX, PrimerFrontLinesThenY, PrimerFrontLinesThenXY:
		steps := primerStart(end)
		steps = append(steps,
			Point{X: Float(110)},
			Point{Y: Float(14)},
			Point{X: Float(10)},
			Point{Y: Float(16)},
		)
		switch n {
		case PrimerFrontLinesThenX:
			steps = append(steps, approach(false, *end.X, *end.Y)...)
		case PrimerFrontLinesThenY:
			steps = append(steps, approach(true, *end.X, *end.Y)...)
		default:
			steps = append(steps, XY(*end.X, *end.Y))
		}
		return append(steps, primerEnd())
	}
	return nil
}

func primerStart(end Point) []Step {
	return []Step{
		ManualGcode{Text: ";-----\n; START OF PRIMER PROCEDURE\n;-----"},
		Extruder{On: Bool(false)},
		XYZ(10, 12, *end.Z),
		Extruder{On: Bool(true)},
	}
}

func primerEnd() Step {
	return ManualGcode{Text: ";-----\n; END OF PRIMER PROCEDURE\n;-----\n"}
}

// approach moves along one axis then the other. xFirst ends with a move
// along Y.
func approach(xFirst bool, x, y float64) []Step {
	if xFirst {
		return []Step{Point{X: Float(x)}, Point{Y: Float(y)}}
	}
	return []Step{Point{Y: Float(y)}, Point{X: Float(x)}}
}
