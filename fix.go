package fullcontrol

import (
	"fmt"
	"log/slog"
	"strings"
)

type ResultType int

const (
	GcodeResult ResultType = iota
	PlotResult
)

// Flatten expands groups recursively. The second result reports whether
// there were any.
func Flatten(steps []Step) ([]Step, bool) {
	out := make([]Step, 0, len(steps))
	nested := false
	for _, s := range steps {
		if g, ok := s.(Group); ok {
			inner, _ := Flatten(g.Steps)
			out = append(out, inner...)
			nested = true
			continue
		}
		out = append(out, s)
	}
	return out, nested
}

// FirstPoint returns the first point in steps and its index. With
// fullyDefined set, points missing an axis are skipped.
func FirstPoint(steps []Step, fullyDefined bool) (Point, int, bool) {
	for i, s := range steps {
		p, ok := s.(Point)
		if !ok {
			continue
		}
		if fullyDefined && !p.Defined() {
			continue
		}
		return p, i, true
	}
	return Point{}, -1, false
}

// Fix prepares a design for one of the engines. It returns a flat copy of
// steps in which the first point has every axis set. The caller's steps are
// not modified.
func Fix(steps []Step, rt ResultType, scheme ColorScheme, log *slog.Logger) ([]Step, error) {
	log = orDiscard(log)

	flat, nested := Flatten(steps)
	if nested {
		log.Warn("design includes nested groups, they have been flattened")
	}

	first, idx, ok := FirstPoint(flat, false)
	if ok && !first.Defined() {
		p := first.Copy()
		for _, axis := range []**float64{&p.X, &p.Y, &p.Z} {
			if *axis == nil {
				*axis = Float(0)
			}
		}
		flat[idx] = p
		first = p
		log.Warn("first point was not fully defined, missing axes set to 0",
			"x", *p.X, "y", *p.Y, "z", *p.Z)
	}

	if rt == PlotResult && scheme == ColorManual && (!ok || first.Color == nil) {
		return nil, ErrManualColorMissing
	}
	return flat, nil
}

// Check summarises the step types in a design, in order of first
// appearance.
func Check(steps []Step) string {
	flat, nested := Flatten(steps)

	counts := map[string]int{}
	var order []string
	for _, s := range flat {
		name := stepName(s)
		if counts[name] == 0 {
			order = append(order, name)
		}
		counts[name]++
	}

	sb := strings.Builder{}
	if nested {
		fmt.Fprintf(&sb, "warning: design includes nested groups, they will be flattened\n")
	}
	fmt.Fprintf(&sb, "%d steps\n", len(flat))
	for _, name := range order {
		fmt.Fprintf(&sb, "  %s: %d\n", name, counts[name])
	}
	return sb.String()
}
