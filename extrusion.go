package fullcontrol

import (
	"fmt"
	"math"
)

// geometryState holds the current extrusion cross-section. The area is
// recomputed from the parameters whenever they change.
type geometryState struct {
	model    AreaModel
	width    *float64
	height   *float64
	diameter *float64
	manual   *float64
	area     float64
}

func newGeometryState(s Settings) (*geometryState, error) {
	g := &geometryState{
		model:  s.AreaModel,
		width:  Float(s.ExtrusionWidth),
		height: Float(s.ExtrusionHeight),
	}
	if g.model == "" {
		g.model = Rectangle
	}
	if err := g.recompute(); err != nil {
		return nil, err
	}
	return g, nil
}

// update applies eg. If the resulting model is not recognised the state is
// left as it was.
func (g *geometryState) update(eg ExtrusionGeometry) error {
	next := *g
	if eg.Width != nil {
		next.width = Float(*eg.Width)
	}
	if eg.Height != nil {
		next.height = Float(*eg.Height)
	}
	if eg.Diameter != nil {
		next.diameter = Float(*eg.Diameter)
	}
	if eg.Area != nil {
		next.manual = Float(*eg.Area)
	}

	switch {
	case eg.AreaModel != "":
		next.model = eg.AreaModel
	case eg.Width != nil || eg.Height != nil:
		if next.model != Rectangle && next.model != Stadium {
			next.model = Rectangle
		}
	case eg.Diameter != nil:
		next.model = Circle
	case eg.Area != nil:
		next.model = Manual
	}

	if err := next.recompute(); err != nil {
		return err
	}
	*g = next
	return nil
}

func (g *geometryState) recompute() error {
	area, err := crossSection(g.model, g.width, g.height, g.diameter, g.manual)
	if err != nil {
		return err
	}
	g.area = area
	return nil
}

// crossSection returns the bead area for the given model. Missing parameters
// give an area of zero.
func crossSection(model AreaModel, width, height, diameter, manual *float64) (float64, error) {
	switch model {
	case Rectangle:
		if width == nil || height == nil {
			return 0, nil
		}
		return *width * *height, nil
	case Stadium:
		if width == nil || height == nil {
			return 0, nil
		}
		w, h := *width, *height
		return (w-h)*h + math.Pi*(h/2)*(h/2), nil
	case Circle:
		if diameter == nil {
			return 0, nil
		}
		return math.Pi * (*diameter / 2) * (*diameter / 2), nil
	case Manual:
		if manual == nil {
			return 0, nil
		}
		return *manual, nil
	default:
		return 0, fmt.Errorf("unrecognised area model: %s", model)
	}
}

// extruderState tracks the cumulative deposited volume and converts volumes
// into E values.
type extruderState struct {
	on           bool
	units        string
	diaFeed      float64
	relative     bool
	travelFormat string

	retractionLength *float64
	retractionSpeed  *float64

	ratio     float64
	total     float64
	reference float64
}

func newExtruderState(s Settings) (*extruderState, error) {
	e := &extruderState{
		on:               true,
		units:            s.EUnits,
		diaFeed:          s.DiaFeed,
		relative:         s.RelativeE,
		travelFormat:     s.TravelFormat,
		retractionLength: s.RetractionLength,
		retractionSpeed:  s.RetractionSpeed,
	}
	if e.units == "" {
		e.units = UnitsLinear
	}
	tf, err := normaliseTravelFormat(e.travelFormat)
	if err != nil {
		return nil, err
	}
	e.travelFormat = tf
	if err := e.updateRatio(); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *extruderState) updateRatio() error {
	r, err := unitRatio(e.units, e.diaFeed)
	if err != nil {
		return err
	}
	e.ratio = r
	return nil
}

// unitRatio converts a deposited volume into E units.
func unitRatio(units string, diaFeed float64) (float64, error) {
	switch units {
	case UnitsVolumetric:
		return 1, nil
	case UnitsLinear:
		return 1 / filamentArea(diaFeed), nil
	default:
		return 0, fmt.Errorf("unrecognised extrusion units: %s", units)
	}
}

func filamentArea(dia float64) float64 {
	return math.Pi * (dia / 2) * (dia / 2)
}

// accumulate adds vol to the running total and returns the volume the next
// E value must carry: the delta since the last call in relative mode, or the
// total since the last reset in absolute mode.
func (e *extruderState) accumulate(vol float64) float64 {
	e.total += vol
	ret := e.total - e.reference
	if e.relative {
		e.reference = e.total
	}
	return ret
}

func (e *extruderState) resetReference() {
	e.reference = e.total
}

func (e *extruderState) eValue(vol float64) float64 {
	return e.accumulate(vol) * e.ratio
}

func normaliseTravelFormat(f string) (string, error) {
	switch f {
	case "", TravelG1E0:
		return TravelG1E0, nil
	case TravelNone, "G0":
		return TravelNone, nil
	default:
		return "", fmt.Errorf("unrecognised travel format: %s", f)
	}
}

// checkGeometry reports whether eg names an area model the engines know.
func checkGeometry(eg ExtrusionGeometry) error {
	if eg.AreaModel == "" {
		return nil
	}
	_, err := crossSection(eg.AreaModel, nil, nil, nil, nil)
	return err
}

// checkExtruder reports whether e names units and a travel format the
// engines know.
func checkExtruder(e Extruder) error {
	if e.Units != "" {
		if _, err := unitRatio(e.Units, 1); err != nil {
			return err
		}
	}
	if e.TravelFormat != "" {
		if _, err := normaliseTravelFormat(e.TravelFormat); err != nil {
			return err
		}
	}
	return nil
}
