package fullcontrol

import (
	"fmt"
	"math"
)

type Position [3]float64

// Path is a run of plot samples that are all extruding or all travel.
type Path struct {
	Extruding bool       `json:"extruding"`
	Positions []Position `json:"positions"`
	Colors    []Color    `json:"colors"`
	Widths    []float64  `json:"widths"`
	Heights   []float64  `json:"heights"`
}

type Annotation struct {
	Label    string   `json:"label"`
	Position Position `json:"position"`
}

type PlotData struct {
	Paths       []Path       `json:"paths"`
	BoundingBox BoundingBox  `json:"bounding_box"`
	Annotations []Annotation `json:"annotations"`

	// RenderExpected is set when the controls asked for a rendered plot
	// rather than raw data.
	RenderExpected bool `json:"-"`
}

func (p *Path) Append(pos Position, c Color, width, height float64) {
	p.Positions = append(p.Positions, pos)
	p.Colors = append(p.Colors, c)
	p.Widths = append(p.Widths, width)
	p.Heights = append(p.Heights, height)
}

// Length is the distance travelled along the path.
func (p *Path) Length() float64 {
	total := 0.0
	for i := 1; i < len(p.Positions); i++ {
		a, b := p.Positions[i-1], p.Positions[i]
		dx, dy, dz := b[0]-a[0], b[1]-a[1], b[2]-a[2]
		total += math.Sqrt(dx*dx + dy*dy + dz*dz)
	}
	return total
}

// Lengths returns the total extruding and travel distances.
func (d *PlotData) Lengths() (extruding, travel float64) {
	for i := range d.Paths {
		if d.Paths[i].Extruding {
			extruding += d.Paths[i].Length()
		} else {
			travel += d.Paths[i].Length()
		}
	}
	return extruding, travel
}

type plotState struct {
	pos    [3]*float64
	color  *Color
	on     bool
	width  float64
	height float64

	now    int
	total  int
	scheme ColorScheme

	data *PlotData
}

// PlotSteps builds the plot buffer for steps. Steps are not preprocessed:
// callers that want defaults applied use TransformPlot.
func PlotSteps(steps []Step, s Settings, scheme ColorScheme) (*PlotData, error) {
	scheme, err := ParseColorScheme(string(scheme))
	if err != nil {
		return nil, err
	}

	ps := &plotState{
		on:     true,
		width:  round3(s.ExtrusionWidth),
		height: round3(s.ExtrusionHeight),
		total:  countPoints(steps),
		scheme: scheme,
		data: &PlotData{
			Paths:       []Path{{Extruding: true}},
			BoundingBox: NewBoundingBox(steps),
			Annotations: []Annotation{},
		},
	}

	for _, st := range steps {
		if err := ps.step(st); err != nil {
			return nil, err
		}
	}

	ps.cleanup()
	return ps.data, nil
}

func countPoints(steps []Step) int {
	n := 0
	for _, s := range steps {
		switch v := s.(type) {
		case Point:
			n++
		case Group:
			n += countPoints(v.Steps)
		}
	}
	return n
}

func (ps *plotState) step(s Step) error {
	switch v := s.(type) {
	case Point:
		return ps.move(v)
	case Extruder:
		if checkExtruder(v) != nil {
			return nil
		}
		if v.On != nil && *v.On != ps.on {
			ps.on = *v.On
			if ps.lastPath().Extruding != ps.on {
				return ps.switchPath(ps.on)
			}
		}
	case ExtrusionGeometry:
		if checkGeometry(v) == nil {
			ps.setGeometry(v)
		}
	case PlotAnnotation:
		ps.annotate(v)
	case Group:
		for _, st := range v.Steps {
			if err := ps.step(st); err != nil {
				return err
			}
		}
	case Printer, StationaryExtrusion, Retraction, Unretraction, ManualGcode,
		GcodeComment, PrinterCommand, Fan, Hotend, Buildplate:
	default:
		return fmt.Errorf("%w: %T", ErrUnknownStep, s)
	}
	return nil
}

func (ps *plotState) lastPath() *Path {
	return &ps.data.Paths[len(ps.data.Paths)-1]
}

func (ps *plotState) position() Position {
	var pos Position
	for i, v := range ps.pos {
		if v != nil {
			pos[i] = *v
		}
	}
	return pos
}

func (ps *plotState) colorFor(extruding bool) (Color, error) {
	return sampleColor(ps.scheme, colorInput{
		extruding: extruding,
		z:         ps.position()[2],
		manual:    ps.color,
		bounds:    ps.data.BoundingBox,
		now:       ps.now,
		total:     ps.total,
	})
}

func (ps *plotState) move(p Point) error {
	next := ps.pos
	changed := false
	for i, v := range p.axes() {
		if v == nil {
			continue
		}
		r := round3(*v)
		if next[i] == nil || math.Abs(r-*next[i]) > axisTolerance {
			next[i] = Float(r)
			changed = true
		}
	}
	if p.Color != nil && (ps.color == nil || *ps.color != *p.Color) {
		c := *p.Color
		ps.color = &c
		changed = true
	}
	if !changed {
		return nil
	}

	extruding := ps.on
	if p.Extrude != nil {
		extruding = *p.Extrude
	}
	if extruding != ps.lastPath().Extruding {
		if err := ps.switchPath(extruding); err != nil {
			return err
		}
	}

	ps.pos = next
	c, err := ps.colorFor(extruding)
	if err != nil {
		return err
	}
	ps.lastPath().Append(ps.position(), c, ps.width, ps.height)
	ps.now++
	return nil
}

// switchPath starts a new path for the given extrusion state. A path with
// at most one sample is relabelled instead.
func (ps *plotState) switchPath(extruding bool) error {
	c, err := ps.colorFor(extruding)
	if err != nil {
		return err
	}
	last := ps.lastPath()
	if len(last.Positions) > 1 {
		ps.data.Paths = append(ps.data.Paths, Path{Extruding: extruding})
		ps.lastPath().Append(ps.position(), c, ps.width, ps.height)
		return nil
	}
	last.Extruding = extruding
	if n := len(last.Colors); n > 0 {
		last.Colors[n-1] = c
	}
	return nil
}

// setGeometry applies the bead dimensions with the same precedence as the
// text engine: width and height, then diameter, then area.
func (ps *plotState) setGeometry(g ExtrusionGeometry) {
	switch {
	case g.Width != nil || g.Height != nil:
		if g.Width != nil {
			ps.width = round3(*g.Width)
		}
		if g.Height != nil {
			ps.height = round3(*g.Height)
		}
	case g.Diameter != nil:
		ps.width = round3(*g.Diameter)
		ps.height = ps.width
	case g.Area != nil:
		ps.width = round3(math.Sqrt(*g.Area))
		ps.height = ps.width
	}
}

func (ps *plotState) annotate(a PlotAnnotation) {
	pos := ps.position()
	if a.Point != nil {
		for i, v := range a.Point.axes() {
			if v != nil {
				pos[i] = *v
			}
		}
	}
	ps.data.Annotations = append(ps.data.Annotations, Annotation{Label: a.Label, Position: pos})
}

// cleanup drops paths that are too short to draw.
func (ps *plotState) cleanup() {
	kept := ps.data.Paths[:0]
	for _, p := range ps.data.Paths {
		if len(p.Positions) > 1 {
			kept = append(kept, p)
		}
	}
	ps.data.Paths = kept
}

type BoundingBox struct {
	MinX   float64 `json:"minx"`
	MidX   float64 `json:"midx"`
	MaxX   float64 `json:"maxx"`
	RangeX float64 `json:"rangex"`
	MinY   float64 `json:"miny"`
	MidY   float64 `json:"midy"`
	MaxY   float64 `json:"maxy"`
	RangeY float64 `json:"rangey"`
	MinZ   float64 `json:"minz"`
	MidZ   float64 `json:"midz"`
	MaxZ   float64 `json:"maxz"`
	RangeZ float64 `json:"rangez"`
}

// NewBoundingBox spans every set axis of every point in steps.
func NewBoundingBox(steps []Step) BoundingBox {
	min := [3]float64{1e10, 1e10, 1e10}
	max := [3]float64{-1e10, -1e10, -1e10}

	var visit func([]Step)
	visit = func(steps []Step) {
		for _, s := range steps {
			switch v := s.(type) {
			case Point:
				for i, a := range v.axes() {
					if a == nil {
						continue
					}
					min[i] = math.Min(min[i], *a)
					max[i] = math.Max(max[i], *a)
				}
			case Group:
				visit(v.Steps)
			}
		}
	}
	visit(steps)

	return BoundingBox{
		MinX: min[0], MidX: (min[0] + max[0]) / 2, MaxX: max[0], RangeX: max[0] - min[0],
		MinY: min[1], MidY: (min[1] + max[1]) / 2, MaxY: max[1], RangeY: max[1] - min[1],
		MinZ: min[2], MidZ: (min[2] + max[2]) / 2, MaxZ: max[2], RangeZ: max[2] - min[2],
	}
}
