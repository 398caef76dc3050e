package fullcontrol

// Step is one instruction of a design. The set of step types is closed: the
// engines reject anything not declared in this file.
type Step interface {
	step()
}

// Point moves to a new position. Unset axes keep their previous value.
// Extrude, when set, overrides the extruder state for this move only.
type Point struct {
	X       *float64 `json:"x,omitempty"`
	Y       *float64 `json:"y,omitempty"`
	Z       *float64 `json:"z,omitempty"`
	Color   *Color   `json:"color,omitempty"`
	Extrude *bool    `json:"extrude,omitempty"`
	Speed   *float64 `json:"speed,omitempty"`
}

type AreaModel string

const (
	Rectangle AreaModel = "rectangle"
	Stadium   AreaModel = "stadium"
	Circle    AreaModel = "circle"
	Manual    AreaModel = "manual"
)

// ExtrusionGeometry changes the cross-section of subsequent extrusions.
type ExtrusionGeometry struct {
	AreaModel AreaModel `json:"area_model,omitempty"`
	Width     *float64  `json:"width,omitempty"`
	Height    *float64  `json:"height,omitempty"`
	Diameter  *float64  `json:"diameter,omitempty"`
	Area      *float64  `json:"area,omitempty"`
}

const (
	UnitsLinear     = "mm"
	UnitsVolumetric = "mm3"

	TravelG1E0 = "G1_E0"
	TravelNone = "none"
)

type Extruder struct {
	On               *bool    `json:"on,omitempty"`
	Units            string   `json:"units,omitempty"`
	DiaFeed          *float64 `json:"dia_feed,omitempty"`
	RelativeGcode    *bool    `json:"relative_gcode,omitempty"`
	TravelFormat     string   `json:"travel_format,omitempty"`
	RetractionLength *float64 `json:"retraction_length,omitempty"`
	RetractionSpeed  *float64 `json:"retraction_speed,omitempty"`
}

type Printer struct {
	PrintSpeed  *float64          `json:"print_speed,omitempty"`
	TravelSpeed *float64          `json:"travel_speed,omitempty"`
	NewCommand  map[string]string `json:"new_command,omitempty"`
}

// StationaryExtrusion deposits a volume of material without moving.
type StationaryExtrusion struct {
	Volume float64 `json:"volume"`
	Speed  float64 `json:"speed"`
}

type Retraction struct {
	Length *float64 `json:"length,omitempty"`
	Speed  *float64 `json:"speed,omitempty"`
}

type Unretraction struct {
	Length *float64 `json:"length,omitempty"`
	Speed  *float64 `json:"speed,omitempty"`
}

// ManualGcode is copied into the output verbatim, one line per newline.
type ManualGcode struct {
	Text string `json:"text"`
}

// GcodeComment writes Text as a comment line and/or appends
// EndOfPreviousLineText to the previous line.
type GcodeComment struct {
	Text                  string `json:"text,omitempty"`
	EndOfPreviousLineText string `json:"end_of_previous_line_text,omitempty"`
}

// PrinterCommand looks up ID in the printer's command table.
type PrinterCommand struct {
	ID string `json:"id"`
}

type Fan struct {
	SpeedPercent float64 `json:"speed_percent"`
	PartFanIndex int     `json:"part_fan_index,omitempty"`
}

type Hotend struct {
	Temp float64 `json:"temp"`
	Wait bool    `json:"wait,omitempty"`
	Tool *int    `json:"tool,omitempty"`
}

type Buildplate struct {
	Temp float64 `json:"temp"`
	Wait bool    `json:"wait,omitempty"`
}

// PlotAnnotation labels a position in the plot. Without a Point it labels
// the current position.
type PlotAnnotation struct {
	Point *Point `json:"point,omitempty"`
	Label string `json:"label"`
}

// Group nests steps. It is flattened before either engine runs.
type Group struct {
	Steps []Step `json:"steps"`
}

func (Point) step()               {}
func (ExtrusionGeometry) step()   {}
func (Extruder) step()            {}
func (Printer) step()             {}
func (StationaryExtrusion) step() {}
func (Retraction) step()          {}
func (Unretraction) step()        {}
func (ManualGcode) step()         {}
func (GcodeComment) step()        {}
func (PrinterCommand) step()      {}
func (Fan) step()                 {}
func (Hotend) step()              {}
func (Buildplate) step()          {}
func (PlotAnnotation) step()      {}
func (Group) step()               {}

func Float(v float64) *float64 { return &v }
func Bool(v bool) *bool          { return &v }
func Int(v int) *int             { return &v }

func XYZ(x, y, z float64) Point {
	return Point{X: Float(x), Y: Float(y), Z: Float(z)}
}

func XY(x, y float64) Point {
	return Point{X: Float(x), Y: Float(y)}
}

// Defined reports whether all three axes are set.
func (p Point) Defined() bool {
	return p.X != nil && p.Y != nil && p.Z != nil
}

// Copy returns a point that shares no pointers with p.
func (p Point) Copy() Point {
	c := Point{}
	if p.X != nil {
		c.X = Float(*p.X)
	}
	if p.Y != nil {
		c.Y = Float(*p.Y)
	}
	if p.Z != nil {
		c.Z = Float(*p.Z)
	}
	if p.Color != nil {
		col := *p.Color
		c.Color = &col
	}
	if p.Extrude != nil {
		c.Extrude = Bool(*p.Extrude)
	}
	if p.Speed != nil {
		c.Speed = Float(*p.Speed)
	}
	return c
}

func (p Point) axes() [3]*float64 {
	return [3]*float64{p.X, p.Y, p.Z}
}
