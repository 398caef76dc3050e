package fullcontrol

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
)

const (
	axisTolerance = 1e-10

	// DefaultRetractionSpeed is used when neither the retraction nor the
	// extruder gives a feed rate.
	DefaultRetractionSpeed = 1800.0
)

var axisNames = [3]string{"X", "Y", "Z"}

type gcodeState struct {
	pos      [3]*float64
	extruder *extruderState
	geometry *geometryState
	printer  *printerState

	lines []string

	moved         bool
	lastExtruding bool
	modeSet       bool
	pendingMode   []string

	log *slog.Logger
}

func newGcodeState(s Settings, log *slog.Logger) (*gcodeState, error) {
	ext, err := newExtruderState(s)
	if err != nil {
		return nil, err
	}
	geom, err := newGeometryState(s)
	if err != nil {
		return nil, err
	}
	return &gcodeState{
		extruder: ext,
		geometry: geom,
		printer:  newPrinterState(s),
		log:      orDiscard(log),
	}, nil
}

// GcodeLines translates steps into G-code lines, starting from the state
// described by s. Steps are not preprocessed: callers that want primers and
// start/end procedures use TransformGcode.
func GcodeLines(steps []Step, s Settings, log *slog.Logger) ([]string, error) {
	g, err := newGcodeState(s, log)
	if err != nil {
		return nil, err
	}
	for _, st := range steps {
		if err := g.step(st); err != nil {
			return nil, err
		}
	}
	return g.lines, nil
}

func (g *gcodeState) step(s Step) error {
	switch v := s.(type) {
	case Point:
		g.move(v)
	case ExtrusionGeometry:
		if err := g.geometry.update(v); err != nil {
			g.log.Warn("skipping extrusion geometry", "err", err)
		}
	case Extruder:
		g.setExtruder(v)
	case Printer:
		g.printer.update(v)
	case StationaryExtrusion:
		g.stationary(v)
	case Retraction:
		g.retract("retract", v.Length, v.Speed, -1)
	case Unretraction:
		g.retract("unretract", v.Length, v.Speed, 1)
	case ManualGcode:
		g.emit(splitLines(v.Text)...)
	case GcodeComment:
		g.comment(v)
	case PrinterCommand:
		cmd, ok := g.printer.command(v.ID)
		if !ok {
			g.log.Debug("printer command not in command list", "id", v.ID)
			return nil
		}
		g.emit(splitLines(cmd)...)
	case Fan:
		g.emit(fanLine(v))
	case Hotend:
		g.emit(hotendLine(v))
	case Buildplate:
		g.emit(buildplateLine(v))
	case PlotAnnotation:
	case Group:
		for _, st := range v.Steps {
			if err := g.step(st); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w: %T", ErrUnknownStep, s)
	}
	return nil
}

func (g *gcodeState) emit(lines ...string) {
	g.lines = append(g.lines, lines...)
}

func (g *gcodeState) move(p Point) {
	var changed [3]bool
	anyChanged := false
	for i, v := range p.axes() {
		if v == nil {
			continue
		}
		if g.pos[i] == nil || math.Abs(*v-*g.pos[i]) > axisTolerance {
			changed[i] = true
			anyChanged = true
		}
	}
	if !anyChanged {
		return
	}

	extruding := g.extruder.on
	if p.Extrude != nil {
		extruding = *p.Extrude
	}
	if !g.moved {
		extruding = false
	} else if extruding != g.lastExtruding {
		g.printer.speedChanged = true
	}
	if p.Speed != nil {
		g.printer.setSpeed(extruding, *p.Speed)
	}

	cmd := "G0"
	if extruding || g.extruder.travelFormat == TravelG1E0 {
		cmd = "G1"
	}
	words := []string{cmd}
	if f := g.printer.feedToken(extruding); f != "" {
		words = append(words, f)
	}

	dist := 0.0
	for i, v := range p.axes() {
		if v == nil {
			continue
		}
		if changed[i] {
			words = append(words, axisNames[i]+FormatCoordinate(*v))
		}
		if g.pos[i] != nil {
			d := *v - *g.pos[i]
			dist += d * d
		}
		g.pos[i] = Float(*v)
	}
	dist = math.Sqrt(dist)

	if extruding {
		words = append(words, "E"+FormatExtrusion(g.extruder.eValue(dist*g.geometry.area)))
	} else if g.extruder.travelFormat == TravelG1E0 {
		words = append(words, "E"+FormatExtrusion(g.extruder.eValue(0)))
	}

	g.emit(strings.Join(words, " "))
	g.lastExtruding = extruding

	if !g.moved {
		g.moved = true
		if g.pendingMode != nil {
			g.emit(g.pendingMode...)
			g.pendingMode = nil
		}
	}
}

// setExtruder applies e. An extruder step naming unknown units or an unknown
// travel format is skipped entirely.
func (g *gcodeState) setExtruder(e Extruder) {
	ext := g.extruder

	units, dia := ext.units, ext.diaFeed
	if e.Units != "" {
		units = e.Units
	}
	if e.DiaFeed != nil {
		dia = *e.DiaFeed
	}
	ratio, err := unitRatio(units, dia)
	if err != nil {
		g.log.Warn("skipping extruder", "err", err)
		return
	}
	tf := ext.travelFormat
	if e.TravelFormat != "" {
		if tf, err = normaliseTravelFormat(e.TravelFormat); err != nil {
			g.log.Warn("skipping extruder", "err", err)
			return
		}
	}
	ext.units, ext.diaFeed, ext.ratio = units, dia, ratio
	ext.travelFormat = tf

	if e.On != nil && *e.On != ext.on {
		ext.on = *e.On
		g.printer.speedChanged = true
	}
	if e.RetractionLength != nil {
		ext.retractionLength = Float(*e.RetractionLength)
	}
	if e.RetractionSpeed != nil {
		ext.retractionSpeed = Float(*e.RetractionSpeed)
	}

	if e.RelativeGcode != nil {
		ext.relative = *e.RelativeGcode
		ext.resetReference()
		lines := modeLines(ext.relative)
		switch {
		case g.moved:
			g.emit(lines...)
		case !g.modeSet:
			g.emit(lines...)
			g.modeSet = true
		default:
			// only the latest mode before the first move matters
			g.pendingMode = lines
		}
	}
}

func modeLines(relative bool) []string {
	if relative {
		return []string{"M83 ; relative extrusion"}
	}
	return []string{"M82 ; absolute extrusion", "G92 E0 ; reset extrusion position to zero"}
}

func (g *gcodeState) stationary(s StationaryExtrusion) {
	e := g.extruder.eValue(s.Volume)
	g.emit("G1 F" + FormatFeedrate(s.Speed) + " E" + FormatPrecision6(e))
	g.printer.speedChanged = true
	g.extruder.on = true
}

func (g *gcodeState) retract(id string, length, speed *float64, sign float64) {
	if _, ok := g.printer.command(id); ok {
		return
	}
	if length == nil {
		length = g.extruder.retractionLength
	}
	if length == nil {
		g.log.Debug("no retraction length set, skipping", "step", id)
		return
	}
	if speed == nil {
		speed = g.extruder.retractionSpeed
	}
	f := DefaultRetractionSpeed
	if speed != nil {
		f = *speed
	}

	vol := sign * *length * filamentArea(g.extruder.diaFeed)
	e := g.extruder.eValue(vol)
	g.emit("G1 E" + FormatExtrusion(e) + " F" + FormatFeedrate(f))
	g.printer.speedChanged = true
}

func (g *gcodeState) comment(c GcodeComment) {
	if c.EndOfPreviousLineText != "" && len(g.lines) > 0 {
		g.lines[len(g.lines)-1] += " ; " + c.EndOfPreviousLineText
	}
	if c.Text != "" {
		g.emit("; " + c.Text)
	}
}

func fanLine(f Fan) string {
	pct := math.Max(0, math.Min(100, f.SpeedPercent))
	if pct == 0 {
		return "M107"
	}
	return fmt.Sprintf("M106 S%d", int(math.Round(pct*255/100)))
}

func hotendLine(h Hotend) string {
	cmd := "M104"
	if h.Wait {
		cmd = "M109"
	}
	if h.Tool != nil {
		cmd += fmt.Sprintf(" T%d", *h.Tool)
	}
	return cmd + " S" + formatPlain(h.Temp)
}

func buildplateLine(b Buildplate) string {
	cmd := "M140"
	if b.Wait {
		cmd = "M190"
	}
	return cmd + " S" + formatPlain(b.Temp)
}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = strings.TrimSuffix(lines[i], "\r")
	}
	return lines
}
