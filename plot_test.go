package fullcontrol

import (
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	blue = Color{0, 0, 1}
	grey = travelColor
)

func plot(t *testing.T, scheme ColorScheme, steps ...Step) *PlotData {
	t.Helper()
	data, err := PlotSteps(steps, DefaultSettings(), scheme)
	require.NoError(t, err)
	return data
}

func path(extruding bool, c Color, positions ...Position) Path {
	p := Path{Extruding: extruding}
	for _, pos := range positions {
		p.Append(pos, c, 0.4, 0.2)
	}
	return p
}

func checkPaths(t *testing.T, want, got []Path) {
	t.Helper()
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("paths differ (-want +got):\n%s", diff)
	}
}

func TestPlotSplitsOnExtruderToggle(t *testing.T) {
	data := plot(t, ColorZGradient,
		XYZ(0, 0, 0),
		XYZ(1, 0, 0),
		Extruder{On: Bool(false)},
		XYZ(2, 0, 0),
		Extruder{On: Bool(true)},
		XYZ(3, 0, 0),
	)
	checkPaths(t, []Path{
		path(true, blue, Position{0, 0, 0}, Position{1, 0, 0}),
		path(false, grey, Position{1, 0, 0}, Position{2, 0, 0}),
		path(true, blue, Position{2, 0, 0}, Position{3, 0, 0}),
	}, data.Paths)
}

func TestPlotRelabelsShortPath(t *testing.T) {
	data := plot(t, ColorZGradient,
		Extruder{On: Bool(false)},
		XYZ(0, 0, 0),
		Extruder{On: Bool(true)},
		XYZ(1, 0, 0),
	)
	checkPaths(t, []Path{
		path(true, blue, Position{0, 0, 0}, Position{1, 0, 0}),
	}, data.Paths)
}

func TestPlotDropsSingleSamplePaths(t *testing.T) {
	data := plot(t, ColorZGradient,
		XYZ(0, 0, 0),
		XYZ(1, 0, 0),
		Extruder{On: Bool(false)},
	)
	require.Len(t, data.Paths, 1)
	assert.True(t, data.Paths[0].Extruding)
}

func TestPlotPointOverride(t *testing.T) {
	data := plot(t, ColorZGradient,
		XYZ(0, 0, 0),
		XYZ(1, 0, 0),
		Point{X: Float(2), Extrude: Bool(false)},
		XYZ(3, 0, 0),
	)
	checkPaths(t, []Path{
		path(true, blue, Position{0, 0, 0}, Position{1, 0, 0}),
		path(false, grey, Position{1, 0, 0}, Position{2, 0, 0}),
		path(true, blue, Position{2, 0, 0}, Position{3, 0, 0}),
	}, data.Paths)
}

func TestPlotRounding(t *testing.T) {
	data := plot(t, ColorZGradient,
		XYZ(0, 0, 0),
		XYZ(0.0001, 0, 0),
		XYZ(1.23456, 0, 0),
	)
	checkPaths(t, []Path{
		path(true, blue, Position{0, 0, 0}, Position{1.235, 0, 0}),
	}, data.Paths)
}

func TestPlotGeometry(t *testing.T) {
	data := plot(t, ColorZGradient,
		XYZ(0, 0, 0),
		ExtrusionGeometry{Width: Float(0.6), Height: Float(0.3)},
		XYZ(1, 0, 0),
		ExtrusionGeometry{Diameter: Float(0.5)},
		XYZ(2, 0, 0),
		ExtrusionGeometry{Area: Float(0.25)},
		XYZ(3, 0, 0),
	)
	require.Len(t, data.Paths, 1)
	assert.Equal(t, []float64{0.4, 0.6, 0.5, 0.5}, data.Paths[0].Widths)
	assert.Equal(t, []float64{0.2, 0.3, 0.5, 0.5}, data.Paths[0].Heights)
}

func TestPlotGeometryPrecedence(t *testing.T) {
	data := plot(t, ColorZGradient,
		XYZ(0, 0, 0),
		ExtrusionGeometry{Width: Float(0.5), Height: Float(0.3), Diameter: Float(1), Area: Float(4)},
		XYZ(1, 0, 0),
		ExtrusionGeometry{Diameter: Float(1), Area: Float(4)},
		XYZ(2, 0, 0),
	)
	require.Len(t, data.Paths, 1)
	assert.Equal(t, []float64{0.4, 0.5, 1}, data.Paths[0].Widths)
	assert.Equal(t, []float64{0.2, 0.3, 1}, data.Paths[0].Heights)
}

func TestPlotSkipsMalformedSteps(t *testing.T) {
	data := plot(t, ColorZGradient,
		XYZ(0, 0, 0),
		Extruder{Units: "inches", On: Bool(false)},
		ExtrusionGeometry{AreaModel: "hexagon", Width: Float(2)},
		XYZ(1, 0, 0),
	)
	checkPaths(t, []Path{
		path(true, blue, Position{0, 0, 0}, Position{1, 0, 0}),
	}, data.Paths)
}

func TestPlotPrintSequence(t *testing.T) {
	data := plot(t, ColorPrintSequence,
		XYZ(0, 0, 0),
		XYZ(1, 0, 0),
		XYZ(2, 0, 0),
		XYZ(3, 0, 0),
	)
	require.Len(t, data.Paths, 1)
	colors := data.Paths[0].Colors
	assert.Equal(t, []Color{{0.8, 0, 1}, {0.4, 0, 1}, {0, 0, 1}, {0, 0.5, 1}}, colors)
	for i := 1; i < len(colors); i++ {
		assert.GreaterOrEqual(t, colors[i][1], colors[i-1][1], "green at %d", i)
		assert.LessOrEqual(t, colors[i][0], colors[i-1][0], "red at %d", i)
		assert.Equal(t, 1.0, colors[i][2])
	}
}

func TestPlotAnnotations(t *testing.T) {
	data := plot(t, ColorZGradient,
		XYZ(1, 2, 3),
		PlotAnnotation{Label: "here"},
		PlotAnnotation{Point: &Point{X: Float(5), Y: Float(5)}, Label: "there"},
	)
	assert.Equal(t, []Annotation{
		{Label: "here", Position: Position{1, 2, 3}},
		{Label: "there", Position: Position{5, 5, 3}},
	}, data.Annotations)
}

func TestPlotZGradient(t *testing.T) {
	data := plot(t, ColorZGradient,
		XYZ(0, 0, 0),
		XYZ(0, 0, 1),
		XYZ(0, 0, 2),
	)
	require.Len(t, data.Paths, 1)
	assert.Equal(t, []Color{{0, 0, 1}, {0, 0.5, 1}, {0, 1, 1}}, data.Paths[0].Colors)
}

func TestPlotManualColor(t *testing.T) {
	red := Color{1, 0, 0}
	data := plot(t, ColorManual,
		Point{X: Float(0), Y: Float(0), Z: Float(0), Color: &red},
		XYZ(1, 0, 0),
	)
	require.Len(t, data.Paths, 1)
	assert.Equal(t, []Color{red, red}, data.Paths[0].Colors)

	_, err := PlotSteps(nil, DefaultSettings(), "rainbow")
	assert.ErrorIs(t, err, ErrUnknownColorScheme)
}

func TestBoundingBox(t *testing.T) {
	bb := NewBoundingBox([]Step{
		XYZ(0, 0, 0),
		Group{Steps: []Step{XYZ(10, 20, 5)}},
		Point{X: Float(-2)},
		Fan{SpeedPercent: 10},
	})
	assert.Equal(t, BoundingBox{
		MinX: -2, MidX: 4, MaxX: 10, RangeX: 12,
		MinY: 0, MidY: 10, MaxY: 20, RangeY: 20,
		MinZ: 0, MidZ: 2.5, MaxZ: 5, RangeZ: 5,
	}, bb)
}

func TestLengths(t *testing.T) {
	data := plot(t, ColorZGradient,
		XYZ(0, 0, 0),
		XYZ(3, 4, 0),
		Extruder{On: Bool(false)},
		XYZ(3, 4, 2),
	)
	extruding, travel := data.Lengths()
	assert.InDelta(t, 5, extruding, 1e-9)
	assert.InDelta(t, 2, travel, 1e-9)
}

type segment struct {
	end       Position
	extruding bool
}

func gcodeSegments(t *testing.T, lines []string) []segment {
	t.Helper()
	var pos Position
	var segs []segment
	for i, l := range lines {
		words := strings.Fields(l)
		if len(words) == 0 || (words[0] != "G0" && words[0] != "G1") {
			continue
		}
		for _, w := range words[1:] {
			axis := strings.IndexByte("XYZ", w[0])
			if axis < 0 {
				continue
			}
			v, err := strconv.ParseFloat(w[1:], 64)
			require.NoError(t, err, l)
			pos[axis] = v
		}
		// the first move positions the head and draws nothing
		if i > 0 {
			segs = append(segs, segment{pos, words[0] == "G1"})
		}
	}
	return segs
}

func plotSegments(data *PlotData) []segment {
	var segs []segment
	for _, p := range data.Paths {
		for i := 1; i < len(p.Positions); i++ {
			segs = append(segs, segment{p.Positions[i], p.Extruding})
		}
	}
	return segs
}

func TestTextAndPlotAgree(t *testing.T) {
	steps := []Step{
		XYZ(0, 0, 0),
		ExtrusionGeometry{Width: Float(0.5), Height: Float(0.3), Diameter: Float(1)},
		XYZ(1, 0, 0),
		Extruder{On: Bool(false)},
		XYZ(1, 1, 0),
		Extruder{On: Bool(true)},
		XYZ(2, 1, 0),
		Point{X: Float(3), Extrude: Bool(false)},
		XYZ(3, 2, 0.2),
		Extruder{Units: "inches", On: Bool(false)},
		XYZ(4, 2, 0.2),
	}
	s := DefaultSettings()
	s.TravelFormat = TravelNone
	lines, err := GcodeLines(steps, s, nil)
	require.NoError(t, err)
	data := plot(t, ColorZGradient, steps...)

	want := []segment{
		{Position{1, 0, 0}, true},
		{Position{1, 1, 0}, false},
		{Position{2, 1, 0}, true},
		{Position{3, 1, 0}, false},
		{Position{3, 2, 0.2}, true},
		{Position{4, 2, 0.2}, true},
	}
	assert.Equal(t, want, gcodeSegments(t, lines))
	assert.Equal(t, want, plotSegments(data))
	for _, p := range data.Paths {
		for i := 1; i < len(p.Widths); i++ {
			assert.Equal(t, 0.5, p.Widths[i])
			assert.Equal(t, 0.3, p.Heights[i])
		}
	}
}
