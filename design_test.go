package fullcontrol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDesignRoundTrip(t *testing.T) {
	red := Color{1, 0, 0}
	steps := []Step{
		Point{X: Float(0), Y: Float(0), Z: Float(0.2), Color: &red},
		ExtrusionGeometry{AreaModel: Stadium, Width: Float(0.5), Height: Float(0.2)},
		Extruder{On: Bool(false), RelativeGcode: Bool(false), TravelFormat: TravelNone},
		Printer{PrintSpeed: Float(1200), NewCommand: map[string]string{"pause": "M0"}},
		Group{Steps: []Step{
			XY(10, 0),
			Group{Steps: []Step{Retraction{Length: Float(1)}, Unretraction{}}},
		}},
		StationaryExtrusion{Volume: 5, Speed: 100},
		ManualGcode{Text: "G4 P100"},
		GcodeComment{Text: "done"},
		PrinterCommand{ID: "home"},
		Fan{SpeedPercent: 40},
		Hotend{Temp: 200, Wait: true, Tool: Int(0)},
		Buildplate{Temp: 60},
		PlotAnnotation{Point: &Point{X: Float(1)}, Label: "note"},
	}

	buf, err := MarshalDesign(steps)
	require.NoError(t, err)
	assert.Contains(t, string(buf), `"type": "StationaryExtrusion"`)

	back, err := UnmarshalDesign(buf)
	require.NoError(t, err)
	assert.Equal(t, steps, back)
}

func TestUnmarshalDesign(t *testing.T) {
	steps, err := UnmarshalDesign([]byte(`[
		{"type": "Point", "data": {"x": 1, "y": 2, "z": 3}},
		{"type": "Extruder", "data": {"on": false}},
		{"type": "Group"},
		{"type": "Retraction"}
	]`))
	require.NoError(t, err)
	assert.Equal(t, []Step{XYZ(1, 2, 3), Extruder{On: Bool(false)}, Group{}, Retraction{}}, steps)

	_, err = UnmarshalDesign([]byte(`[{"type": "Teleport", "data": {}}]`))
	assert.ErrorIs(t, err, ErrUnknownStep)

	_, err = UnmarshalDesign([]byte(`[{"type": "Point", "data": {"x": "one"}}]`))
	assert.Error(t, err)

	_, err = UnmarshalDesign([]byte(`{"type": "Point"}`))
	assert.Error(t, err)

	_, err = MarshalDesign([]Step{bogusStep{}})
	assert.ErrorIs(t, err, ErrUnknownStep)
}
