package fullcontrol

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return slog.New(slog.NewTextHandler(buf, nil)), buf
}

func TestFlatten(t *testing.T) {
	steps := []Step{
		XYZ(0, 0, 0),
		Group{Steps: []Step{
			XYZ(1, 0, 0),
			Group{Steps: []Step{XYZ(2, 0, 0), Fan{SpeedPercent: 10}}},
		}},
		XYZ(3, 0, 0),
	}
	flat, nested := Flatten(steps)
	assert.True(t, nested)
	require.Len(t, flat, 5)
	assert.Equal(t, Fan{SpeedPercent: 10}, flat[3])

	_, nested = Flatten(flat)
	assert.False(t, nested)
}

func TestFixDefaultsFirstPoint(t *testing.T) {
	log, buf := bufferLogger()
	original := Point{X: Float(5)}
	steps := []Step{Fan{SpeedPercent: 50}, original, XY(1, 1)}

	fixed, err := Fix(steps, GcodeResult, "", log)
	require.NoError(t, err)

	first, idx, ok := FirstPoint(fixed, false)
	require.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.True(t, first.Defined())
	assert.Equal(t, 5.0, *first.X)
	assert.Equal(t, 0.0, *first.Y)
	assert.Equal(t, 0.0, *first.Z)
	assert.Contains(t, buf.String(), "first point was not fully defined")

	// the caller's design is untouched
	assert.Nil(t, steps[1].(Point).Y)
	assert.Nil(t, original.Z)
}

func TestFixWarnsOnGroups(t *testing.T) {
	log, buf := bufferLogger()
	_, err := Fix([]Step{Group{Steps: []Step{XYZ(0, 0, 0)}}}, GcodeResult, "", log)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "flattened")
	assert.NotContains(t, buf.String(), "not fully defined")
}

func TestFixManualColor(t *testing.T) {
	_, err := Fix([]Step{XYZ(0, 0, 0)}, PlotResult, ColorManual, nil)
	assert.ErrorIs(t, err, ErrManualColorMissing)

	_, err = Fix([]Step{Fan{}}, PlotResult, ColorManual, nil)
	assert.ErrorIs(t, err, ErrManualColorMissing)

	// only plots need colors
	_, err = Fix([]Step{XYZ(0, 0, 0)}, GcodeResult, ColorManual, nil)
	assert.NoError(t, err)

	_, err = Fix([]Step{Point{X: Float(0), Y: Float(0), Z: Float(0), Color: &Color{1, 0, 0}}}, PlotResult, ColorManual, nil)
	assert.NoError(t, err)
}

func TestFirstPointFullyDefined(t *testing.T) {
	steps := []Step{XY(1, 1), XYZ(2, 2, 2)}
	p, idx, ok := FirstPoint(steps, true)
	require.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.Equal(t, 2.0, *p.Z)

	_, _, ok = FirstPoint([]Step{Fan{}}, false)
	assert.False(t, ok)
}

func TestCheck(t *testing.T) {
	out := Check([]Step{
		XYZ(0, 0, 0),
		Group{Steps: []Step{XYZ(1, 0, 0), Fan{}}},
		XYZ(2, 0, 0),
	})
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, []string{
		"warning: design includes nested groups, they will be flattened",
		"4 steps",
		"  Point: 3",
		"  Fan: 1",
	}, lines)
}
