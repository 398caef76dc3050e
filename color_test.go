package fullcontrol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkColor(t *testing.T, scheme ColorScheme, in colorInput, want Color) {
	t.Helper()
	got, err := sampleColor(scheme, in)
	require.NoError(t, err)
	assert.Equal(t, want, got, "%s at %d/%d", scheme, in.now, in.total)
}

func TestSampleColor(t *testing.T) {
	bb := BoundingBox{MinZ: 0, MaxZ: 4, RangeZ: 4}

	checkColor(t, ColorZGradient, colorInput{extruding: false, z: 2, bounds: bb}, Color{0.75, 0.5, 0.5})
	checkColor(t, ColorZGradient, colorInput{extruding: true, z: 1, bounds: bb}, Color{0, 0.25, 1})
	checkColor(t, ColorZGradient, colorInput{extruding: true, z: 9, bounds: bb}, Color{0, 1, 1})

	checkColor(t, ColorPrintSequence, colorInput{extruding: true, now: 0, total: 3}, Color{0.8, 0, 1})
	checkColor(t, ColorPrintSequence, colorInput{extruding: true, now: 1, total: 3}, Color{0.267, 0, 1})
	checkColor(t, ColorPrintSequence, colorInput{extruding: true, now: 2, total: 3}, Color{0, 0.333, 1})

	checkColor(t, ColorPrintSequenceFluctuating, colorInput{extruding: true, now: 0, total: 10}, Color{0.25, 0, 1})
	checkColor(t, ColorPrintSequenceFluctuating, colorInput{extruding: true, now: 1, total: 10}, Color{0.25, 1, 1})

	checkColor(t, ColorManual, colorInput{extruding: true}, Color{0, 0, 1})
	checkColor(t, ColorManual, colorInput{extruding: true, manual: &Color{0.1234, 0.5, 0}}, Color{0.123, 0.5, 0})
	checkColor(t, ColorManual, colorInput{extruding: false, manual: &Color{1, 1, 1}}, Color{0.75, 0.5, 0.5})

	_, err := sampleColor("random", colorInput{extruding: true})
	assert.ErrorIs(t, err, ErrUnknownColorScheme)
}

func TestParseColorScheme(t *testing.T) {
	c, err := ParseColorScheme("print_sequence")
	require.NoError(t, err)
	assert.Equal(t, ColorPrintSequence, c)

	for name, want := range map[string]ColorScheme{
		"z-gradient":                 ColorZGradient,
		"print-sequence":             ColorPrintSequence,
		"print-sequence-fluctuating": ColorPrintSequenceFluctuating,
	} {
		c, err := ParseColorScheme(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, c)
	}

	_, err = ParseColorScheme("random_blue")
	assert.ErrorIs(t, err, ErrUnknownColorScheme)
}
