package fullcontrol

import (
	"strconv"
	"strings"
)

func stripZeroes(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		s = "0"
	}
	return s
}

// FormatCoordinate renders an X/Y/Z value with 6 decimal places and no
// trailing zeroes.
func FormatCoordinate(v float64) string {
	return stripZeroes(strconv.FormatFloat(v, 'f', 6, 64))
}

// FormatExtrusion renders an E value the same way as a coordinate.
func FormatExtrusion(v float64) string {
	return FormatCoordinate(v)
}

// FormatFeedrate renders an F value with 1 decimal place and no trailing
// zeroes.
func FormatFeedrate(v float64) string {
	return stripZeroes(strconv.FormatFloat(v, 'f', 1, 64))
}

// FormatPrecision6 renders v with 6 significant figures, switching to
// exponent form for very large or small magnitudes.
func FormatPrecision6(v float64) string {
	s := strconv.FormatFloat(v, 'g', 6, 64)
	if s == "-0" {
		s = "0"
	}
	return s
}

func formatPlain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
