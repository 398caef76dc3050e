package fullcontrol

import "errors"

var (
	ErrUnknownStep        = errors.New("unhandled step")
	ErrUnknownColorScheme = errors.New("unrecognised color type")
	ErrManualColorMissing = errors.New("manual color type requires a color on the first point")
	ErrUnknownPrinter     = errors.New("unrecognised printer")
)
