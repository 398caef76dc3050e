package fullcontrol

import "log/slog"

// GcodeControls configure TransformGcode.
type GcodeControls struct {
	PrinterName        string
	InitializationData map[string]any

	// ShowBanner and ShowTips write informational messages to the logger.
	// They never change the G-code.
	ShowBanner bool
	ShowTips   bool

	Silent bool
	Logger *slog.Logger
}

func (c *GcodeControls) Initialize(log *slog.Logger) {
	if c.PrinterName == "" {
		c.PrinterName = "generic"
		log.Warn("printer not set, defaulting to generic, which does not initialize the printer with proper start-up G-code")
	}
	if c.InitializationData == nil {
		c.InitializationData = map[string]any{}
	}
}

const (
	StyleTube = "tube"
	StyleLine = "line"
)

// PlotControls configure TransformPlot and the renderers that consume its
// output.
type PlotControls struct {
	ColorType         string
	Style             string
	TubeType          string
	TubeSides         int
	LineWidth         float64
	Zoom              float64
	HideTravel        bool
	HideAnnotations   bool
	HideAxes          bool
	NeatForPublishing bool

	// RawData asks for the plot buffer only. Without it the buffer is still
	// returned but flagged for rendering.
	RawData bool

	PrinterName        string
	InitializationData map[string]any

	Silent bool
	Logger *slog.Logger
}

func (c *PlotControls) Initialize(log *slog.Logger) {
	if c.ColorType == "" {
		c.ColorType = string(ColorZGradient)
	}
	if c.PrinterName == "" {
		c.PrinterName = "generic"
	}
	if c.InitializationData == nil {
		c.InitializationData = map[string]any{}
	}
	if !c.RawData && c.Style == "" {
		c.Style = StyleTube
		log.Warn("plot style not set, defaulting to tube, which shows extrusion width and height")
	}
	if c.Style == StyleLine && c.LineWidth == 0 {
		c.LineWidth = 2
	}
	if c.TubeType == "" {
		c.TubeType = "flow"
	}
	if c.TubeSides == 0 {
		c.TubeSides = 4
	}
	if c.Zoom == 0 {
		c.Zoom = 1
	}
	if c.NeatForPublishing {
		c.HideAxes = true
		c.HideTravel = true
	}
}
