package fullcontrol

import "strings"

var tips = []string{
	"tip: set PrinterName to a device profile to get proper start-up and ending G-code",
	"tip: InitializationData sets the starting speeds, temperatures and extrusion geometry",
	"tip: use PlotAnnotation steps and TransformPlot to check a design before printing",
}

// TransformGcode turns a design into G-code for the printer named in the
// controls: the profile's start-up steps, a primer run to the first point,
// the design itself, then the profile's ending steps.
func TransformGcode(steps []Step, c GcodeControls) (string, error) {
	log := newLogger(c.Silent, c.Logger)
	c.Initialize(log)

	setup, err := LoadProfile(c.PrinterName, c.InitializationData)
	if err != nil {
		return "", err
	}

	design, err := Fix(steps, GcodeResult, "", log)
	if err != nil {
		return "", err
	}

	all := make([]Step, 0, len(setup.Starting)+len(design)+len(setup.Ending)+16)
	all = append(all, setup.Starting...)
	if target, _, ok := FirstPoint(design, true); ok {
		all = append(all, Primer(setup.Settings.Primer, target, log)...)
	}
	all = append(all, design...)
	all = append(all, setup.Ending...)

	lines, err := GcodeLines(all, setup.Settings, log)
	if err != nil {
		return "", err
	}

	if c.ShowBanner {
		log.Info("G-code generated", "printer", c.PrinterName, "lines", len(lines))
	}
	if c.ShowTips {
		for _, tip := range tips {
			log.Info(tip)
		}
	}

	if len(lines) == 0 {
		return "", nil
	}
	return strings.Join(lines, "\n") + "\n", nil
}

// TransformPlot builds the plot buffer for a design. Only the design's own
// steps are plotted.
func TransformPlot(steps []Step, c PlotControls) (*PlotData, error) {
	log := newLogger(c.Silent, c.Logger)
	c.Initialize(log)

	scheme, err := ParseColorScheme(c.ColorType)
	if err != nil {
		return nil, err
	}

	setup, err := LoadProfile(c.PrinterName, c.InitializationData)
	if err != nil {
		return nil, err
	}

	design, err := Fix(steps, PlotResult, scheme, log)
	if err != nil {
		return nil, err
	}

	data, err := PlotSteps(design, setup.Settings, scheme)
	if err != nil {
		return nil, err
	}
	data.RenderExpected = !c.RawData
	return data, nil
}
