package fullcontrol

import (
	"fmt"
	"sort"
	"sync"
)

// Setup is what a printer profile contributes to a design: resolved
// settings plus the steps run before and after it.
type Setup struct {
	Settings Settings
	Starting []Step
	Ending   []Step
}

// Profile builds a Setup from user overrides (initialization data).
type Profile func(overrides map[string]any) (*Setup, error)

var (
	profilesMu sync.RWMutex
	profiles   = map[string]Profile{
		"generic":     genericProfile,
		"custom":      customProfile,
		"voron_zero":  voronZeroProfile,
		"bambulab_x1": bambulabX1Profile,
	}
)

// RegisterProfile makes a profile available to LoadProfile. It replaces any
// profile of the same name.
func RegisterProfile(name string, p Profile) {
	profilesMu.Lock()
	defer profilesMu.Unlock()
	profiles[name] = p
}

func Profiles() []string {
	profilesMu.RLock()
	defer profilesMu.RUnlock()
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func LoadProfile(name string, overrides map[string]any) (*Setup, error) {
	profilesMu.RLock()
	p, ok := profiles[name]
	profilesMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPrinter, name)
	}
	return p(overrides)
}

const banner = "; Time to print!!!!!\n; G-code created with fullcontrol-go"

func resolve(printer, user map[string]any) (Settings, error) {
	s, err := DefaultSettings().With(printer)
	if err != nil {
		return s, err
	}
	return s.With(user)
}

func speedFactor(s Settings) Step {
	return ManualGcode{Text: "M220 S" + formatPlain(s.PrintSpeedPercent) + " ; set speed factor override percentage"}
}

func flowFactor(s Settings) Step {
	return ManualGcode{Text: "M221 S" + formatPlain(s.MaterialFlowPercent) + " ; set extrude factor override percentage"}
}

func genericProfile(overrides map[string]any) (*Setup, error) {
	s, err := resolve(nil, overrides)
	if err != nil {
		return nil, err
	}
	return &Setup{
		Settings: s,
		Starting: []Step{
			ManualGcode{Text: banner},
			Buildplate{Temp: s.BedTemp, Wait: false},
			Hotend{Temp: s.NozzleTemp, Wait: false},
			Buildplate{Temp: s.BedTemp, Wait: true},
			Hotend{Temp: s.NozzleTemp, Wait: true},
			PrinterCommand{ID: "home"},
			PrinterCommand{ID: "absolute_coords"},
			PrinterCommand{ID: "units_mm"},
			Extruder{RelativeGcode: Bool(s.RelativeE)},
			Fan{SpeedPercent: s.FanPercent},
			speedFactor(s),
			flowFactor(s),
			ManualGcode{Text: ";-----\n; END OF STARTING PROCEDURE\n;-----"},
		},
		Ending: []Step{
			ManualGcode{Text: "\n;-----\n; START OF ENDING PROCEDURE\n;-----"},
			PrinterCommand{ID: "relative_coords"},
			ManualGcode{Text: "G0 Z10 F8000 ; raise nozzle"},
			PrinterCommand{ID: "absolute_coords"},
			Fan{SpeedPercent: 0},
			Buildplate{Temp: 0, Wait: false},
			Hotend{Temp: 0, Wait: false},
			ManualGcode{Text: "M84 ; disable steppers"},
		},
	}, nil
}

// customProfile only writes start-up lines for settings the user overrode.
func customProfile(overrides map[string]any) (*Setup, error) {
	s, err := resolve(map[string]any{"primer": PrimerNone, "relative_e": false}, overrides)
	if err != nil {
		return nil, err
	}
	has := func(key string) bool {
		_, ok := overrides[key]
		return ok
	}

	start := []Step{ManualGcode{Text: banner}}
	if has("relative_e") {
		start = append(start, Extruder{RelativeGcode: Bool(s.RelativeE)})
	}
	if has("bed_temp") {
		start = append(start, Buildplate{Temp: s.BedTemp, Wait: false})
	}
	if has("nozzle_temp") {
		start = append(start, Hotend{Temp: s.NozzleTemp, Wait: false})
	}
	if has("bed_temp") {
		start = append(start, Buildplate{Temp: s.BedTemp, Wait: true})
	}
	if has("nozzle_temp") {
		start = append(start, Hotend{Temp: s.NozzleTemp, Wait: true})
	}
	if has("fan_percent") {
		start = append(start, Fan{SpeedPercent: s.FanPercent})
	}
	if has("print_speed_percent") {
		start = append(start, speedFactor(s))
	}
	if has("material_flow_percent") {
		start = append(start, flowFactor(s))
	}
	return &Setup{Settings: s, Starting: start, Ending: []Step{}}, nil
}

func voronZeroProfile(overrides map[string]any) (*Setup, error) {
	s, err := resolve(map[string]any{"primer": PrimerTravel}, overrides)
	if err != nil {
		return nil, err
	}
	chamber := 50.0
	if v, ok := number(overrides["chamber_temp"]); ok {
		chamber = v
	}
	purge := true
	if v, ok := overrides["include_purge"].(bool); ok {
		purge = v
	}

	start := []Step{
		ManualGcode{Text: banner},
		ManualGcode{Text: fmt.Sprintf("print_start EXTRUDER=%s BED=%s CHAMBER=%s",
			formatPlain(s.NozzleTemp), formatPlain(s.BedTemp), formatPlain(chamber))},
		PrinterCommand{ID: "absolute_coords"},
		PrinterCommand{ID: "units_mm"},
		Extruder{RelativeGcode: Bool(s.RelativeE)},
		Fan{SpeedPercent: s.FanPercent},
		speedFactor(s),
		flowFactor(s),
	}
	if z, ok := number(overrides["z_offset"]); ok {
		start = append(start, ManualGcode{Text: "SET_GCODE_OFFSET Z=" + formatPlain(z) + " MOVE=1"})
	}
	if purge {
		start = append(start, purgeSteps(s)...)
	}
	start = append(start,
		Extruder{On: Bool(true)},
		ManualGcode{Text: ";-----\n; END OF STARTING PROCEDURE\n;-----"},
	)

	return &Setup{
		Settings: s,
		Starting: start,
		Ending: []Step{
			ManualGcode{Text: "\n;-----\n; START OF ENDING PROCEDURE\n;-----"},
			ManualGcode{Text: "print_end    ;end script from macro\n; this final gcode line helps ensure the print_end macro is executed"},
		},
	}, nil
}

// purgeSteps blobs out some material away from the part and wipes back
// down to first layer height.
func purgeSteps(s Settings) []Step {
	return []Step{
		Extruder{On: Bool(false)},
		XYZ(5, 5, 10),
		StationaryExtrusion{Volume: 50, Speed: 250},
		Printer{TravelSpeed: Float(250)},
		Point{Z: Float(50)},
		Printer{TravelSpeed: Float(s.TravelSpeed)},
		XYZ(10, 10, 0.3),
	}
}

func bambulabX1Profile(overrides map[string]any) (*Setup, error) {
	s, err := resolve(nil, overrides)
	if err != nil {
		return nil, err
	}

	start := []Step{
		ManualGcode{Text: banner},
		ManualGcode{Text: "; For BambuLab Carbon X1, when using custom GCode, the first print after start-up may stop extruding shortly after starting. Just re-print"},
		Buildplate{Temp: s.BedTemp, Wait: false},
		Hotend{Temp: 150, Wait: false},
		Buildplate{Temp: s.BedTemp, Wait: true},
		Hotend{Temp: 150, Wait: true},
		PrinterCommand{ID: "home"},
		GcodeComment{EndOfPreviousLineText: "including mesh bed level"},
		PrinterCommand{ID: "absolute_coords"},
		PrinterCommand{ID: "units_mm"},
		Extruder{RelativeGcode: Bool(s.RelativeE)},
		Fan{SpeedPercent: s.FanPercent},
		ManualGcode{Text: "M106 P2 S255 ; enable aux fan"},
		XYZ(20, 20, 10),
		ManualGcode{Text: "G92 X0 Y0 ; offset print to avoid filament cutting area"},
		XYZ(5, 5, 10),
		Hotend{Temp: s.NozzleTemp, Wait: true},
	}
	start = append(start, purgeSteps(s)...)
	start = append(start,
		Extruder{On: Bool(true)},
		speedFactor(s),
		flowFactor(s),
		ManualGcode{Text: ";-----\n; END OF STARTING PROCEDURE\n;-----"},
	)

	return &Setup{
		Settings: s,
		Starting: start,
		Ending: []Step{
			ManualGcode{Text: "\n;-----\n; START OF ENDING PROCEDURE\n;-----"},
			ManualGcode{Text: "M83\nG0 E-0.8 F3000 ; retract "},
			ManualGcode{Text: "G91 ; relative coordinates"},
			ManualGcode{Text: "G0 Z20 F8000 ; drop bed"},
			ManualGcode{Text: "G90 ; absolute coordinates"},
			Fan{SpeedPercent: 0},
			Buildplate{Temp: 0, Wait: false},
			Hotend{Temp: 0, Wait: false},
			ManualGcode{Text: "M221 S100 ; reset flow"},
			ManualGcode{Text: "M900 K0 ; reset LA"},
			ManualGcode{Text: "M106 P2 S0 ; disable aux fan"},
			ManualGcode{Text: "M84 ; disable steppers"},
		},
	}, nil
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
