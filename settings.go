package fullcontrol

import (
	"encoding/json"
	"fmt"
)

// Settings are the resolved defaults a design starts from. Keys match the
// initialization data accepted by the controls.
type Settings struct {
	PrintSpeed          float64           `json:"print_speed"`
	TravelSpeed         float64           `json:"travel_speed"`
	AreaModel           AreaModel         `json:"area_model"`
	ExtrusionWidth      float64           `json:"extrusion_width"`
	ExtrusionHeight     float64           `json:"extrusion_height"`
	EUnits              string            `json:"e_units"`
	RelativeE           bool              `json:"relative_e"`
	DiaFeed             float64           `json:"dia_feed"`
	TravelFormat        string            `json:"travel_format"`
	Primer              string            `json:"primer"`
	NozzleTemp          float64           `json:"nozzle_temp"`
	BedTemp             float64           `json:"bed_temp"`
	FanPercent          float64           `json:"fan_percent"`
	PrintSpeedPercent   float64           `json:"print_speed_percent"`
	MaterialFlowPercent float64           `json:"material_flow_percent"`
	RetractionLength    *float64          `json:"retraction_length,omitempty"`
	RetractionSpeed     *float64          `json:"retraction_speed,omitempty"`
	PrinterCommands     map[string]string `json:"printer_command_list"`
}

func DefaultSettings() Settings {
	return Settings{
		PrintSpeed:          1000,
		TravelSpeed:         8000,
		AreaModel:           Rectangle,
		ExtrusionWidth:      0.4,
		ExtrusionHeight:     0.2,
		EUnits:              UnitsLinear,
		RelativeE:           true,
		DiaFeed:             1.75,
		TravelFormat:        TravelG1E0,
		Primer:              "front_lines_then_y",
		NozzleTemp:          210,
		BedTemp:             40,
		FanPercent:          100,
		PrintSpeedPercent:   100,
		MaterialFlowPercent: 100,
		PrinterCommands: map[string]string{
			"home":            "G28 ; home axes",
			"retract":         "G10 ; retract",
			"unretract":       "G11 ; unretract",
			"absolute_coords": "G90 ; absolute coordinates",
			"relative_coords": "G91 ; relative coordinates",
			"units_mm":        "G21 ; set units to millimeters",
		},
	}
}

// With returns a copy of s with the given initialization data applied.
// Entries in printer_command_list are merged into the existing table; an
// empty command removes it.
func (s Settings) With(data map[string]any) (Settings, error) {
	out := s
	out.PrinterCommands = make(map[string]string, len(s.PrinterCommands))
	for k, v := range s.PrinterCommands {
		out.PrinterCommands[k] = v
	}
	if s.RetractionLength != nil {
		out.RetractionLength = Float(*s.RetractionLength)
	}
	if s.RetractionSpeed != nil {
		out.RetractionSpeed = Float(*s.RetractionSpeed)
	}
	if len(data) == 0 {
		return out, nil
	}

	buf, err := json.Marshal(data)
	if err != nil {
		return s, fmt.Errorf("initialization data: %w", err)
	}
	if err := json.Unmarshal(buf, &out); err != nil {
		return s, fmt.Errorf("initialization data: %w", err)
	}
	for k, v := range out.PrinterCommands {
		if v == "" {
			delete(out.PrinterCommands, k)
		}
	}
	return out, nil
}
