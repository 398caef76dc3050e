package fullcontrol

import (
	"encoding/json"
	"fmt"
)

// Designs are stored as a JSON list of {"type": ..., "data": ...} objects.
// Groups nest another such list under data.steps.

type designStep struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

type designGroup struct {
	Steps json.RawMessage `json:"steps"`
}

var stepDecoders = map[string]func(json.RawMessage) (Step, error){
	"Point":               decodeAs[Point],
	"ExtrusionGeometry":   decodeAs[ExtrusionGeometry],
	"Extruder":            decodeAs[Extruder],
	"Printer":             decodeAs[Printer],
	"StationaryExtrusion": decodeAs[StationaryExtrusion],
	"Retraction":          decodeAs[Retraction],
	"Unretraction":        decodeAs[Unretraction],
	"ManualGcode":         decodeAs[ManualGcode],
	"GcodeComment":        decodeAs[GcodeComment],
	"PrinterCommand":      decodeAs[PrinterCommand],
	"Fan":                 decodeAs[Fan],
	"Hotend":              decodeAs[Hotend],
	"Buildplate":          decodeAs[Buildplate],
	"PlotAnnotation":      decodeAs[PlotAnnotation],
}

func stepName(s Step) string {
	switch s.(type) {
	case Point:
		return "Point"
	case ExtrusionGeometry:
		return "ExtrusionGeometry"
	case Extruder:
		return "Extruder"
	case Printer:
		return "Printer"
	case StationaryExtrusion:
		return "StationaryExtrusion"
	case Retraction:
		return "Retraction"
	case Unretraction:
		return "Unretraction"
	case ManualGcode:
		return "ManualGcode"
	case GcodeComment:
		return "GcodeComment"
	case PrinterCommand:
		return "PrinterCommand"
	case Fan:
		return "Fan"
	case Hotend:
		return "Hotend"
	case Buildplate:
		return "Buildplate"
	case PlotAnnotation:
		return "PlotAnnotation"
	case Group:
		return "Group"
	}
	return fmt.Sprintf("%T", s)
}

func MarshalDesign(steps []Step) ([]byte, error) {
	out := make([]designStep, 0, len(steps))
	for _, s := range steps {
		var data []byte
		var err error
		if g, ok := s.(Group); ok {
			var inner []byte
			inner, err = MarshalDesign(g.Steps)
			if err == nil {
				data, err = json.Marshal(designGroup{Steps: inner})
			}
		} else {
			if _, known := stepDecoders[stepName(s)]; !known {
				return nil, fmt.Errorf("%w: %T", ErrUnknownStep, s)
			}
			data, err = json.Marshal(s)
		}
		if err != nil {
			return nil, err
		}
		out = append(out, designStep{Type: stepName(s), Data: data})
	}
	return json.MarshalIndent(out, "", "  ")
}

func UnmarshalDesign(buf []byte) ([]Step, error) {
	var raw []designStep
	if err := json.Unmarshal(buf, &raw); err != nil {
		return nil, fmt.Errorf("design: %w", err)
	}
	steps := make([]Step, 0, len(raw))
	for i, ds := range raw {
		decode, ok := stepDecoders[ds.Type]
		if ds.Type == "Group" {
			decode, ok = decodeGroup, true
		}
		if !ok {
			return nil, fmt.Errorf("design step %d: %w: %s", i, ErrUnknownStep, ds.Type)
		}
		s, err := decode(ds.Data)
		if err != nil {
			return nil, fmt.Errorf("design step %d (%s): %w", i, ds.Type, err)
		}
		steps = append(steps, s)
	}
	return steps, nil
}

func decodeAs[T Step](data json.RawMessage) (Step, error) {
	var v T
	if len(data) == 0 {
		return v, nil
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

func decodeGroup(data json.RawMessage) (Step, error) {
	var g designGroup
	if len(data) > 0 {
		if err := json.Unmarshal(data, &g); err != nil {
			return nil, err
		}
	}
	if len(g.Steps) == 0 {
		return Group{}, nil
	}
	inner, err := UnmarshalDesign(g.Steps)
	if err != nil {
		return nil, err
	}
	return Group{Steps: inner}, nil
}
