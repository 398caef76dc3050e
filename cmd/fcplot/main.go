package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/alexflint/go-arg"

	fc "fullcontrol-go"
)

type args struct {
	Design     string  `arg:"positional,required" help:"design JSON file"`
	Color      string  `arg:"-c,--color" default:"z_gradient" help:"color scheme: z_gradient, print_sequence, print_sequence_fluctuating or manual"`
	Printer    string  `arg:"-p,--printer" default:"generic" help:"printer profile supplying default extrusion width and height"`
	JSON       string  `arg:"--json" help:"write the plot data as JSON to this file"`
	STL        string  `arg:"--stl" help:"write extruded paths as an STL mesh to this file"`
	Sides      int     `arg:"--sides" default:"4" help:"faces around each extruded bead in the STL"`
	PNG        string  `arg:"--png" help:"write a top-down preview to this PNG file"`
	Width      int     `arg:"--width" default:"400" help:"preview width in pixels"`
	Height     int     `arg:"--height" default:"400" help:"preview height in pixels"`
	HideTravel bool    `arg:"--hide-travel" help:"leave travel moves out of the preview"`
	Quiet      bool    `arg:"-q,--quiet" help:"suppress output of dimensions and warnings"`
	Scale      float64 `arg:"--zoom" default:"1" help:"scale factor recorded in the plot controls"`
}

func (args) Description() string {
	return "Fcplot previews a fullcontrol design as plot data, an STL mesh or a PNG image."
}

func main() {
	var a args
	arg.MustParse(&a)

	buf, err := os.ReadFile(a.Design)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	steps, err := fc.UnmarshalDesign(buf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	data, err := fc.TransformPlot(steps, fc.PlotControls{
		ColorType:   a.Color,
		PrinterName: a.Printer,
		RawData:     true,
		HideTravel:  a.HideTravel,
		TubeSides:   a.Sides,
		Zoom:        a.Scale,
		Silent:      a.Quiet,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	if !a.Quiet {
		bb := data.BoundingBox
		extruding, travel := data.Lengths()
		fmt.Fprintf(os.Stderr, "%d paths, %d annotations.\n", len(data.Paths), len(data.Annotations))
		fmt.Fprintf(os.Stderr, "%gx%gx%g mm bounding box.\n", bb.RangeX, bb.RangeY, bb.RangeZ)
		fmt.Fprintf(os.Stderr, "%.1f mm extruding, %.1f mm travel.\n", extruding, travel)
	}

	if a.JSON != "" {
		out, err := json.MarshalIndent(data, "", "  ")
		if err == nil {
			err = os.WriteFile(a.JSON, out, 0644)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "write %s: %v\n", a.JSON, err)
			os.Exit(1)
		}
	}

	if a.STL != "" {
		f, err := os.Create(a.STL)
		if err == nil {
			err = data.WriteSTL(f, fc.MeshOptions{Name: a.Design, Sides: a.Sides, IncludeTravel: false})
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "write %s: %v\n", a.STL, err)
			os.Exit(1)
		}
	}

	if a.PNG != "" {
		err := data.WritePNG(a.PNG, fc.PreviewOptions{Width: a.Width, Height: a.Height, Margin: 10, HideTravel: a.HideTravel})
		if err != nil {
			fmt.Fprintf(os.Stderr, "write %s: %v\n", a.PNG, err)
			os.Exit(1)
		}
	}
}
