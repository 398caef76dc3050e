package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/alexflint/go-arg"

	fc "fullcontrol-go"
)

type args struct {
	Design  string            `arg:"positional,required" help:"design JSON file, or - for stdin"`
	Printer string            `arg:"-p,--printer" default:"generic" help:"printer profile"`
	Set     map[string]string `arg:"-s,--set" help:"initialization data, as key=value"`
	Output  string            `arg:"-o,--output" help:"write G-code to this file instead of stdout"`
	Banner  bool              `arg:"--banner" help:"log a summary once the G-code is generated"`
	Tips    bool              `arg:"--tips" help:"log usage tips"`
	Check   bool              `arg:"--check" help:"print a summary of the design's steps and exit"`
	Quiet   bool              `arg:"-q,--quiet" help:"suppress warnings"`
}

func (args) Description() string {
	return "Fcgcode turns a fullcontrol design into G-code for a 3D printer."
}

func main() {
	var a args
	p := arg.MustParse(&a)

	steps, err := readDesign(a.Design)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	if a.Check {
		fmt.Print(fc.Check(steps))
		return
	}

	if !knownPrinter(a.Printer) {
		p.Fail(fmt.Sprintf("unrecognised printer: %s (have %v)", a.Printer, fc.Profiles()))
	}

	gcode, err := fc.TransformGcode(steps, fc.GcodeControls{
		PrinterName:        a.Printer,
		InitializationData: parseSettings(a.Set),
		ShowBanner:         a.Banner,
		ShowTips:           a.Tips,
		Silent:             a.Quiet,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	if a.Output == "" {
		os.Stdout.WriteString(gcode)
		return
	}
	if err := os.WriteFile(a.Output, []byte(gcode), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "write %s: %v\n", a.Output, err)
		os.Exit(1)
	}
}

func readDesign(path string) ([]fc.Step, error) {
	var buf []byte
	var err error
	if path == "-" {
		buf, err = io.ReadAll(os.Stdin)
	} else {
		buf, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	return fc.UnmarshalDesign(buf)
}

func knownPrinter(name string) bool {
	for _, p := range fc.Profiles() {
		if p == name {
			return true
		}
	}
	return false
}

// boolSettings are the initialization keys held in boolean settings.
var boolSettings = map[string]bool{
	"relative_e": true,
}

// parseSettings types command-line values: numbers and booleans become
// float64 and bool, anything else stays a string. Keys in boolSettings
// accept 1 and 0 as booleans.
func parseSettings(set map[string]string) map[string]any {
	data := map[string]any{}
	for k, v := range set {
		if boolSettings[k] {
			if b, err := strconv.ParseBool(v); err == nil {
				data[k] = b
				continue
			}
		}
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			data[k] = f
		} else if b, err := strconv.ParseBool(v); err == nil {
			data[k] = b
		} else {
			data[k] = v
		}
	}
	return data
}
