package fullcontrol

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"

	"golang.org/x/image/vector"
)

type PreviewOptions struct {
	Width      int
	Height     int
	Margin     int
	HideTravel bool
}

// Preview draws the plot viewed from above. Extruding segments are drawn at
// their extrusion width; travel is drawn as a hairline.
func (d *PlotData) Preview(opts PreviewOptions) *image.RGBA {
	if opts.Width <= 0 {
		opts.Width = 400
	}
	if opts.Height <= 0 {
		opts.Height = 400
	}

	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for i := range d.Paths {
		if !d.Paths[i].Extruding && opts.HideTravel {
			continue
		}
		for _, p := range d.Paths[i].Positions {
			minX, maxX = math.Min(minX, p[0]), math.Max(maxX, p[0])
			minY, maxY = math.Min(minY, p[1]), math.Max(maxY, p[1])
		}
	}
	if math.IsInf(minX, 1) {
		return img
	}

	usableW := float64(opts.Width - 2*opts.Margin)
	usableH := float64(opts.Height - 2*opts.Margin)
	scale := math.Min(usableW/math.Max(maxX-minX, 1e-9), usableH/math.Max(maxY-minY, 1e-9))

	mmToPx := func(p Position) (float64, float64) {
		x := float64(opts.Margin) + (p[0]-minX)*scale
		y := float64(opts.Height-1-opts.Margin) - (p[1]-minY)*scale
		return x, y
	}

	r := vector.NewRasterizer(opts.Width, opts.Height)
	for i := range d.Paths {
		path := &d.Paths[i]
		if !path.Extruding && opts.HideTravel {
			continue
		}
		for j := 1; j < len(path.Positions); j++ {
			ax, ay := mmToPx(path.Positions[j-1])
			bx, by := mmToPx(path.Positions[j])
			halfWidth := 0.5
			if path.Extruding {
				halfWidth = math.Max(0.5, path.Widths[j]*scale/2)
			}
			r.Reset(opts.Width, opts.Height)
			if !segmentQuad(r, ax, ay, bx, by, halfWidth) {
				continue
			}
			r.Draw(img, img.Bounds(), image.NewUniform(toRGBA(path.Colors[j])), image.Point{})
		}
	}
	return img
}

func segmentQuad(r *vector.Rasterizer, ax, ay, bx, by, halfWidth float64) bool {
	dx, dy := bx-ax, by-ay
	length := math.Sqrt(dx*dx + dy*dy)
	if length < 1e-6 {
		return false
	}
	nx, ny := -dy/length*halfWidth, dx/length*halfWidth

	r.MoveTo(float32(ax+nx), float32(ay+ny))
	r.LineTo(float32(bx+nx), float32(by+ny))
	r.LineTo(float32(bx-nx), float32(by-ny))
	r.LineTo(float32(ax-nx), float32(ay-ny))
	r.ClosePath()
	return true
}

func toRGBA(c Color) color.RGBA {
	var out [3]uint8
	for i, v := range c {
		out[i] = uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
	}
	return color.RGBA{R: out[0], G: out[1], B: out[2], A: 255}
}

func (d *PlotData) WritePNG(path string, opts PreviewOptions) error {
	img := d.Preview(opts)

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
