package fullcontrol

import (
	"io"
	"math"

	"github.com/hschendel/stl"
	"gonum.org/v1/gonum/spatial/r3"
)

type MeshOptions struct {
	Name string

	// Sides is the number of faces around each bead. 4 gives a
	// rectangular bead of exactly the extrusion width and height.
	Sides int

	IncludeTravel bool
}

// Mesh turns the extruding paths into a triangle mesh of tubes, one prism
// per segment. Beads hang below the nozzle position by half their height.
func (d *PlotData) Mesh(opts MeshOptions) *stl.Solid {
	if opts.Sides < 3 {
		opts.Sides = 4
	}
	solid := &stl.Solid{Name: opts.Name}

	for i := range d.Paths {
		p := &d.Paths[i]
		if !p.Extruding && !opts.IncludeTravel {
			continue
		}
		for j := 1; j < len(p.Positions); j++ {
			a := toVec(p.Positions[j-1])
			b := toVec(p.Positions[j])
			solid.Triangles = append(solid.Triangles, segmentPrism(a, b, p.Widths[j], p.Heights[j], opts.Sides)...)
		}
	}
	return solid
}

func (d *PlotData) WriteSTL(w io.Writer, opts MeshOptions) error {
	return d.Mesh(opts).WriteAll(w)
}

func toVec(p Position) r3.Vec {
	return r3.Vec{X: p[0], Y: p[1], Z: p[2]}
}

func segmentPrism(a, b r3.Vec, width, height float64, sides int) []stl.Triangle {
	axis := r3.Sub(b, a)
	if r3.Norm(axis) < 1e-9 {
		return nil
	}
	dir := r3.Unit(axis)

	side := r3.Cross(dir, r3.Vec{Z: 1})
	if r3.Norm(side) < 1e-9 {
		side = r3.Cross(dir, r3.Vec{X: 1})
	}
	side = r3.Unit(side)
	up := r3.Cross(side, dir)

	drop := r3.Scale(-height/2, r3.Vec{Z: 1})
	a = r3.Add(a, drop)
	b = r3.Add(b, drop)

	// polygon circumscribing the width x height ellipse
	scale := 1 / math.Cos(math.Pi/float64(sides))
	ringA := make([]r3.Vec, sides)
	ringB := make([]r3.Vec, sides)
	for k := 0; k < sides; k++ {
		theta := math.Pi/float64(sides) + 2*math.Pi*float64(k)/float64(sides)
		off := r3.Add(
			r3.Scale(scale*width/2*math.Cos(theta), side),
			r3.Scale(scale*height/2*math.Sin(theta), up),
		)
		ringA[k] = r3.Add(a, off)
		ringB[k] = r3.Add(b, off)
	}

	tris := make([]stl.Triangle, 0, 4*sides)
	for k := 0; k < sides; k++ {
		n := (k + 1) % sides
		tris = appendTriangle(tris, ringA[k], ringB[k], ringB[n])
		tris = appendTriangle(tris, ringA[k], ringB[n], ringA[n])
	}
	for k := 1; k+1 < sides; k++ {
		tris = appendTriangle(tris, ringA[0], ringA[k], ringA[k+1])
		tris = appendTriangle(tris, ringB[0], ringB[k+1], ringB[k])
	}
	return tris
}

func appendTriangle(tris []stl.Triangle, a, b, c r3.Vec) []stl.Triangle {
	n := r3.Cross(r3.Sub(b, a), r3.Sub(c, a))
	if r3.Norm(n) < 1e-12 {
		return tris
	}
	n = r3.Unit(n)
	return append(tris, stl.Triangle{
		Normal:   toStl(n),
		Vertices: [3]stl.Vec3{toStl(a), toStl(b), toStl(c)},
	})
}

func toStl(v r3.Vec) stl.Vec3 {
	return stl.Vec3{float32(v.X), float32(v.Y), float32(v.Z)}
}
