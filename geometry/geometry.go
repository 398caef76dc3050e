// Package geometry generates lists of points for common shapes. All angles
// are in radians, measured anticlockwise from the positive X axis. Points
// passed in as centres or starts must have every axis set.
package geometry

import (
	"errors"
	"math"

	fc "fullcontrol-go"
)

var ErrCollinear = errors.New("points are collinear")

func pt(x, y, z float64) fc.Point {
	return fc.XYZ(x, y, z)
}

func coords(p fc.Point) (float64, float64, float64) {
	var x, y, z float64
	if p.X != nil {
		x = *p.X
	}
	if p.Y != nil {
		y = *p.Y
	}
	if p.Z != nil {
		z = *p.Z
	}
	return x, y, z
}

// Polar returns the point at radius and angle from centre, at centre's
// height.
func Polar(centre fc.Point, radius, angle float64) fc.Point {
	cx, cy, cz := coords(centre)
	return pt(cx+radius*math.Cos(angle), cy+radius*math.Sin(angle), cz)
}

// ToPolar returns the radius and angle of p about origin in the XY plane.
func ToPolar(p, origin fc.Point) (radius, angle float64) {
	px, py, _ := coords(p)
	ox, oy, _ := coords(origin)
	dx, dy := px-ox, py-oy
	return math.Hypot(dx, dy), math.Atan2(dy, dx)
}

func Distance(a, b fc.Point) float64 {
	ax, ay, az := coords(a)
	bx, by, bz := coords(b)
	return math.Sqrt((bx-ax)*(bx-ax) + (by-ay)*(by-ay) + (bz-az)*(bz-az))
}

func Midpoint(a, b fc.Point) fc.Point {
	ax, ay, az := coords(a)
	bx, by, bz := coords(b)
	return pt((ax+bx)/2, (ay+by)/2, (az+bz)/2)
}

// VariableArcXY sweeps arcAngle from startAngle in segments steps while the
// radius and height change linearly by radiusChange and zChange. It returns
// segments+1 points.
func VariableArcXY(centre fc.Point, startRadius, startAngle, arcAngle, radiusChange, zChange float64, segments int) []fc.Point {
	if segments < 1 {
		segments = 1
	}
	_, _, cz := coords(centre)
	pts := make([]fc.Point, 0, segments+1)
	for i := 0; i <= segments; i++ {
		t := float64(i) / float64(segments)
		p := Polar(centre, startRadius+radiusChange*t, startAngle+arcAngle*t)
		p.Z = fc.Float(cz + zChange*t)
		pts = append(pts, p)
	}
	return pts
}

func ArcXY(centre fc.Point, radius, startAngle, arcAngle float64, segments int) []fc.Point {
	return VariableArcXY(centre, radius, startAngle, arcAngle, 0, 0, segments)
}

func CircleXY(centre fc.Point, radius, startAngle float64, segments int, clockwise bool) []fc.Point {
	return ArcXY(centre, radius, startAngle, turn(clockwise), segments)
}

// PolygonXY returns a closed regular polygon whose vertices lie on a circle
// of enclosingRadius.
func PolygonXY(centre fc.Point, enclosingRadius, startAngle float64, sides int, clockwise bool) []fc.Point {
	return CircleXY(centre, enclosingRadius, startAngle, sides, clockwise)
}

// RectangleXY returns the closed outline of a rectangle with one corner at
// start.
func RectangleXY(start fc.Point, xSize, ySize float64, clockwise bool) []fc.Point {
	x, y, z := coords(start)
	if clockwise {
		return []fc.Point{pt(x, y, z), pt(x, y+ySize, z), pt(x+xSize, y+ySize, z), pt(x+xSize, y, z), pt(x, y, z)}
	}
	return []fc.Point{pt(x, y, z), pt(x+xSize, y, z), pt(x+xSize, y+ySize, z), pt(x, y+ySize, z), pt(x, y, z)}
}

func SpiralXY(centre fc.Point, startRadius, endRadius, startAngle, turns float64, segments int, clockwise bool) []fc.Point {
	return VariableArcXY(centre, startRadius, startAngle, turns*turn(clockwise), endRadius-startRadius, 0, segments)
}

// HelixZ rises by pitchZ per turn while the radius changes from startRadius
// to endRadius.
func HelixZ(centre fc.Point, startRadius, endRadius, startAngle, turns, pitchZ float64, segments int, clockwise bool) []fc.Point {
	return VariableArcXY(centre, startRadius, startAngle, turns*turn(clockwise), endRadius-startRadius, pitchZ*turns, segments)
}

func turn(clockwise bool) float64 {
	if clockwise {
		return -2 * math.Pi
	}
	return 2 * math.Pi
}

// CentreXY3Pt returns the centre of the circle through three points, at the
// height of the first.
func CentreXY3Pt(p1, p2, p3 fc.Point) (fc.Point, error) {
	x1, y1, z1 := coords(p1)
	x2, y2, _ := coords(p2)
	x3, y3, _ := coords(p3)

	d := 2 * (x1*(y2-y3) + x2*(y3-y1) + x3*(y1-y2))
	if math.Abs(d) < 1e-12 {
		return fc.Point{}, ErrCollinear
	}
	s1 := x1*x1 + y1*y1
	s2 := x2*x2 + y2*y2
	s3 := x3*x3 + y3*y3
	cx := (s1*(y2-y3) + s2*(y3-y1) + s3*(y1-y2)) / d
	cy := (s1*(x3-x2) + s2*(x1-x3) + s3*(x2-x1)) / d
	return pt(cx, cy, z1), nil
}

// ArcXY3Pt returns the arc from p1 through p2 to p3.
func ArcXY3Pt(p1, p2, p3 fc.Point, segments int) ([]fc.Point, error) {
	centre, err := CentreXY3Pt(p1, p2, p3)
	if err != nil {
		return nil, err
	}
	radius, start := ToPolar(p1, centre)
	_, end := ToPolar(p3, centre)

	x1, y1, _ := coords(p1)
	x2, y2, _ := coords(p2)
	x3, y3, _ := coords(p3)
	cross := (x2-x1)*(y3-y2) - (y2-y1)*(x3-x2)

	sweep := end - start
	if cross > 0 {
		for sweep <= 0 {
			sweep += 2 * math.Pi
		}
	} else {
		for sweep >= 0 {
			sweep -= 2 * math.Pi
		}
	}
	return ArcXY(centre, radius, start, sweep, segments), nil
}

// SquarewaveXY zig-zags away from start along direction (x, y), with each
// tooth amplitude tall and lineSpacing wide.
func SquarewaveXY(start fc.Point, dirX, dirY, amplitude, lineSpacing float64, periods int) []fc.Point {
	length := math.Hypot(dirX, dirY)
	if length == 0 {
		return nil
	}
	ux, uy := dirX/length, dirY/length
	nx, ny := -uy, ux

	x, y, z := coords(start)
	pts := []fc.Point{pt(x, y, z)}
	for i := 0; i < periods; i++ {
		x, y = x+nx*amplitude, y+ny*amplitude
		pts = append(pts, pt(x, y, z))
		x, y = x+ux*lineSpacing, y+uy*lineSpacing
		pts = append(pts, pt(x, y, z))
		x, y = x-nx*amplitude, y-ny*amplitude
		pts = append(pts, pt(x, y, z))
		x, y = x+ux*lineSpacing, y+uy*lineSpacing
		pts = append(pts, pt(x, y, z))
	}
	return pts
}
