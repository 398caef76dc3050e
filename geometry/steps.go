package geometry

import fc "fullcontrol-go"

// Steps wraps points as design steps.
func Steps(points []fc.Point) []fc.Step {
	steps := make([]fc.Step, len(points))
	for i, p := range points {
		steps[i] = p
	}
	return steps
}

// Move shifts every point in steps by the offset (unset offset axes are
// zero). Only axes a point sets are shifted. Groups are moved recursively
// and other steps are kept as they are.
func Move(steps []fc.Step, offset fc.Point) []fc.Step {
	dx, dy, dz := coords(offset)
	out := make([]fc.Step, 0, len(steps))
	for _, s := range steps {
		switch v := s.(type) {
		case fc.Point:
			p := v.Copy()
			if p.X != nil {
				*p.X += dx
			}
			if p.Y != nil {
				*p.Y += dy
			}
			if p.Z != nil {
				*p.Z += dz
			}
			out = append(out, p)
		case fc.Group:
			out = append(out, fc.Group{Steps: Move(v.Steps, offset)})
		default:
			out = append(out, s)
		}
	}
	return out
}

// Copy returns steps followed by quantity-1 further copies, each shifted by
// offset from the one before.
func Copy(steps []fc.Step, offset fc.Point, quantity int) []fc.Step {
	out := make([]fc.Step, 0, len(steps)*quantity)
	dx, dy, dz := coords(offset)
	for i := 0; i < quantity; i++ {
		n := float64(i)
		out = append(out, Move(steps, fc.XYZ(dx*n, dy*n, dz*n))...)
	}
	return out
}
