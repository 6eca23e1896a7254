// Package kerneltest provides fixtures shared by kernel backend tests.
package kerneltest

import (
	"github.com/chazu/meshunion/pkg/kernel"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Cube returns an axis-aligned cube from min to max as six outward
// facing, counter-clockwise quads.
func Cube(min, max v3.Vec) []kernel.Polygon {
	corner := func(i int) v3.Vec {
		c := min
		if i&1 != 0 {
			c.X = max.X
		}
		if i&2 != 0 {
			c.Y = max.Y
		}
		if i&4 != 0 {
			c.Z = max.Z
		}
		return c
	}
	faces := []struct {
		idx    [4]int
		normal v3.Vec
	}{
		{[4]int{0, 4, 6, 2}, v3.Vec{X: -1}},
		{[4]int{1, 3, 7, 5}, v3.Vec{X: 1}},
		{[4]int{0, 1, 5, 4}, v3.Vec{Y: -1}},
		{[4]int{2, 6, 7, 3}, v3.Vec{Y: 1}},
		{[4]int{0, 2, 3, 1}, v3.Vec{Z: -1}},
		{[4]int{4, 5, 7, 6}, v3.Vec{Z: 1}},
	}
	polys := make([]kernel.Polygon, 0, len(faces))
	for _, f := range faces {
		polys = append(polys, kernel.NewPolygon(f.normal,
			corner(f.idx[0]), corner(f.idx[1]), corner(f.idx[2]), corner(f.idx[3])))
	}
	return polys
}

// UniformCube returns Cube with equal bounds on every axis.
func UniformCube(lo, hi float64) []kernel.Polygon {
	return Cube(v3.Vec{X: lo, Y: lo, Z: lo}, v3.Vec{X: hi, Y: hi, Z: hi})
}
