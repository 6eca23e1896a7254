// Package house generates a sample "house" solid: a cube with a four
// sided pyramid roof on top.
package house

import (
	"github.com/chazu/meshunion/pkg/mesh"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// NewMesh returns a house of the given size centered on offset. The cube
// spans size on every axis; the roof peak sits size/4 above the cube top.
// Vertices 0-3 are the bottom corners, 4-7 the top corners and 8 the peak.
func NewMesh(size float64, offset v3.Vec) *mesh.Mesh {
	s := size / 2.0
	corners := []v3.Vec{
		{X: -s, Y: -s, Z: -s}, // 0: bottom-left-front
		{X: s, Y: -s, Z: -s},  // 1: bottom-right-front
		{X: s, Y: -s, Z: s},   // 2: bottom-right-back
		{X: -s, Y: -s, Z: s},  // 3: bottom-left-back
		{X: -s, Y: s, Z: -s},  // 4: top-left-front
		{X: s, Y: s, Z: -s},   // 5: top-right-front
		{X: s, Y: s, Z: s},    // 6: top-right-back
		{X: -s, Y: s, Z: s},   // 7: top-left-back
		{X: 0, Y: s + s/2, Z: 0},
	}

	m := &mesh.Mesh{Verts: make([]v3.Vec, len(corners))}
	for i, c := range corners {
		m.Verts[i] = v3.Vec{X: c.X + offset.X, Y: c.Y + offset.Y, Z: c.Z + offset.Z}
	}

	m.BottomFaces = []mesh.Face{{3, 2, 1, 0}}
	m.WallFaces = []mesh.Face{
		{0, 1, 5, 4}, // front
		{1, 2, 6, 5}, // right
		{2, 3, 7, 6}, // back
		{3, 0, 4, 7}, // left
	}
	m.RoofFaces = []mesh.Face{
		{4, 5, 8},
		{5, 6, 8},
		{6, 7, 8},
		{7, 4, 8},
	}
	return m
}
