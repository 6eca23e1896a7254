// Package mesh defines the indexed house mesh and its adapters to and
// from kernel polygon soup.
//
// A Mesh keeps its faces in three provenance lists: roof, wall and
// bottom. The lists only record how a face was generated. Converting a
// kernel result back into a Mesh puts every face into WallFaces because
// boolean operations do not carry face tags through.
package mesh

import (
	"errors"
	"fmt"

	"github.com/samber/lo"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// ErrIndexOutOfRange is returned by Validate when a face refers to a
// vertex the mesh does not have.
var ErrIndexOutOfRange = errors.New("mesh: vertex index out of range")

// Face is an ordered list of vertex indices describing a planar polygon
// by its winding order.
type Face []int

// Mesh is an indexed polygon mesh.
type Mesh struct {
	Verts       []v3.Vec
	RoofFaces   []Face
	WallFaces   []Face
	BottomFaces []Face
}

// String summarizes vertex and face counts.
func (m *Mesh) String() string {
	return fmt.Sprintf("Mesh{verts=%d, totalFaces=%d (roof=%d, wall=%d, bottom=%d)}",
		len(m.Verts), m.FaceCount(), len(m.RoofFaces), len(m.WallFaces), len(m.BottomFaces))
}

// FaceCount returns the number of faces across all three lists.
func (m *Mesh) FaceCount() int {
	return len(m.RoofFaces) + len(m.WallFaces) + len(m.BottomFaces)
}

// AllFaces returns roof, wall and bottom faces in that order as one list.
// The mesh's own lists are not modified.
func (m *Mesh) AllFaces() []Face {
	return lo.Flatten([][]Face{m.RoofFaces, m.WallFaces, m.BottomFaces})
}

// IndexCount returns the total number of vertex references across all
// faces.
func (m *Mesh) IndexCount() int {
	return lo.SumBy(m.AllFaces(), func(f Face) int { return len(f) })
}

// Validate reports the first face index that does not refer to a vertex.
func (m *Mesh) Validate() error {
	for i, f := range m.AllFaces() {
		for _, idx := range f {
			if idx < 0 || idx >= len(m.Verts) {
				return fmt.Errorf("%w: face %d index %d (%d vertices)", ErrIndexOutOfRange, i, idx, len(m.Verts))
			}
		}
	}
	return nil
}
