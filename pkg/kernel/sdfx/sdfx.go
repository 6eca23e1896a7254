// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library. Polygon soup is turned
// into a triangle mesh SDF; results come back through marching cubes, so
// output polygons are triangles on a voxel grid rather than the input
// faces.
package sdfx

import (
	"fmt"

	"github.com/chazu/meshunion/pkg/kernel"
	"github.com/chazu/meshunion/pkg/stl"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
)

// Compile-time interface check.
var _ kernel.Kernel = (*SdfxKernel)(nil)

// DefaultMeshCells controls marching cubes tessellation resolution.
const DefaultMeshCells = 200

// sdfxSolid wraps an sdf.SDF3 to implement kernel.Solid.
type sdfxSolid struct {
	s sdf.SDF3
}

// BoundingBox returns the axis-aligned bounding box.
func (s *sdfxSolid) BoundingBox() (min, max [3]float64) {
	bb := s.s.BoundingBox()
	min = [3]float64{bb.Min.X, bb.Min.Y, bb.Min.Z}
	max = [3]float64{bb.Max.X, bb.Max.Y, bb.Max.Z}
	return min, max
}

// SdfxKernel implements kernel.Kernel using sdfx.
type SdfxKernel struct {
	cells  int
	format stl.Format
}

// New returns a new SdfxKernel with the default resolution.
func New() *SdfxKernel {
	return NewWithCells(DefaultMeshCells)
}

// NewWithCells returns a SdfxKernel that tessellates with the given number
// of marching cubes cells along the longest axis.
func NewWithCells(cells int) *SdfxKernel {
	if cells <= 0 {
		cells = DefaultMeshCells
	}
	return &SdfxKernel{cells: cells, format: stl.Binary}
}

// SetFormat selects the STL encoding used by SaveSTL.
func (k *SdfxKernel) SetFormat(f stl.Format) {
	k.format = f
}

// unwrap extracts the underlying sdf.SDF3 from a kernel.Solid.
func unwrap(s kernel.Solid) sdf.SDF3 {
	return s.(*sdfxSolid).s
}

// wrap creates a kernel.Solid from an sdf.SDF3.
func wrap(s sdf.SDF3) kernel.Solid {
	return &sdfxSolid{s: s}
}

// FromPolygons builds a mesh SDF from the fan triangulation of polys.
// The polygons must describe a closed surface for inside/outside to be
// meaningful.
func (k *SdfxKernel) FromPolygons(polys []kernel.Polygon) (kernel.Solid, error) {
	tris := stl.Triangles(polys)
	if len(tris) == 0 {
		return nil, fmt.Errorf("sdfx: no triangles in %d polygons", len(polys))
	}
	s := newMeshSDF(tris)
	if s == nil {
		return nil, fmt.Errorf("sdfx: all %d triangles are degenerate", len(tris))
	}
	return wrap(s), nil
}

// Union returns the union of two solids.
func (k *SdfxKernel) Union(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Union3D(unwrap(a), unwrap(b)))
}

// Difference returns the difference a - b.
func (k *SdfxKernel) Difference(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Difference3D(unwrap(a), unwrap(b)))
}

// Intersection returns the intersection of two solids.
func (k *SdfxKernel) Intersection(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Intersect3D(unwrap(a), unwrap(b)))
}

// Polygons converts a solid to triangles using marching cubes. Every
// triangle carries its face normal on all three vertices.
func (k *SdfxKernel) Polygons(s kernel.Solid) ([]kernel.Polygon, error) {
	renderer := render.NewMarchingCubesUniform(k.cells)
	triangles := render.ToTriangles(unwrap(s), renderer)

	polys := make([]kernel.Polygon, 0, len(triangles))
	for _, tri := range triangles {
		polys = append(polys, kernel.NewPolygon(tri.Normal(), tri[0], tri[1], tri[2]))
	}
	return polys, nil
}

// SaveSTL tessellates the solid and writes it to path.
func (k *SdfxKernel) SaveSTL(s kernel.Solid, path string) error {
	polys, err := k.Polygons(s)
	if err != nil {
		return err
	}
	if err := stl.SaveAs(path, k.format, polys); err != nil {
		return fmt.Errorf("sdfx: %w", err)
	}
	return nil
}
