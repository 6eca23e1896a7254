// Package bsp implements the kernel.Kernel interface with a polygon BSP
// tree CSG engine. Solids are plain polygon lists; boolean operations
// build a BSP tree per operand and clip each against the other. Polygons
// that are not split keep their input coordinates bit for bit.
package bsp

import (
	"fmt"

	"github.com/chazu/meshunion/pkg/kernel"
	"github.com/chazu/meshunion/pkg/stl"
)

// Compile-time interface check.
var _ kernel.Kernel = (*BSPKernel)(nil)

// bspSolid wraps a polygon list to implement kernel.Solid.
type bspSolid struct {
	polygons []polygon
}

// BoundingBox returns the axis-aligned bounding box.
func (s *bspSolid) BoundingBox() (min, max [3]float64) {
	return kernel.Bounds(s.export())
}

func (s *bspSolid) export() []kernel.Polygon {
	out := make([]kernel.Polygon, len(s.polygons))
	for i, p := range s.polygons {
		out[i] = p.export()
	}
	return out
}

// BSPKernel implements kernel.Kernel with BSP tree booleans.
type BSPKernel struct {
	format stl.Format
}

// New returns a BSPKernel that writes binary STL.
func New() *BSPKernel {
	return &BSPKernel{format: stl.Binary}
}

// NewWithFormat returns a BSPKernel that writes STL in the given format.
func NewWithFormat(format stl.Format) *BSPKernel {
	return &BSPKernel{format: format}
}

// unwrap extracts the polygon list from a kernel.Solid.
func unwrap(s kernel.Solid) []polygon {
	return s.(*bspSolid).polygons
}

// clone copies the polygon list so tree operations never touch the
// operands.
func clone(polys []polygon) []polygon {
	return append([]polygon(nil), polys...)
}

// FromPolygons builds a solid from a polygon soup. Polygons with fewer
// than three vertices are dropped.
func (k *BSPKernel) FromPolygons(polys []kernel.Polygon) (kernel.Solid, error) {
	s := &bspSolid{polygons: make([]polygon, 0, len(polys))}
	for _, p := range polys {
		if len(p.Vertices) < 3 {
			continue
		}
		s.polygons = append(s.polygons, newPolygon(p))
	}
	return s, nil
}

// Union returns the union of two solids. Operands whose bounding boxes do
// not overlap are concatenated without building trees.
func (k *BSPKernel) Union(a, b kernel.Solid) kernel.Solid {
	aMin, aMax := a.BoundingBox()
	bMin, bMax := b.BoundingBox()
	if !kernel.BoundsOverlap(aMin, aMax, bMin, bMax) {
		return &bspSolid{polygons: append(clone(unwrap(a)), unwrap(b)...)}
	}

	na := newNode(clone(unwrap(a)))
	nb := newNode(clone(unwrap(b)))
	na.clipTo(nb)
	nb.clipTo(na)
	nb.invert()
	nb.clipTo(na)
	nb.invert()
	na.build(nb.allPolygons())
	return &bspSolid{polygons: na.allPolygons()}
}

// Difference returns the difference a - b.
func (k *BSPKernel) Difference(a, b kernel.Solid) kernel.Solid {
	na := newNode(clone(unwrap(a)))
	nb := newNode(clone(unwrap(b)))
	na.invert()
	na.clipTo(nb)
	nb.clipTo(na)
	nb.invert()
	nb.clipTo(na)
	nb.invert()
	na.build(nb.allPolygons())
	na.invert()
	return &bspSolid{polygons: na.allPolygons()}
}

// Intersection returns the intersection of two solids.
func (k *BSPKernel) Intersection(a, b kernel.Solid) kernel.Solid {
	na := newNode(clone(unwrap(a)))
	nb := newNode(clone(unwrap(b)))
	na.invert()
	nb.clipTo(na)
	nb.invert()
	na.clipTo(nb)
	nb.clipTo(na)
	na.build(nb.allPolygons())
	na.invert()
	return &bspSolid{polygons: na.allPolygons()}
}

// Polygons returns the solid's polygon list.
func (k *BSPKernel) Polygons(s kernel.Solid) ([]kernel.Polygon, error) {
	return s.(*bspSolid).export(), nil
}

// SaveSTL writes the solid's polygons to path.
func (k *BSPKernel) SaveSTL(s kernel.Solid, path string) error {
	if err := stl.SaveAs(path, k.format, s.(*bspSolid).export()); err != nil {
		return fmt.Errorf("bsp: %w", err)
	}
	return nil
}
