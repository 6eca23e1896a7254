//go:build manifold

// Package manifold provides a CGo-based geometry kernel binding to the
// Manifold library (https://github.com/elalish/manifold). Manifold provides
// guaranteed-manifold mesh boolean operations.
//
// This package requires the Manifold C library (manifoldc) to be installed.
// Build with: go build -tags=manifold
package manifold

/*
#cgo CFLAGS: -I/usr/local/include
#cgo LDFLAGS: -L/usr/local/lib -lmanifoldc

#include <stdlib.h>
#include <manifold/manifoldc.h>
*/
import "C"

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/chazu/meshunion/pkg/kernel"
	"github.com/chazu/meshunion/pkg/stl"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Compile-time interface checks.
var _ kernel.Kernel = (*ManifoldKernel)(nil)
var _ kernel.Solid = (*manifoldSolid)(nil)

// manifoldSolid wraps a C ManifoldManifold pointer and implements kernel.Solid.
type manifoldSolid struct {
	ptr *C.ManifoldManifold
}

// BoundingBox returns the axis-aligned bounding box of the solid.
func (s *manifoldSolid) BoundingBox() (min, max [3]float64) {
	alloc := C.manifold_alloc_box()
	bbox := C.manifold_bounding_box(alloc, s.ptr)
	defer C.manifold_delete_box(bbox)

	min[0] = float64(C.manifold_box_min_x(bbox))
	min[1] = float64(C.manifold_box_min_y(bbox))
	min[2] = float64(C.manifold_box_min_z(bbox))
	max[0] = float64(C.manifold_box_max_x(bbox))
	max[1] = float64(C.manifold_box_max_y(bbox))
	max[2] = float64(C.manifold_box_max_z(bbox))
	return min, max
}

// newSolid wraps a C ManifoldManifold pointer with Go-side finalizer
// for automatic memory management.
func newSolid(ptr *C.ManifoldManifold) *manifoldSolid {
	s := &manifoldSolid{ptr: ptr}
	runtime.SetFinalizer(s, func(s *manifoldSolid) {
		if s.ptr != nil {
			C.manifold_delete_manifold(s.ptr)
			s.ptr = nil
		}
	})
	return s
}

// ManifoldKernel implements kernel.Kernel using the Manifold C library.
type ManifoldKernel struct {
	format stl.Format
}

// New creates a new ManifoldKernel that writes binary STL.
func New() (kernel.Kernel, error) {
	return NewWithFormat(stl.Binary)
}

// NewWithFormat creates a ManifoldKernel whose SaveSTL writes format.
func NewWithFormat(format stl.Format) (kernel.Kernel, error) {
	return &ManifoldKernel{format: format}, nil
}

// FromPolygons merges identical positions into shared vertices, fan
// triangulates every polygon and builds a Manifold from the resulting
// MeshGL. Manifold rejects meshes that are not closed and oriented.
func (k *ManifoldKernel) FromPolygons(polys []kernel.Polygon) (kernel.Solid, error) {
	index := make(map[v3.Vec]uint32)
	var props []float32
	var tris []uint32
	for _, p := range polys {
		for _, t := range p.Triangles() {
			for _, v := range t {
				i, ok := index[v.Pos]
				if !ok {
					i = uint32(len(props) / 3)
					index[v.Pos] = i
					props = append(props, float32(v.Pos.X), float32(v.Pos.Y), float32(v.Pos.Z))
				}
				tris = append(tris, i)
			}
		}
	}
	if len(tris) == 0 {
		return nil, fmt.Errorf("manifold: no triangles in %d polygons", len(polys))
	}

	meshGL := C.manifold_meshgl(C.manifold_alloc_meshgl(),
		(*C.float)(unsafe.Pointer(&props[0])), C.size_t(len(props)/3), C.size_t(3),
		(*C.uint32_t)(unsafe.Pointer(&tris[0])), C.size_t(len(tris)/3),
	)
	defer C.manifold_delete_meshgl(meshGL)

	ptr := C.manifold_of_meshgl(C.manifold_alloc_manifold(), meshGL)
	if status := C.manifold_status(ptr); status != C.MANIFOLD_NO_ERROR {
		C.manifold_delete_manifold(ptr)
		return nil, fmt.Errorf("manifold: invalid mesh (status %d)", int(status))
	}
	return newSolid(ptr), nil
}

// Union returns the boolean union of two solids.
func (k *ManifoldKernel) Union(a, b kernel.Solid) kernel.Solid {
	sa := a.(*manifoldSolid)
	sb := b.(*manifoldSolid)
	alloc := C.manifold_alloc_manifold()
	ptr := C.manifold_union(alloc, sa.ptr, sb.ptr)
	return newSolid(ptr)
}

// Difference returns the boolean difference (a minus b).
func (k *ManifoldKernel) Difference(a, b kernel.Solid) kernel.Solid {
	sa := a.(*manifoldSolid)
	sb := b.(*manifoldSolid)
	alloc := C.manifold_alloc_manifold()
	ptr := C.manifold_difference(alloc, sa.ptr, sb.ptr)
	return newSolid(ptr)
}

// Intersection returns the boolean intersection of two solids.
func (k *ManifoldKernel) Intersection(a, b kernel.Solid) kernel.Solid {
	sa := a.(*manifoldSolid)
	sb := b.(*manifoldSolid)
	alloc := C.manifold_alloc_manifold()
	ptr := C.manifold_intersection(alloc, sa.ptr, sb.ptr)
	return newSolid(ptr)
}

// Polygons extracts the solid's triangles from Manifold's MeshGL format.
// Each triangle gets its face normal on all three vertices.
func (k *ManifoldKernel) Polygons(s kernel.Solid) ([]kernel.Polygon, error) {
	ms := s.(*manifoldSolid)

	meshGL := C.manifold_get_meshgl(C.manifold_alloc_meshgl(), ms.ptr)
	defer C.manifold_delete_meshgl(meshGL)

	numVert := int(C.manifold_meshgl_num_vert(meshGL))
	numTri := int(C.manifold_meshgl_num_tri(meshGL))
	if numVert == 0 || numTri == 0 {
		return nil, nil
	}

	// The first three properties of every vertex are its position.
	numProp := int(C.manifold_meshgl_num_prop(meshGL))
	propData := make([]float32, numVert*numProp)
	C.manifold_meshgl_vert_properties(
		(*C.float)(unsafe.Pointer(&propData[0])),
		meshGL,
	)
	indices := make([]uint32, numTri*3)
	C.manifold_meshgl_tri_verts(
		(*C.uint32_t)(unsafe.Pointer(&indices[0])),
		meshGL,
	)

	pos := func(i uint32) v3.Vec {
		base := int(i) * numProp
		return v3.Vec{
			X: float64(propData[base+0]),
			Y: float64(propData[base+1]),
			Z: float64(propData[base+2]),
		}
	}

	polys := make([]kernel.Polygon, 0, numTri)
	for t := 0; t < numTri; t++ {
		a, b, c := pos(indices[t*3]), pos(indices[t*3+1]), pos(indices[t*3+2])
		polys = append(polys, kernel.NewPolygon(kernel.FaceNormal(a, b, c), a, b, c))
	}
	return polys, nil
}

// SaveSTL writes the solid's triangles to path.
func (k *ManifoldKernel) SaveSTL(s kernel.Solid, path string) error {
	polys, err := k.Polygons(s)
	if err != nil {
		return err
	}
	if err := stl.SaveAs(path, k.format, polys); err != nil {
		return fmt.Errorf("manifold: %w", err)
	}
	return nil
}
