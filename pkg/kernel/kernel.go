// Package kernel defines the abstract CSG kernel interface.
// Implementations (bsp, sdfx, manifold) build solids from polygon soup,
// combine them with boolean operations and hand the result back as
// polygons. The kernel abstraction allows swapping backends without
// changing the mesh adapters.
package kernel

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract CSG kernel interface.
type Kernel interface {
	// Construction
	FromPolygons(polys []Polygon) (Solid, error)

	// Boolean operations
	Union(a, b Solid) Solid
	Difference(a, b Solid) Solid
	Intersection(a, b Solid) Solid

	// Output
	Polygons(s Solid) ([]Polygon, error)
	SaveSTL(s Solid, path string) error
}
