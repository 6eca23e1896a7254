package kernel

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Vertex is a polygon-soup vertex record: a position and the normal of
// the face it belongs to.
type Vertex struct {
	Pos    v3.Vec
	Normal v3.Vec
}

// Polygon is a planar polygon in winding order. Adjacent polygons do not
// share vertex records.
type Polygon struct {
	Vertices []Vertex
}

// NewPolygon builds a polygon from positions, giving every vertex the
// same normal.
func NewPolygon(normal v3.Vec, positions ...v3.Vec) Polygon {
	verts := make([]Vertex, len(positions))
	for i, p := range positions {
		verts[i] = Vertex{Pos: p, Normal: normal}
	}
	return Polygon{Vertices: verts}
}

// FaceNormal returns the normalized cross product of (b-a) and (c-a).
// Collinear points produce a NaN normal; callers get no error for it.
func FaceNormal(a, b, c v3.Vec) v3.Vec {
	n := b.Sub(a).Cross(c.Sub(a))
	return n.MulScalar(1 / n.Length())
}

// Clone returns a deep copy of the polygon.
func (p Polygon) Clone() Polygon {
	verts := make([]Vertex, len(p.Vertices))
	copy(verts, p.Vertices)
	return Polygon{Vertices: verts}
}

// Normal returns the normal carried by the first vertex, or the zero
// vector for an empty polygon.
func (p Polygon) Normal() v3.Vec {
	if len(p.Vertices) == 0 {
		return v3.Vec{}
	}
	return p.Vertices[0].Normal
}

// Triangles fan-triangulates the polygon around its first vertex.
// Polygons with fewer than three vertices yield nothing.
func (p Polygon) Triangles() [][3]Vertex {
	if len(p.Vertices) < 3 {
		return nil
	}
	tris := make([][3]Vertex, 0, len(p.Vertices)-2)
	for i := 1; i < len(p.Vertices)-1; i++ {
		tris = append(tris, [3]Vertex{p.Vertices[0], p.Vertices[i], p.Vertices[i+1]})
	}
	return tris
}

// VertexCount returns the total number of vertex records across polys.
func VertexCount(polys []Polygon) int {
	n := 0
	for _, p := range polys {
		n += len(p.Vertices)
	}
	return n
}

// Bounds returns the axis-aligned bounding box of all vertex positions.
// An empty polygon list yields min = +Inf and max = -Inf on every axis.
func Bounds(polys []Polygon) (min, max [3]float64) {
	for i := 0; i < 3; i++ {
		min[i] = math.Inf(1)
		max[i] = math.Inf(-1)
	}
	for _, p := range polys {
		for _, v := range p.Vertices {
			c := [3]float64{v.Pos.X, v.Pos.Y, v.Pos.Z}
			for i := 0; i < 3; i++ {
				min[i] = math.Min(min[i], c[i])
				max[i] = math.Max(max[i], c[i])
			}
		}
	}
	return min, max
}

// BoundsOverlap reports whether two bounding boxes intersect.
// Touching boxes count as overlapping.
func BoundsOverlap(aMin, aMax, bMin, bMax [3]float64) bool {
	for i := 0; i < 3; i++ {
		if aMax[i] < bMin[i] || bMax[i] < aMin[i] {
			return false
		}
	}
	return true
}
