package bsp

import (
	"github.com/chazu/meshunion/pkg/kernel"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// epsilon is the tolerance used to decide whether a point is on a plane.
const epsilon = 1e-8

// Point classification relative to a plane. Spanning is front|back.
const (
	coplanar = 0
	front    = 1
	back     = 2
	spanning = 3
)

// plane is the set of points p with normal·p = w.
type plane struct {
	normal v3.Vec
	w      float64
}

// planeFromPoints returns the plane through a, b, c oriented by their
// winding order.
func planeFromPoints(a, b, c v3.Vec) plane {
	n := kernel.FaceNormal(a, b, c)
	return plane{normal: n, w: n.Dot(a)}
}

func (p plane) flip() plane {
	return plane{normal: p.normal.Neg(), w: -p.w}
}

func (p plane) classify(v v3.Vec) int {
	t := p.normal.Dot(v) - p.w
	switch {
	case t < -epsilon:
		return back
	case t > epsilon:
		return front
	}
	return coplanar
}

// splitPolygon sorts poly into one of the four output lists, splitting it
// in two when it spans the plane. Coplanar polygons go to coplanarFront or
// coplanarBack depending on whether they face the same way as the plane.
func (p plane) splitPolygon(poly polygon, coplanarFront, coplanarBack, frontList, backList *[]polygon) {
	polygonType := 0
	types := make([]int, len(poly.vertices))
	for i, v := range poly.vertices {
		types[i] = p.classify(v.Pos)
		polygonType |= types[i]
	}

	switch polygonType {
	case coplanar:
		if p.normal.Dot(poly.plane.normal) > 0 {
			*coplanarFront = append(*coplanarFront, poly)
		} else {
			*coplanarBack = append(*coplanarBack, poly)
		}
	case front:
		*frontList = append(*frontList, poly)
	case back:
		*backList = append(*backList, poly)
	case spanning:
		var f, b []kernel.Vertex
		n := len(poly.vertices)
		for i := 0; i < n; i++ {
			j := (i + 1) % n
			ti, tj := types[i], types[j]
			vi, vj := poly.vertices[i], poly.vertices[j]
			if ti != back {
				f = append(f, vi)
			}
			if ti != front {
				b = append(b, vi)
			}
			if ti|tj == spanning {
				t := (p.w - p.normal.Dot(vi.Pos)) / p.normal.Dot(vj.Pos.Sub(vi.Pos))
				v := interpolate(vi, vj, t)
				f = append(f, v)
				b = append(b, v)
			}
		}
		if len(f) >= 3 {
			*frontList = append(*frontList, polygon{vertices: f, plane: poly.plane})
		}
		if len(b) >= 3 {
			*backList = append(*backList, polygon{vertices: b, plane: poly.plane})
		}
	}
}

// interpolate returns the vertex a fraction t of the way from a to b.
func interpolate(a, b kernel.Vertex, t float64) kernel.Vertex {
	return kernel.Vertex{
		Pos:    a.Pos.Add(b.Pos.Sub(a.Pos).MulScalar(t)),
		Normal: a.Normal.Add(b.Normal.Sub(a.Normal).MulScalar(t)),
	}
}
