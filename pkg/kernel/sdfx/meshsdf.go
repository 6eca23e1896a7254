package sdfx

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Compile-time interface check.
var _ sdf.SDF3 = (*meshSDF)(nil)

// minTriangleArea drops degenerate triangles; they have no inside and
// break the closest-point barycentrics.
const minTriangleArea = 1e-12

// bboxPad grows the bounding box by a fraction of its largest extent so
// faces on the box boundary still see a sign change when sampled.
const bboxPad = 0.01

// rayDir is a skewed direction so parity rays do not run along the
// edges or faces of axis-aligned meshes.
var rayDir = v3.Vec{X: -0.40475415, Y: 0.86174632, Z: -0.30588783}

// meshSDF is a signed distance function for a closed triangle mesh.
// The magnitude is the distance to the closest triangle; the sign comes
// from ray parity, so it does not depend on the mesh's winding order.
type meshSDF struct {
	tris []sdf.Triangle3
	bb   sdf.Box3
}

// newMeshSDF builds a mesh SDF from tris. It returns nil when no
// triangle has a non-zero area.
func newMeshSDF(tris []*sdf.Triangle3) *meshSDF {
	m := &meshSDF{}
	min := v3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	max := v3.Vec{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for _, t := range tris {
		if t[1].Sub(t[0]).Cross(t[2].Sub(t[0])).Length()/2 < minTriangleArea {
			continue
		}
		m.tris = append(m.tris, *t)
		for _, p := range t {
			min = min.Min(p)
			max = max.Max(p)
		}
	}
	if len(m.tris) == 0 {
		return nil
	}
	pad := max.Sub(min).MaxComponent() * bboxPad
	m.bb = sdf.Box3{Min: min.SubScalar(pad), Max: max.AddScalar(pad)}
	return m
}

// BoundingBox returns the padded bounding box of the mesh.
func (m *meshSDF) BoundingBox() sdf.Box3 {
	return m.bb
}

// Evaluate returns the signed distance from p to the mesh surface,
// negative inside.
func (m *meshSDF) Evaluate(p v3.Vec) float64 {
	d2 := math.Inf(1)
	for i := range m.tris {
		c := closestPoint(p, &m.tris[i])
		d2 = math.Min(d2, c.Sub(p).Length2())
	}
	d := math.Sqrt(d2)
	if m.inside(p) {
		return -d
	}
	return d
}

// inside counts crossings of a ray from p; an odd count is inside.
func (m *meshSDF) inside(p v3.Vec) bool {
	n := 0
	for i := range m.tris {
		if rayHits(p, rayDir, &m.tris[i]) {
			n++
		}
	}
	return n%2 == 1
}

// rayHits reports whether the ray o + t*d, t > 0, crosses t
// (Moller-Trumbore).
func rayHits(o, d v3.Vec, t *sdf.Triangle3) bool {
	const eps = 1e-12
	e1 := t[1].Sub(t[0])
	e2 := t[2].Sub(t[0])
	h := d.Cross(e2)
	a := e1.Dot(h)
	if math.Abs(a) < eps {
		return false
	}
	f := 1 / a
	s := o.Sub(t[0])
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return false
	}
	q := s.Cross(e1)
	v := f * d.Dot(q)
	if v < 0 || u+v > 1 {
		return false
	}
	return f*e2.Dot(q) > eps
}

// closestPoint returns the point of triangle t closest to p, using the
// Voronoi region tests from Ericson, Real-Time Collision Detection 5.1.5.
func closestPoint(p v3.Vec, t *sdf.Triangle3) v3.Vec {
	a, b, c := t[0], t[1], t[2]
	ab := b.Sub(a)
	ac := c.Sub(a)
	ap := p.Sub(a)
	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return a
	}

	bp := p.Sub(b)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return b
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		return a.Add(ab.MulScalar(d1 / (d1 - d3)))
	}

	cp := p.Sub(c)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return c
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		return a.Add(ac.MulScalar(d2 / (d2 - d6)))
	}

	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		return b.Add(c.Sub(b).MulScalar((d4 - d3) / ((d4 - d3) + (d5 - d6))))
	}

	denom := 1 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	return a.Add(ab.MulScalar(v)).Add(ac.MulScalar(w))
}
