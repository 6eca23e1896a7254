package bsp

import "github.com/chazu/meshunion/pkg/kernel"

// polygon is a kernel polygon with its cached supporting plane.
type polygon struct {
	vertices []kernel.Vertex
	plane    plane
}

func newPolygon(p kernel.Polygon) polygon {
	verts := p.Clone().Vertices
	return polygon{
		vertices: verts,
		plane:    planeFromPoints(verts[0].Pos, verts[1].Pos, verts[2].Pos),
	}
}

// flipped reverses the winding order and negates every normal.
func (p polygon) flipped() polygon {
	n := len(p.vertices)
	verts := make([]kernel.Vertex, n)
	for i, v := range p.vertices {
		verts[n-1-i] = kernel.Vertex{Pos: v.Pos, Normal: v.Normal.Neg()}
	}
	return polygon{vertices: verts, plane: p.plane.flip()}
}

func (p polygon) export() kernel.Polygon {
	verts := make([]kernel.Vertex, len(p.vertices))
	copy(verts, p.vertices)
	return kernel.Polygon{Vertices: verts}
}

// node is a BSP tree node. The tree is built from the polygons of one
// solid; front and back subtrees hold the polygons on either side of the
// node's plane.
type node struct {
	plane    *plane
	front    *node
	back     *node
	polygons []polygon
}

func newNode(polys []polygon) *node {
	n := &node{}
	n.build(polys)
	return n
}

// invert converts solid space to empty space and empty space to solid
// space.
func (n *node) invert() {
	for i, p := range n.polygons {
		n.polygons[i] = p.flipped()
	}
	if n.plane != nil {
		flipped := n.plane.flip()
		n.plane = &flipped
	}
	if n.front != nil {
		n.front.invert()
	}
	if n.back != nil {
		n.back.invert()
	}
	n.front, n.back = n.back, n.front
}

// clipPolygons removes the parts of polys that are inside this tree.
func (n *node) clipPolygons(polys []polygon) []polygon {
	if n.plane == nil {
		return append([]polygon(nil), polys...)
	}
	var f, b []polygon
	for _, p := range polys {
		n.plane.splitPolygon(p, &f, &b, &f, &b)
	}
	if n.front != nil {
		f = n.front.clipPolygons(f)
	}
	if n.back != nil {
		b = n.back.clipPolygons(b)
	} else {
		b = nil
	}
	return append(f, b...)
}

// clipTo removes all polygons in this tree that are inside other.
func (n *node) clipTo(other *node) {
	n.polygons = other.clipPolygons(n.polygons)
	if n.front != nil {
		n.front.clipTo(other)
	}
	if n.back != nil {
		n.back.clipTo(other)
	}
}

// allPolygons returns every polygon in the tree.
func (n *node) allPolygons() []polygon {
	polys := append([]polygon(nil), n.polygons...)
	if n.front != nil {
		polys = append(polys, n.front.allPolygons()...)
	}
	if n.back != nil {
		polys = append(polys, n.back.allPolygons()...)
	}
	return polys
}

// build inserts polys into the tree. The first polygon's plane becomes the
// splitting plane of a fresh node.
func (n *node) build(polys []polygon) {
	if len(polys) == 0 {
		return
	}
	if n.plane == nil {
		p := polys[0].plane
		n.plane = &p
	}
	var f, b []polygon
	for _, p := range polys {
		n.plane.splitPolygon(p, &n.polygons, &n.polygons, &f, &b)
	}
	if len(f) > 0 {
		if n.front == nil {
			n.front = &node{}
		}
		n.front.build(f)
	}
	if len(b) > 0 {
		if n.back == nil {
			n.back = &node{}
		}
		n.back.build(b)
	}
}
