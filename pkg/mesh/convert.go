package mesh

import (
	"fmt"

	"github.com/chazu/meshunion/pkg/kernel"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Polygons converts the mesh to polygon soup. Faces with fewer than three
// indices are skipped. Each polygon keeps its face's winding order and
// every vertex carries the normal of the face's first three vertices.
// Degenerate faces produce NaN normals and are not reported.
func (m *Mesh) Polygons() []kernel.Polygon {
	var polys []kernel.Polygon
	for _, f := range m.AllFaces() {
		if len(f) < 3 {
			continue
		}
		normal := kernel.FaceNormal(m.Verts[f[0]], m.Verts[f[1]], m.Verts[f[2]])
		verts := make([]kernel.Vertex, len(f))
		for i, idx := range f {
			verts[i] = kernel.Vertex{Pos: m.Verts[idx], Normal: normal}
		}
		polys = append(polys, kernel.Polygon{Vertices: verts})
	}
	return polys
}

// ToSolid validates the mesh and builds a kernel solid from its polygons.
func (m *Mesh) ToSolid(k kernel.Kernel) (kernel.Solid, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	s, err := k.FromPolygons(m.Polygons())
	if err != nil {
		return nil, fmt.Errorf("mesh: to solid: %w", err)
	}
	return s, nil
}

// FromPolygons builds an indexed mesh from polygon soup. Vertices with
// exactly equal positions share one index; there is no tolerance, so
// positions that differ in the last bit stay separate. Every polygon
// becomes one face in WallFaces with its winding order unchanged.
func FromPolygons(polys []kernel.Polygon) *Mesh {
	m := &Mesh{}
	index := make(map[v3.Vec]int)
	for _, p := range polys {
		face := make(Face, len(p.Vertices))
		for i, v := range p.Vertices {
			idx, ok := index[v.Pos]
			if !ok {
				idx = len(m.Verts)
				index[v.Pos] = idx
				m.Verts = append(m.Verts, v.Pos)
			}
			face[i] = idx
		}
		m.WallFaces = append(m.WallFaces, face)
	}
	return m
}

// FromSolid asks the kernel for the solid's polygons and converts them.
func FromSolid(k kernel.Kernel, s kernel.Solid) (*Mesh, error) {
	polys, err := k.Polygons(s)
	if err != nil {
		return nil, fmt.Errorf("mesh: from solid: %w", err)
	}
	return FromPolygons(polys), nil
}

// SaveSTL converts the mesh to a solid and has the kernel write it to path.
func (m *Mesh) SaveSTL(k kernel.Kernel, path string) error {
	s, err := m.ToSolid(k)
	if err != nil {
		return err
	}
	if err := k.SaveSTL(s, path); err != nil {
		return fmt.Errorf("mesh: save %s: %w", path, err)
	}
	return nil
}
