package kernel

import (
	"math"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// --- Polygon helper tests ---

func square() Polygon {
	return NewPolygon(v3.Vec{Z: 1},
		v3.Vec{X: 0, Y: 0},
		v3.Vec{X: 1, Y: 0},
		v3.Vec{X: 1, Y: 1},
		v3.Vec{X: 0, Y: 1},
	)
}

func TestPolygonTriangles(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want int
	}{
		{"empty", 0, 0},
		{"two vertices", 2, 0},
		{"triangle", 3, 1},
		{"quad", 4, 2},
		{"hexagon", 6, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := make([]v3.Vec, tt.n)
			for i := range pos {
				pos[i] = v3.Vec{X: float64(i)}
			}
			p := NewPolygon(v3.Vec{Z: 1}, pos...)
			tris := p.Triangles()
			if len(tris) != tt.want {
				t.Fatalf("Triangles() = %d, want %d", len(tris), tt.want)
			}
			for _, tri := range tris {
				if tri[0] != p.Vertices[0] {
					t.Errorf("fan triangle does not start at vertex 0: %v", tri[0])
				}
			}
		})
	}
}

func TestFaceNormal(t *testing.T) {
	n := FaceNormal(v3.Vec{}, v3.Vec{X: 1}, v3.Vec{Y: 1})
	if n != (v3.Vec{Z: 1}) {
		t.Errorf("FaceNormal() = %v, want (0,0,1)", n)
	}

	// Collinear points are not guarded.
	n = FaceNormal(v3.Vec{}, v3.Vec{X: 1}, v3.Vec{X: 2})
	if !math.IsNaN(n.X) {
		t.Errorf("FaceNormal() of collinear points = %v, want NaN components", n)
	}
}

func TestPolygonCloneIsDeep(t *testing.T) {
	p := square()
	c := p.Clone()
	c.Vertices[0].Pos = v3.Vec{X: 42}
	if p.Vertices[0].Pos.X == 42 {
		t.Error("Clone() shares vertex storage with the original")
	}
}

func TestVertexCount(t *testing.T) {
	polys := []Polygon{square(), NewPolygon(v3.Vec{}, v3.Vec{}, v3.Vec{X: 1}, v3.Vec{Y: 1})}
	if got := VertexCount(polys); got != 7 {
		t.Errorf("VertexCount() = %d, want 7", got)
	}
	if got := VertexCount(nil); got != 0 {
		t.Errorf("VertexCount(nil) = %d, want 0", got)
	}
}

func TestBounds(t *testing.T) {
	min, max := Bounds([]Polygon{square()})
	if min != [3]float64{0, 0, 0} {
		t.Errorf("Bounds min = %v, want [0 0 0]", min)
	}
	if max != [3]float64{1, 1, 0} {
		t.Errorf("Bounds max = %v, want [1 1 0]", max)
	}
}

func TestBoundsOverlap(t *testing.T) {
	tests := []struct {
		name       string
		aMin, aMax [3]float64
		bMin, bMax [3]float64
		want       bool
	}{
		{"identical", [3]float64{0, 0, 0}, [3]float64{1, 1, 1}, [3]float64{0, 0, 0}, [3]float64{1, 1, 1}, true},
		{"touching", [3]float64{0, 0, 0}, [3]float64{1, 1, 1}, [3]float64{1, 0, 0}, [3]float64{2, 1, 1}, true},
		{"apart on x", [3]float64{0, 0, 0}, [3]float64{1, 1, 1}, [3]float64{2, 0, 0}, [3]float64{3, 1, 1}, false},
		{"apart on z", [3]float64{0, 0, 0}, [3]float64{1, 1, 1}, [3]float64{0, 0, -3}, [3]float64{1, 1, -2}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BoundsOverlap(tt.aMin, tt.aMax, tt.bMin, tt.bMax); got != tt.want {
				t.Errorf("BoundsOverlap() = %v, want %v", got, tt.want)
			}
		})
	}
}

// --- Compile-time interface check with a stub kernel ---

// stubSolid is a minimal Solid implementation for testing.
type stubSolid struct {
	polys []Polygon
}

func (s *stubSolid) BoundingBox() (min, max [3]float64) {
	return Bounds(s.polys)
}

// stubKernel is a minimal Kernel implementation that proves the interface
// is satisfiable. Booleans concatenate or return the left operand.
type stubKernel struct{}

func (k *stubKernel) FromPolygons(polys []Polygon) (Solid, error) {
	return &stubSolid{polys: polys}, nil
}

func (k *stubKernel) Union(a, b Solid) Solid {
	pa := a.(*stubSolid).polys
	pb := b.(*stubSolid).polys
	return &stubSolid{polys: append(append([]Polygon{}, pa...), pb...)}
}

func (k *stubKernel) Difference(a, _ Solid) Solid   { return a }
func (k *stubKernel) Intersection(a, _ Solid) Solid { return a }

func (k *stubKernel) Polygons(s Solid) ([]Polygon, error) {
	return s.(*stubSolid).polys, nil
}

func (k *stubKernel) SaveSTL(_ Solid, _ string) error { return nil }

// Compile-time checks that the stubs implement the interfaces.
var _ Solid = (*stubSolid)(nil)
var _ Kernel = (*stubKernel)(nil)

func TestStubKernelUnion(t *testing.T) {
	var k Kernel = &stubKernel{}
	a, _ := k.FromPolygons([]Polygon{square()})
	b, _ := k.FromPolygons([]Polygon{square(), square()})
	polys, err := k.Polygons(k.Union(a, b))
	if err != nil {
		t.Fatalf("Polygons() error = %v", err)
	}
	if len(polys) != 3 {
		t.Errorf("Union polygon count = %d, want 3", len(polys))
	}
}
