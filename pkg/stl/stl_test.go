package stl_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chazu/meshunion/pkg/kernel"
	"github.com/chazu/meshunion/pkg/stl"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// quadAndTriangle returns one quad and one triangle: three STL triangles.
func quadAndTriangle() []kernel.Polygon {
	quad := kernel.NewPolygon(v3.Vec{Z: 1},
		v3.Vec{X: 0, Y: 0}, v3.Vec{X: 1, Y: 0}, v3.Vec{X: 1, Y: 1}, v3.Vec{X: 0, Y: 1})
	tri := kernel.NewPolygon(v3.Vec{Z: -1},
		v3.Vec{X: 0, Y: 0}, v3.Vec{X: 0, Y: 1}, v3.Vec{X: 1, Y: 0})
	return []kernel.Polygon{quad, tri}
}

func TestTriangles(t *testing.T) {
	tris := stl.Triangles(quadAndTriangle())
	if len(tris) != 3 {
		t.Fatalf("Triangles() = %d, want 3", len(tris))
	}
	if tris[0][0] != (v3.Vec{}) || tris[0][1] != (v3.Vec{X: 1}) || tris[0][2] != (v3.Vec{X: 1, Y: 1}) {
		t.Errorf("first fan triangle = %v", *tris[0])
	}
}

func TestSaveBinary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.stl")
	if err := stl.Save(path, quadAndTriangle()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	// 80-byte header, uint32 count, 50 bytes per triangle.
	if len(data) != 84+50*3 {
		t.Fatalf("file size = %d, want %d", len(data), 84+50*3)
	}
	if n := binary.LittleEndian.Uint32(data[80:84]); n != 3 {
		t.Errorf("triangle count = %d, want 3", n)
	}
}

func TestSaveMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.stl")
	if err := stl.Save(path, quadAndTriangle()); err == nil {
		t.Fatal("Save() into a missing directory: error = nil, want non-nil")
	}
	if err := stl.SaveASCII(path, quadAndTriangle()); err == nil {
		t.Fatal("SaveASCII() into a missing directory: error = nil, want non-nil")
	}
}

func TestWriteASCII(t *testing.T) {
	var buf bytes.Buffer
	if err := stl.WriteASCII(&buf, "house", quadAndTriangle()); err != nil {
		t.Fatalf("WriteASCII() error = %v", err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "solid house\n") {
		t.Errorf("output does not start with solid line: %q", out[:20])
	}
	if !strings.HasSuffix(out, "endsolid house\n") {
		t.Error("output does not end with endsolid line")
	}
	if got := strings.Count(out, "facet normal"); got != 3 {
		t.Errorf("facet count = %d, want 3", got)
	}
	if got := strings.Count(out, "vertex "); got != 9 {
		t.Errorf("vertex line count = %d, want 9", got)
	}
	if got := strings.Count(out, "facet normal 0 0 -1"); got != 1 {
		t.Errorf("facets with normal (0,0,-1) = %d, want 1", got)
	}
}

func TestSaveAs(t *testing.T) {
	dir := t.TempDir()

	bin := filepath.Join(dir, "bin.stl")
	if err := stl.SaveAs(bin, stl.Binary, quadAndTriangle()); err != nil {
		t.Fatalf("SaveAs(binary) error = %v", err)
	}
	asc := filepath.Join(dir, "asc.stl")
	if err := stl.SaveAs(asc, stl.ASCII, quadAndTriangle()); err != nil {
		t.Fatalf("SaveAs(ascii) error = %v", err)
	}
	data, err := os.ReadFile(asc)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.HasPrefix(string(data), "solid "+stl.DefaultSolidName) {
		t.Errorf("ascii file header = %q", strings.SplitN(string(data), "\n", 2)[0])
	}

	err = stl.SaveAs(filepath.Join(dir, "x.stl"), stl.Format("obj"), nil)
	if !errors.Is(err, stl.ErrUnknownFormat) {
		t.Errorf("SaveAs(obj) error = %v, want ErrUnknownFormat", err)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    stl.Format
		wantErr bool
	}{
		{"binary", stl.Binary, false},
		{"ascii", stl.ASCII, false},
		{"", "", true},
		{"BINARY", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := stl.ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
