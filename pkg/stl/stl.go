// Package stl writes kernel polygon lists as STL files.
// Polygons are fan-triangulated; every triangle carries the normal of the
// polygon it came from.
package stl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chazu/meshunion/pkg/kernel"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Format selects the STL encoding.
type Format string

const (
	Binary Format = "binary"
	ASCII  Format = "ascii"
)

// DefaultSolidName is the name written on the solid/endsolid lines of
// ASCII output.
const DefaultSolidName = "meshunion"

// ErrUnknownFormat is returned by ParseFormat and SaveAs for a format
// other than Binary or ASCII.
var ErrUnknownFormat = errors.New("stl: unknown format")

// ParseFormat maps a configuration string onto a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case Binary, ASCII:
		return Format(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Triangles converts polygons into sdfx triangles.
func Triangles(polys []kernel.Polygon) []*sdf.Triangle3 {
	var tris []*sdf.Triangle3
	for _, p := range polys {
		for _, t := range p.Triangles() {
			tris = append(tris, &sdf.Triangle3{t[0].Pos, t[1].Pos, t[2].Pos})
		}
	}
	return tris
}

// Save writes polys to path as binary STL.
func Save(path string, polys []kernel.Polygon) error {
	if err := render.SaveSTL(path, Triangles(polys)); err != nil {
		return fmt.Errorf("stl: write %s: %w", path, err)
	}
	return nil
}

// SaveAs writes polys to path in the given format.
func SaveAs(path string, format Format, polys []kernel.Polygon) error {
	switch format {
	case Binary:
		return Save(path, polys)
	case ASCII:
		return SaveASCII(path, polys)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// SaveASCII writes polys to path as ASCII STL.
func SaveASCII(path string, polys []kernel.Polygon) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("stl: create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("stl: close %s: %w", path, cerr)
		}
	}()
	if err := WriteASCII(f, DefaultSolidName, polys); err != nil {
		return fmt.Errorf("stl: write %s: %w", path, err)
	}
	return nil
}

// WriteASCII encodes polys as ASCII STL into w.
func WriteASCII(w io.Writer, name string, polys []kernel.Polygon) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "solid %s\n", name)
	for _, p := range polys {
		n := p.Normal()
		for _, t := range p.Triangles() {
			fmt.Fprintf(bw, "  facet normal %s\n", vecString(n))
			fmt.Fprintln(bw, "    outer loop")
			for _, v := range t {
				fmt.Fprintf(bw, "      vertex %s\n", vecString(v.Pos))
			}
			fmt.Fprintln(bw, "    endloop")
			fmt.Fprintln(bw, "  endfacet")
		}
	}
	fmt.Fprintf(bw, "endsolid %s\n", name)
	return bw.Flush()
}

func vecString(v v3.Vec) string {
	return fmt.Sprintf("%g %g %g", v.X, v.Y, v.Z)
}
