package main

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chazu/meshunion/pkg/config"
	"github.com/chazu/meshunion/pkg/kernel/manifold"
	"github.com/chazu/meshunion/pkg/stl"
)

// ---------------------------------------------------------------------------
// Kernel selection.
// ---------------------------------------------------------------------------

func TestNewAppUnknownKernel(t *testing.T) {
	cfg := testConfig(t)
	cfg.Kernel = "cgal"
	if _, err := NewApp(cfg, &bytes.Buffer{}); !errors.Is(err, config.ErrUnknownKernel) {
		t.Fatalf("NewApp() error = %v, want ErrUnknownKernel", err)
	}
}

func TestNewAppUnknownFormat(t *testing.T) {
	cfg := testConfig(t)
	cfg.Format = "obj"
	if _, err := NewApp(cfg, &bytes.Buffer{}); !errors.Is(err, stl.ErrUnknownFormat) {
		t.Fatalf("NewApp() error = %v, want ErrUnknownFormat", err)
	}
}

func TestNewAppManifoldWithoutTag(t *testing.T) {
	if _, err := manifold.New(); err == nil {
		t.Skip("built with the manifold tag")
	}
	cfg := testConfig(t)
	cfg.Kernel = config.KernelManifold
	if _, err := NewApp(cfg, &bytes.Buffer{}); err == nil {
		t.Fatal("NewApp(manifold) error = nil, want unavailable error")
	}
}

// ---------------------------------------------------------------------------
// Output failures propagate.
// ---------------------------------------------------------------------------

func TestRunUnwritableOutput(t *testing.T) {
	cfg := testConfig(t)
	cfg.Output = filepath.Join(t.TempDir(), "missing", "dir", "out.stl")

	var out bytes.Buffer
	app, err := NewApp(cfg, &out)
	if err != nil {
		t.Fatalf("NewApp() error = %v", err)
	}
	if _, err := app.Run(); err == nil {
		t.Fatal("Run() error = nil, want write failure")
	}
	if strings.Contains(out.String(), "...Done.") {
		t.Error("transcript reports success after a failed write")
	}
}

// ---------------------------------------------------------------------------
// Binary output.
// ---------------------------------------------------------------------------

func TestRunBinary(t *testing.T) {
	cfg := testConfig(t)
	cfg.Format = string(stl.Binary)

	app, err := NewApp(cfg, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("NewApp() error = %v", err)
	}
	final, err := app.Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	data, err := os.ReadFile(cfg.Output)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if len(data) < 84 {
		t.Fatalf("output is %d bytes, too short for binary STL", len(data))
	}
	n := int(binary.LittleEndian.Uint32(data[80:84]))

	// One triangle per fan triangle of every final face.
	want := 0
	for _, f := range final.WallFaces {
		want += len(f) - 2
	}
	if n != want {
		t.Errorf("triangle count = %d, want %d", n, want)
	}
	if len(data) != 84+50*n {
		t.Errorf("file size = %d, want %d for %d triangles", len(data), 84+50*n, n)
	}
}
