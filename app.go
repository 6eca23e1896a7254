package main

import (
	"fmt"
	"io"
	"time"

	"github.com/chazu/meshunion/pkg/config"
	"github.com/chazu/meshunion/pkg/house"
	"github.com/chazu/meshunion/pkg/kernel"
	"github.com/chazu/meshunion/pkg/kernel/bsp"
	"github.com/chazu/meshunion/pkg/kernel/manifold"
	"github.com/chazu/meshunion/pkg/kernel/sdfx"
	"github.com/chazu/meshunion/pkg/logging"
	"github.com/chazu/meshunion/pkg/mesh"
	"github.com/chazu/meshunion/pkg/stl"
)

// App runs the house union demo. Progress lines go to out; diagnostics go
// through the shared logger.
type App struct {
	cfg    *config.Config
	kernel kernel.Kernel
	out    io.Writer
}

// NewApp creates an App with the kernel named in cfg.
func NewApp(cfg *config.Config, out io.Writer) (*App, error) {
	k, err := newKernel(cfg)
	if err != nil {
		return nil, err
	}
	return &App{cfg: cfg, kernel: k, out: out}, nil
}

// newKernel constructs the configured kernel backend.
func newKernel(cfg *config.Config) (kernel.Kernel, error) {
	format, err := stl.ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}
	switch cfg.Kernel {
	case config.KernelBSP:
		return bsp.NewWithFormat(format), nil
	case config.KernelSDFX:
		k := sdfx.NewWithCells(cfg.MeshCells)
		k.SetFormat(format)
		return k, nil
	case config.KernelManifold:
		return manifold.NewWithFormat(format)
	}
	return nil, fmt.Errorf("%w: %q", config.ErrUnknownKernel, cfg.Kernel)
}

// Run builds the configured houses, unions them, converts the result back
// to an indexed mesh and saves it as STL. The final mesh is returned.
func (a *App) Run() (*mesh.Mesh, error) {
	start := time.Now()
	logging.Info("starting", "kernel", a.cfg.Kernel, "houses", len(a.cfg.Houses), "output", a.cfg.Output)

	// Step 1: Generate the input meshes.
	fmt.Fprintln(a.out, "--- Creating Original Meshes ---")
	meshes := make([]*mesh.Mesh, len(a.cfg.Houses))
	for i, h := range a.cfg.Houses {
		meshes[i] = house.NewMesh(h.Size, h.OffsetVec())
		fmt.Fprintf(a.out, "Mesh %d: %s\n", i+1, meshes[i])
	}
	fmt.Fprintln(a.out)

	// Step 2: Convert to kernel solids.
	fmt.Fprintln(a.out, "--- Processing ---")
	fmt.Fprintln(a.out, "1. Converting to CSG format...")
	solids := make([]kernel.Solid, len(meshes))
	for i, m := range meshes {
		s, err := m.ToSolid(a.kernel)
		if err != nil {
			return nil, fmt.Errorf("mesh %d: %w", i+1, err)
		}
		solids[i] = s
	}

	// Step 3: Union left to right.
	fmt.Fprintln(a.out, "2. Performing union...")
	result := solids[0]
	for _, s := range solids[1:] {
		result = a.kernel.Union(result, s)
	}

	// Step 4: Back to the indexed mesh format.
	fmt.Fprintln(a.out, "3. Converting result back to Mesh format...")
	final, err := mesh.FromSolid(a.kernel, result)
	if err != nil {
		return nil, err
	}
	logging.Debug("union converted", "faces", final.FaceCount(), "verts", len(final.Verts))
	fmt.Fprintln(a.out)

	// Step 5: Report and export.
	fmt.Fprintln(a.out, "--- Result ---")
	fmt.Fprintf(a.out, "Final combined mesh: %s\n", final)
	fmt.Fprintf(a.out, "Saving mesh to %s...\n", a.cfg.Output)
	if err := final.SaveSTL(a.kernel, a.cfg.Output); err != nil {
		return nil, err
	}
	fmt.Fprintln(a.out, "...Done.")

	logging.Info("finished", "elapsed", time.Since(start).Round(time.Millisecond))
	return final, nil
}
