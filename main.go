// Command meshunion builds two overlapping house meshes, unions them with
// a CSG kernel, converts the result back into an indexed mesh and writes
// it as STL.
//
// It takes no arguments. Set MESHUNION_CONFIG to a YAML file to change
// the kernel, output path, STL format or the houses themselves.
package main

import (
	"os"

	"github.com/chazu/meshunion/pkg/config"
	"github.com/chazu/meshunion/pkg/logging"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		logging.Error("loading config", "err", err)
		os.Exit(1)
	}
	if err := logging.SetLevel(cfg.LogLevel); err != nil {
		logging.Warn("ignoring log level", "level", cfg.LogLevel, "err", err)
	}

	app, err := NewApp(cfg, os.Stdout)
	if err != nil {
		logging.Error("creating app", "err", err)
		os.Exit(1)
	}
	if _, err := app.Run(); err != nil {
		logging.Error("run failed", "err", err)
		os.Exit(1)
	}
}
