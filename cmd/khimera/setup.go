package main

import (
	"context"
	"errors"

	"github.com/khimera-dev/khimera/internal/discovery"
	"github.com/khimera-dev/khimera/internal/logger"
	"github.com/khimera-dev/khimera/internal/plugin"
	"github.com/khimera-dev/khimera/internal/schema"
)

var errNoModel = errors.New("no plugin model file given")

// commandLogger upgrades the process logger to debug level when --verbose is
// set. On failure it falls back to the logger built in main.
func commandLogger(flags *rootFlags, log *logger.Logger) *logger.Logger {
	if !flags.verbose {
		return log
	}
	verbose, err := logger.New(logger.Options{Level: "debug", Pretty: true})
	if err != nil {
		return log
	}
	return verbose
}

// discoverPlugins loads the model file and scans the manifest roots. The
// returned finder holds every bundle that could be built; per-manifest
// failures are reported through the joined error without aborting the scan.
func discoverPlugins(ctx context.Context, flags *rootFlags, log *logger.Logger) (*plugin.Model, *discovery.ManifestFinder, error) {
	if flags.model == "" {
		return nil, nil, newCommandError("discover plugins", "resolving model file", errNoModel, "Pass the plugin model file with --model.")
	}

	model, err := schema.Load(flags.model)
	if err != nil {
		return nil, nil, newCommandError("discover plugins", "loading plugin model", err, "Check that the model file exists and declares valid fields.")
	}

	finder := discovery.NewManifestFinder(model, flags.roots, nil, log)
	return model, finder, finder.Discover(ctx)
}
