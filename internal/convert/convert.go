// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert sequences a single audio conversion: engine detection,
// input and format validation, output-path resolution, destination
// directory creation, and the delegated engine call. One invocation, one
// conversion, no retries; the first failing stage aborts the run.
package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/pdiddy/audioconv/internal/engine"
	"github.com/pdiddy/audioconv/internal/format"
	"github.com/pdiddy/audioconv/internal/resolve"
	"github.com/pdiddy/audioconv/pkg/types"
)

// Detector resolves the external engine. It exists so tests can inject a
// fake engine; production callers pass engine.Detect.
type Detector func(types.EngineConfig) (engine.Engine, error)

// Run performs one conversion, writing per-stage status lines to w. It
// returns the result on success or an *Error carrying the failure kind.
// No filesystem mutation happens before the engine and input checks pass.
func Run(ctx context.Context, det Detector, req types.ConversionRequest, cfg types.Config, w io.Writer) (types.Result, error) {
	eng, err := det(cfg.Engine)
	if err != nil {
		return types.Result{}, failf(KindEngineUnavailable, err, "conversion engine unavailable")
	}

	info, err := os.Stat(req.Input)
	if err != nil || info.IsDir() {
		return types.Result{}, failf(KindInputNotFound, nil, "input file not found: %s", req.Input)
	}

	spec, ok := format.Lookup(req.OutputFormat)
	if !ok {
		return types.Result{}, failf(KindUnsupportedFormat, nil,
			"unsupported output format %q (supported: %s)", req.OutputFormat, format.SupportedList())
	}

	out := resolve.OutputFor(req.Input, req.OutputFormat, req.Output)
	if out.Dir != "" {
		if err := os.MkdirAll(out.Dir, 0o755); err != nil {
			return types.Result{}, failf(KindDirectoryCreate, err, "creating directory %s", out.Dir)
		}
		fmt.Fprintf(w, "directory: %s\n", out.Dir)
	}

	if cfg.Convert.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Convert.Timeout)
		defer cancel()
	}

	fmt.Fprintf(w, "converting %s to %s with %s\n", req.Input, spec.Name, eng.Name())

	finalPath := out.Path()
	if err := convertAtomic(ctx, eng, req.Input, spec, cfg.Convert.Bitrate, out); err != nil {
		return types.Result{}, err
	}

	fmt.Fprintf(w, "saved: %s\n", finalPath)
	return types.Result{OutputPath: finalPath, Engine: eng.Name()}, nil
}

// convertAtomic runs the engine against a temporary file in the target
// directory and renames it over the final path on success, so a failed or
// interrupted run never leaves a partial output file behind.
func convertAtomic(ctx context.Context, eng engine.Engine, input string, spec format.Spec, bitrate string, out resolve.Output) error {
	tmpDir := out.Dir
	if tmpDir == "" {
		tmpDir = "."
	}
	tmp, err := os.CreateTemp(tmpDir, "."+out.Filename+".*.tmp")
	if err != nil {
		return failf(KindUnexpected, err, "creating temporary file in %s", tmpDir)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	if err := eng.Convert(ctx, input, spec.EncodeArgs(bitrate), tmpPath); err != nil {
		return failf(KindConversionFailed, err, "converting %s", input)
	}

	// CreateTemp makes the file 0600; the finished output should be a
	// normal readable file.
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return failf(KindUnexpected, err, "finalizing %s", out.Path())
	}
	if err := os.Rename(tmpPath, path.Join(tmpDir, out.Filename)); err != nil {
		return failf(KindUnexpected, err, "finalizing %s", out.Path())
	}
	return nil
}
