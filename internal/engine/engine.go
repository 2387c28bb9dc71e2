// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package engine implements detection and invocation of the external
// FFmpeg engine. All actual decode and encode work is delegated to the
// engine binary; this package only locates it, probes it, and runs it.
package engine

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/pdiddy/audioconv/pkg/types"
)

const binFFmpeg = "ffmpeg"

// Guidance is printed when no engine can be found.
const Guidance = `FFmpeg not found. Please ensure ffmpeg is:
1. Added to the system PATH, or
2. Placed in the same directory the tool runs from
Download FFmpeg from: https://github.com/BtbN/FFmpeg-Builds/releases`

// Engine runs the external conversion binary.
type Engine interface {
	// Name returns the binary name or path the engine was resolved to.
	Name() string

	// Version returns the first line of the engine's version output.
	Version() (string, error)

	// Encoders returns the engine's raw encoder listing.
	Encoders() (string, error)

	// Convert decodes inputPath and re-encodes it to outputPath using
	// encodeArgs (codec, bitrate, container selection). It blocks until
	// the engine exits or ctx is canceled. On failure the returned
	// error includes the engine's stderr, classified into a category.
	Convert(ctx context.Context, inputPath string, encodeArgs []string, outputPath string) error
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Stat(path string) (os.FileInfo, error)
	RunSilent(name string, args ...string) error
	RunOutput(name string, args ...string) (string, error)
	RunCapture(ctx context.Context, name string, args []string) (stderr string, err error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

func (o *osExecutor) RunSilent(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func (o *osExecutor) RunOutput(name string, args ...string) (string, error) {
	out, err := exec.Command(name, args...).Output()
	return string(out), err
}

func (o *osExecutor) RunCapture(ctx context.Context, name string, args []string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stderr.String(), err
}

// ffmpeg implements Engine for a resolved ffmpeg binary.
type ffmpeg struct {
	bin       string
	extraArgs []string
	exec      executor
}

func (f *ffmpeg) Name() string { return f.bin }

func (f *ffmpeg) Version() (string, error) {
	out, err := f.exec.RunOutput(f.bin, "-version")
	if err != nil {
		return "", fmt.Errorf("querying %s version: %w", f.bin, err)
	}
	line := out
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = line[:idx]
	}
	return strings.TrimSpace(line), nil
}

func (f *ffmpeg) Encoders() (string, error) {
	out, err := f.exec.RunOutput(f.bin, "-hide_banner", "-encoders")
	if err != nil {
		return "", fmt.Errorf("listing %s encoders: %w", f.bin, err)
	}
	return out, nil
}

func (f *ffmpeg) Convert(ctx context.Context, inputPath string, encodeArgs []string, outputPath string) error {
	args := []string{"-y", "-hide_banner", "-i", inputPath}
	args = append(args, encodeArgs...)
	args = append(args, f.extraArgs...)
	args = append(args, outputPath)

	stderr, err := f.exec.RunCapture(ctx, f.bin, args)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s interrupted: %w", f.bin, ctxErr)
		}
		return &ConvertError{
			Category: Classify(stderr),
			Stderr:   lastStderrLine(stderr),
			Err:      err,
		}
	}
	return nil
}

var defaultExec executor = &osExecutor{}

// Detect resolves the FFmpeg engine. A configured binary override is used
// as-is; otherwise "ffmpeg" is probed on PATH with a version query, then a
// local copy in the working directory (ffmpeg.exe or ffmpeg) is tried.
// When nothing is found the returned error wraps ErrUnavailable.
func Detect(cfg types.EngineConfig) (Engine, error) {
	return detect(cfg, defaultExec)
}

func detect(cfg types.EngineConfig, exec executor) (Engine, error) {
	if cfg.Binary != "" {
		if err := exec.RunSilent(cfg.Binary, "-version"); err != nil {
			return nil, fmt.Errorf("configured engine %s not usable: %w", cfg.Binary, ErrUnavailable)
		}
		return &ffmpeg{bin: cfg.Binary, extraArgs: cfg.ExtraArgs, exec: exec}, nil
	}

	if _, err := exec.LookPath(binFFmpeg); err == nil {
		if exec.RunSilent(binFFmpeg, "-version") == nil {
			return &ffmpeg{bin: binFFmpeg, extraArgs: cfg.ExtraArgs, exec: exec}, nil
		}
	}

	for _, local := range []string{"ffmpeg.exe", "ffmpeg"} {
		if info, err := exec.Stat(local); err == nil && !info.IsDir() {
			return &ffmpeg{bin: "./" + local, extraArgs: cfg.ExtraArgs, exec: exec}, nil
		}
	}

	return nil, fmt.Errorf("no conversion engine found on PATH or in the working directory: %w", ErrUnavailable)
}
