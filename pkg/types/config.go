// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// EngineConfig holds settings for locating and invoking the external
// FFmpeg engine.
type EngineConfig struct {
	// Binary overrides the engine binary name or path. Empty means
	// "ffmpeg" resolved on PATH, falling back to a copy in the working
	// directory.
	Binary string `json:"binary,omitempty" yaml:"binary,omitempty"`

	// ExtraArgs are appended verbatim to every conversion invocation,
	// after the format arguments and before the output path.
	ExtraArgs []string `json:"extra_args,omitempty" yaml:"extra_args,omitempty"`
}

// ConvertConfig holds settings for the conversion stage.
type ConvertConfig struct {
	// Bitrate is the target bitrate for lossy formats (e.g. "192k").
	// Empty leaves the choice to the engine's encoder defaults.
	Bitrate string `json:"bitrate,omitempty" yaml:"bitrate,omitempty"`

	// Timeout bounds a single engine invocation. Zero means no timeout,
	// matching the historical behavior of the tool.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// Config groups all audioconv configuration.
type Config struct {
	Engine  EngineConfig  `json:"engine" yaml:"engine"`
	Convert ConvertConfig `json:"convert" yaml:"convert"`
}
