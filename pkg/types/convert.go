// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data types used across audioconv stages.
package types

// ConversionRequest describes a single conversion: one input file, one
// target format, and an optional output path. Paths are slash-normalized
// at the CLI boundary before a request is constructed; the request is not
// mutated afterwards.
type ConversionRequest struct {
	// Input is the path to the source audio file.
	Input string `json:"input" yaml:"input"`

	// OutputFormat is the requested target format token (e.g. "mp3").
	OutputFormat string `json:"output_format" yaml:"output_format"`

	// Output is the optional output path argument. It names either an
	// existing directory or a file-like path whose directory portion is
	// honored; empty means "next to the current working directory".
	Output string `json:"output,omitempty" yaml:"output,omitempty"`
}

// Result is the terminal artifact of one conversion run. It is reported
// to the user and discarded; nothing is persisted between invocations.
type Result struct {
	// OutputPath is the final path of the converted file.
	OutputPath string `json:"output_path" yaml:"output_path"`

	// Engine is the name of the engine binary that performed the work.
	Engine string `json:"engine" yaml:"engine"`
}
