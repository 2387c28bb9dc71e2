// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrUnavailable is returned by Detect when no usable engine binary exists.
var ErrUnavailable = errors.New("engine unavailable")

// Category names a class of engine failure, derived from stderr output.
type Category string

const (
	// CategoryCodec covers unsupported or missing codecs and muxers.
	CategoryCodec Category = "unsupported codec"
	// CategoryInput covers unreadable or corrupt input data.
	CategoryInput Category = "corrupt or unreadable input"
	// CategoryIO covers filesystem failures while writing output.
	CategoryIO Category = "output write failure"
	// CategoryUnknown is used when stderr matches no known pattern.
	CategoryUnknown Category = "engine failure"
)

// Pre-compiled patterns for classifying ffmpeg stderr into failure
// categories. Checked in order; the first match wins.
var (
	reCodec = regexp.MustCompile(
		`(?i)Unknown encoder|Encoder not found|` +
			`Could not find tag for codec|` +
			`codec not currently supported|` +
			`Unable to find a suitable output format|` +
			`Requested output format .* is not known`)

	reInput = regexp.MustCompile(
		`(?i)Invalid data found when processing input|` +
			`moov atom not found|` +
			`Header missing|` +
			`could not find codec parameters|` +
			`End of file|Truncat(ed|ing)`)

	reIO = regexp.MustCompile(
		`(?i)No space left on device|` +
			`Permission denied|` +
			`No such file or directory|` +
			`I/O error`)
)

// Classify maps engine stderr to a failure category.
func Classify(stderr string) Category {
	switch {
	case reCodec.MatchString(stderr):
		return CategoryCodec
	case reInput.MatchString(stderr):
		return CategoryInput
	case reIO.MatchString(stderr):
		return CategoryIO
	default:
		return CategoryUnknown
	}
}

// ConvertError reports a failed engine invocation with its classified
// category and the most relevant stderr line.
type ConvertError struct {
	Category Category
	Stderr   string
	Err      error
}

func (e *ConvertError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("%s: %v", e.Category, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Category, e.Stderr)
}

func (e *ConvertError) Unwrap() error { return e.Err }

// lastStderrLine returns the final non-empty stderr line, which for
// ffmpeg is almost always the actual cause.
func lastStderrLine(stderr string) string {
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}
