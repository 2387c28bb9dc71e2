// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resolve derives the output path for a conversion from the input
// path, the requested format, and the optional output argument.
package resolve

import (
	"os"
	"path"
	"strings"
)

// Output is the fully resolved destination of a conversion: a directory
// (possibly empty, meaning the working directory) and a file name. It is
// computed once per request and discarded after the conversion call.
type Output struct {
	Dir      string
	Filename string
}

// Path joins the directory and file name into the final output path.
func (o Output) Path() string {
	if o.Dir == "" {
		return o.Filename
	}
	return path.Join(o.Dir, o.Filename)
}

// NormalizeSlashes converts backslash separators to forward slashes. It is
// applied exactly once, at the CLI boundary, so all subsequent path logic
// sees one separator style regardless of platform.
func NormalizeSlashes(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

// Stem returns the base name of p with its extension removed.
func Stem(p string) string {
	base := path.Base(p)
	return strings.TrimSuffix(base, path.Ext(base))
}

// OutputFor resolves the destination for converting inputPath into
// outputFormat. The resolved file name is always <input stem>.<format>:
//
//   - empty outputArg targets the working directory;
//   - an outputArg naming an existing directory targets that directory;
//   - any other outputArg contributes only its directory portion — a file
//     name supplied there is discarded. Callers passing --output foo.mp3
//     get <stem>.mp3 in foo's directory, not foo.mp3. This matches the
//     tool's historical behavior and must not be changed without a
//     compatibility decision.
//
// OutputFor never fails; a malformed outputArg surfaces later as a
// directory-creation or engine error.
func OutputFor(inputPath, outputFormat, outputArg string) Output {
	filename := Stem(inputPath) + "." + strings.ToLower(outputFormat)

	if outputArg == "" {
		return Output{Filename: filename}
	}
	if info, err := os.Stat(outputArg); err == nil && info.IsDir() {
		return Output{Dir: outputArg, Filename: filename}
	}
	dir := path.Dir(outputArg)
	if dir == "." {
		dir = ""
	}
	return Output{Dir: dir, Filename: filename}
}
