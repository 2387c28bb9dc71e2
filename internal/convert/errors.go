// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"errors"
	"fmt"
)

// Kind enumerates the failure classes a conversion run can end in. Every
// failure path through Run produces exactly one of these; the CLI layer
// switches on the kind for exit-code and guidance handling instead of
// inspecting message text.
type Kind int

const (
	// KindUnexpected is the catch-all for failures outside the known
	// taxonomy (e.g. renaming the finished file into place).
	KindUnexpected Kind = iota

	// KindEngineUnavailable means no usable FFmpeg binary was found.
	KindEngineUnavailable

	// KindInputNotFound means the input path does not name a regular file.
	KindInputNotFound

	// KindUnsupportedFormat means the requested format is outside the
	// supported set.
	KindUnsupportedFormat

	// KindDirectoryCreate means the destination directory could not be
	// created.
	KindDirectoryCreate

	// KindConversionFailed means the engine ran and failed.
	KindConversionFailed
)

// Error is a conversion failure carrying its kind and, when present, the
// underlying cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func failf(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

// KindOf extracts the failure kind from err. A nil or foreign error maps
// to KindUnexpected.
func KindOf(err error) Kind {
	var cerr *Error
	if errors.As(err, &cerr) {
		return cerr.Kind
	}
	return KindUnexpected
}
