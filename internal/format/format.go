// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package format defines the set of audio formats audioconv will write
// and the FFmpeg encoder arguments for each. The set is a conservative
// filter: the engine itself supports far more, but these are the formats
// the tool commits to producing reliably.
package format

import "strings"

// Spec describes one supported output format and how the engine encodes it.
type Spec struct {
	// Name is the canonical lowercase format token, which is also the
	// file extension of the output.
	Name string `yaml:"name"`

	// Codec is the FFmpeg audio encoder passed as -c:a. Empty lets the
	// engine pick its default encoder for the container.
	Codec string `yaml:"codec,omitempty"`

	// Mux is the FFmpeg container passed as -f. It is always set: output
	// is written to a temporary file first, so the engine cannot infer
	// the container from the final extension.
	Mux string `yaml:"mux"`

	// Lossy reports whether the encoder discards signal, in which case a
	// configured bitrate applies.
	Lossy bool `yaml:"lossy"`
}

// specs is the fixed, ordered format table. The order is the order shown
// in help and error text. Static for the process lifetime.
var specs = []Spec{
	{Name: "mp3", Codec: "libmp3lame", Mux: "mp3", Lossy: true},
	{Name: "wav", Codec: "pcm_s16le", Mux: "wav"},
	{Name: "ogg", Codec: "libvorbis", Mux: "ogg", Lossy: true},
	{Name: "m4a", Codec: "aac", Mux: "ipod", Lossy: true},
	{Name: "flac", Codec: "flac", Mux: "flac"},
	{Name: "aac", Codec: "aac", Mux: "adts", Lossy: true},
	{Name: "wma", Codec: "wmav2", Mux: "asf", Lossy: true},
}

var byName = func() map[string]Spec {
	m := make(map[string]Spec, len(specs))
	for _, s := range specs {
		m[s.Name] = s
	}
	return m
}()

// Valid reports whether token names a supported output format. The check
// is case-insensitive; anything outside the table, including the empty
// string, is invalid.
func Valid(token string) bool {
	_, ok := byName[strings.ToLower(token)]
	return ok
}

// Lookup returns the Spec for token, case-insensitively.
func Lookup(token string) (Spec, bool) {
	s, ok := byName[strings.ToLower(token)]
	return s, ok
}

// Supported returns the ordered list of supported format tokens.
func Supported() []string {
	names := make([]string, len(specs))
	for i, s := range specs {
		names[i] = s.Name
	}
	return names
}

// SupportedList returns the supported tokens joined for diagnostic text,
// e.g. "mp3, wav, ogg, m4a, flac, aac, wma".
func SupportedList() string {
	return strings.Join(Supported(), ", ")
}

// Table returns a copy of the full format table, in display order.
func Table() []Spec {
	out := make([]Spec, len(specs))
	copy(out, specs)
	return out
}

// EncodeArgs returns the FFmpeg arguments selecting this format's encoder
// and container. bitrate applies only to lossy formats; empty means the
// encoder default.
func (s Spec) EncodeArgs(bitrate string) []string {
	args := []string{"-c:a", s.Codec}
	if s.Lossy && bitrate != "" {
		args = append(args, "-b:a", bitrate)
	}
	return append(args, "-f", s.Mux)
}
