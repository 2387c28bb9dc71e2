// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/audioconv/pkg/types"
)

// mockExecutor records calls and returns configured responses.
type mockExecutor struct {
	availableBins map[string]bool   // binary -> whether LookPath succeeds
	localFiles    map[string]bool   // path -> whether Stat finds a regular file
	runnableCmds  map[string]bool   // "bin arg1 arg2" -> whether RunSilent succeeds
	outputs       map[string]string // "bin arg1 arg2" -> RunOutput stdout
	captureStderr string
	captureErr    error
	capturedArgs  []string
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.availableBins[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (m *mockExecutor) Stat(path string) (os.FileInfo, error) {
	if m.localFiles[path] {
		return fakeFileInfo{name: path}, nil
	}
	return nil, fs.ErrNotExist
}

func (m *mockExecutor) RunSilent(name string, args ...string) error {
	key := name + " " + strings.Join(args, " ")
	if m.runnableCmds[key] {
		return nil
	}
	return errors.New("command failed: " + key)
}

func (m *mockExecutor) RunOutput(name string, args ...string) (string, error) {
	key := name + " " + strings.Join(args, " ")
	if out, ok := m.outputs[key]; ok {
		return out, nil
	}
	return "", errors.New("command failed: " + key)
}

func (m *mockExecutor) RunCapture(_ context.Context, name string, args []string) (string, error) {
	m.capturedArgs = append([]string{name}, args...)
	return m.captureStderr, m.captureErr
}

type fakeFileInfo struct{ name string }

func (f fakeFileInfo) Name() string       { return f.name }
func (f fakeFileInfo) Size() int64        { return 1 }
func (f fakeFileInfo) Mode() fs.FileMode  { return 0o755 }
func (f fakeFileInfo) ModTime() time.Time { return time.Time{} }
func (f fakeFileInfo) IsDir() bool        { return false }
func (f fakeFileInfo) Sys() any           { return nil }

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		cfg      types.EngineConfig
		exec     *mockExecutor
		wantName string
		wantErr  bool
	}{
		{
			name: "ffmpeg on PATH",
			exec: &mockExecutor{
				availableBins: map[string]bool{"ffmpeg": true},
				runnableCmds:  map[string]bool{"ffmpeg -version": true},
			},
			wantName: "ffmpeg",
		},
		{
			name: "PATH miss falls back to local ffmpeg.exe",
			exec: &mockExecutor{
				localFiles: map[string]bool{"ffmpeg.exe": true},
			},
			wantName: "./ffmpeg.exe",
		},
		{
			name: "PATH miss falls back to local ffmpeg",
			exec: &mockExecutor{
				localFiles: map[string]bool{"ffmpeg": true},
			},
			wantName: "./ffmpeg",
		},
		{
			name: "on PATH but version probe fails, local copy wins",
			exec: &mockExecutor{
				availableBins: map[string]bool{"ffmpeg": true},
				localFiles:    map[string]bool{"ffmpeg": true},
			},
			wantName: "./ffmpeg",
		},
		{
			name:    "nothing available",
			exec:    &mockExecutor{},
			wantErr: true,
		},
		{
			name: "configured binary override",
			cfg:  types.EngineConfig{Binary: "/opt/ffmpeg/bin/ffmpeg"},
			exec: &mockExecutor{
				runnableCmds: map[string]bool{"/opt/ffmpeg/bin/ffmpeg -version": true},
			},
			wantName: "/opt/ffmpeg/bin/ffmpeg",
		},
		{
			name:    "configured binary not usable",
			cfg:     types.EngineConfig{Binary: "/opt/missing/ffmpeg"},
			exec:    &mockExecutor{},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng, err := detect(tt.cfg, tt.exec)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.Is(err, ErrUnavailable) {
					t.Errorf("error should wrap ErrUnavailable, got: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if eng.Name() != tt.wantName {
				t.Errorf("got engine %q, want %q", eng.Name(), tt.wantName)
			}
		})
	}
}

func TestVersion(t *testing.T) {
	exec := &mockExecutor{
		outputs: map[string]string{
			"ffmpeg -version": "ffmpeg version 7.1 Copyright (c) 2000-2024\nbuilt with gcc\n",
		},
	}
	eng := &ffmpeg{bin: "ffmpeg", exec: exec}

	got, err := eng.Version()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "ffmpeg version 7.1 Copyright (c) 2000-2024"
	if got != want {
		t.Errorf("version = %q, want %q", got, want)
	}
}

func TestConvert_ArgumentOrder(t *testing.T) {
	exec := &mockExecutor{}
	eng := &ffmpeg{bin: "ffmpeg", extraArgs: []string{"-map_metadata", "0"}, exec: exec}

	err := eng.Convert(context.Background(), "in.wav", []string{"-c:a", "libmp3lame"}, "out/in.mp3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"ffmpeg", "-y", "-hide_banner", "-i", "in.wav", "-c:a", "libmp3lame", "-map_metadata", "0", "out/in.mp3"}
	if len(exec.capturedArgs) != len(want) {
		t.Fatalf("args = %v, want %v", exec.capturedArgs, want)
	}
	for i := range want {
		if exec.capturedArgs[i] != want[i] {
			t.Errorf("arg[%d] = %q, want %q", i, exec.capturedArgs[i], want[i])
		}
	}
}

func TestConvert_FailureClassification(t *testing.T) {
	tests := []struct {
		name         string
		stderr       string
		wantCategory Category
		wantInMsg    string
	}{
		{
			name:         "unknown encoder",
			stderr:       "Stream mapping:\nUnknown encoder 'wmav9'\n",
			wantCategory: CategoryCodec,
			wantInMsg:    "Unknown encoder",
		},
		{
			name:         "corrupt input",
			stderr:       "in.mp3: Invalid data found when processing input\n",
			wantCategory: CategoryInput,
			wantInMsg:    "Invalid data",
		},
		{
			name:         "disk full",
			stderr:       "av_interleaved_write_frame(): No space left on device\n",
			wantCategory: CategoryIO,
			wantInMsg:    "No space left",
		},
		{
			name:         "unrecognized stderr",
			stderr:       "something exotic happened\n",
			wantCategory: CategoryUnknown,
			wantInMsg:    "something exotic",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &mockExecutor{
				captureStderr: tt.stderr,
				captureErr:    errors.New("exit status 1"),
			}
			eng := &ffmpeg{bin: "ffmpeg", exec: exec}

			err := eng.Convert(context.Background(), "in.wav", nil, "out.mp3")
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var cerr *ConvertError
			if !errors.As(err, &cerr) {
				t.Fatalf("expected *ConvertError, got %T: %v", err, err)
			}
			if cerr.Category != tt.wantCategory {
				t.Errorf("category = %q, want %q", cerr.Category, tt.wantCategory)
			}
			if !strings.Contains(err.Error(), tt.wantInMsg) {
				t.Errorf("error %q should contain %q", err.Error(), tt.wantInMsg)
			}
		})
	}
}

func TestConvert_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &mockExecutor{captureErr: errors.New("signal: killed")}
	eng := &ffmpeg{bin: "ffmpeg", exec: exec}

	err := eng.Convert(ctx, "in.wav", nil, "out.mp3")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got: %v", err)
	}
}

func TestClassify(t *testing.T) {
	if got := Classify("Unable to find a suitable output format for 'out.xyz'"); got != CategoryCodec {
		t.Errorf("got %q, want %q", got, CategoryCodec)
	}
	if got := Classify("out/sub: Permission denied"); got != CategoryIO {
		t.Errorf("got %q, want %q", got, CategoryIO)
	}
}
