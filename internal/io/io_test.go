package ioutils

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		input   string
		posix   string
		windows string
	}{
		{"My Show", "My Show", "My Show"},
		{"2023-01-02_-Ep1", "2023-01-02_-Ep1", "2023-01-02_-Ep1"},
		{"-unknown_item", "-unknown_item", "-unknown_item"},
		{"Episode 1/2", "Episode 1_2", "Episode 1_2"},
		{"News: Daily", "News: Daily", "News_ Daily"},
		{"a\\b", "a\\b", "a_b"},
		{"what?*", "what?*", "what__"},
		{"nul\x00byte", "nul_byte", "nul_byte"},
		{"trailing dots...", "trailing dots...", "trailing dots"},
		{"multiple   spaces", "multiple   spaces", "multiple spaces"},
		{".", "_", "_"},
		{"..", "_", "_"},
		{"", "_", "_"},
		{"Café", "Café", "Café"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			want := tt.posix
			if runtime.GOOS == "windows" {
				want = tt.windows
			}
			if got := SanitizeFileName(tt.input); got != want {
				t.Errorf("SanitizeFileName(%q) = %q, want %q", tt.input, got, want)
			}
		})
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ep1.mp3")

	if FileExists(path) {
		t.Fatal("FileExists() = true before the file was written")
	}
	if err := WriteFile(context.Background(), path, []byte("audio")); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if !FileExists(path) {
		t.Fatal("FileExists() = false after the file was written")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "audio" {
		t.Errorf("file content = %q, want %q", data, "audio")
	}
}

func TestWriteFile_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path := filepath.Join(t.TempDir(), "ep1.mp3")
	if err := WriteFile(ctx, path, []byte("audio")); err == nil {
		t.Fatal("expected error for cancelled context")
	}
	if FileExists(path) {
		t.Error("file should not be written when the context is cancelled")
	}
}

func TestEnsureDir_Idempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "My Show", "2023-01-02_-Ep1")
	for i := 0; i < 2; i++ {
		if err := EnsureDir(dir); err != nil {
			t.Fatalf("EnsureDir() call %d error = %v", i+1, err)
		}
	}
}

func TestImageService_PrepareCoverArt(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 400, 200))
	for x := 0; x < 400; x++ {
		for y := 0; y < 200; y++ {
			src.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatalf("png.Encode() error = %v", err)
	}

	svc := NewImageService()
	out, err := svc.PrepareCoverArt(context.Background(), buf.Bytes(), 100)
	if err != nil {
		t.Fatalf("PrepareCoverArt() error = %v", err)
	}

	img, format, err := image.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if format != "jpeg" {
		t.Errorf("format = %q, want jpeg", format)
	}
	if got := img.Bounds().Dx(); got != 100 {
		t.Errorf("width = %d, want 100", got)
	}
	if got := img.Bounds().Dy(); got != 50 {
		t.Errorf("height = %d, want 50", got)
	}
}

func TestImageService_PrepareCoverArt_InvalidData(t *testing.T) {
	svc := NewImageService()
	if _, err := svc.PrepareCoverArt(context.Background(), []byte("not an image"), 100); err == nil {
		t.Fatal("expected error for invalid image data")
	}
}
