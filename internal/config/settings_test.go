package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/handiism/podcast-downloader/internal/model"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	settings, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if settings.OutputDir != DefaultOutputDir {
		t.Errorf("OutputDir = %q, want %q", settings.OutputDir, DefaultOutputDir)
	}
	if settings.Timeout() != 0 {
		t.Errorf("Timeout() = %v, want 0", settings.Timeout())
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
output_dir = "/srv/podcasts"
request_timeout = 1.5
create_playlist = true
playlist_format = "pls"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	settings, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if settings.OutputDir != "/srv/podcasts" {
		t.Errorf("OutputDir = %q", settings.OutputDir)
	}
	if settings.Timeout() != 1500*time.Millisecond {
		t.Errorf("Timeout() = %v, want 1.5s", settings.Timeout())
	}
	if !settings.CreatePlaylist {
		t.Error("CreatePlaylist = false, want true")
	}
	// Untouched keys keep their defaults.
	if !settings.M3UExtended {
		t.Error("M3UExtended lost its default")
	}
	if got := settings.ToPathConfig().PlaylistFormat; got != model.PlaylistFormatPLS {
		t.Errorf("PlaylistFormat = %v, want PLS", got)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", `output_dir = `},
		{"unknown key", `download_path = "x"`},
		{"bad playlist", `playlist_format = "xspf"`},
		{"negative timeout", `request_timeout = -1`},
		{"empty output", `output_dir = ""`},
		{"bad log format", `log_format = "xml"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected error but got none")
			}
		})
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	settings := DefaultSettings()
	settings.OutputDir = "/data/podcasts"
	settings.ModifyTags = true
	if err := settings.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.OutputDir != "/data/podcasts" || !loaded.ModifyTags {
		t.Errorf("loaded settings = %+v", loaded)
	}
}
