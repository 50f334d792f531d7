package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/handiism/podcast-downloader/internal/model"
	"github.com/pelletier/go-toml/v2"
)

// DefaultOutputDir is where episodes go when nothing else is configured.
const DefaultOutputDir = "output"

// Settings holds all configuration options.
type Settings struct {
	// Download settings
	OutputDir      string  `toml:"output_dir"`
	UserAgent      string  `toml:"user_agent"`
	RequestTimeout float64 `toml:"request_timeout"` // seconds, 0 = no timeout

	// Tag settings
	ModifyTags            bool `toml:"modify_tags"`
	SaveCoverArtInTags    bool `toml:"save_cover_art_in_tags"`
	CoverArtInTagsMaxSize int  `toml:"cover_art_in_tags_max_size"`

	// Playlist settings
	CreatePlaylist bool   `toml:"create_playlist"`
	PlaylistFormat string `toml:"playlist_format"` // m3u, pls, wpl, zpl
	M3UExtended    bool   `toml:"m3u_extended"`

	// Logging settings
	LogLevel  string `toml:"log_level"`  // debug, info, warn, error
	LogFormat string `toml:"log_format"` // console, json
}

// DefaultSettings returns settings with default values.
//
// The defaults reproduce a plain download: no tagging, no playlist and no
// request timeout.
func DefaultSettings() *Settings {
	return &Settings{
		OutputDir:      DefaultOutputDir,
		RequestTimeout: 0,

		ModifyTags:            false,
		SaveCoverArtInTags:    true,
		CoverArtInTagsMaxSize: 1000,

		CreatePlaylist: false,
		PlaylistFormat: "m3u",
		M3UExtended:    true,

		LogLevel:  "warn",
		LogFormat: "console",
	}
}

// Load reads settings from a TOML file. A missing file yields defaults.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultSettings(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	settings := DefaultSettings()
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(settings); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// Save writes settings to a TOML file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(s)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate reports the first invalid setting.
func (s *Settings) Validate() error {
	if strings.TrimSpace(s.OutputDir) == "" {
		return errors.New("config: output_dir must not be empty")
	}
	if s.RequestTimeout < 0 {
		return fmt.Errorf("config: request_timeout must be >= 0, got %v", s.RequestTimeout)
	}
	if s.CoverArtInTagsMaxSize < 0 {
		return fmt.Errorf("config: cover_art_in_tags_max_size must be >= 0, got %d", s.CoverArtInTagsMaxSize)
	}
	if _, ok := model.ParsePlaylistFormat(s.PlaylistFormat); !ok {
		return fmt.Errorf("config: unsupported playlist_format %q", s.PlaylistFormat)
	}
	switch strings.ToLower(s.LogFormat) {
	case "", "console", "json":
	default:
		return fmt.Errorf("config: unsupported log_format %q", s.LogFormat)
	}
	return nil
}

// Timeout returns RequestTimeout as a duration.
func (s *Settings) Timeout() time.Duration {
	return time.Duration(s.RequestTimeout * float64(time.Second))
}

// ToPathConfig converts settings to PathConfig.
func (s *Settings) ToPathConfig() *model.PathConfig {
	pf, _ := model.ParsePlaylistFormat(s.PlaylistFormat)
	return &model.PathConfig{
		OutputDir:      s.OutputDir,
		PlaylistFormat: pf,
	}
}
