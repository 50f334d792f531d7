// Package config provides configuration management for podcast-downloader.
//
// This package handles:
//   - Loading and saving settings from TOML files
//   - Default configuration values
//   - Conversion to model.PathConfig for other packages
//
// # Default Settings
//
//	settings := config.DefaultSettings()
//	// Downloads to ./output/{channel}/{date}-{title}/
//	// No request timeout, no tagging, no playlist
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.toml")
//	// A missing file yields the defaults; unknown keys are rejected.
//
// # Example File
//
//	output_dir = "/srv/podcasts"
//	request_timeout = 300
//	modify_tags = true
//	create_playlist = true
//	playlist_format = "pls"
package config
