package model

import (
	"fmt"
	"path/filepath"
	"strings"

	ioutils "github.com/handiism/podcast-downloader/internal/io"
)

// PathConfig holds path settings for downloaded episodes.
//
// Example configuration:
//
//	cfg := &PathConfig{
//	    OutputDir:      "output",
//	    PlaylistFormat: PlaylistFormatM3U,
//	}
type PathConfig struct {
	// OutputDir is the base directory that receives one folder per channel.
	OutputDir string

	// PlaylistFormat determines the channel playlist type and extension.
	PlaylistFormat PlaylistFormat
}

// Destination is where an episode's enclosure is saved.
//
// The layout is:
//
//	{OutputDir}/{channel title}/{date prefix}-{episode title}/{file name}
type Destination struct {
	// Dir is the episode directory.
	Dir string

	// FileName is the last path segment of the enclosure URL.
	FileName string

	// Path is Dir joined with FileName.
	Path string
}

// NewDestination derives the destination for an episode.
//
// It returns false when the episode has no enclosure URL or the URL has no
// usable file name. The function is pure; directories are created by the
// caller right before the download.
//
// Example:
//
//	ep := Episode{Title: "Ep1", PubDate: "Mon, 02 Jan 2023 10:00:00 GMT",
//	    EnclosureURL: "https://cdn.example.com/a/ep1.mp3?x=1"}
//	dest, _ := NewDestination(ep, "My Show", &PathConfig{OutputDir: "output"})
//	// dest.Path = "output/My Show/2023-01-02_-Ep1/ep1.mp3"
func NewDestination(ep Episode, channelTitle string, cfg *PathConfig) (Destination, bool) {
	if !ep.HasEnclosure() {
		return Destination{}, false
	}

	fileName := FileNameFromURL(ep.EnclosureURL)
	if fileName == "" {
		return Destination{}, false
	}
	fileName = ioutils.SanitizeFileName(fileName)

	if channelTitle == "" {
		channelTitle = DefaultChannelTitle
	}

	dir := filepath.Join(
		cfg.OutputDir,
		ioutils.SanitizeFileName(channelTitle),
		ioutils.SanitizeFileName(DatedTitle(ep)),
	)

	return Destination{
		Dir:      dir,
		FileName: fileName,
		Path:     filepath.Join(dir, fileName),
	}, true
}

// DatedTitle returns "{date prefix}-{title}".
//
// The separator is always written, so an episode without a usable date
// gets a leading "-".
func DatedTitle(ep Episode) string {
	return DatePrefix(ep.PubDate) + "-" + ep.ResolvedTitle()
}

// DatePrefix returns "YYYY-MM-DD_" for a valid RFC-2822 date and "" otherwise.
func DatePrefix(pubDate string) string {
	t, ok := ParsePubDate(pubDate)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d_", t.Year(), int(t.Month()), t.Day())
}

// FileNameFromURL returns the last segment of the URL path, exactly as it
// is written in the URL: percent escapes are kept and the query string and
// fragment are ignored. It returns "" when the path is empty, ends in a
// slash, or ends in "." or "..".
func FileNameFromURL(raw string) string {
	p := raw
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	p = stripAuthority(p)

	name := p[strings.LastIndexByte(p, '/')+1:]
	switch name {
	case ".", "..":
		return ""
	}
	return name
}

// stripAuthority drops a leading "scheme:" and "//host" from a URL
// reference, leaving its path.
func stripAuthority(ref string) string {
	if i := strings.IndexByte(ref, ':'); i > 0 && isScheme(ref[:i]) {
		ref = ref[i+1:]
	}
	if rest, ok := strings.CutPrefix(ref, "//"); ok {
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			return rest[i:]
		}
		return ""
	}
	return ref
}

func isScheme(s string) bool {
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '+' || r == '-' || r == '.'):
		default:
			return false
		}
	}
	return true
}

// PlaylistPath returns the channel playlist location:
// {OutputDir}/{channel title}/{channel title}{ext}.
func PlaylistPath(channelTitle string, cfg *PathConfig) string {
	if channelTitle == "" {
		channelTitle = DefaultChannelTitle
	}
	name := ioutils.SanitizeFileName(channelTitle)
	return filepath.Join(cfg.OutputDir, name, name+cfg.PlaylistFormat.Extension())
}
