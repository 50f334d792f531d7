package audio

import (
	"fmt"
	"strings"

	"github.com/handiism/podcast-downloader/internal/model"
)

// PlaylistFormat is re-exported from model so callers only import audio.
type PlaylistFormat = model.PlaylistFormat

const (
	FormatM3U = model.PlaylistFormatM3U
	FormatPLS = model.PlaylistFormatPLS
	FormatWPL = model.PlaylistFormatWPL
	FormatZPL = model.PlaylistFormatZPL
)

// PlaylistEntry is one episode in a channel playlist.
type PlaylistEntry struct {
	// Path is the episode file relative to the playlist file,
	// e.g. "2023-01-02_-Ep1/ep1.mp3". Always uses forward slashes.
	Path string

	// Title is the episode title shown by players.
	Title string
}

// Playlist is the content of a channel playlist.
type Playlist struct {
	Title   string
	Author  string
	Entries []PlaylistEntry
}

// PlaylistCreator generates playlist files in various formats.
//
// Example:
//
//	creator := NewPlaylistCreator(FormatM3U, true)
//	content := creator.CreatePlaylist(playlist)
//	os.WriteFile(model.PlaylistPath(channel, cfg), []byte(content), 0644)
//
//	// Result:
//	// #EXTM3U
//	// #EXTINF:-1,Author - Ep1
//	// 2023-01-02_-Ep1/ep1.mp3
type PlaylistCreator struct {
	format   PlaylistFormat
	extended bool // For M3U: include EXTINF lines
}

// NewPlaylistCreator creates a new PlaylistCreator.
//
// extended only applies to M3U and adds #EXTINF lines.
func NewPlaylistCreator(format PlaylistFormat, extended bool) *PlaylistCreator {
	return &PlaylistCreator{
		format:   format,
		extended: extended,
	}
}

// CreatePlaylist generates playlist content.
//
// Feeds do not carry reliable durations, so lengths are written as -1
// (unknown) where the format asks for one.
func (p *PlaylistCreator) CreatePlaylist(pl Playlist) string {
	switch p.format {
	case FormatPLS:
		return p.createPLS(pl)
	case FormatWPL:
		return createSMIL(pl, "<?wpl version=\"1.0\"?>", false)
	case FormatZPL:
		return createSMIL(pl, "<?zpl version=\"2.0\"?>", true)
	default:
		return p.createM3U(pl)
	}
}

func (p *PlaylistCreator) createM3U(pl Playlist) string {
	var sb strings.Builder

	if p.extended {
		sb.WriteString("#EXTM3U\n")
	}

	for _, entry := range pl.Entries {
		if p.extended {
			display := entry.Title
			if pl.Author != "" {
				display = pl.Author + " - " + entry.Title
			}
			sb.WriteString(fmt.Sprintf("#EXTINF:-1,%s\n", display))
		}
		sb.WriteString(entry.Path + "\n")
	}

	return sb.String()
}

func (p *PlaylistCreator) createPLS(pl Playlist) string {
	var sb strings.Builder

	sb.WriteString("[playlist]\n")

	for i, entry := range pl.Entries {
		idx := i + 1
		sb.WriteString(fmt.Sprintf("File%d=%s\n", idx, entry.Path))
		sb.WriteString(fmt.Sprintf("Title%d=%s\n", idx, entry.Title))
		sb.WriteString(fmt.Sprintf("Length%d=-1\n", idx))
	}

	sb.WriteString(fmt.Sprintf("NumberOfEntries=%d\n", len(pl.Entries)))
	sb.WriteString("Version=2\n")

	return sb.String()
}

// createSMIL generates the XML playlists used by Windows Media Player (WPL)
// and Zune (ZPL). ZPL adds per-track metadata attributes.
func createSMIL(pl Playlist, header string, withMetadata bool) string {
	var sb strings.Builder

	sb.WriteString(header + "\n")
	sb.WriteString("<smil>\n")
	sb.WriteString("  <head>\n")
	sb.WriteString(fmt.Sprintf("    <title>%s</title>\n", escapeXML(pl.Title)))
	if withMetadata {
		sb.WriteString("    <meta name=\"Generator\" content=\"podcast-downloader\"/>\n")
		sb.WriteString(fmt.Sprintf("    <meta name=\"ItemCount\" content=\"%d\"/>\n", len(pl.Entries)))
	}
	sb.WriteString("  </head>\n")
	sb.WriteString("  <body>\n")
	sb.WriteString("    <seq>\n")

	for _, entry := range pl.Entries {
		if withMetadata {
			sb.WriteString(fmt.Sprintf("      <media src=\"%s\" albumTitle=\"%s\" albumArtist=\"%s\" trackTitle=\"%s\"/>\n",
				escapeXML(entry.Path),
				escapeXML(pl.Title),
				escapeXML(pl.Author),
				escapeXML(entry.Title)))
		} else {
			sb.WriteString(fmt.Sprintf("      <media src=\"%s\"/>\n", escapeXML(entry.Path)))
		}
	}

	sb.WriteString("    </seq>\n")
	sb.WriteString("  </body>\n")
	sb.WriteString("</smil>\n")

	return sb.String()
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"\"", "&quot;",
	"'", "&apos;",
)

// escapeXML escapes special XML characters in a string.
func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}
