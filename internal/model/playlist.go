package model

// PlaylistFormat represents supported playlist file formats.
type PlaylistFormat int

const (
	// PlaylistFormatM3U creates .m3u playlist files (most widely supported).
	PlaylistFormatM3U PlaylistFormat = iota

	// PlaylistFormatPLS creates .pls playlist files (used by Winamp).
	PlaylistFormatPLS

	// PlaylistFormatWPL creates .wpl playlist files (Windows Media Player).
	PlaylistFormatWPL

	// PlaylistFormatZPL creates .zpl playlist files (Zune Media Player).
	PlaylistFormatZPL
)

// ParsePlaylistFormat maps a config value (m3u, pls, wpl, zpl) to a
// PlaylistFormat. The second result is false for unknown values.
func ParsePlaylistFormat(value string) (PlaylistFormat, bool) {
	switch value {
	case "m3u", "":
		return PlaylistFormatM3U, true
	case "pls":
		return PlaylistFormatPLS, true
	case "wpl":
		return PlaylistFormatWPL, true
	case "zpl":
		return PlaylistFormatZPL, true
	default:
		return PlaylistFormatM3U, false
	}
}

// Extension returns the file extension for the playlist format, including the dot.
func (pf PlaylistFormat) Extension() string {
	switch pf {
	case PlaylistFormatPLS:
		return ".pls"
	case PlaylistFormatWPL:
		return ".wpl"
	case PlaylistFormatZPL:
		return ".zpl"
	default:
		return ".m3u"
	}
}
