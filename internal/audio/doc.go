// Package audio provides post-download services for episode files:
// ID3 tag writing and channel playlist generation.
//
// # ID3 Tagging
//
// Use the Tagger to write podcast tags to MP3 episodes:
//
//	tagger := audio.NewTagger(audio.DefaultTagConfig())
//	err := tagger.SaveTags(dest.Path, episode, feed, artworkJPEG)
//
// The tagger writes:
//   - Channel author (TPE1, TPE2) and channel title (TALB)
//   - Episode title (TIT2) and publication date (TYER, TDRC)
//   - Genre "Podcast" (TCON)
//   - Episode description (COMM)
//   - Channel artwork (APIC front cover)
//
// Files that are not MP3 are never touched.
//
// # Playlist Generation
//
//	creator := audio.NewPlaylistCreator(audio.FormatM3U, true)
//	content := creator.CreatePlaylist(audio.Playlist{Title: "My Show", Entries: entries})
//
// Supported formats:
//   - M3U (with optional extended info)
//   - PLS
//   - WPL (Windows Media Player)
//   - ZPL (Zune Media Player)
package audio
