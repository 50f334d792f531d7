package model

import "iter"

// DefaultChannelTitle is used when a feed has no channel title.
const DefaultChannelTitle = "unknown_channel"

// Feed represents a parsed podcast feed.
//
// Episodes is a lazy sequence over the parsed document. It yields episodes
// in document order and may be ranged over more than once.
//
// Example:
//
//	for ep := range feed.Episodes {
//	    fmt.Println(ep.ResolvedTitle())
//	}
type Feed struct {
	// Title is the channel title. Empty means the feed had none.
	Title string

	// Author is the channel author (itunes:author or managingEditor).
	Author string

	// ImageURL is the channel artwork URL, if any.
	ImageURL string

	// Episodes yields every item found anywhere below the document root.
	Episodes iter.Seq[Episode]
}

// ResolvedTitle returns the channel title, or DefaultChannelTitle when absent.
func (f *Feed) ResolvedTitle() string {
	if f.Title == "" {
		return DefaultChannelTitle
	}
	return f.Title
}

// HasArtwork returns true if the channel declares artwork.
func (f *Feed) HasArtwork() bool {
	return f.ImageURL != ""
}

// CountEpisodes ranges over the episode sequence once and returns its length.
func (f *Feed) CountEpisodes() int {
	if f.Episodes == nil {
		return 0
	}
	n := 0
	for range f.Episodes {
		n++
	}
	return n
}
