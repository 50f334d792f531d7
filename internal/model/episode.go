package model

import (
	"net/mail"
	"strings"
	"time"
)

// DefaultEpisodeTitle is used when an item has no title.
const DefaultEpisodeTitle = "unknown_item"

// Episode is a single feed item.
//
// Every field is optional; the empty string means the element or attribute
// was missing. Defaults are resolved when a Destination is built, not when
// the feed is parsed.
type Episode struct {
	// Title is the item title.
	Title string

	// EnclosureURL is the url attribute of the item's enclosure.
	// Empty means there is nothing to download.
	EnclosureURL string

	// EnclosureType is the MIME type declared on the enclosure.
	EnclosureType string

	// PubDate is the raw RFC-2822 publication date.
	PubDate string

	// Description is the item description, used for tag comments.
	Description string
}

// ResolvedTitle returns the title, or DefaultEpisodeTitle when absent.
func (e Episode) ResolvedTitle() string {
	if e.Title == "" {
		return DefaultEpisodeTitle
	}
	return e.Title
}

// HasEnclosure returns true if the episode has something to download.
func (e Episode) HasEnclosure() bool {
	return e.EnclosureURL != ""
}

// PublishedAt parses PubDate using RFC-2822 rules.
//
// The returned time keeps the offset written in the date, so the calendar
// day matches what the feed says rather than the local day.
func (e Episode) PublishedAt() (time.Time, bool) {
	return ParsePubDate(e.PubDate)
}

// zonelessLayouts are tried when a date has no zone, or a zone net/mail
// does not know such as the military letters ("Z"). The clock time is
// taken as UTC.
var zonelessLayouts = []string{
	"Mon, 2 Jan 2006 15:04:05",
	"Mon, 2 Jan 2006 15:04",
	"2 Jan 2006 15:04:05",
	"2 Jan 2006 15:04",
}

// ParsePubDate parses an RFC-2822 date. It returns false for empty or
// unparseable input.
func ParsePubDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	if t, err := mail.ParseDate(value); err == nil {
		return t, true
	}

	fields := strings.Fields(value)
	if n := len(fields); n > 0 && isZoneName(fields[n-1]) {
		fields = fields[:n-1]
	}
	stripped := strings.Join(fields, " ")
	for _, layout := range zonelessLayouts {
		if t, err := time.Parse(layout, stripped); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func isZoneName(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return s != ""
}
