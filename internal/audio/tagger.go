package audio

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2"
	"github.com/handiism/podcast-downloader/internal/model"
)

// ErrNotTaggable is returned by SaveTags for files that are not MP3.
var ErrNotTaggable = errors.New("not an mp3 file")

// podcastGenre is written to TCON for every episode.
const podcastGenre = "Podcast"

// TagEditAction defines how to handle individual ID3 tags.
type TagEditAction int

const (
	// TagEmpty clears the tag value.
	TagEmpty TagEditAction = iota

	// TagModify updates the tag with the value from the feed.
	TagModify

	// TagDoNotModify leaves the existing tag value unchanged.
	TagDoNotModify
)

// TagConfig holds tagging configuration for each ID3 field.
type TagConfig struct {
	// ModifyTags is a master switch. If false, no text frames are modified.
	ModifyTags bool

	// Artist controls TPE1 and TPE2 (channel author).
	Artist TagEditAction

	// Album controls TALB (channel title).
	Album TagEditAction

	// Title controls TIT2 (episode title).
	Title TagEditAction

	// Date controls TYER and TDRC (publication date).
	Date TagEditAction

	// Genre controls TCON, set to "Podcast".
	Genre TagEditAction

	// Comments controls COMM (episode description).
	Comments TagEditAction
}

// DefaultTagConfig returns the default tag configuration: every frame is
// taken from the feed.
func DefaultTagConfig() *TagConfig {
	return &TagConfig{
		ModifyTags: true,
		Artist:     TagModify,
		Album:      TagModify,
		Title:      TagModify,
		Date:       TagModify,
		Genre:      TagModify,
		Comments:   TagModify,
	}
}

// Tagger writes ID3 tags to downloaded MP3 episodes.
//
// Example:
//
//	tagger := NewTagger(DefaultTagConfig())
//	err := tagger.SaveTags(dest.Path, episode, feed, artworkBytes)
type Tagger struct {
	config *TagConfig
}

// NewTagger creates a new Tagger with the given configuration.
//
// If config is nil, DefaultTagConfig() is used.
func NewTagger(config *TagConfig) *Tagger {
	if config == nil {
		config = DefaultTagConfig()
	}
	return &Tagger{config: config}
}

// CanTag reports whether path looks like an MP3 file.
func CanTag(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".mp3")
}

// SaveTags writes ID3 tags for ep to the file at path.
//
// Channel metadata comes from f. artwork, if non nil, must be JPEG bytes
// and replaces any embedded front cover. Files without an .mp3 extension
// are left alone and ErrNotTaggable is returned.
func (t *Tagger) SaveTags(path string, ep model.Episode, f *model.Feed, artwork []byte) error {
	if !CanTag(path) {
		return ErrNotTaggable
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		tag = id3v2.NewEmptyTag()
	}
	defer tag.Close()

	if t.config.ModifyTags {
		t.updateTextFrames(tag, ep, f)
	}

	if artwork != nil {
		updateArtwork(tag, artwork)
	}

	return tag.Save()
}

// updateTextFrames updates text-based ID3 frames based on configuration.
func (t *Tagger) updateTextFrames(tag *id3v2.Tag, ep model.Episode, f *model.Feed) {
	switch t.config.Artist {
	case TagEmpty:
		tag.SetArtist("")
		tag.DeleteFrames("TPE2")
	case TagModify:
		if f.Author != "" {
			tag.SetArtist(f.Author)
			tag.AddTextFrame("TPE2", id3v2.EncodingUTF8, f.Author)
		}
	}

	switch t.config.Album {
	case TagEmpty:
		tag.SetAlbum("")
	case TagModify:
		tag.SetAlbum(f.ResolvedTitle())
	}

	switch t.config.Title {
	case TagEmpty:
		tag.SetTitle("")
	case TagModify:
		tag.SetTitle(ep.ResolvedTitle())
	}

	switch t.config.Date {
	case TagEmpty:
		tag.DeleteFrames("TYER")
		tag.DeleteFrames("TDRC")
	case TagModify:
		if published, ok := ep.PublishedAt(); ok {
			tag.AddTextFrame("TYER", id3v2.EncodingUTF8, published.Format("2006"))
			tag.AddTextFrame("TDRC", id3v2.EncodingUTF8, published.Format("2006-01-02"))
		}
	}

	switch t.config.Genre {
	case TagEmpty:
		tag.SetGenre("")
	case TagModify:
		tag.SetGenre(podcastGenre)
	}

	switch t.config.Comments {
	case TagEmpty:
		tag.DeleteFrames(tag.CommonID("Comments"))
	case TagModify:
		if ep.Description != "" {
			tag.DeleteFrames(tag.CommonID("Comments"))
			tag.AddCommentFrame(id3v2.CommentFrame{
				Encoding:    id3v2.EncodingUTF8,
				Language:    "eng",
				Description: "",
				Text:        ep.Description,
			})
		}
	}
}

// updateArtwork embeds cover art as the front cover picture.
func updateArtwork(tag *id3v2.Tag, artwork []byte) {
	tag.DeleteFrames(tag.CommonID("Attached picture"))

	tag.AddAttachedPicture(id3v2.PictureFrame{
		Encoding:    id3v2.EncodingUTF8,
		MimeType:    "image/jpeg",
		PictureType: id3v2.PTFrontCover,
		Description: "Cover",
		Picture:     artwork,
	})
}
