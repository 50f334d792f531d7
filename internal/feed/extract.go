package feed

import (
	"iter"
	"strings"

	"github.com/handiism/podcast-downloader/internal/model"
)

// ITunesNamespace is the namespace of the iTunes podcast extensions.
const ITunesNamespace = "http://www.itunes.com/dtds/podcast-1.0.dtd"

// Extract builds a Feed from a parsed document.
//
// The channel title is read from "channel/title" below the root element.
// Episodes are every "item" element anywhere below the root, not only the
// direct children of the channel. Missing elements leave the matching
// Episode field empty.
func Extract(root *Node) *model.Feed {
	channel := root.Child("channel")

	return &model.Feed{
		Title:    root.Find("channel/title").textOrEmpty(),
		Author:   channelAuthor(channel),
		ImageURL: channelImage(channel),
		Episodes: episodes(root),
	}
}

// Load is LoadFile followed by Extract.
func Load(path string) (*model.Feed, error) {
	root, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return Extract(root), nil
}

func episodes(root *Node) iter.Seq[model.Episode] {
	return func(yield func(model.Episode) bool) {
		for item := range root.Descendants("item") {
			if !yield(episodeFromItem(item)) {
				return
			}
		}
	}
}

func episodeFromItem(item *Node) model.Episode {
	enclosure := item.Child("enclosure")
	return model.Episode{
		Title:         item.ChildText("title"),
		EnclosureURL:  strings.TrimSpace(enclosure.Attr("url")),
		EnclosureType: enclosure.Attr("type"),
		PubDate:       item.ChildText("pubDate"),
		Description:   item.ChildText("description"),
	}
}

func channelAuthor(channel *Node) string {
	if author := channel.ChildNS(ITunesNamespace, "author").textOrEmpty(); author != "" {
		return author
	}
	return channel.Child("managingEditor").textOrEmpty()
}

func channelImage(channel *Node) string {
	if href := channel.ChildNS(ITunesNamespace, "image").Attr("href"); href != "" {
		return href
	}
	if img := channel.Child("image"); img != nil {
		return img.ChildText("url")
	}
	return ""
}

func (n *Node) textOrEmpty() string {
	if n == nil {
		return ""
	}
	return n.Text
}
