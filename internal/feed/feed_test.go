package feed

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/handiism/podcast-downloader/internal/model"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:itunes="http://www.itunes.com/dtds/podcast-1.0.dtd">
  <channel>
    <title>My Show</title>
    <itunes:author>Jane Host</itunes:author>
    <itunes:image href="https://cdn.example.com/cover.png"/>
    <item>
      <itunes:title>Namespaced title is ignored</itunes:title>
      <title>Ep1</title>
      <pubDate>Mon, 02 Jan 2023 10:00:00 GMT</pubDate>
      <enclosure url="https://cdn.example.com/a/ep1.mp3?x=1" type="audio/mpeg" length="1"/>
      <description><![CDATA[First <b>episode</b>]]></description>
    </item>
    <item>
      <title>No enclosure</title>
    </item>
    <archive>
      <item>
        <title>Nested</title>
        <enclosure url="https://cdn.example.com/old.mp3"/>
      </item>
    </archive>
    <item/>
  </channel>
</rss>`

func collect(t *testing.T, f *model.Feed) []model.Episode {
	t.Helper()
	var out []model.Episode
	for ep := range f.Episodes {
		out = append(out, ep)
	}
	return out
}

func TestExtract(t *testing.T) {
	root, err := Parse(strings.NewReader(sampleFeed))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	f := Extract(root)
	if f.Title != "My Show" {
		t.Errorf("Title = %q, want %q", f.Title, "My Show")
	}
	if f.Author != "Jane Host" {
		t.Errorf("Author = %q, want %q", f.Author, "Jane Host")
	}
	if f.ImageURL != "https://cdn.example.com/cover.png" {
		t.Errorf("ImageURL = %q", f.ImageURL)
	}

	episodes := collect(t, f)
	if len(episodes) != 4 {
		t.Fatalf("got %d episodes, want 4", len(episodes))
	}

	first := episodes[0]
	if first.Title != "Ep1" {
		t.Errorf("Title = %q, want %q", first.Title, "Ep1")
	}
	if first.EnclosureURL != "https://cdn.example.com/a/ep1.mp3?x=1" {
		t.Errorf("EnclosureURL = %q", first.EnclosureURL)
	}
	if first.EnclosureType != "audio/mpeg" {
		t.Errorf("EnclosureType = %q", first.EnclosureType)
	}
	if first.PubDate != "Mon, 02 Jan 2023 10:00:00 GMT" {
		t.Errorf("PubDate = %q", first.PubDate)
	}
	if first.Description != "First <b>episode</b>" {
		t.Errorf("Description = %q", first.Description)
	}

	if episodes[1].HasEnclosure() {
		t.Error("second item should have no enclosure")
	}
	if episodes[2].Title != "Nested" {
		t.Errorf("nested item title = %q, want %q", episodes[2].Title, "Nested")
	}
	if got := episodes[3].ResolvedTitle(); got != model.DefaultEpisodeTitle {
		t.Errorf("empty item title = %q, want %q", got, model.DefaultEpisodeTitle)
	}
}

func TestExtract_Reinvokable(t *testing.T) {
	root, err := Parse(strings.NewReader(sampleFeed))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	f := Extract(root)

	first := collect(t, f)
	second := collect(t, f)
	if len(first) != len(second) {
		t.Fatalf("second pass yielded %d episodes, first %d", len(second), len(first))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("episode %d differs between passes", i)
		}
	}
}

func TestExtract_EarlyStop(t *testing.T) {
	root, err := Parse(strings.NewReader(sampleFeed))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	n := 0
	for range Extract(root).Episodes {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Errorf("stopped after %d episodes, want 2", n)
	}
}

func TestExtract_MissingChannel(t *testing.T) {
	root, err := Parse(strings.NewReader(`<rss><item><title>Loose</title></item></rss>`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	f := Extract(root)
	if f.Title != "" {
		t.Errorf("Title = %q, want empty", f.Title)
	}
	if got := f.ResolvedTitle(); got != model.DefaultChannelTitle {
		t.Errorf("ResolvedTitle() = %q, want %q", got, model.DefaultChannelTitle)
	}
	if got := f.CountEpisodes(); got != 1 {
		t.Errorf("CountEpisodes() = %d, want 1", got)
	}
}

func TestExtract_ChannelImageFallback(t *testing.T) {
	doc := `<rss><channel><title>T</title><managingEditor>ed@example.com</managingEditor>
<image><url>https://cdn.example.com/rss.jpg</url></image></channel></rss>`
	root, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	f := Extract(root)
	if f.ImageURL != "https://cdn.example.com/rss.jpg" {
		t.Errorf("ImageURL = %q", f.ImageURL)
	}
	if f.Author != "ed@example.com" {
		t.Errorf("Author = %q", f.Author)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty", ""},
		{"unclosed", "<rss><channel>"},
		{"mismatched", "<rss><channel></rss>"},
		{"text only", "just text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(tt.doc)); err == nil {
				t.Error("expected error but got none")
			}
		})
	}
}

func TestParse_Latin1(t *testing.T) {
	doc := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><rss><channel><title>Caf\xe9</title></channel></rss>"
	root, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := root.Find("channel/title").Text; got != "Café" {
		t.Errorf("title = %q, want %q", got, "Café")
	}
}

func TestDescendants_Order(t *testing.T) {
	root, err := Parse(strings.NewReader(`<r><item id="1"><item id="2"/></item><x><item id="3"/></x><item id="4"/></r>`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	var ids []string
	for n := range root.Descendants("item") {
		ids = append(ids, n.Attr("id"))
	}
	if got := strings.Join(ids, ","); got != "1,2,3,4" {
		t.Errorf("order = %s, want 1,2,3,4", got)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feed.xml")
	if err := os.WriteFile(path, []byte(sampleFeed), 0644); err != nil {
		t.Fatal(err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if f.Title != "My Show" {
		t.Errorf("Title = %q, want %q", f.Title, "My Show")
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.xml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
