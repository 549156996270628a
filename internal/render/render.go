package render

import (
	"fmt"
	"strings"
	"time"

	"ytvault/internal/frontmatter"
	"ytvault/internal/youtube"
)

const (
	// TypeIndex marks the per-playlist index note.
	TypeIndex = "playlist-index"
	// TypeItem marks a per-video note. The sync scanner relies on FieldVideoID
	// in notes of this type to recognise videos that were already written.
	TypeItem = "playlist-item"

	FieldType    = "type"
	FieldVideoID = "video_id"

	// DefaultDateLayout renders dates as month/day/year.
	DefaultDateLayout = "1/2/2006"

	noDescription = "No description available"
	notesHint     = "<!-- Add your notes here -->"
)

// Renderer produces note text for playlist snapshots.
type Renderer struct {
	now        func() time.Time
	dateLayout string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithClock overrides the clock used for "created" timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) {
		if now != nil {
			r.now = now
		}
	}
}

// WithDateLayout sets the Go time layout used for dates in note bodies.
func WithDateLayout(layout string) Option {
	return func(r *Renderer) {
		if strings.TrimSpace(layout) != "" {
			r.dateLayout = layout
		}
	}
}

// New returns a Renderer using the wall clock and DefaultDateLayout unless overridden.
func New(opts ...Option) *Renderer {
	r := &Renderer{now: time.Now, dateLayout: DefaultDateLayout}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Index renders the playlist index note. The video list is a query over
// sibling notes rather than a literal listing so it stays current as later
// syncs add items.
func (r *Renderer) Index(s *youtube.Snapshot) string {
	var header frontmatter.Header
	header.
		Add(FieldType, TypeIndex).
		Add("title", s.Title).
		Add("playlist_id", s.ID).
		Add("url", s.URL).
		Add("channel", s.ChannelName).
		Add("video_count", s.ItemCount).
		Add("thumbnail", emptyAsNil(s.ThumbnailURL)).
		Add("created", r.now().UTC())

	var b strings.Builder
	b.WriteString(header.String())
	fmt.Fprintf(&b, "\n# %s\n\n", s.Title)
	fmt.Fprintf(&b, "**Channel:** %s\n", s.ChannelName)
	fmt.Fprintf(&b, "**Total Videos:** %d\n", s.ItemCount)
	fmt.Fprintf(&b, "**Playlist URL:** %s\n", s.URL)
	if s.ThumbnailURL != "" {
		fmt.Fprintf(&b, "\n![thumbnail](%s)\n", s.ThumbnailURL)
	}
	b.WriteString("\n## Description\n\n")
	b.WriteString(orPlaceholder(s.Description))
	b.WriteString("\n\n## Videos\n\n")
	b.WriteString(videosQuery)
	b.WriteString("\n## Links\n\n")
	fmt.Fprintf(&b, "- [View on YouTube](%s)\n", s.URL)
	b.WriteString("\n## Notes\n\n")
	return b.String()
}

const videosQuery = "```base\n" +
	"views:\n" +
	"  - type: table\n" +
	"    name: Videos\n" +
	"    filters:\n" +
	"      and:\n" +
	"        - file.folder == this.file.folder\n" +
	"        - " + FieldType + " == \"" + TypeItem + "\"\n" +
	"    order:\n" +
	"      - file.name\n" +
	"      - completed\n" +
	"```\n"

// Item renders the note for item. Previous and next links are derived from
// the item's position within s.Items.
func (r *Renderer) Item(s *youtube.Snapshot, item youtube.Item) string {
	var published any
	if !item.PublishedAt.IsZero() {
		published = item.PublishedAt.UTC()
	}

	var header frontmatter.Header
	header.
		Add(FieldType, TypeItem).
		Add("title", item.Title).
		Add(FieldVideoID, item.VideoID).
		Add("url", item.WatchURL()).
		Add("playlist", s.Title).
		Add("playlist_url", s.URL).
		Add("position", item.Position).
		Add("published", published).
		Add("created", r.now().UTC()).
		Add("completed", false)

	var b strings.Builder
	b.WriteString(header.String())
	fmt.Fprintf(&b, "\n# %s\n\n", item.Title)
	fmt.Fprintf(&b, "**Position in Playlist:** %d of %d\n", item.Position, s.ItemCount)
	fmt.Fprintf(&b, "**Playlist:** %s\n", wikiLink(PlaylistName(s), s.Title))
	fmt.Fprintf(&b, "**Channel:** %s\n", s.ChannelName)
	fmt.Fprintf(&b, "**Published:** %s\n", r.formatDate(item.PublishedAt))
	b.WriteString("\n## Video URL\n\n")
	b.WriteString(item.WatchURL())
	b.WriteString("\n\n## Description\n\n")
	b.WriteString(orPlaceholder(item.Description))
	b.WriteString("\n\n## Notes\n\n")
	b.WriteString(notesHint)
	b.WriteString("\n\n---\n\n**Navigation:**\n")
	if prev, ok := neighbor(s, item.Position-1); ok {
		fmt.Fprintf(&b, "← Previous: %s\n", wikiLink(ItemName(prev), ""))
	}
	if next, ok := neighbor(s, item.Position+1); ok {
		fmt.Fprintf(&b, "Next: %s →\n", wikiLink(ItemName(next), ""))
	}
	return b.String()
}

// neighbor returns the item at 1-based position pos.
func neighbor(s *youtube.Snapshot, pos int) (youtube.Item, bool) {
	if pos < 1 || pos > len(s.Items) {
		return youtube.Item{}, false
	}
	return s.Items[pos-1], true
}

func (r *Renderer) formatDate(t time.Time) string {
	if t.IsZero() {
		return "Unknown"
	}
	return t.UTC().Format(r.dateLayout)
}

func orPlaceholder(text string) string {
	if strings.TrimSpace(text) == "" {
		return noDescription
	}
	return strings.TrimRight(text, "\n")
}

func emptyAsNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}
