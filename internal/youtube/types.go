package youtube

import (
	"time"

	ytapi "google.golang.org/api/youtube/v3"
)

// Snapshot is one fully paginated read of a playlist.
type Snapshot struct {
	ID           string
	Title        string
	Description  string
	ChannelName  string
	ThumbnailURL string
	// URL is the playlist link written into notes: the URL the user supplied,
	// or the canonical playlist URL when only an ID was given.
	URL       string
	ItemCount int
	Items     []Item
}

// Item is a single video entry in a playlist.
type Item struct {
	VideoID     string
	Title       string
	Description string
	PublishedAt time.Time
	// Position is 1-based and always equals the item's index in Snapshot.Items plus one.
	Position int
}

// WatchURL returns the video's watch URL.
func (i Item) WatchURL() string {
	return WatchURL(i.VideoID)
}

// WatchURL returns the canonical watch URL for a video ID.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

// PlaylistURL returns the canonical URL for a playlist ID.
func PlaylistURL(playlistID string) string {
	return "https://www.youtube.com/playlist?list=" + playlistID
}

// pickThumbnail prefers the smallest thumbnail, matching what note headers link to.
func pickThumbnail(thumbs *ytapi.ThumbnailDetails) string {
	if thumbs == nil {
		return ""
	}
	for _, t := range []*ytapi.Thumbnail{thumbs.Default, thumbs.Medium, thumbs.High, thumbs.Standard, thumbs.Maxres} {
		if t != nil && t.Url != "" {
			return t.Url
		}
	}
	return ""
}
