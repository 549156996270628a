package testsupport

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// FakeVideo is a playlist entry served by YouTubeServer.
type FakeVideo struct {
	ID          string
	Title       string
	Description string
	PublishedAt string
}

// FakePlaylist is a playlist served by YouTubeServer.
type FakePlaylist struct {
	ID          string
	Title       string
	Description string
	Channel     string
	Thumbnail   string
	Videos      []FakeVideo
	// ReportedCount overrides contentDetails.itemCount when non-zero.
	ReportedCount int
}

// YouTubeServer is a stub of the playlists and playlistItems endpoints of the
// YouTube Data API, served under /youtube/v3/. Pages are cut according to the maxResults parameter and
// page tokens are opaque offsets.
type YouTubeServer struct {
	*httptest.Server

	APIKey string

	mu        sync.Mutex
	playlists map[string]FakePlaylist
	requests  []string
	failPath  string
	failCode  int
	failWhy   string
}

// NewYouTubeServer starts a stub API that accepts apiKey and serves playlists.
func NewYouTubeServer(t testing.TB, apiKey string, playlists ...FakePlaylist) *YouTubeServer {
	t.Helper()

	s := &YouTubeServer{APIKey: apiKey, playlists: map[string]FakePlaylist{}}
	for _, p := range playlists {
		s.playlists[p.ID] = p
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// SetPlaylist adds or replaces a playlist.
func (s *YouTubeServer) SetPlaylist(p FakePlaylist) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playlists[p.ID] = p
}

// Fail makes every request to endpoint ("playlists" or "playlistItems") answer
// with status and an API error reason. A zero status clears the failure.
func (s *YouTubeServer) Fail(endpoint string, status int, reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failPath, s.failCode, s.failWhy = endpoint, status, reason
}

// Requests returns the endpoint and query of every request received.
func (s *YouTubeServer) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

func (s *YouTubeServer) handle(w http.ResponseWriter, r *http.Request) {
	endpoint := strings.TrimPrefix(r.URL.Path, "/youtube/v3/")
	query := r.URL.Query()

	s.mu.Lock()
	s.requests = append(s.requests, endpoint+"?"+r.URL.RawQuery)
	failPath, failCode, failWhy := s.failPath, s.failCode, s.failWhy
	s.mu.Unlock()

	if query.Get("key") != s.APIKey {
		writeAPIError(w, http.StatusBadRequest, "API key not valid. Please pass a valid API key.", "keyInvalid")
		return
	}
	if failCode != 0 && failPath == endpoint {
		writeAPIError(w, failCode, "stubbed failure", failWhy)
		return
	}

	switch endpoint {
	case "playlists":
		s.servePlaylists(w, query.Get("id"))
	case "playlistItems":
		s.serveItems(w, query.Get("playlistId"), query.Get("maxResults"), query.Get("pageToken"))
	default:
		http.NotFound(w, r)
	}
}

func (s *YouTubeServer) servePlaylists(w http.ResponseWriter, id string) {
	s.mu.Lock()
	p, ok := s.playlists[id]
	s.mu.Unlock()

	items := []any{}
	if ok {
		count := p.ReportedCount
		if count == 0 {
			count = len(p.Videos)
		}
		items = append(items, map[string]any{
			"id": p.ID,
			"snippet": map[string]any{
				"title":        p.Title,
				"description":  p.Description,
				"channelTitle": p.Channel,
				"thumbnails": map[string]any{
					"default": map[string]any{"url": p.Thumbnail},
				},
			},
			"contentDetails": map[string]any{"itemCount": count},
		})
	}
	writeJSON(w, map[string]any{"kind": "youtube#playlistListResponse", "items": items})
}

func (s *YouTubeServer) serveItems(w http.ResponseWriter, id, maxResults, token string) {
	s.mu.Lock()
	p, ok := s.playlists[id]
	s.mu.Unlock()
	if !ok {
		writeAPIError(w, http.StatusNotFound, "The playlist identified with the request's playlistId parameter cannot be found.", "playlistNotFound")
		return
	}

	size, err := strconv.Atoi(maxResults)
	if err != nil || size < 1 {
		size = 5
	}
	offset := 0
	if token != "" {
		offset, err = strconv.Atoi(strings.TrimPrefix(token, "page-"))
		if err != nil || offset < 0 || offset > len(p.Videos) {
			writeAPIError(w, http.StatusBadRequest, "invalid page token", "invalidPageToken")
			return
		}
	}
	end := min(offset+size, len(p.Videos))

	items := make([]any, 0, end-offset)
	for i, v := range p.Videos[offset:end] {
		items = append(items, map[string]any{
			"snippet": map[string]any{
				"title":       v.Title,
				"description": v.Description,
				"publishedAt": v.PublishedAt,
				"position":    offset + i,
				"resourceId":  map[string]any{"kind": "youtube#video", "videoId": v.ID},
			},
		})
	}
	payload := map[string]any{
		"kind":     "youtube#playlistItemListResponse",
		"items":    items,
		"pageInfo": map[string]any{"totalResults": len(p.Videos), "resultsPerPage": size},
	}
	if end < len(p.Videos) {
		payload["nextPageToken"] = fmt.Sprintf("page-%d", end)
	}
	writeJSON(w, payload)
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}

func writeAPIError(w http.ResponseWriter, status int, message, reason string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"code":    status,
			"message": message,
			"errors":  []any{map[string]any{"reason": reason, "message": message}},
		},
	})
}

// Videos builds n videos titled "Video 1".."Video n" with eleven-character IDs
// "vid00000001".."vidNNNNNNNN".
func Videos(n int) []FakeVideo {
	videos := make([]FakeVideo, n)
	for i := range videos {
		videos[i] = FakeVideo{
			ID:          fmt.Sprintf("vid%08d", i+1),
			Title:       fmt.Sprintf("Video %d", i+1),
			Description: fmt.Sprintf("Description %d", i+1),
			PublishedAt: fmt.Sprintf("2024-01-%02dT10:00:00Z", i%28+1),
		}
	}
	return videos
}
