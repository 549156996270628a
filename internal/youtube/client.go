package youtube

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	ytapi "google.golang.org/api/youtube/v3"

	"ytvault/internal/logging"
)

const (
	// DefaultBaseURL is the API root; request paths start with "youtube/v3/".
	DefaultBaseURL = "https://youtube.googleapis.com"
	// MaxPageSize is the largest maxResults the playlistItems endpoint accepts.
	MaxPageSize = 50

	pingPlaylistID = "PLytvaultping"
)

var countMismatch = logging.Event{
	Type:   "remote_count_mismatch",
	Impact: "fetched item count is used",
	Hint:   "private or deleted videos can cause this",
}

// Fetcher fetches complete playlist snapshots.
type Fetcher interface {
	FetchSnapshot(ctx context.Context, ref string) (*Snapshot, error)
}

// Client reads playlists through the YouTube Data API v3 with a static API key.
type Client struct {
	apiKey     string
	baseURL    string
	pageSize   int
	httpClient *http.Client
	logger     *slog.Logger
	service    *ytapi.Service
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client. The API key is added to
// every request on top of the client's transport.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// WithPageSize sets how many items each playlistItems request asks for.
func WithPageSize(size int) Option {
	return func(c *Client) {
		if size >= 1 && size <= MaxPageSize {
			c.pageSize = size
		}
	}
}

// WithLogger attaches a logger for pagination progress and count mismatches.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a YouTube API client. baseURL defaults to DefaultBaseURL.
func New(apiKey, baseURL string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, remoteErr(KindUnauthorized, "", "", errors.New("youtube api key required"))
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/") + "/",
		pageSize:   MaxPageSize,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}

	keyed := *client.httpClient
	keyed.Transport = &keyTransport{key: apiKey, base: client.httpClient.Transport}

	service, err := ytapi.NewService(context.Background(),
		option.WithHTTPClient(&keyed),
		option.WithEndpoint(client.baseURL),
	)
	if err != nil {
		return nil, remoteErr(KindTransport, "", "", fmt.Errorf("create youtube service: %w", err))
	}
	service.BasePath = client.baseURL
	client.service = service
	return client, nil
}

// FetchSnapshot resolves ref, then reads the playlist metadata and every page
// of items. Items keep API order and are numbered from 1.
func (c *Client) FetchSnapshot(ctx context.Context, ref string) (*Snapshot, error) {
	id, link, err := resolveRef(ref)
	if err != nil {
		return nil, err
	}
	logger := logging.WithContext(ctx, c.logger).With(logging.String(logging.FieldPlaylistID, id))

	meta, err := c.fetchPlaylist(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := c.fetchItems(ctx, id, logger)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		ID:        id,
		URL:       link,
		ItemCount: len(items),
		Items:     items,
	}
	if meta.Snippet != nil {
		snap.Title = meta.Snippet.Title
		snap.Description = meta.Snippet.Description
		snap.ChannelName = meta.Snippet.ChannelTitle
		snap.ThumbnailURL = pickThumbnail(meta.Snippet.Thumbnails)
	}

	var reported int64
	if meta.ContentDetails != nil {
		reported = meta.ContentDetails.ItemCount
	}
	if reported != int64(len(items)) {
		logging.Warn(logger, countMismatch, "playlist item count differs from fetched items",
			logging.Int("reported", int(reported)),
			logging.Int("fetched", len(items)),
		)
	}
	return snap, nil
}

// Ping issues a minimal playlists lookup to confirm the API key is accepted.
// An empty result counts as success.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.service.Playlists.List([]string{"id"}).
		Id(pingPlaylistID).
		MaxResults(1).
		Context(ctx).
		Do()
	if err != nil {
		return classify(ctx, "playlists", err)
	}
	return nil
}

func (c *Client) fetchPlaylist(ctx context.Context, id string) (*ytapi.Playlist, error) {
	resp, err := c.service.Playlists.List([]string{"snippet", "contentDetails"}).
		Id(id).
		Context(ctx).
		Do()
	if err != nil {
		return nil, classify(ctx, "playlists", err)
	}
	if len(resp.Items) == 0 || resp.Items[0] == nil {
		return nil, remoteErr(KindNotFound, "playlists", "", fmt.Errorf("no playlist with id %q", id))
	}
	return resp.Items[0], nil
}

func (c *Client) fetchItems(ctx context.Context, id string, logger *slog.Logger) ([]Item, error) {
	var items []Item
	seenTokens := map[string]struct{}{}
	token := ""

	for page := 1; ; page++ {
		call := c.service.PlaylistItems.List([]string{"snippet"}).
			PlaylistId(id).
			MaxResults(int64(c.pageSize)).
			Context(ctx)
		if token != "" {
			call = call.PageToken(token)
		}

		requestStart := time.Now()
		resp, err := call.Do()
		if err != nil {
			return nil, classify(ctx, "playlistItems", err)
		}
		for _, resource := range resp.Items {
			item, err := convertItem(resource)
			if err != nil {
				return nil, err
			}
			item.Position = len(items) + 1
			items = append(items, item)
		}
		logger.Debug("fetched playlist page",
			logging.Int("page", page),
			logging.Int("page_items", len(resp.Items)),
			logging.Int("total_items", len(items)),
			logging.Duration("latency", time.Since(requestStart)),
		)

		token = resp.NextPageToken
		if token == "" {
			return items, nil
		}
		if _, repeated := seenTokens[token]; repeated {
			return nil, malformedResponse("playlistItems", "page token %q returned twice", token)
		}
		seenTokens[token] = struct{}{}
	}
}

func convertItem(resource *ytapi.PlaylistItem) (Item, error) {
	if resource == nil || resource.Snippet == nil {
		return Item{}, malformedResponse("playlistItems", "item without snippet")
	}
	snippet := resource.Snippet
	videoID := ""
	if snippet.ResourceId != nil {
		videoID = strings.TrimSpace(snippet.ResourceId.VideoId)
	}
	if videoID == "" {
		return Item{}, malformedResponse("playlistItems", "item at position %d has no video id", snippet.Position)
	}
	item := Item{
		VideoID:     videoID,
		Title:       snippet.Title,
		Description: snippet.Description,
	}
	if published := strings.TrimSpace(snippet.PublishedAt); published != "" {
		ts, err := time.Parse(time.RFC3339, published)
		if err != nil {
			return Item{}, malformedResponse("playlistItems", "video %s publishedAt %q: %v", videoID, published, err)
		}
		item.PublishedAt = ts
	}
	return item, nil
}

// classify maps an API call failure onto a RemoteError kind. Anything that is
// neither an API error nor a transport failure came from decoding the body.
func classify(ctx context.Context, op string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return statusError(op, apiErr)
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return remoteErr(KindTransport, op, "", fmt.Errorf("request aborted: %w", ctxErr))
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return remoteErr(KindTransport, op, "", fmt.Errorf("execute request: %w", redactKey(urlErr)))
	}
	return remoteErr(KindMalformedResponse, op, "", fmt.Errorf("decode response: %w", err))
}

// statusError maps a non-2xx response onto a RemoteError kind, using the API's
// error reason where the status code alone is ambiguous.
func statusError(op string, apiErr *googleapi.Error) error {
	reason := ""
	if len(apiErr.Errors) > 0 {
		reason = apiErr.Errors[0].Reason
	}

	status := fmt.Sprintf("%d %s", apiErr.Code, http.StatusText(apiErr.Code))
	if msg := strings.TrimSpace(apiErr.Message); msg != "" {
		status += ": " + msg
	}

	kind := KindTransport
	switch {
	case reason == "quotaExceeded" || reason == "rateLimitExceeded":
		kind = KindTransport
	case apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden:
		kind = KindUnauthorized
	case reason == "keyInvalid" || reason == "keyExpired":
		kind = KindUnauthorized
	case apiErr.Code == http.StatusNotFound:
		kind = KindNotFound
	}
	return remoteErr(kind, op, status, nil)
}

// redactKey strips the API key from the URL of a transport error.
func redactKey(urlErr *url.Error) error {
	clone := *urlErr
	if parsed, perr := url.Parse(clone.URL); perr == nil {
		q := parsed.Query()
		if q.Has("key") {
			q.Set("key", "REDACTED")
			parsed.RawQuery = q.Encode()
			clone.URL = parsed.String()
		}
	}
	return &clone
}

// keyTransport adds the API key query parameter to each request.
type keyTransport struct {
	key  string
	base http.RoundTripper
}

func (t *keyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	clone := req.Clone(req.Context())
	q := clone.URL.Query()
	q.Set("key", t.key)
	clone.URL.RawQuery = q.Encode()
	return base.RoundTrip(clone)
}
