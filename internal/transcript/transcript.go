package transcript

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"ytvault/internal/youtube"
)

var (
	ErrNoURLFound   = errors.New("no youtube url found")
	ErrAmbiguousURL = errors.New("multiple youtube urls found; keep only one")
	ErrMalformedURL = errors.New("could not extract video id from url")
	ErrNoTimestamps = errors.New("no timestamps found")
)

var (
	watchURLPattern  = regexp.MustCompile(`https://www\.youtube\.com/watch\?v=([a-zA-Z0-9_-]{11})`)
	videoIDPattern   = regexp.MustCompile(`v=([a-zA-Z0-9_-]{11})`)
	timestampPattern = regexp.MustCompile(`\((\d{1,2}):(\d{2}):(\d{2})\)|\((\d{1,2}):(\d{2})\)`)
)

// MarkerKind distinguishes the two timestamp shapes.
type MarkerKind int

const (
	// HMS is an "(h:mm:ss)" marker.
	HMS MarkerKind = iota + 1
	// MS is an "(mm:ss)" marker.
	MS
)

// Marker is one parenthesized timestamp found in a transcript.
type Marker struct {
	Kind    MarkerKind
	Hours   int
	Minutes int
	Seconds int
	// Label is the time as written, without parentheses.
	Label string
	// Start and End are byte offsets of the whole marker, parentheses included.
	Start, End int
}

// Offset returns the playback position in seconds.
func (m Marker) Offset() int {
	return m.Hours*3600 + m.Minutes*60 + m.Seconds
}

// Result is a rewritten transcript.
type Result struct {
	Text    string
	VideoID string
	Markers int
}

// LocateURL returns the single watch URL in text.
func LocateURL(text string) (string, error) {
	matches := watchURLPattern.FindAllString(text, -1)
	switch len(matches) {
	case 0:
		return "", ErrNoURLFound
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%w (%d found)", ErrAmbiguousURL, len(matches))
	}
}

// ExtractVideoID returns the eleven-character video ID carried by url.
func ExtractVideoID(url string) (string, error) {
	m := videoIDPattern.FindStringSubmatch(url)
	if m == nil {
		return "", fmt.Errorf("%w: %q", ErrMalformedURL, url)
	}
	return m[1], nil
}

// FindMarkers returns every timestamp marker in text, in order.
func FindMarkers(text string) []Marker {
	indexes := timestampPattern.FindAllStringSubmatchIndex(text, -1)
	markers := make([]Marker, 0, len(indexes))
	for _, idx := range indexes {
		group := func(n int) string {
			if idx[2*n] < 0 {
				return ""
			}
			return text[idx[2*n]:idx[2*n+1]]
		}
		m := Marker{Start: idx[0], End: idx[1]}
		if idx[2] >= 0 {
			m.Kind = HMS
			m.Hours = atoi(group(1))
			m.Minutes = atoi(group(2))
			m.Seconds = atoi(group(3))
			m.Label = group(1) + ":" + group(2) + ":" + group(3)
		} else {
			m.Kind = MS
			m.Minutes = atoi(group(4))
			m.Seconds = atoi(group(5))
			m.Label = group(4) + ":" + group(5)
		}
		markers = append(markers, m)
	}
	return markers
}

// Link renders the markdown link that replaces m. The query parameter seeks
// the YouTube player and the fragment seeks embedded media players.
func Link(videoID string, m Marker) string {
	return fmt.Sprintf("([%s](%s&t=%d#t=%s.50))", m.Label, youtube.WatchURL(videoID), m.Offset(), m.Label)
}

// Rewrite links every marker in text to the video whose URL text contains.
func Rewrite(text string) (Result, error) {
	return RewriteWithSource(text, text)
}

// RewriteWithSource links every marker in transcript to the video whose URL
// appears in source. ErrNoTimestamps is returned when transcript has no
// markers, so callers can tell "nothing to do" apart from success.
func RewriteWithSource(transcript, source string) (Result, error) {
	url, err := LocateURL(source)
	if err != nil {
		return Result{}, err
	}
	videoID, err := ExtractVideoID(url)
	if err != nil {
		return Result{}, err
	}

	markers := FindMarkers(transcript)
	if len(markers) == 0 {
		return Result{}, ErrNoTimestamps
	}

	var b strings.Builder
	b.Grow(len(transcript) + len(markers)*96)
	last := 0
	for _, m := range markers {
		b.WriteString(transcript[last:m.Start])
		b.WriteString(Link(videoID, m))
		last = m.End
	}
	b.WriteString(transcript[last:])

	return Result{Text: b.String(), VideoID: videoID, Markers: len(markers)}, nil
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
