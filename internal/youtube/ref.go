package youtube

import (
	"net/url"
	"regexp"
	"strings"
)

var playlistIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ResolvePlaylistID extracts the playlist identifier from a playlist URL (its
// "list" query parameter) or accepts a bare identifier.
func ResolvePlaylistID(ref string) (string, error) {
	id, _, err := resolveRef(ref)
	return id, err
}

// resolveRef returns the playlist ID and the URL that notes should link to.
func resolveRef(ref string) (string, string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", "", remoteErr(KindMalformed, "resolve", "", errEmptyRef)
	}
	if strings.Contains(ref, "://") {
		parsed, err := url.Parse(ref)
		if err != nil || parsed.Host == "" {
			return "", "", remoteErr(KindMalformed, "resolve", "", errInvalidURL(ref))
		}
		id := strings.TrimSpace(parsed.Query().Get("list"))
		if !playlistIDPattern.MatchString(id) {
			return "", "", remoteErr(KindMalformed, "resolve", "", errNoListParam(ref))
		}
		return id, ref, nil
	}
	if !playlistIDPattern.MatchString(ref) {
		return "", "", remoteErr(KindMalformed, "resolve", "", errInvalidID(ref))
	}
	return ref, PlaylistURL(ref), nil
}
