package youtube

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies remote feed failures.
type ErrorKind string

const (
	KindMalformed         ErrorKind = "malformed"
	KindUnauthorized      ErrorKind = "unauthorized"
	KindNotFound          ErrorKind = "not_found"
	KindTransport         ErrorKind = "transport"
	KindMalformedResponse ErrorKind = "malformed_response"
)

var (
	// ErrMalformed matches references that contain no playlist identifier.
	ErrMalformed = errors.New("malformed playlist reference")
	// ErrUnauthorized matches rejected or missing API credentials.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound matches playlists the API does not know.
	ErrNotFound = errors.New("playlist not found")
	// ErrTransport matches network failures and unexpected HTTP statuses.
	ErrTransport = errors.New("transport failure")
	// ErrMalformedResponse matches response bodies that cannot be decoded or validated.
	ErrMalformedResponse = errors.New("malformed response")
)

// RemoteError describes a failed interaction with the YouTube API.
type RemoteError struct {
	Kind ErrorKind
	// Op names the API resource or step that failed, e.g. "playlistItems".
	Op string
	// Status carries the HTTP status text and any API message.
	Status string
	Err    error
}

func (e *RemoteError) Error() string {
	var b strings.Builder
	b.WriteString("youtube")
	if e.Op != "" {
		b.WriteByte(' ')
		b.WriteString(e.Op)
	}
	b.WriteString(": ")
	b.WriteString(string(e.Kind))
	if e.Status != "" {
		b.WriteString(": ")
		b.WriteString(e.Status)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *RemoteError) Unwrap() error { return e.Err }

// Is matches the sentinel for the error's kind.
func (e *RemoteError) Is(target error) bool {
	switch target {
	case ErrMalformed:
		return e.Kind == KindMalformed
	case ErrUnauthorized:
		return e.Kind == KindUnauthorized
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrTransport:
		return e.Kind == KindTransport
	case ErrMalformedResponse:
		return e.Kind == KindMalformedResponse
	}
	return false
}

func remoteErr(kind ErrorKind, op, status string, err error) *RemoteError {
	return &RemoteError{Kind: kind, Op: op, Status: status, Err: err}
}

func malformedResponse(op, format string, args ...any) *RemoteError {
	return remoteErr(KindMalformedResponse, op, "", fmt.Errorf(format, args...))
}

var errEmptyRef = errors.New("playlist url or id required")

func errInvalidURL(ref string) error {
	return fmt.Errorf("%q is not a valid url", ref)
}

func errNoListParam(ref string) error {
	return fmt.Errorf("%q has no list parameter", ref)
}

func errInvalidID(ref string) error {
	return fmt.Errorf("%q is not a playlist id", ref)
}
