package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sys/unix"

	"ytvault/internal/youtube"
)

const youtubeCheckTimeout = 10 * time.Second

// CheckYouTube verifies that the Data API is reachable and accepts the key.
// It makes a single request with a short timeout.
func CheckYouTube(ctx context.Context, baseURL, apiKey string) Result {
	const name = "YouTube API"

	client, err := youtube.New(apiKey, baseURL, youtube.WithTimeout(youtubeCheckTimeout))
	if err != nil {
		return Result{Name: name, Detail: summarizeYouTubeError(err)}
	}

	checkCtx, cancel := context.WithTimeout(ctx, youtubeCheckTimeout)
	defer cancel()

	if err := client.Ping(checkCtx); err != nil {
		return Result{Name: name, Detail: summarizeYouTubeError(err)}
	}
	return Result{Name: name, Passed: true, Detail: "API key accepted"}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	if path == "" {
		return Result{Name: name, Detail: "not configured"}
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckWritableLocation accepts an existing accessible directory, or a missing
// one whose nearest existing ancestor is writable so it can be created.
func CheckWritableLocation(name, path string) Result {
	if path == "" {
		return Result{Name: name, Detail: "not configured"}
	}
	if _, err := os.Stat(path); err == nil {
		return CheckDirectoryAccess(name, path)
	} else if !os.IsNotExist(err) {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}

	ancestor := nearestExisting(path)
	if ancestor == "" {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: no existing parent)", path)}
	}
	if err := unix.Access(ancestor, unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: cannot create under %s: %v)", path, ancestor, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (will be created)", path)}
}

func nearestExisting(path string) string {
	current := filepath.Clean(path)
	for {
		info, err := os.Stat(current)
		if err == nil {
			if info.IsDir() {
				return current
			}
			return ""
		}
		parent := filepath.Dir(current)
		if parent == current {
			return ""
		}
		current = parent
	}
}

// summarizeYouTubeError produces a human-readable summary for API check failures.
func summarizeYouTubeError(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "request timed out (YouTube API unresponsive)"
	case errors.Is(err, youtube.ErrUnauthorized):
		return "API key rejected"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "request timed out (YouTube API unreachable)"
	}
	return err.Error()
}
