package services_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"ytvault/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrRemote, "youtube", "playlistItems", "page 2", base)
	if !errors.Is(err, services.ErrRemote) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"youtube", "playlistItems", "page 2", "boom"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestFailureCategory(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{services.Wrap(services.ErrConfiguration, "config", "", "missing key", nil), services.CategoryConfiguration},
		{services.Wrap(services.ErrStorage, "vault", "create", "", errors.New("disk full")), services.CategoryStorage},
		{services.Wrap(services.ErrRemote, "youtube", "", "", nil), services.CategoryRemote},
		{fmt.Errorf("sync: %w", context.Canceled), services.CategoryCanceled},
		{errors.New("unexpected"), services.CategoryInternal},
	}
	for _, tc := range tests {
		if got := services.FailureCategory(tc.err); got != tc.want {
			t.Fatalf("FailureCategory(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}
