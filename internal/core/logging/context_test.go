package logging

import (
	"context"
	"testing"
)

func TestWithPopup(t *testing.T) {
	ctx := WithPopup(context.Background(), "bookmarks")

	if got := GetPopup(ctx); got != "bookmarks" {
		t.Errorf("GetPopup() = %q, want %q", got, "bookmarks")
	}
}

func TestWithMode(t *testing.T) {
	ctx := WithMode(context.Background(), "pick")

	if got := GetMode(ctx); got != "pick" {
		t.Errorf("GetMode() = %q, want %q", got, "pick")
	}
}

func TestGetters_NotPresent(t *testing.T) {
	ctx := context.Background()

	if got := GetPopup(ctx); got != "" {
		t.Errorf("GetPopup() = %q, want empty string", got)
	}
	if got := GetMode(ctx); got != "" {
		t.Errorf("GetMode() = %q, want empty string", got)
	}
}
