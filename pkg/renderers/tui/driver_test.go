package tui

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestValidIndices(t *testing.T) {
	got := validIndices([]int{-1, 0, 2, 5}, 3)
	if diff := cmp.Diff([]int{0, 2}, got); diff != "" {
		t.Fatalf("indices mismatch (-want +got):\n%s", diff)
	}
	if got := validIndices(nil, 3); got != nil {
		t.Fatalf("expected nil for no defaults, got %v", got)
	}
}
