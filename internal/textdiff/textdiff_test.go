package textdiff_test

import (
	"testing"

	"github.com/vortex/xdiff/internal/textdiff"
)

func TestDiff_Identical(t *testing.T) {
	t.Parallel()
	segs := textdiff.Diff("hello", "hello")
	if len(segs) != 1 || segs[0].Op != textdiff.Equal || segs[0].Text != "hello" {
		t.Fatalf("got %v, want a single Equal segment", segs)
	}
}

func TestDiff_InsertDelete(t *testing.T) {
	t.Parallel()
	segs := textdiff.Diff("abc", "axc")
	var hasInsert, hasDelete bool
	for _, s := range segs {
		switch s.Op {
		case textdiff.Insert:
			hasInsert = true
		case textdiff.Delete:
			hasDelete = true
		}
	}
	if !hasInsert || !hasDelete {
		t.Errorf("expected both an insert and a delete segment, got %v", segs)
	}
}

func TestLevenshtein(t *testing.T) {
	t.Parallel()
	segs := textdiff.Diff("kitten", "sitting")
	dist := textdiff.Levenshtein(segs)
	if dist <= 0 {
		t.Errorf("expected a positive edit distance between distinct strings, got %d", dist)
	}

	segs = textdiff.Diff("same", "same")
	if dist := textdiff.Levenshtein(segs); dist != 0 {
		t.Errorf("expected zero edit distance for identical strings, got %d", dist)
	}
}
