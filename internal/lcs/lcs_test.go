package lcs_test

import (
	"testing"

	"github.com/vortex/xdiff/internal/lcs"
)

func eqString(a, b string) bool { return a == b }

func TestLCS_Basic(t *testing.T) {
	t.Parallel()
	left := []string{"a", "b", "c", "d", "e"}
	right := []string{"a", "c", "e", "f"}

	pairs := lcs.LCS(left, right, eqString)

	want := [][2]int{{0, 0}, {2, 1}, {4, 2}}
	if len(pairs) != len(want) {
		t.Fatalf("got %d pairs, want %d: %v", len(pairs), len(want), pairs)
	}
	for i, p := range pairs {
		if p.Left != want[i][0] || p.Right != want[i][1] {
			t.Errorf("pair %d = (%d,%d), want (%d,%d)", i, p.Left, p.Right, want[i][0], want[i][1])
		}
	}
}

func TestLCS_Empty(t *testing.T) {
	t.Parallel()
	if got := lcs.LCS([]string{}, []string{"a", "b"}, eqString); len(got) != 0 {
		t.Errorf("expected no pairs for empty left, got %v", got)
	}
	if got := lcs.LCS([]string{"a"}, []string{}, eqString); len(got) != 0 {
		t.Errorf("expected no pairs for empty right, got %v", got)
	}
}

func TestLCS_Identical(t *testing.T) {
	t.Parallel()
	seq := []string{"x", "y", "z"}
	pairs := lcs.LCS(seq, seq, eqString)
	if len(pairs) != 3 {
		t.Fatalf("expected 3 pairs for identical sequences, got %d", len(pairs))
	}
	for i, p := range pairs {
		if p.Left != i || p.Right != i {
			t.Errorf("pair %d = (%d,%d), want (%d,%d)", i, p.Left, p.Right, i, i)
		}
	}
}

func TestLCS_NoCommonElements(t *testing.T) {
	t.Parallel()
	pairs := lcs.LCS([]string{"a", "b"}, []string{"c", "d"}, eqString)
	if len(pairs) != 0 {
		t.Errorf("expected no pairs, got %v", pairs)
	}
}

func TestLCS_CustomEquality(t *testing.T) {
	t.Parallel()
	type item struct{ key, payload string }
	left := []item{{"1", "apple"}, {"2", "banana"}}
	right := []item{{"2", "different-payload"}, {"3", "cherry"}}

	pairs := lcs.LCS(left, right, func(a, b item) bool { return a.key == b.key })
	if len(pairs) != 1 || pairs[0].Left != 1 || pairs[0].Right != 0 {
		t.Errorf("got %v, want single pair (1,0)", pairs)
	}
}
