// Package textdiff wraps sergi/go-diff's diffmatchpatch port for the
// character/word-level diffing the matcher's leaf_ratio and the rich-text
// renderer both need, and the Levenshtein distance implied by a diff.
package textdiff

import "github.com/sergi/go-diff/diffmatchpatch"

// Op is the operation carried by one Segment of a Diff.
type Op int

const (
	Equal Op = iota
	Insert
	Delete
)

// Segment is one (operation, text) run of a diff, in left-to-right order.
type Segment struct {
	Op   Op
	Text string
}

// Diff runs a diff-match-patch style diff between a and b and returns it as
// a flat list of (op, segment) tuples, mirroring self.dmp.diff_main.
func Diff(a, b string) []Segment {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(a, b, false)
	out := make([]Segment, len(diffs))
	for i, d := range diffs {
		out[i] = Segment{Op: fromDMP(d.Type), Text: d.Text}
	}
	return out
}

// Levenshtein returns the Levenshtein distance implied by diffs: for each
// changed run between two equal segments, the larger of its inserted and
// deleted character counts, summed over all runs.
// Mirrors self.dmp.diff_levenshtein.
func Levenshtein(segs []Segment) int {
	dmp := diffmatchpatch.New()
	diffs := make([]diffmatchpatch.Diff, len(segs))
	for i, s := range segs {
		diffs[i] = diffmatchpatch.Diff{Type: toDMP(s.Op), Text: s.Text}
	}
	return dmp.DiffLevenshtein(diffs)
}

func fromDMP(t diffmatchpatch.Operation) Op {
	switch t {
	case diffmatchpatch.DiffInsert:
		return Insert
	case diffmatchpatch.DiffDelete:
		return Delete
	default:
		return Equal
	}
}

func toDMP(op Op) diffmatchpatch.Operation {
	switch op {
	case Insert:
		return diffmatchpatch.DiffInsert
	case Delete:
		return diffmatchpatch.DiffDelete
	default:
		return diffmatchpatch.DiffEqual
	}
}
