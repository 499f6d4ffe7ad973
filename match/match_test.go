package match_test

import (
	"testing"

	"github.com/vortex/xdiff/dom/etreedom"
	"github.com/vortex/xdiff/match"
)

func parse(t *testing.T, s string) *etreedom.Elem {
	t.Helper()
	n, err := etreedom.ParseBytes([]byte(s))
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return n
}

func TestMatch_IdenticalTrees(t *testing.T) {
	t.Parallel()
	left := parse(t, `<doc><p>one</p><p>two</p></doc>`)
	right := parse(t, `<doc><p>one</p><p>two</p></doc>`)

	res := match.Match(left, right, match.DefaultConfig())

	if res.L2R[left] != right {
		t.Error("roots not matched")
	}
	for i, lchild := range left.Children() {
		rchild := right.Children()[i]
		if res.L2R[lchild] != rchild {
			t.Errorf("child %d not matched: %v -> %v", i, lchild.Tag(), res.L2R[lchild])
		}
	}
}

func TestMatch_UnmatchedInsertedNode(t *testing.T) {
	t.Parallel()
	left := parse(t, `<doc><p>one</p></doc>`)
	right := parse(t, `<doc><p>one</p><p>brand new content here</p></doc>`)

	res := match.Match(left, right, match.DefaultConfig())

	if res.L2R[left.Children()[0]] != right.Children()[0] {
		t.Error("first <p> should match across")
	}
	if _, ok := res.R2L[right.Children()[1]]; ok {
		t.Error("newly inserted <p> should have no left partner")
	}
}

func TestMatch_UniqueAttrShortCircuit(t *testing.T) {
	t.Parallel()
	left := parse(t, `<doc><p id="keep">completely different text A</p></doc>`)
	right := parse(t, `<doc><p id="keep">completely different text B, much longer</p></doc>`)

	cfg := match.DefaultConfig()
	cfg.UniqueAttrs = []match.UniqueAttr{{Name: "id"}}
	res := match.Match(left, right, cfg)

	if res.L2R[left.Children()[0]] != right.Children()[0] {
		t.Error("nodes sharing a unique attribute value should match regardless of text similarity")
	}
}

func TestMatch_UniqueAttrMismatchForcesNoMatch(t *testing.T) {
	t.Parallel()
	left := parse(t, `<doc><p id="a">same text</p></doc>`)
	right := parse(t, `<doc><p id="b">same text</p></doc>`)

	cfg := match.DefaultConfig()
	cfg.UniqueAttrs = []match.UniqueAttr{{Name: "id"}}
	res := match.Match(left, right, cfg)

	if _, ok := res.L2R[left.Children()[0]]; ok {
		t.Error("differing unique attribute values should force a non-match even with identical text")
	}
}

func TestMatch_ConsidersTailTextOfChildren(t *testing.T) {
	t.Parallel()
	// <p>'s own leading text is just "Some ", with the rest of its
	// similarity signal living in <b>'s tail. A node_text implementation
	// that ignores child tails would see only "Some " for both candidate
	// <p>s below and would take the first, unrelated one; the correct match
	// must prefer the candidate whose tail text also agrees.
	left := parse(t, `<doc><p>Some <b>bold</b> text after the formatting.</p></doc>`)
	right := parse(t, `<doc>`+
		`<p>Some <b>bold</b> completely unrelated trailing content goes here.</p>`+
		`<p>Some <b>bold</b> text after the formatting.</p>`+
		`</doc>`)

	res := match.Match(left, right, match.DefaultConfig())

	lp := left.Children()[0]
	if res.L2R[lp] != right.Children()[1] {
		t.Errorf("expected <p> to match the candidate with agreeing tail text, got %v", res.L2R[lp])
	}
}

func TestMatch_FastMatchAgreesWithGreedyOnIdenticalTrees(t *testing.T) {
	t.Parallel()
	left := parse(t, `<doc><p>alpha</p><p>beta</p><p>gamma</p></doc>`)
	right := parse(t, `<doc><p>alpha</p><p>beta</p><p>gamma</p></doc>`)

	cfg := match.DefaultConfig()
	cfg.FastMatch = true
	res := match.Match(left, right, cfg)

	for i, lchild := range left.Children() {
		if res.L2R[lchild] != right.Children()[i] {
			t.Errorf("child %d not matched under fast-match", i)
		}
	}
}
