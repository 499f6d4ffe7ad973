package editscript_test

import (
	"testing"

	"github.com/vortex/xdiff/dom/etreedom"
	"github.com/vortex/xdiff/editscript"
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

func kindsOf(actions []editscript.Action) []string {
	out := make([]string, len(actions))
	for i, a := range actions {
		switch a.(type) {
		case editscript.InsertNode:
			out[i] = "insert"
		case editscript.DeleteNode:
			out[i] = "delete"
		case editscript.MoveNode:
			out[i] = "move"
		case editscript.RenameNode:
			out[i] = "rename"
		case editscript.UpdateTextIn:
			out[i] = "text-in"
		case editscript.UpdateTextAfter:
			out[i] = "text-after"
		case editscript.InsertAttrib:
			out[i] = "insert-attr"
		case editscript.DeleteAttrib:
			out[i] = "delete-attr"
		case editscript.UpdateAttrib:
			out[i] = "update-attr"
		}
	}
	return out
}

func contains(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

func TestGenerate_NoChanges(t *testing.T) {
	t.Parallel()
	left := parse(t, `<doc><p>same</p></doc>`)
	right := parse(t, `<doc><p>same</p></doc>`)
	res := match.Match(left, right, match.DefaultConfig())
	actions := editscript.Generate(left, right, res)
	if len(actions) != 0 {
		t.Errorf("expected no actions for identical trees, got %v", actions)
	}
}

func TestGenerate_InsertedNode(t *testing.T) {
	t.Parallel()
	left := parse(t, `<doc><p>one</p></doc>`)
	right := parse(t, `<doc><p>one</p><p>a brand new paragraph</p></doc>`)
	res := match.Match(left, right, match.DefaultConfig())
	actions := editscript.Generate(left, right, res)

	kinds := kindsOf(actions)
	if !contains(kinds, "insert") {
		t.Errorf("expected an insert action, got %v", actions)
	}
}

func TestGenerate_DeletedNode(t *testing.T) {
	t.Parallel()
	left := parse(t, `<doc><p>one</p><p>a second paragraph here</p></doc>`)
	right := parse(t, `<doc><p>one</p></doc>`)
	res := match.Match(left, right, match.DefaultConfig())
	actions := editscript.Generate(left, right, res)

	kinds := kindsOf(actions)
	if !contains(kinds, "delete") {
		t.Errorf("expected a delete action, got %v", actions)
	}
}

func TestGenerate_RenamedNode(t *testing.T) {
	t.Parallel()
	left := parse(t, `<doc><p id="x">content that stays the same</p></doc>`)
	right := parse(t, `<doc><h1 id="x">content that stays the same</h1></doc>`)

	cfg := match.DefaultConfig()
	cfg.UniqueAttrs = []match.UniqueAttr{{Name: "id"}}
	res := match.Match(left, right, cfg)
	actions := editscript.Generate(left, right, res)

	kinds := kindsOf(actions)
	if !contains(kinds, "rename") {
		t.Errorf("expected a rename action, got %v", actions)
	}
}

func TestGenerate_AttributeChange(t *testing.T) {
	t.Parallel()
	left := parse(t, `<doc><p class="old">text</p></doc>`)
	right := parse(t, `<doc><p class="new">text</p></doc>`)
	res := match.Match(left, right, match.DefaultConfig())
	actions := editscript.Generate(left, right, res)

	kinds := kindsOf(actions)
	if !contains(kinds, "update-attr") {
		t.Errorf("expected an update-attr action, got %v", actions)
	}
}

func TestGenerate_TextChange(t *testing.T) {
	t.Parallel()
	left := parse(t, `<doc><p>old text</p></doc>`)
	right := parse(t, `<doc><p>new text</p></doc>`)
	res := match.Match(left, right, match.DefaultConfig())
	actions := editscript.Generate(left, right, res)

	kinds := kindsOf(actions)
	if !contains(kinds, "text-in") {
		t.Errorf("expected a text-in action, got %v", actions)
	}
}

func TestGenerate_MovedNode(t *testing.T) {
	t.Parallel()
	left := parse(t, `<doc><p id="a">alpha content block</p><p id="b">beta content block</p></doc>`)
	right := parse(t, `<doc><p id="b">beta content block</p><p id="a">alpha content block</p></doc>`)

	cfg := match.DefaultConfig()
	cfg.UniqueAttrs = []match.UniqueAttr{{Name: "id"}}
	res := match.Match(left, right, cfg)
	actions := editscript.Generate(left, right, res)

	kinds := kindsOf(actions)
	if !contains(kinds, "move") {
		t.Errorf("expected a move action for reordered siblings, got %v", actions)
	}
}
