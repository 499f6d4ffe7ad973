package etreedom_test

import (
	"testing"

	"github.com/vortex/xdiff/dom/etreedom"
)

func TestParseAndSerializeRoundTrip(t *testing.T) {
	t.Parallel()
	root, err := etreedom.ParseBytes([]byte(`<doc a="1"><p>hello</p></doc>`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if root.Tag() != "doc" {
		t.Errorf("Tag() = %q, want doc", root.Tag())
	}
	if v, ok := root.Attr("a"); !ok || v != "1" {
		t.Errorf("Attr(a) = (%q, %v), want (1, true)", v, ok)
	}

	out, err := etreedom.Serialize(root)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if len(out) == 0 {
		t.Error("expected non-empty serialized output")
	}

	back, err := etreedom.ParseBytes(out)
	if err != nil {
		t.Fatalf("reparse serialized output: %v", err)
	}
	if back.Tag() != "doc" {
		t.Errorf("reparsed Tag() = %q, want doc", back.Tag())
	}
}

func TestIdentityInterning(t *testing.T) {
	t.Parallel()
	root, err := etreedom.ParseBytes([]byte(`<doc><p>a</p><p>b</p></doc>`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	c1 := root.Children()[0]
	c2 := root.Children()[0]
	if c1 != c2 {
		t.Error("repeated Children() calls returned different identities for the same element")
	}
	if parent, ok := c1.Parent().(*etreedom.Elem); !ok || parent != root {
		t.Error("Parent() did not return the interned root")
	}
}

func TestRootParentIsNil(t *testing.T) {
	t.Parallel()
	root, err := etreedom.ParseBytes([]byte(`<doc/>`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if p := root.Parent(); p != nil {
		t.Errorf("expected root.Parent() == nil, got %v", p)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	t.Parallel()
	root, err := etreedom.ParseBytes([]byte(`<doc><p>a</p></doc>`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	clone := root.Clone()
	clone.SetAttr("x", "y")
	if _, ok := root.Attr("x"); ok {
		t.Error("mutating the clone's attribute leaked back into the original")
	}
}

func TestNewChildAndInsert(t *testing.T) {
	t.Parallel()
	root, err := etreedom.ParseBytes([]byte(`<doc><p>a</p></doc>`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	child := root.NewChild("span")
	child.SetText("hi")
	root.InsertChildAt(0, child)

	children := root.Children()
	if len(children) != 2 || children[0].Tag() != "span" {
		t.Fatalf("got %d children, first tag %q; want 2 children, first span", len(children), children[0].Tag())
	}
	if children[0].Text() != "hi" {
		t.Errorf("Text() = %q, want hi", children[0].Text())
	}
}
