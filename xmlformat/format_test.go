package xmlformat_test

import (
	"strings"
	"testing"

	"github.com/vortex/xdiff/dom/etreedom"
	"github.com/vortex/xdiff/editscript"
	"github.com/vortex/xdiff/match"
	"github.com/vortex/xdiff/xmlformat"
)

func TestFormatter_PrepareCollapsesFormatting(t *testing.T) {
	t.Parallel()
	left, err := etreedom.ParseBytes([]byte(`<doc><p>hello <b>world</b></p></doc>`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	right, err := etreedom.ParseBytes([]byte(`<doc><p>hello <b>world</b></p></doc>`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	f := xmlformat.NewHTML(xmlformat.WSNone)
	f.Prepare(left, right)

	p := left.Children()[0]
	if len(p.Children()) != 0 {
		t.Errorf("expected <b> collapsed into text, got %d children", len(p.Children()))
	}
}

func TestFormatter_FormatAnnotatesInsertedNode(t *testing.T) {
	t.Parallel()
	left, err := etreedom.ParseBytes([]byte(`<doc><p>one</p></doc>`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	right, err := etreedom.ParseBytes([]byte(`<doc><p>one</p><p>a whole new paragraph</p></doc>`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	f := xmlformat.NewHTML(xmlformat.WSNone)
	f.Prepare(left, right)

	leftCopy := left.Clone()
	res := match.Match(leftCopy, right, match.DefaultConfig())
	actions := editscript.Generate(leftCopy, right, res)

	out, err := f.Format(actions, left)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	serialized, err := etreedom.Serialize(out.(*etreedom.Elem))
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if !strings.Contains(string(serialized), xmlformat.InsertName) {
		t.Errorf("expected %s marker in output, got %s", xmlformat.InsertName, serialized)
	}
}

func TestFormatter_FormatSurfacesUnresolvablePath(t *testing.T) {
	t.Parallel()
	left, err := etreedom.ParseBytes([]byte(`<doc><p>one</p></doc>`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	f := xmlformat.NewHTML(xmlformat.WSNone)
	f.Prepare(left, left.Clone())

	actions := []editscript.Action{
		editscript.DeleteNode{XPath: "/doc/span[1]"},
	}
	if _, err := f.Format(actions, left); err == nil {
		t.Fatal("expected an error for an action referencing a nonexistent node")
	} else if _, ok := err.(*xmlformat.PathNotFoundError); !ok {
		t.Errorf("expected a *xmlformat.PathNotFoundError, got %T: %v", err, err)
	}
}
