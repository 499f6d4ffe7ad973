package richtext_test

import (
	"strings"
	"testing"

	"github.com/vortex/xdiff/internal/text"
	"github.com/vortex/xdiff/placeholder"
	"github.com/vortex/xdiff/richtext"
)

func TestDiff_IdenticalTextNoMarkers(t *testing.T) {
	t.Parallel()
	m := placeholder.DefaultHTMLMaker()
	tokens := text.Tokenize("the quick fox", nil)

	out := richtext.Diff(m, tokens, tokens)
	if strings.ContainsRune(out, m.InsertOpen) || strings.ContainsRune(out, m.DeleteOpen) {
		t.Errorf("expected no insert/delete markers for identical input, got %q", out)
	}
}

func TestDiff_WordInsertedAndDeleted(t *testing.T) {
	t.Parallel()
	m := placeholder.DefaultHTMLMaker()
	left := text.Tokenize("the quick fox jumps", nil)
	right := text.Tokenize("the slow fox jumps", nil)

	out := richtext.Diff(m, left, right)
	if !strings.ContainsRune(out, m.InsertOpen) {
		t.Errorf("expected an insert marker for changed word, got %q", out)
	}
	if !strings.ContainsRune(out, m.DeleteOpen) {
		t.Errorf("expected a delete marker for changed word, got %q", out)
	}
}
