package text_test

import (
	"testing"

	"github.com/vortex/xdiff/internal/text"
)

func TestNormalizeWhitespace(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"a  b":        "a b",
		"a\t\nb":      "a b",
		"  leading":   " leading",
		"no-change":   "no-change",
		"":            "",
		"a\n\n\n\nb":  "a b",
	}
	for in, want := range cases {
		if got := text.NormalizeWhitespace(in); got != want {
			t.Errorf("NormalizeWhitespace(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTokenize(t *testing.T) {
	t.Parallel()
	got := text.Tokenize("hello world! how are you?", nil)
	want := []string{"hello", "world", "!", "how", "are", "you", "?"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTokenize_ExtraBreak(t *testing.T) {
	t.Parallel()
	ph := rune(0xE000)
	got := text.Tokenize("foo"+string(ph)+"bar", []rune{ph})
	want := []string{"foo", string(ph), "bar"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestInterner_RoundTrip(t *testing.T) {
	t.Parallel()
	left := []string{"the", "quick", "fox"}
	right := []string{"the", "lazy", "fox"}

	leftChars, rightChars, in := text.WordsToChars(left, right)
	if len(leftChars) != len(left) || len(rightChars) != len(right) {
		t.Fatalf("expected one rune per token, got %d/%d", len(leftChars), len(rightChars))
	}

	for i, r := range leftChars {
		if in.Word(r) != left[i] {
			t.Errorf("left[%d]: Word(%q) = %q, want %q", i, r, in.Word(r), left[i])
		}
	}
	// "the" and "fox" are shared, so they must intern to the same rune.
	if []rune(leftChars)[0] != []rune(rightChars)[0] {
		t.Errorf("shared token %q interned to different runes", "the")
	}
	if []rune(leftChars)[2] != []rune(rightChars)[2] {
		t.Errorf("shared token %q interned to different runes", "fox")
	}
}

func TestInterner_WordOutOfRange(t *testing.T) {
	t.Parallel()
	in := text.NewInterner()
	in.Munge([]string{"a"})
	if got := in.Word(rune(99)); got != "" {
		t.Errorf("Word(99) = %q, want empty string for out-of-range rune", got)
	}
}
