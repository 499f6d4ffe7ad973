// Package text holds the small string-shaping helpers the diff core needs
// before handing sequences to internal/lcs or internal/textdiff: whitespace
// normalization, word tokenization, and word<->char interning.
package text

import (
	"strings"
	"unicode"
)

// NormalizeWhitespace collapses every run of whitespace to a single space,
// matching markdowndiff's cleanup_whitespace (a MULTILINE \s+ substitution).
func NormalizeWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inRun := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !inRun {
				b.WriteByte(' ')
				inRun = true
			}
			continue
		}
		inRun = false
		b.WriteRune(r)
	}
	return b.String()
}

// Tokenize splits text on spaces, ';', '!', '?' and any extraBreak runes
// (placeholder codepoints), dropping the spaces and keeping the breaking
// characters as their own one-rune tokens. Mirrors splitString.
func Tokenize(s string, extraBreak []rune) []string {
	isBreak := func(r rune) bool {
		switch r {
		case ';', '!', '?':
			return true
		}
		for _, e := range extraBreak {
			if r == e {
				return true
			}
		}
		return false
	}

	var out []string
	runes := []rune(s)
	start := 0
	for i, r := range runes {
		switch {
		case isBreak(r):
			if i > start {
				out = append(out, string(runes[start:i]))
			}
			out = append(out, string(r))
			start = i + 1
		case r == ' ':
			if i > start {
				out = append(out, string(runes[start:i]))
			}
			start = i + 1
		}
	}
	if start < len(runes) {
		out = append(out, string(runes[start:]))
	}
	return out
}

// Interner assigns each distinct token a stable rune, low codepoints first,
// so two token streams can be diffed character-by-character by a generic
// string differ (internal/textdiff) and mapped back afterward. Mirrors
// diff_wordsToChars/diff_charsToWords, with index 0 reserved exactly as the
// Python does (wordsArray starts with a dummy "" entry).
type Interner struct {
	words []string
	index map[string]rune
}

// NewInterner returns an Interner ready to munge token streams.
func NewInterner() *Interner {
	return &Interner{words: []string{""}, index: make(map[string]rune)}
}

// Munge maps tokens to a single string of interned runes, one per token,
// allocating a new rune for any token not seen by this Interner before.
func (in *Interner) Munge(tokens []string) string {
	var b strings.Builder
	b.Grow(len(tokens))
	for _, t := range tokens {
		r, ok := in.index[t]
		if !ok {
			in.words = append(in.words, t)
			r = rune(len(in.words) - 1)
			in.index[t] = r
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Word returns the token that was interned as r.
func (in *Interner) Word(r rune) string {
	i := int(r)
	if i < 0 || i >= len(in.words) {
		return ""
	}
	return in.words[i]
}

// WordsToChars interns both token lists in the same table and returns their
// munged char-strings alongside the shared word table — the two-way
// equivalent of diff_wordsToChars.
func WordsToChars(left, right []string) (leftChars, rightChars string, in *Interner) {
	in = NewInterner()
	// The Python munges tokenList2 first, then tokenList1, so that ties in
	// allocation order match the reference implementation's output byte for
	// byte; preserved here even though nothing downstream depends on it.
	rightChars = in.Munge(right)
	leftChars = in.Munge(left)
	return leftChars, rightChars, in
}
