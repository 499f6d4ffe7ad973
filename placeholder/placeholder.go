// Package placeholder replaces formatting subtrees (<b>, <a href=...>, ...)
// with single runes from the Unicode private-use area so that a flat text
// differ can diff rich text as if it were plain text, then reconstructs the
// subtrees from the runes afterward. Ported from markdowndiff's
// PlaceholderMaker / HTMLPlaceholderMaker.
package placeholder

import (
	"fmt"

	"github.com/vortex/xdiff/dom"
)

// Start is U+E000, the beginning of the BMP's private-use area. The
// allocation counter begins here and is incremented before each use, so the
// first codepoint handed out is Start+1 (U+E001).
const Start = 0xE000

// Kind distinguishes an opening placeholder, a closing placeholder, and a
// self-closing (no children) placeholder.
type Kind int

const (
	Open Kind = iota
	Close
	Single
)

// Entry is what a placeholder rune decodes back to: a template element
// (tag + attributes, deliberately stripped of text/tail/children) plus
// enough bookkeeping to pair an Open placeholder with its Close.
type Entry struct {
	Tag     string
	Attrs   []dom.Attr
	Kind    Kind
	ClosePh rune // paired Close placeholder, for a Kind == Open entry
}

type key struct {
	canon   string
	kind    Kind
	closePh rune
}

// Maker allocates and decodes placeholders for a fixed set of formatting
// tags. Not safe for concurrent use; one Maker belongs to one diff run.
type Maker struct {
	textTags       map[string]bool
	formattingTags map[string]bool

	ph2entry map[rune]Entry
	key2ph   map[key]rune
	next     rune

	// diff-action placeholders used by richtext.Diff, pre-allocated so they exist
	// even if the source trees never contain an insert/delete marker yet.
	InsertOpen, InsertClose rune
	DeleteOpen, DeleteClose rune

	// bothPlaceholders computes the (open, close) pair for a formatting
	// element about to be collapsed. The base behavior always allocates
	// an attribute-sensitive open/close pair; NewHTMLMaker overrides it
	// with the single/dual/complex-tag split HTMLPlaceholderMaker adds.
	bothPlaceholders func(dom.Node) (open, close rune)
}

// NewMaker builds a Maker for the given text-bearing tags (elements whose
// text/tail is searched for formatting subtrees to collapse) and the given
// formatting tags (elements collapsed into placeholders wherever found
// inside a text tag).
func NewMaker(textTags, formattingTags []string) *Maker {
	m := &Maker{
		textTags:       toSet(textTags),
		formattingTags: toSet(formattingTags),
		ph2entry:       make(map[rune]Entry),
		key2ph:         make(map[key]rune),
		next:           Start,
	}
	m.InsertClose = m.GetPlaceholder("diff:insert", nil, Close, 0)
	m.InsertOpen = m.GetPlaceholder("diff:insert", nil, Open, m.InsertClose)
	m.DeleteClose = m.GetPlaceholder("diff:delete", nil, Close, 0)
	m.DeleteOpen = m.GetPlaceholder("diff:delete", nil, Open, m.DeleteClose)
	m.bothPlaceholders = m.defaultBothPlaceholders
	return m
}

// GetBothPlaceholders returns the (open, close) placeholder pair for a
// formatting element n that DoElement is about to collapse. Close is 0
// (not a valid placeholder rune) when n has no distinct closing half.
func (m *Maker) GetBothPlaceholders(n dom.Node) (open, close rune) {
	return m.bothPlaceholders(n)
}

func (m *Maker) defaultBothPlaceholders(n dom.Node) (rune, rune) {
	phClose := m.GetPlaceholder(n.Tag(), n.Attrs(), Close, 0)
	phOpen := m.GetPlaceholder(n.Tag(), n.Attrs(), Open, phClose)
	return phOpen, phClose
}

func toSet(xs []string) map[string]bool {
	s := make(map[string]bool, len(xs))
	for _, x := range xs {
		s[x] = true
	}
	return s
}

// IsFormatting reports whether n's tag is one of the formatting tags this
// Maker collapses.
func (m *Maker) IsFormatting(n dom.Node) bool {
	return m.formattingTags[n.Tag()]
}

// GetPlaceholder returns the rune for (tag, attrs, kind, closePh),
// allocating a new one the first time this exact combination is seen. The
// canonical form used for deduplication is the tag plus a stable rendering
// of attrs — callers that want attribute-blind dedup (dual-style formatting
// tags) must pass nil attrs themselves.
func (m *Maker) GetPlaceholder(tag string, attrs []dom.Attr, kind Kind, closePh rune) rune {
	k := key{canon: canonicalForm(tag, attrs), kind: kind, closePh: closePh}
	if ph, ok := m.key2ph[k]; ok {
		return ph
	}
	m.next++
	ph := m.next
	m.ph2entry[ph] = Entry{Tag: tag, Attrs: attrs, Kind: kind, ClosePh: closePh}
	m.key2ph[k] = ph
	return ph
}

func canonicalForm(tag string, attrs []dom.Attr) string {
	s := tag
	for _, a := range attrs {
		s += "\x00" + a.Name + "=" + a.Value
	}
	return s
}

// Entry returns the decode entry for a placeholder rune, and whether ph is
// actually a placeholder known to this Maker.
func (m *Maker) Entry(ph rune) (Entry, bool) {
	e, ok := m.ph2entry[ph]
	return e, ok
}

// IsPlaceholder reports whether r is a placeholder this Maker allocated.
func (m *Maker) IsPlaceholder(r rune) bool {
	_, ok := m.ph2entry[r]
	return ok
}

// GetModifiedPlaceholder returns a new placeholder for ph's entry with an
// extra diff:<action> marker recorded (e.g. "diff:insert-formatting"),
// reallocating the close half too when ph is an Open or Close placeholder.
func (m *Maker) GetModifiedPlaceholder(ph rune, action string) rune {
	entry, ok := m.ph2entry[ph]
	if !ok {
		panic(fmt.Sprintf("placeholder: unknown placeholder %U", ph))
	}
	attrs := append(append([]dom.Attr(nil), entry.Attrs...), dom.Attr{Name: "diff:" + action, Value: ""})

	if entry.Kind == Single {
		return m.GetPlaceholder(entry.Tag, attrs, Single, 0)
	}
	phClose := m.GetPlaceholder(entry.Tag, attrs, Close, 0)
	if entry.Kind == Close {
		return phClose
	}
	return m.GetPlaceholder(entry.Tag, attrs, Open, phClose)
}
