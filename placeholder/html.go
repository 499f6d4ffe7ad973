package placeholder

import "github.com/vortex/xdiff/dom"

// NewHTMLMaker builds a Maker specialized the way HTMLPlaceholderMaker is:
// singleFormatting tags (e.g. br, hr) collapse to one placeholder with no
// close half; dualFormatting tags (e.g. b, em) share a placeholder pair
// across every occurrence regardless of attributes; complexFormatting tags
// (e.g. a, with an href that must survive the round trip) get an
// attribute-sensitive pair like the base Maker's default.
func NewHTMLMaker(singleFormatting, dualFormatting, complexFormatting, textTags []string) *Maker {
	single := toSet(singleFormatting)
	dual := toSet(dualFormatting)

	all := make([]string, 0, len(singleFormatting)+len(dualFormatting)+len(complexFormatting))
	all = append(all, singleFormatting...)
	all = append(all, dualFormatting...)
	all = append(all, complexFormatting...)

	m := NewMaker(textTags, all)
	m.bothPlaceholders = func(n dom.Node) (rune, rune) {
		tag := n.Tag()
		switch {
		case single[tag]:
			ph := m.GetPlaceholder(tag, n.Attrs(), Single, 0)
			return ph, 0
		case dual[tag]:
			phClose := m.GetPlaceholder(tag, nil, Close, 0)
			phOpen := m.GetPlaceholder(tag, nil, Open, phClose)
			return phOpen, phClose
		default:
			return m.defaultBothPlaceholders(n)
		}
	}

	// Pre-allocate dual-tag placeholders up front so their codepoints come
	// out in a fixed, tag-list order regardless of which tag a document
	// happens to use first — the ordering richtext's linearizer depends on
	// (descending-codepoint reopen order falls out of allocation order).
	for _, tag := range dualFormatting {
		phClose := m.GetPlaceholder(tag, nil, Close, 0)
		m.GetPlaceholder(tag, nil, Open, phClose)
	}

	return m
}

// DefaultHTMLMaker returns the Maker configuration markdowndiff's HTML
// formatter uses: br/hr collapse with no content, b/strong/em/i/del/ins/
// sub/sup/u share placeholders regardless of attributes, a carries its
// href through, and p/h1-h6/li/td/para are the text-bearing containers
// searched for formatting subtrees.
func DefaultHTMLMaker() *Maker {
	return NewHTMLMaker(
		[]string{"br", "hr"},
		[]string{"strong", "b", "em", "i", "del", "ins", "sub", "sup", "u"},
		[]string{"a"},
		[]string{"p", "h1", "h2", "h3", "h4", "h5", "h6", "li", "td", "para"},
	)
}
