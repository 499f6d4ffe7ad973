package placeholder

import (
	"strings"

	"github.com/vortex/xdiff/dom"
)

// DoTree collapses every formatting subtree found under each of tree's
// text-tag descendants into placeholder runes, searching in reverse
// document order so that a text tag nested inside another text tag is
// processed innermost-first. Mirrors PlaceholderMaker.do_tree.
func (m *Maker) DoTree(tree dom.Node) {
	if len(m.textTags) == 0 {
		return
	}
	var targets []dom.Node
	for _, n := range dom.PreOrder(tree) {
		if m.textTags[n.Tag()] {
			targets = append(targets, n)
		}
	}
	for i := len(targets) - 1; i >= 0; i-- {
		m.DoElement(targets[i])
	}
}

// DoElement collapses every formatting child of element into a placeholder
// pair woven into the surrounding text/tail, removing the child from the
// tree once its content has been captured as text. Mirrors
// PlaceholderMaker.do_element.
func (m *Maker) DoElement(element dom.Node) {
	children := append([]dom.Node(nil), element.Children()...)
	var previousChild dom.Node

	for _, child := range children {
		if !m.IsFormatting(child) {
			previousChild = child
			continue
		}

		m.DoElement(child)

		currentText := element.Text()
		if previousChild != nil {
			currentText = previousChild.Tail()
		}
		tail := child.Tail()
		text := child.Text()
		phOpen, phClose := m.GetBothPlaceholders(child)

		var b strings.Builder
		b.WriteString(currentText)
		b.WriteRune(phOpen)
		b.WriteString(text)
		if phClose != 0 {
			b.WriteRune(phClose)
		}
		b.WriteString(tail)
		combined := b.String()

		if previousChild != nil {
			previousChild.SetTail(combined)
		} else {
			element.SetText(combined)
		}
		element.RemoveChild(child)
	}
}

// unit is one token of a placeholder-bearing string: either a literal run
// of ordinary text or a single placeholder rune.
type unit struct {
	isPH bool
	ph   rune
	lit  string
}

func (m *Maker) splitUnits(text string) []unit {
	var units []unit
	var lit []rune
	flush := func() {
		if len(lit) > 0 {
			units = append(units, unit{lit: string(lit)})
			lit = nil
		}
	}
	for _, r := range text {
		if m.IsPlaceholder(r) {
			flush()
			units = append(units, unit{isPH: true, ph: r})
			continue
		}
		lit = append(lit, r)
	}
	flush()
	return units
}

// UndoString parses text for placeholder runes and reconstructs the
// elements they stand for, using factory to create new detached nodes in
// the same tree/arena as factory itself. It returns the plain text that
// precedes the first reconstructed element (the rest attaches as each
// element's tail) and the reconstructed elements in order. Mirrors
// PlaceholderMaker.undo_string, minus the intermediate "wrap" element.
func (m *Maker) UndoString(text string, factory dom.Node) (leadingText string, children []dom.Node) {
	units := m.splitUnits(text)
	idx := 0
	pop := func() (unit, bool) {
		if idx >= len(units) {
			return unit{}, false
		}
		u := units[idx]
		idx++
		return u, true
	}

	var cur dom.Node
	for {
		u, ok := pop()
		if !ok {
			break
		}
		if !u.isPH {
			if cur != nil {
				cur.SetTail(cur.Tail() + u.lit)
			} else {
				leadingText += u.lit
			}
			continue
		}

		entry, known := m.Entry(u.ph)
		if !known {
			continue
		}

		switch entry.Kind {
		case Single:
			elem := newElemFromEntry(factory, entry)
			children = append(children, elem)
			cur = elem

		case Open:
			elem := newElemFromEntry(factory, entry)
			var inner strings.Builder
			nested := 0
			for {
				nu, ok := pop()
				if !ok {
					break
				}
				switch {
				case nu.isPH && nu.ph == u.ph:
					nested++
					inner.WriteRune(nu.ph)
				case nu.isPH && nu.ph == entry.ClosePh:
					if nested == 0 {
						goto closed
					}
					nested--
					inner.WriteRune(nu.ph)
				case nu.isPH:
					inner.WriteRune(nu.ph)
				default:
					inner.WriteString(nu.lit)
				}
			}
		closed:
			elem.SetText(inner.String())
			m.UndoElement(elem, factory)
			children = append(children, elem)
			cur = elem

		case Close:
			// Unmatched close placeholder in malformed input; drop it.
		}
	}
	return leadingText, children
}

func newElemFromEntry(factory dom.Node, entry Entry) dom.Node {
	elem := factory.NewChild(entry.Tag)
	for _, a := range entry.Attrs {
		elem.SetAttr(a.Name, a.Value)
	}
	return elem
}

// UndoElement recursively expands every placeholder rune found in elem's
// text and tail (and in its children's text/tail) back into real
// subtrees, inserting them at the right position. Mirrors
// PlaceholderMaker.undo_element.
func (m *Maker) UndoElement(elem dom.Node, factory dom.Node) {
	if text := elem.Text(); text != "" {
		newText, newChildren := m.UndoString(text, factory)
		if newText != text || len(newChildren) > 0 {
			elem.SetText(newText)
			for i, c := range newChildren {
				elem.InsertChildAt(i, c)
			}
		}
	}

	for _, child := range elem.Children() {
		m.UndoElement(child, factory)
	}

	if tail := elem.Tail(); tail != "" {
		newTail, newChildren := m.UndoString(tail, factory)
		if newTail != tail || len(newChildren) > 0 {
			elem.SetTail(newTail)
			if parent := elem.Parent(); parent != nil {
				idx := dom.IndexOf(parent, elem) + 1
				for _, c := range newChildren {
					parent.InsertChildAt(idx, c)
					idx++
				}
			}
		}
	}
}

// UndoTree is UndoElement applied to the whole tree rooted at tree.
func (m *Maker) UndoTree(tree dom.Node) {
	m.UndoElement(tree, tree)
}
