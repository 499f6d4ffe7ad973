// Package richtext renders the word-level diff between two placeholder-
// bearing text runs, re-threading nested formatting placeholders through
// the result so that e.g. a bold span that only partially changed ends up
// correctly re-opened around just the changed words. Ported from
// markdowndiff's XMLFormatter._diff_rich_text and its helpers.
package richtext

import (
	"sort"

	"github.com/vortex/xdiff/dom"
	"github.com/vortex/xdiff/internal/text"
	"github.com/vortex/xdiff/internal/textdiff"
	"github.com/vortex/xdiff/placeholder"
)

// stateSet is the set of placeholder runes "open" at some point in a token
// stream — i.e. which formatting spans currently enclose that point.
type stateSet map[rune]bool

func (s stateSet) clone() stateSet {
	out := make(stateSet, len(s))
	for k := range s {
		out[k] = true
	}
	return out
}

func union(a, b stateSet) stateSet {
	out := a.clone()
	for k := range b {
		out[k] = true
	}
	return out
}

func intersect(a, b stateSet) stateSet {
	out := make(stateSet)
	for k := range a {
		if b[k] {
			out[k] = true
		}
	}
	return out
}

func diffSet(a, b stateSet) stateSet { // a - b
	out := make(stateSet)
	for k := range a {
		if !b[k] {
			out[k] = true
		}
	}
	return out
}

// contentAndStates strips every non-Single placeholder from tokens, and
// records, at each resulting position, the set of Open placeholders
// currently "active" (nesting-count > 0) once that position is reached.
// Mirrors XMLFormatter._get_content_and_states.
func contentAndStates(m *placeholder.Maker, tokens []string) (content []string, stateByIndex map[int]map[rune]int) {
	stateByIndex = make(map[int]map[rune]int)
	openClose := make(map[rune]rune)
	current := make(map[rune]int)

	snapshot := func() map[rune]int {
		out := make(map[rune]int, len(current))
		for k, v := range current {
			out[k] = v
		}
		return out
	}

	for _, tok := range tokens {
		r := []rune(tok)
		if len(r) != 1 || !m.IsPlaceholder(r[0]) {
			content = append(content, tok)
			continue
		}
		ch := r[0]
		entry, _ := m.Entry(ch)
		switch entry.Kind {
		case placeholder.Single:
			content = append(content, tok)
		case placeholder.Open:
			openClose[ch] = entry.ClosePh
			openClose[entry.ClosePh] = ch
			current[ch]++
			stateByIndex[len(content)] = snapshot()
		case placeholder.Close:
			openCh := openClose[ch]
			current[openCh]--
			stateByIndex[len(content)] = snapshot()
		}
	}
	return content, stateByIndex
}

func updateState(current stateSet, stateByIndex map[int]map[rune]int, index int) stateSet {
	raw, ok := stateByIndex[index]
	if !ok {
		return current
	}
	out := make(stateSet)
	for ph, level := range raw {
		if level > 0 {
			out[ph] = true
		}
	}
	return out
}

// mergeLinkPlaceholders pairs at most one inserted and one deleted <a>
// placeholder: if their hrefs match, the deleted one survives unchanged as
// common; if they differ, a fresh placeholder carrying a diff:change-target
// attribute replaces both. Mirrors _merge_link_placeholders.
func mergeLinkPlaceholders(m *placeholder.Maker, common, inserted, deleted stateSet) {
	var insertedLink, deletedLink rune
	foundIns, foundDel := false, false
	for ph := range inserted {
		if e, ok := m.Entry(ph); ok && e.Tag == "a" {
			insertedLink = ph
			foundIns = true
		}
	}
	if !foundIns {
		return
	}
	for ph := range deleted {
		if e, ok := m.Entry(ph); ok && e.Tag == "a" {
			deletedLink = ph
			foundDel = true
		}
	}
	if !foundDel {
		return
	}

	delete(inserted, insertedLink)
	delete(deleted, deletedLink)

	oldHref := attrValue(m, deletedLink, "href")
	newHref := attrValue(m, insertedLink, "href")

	if oldHref == newHref {
		common[deletedLink] = true
		return
	}

	attrs := changeTargetAttrs(newHref, oldHref)
	phClose := m.GetPlaceholder("a", attrs, placeholder.Close, 0)
	phOpen := m.GetPlaceholder("a", attrs, placeholder.Open, phClose)
	common[phOpen] = true
}

func changeTargetAttrs(newHref, oldHref string) []dom.Attr {
	return []dom.Attr{
		{Name: "href", Value: newHref},
		{Name: "diff:change-target", Value: oldHref + " -> " + newHref},
	}
}

func attrValue(m *placeholder.Maker, ph rune, name string) string {
	entry, ok := m.Entry(ph)
	if !ok {
		return ""
	}
	for _, a := range entry.Attrs {
		if a.Name == name {
			return a.Value
		}
	}
	return ""
}

// mergeStates combines the left and right formatting state at one aligned
// output position: placeholders open on both sides carry through as-is;
// placeholders open on only one side get a fresh "insert-formatting" or
// "delete-formatting" variant so the renderer can style the formatting
// change itself, independent of the text change. Mirrors _merge_states.
func mergeStates(m *placeholder.Maker, left, right stateSet) stateSet {
	common := intersect(left, right)
	inserted := diffSet(right, left)
	deleted := diffSet(left, right)

	mergeLinkPlaceholders(m, common, inserted, deleted)

	merged := common
	for ph := range inserted {
		merged[m.GetModifiedPlaceholder(ph, "insert-formatting")] = true
	}
	for ph := range deleted {
		merged[m.GetModifiedPlaceholder(ph, "delete-formatting")] = true
	}
	return merged
}

// insertSpacing re-introduces a single space before an Open placeholder
// immediately following a word, matching the original text's word
// boundaries without doubling spaces already baked into the tokens.
// Mirrors _insert_spacing.
func insertSpacing(m *placeholder.Maker, tokens []string) []string {
	var out []string
	pendingSpace := false
	for _, tok := range tokens {
		r := []rune(tok)
		if len(r) == 1 && m.IsPlaceholder(r[0]) {
			if pendingSpace {
				if entry, ok := m.Entry(r[0]); ok && entry.Kind == placeholder.Open {
					out = append(out, " ")
					pendingSpace = false
				}
			}
			out = append(out, tok)
			continue
		}
		if pendingSpace {
			out = append(out, " ")
		}
		pendingSpace = true
		out = append(out, tok)
	}
	return out
}

// Diff renders the rich-text diff of leftTokens against rightTokens: it
// word-diffs the two placeholder-bearing token streams, then re-threads
// placeholders through the result so formatting spans that survive the
// text change stay correctly nested, and ones that don't get
// insert-formatting/delete-formatting markers. Mirrors
// XMLFormatter._diff_rich_text end to end.
func Diff(m *placeholder.Maker, leftTokens, rightTokens []string) string {
	leftContent, leftStates := contentAndStates(m, leftTokens)
	rightContent, rightStates := contentAndStates(m, rightTokens)

	charsLeft, charsRight, interner := text.WordsToChars(leftContent, rightContent)
	munged := textdiff.Diff(charsLeft, charsRight)
	words := charsToWords(munged, interner)

	var stateByIndex []stateSet
	currentLeft := make(stateSet)
	currentRight := make(stateSet)
	leftIndex, rightIndex := 0, 0

	for _, w := range words {
		switch w.op {
		case textdiff.Equal:
			currentLeft = updateState(currentLeft, leftStates, leftIndex)
			currentRight = updateState(currentRight, rightStates, rightIndex)
			stateByIndex = append(stateByIndex, mergeStates(m, currentLeft.clone(), currentRight.clone()))
			leftIndex++
			rightIndex++
		case textdiff.Insert:
			currentRight = updateState(currentRight, rightStates, rightIndex)
			st := currentRight.clone()
			st[m.InsertOpen] = true
			stateByIndex = append(stateByIndex, st)
			rightIndex++
		case textdiff.Delete:
			currentLeft = updateState(currentLeft, leftStates, leftIndex)
			st := currentLeft.clone()
			st[m.DeleteOpen] = true
			stateByIndex = append(stateByIndex, st)
			leftIndex++
		}
	}

	oldState := make(stateSet)
	var split []string
	var openStack []rune

	for i, st := range stateByIndex {
		opened := diffSet(st, oldState)
		closed := diffSet(oldState, st)
		toReopen := make(stateSet)

		for len(closed) > 0 {
			last := openStack[len(openStack)-1]
			openStack = openStack[:len(openStack)-1]
			entry, _ := m.Entry(last)
			split = append(split, string(entry.ClosePh))
			if closed[last] {
				delete(closed, last)
			} else {
				toReopen[last] = true
			}
		}

		toOpen := union(opened, toReopen)
		sorted := make([]rune, 0, len(toOpen))
		for ph := range toOpen {
			sorted = append(sorted, ph)
		}
		sort.Sort(sort.Reverse(runeSlice(sorted)))
		for _, ph := range sorted {
			openStack = append(openStack, ph)
			split = append(split, string(ph))
		}

		split = append(split, words[i].token)
		oldState = st
	}

	for len(openStack) > 0 {
		ph := openStack[len(openStack)-1]
		openStack = openStack[:len(openStack)-1]
		entry, _ := m.Entry(ph)
		split = append(split, string(entry.ClosePh))
	}

	spaced := insertSpacing(m, split)
	var out []byte
	for _, s := range spaced {
		out = append(out, s...)
	}
	return string(out)
}

type runeSlice []rune

func (r runeSlice) Len() int           { return len(r) }
func (r runeSlice) Less(i, j int) bool { return r[i] < r[j] }
func (r runeSlice) Swap(i, j int)      { r[i], r[j] = r[j], r[i] }

type wordOp struct {
	op    textdiff.Op
	token string
}

// charsToWords re-expands the interned char-level diff segments back into
// (op, token) pairs, splitting multi-char equal/insert/delete runs into
// one entry per original token. Mirrors utils.diff_charsToWords.
func charsToWords(segs []textdiff.Segment, in *text.Interner) []wordOp {
	var out []wordOp
	for _, s := range segs {
		for _, r := range s.Text {
			out = append(out, wordOp{op: s.Op, token: in.Word(r)})
		}
	}
	return out
}
