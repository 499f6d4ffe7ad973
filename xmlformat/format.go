// Package xmlformat applies an edit script produced by package editscript
// onto a copy of the left tree as diff:* marker attributes, rather than
// performing the edit for real — so the output shows both the old and new
// content with enough annotation to render a human-readable diff. Ported
// from markdowndiff's XMLFormatter.
package xmlformat

import (
	"strings"

	"github.com/vortex/xdiff/dom"
	"github.com/vortex/xdiff/editscript"
	"github.com/vortex/xdiff/placeholder"
	"github.com/vortex/xdiff/richtext"
)

// Normalize is the whitespace-handling bitmask BaseFormatter's normalize
// parameter takes.
type Normalize int

const (
	WSNone Normalize = 0
	WSTags Normalize = 1 << 0
	WSText Normalize = 1 << 1
	WSBoth Normalize = WSTags | WSText
)

const (
	InsertName = "diff:insert"
	DeleteName = "diff:delete"
	RenameName = "diff:rename"
	MoveName   = "diff:move"
)

// Config tunes Formatter. SingleFormattingTags/DualFormattingTags/
// ComplexFormattingTags/TextTags follow placeholder.NewHTMLMaker's split —
// leave all empty and call NewHTML instead for the stock HTML vocabulary.
type Config struct {
	Normalize             Normalize
	TextTags              []string
	SingleFormattingTags  []string
	DualFormattingTags    []string
	ComplexFormattingTags []string
}

// Formatter turns an edit script back into an annotated document. One
// Formatter belongs to one diff run: its placeholder.Maker accumulates
// state (dual-tag ordering, diff-action variants) across Prepare/Format.
type Formatter struct {
	cfg Config
	ph  *placeholder.Maker
}

// New builds a Formatter for a custom tag vocabulary.
func New(cfg Config) *Formatter {
	return &Formatter{
		cfg: cfg,
		ph: placeholder.NewHTMLMaker(
			cfg.SingleFormattingTags,
			cfg.DualFormattingTags,
			cfg.ComplexFormattingTags,
			cfg.TextTags,
		),
	}
}

// NewHTML builds a Formatter preconfigured with markdowndiff's default
// HTML single/dual/complex formatting-tag split.
func NewHTML(normalize Normalize) *Formatter {
	return &Formatter{cfg: Config{Normalize: normalize}, ph: placeholder.DefaultHTMLMaker()}
}

// Prepare collapses formatting subtrees into placeholders in both trees
// (in place) before matching/diffing sees them. Mirrors
// XMLFormatter.prepare, minus comment stripping (left to the caller, since
// dom.Node has no comment-node concept — see SPEC_FULL.md's note that
// comment handling lives in the caller-supplied DOM adapter).
func (f *Formatter) Prepare(left, right dom.Node) {
	f.ph.DoTree(left)
	f.ph.DoTree(right)
}

// Format applies actions to a fresh copy of orig, annotating it with
// diff:* marker attributes, then expands placeholders back into real
// subtrees and returns the annotated document. An action whose xpath fails
// to resolve aborts the whole call with that error, matching _xpath's
// unguarded raise in the original.
func (f *Formatter) Format(actions []editscript.Action, orig dom.Node) (dom.Node, error) {
	root := orig.Clone()
	for _, a := range actions {
		if err := f.handle(root, a); err != nil {
			return nil, err
		}
	}
	f.ph.UndoTree(root)
	return root, nil
}

func (f *Formatter) handle(root dom.Node, action editscript.Action) error {
	switch a := action.(type) {
	case editscript.DeleteAttrib:
		node, err := resolve(root, a.XPath)
		if err != nil {
			return err
		}
		f.deleteAttrib(node, a.Name)
	case editscript.DeleteNode:
		node, err := resolve(root, a.XPath)
		if err != nil {
			return err
		}
		f.markDeleted(node)
	case editscript.InsertAttrib:
		node, err := resolve(root, a.XPath)
		if err != nil {
			return err
		}
		f.insertAttrib(node, a.Name, a.Value)
	case editscript.InsertNode:
		target, err := resolve(root, a.TargetXPath)
		if err != nil {
			return err
		}
		pos := realInsertPosition(target, a.Position)
		newNode := target.NewChild(a.Tag)
		f.insertNode(target, newNode, pos)
	case editscript.MoveNode:
		node, err := resolve(root, a.XPath)
		if err != nil {
			return err
		}
		target, err := resolve(root, a.TargetXPath)
		if err != nil {
			return err
		}
		inserted := node.Clone()
		f.markDeleted(node)
		pos := realInsertPosition(target, a.Position)
		f.insertNode(target, inserted, pos)
		inserted.SetAttr(MoveName, "")
		node.SetAttr(MoveName, "")
	case editscript.RenameNode:
		node, err := resolve(root, a.XPath)
		if err != nil {
			return err
		}
		node.SetAttr(RenameName, node.Tag())
		node.SetTag(a.NewTag)
	case editscript.UpdateAttrib:
		node, err := resolve(root, a.XPath)
		if err != nil {
			return err
		}
		f.updateAttrib(node, a.Name, a.NewValue)
	case editscript.UpdateTextIn:
		node, err := resolve(root, a.XPath)
		if err != nil {
			return err
		}
		f.handleUpdateTextIn(node, a.NewText)
	case editscript.UpdateTextAfter:
		node, err := resolve(root, a.XPath)
		if err != nil {
			return err
		}
		f.handleUpdateTextAfter(node, a.NewText)
	}
	return nil
}

func (f *Formatter) extendDiffAttr(node dom.Node, action, value string) {
	key := "diff:" + action + "-attr"
	if old, ok := node.Attr(key); ok && old != "" {
		value = old + ";" + value
	}
	node.SetAttr(key, value)
}

func (f *Formatter) deleteAttrib(node dom.Node, name string) {
	node.DeleteAttr(name)
	f.extendDiffAttr(node, "delete", name)
}

func (f *Formatter) insertAttrib(node dom.Node, name, value string) {
	node.SetAttr(name, value)
	f.extendDiffAttr(node, "add", name)
}

func (f *Formatter) updateAttrib(node dom.Node, name, value string) {
	old, _ := node.Attr(name)
	node.SetAttr(name, value)
	f.extendDiffAttr(node, "update", name+":"+old)
}

func (f *Formatter) markDeleted(node dom.Node) {
	node.SetAttr(DeleteName, "")
}

func (f *Formatter) insertNode(target, node dom.Node, pos int) {
	node.SetAttr(InsertName, "")
	target.InsertChildAt(pos, node)
}

// realInsertPosition translates a position expressed in terms of the
// right tree's (post-diff) child indices into the equivalent position
// among target's current children, which may still include children
// already marked diff:delete. Mirrors _get_real_insert_position.
func realInsertPosition(target dom.Node, position int) int {
	pos := 0
	offset := 0
	for _, child := range target.Children() {
		if _, deleted := child.Attr(DeleteName); deleted {
			offset++
		} else {
			pos++
		}
		if pos > position {
			break
		}
	}
	return position + offset
}

func (f *Formatter) handleUpdateTextIn(node dom.Node, newText string) {
	if _, inserted := node.Attr(InsertName); inserted {
		if _, moved := node.Attr(MoveName); !moved {
			node.SetText(newText)
			return
		}
	}
	leftValue := node.Text()
	node.SetText("")
	node.SetText(f.diffTags(leftValue, newText))
}

func (f *Formatter) handleUpdateTextAfter(node dom.Node, newText string) {
	leftValue := node.Tail()
	parent := node.Parent()
	if parent != nil {
		if _, inserted := parent.Attr(InsertName); inserted {
			if _, moved := parent.Attr(MoveName); !moved {
				node.SetTail(newText)
				return
			}
		}
	}
	node.SetTail(f.diffTags(leftValue, newText))
}

// diffTags is _make_diff_tags: optionally collapses whitespace, tokenizes
// both sides on word/punctuation/placeholder boundaries, and hands them to
// the rich-text renderer.
func (f *Formatter) diffTags(leftValue, rightValue string) string {
	if f.cfg.Normalize&WSText != 0 {
		leftValue = strings.TrimSpace(collapseWhitespace(leftValue))
		rightValue = strings.TrimSpace(collapseWhitespace(rightValue))
	}
	leftTokens := splitWithPlaceholders(f.ph, leftValue)
	rightTokens := splitWithPlaceholders(f.ph, rightValue)
	return richtext.Diff(f.ph, leftTokens, rightTokens)
}

func collapseWhitespace(s string) string {
	var b strings.Builder
	inRun := false
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
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

// splitWithPlaceholders is utils.splitString with the Maker's known
// placeholder runes added to the break-character set, so a placeholder
// embedded in running text always ends up as its own token.
func splitWithPlaceholders(m *placeholder.Maker, s string) []string {
	breaks := make([]rune, 0)
	for _, r := range s {
		if m.IsPlaceholder(r) {
			breaks = append(breaks, r)
		}
	}
	return tokenizeWithBreaks(s, breaks)
}

func tokenizeWithBreaks(s string, extraBreak []rune) []string {
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
