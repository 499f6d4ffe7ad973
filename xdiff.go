// Package xdiff computes a structural-plus-textual edit script between two
// labeled ordered trees and can render that script back onto a copy of the
// original tree as diff:* marker annotations. Ported from markdowndiff
// (diff.py/formatting.py/placeholder.py/utils.py), generalized from lxml
// Elements to the dom.Node contract so any tree representation can plug in.
package xdiff

import (
	"github.com/vortex/xdiff/dom"
	"github.com/vortex/xdiff/editscript"
	"github.com/vortex/xdiff/match"
	"github.com/vortex/xdiff/xmlformat"
)

// Config is the full configuration surface: matcher tuning plus formatter
// tag vocabulary and whitespace handling.
type Config struct {
	// F is the minimum node_ratio for two nodes to be considered matched.
	// Must be in (0, 1]; zero is treated as the default, 0.5.
	F float64
	// UniqueAttrs short-circuits matching when present on both sides.
	UniqueAttrs []match.UniqueAttr
	// FastMatch enables the LCS pre-pass before the greedy matching pass.
	FastMatch bool

	// Normalize controls whitespace handling in UpdateTextIn/UpdateTextAfter
	// rendering (xmlformat.WSNone/WSTags/WSText/WSBoth). Only the WSText bit
	// has an effect; nothing in this module reads WSTags, and inter-tag
	// whitespace is never stripped.
	Normalize xmlformat.Normalize
	// TextTags are the elements searched for formatting subtrees to
	// collapse into placeholders.
	TextTags []string
	// SingleFormattingTags collapse to one placeholder with no content
	// (e.g. br, hr).
	SingleFormattingTags []string
	// DualFormattingTags share a placeholder pair across every occurrence
	// regardless of attributes (e.g. b, em).
	DualFormattingTags []string
	// ComplexFormattingTags get an attribute-sensitive placeholder pair
	// (e.g. a, whose href must survive the round trip).
	ComplexFormattingTags []string
}

// DefaultConfig mirrors Differ.__init__'s defaults (F=0.5, fast_match
// disabled, no unique attributes) plus HTMLPlaceholderMaker.getDefault's
// tag vocabulary.
func DefaultConfig() Config {
	return Config{
		F:                     0.5,
		TextTags:              []string{"p", "h1", "h2", "h3", "h4", "h5", "h6", "li", "td", "para"},
		SingleFormattingTags:  []string{"br", "hr"},
		DualFormattingTags:    []string{"strong", "b", "em", "i", "del", "ins", "sub", "sup", "u"},
		ComplexFormattingTags: []string{"a"},
	}
}

// Differ holds the per-run state of one diff: the placeholder codec
// (allocation counter, reverse map) and the prepared left tree a later
// Format call renders against. It is not reentrant — Diff may be called
// at most once per Differ; start a new Differ for each run.
type Differ struct {
	cfg          Config
	fmtr         *xmlformat.Formatter
	used         bool
	preparedLeft dom.Node
}

// New validates cfg and returns a Differ ready for one Diff/Format run.
func New(cfg Config) (*Differ, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	fmtrCfg := xmlformat.Config{
		Normalize:             cfg.Normalize,
		TextTags:              cfg.TextTags,
		SingleFormattingTags:  cfg.SingleFormattingTags,
		DualFormattingTags:    cfg.DualFormattingTags,
		ComplexFormattingTags: cfg.ComplexFormattingTags,
	}
	return &Differ{cfg: cfg, fmtr: xmlformat.New(fmtrCfg)}, nil
}

func validateConfig(cfg Config) error {
	tagOf := func(tags []string) map[string]bool {
		s := make(map[string]bool, len(tags))
		for _, t := range tags {
			s[t] = true
		}
		return s
	}
	single := tagOf(cfg.SingleFormattingTags)
	dual := tagOf(cfg.DualFormattingTags)
	complexTags := tagOf(cfg.ComplexFormattingTags)

	for t := range single {
		if dual[t] || complexTags[t] {
			return &ConfigurationError{Reason: "tag " + t + " listed in more than one formatting-tag category"}
		}
	}
	for t := range dual {
		if complexTags[t] {
			return &ConfigurationError{Reason: "tag " + t + " listed in more than one formatting-tag category"}
		}
	}
	if cfg.F < 0 || cfg.F > 1 {
		return &ConfigurationError{Reason: "F must be in (0, 1]"}
	}
	return nil
}

// Diff computes the edit script transforming left into right. It mutates
// both left and right in place, collapsing formatting subtrees (per cfg's
// tag vocabulary) into placeholder runes before matching — the same
// mutation markdowndiff's formatter.prepare() performs on its caller's
// trees. The structural edit itself is computed against a private copy of
// left, so the tree this call leaves in the caller's hands is exactly what
// a subsequent Format call expects as its rendering base.
func (d *Differ) Diff(left, right dom.Node) ([]editscript.Action, error) {
	if d.used {
		return nil, &InvalidInputError{Reason: "Differ is not reentrant; construct a new Differ for each run"}
	}
	if left == nil || right == nil {
		return nil, &InvalidInputError{Reason: "left and right must both be non-nil trees"}
	}
	d.used = true

	d.fmtr.Prepare(left, right)
	d.preparedLeft = left

	leftCopy := left.Clone()
	f := d.cfg.F
	if f == 0 {
		f = 0.5
	}
	res := match.Match(leftCopy, right, match.Config{
		F:           f,
		UniqueAttrs: d.cfg.UniqueAttrs,
		FastMatch:   d.cfg.FastMatch,
	})
	return editscript.Generate(leftCopy, right, res), nil
}

// Format renders actions (as produced by Diff on this same Differ) onto a
// fresh copy of the prepared left tree, returning an annotated document
// with diff:* marker attributes and placeholders expanded back to real
// subtrees. Must be called after Diff.
func (d *Differ) Format(actions []editscript.Action) (dom.Node, error) {
	if d.preparedLeft == nil {
		return nil, &InvalidInputError{Reason: "Format called before Diff on this Differ"}
	}
	return d.fmtr.Format(actions, d.preparedLeft)
}
