// Package match pairs up nodes between two trees by structural and textual
// similarity, the way a diff needs before it can decide what moved, what
// was renamed, and what was inserted or deleted outright. Ported from
// markdowndiff's Differ.match and friends.
package match

import (
	"strings"

	"github.com/vortex/xdiff/dom"
	"github.com/vortex/xdiff/internal/lcs"
	"github.com/vortex/xdiff/internal/text"
	"github.com/vortex/xdiff/internal/textdiff"
)

// UniqueAttr names an attribute that, when present on both sides, alone
// decides whether two nodes match — optionally scoped to a single tag.
type UniqueAttr struct {
	Tag  string // empty means "any tag"
	Name string
}

// Config tunes the matcher. Match treats a zero F as 0.5, so the zero value
// behaves like DefaultConfig.
type Config struct {
	// F is the minimum node_ratio for two nodes to be considered a match.
	F float64
	// UniqueAttrs short-circuits node_ratio when present on both nodes.
	UniqueAttrs []UniqueAttr
	// FastMatch runs an LCS pre-pass over the post-order node lists before
	// the O(n^2) greedy pass, trading some match quality for speed on
	// large, mostly-reordered-free documents.
	FastMatch bool
}

// DefaultConfig is Differ.__init__'s (F=0.5, fast_match=False) default.
func DefaultConfig() Config {
	return Config{F: 0.5}
}

// Result is the bidirectional node pairing a Match run produces.
type Result struct {
	L2R map[dom.Node]dom.Node
	R2L map[dom.Node]dom.Node
}

func newResult() *Result {
	return &Result{L2R: make(map[dom.Node]dom.Node), R2L: make(map[dom.Node]dom.Node)}
}

func (r *Result) append(l, rr dom.Node) {
	r.L2R[l] = rr
	r.R2L[rr] = l
}

func (r *Result) remove(l, rr dom.Node) {
	delete(r.L2R, l)
	delete(r.R2L, rr)
}

// textCache memoizes node_text per node for one Match run: node.xpath("text()")
// in lxml returns the node's own leading text followed by every child
// element's tail, in document order — so a node's non-element text is not
// just its own leading text but also the tail of each child, concatenated.
type textCache struct {
	cache map[dom.Node]string
}

func (c *textCache) text(n dom.Node) string {
	if t, ok := c.cache[n]; ok {
		return t
	}
	parts := []string{n.Text()}
	for _, child := range n.Children() {
		parts = append(parts, child.Tail())
	}
	t := text.NormalizeWhitespace(strings.TrimSpace(strings.Join(parts, "")))
	c.cache[n] = t
	return t
}

func nodeWeight(c *textCache, n dom.Node) int {
	return 1 + len([]rune(c.text(n)))
}

// Match pairs nodes of left and right, returning the full bidirectional
// map including the matched roots. Mirrors Differ.match: post-order node
// lists with the roots pulled out and matched last, an optional fast-match
// LCS pre-pass, a greedy O(n^2) pass over what's left, and a top-down
// breadth-first refinement pass that can re-pair children of already
// matched nodes. When several right candidates tie for the best score in
// the greedy pass, the first one in post-order wins.
func Match(left, right dom.Node, cfg Config) *Result {
	f := cfg.F
	if f == 0 {
		f = 0.5
	}
	res := newResult()
	tc := &textCache{cache: make(map[dom.Node]string)}

	lnodes := removeNode(dom.PostOrder(left), left)
	rnodes := removeNode(dom.PostOrder(right), right)

	if cfg.FastMatch {
		pairs := lcs.LCS(lnodes, rnodes, func(a, b dom.Node) bool {
			return nodeRatio(res, tc, cfg, a, b) >= f
		})
		for _, p := range pairs {
			res.append(lnodes[p.Left], rnodes[p.Right])
		}
		lnodes = removeIndices(lnodes, pairIndices(pairs, true))
		rnodes = removeIndices(rnodes, pairIndices(pairs, false))
	}

	remainingR := append([]dom.Node(nil), rnodes...)
	for _, lnode := range lnodes {
		maxMatch := 0.0
		var matchNode dom.Node
		for _, rnode := range remainingR {
			m := nodeRatio(res, tc, cfg, lnode, rnode)
			if m > maxMatch {
				matchNode = rnode
				maxMatch = m
			}
			if m == 1.0 {
				break
			}
		}
		if maxMatch >= f {
			res.append(lnode, matchNode)
			if matchNode != nil {
				remainingR = removeNode(remainingR, matchNode)
			}
		}
	}

	for _, rnode := range dom.BreadthFirst(right) {
		lnode, ok := res.R2L[rnode]
		if !ok || len(rnode.Children()) == 0 {
			continue
		}
		lchilds := append([]dom.Node(nil), lnode.Children()...)
		rchilds := append([]dom.Node(nil), rnode.Children()...)

		for _, rchild := range append([]dom.Node(nil), rchilds...) {
			if partner, ok := res.R2L[rchild]; ok && contains(lchilds, partner) {
				lchilds = removeNode(lchilds, partner)
				rchilds = removeNode(rchilds, rchild)
			}
		}

		for _, rchild := range rchilds {
			maxMatch := 0.0
			var matchNode dom.Node
			for _, lchild := range lchilds {
				m := nodeRatio(res, tc, cfg, lchild, rchild)
				if m > maxMatch {
					matchNode = lchild
					maxMatch = m
				}
				if m == 1.0 {
					break
				}
			}
			if maxMatch >= f {
				if prevL, ok := res.R2L[rchild]; ok {
					res.remove(prevL, rchild)
				}
				if prevR, ok := res.L2R[matchNode]; ok {
					res.remove(matchNode, prevR)
				}
				res.append(matchNode, rchild)
			}
		}
	}

	res.append(left, right)
	return res
}

// nodeRatio is node_ratio: a unique-attribute short circuit, else the
// weighted blend of leaf_ratio and child_ratio.
func nodeRatio(res *Result, tc *textCache, cfg Config, left, right dom.Node) float64 {
	for _, ua := range cfg.UniqueAttrs {
		if ua.Tag != "" && (ua.Tag != left.Tag() || ua.Tag != right.Tag()) {
			continue
		}
		lv, lok := left.Attr(ua.Name)
		rv, rok := right.Attr(ua.Name)
		if lok || rok {
			if lok && rok && lv == rv {
				return 1.0
			}
			return 0.0
		}
	}

	leafWeight, leafMatch := leafRatio(tc, left, right)
	childWeight, childMatch, hasChild := childRatio(res, tc, left, right)

	if !hasChild {
		return leafMatch
	}
	return (leafWeight*leafMatch + childWeight*childMatch) / (leafWeight + childWeight)
}

// leafRatio is leaf_ratio: word-level diff-based similarity of two nodes'
// own text, ignoring children.
func leafRatio(tc *textCache, left, right dom.Node) (weight float64, ratio float64) {
	ltext := tc.text(left)
	rtext := tc.text(right)

	if ltext == "" && rtext == "" {
		if left.Tag() == right.Tag() {
			return 1, 1
		}
		return 0, 0
	}
	if ltext == "" || rtext == "" {
		return float64(maxLen(ltext, rtext)), 0
	}

	tokensLeft := text.Tokenize(ltext, nil)
	tokensRight := text.Tokenize(rtext, nil)
	charsLeft, charsRight, _ := text.WordsToChars(tokensLeft, tokensRight)

	diff := textdiff.Diff(charsLeft, charsRight)
	totalWeight := maxLen(charsLeft, charsRight)
	if totalWeight == 0 {
		return float64(maxLen(ltext, rtext)), 1
	}

	lev := textdiff.Levenshtein(diff)
	return float64(maxLen(ltext, rtext)), 1 - float64(lev)/float64(totalWeight)
}

// childRatio is child_ratio: what fraction (by weight) of left's and
// right's children are already matched to each other in res.
func childRatio(res *Result, tc *textCache, left, right dom.Node) (weight float64, ratio float64, ok bool) {
	lchildren := left.Children()
	rchildren := append([]dom.Node(nil), right.Children()...)
	if len(lchildren) == 0 && len(rchildren) == 0 {
		return 0, 0, false
	}

	total := 0
	for _, c := range lchildren {
		total += nodeWeight(tc, c)
	}
	for _, c := range rchildren {
		total += nodeWeight(tc, c)
	}
	if total == 0 {
		return 0, 0, true
	}

	equal := 0
	for _, lchild := range lchildren {
		partner, matched := res.L2R[lchild]
		if !matched {
			continue
		}
		for i, rchild := range rchildren {
			if rchild == partner {
				equal += nodeWeight(tc, lchild) + nodeWeight(tc, rchild)
				rchildren = append(rchildren[:i], rchildren[i+1:]...)
				break
			}
		}
	}

	return float64(total) / 2, float64(equal) / float64(total), true
}

func maxLen(a, b string) int {
	al, bl := len([]rune(a)), len([]rune(b))
	if al > bl {
		return al
	}
	return bl
}

func removeNode(nodes []dom.Node, n dom.Node) []dom.Node {
	for i, x := range nodes {
		if x == n {
			out := make([]dom.Node, 0, len(nodes)-1)
			out = append(out, nodes[:i]...)
			out = append(out, nodes[i+1:]...)
			return out
		}
	}
	return nodes
}

func removeIndices(nodes []dom.Node, idx []int) []dom.Node {
	skip := make(map[int]bool, len(idx))
	for _, i := range idx {
		skip[i] = true
	}
	out := make([]dom.Node, 0, len(nodes))
	for i, n := range nodes {
		if !skip[i] {
			out = append(out, n)
		}
	}
	return out
}

func pairIndices(pairs []lcs.Pair, left bool) []int {
	out := make([]int, len(pairs))
	for i, p := range pairs {
		if left {
			out[i] = p.Left
		} else {
			out[i] = p.Right
		}
	}
	return out
}

func contains(nodes []dom.Node, n dom.Node) bool {
	for _, x := range nodes {
		if x == n {
			return true
		}
	}
	return false
}
