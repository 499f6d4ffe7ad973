package editscript

import (
	"sort"

	"github.com/vortex/xdiff/dom"
	"github.com/vortex/xdiff/internal/lcs"
	"github.com/vortex/xdiff/match"
)

// generator holds the per-run mutable state Differ.diff threads through
// find_pos/align_children: working copies of the match maps (inserts add
// to these as the walk proceeds) and the in-order set.
type generator struct {
	l2r     map[dom.Node]dom.Node
	r2l     map[dom.Node]dom.Node
	inorder map[dom.Node]bool
}

// Generate produces the edit script that transforms left into right, given
// the node pairing res. left is mutated in place as the script is built —
// callers pass a tree they own a private copy of, never the caller's
// original left document.
func Generate(left, right dom.Node, res *match.Result) []Action {
	g := &generator{
		l2r:     copyMap(res.L2R),
		r2l:     copyMap(res.R2L),
		inorder: make(map[dom.Node]bool),
	}

	var actions []Action

	for _, rnode := range dom.BreadthFirst(right) {
		rparent := rnode.Parent()
		ltarget := g.r2l[rparent]

		var lnode dom.Node
		if _, matched := g.r2l[rnode]; !matched {
			pos := g.findPos(rnode)
			actions = append(actions, InsertNode{TargetXPath: dom.XPath(ltarget), Tag: rnode.Tag(), Position: pos})

			lnode = ltarget.NewChild(rnode.Tag())
			g.l2r[lnode] = rnode
			g.r2l[rnode] = lnode
			ltarget.InsertChildAt(pos, lnode)
			g.inorder[lnode] = true
			g.inorder[rnode] = true

			actions = append(actions, g.updateNodeAttr(lnode, rnode)...)
		} else {
			lnode = g.r2l[rnode]
			lparent := lnode.Parent()
			if ltarget != lparent {
				pos := g.findPos(rnode)
				actions = append(actions, MoveNode{XPath: dom.XPath(lnode), TargetXPath: dom.XPath(ltarget), Position: pos})
				lparent.RemoveChild(lnode)
				ltarget.InsertChildAt(pos, lnode)
				g.inorder[lnode] = true
				g.inorder[rnode] = true
			}

			actions = append(actions, g.updateNodeTag(lnode, rnode)...)
			actions = append(actions, g.updateNodeAttr(lnode, rnode)...)
		}

		actions = append(actions, g.alignChildren(lnode, rnode)...)

		// update_node_text is deferred to after alignment so that
		// formatter-time text substitutions don't perturb position
		// arithmetic the move/align steps above rely on.
		lnode = g.r2l[rnode]
		actions = append(actions, g.updateNodeText(lnode, rnode)...)
	}

	for _, lnode := range dom.ReversePostOrder(left) {
		if _, matched := g.l2r[lnode]; !matched {
			actions = append(actions, DeleteNode{XPath: dom.XPath(lnode)})
			if p := lnode.Parent(); p != nil {
				p.RemoveChild(lnode)
			}
		}
	}

	return actions
}

// findPos locates the position in the left tree that right-tree node's
// left partner should occupy, by walking back to the nearest in-order
// previous sibling of node and mapping it into the left tree. Mirrors
// Differ.find_pos.
func (g *generator) findPos(node dom.Node) int {
	parent := node.Parent()
	siblings := parent.Children()
	i := dom.IndexOf(parent, node)

	var sibling dom.Node
	found := false
	for i >= 1 {
		i--
		s := siblings[i]
		if g.inorder[s] {
			sibling = s
			found = true
			break
		}
	}
	if !found {
		return 0
	}

	siblingMatch := g.r2l[sibling]
	nodeMatch := g.r2l[node]

	count := 0
	for _, child := range siblingMatch.Parent().Children() {
		if child == nodeMatch {
			continue
		}
		if _, stillMatched := g.l2r[child]; g.inorder[child] || !stillMatched {
			count++
		}
		if child == siblingMatch {
			break
		}
	}
	return count
}

// alignChildren reorders left's children that are out of order relative to
// right's matched children, via an LCS over the matched child pairs, and
// emits a MoveNode for each child it has to relocate. Mirrors
// Differ.align_children.
func (g *generator) alignChildren(left, right dom.Node) []Action {
	var lchildren []dom.Node
	for _, c := range left.Children() {
		if partner, ok := g.l2r[c]; ok && partner.Parent() == right {
			lchildren = append(lchildren, c)
		}
	}
	var rchildren []dom.Node
	for _, c := range right.Children() {
		if partner, ok := g.r2l[c]; ok && partner.Parent() == left {
			rchildren = append(rchildren, c)
		}
	}
	if len(lchildren) == 0 || len(rchildren) == 0 {
		return nil
	}

	pairs := lcs.LCS(lchildren, rchildren, func(a, b dom.Node) bool {
		return g.l2r[a] == b
	})
	for _, p := range pairs {
		g.inorder[lchildren[p.Left]] = true
		g.inorder[rchildren[p.Right]] = true
	}

	var actions []Action
	for _, lchild := range lchildren {
		if g.inorder[lchild] {
			continue
		}
		rchild := g.l2r[lchild]
		rightPos := g.findPos(rchild)
		rtarget := rchild.Parent()
		ltarget := g.r2l[rtarget]

		actions = append(actions, MoveNode{XPath: dom.XPath(lchild), TargetXPath: dom.XPath(ltarget), Position: rightPos})
		left.RemoveChild(lchild)
		ltarget.InsertChildAt(rightPos, lchild)
		g.inorder[lchild] = true
		g.inorder[rchild] = true
	}
	return actions
}

func (g *generator) updateNodeTag(left, right dom.Node) []Action {
	if left.Tag() == right.Tag() {
		return nil
	}
	a := RenameNode{XPath: dom.XPath(left), NewTag: right.Tag()}
	left.SetTag(right.Tag())
	return []Action{a}
}

func (g *generator) updateNodeAttr(left, right dom.Node) []Action {
	leftXPath := dom.XPath(left)
	leftMap := attrMap(left.Attrs())
	rightMap := attrMap(right.Attrs())

	var common, newKeys, removedKeys []string
	for k := range leftMap {
		if _, ok := rightMap[k]; ok {
			common = append(common, k)
		} else {
			removedKeys = append(removedKeys, k)
		}
	}
	for k := range rightMap {
		if _, ok := leftMap[k]; !ok {
			newKeys = append(newKeys, k)
		}
	}
	sort.Strings(common)
	sort.Strings(newKeys)
	sort.Strings(removedKeys)

	var actions []Action
	for _, k := range common {
		if leftMap[k] != rightMap[k] {
			actions = append(actions, UpdateAttrib{XPath: leftXPath, Name: k, NewValue: rightMap[k]})
			left.SetAttr(k, rightMap[k])
		}
	}
	for _, k := range newKeys {
		actions = append(actions, InsertAttrib{XPath: leftXPath, Name: k, Value: rightMap[k]})
		left.SetAttr(k, rightMap[k])
	}
	for _, k := range removedKeys {
		if _, ok := left.Attr(k); !ok {
			// Already moved/removed by an earlier step.
			continue
		}
		actions = append(actions, DeleteAttrib{XPath: leftXPath, Name: k})
		left.DeleteAttr(k)
	}
	return actions
}

func (g *generator) updateNodeText(left, right dom.Node) []Action {
	leftXPath := dom.XPath(left)
	var actions []Action
	if left.Text() != right.Text() {
		actions = append(actions, UpdateTextIn{XPath: leftXPath, NewText: right.Text()})
		left.SetText(right.Text())
	}
	if left.Tail() != right.Tail() {
		actions = append(actions, UpdateTextAfter{XPath: leftXPath, NewText: right.Tail()})
		left.SetTail(right.Tail())
	}
	return actions
}

func attrMap(attrs []dom.Attr) map[string]string {
	m := make(map[string]string, len(attrs))
	for _, a := range attrs {
		m[a.Name] = a.Value
	}
	return m
}

func copyMap(m map[dom.Node]dom.Node) map[dom.Node]dom.Node {
	out := make(map[dom.Node]dom.Node, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
