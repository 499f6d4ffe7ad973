package xmlformat

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vortex/xdiff/dom"
)

// PathNotFoundError reports that an xpath step in an edit script resolved
// to zero matches under the document being formatted.
type PathNotFoundError struct {
	Path  string
	Cause error
}

func (e *PathNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("xmlformat: path not found: %s: %v", e.Path, e.Cause)
	}
	return fmt.Sprintf("xmlformat: path not found: %s", e.Path)
}

func (e *PathNotFoundError) Unwrap() error { return e.Cause }

// AmbiguousPathError reports that an unpredicated xpath step resolved to
// more than one match — the core never generates such a path itself, so
// this indicates a caller-supplied script or a corrupted document.
type AmbiguousPathError struct {
	Path    string
	Matches int
}

func (e *AmbiguousPathError) Error() string {
	return fmt.Sprintf("xmlformat: ambiguous path %s: %d matches", e.Path, e.Matches)
}

// step is one parsed "/tag[n]" component of a canonical xpath.
type step struct {
	tag   string
	index int // 1-based; 0 means "unspecified, must be unique"
}

func parsePath(path string) ([]step, error) {
	if path == "" || path[0] != '/' {
		return nil, fmt.Errorf("xmlformat: xpath %q must be absolute", path)
	}
	parts := strings.Split(path[1:], "/")
	steps := make([]step, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		tag := p
		index := 0
		if i := strings.IndexByte(p, '['); i >= 0 && strings.HasSuffix(p, "]") {
			tag = p[:i]
			n, err := strconv.Atoi(p[i+1 : len(p)-1])
			if err != nil {
				return nil, fmt.Errorf("xmlformat: bad predicate in %q: %w", p, err)
			}
			index = n
		}
		steps = append(steps, step{tag: tag, index: index})
	}
	return steps, nil
}

// resolve finds the single node at path under root, skipping any child
// marked diff:delete — deleted nodes are never valid resolution targets for
// a later action, matching the original _xpath()'s "skip nodes that have
// been deleted" filter. Mirrors XMLFormatter._xpath.
func resolve(root dom.Node, path string) (dom.Node, error) {
	steps, err := parsePath(path)
	if err != nil {
		return nil, err
	}
	if len(steps) == 0 {
		return root, nil
	}
	if steps[0].tag != root.Tag() {
		return nil, &PathNotFoundError{Path: path, Cause: fmt.Errorf("document root is <%s>", root.Tag())}
	}

	cur := root
	for _, s := range steps[1:] {
		var matches []dom.Node
		for _, c := range cur.Children() {
			if c.Tag() != s.tag {
				continue
			}
			if _, deleted := c.Attr(DeleteName); deleted {
				continue
			}
			matches = append(matches, c)
		}
		if len(matches) == 0 {
			return nil, &PathNotFoundError{Path: path, Cause: fmt.Errorf("no <%s> under %s", s.tag, dom.XPath(cur))}
		}
		if s.index == 0 {
			if len(matches) > 1 {
				return nil, &AmbiguousPathError{Path: path, Matches: len(matches)}
			}
			cur = matches[0]
			continue
		}
		if s.index > len(matches) {
			return nil, &PathNotFoundError{Path: path, Cause: fmt.Errorf("[%d] requested, only %d <%s> candidates", s.index, len(matches), s.tag)}
		}
		cur = matches[s.index-1]
	}
	return cur, nil
}
