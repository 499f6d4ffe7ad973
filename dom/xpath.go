package dom

// XPath builds the canonical path to n, rooted at the document. Each step
// is predicated with an explicit 1-based [k] only when needed to
// disambiguate among same-tag siblings; the final step of the whole path
// is always predicated, even when it would otherwise be omitted as unique,
// so that every path generated by this package can be resolved
// unambiguously by xmlformat's path resolver (spec §3, §4.7).
func XPath(n Node) string {
	type step struct {
		tag      string
		ambig    bool
		position int
	}
	var steps []step
	for cur := n; cur != nil; {
		parent := cur.Parent()
		if parent == nil {
			steps = append(steps, step{tag: cur.Tag()})
			break
		}
		count, pos := sameTagCountAndPosition(parent, cur)
		steps = append(steps, step{tag: cur.Tag(), ambig: count > 1, position: pos})
		cur = parent
	}
	for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
		steps[i], steps[j] = steps[j], steps[i]
	}

	out := ""
	for _, s := range steps {
		out += "/" + s.tag
		if s.ambig {
			out += "[" + itoa(s.position) + "]"
		}
	}
	if len(out) == 0 || out[len(out)-1] != ']' {
		out += "[1]"
	}
	return out
}

// sameTagCountAndPosition returns how many of parent's children share
// child's tag, and child's 1-based position among them.
func sameTagCountAndPosition(parent Node, child Node) (count int, position int) {
	for _, c := range parent.Children() {
		if c.Tag() != child.Tag() {
			continue
		}
		count++
		if c == child {
			position = count
		}
	}
	return count, position
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var digits [20]byte
	i := len(digits)
	for n > 0 {
		i--
		digits[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		return "-" + string(digits[i:])
	}
	return string(digits[i:])
}
