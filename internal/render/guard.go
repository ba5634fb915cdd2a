package render

// Guard marks a subtree as an interaction region: events originating inside
// it stop before they reach an ancestor post-level click handler. Required
// wherever nested interactive controls (comment input, comment author links)
// sit inside a parent click target.
func Guard(n *Node) *Node {
	if n != nil {
		n.StopPropagation = true
	}
	return n
}

// Propagates reports whether an event whose target path (innermost node
// last) crosses a guarded region. Post-level handlers must only fire when
// this returns true.
func Propagates(path []*Node) bool {
	for _, n := range path {
		if n != nil && n.StopPropagation {
			return false
		}
	}
	return true
}
