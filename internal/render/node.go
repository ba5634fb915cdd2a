package render

// Node is one node of the rendered output tree. The tree is what the engine
// hands to its caller; turning it into markup or native views is the
// embedder's concern.
type Node struct {
	Tag             string            `json:"tag"`
	Class           string            `json:"class,omitempty"`
	Attrs           map[string]string `json:"attrs,omitempty"`
	Text            string            `json:"text,omitempty"`
	Children        []*Node           `json:"children,omitempty"`
	StopPropagation bool              `json:"stopPropagation,omitempty"`
}

// Element builds an element node, skipping nil children so renderers can
// append optional parts unconditionally.
func Element(tag, class string, children ...*Node) *Node {
	n := &Node{Tag: tag, Class: class}
	for _, child := range children {
		if child != nil {
			n.Children = append(n.Children, child)
		}
	}
	return n
}

// Text builds a bare text node.
func Text(text string) *Node {
	return &Node{Text: text}
}

// WithAttr sets one attribute and returns the node for chaining.
func (n *Node) WithAttr(key, value string) *Node {
	if n.Attrs == nil {
		n.Attrs = make(map[string]string)
	}
	n.Attrs[key] = value
	return n
}

// Append adds non-nil children and returns the node.
func (n *Node) Append(children ...*Node) *Node {
	for _, child := range children {
		if child != nil {
			n.Children = append(n.Children, child)
		}
	}
	return n
}
