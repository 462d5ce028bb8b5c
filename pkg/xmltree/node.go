package xmltree

// Node is one element of a parsed document.
//
// A Node is never modified by consumers; the converter treats the whole tree
// as immutable input.
type Node struct {
	Tag      string
	Attrs    map[string]string
	Children []*Node
	Text     string
}

// Attr returns the value of the named attribute, or "" if absent.
func (n *Node) Attr(name string) string {
	if n == nil {
		return ""
	}
	return n.Attrs[name]
}

// HasAttr reports whether the attribute is present, even if empty.
func (n *Node) HasAttr(name string) bool {
	if n == nil {
		return false
	}
	_, ok := n.Attrs[name]
	return ok
}

// Child returns the first direct child with the given tag, or nil.
func (n *Node) Child(tag string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// ChildrenByTag returns all direct children with the given tag in document order.
func (n *Node) ChildrenByTag(tag string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if c.Tag == tag {
			out = append(out, c)
		}
	}
	return out
}

// ChildText returns the inner text of the first direct child with the given
// tag, or "" if there is no such child.
func (n *Node) ChildText(tag string) string {
	if c := n.Child(tag); c != nil {
		return c.Text
	}
	return ""
}

// Find returns the first node with the given tag in depth-first pre-order,
// including n itself. Returns nil if none matches.
func (n *Node) Find(tag string) *Node {
	if n == nil {
		return nil
	}
	if n.Tag == tag {
		return n
	}
	for _, c := range n.Children {
		if f := c.Find(tag); f != nil {
			return f
		}
	}
	return nil
}

// FindAll returns every node with the given tag in depth-first pre-order,
// including n itself. Matching nodes are also searched, so nested elements
// with the same tag are all returned.
func (n *Node) FindAll(tag string) []*Node {
	var out []*Node
	n.walk(func(x *Node) {
		if x.Tag == tag {
			out = append(out, x)
		}
	})
	return out
}

func (n *Node) walk(fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, c := range n.Children {
		c.walk(fn)
	}
}

// E builds a node in code. Attributes are given as a flat key/value list;
// a trailing odd key is ignored. Children are appended in order.
//
//	view := xmltree.E("view", []string{"identifier", "v1"},
//	    xmltree.E("node", []string{"elementRef", "e1"}),
//	)
func E(tag string, attrs []string, children ...*Node) *Node {
	n := &Node{Tag: tag, Attrs: make(map[string]string, len(attrs)/2)}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attrs[attrs[i]] = attrs[i+1]
	}
	n.Children = append(n.Children, children...)
	return n
}

// T builds a text-only node, e.g. T("name", "Customer").
func T(tag, text string) *Node {
	return &Node{Tag: tag, Attrs: map[string]string{}, Text: text}
}
