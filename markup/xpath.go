package markup

import (
	"fmt"

	"github.com/antchfx/xpath"
)

// Find evaluates an XPath expression against the element tree and returns
// the matched elements in document order. Attribute matches resolve to the
// owning element.
func Find(root *Element, expr string) ([]*Element, error) {
	exp, err := xpath.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compiling xpath %q: %w", expr, err)
	}
	var out []*Element
	iter := exp.Select(&navigator{root: root, virtual: true, attr: -1})
	for iter.MoveNext() {
		if nav, ok := iter.Current().(*navigator); ok && nav.cur != nil {
			out = append(out, nav.cur)
		}
	}
	return out, nil
}

// FindOne returns the first match of the expression, or nil.
func FindOne(root *Element, expr string) (*Element, error) {
	matches, err := Find(root, expr)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, nil
	}
	return matches[0], nil
}

// navigator adapts an Element tree to the xpath.NodeNavigator contract.
// Position is tracked as a child-index path from the root so that MoveTo
// and Copy are cheap and comparable.
type navigator struct {
	root    *Element
	cur     *Element
	path    []int
	attr    int  // index into cur.Attr, -1 when not on an attribute
	virtual bool // positioned on the document root above the top element
}

func (n *navigator) resolve() {
	el := n.root
	for _, i := range n.path {
		el = el.Children[i]
	}
	n.cur = el
}

func (n *navigator) NodeType() xpath.NodeType {
	switch {
	case n.virtual:
		return xpath.RootNode
	case n.attr >= 0:
		return xpath.AttributeNode
	case n.cur.Comment:
		return xpath.CommentNode
	default:
		return xpath.ElementNode
	}
}

func (n *navigator) LocalName() string {
	if n.virtual {
		return ""
	}
	if n.attr >= 0 {
		return n.cur.Attr[n.attr].Name
	}
	return n.cur.Tag
}

func (n *navigator) Prefix() string { return "" }

func (n *navigator) Value() string {
	if n.virtual {
		return n.root.InnerText()
	}
	if n.attr >= 0 {
		return n.cur.Attr[n.attr].Value
	}
	if n.cur.Comment {
		return n.cur.Text
	}
	return n.cur.InnerText()
}

func (n *navigator) Copy() xpath.NodeNavigator {
	cp := *n
	cp.path = append([]int(nil), n.path...)
	return &cp
}

func (n *navigator) MoveToRoot() {
	n.virtual = true
	n.path = n.path[:0]
	n.attr = -1
	n.cur = nil
}

func (n *navigator) MoveToParent() bool {
	if n.attr >= 0 {
		n.attr = -1
		return true
	}
	if n.virtual {
		return false
	}
	if len(n.path) == 0 {
		n.MoveToRoot()
		return true
	}
	n.path = n.path[:len(n.path)-1]
	n.resolve()
	return true
}

func (n *navigator) MoveToNextAttribute() bool {
	if n.virtual || n.cur == nil {
		return false
	}
	if n.attr+1 >= len(n.cur.Attr) {
		return false
	}
	n.attr++
	return true
}

func (n *navigator) MoveToChild() bool {
	if n.attr >= 0 {
		return false
	}
	if n.virtual {
		n.virtual = false
		n.path = n.path[:0]
		n.cur = n.root
		return true
	}
	if len(n.cur.Children) == 0 {
		return false
	}
	n.path = append(n.path, 0)
	n.resolve()
	return true
}

func (n *navigator) MoveToFirst() bool {
	if n.virtual || n.attr >= 0 {
		return false
	}
	if len(n.path) == 0 {
		return true
	}
	n.path[len(n.path)-1] = 0
	n.resolve()
	return true
}

func (n *navigator) MoveToNext() bool {
	if n.virtual || n.attr >= 0 || len(n.path) == 0 {
		return false
	}
	parent := n.root
	for _, i := range n.path[:len(n.path)-1] {
		parent = parent.Children[i]
	}
	last := n.path[len(n.path)-1]
	if last+1 >= len(parent.Children) {
		return false
	}
	n.path[len(n.path)-1] = last + 1
	n.resolve()
	return true
}

func (n *navigator) MoveToPrevious() bool {
	if n.virtual || n.attr >= 0 || len(n.path) == 0 {
		return false
	}
	last := n.path[len(n.path)-1]
	if last == 0 {
		return false
	}
	n.path[len(n.path)-1] = last - 1
	n.resolve()
	return true
}

func (n *navigator) MoveTo(other xpath.NodeNavigator) bool {
	o, ok := other.(*navigator)
	if !ok || o.root != n.root {
		return false
	}
	n.path = append(n.path[:0], o.path...)
	n.attr = o.attr
	n.virtual = o.virtual
	n.cur = o.cur
	return true
}
