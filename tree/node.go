// Package tree holds the typed in-memory counterpart of a markup document.
// Nodes own their children exclusively: a node belongs to at most one
// parent, and moving one is always detach-then-attach. The conversion
// engine relies on that invariant to keep both directions of a round trip
// consistent.
package tree

import (
	"errors"
	"fmt"

	"github.com/gerunddev/mindbridge/markup"
)

// ErrOwnership reports an attempt to attach a node that already has a
// parent, or to detach one from a parent it does not belong to.
var ErrOwnership = errors.New("node ownership violation")

// PassEntry is a markup element the engine preserved verbatim, together
// with the child position it was captured at, so reversion can put it back
// where it came from.
type PassEntry struct {
	Pos int
	El  *markup.Element
}

// Node is one typed tree node. The kind is fixed at creation; attributes,
// children, text and passthrough content mutate freely.
type Node struct {
	kind        string
	attrs       Attrs
	children    []*Node
	parent      *Node
	passthrough []PassEntry

	// Text is the raw textual payload for kinds that carry one, such as
	// rich content bodies.
	Text string
}

// New creates a detached node of the given kind.
func New(kind string) *Node {
	return &Node{kind: kind}
}

// Kind returns the registered type tag of the node.
func (n *Node) Kind() string { return n.kind }

// Parent returns the owning parent, nil for the root or a detached node.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the ordered child list. The slice is shared; use
// Append/Insert/Remove for structural edits.
func (n *Node) Children() []*Node { return n.children }

// Get returns a typed attribute value.
func (n *Node) Get(key string) (any, bool) { return n.attrs.Get(key) }

// GetString returns an attribute as its string form, "" when absent.
func (n *Node) GetString(key string) string {
	v, ok := n.attrs.Get(key)
	if !ok {
		return ""
	}
	return fmt.Sprint(v)
}

// Set stores an attribute value.
func (n *Node) Set(key string, value any) { n.attrs.Set(key, value) }

// Delete removes an attribute.
func (n *Node) Delete(key string) bool { return n.attrs.Delete(key) }

// Keys lists attribute names in insertion order.
func (n *Node) Keys() []string { return n.attrs.Keys() }

// Append attaches a child at the end of the child list. The child must be
// detached; attaching a node that already has a parent fails with
// ErrOwnership.
func (n *Node) Append(child *Node) error {
	return n.Insert(len(n.children), child)
}

// Insert attaches a detached child at index i.
func (n *Node) Insert(i int, child *Node) error {
	if child.parent != nil {
		return fmt.Errorf("%w: %s already attached to %s", ErrOwnership, child.kind, child.parent.kind)
	}
	if i < 0 || i > len(n.children) {
		i = len(n.children)
	}
	n.children = append(n.children[:i], append([]*Node{child}, n.children[i:]...)...)
	child.parent = n
	return nil
}

// Remove detaches the given child. It fails with ErrOwnership when the
// node is not a child of n.
func (n *Node) Remove(child *Node) error {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return nil
		}
	}
	return fmt.Errorf("%w: %s is not a child of %s", ErrOwnership, child.kind, n.kind)
}

// Detach removes the node from its parent, if any.
func (n *Node) Detach() {
	if n.parent != nil {
		_ = n.parent.Remove(n)
	}
}

// Index returns the position of child within the child list, -1 if absent.
func (n *Node) Index(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

// FindAll returns the direct children of the given kind.
func (n *Node) FindAll(kind string) []*Node {
	var out []*Node
	for _, c := range n.children {
		if c.kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// FindFirst returns the first direct child of the given kind, or nil.
func (n *Node) FindFirst(kind string) *Node {
	for _, c := range n.children {
		if c.kind == kind {
			return c
		}
	}
	return nil
}

// Walk visits the node and its subtree depth-first pre-order. Returning
// false from fn stops the walk.
func (n *Node) Walk(fn func(*Node) bool) {
	var walk func(*Node) bool
	walk = func(cur *Node) bool {
		if !fn(cur) {
			return false
		}
		for _, c := range cur.children {
			if !walk(c) {
				return false
			}
		}
		return true
	}
	walk(n)
}

// AddPassthrough records a markup element the engine preserves verbatim,
// at the sibling position it occupied in the source.
func (n *Node) AddPassthrough(pos int, el *markup.Element) {
	n.passthrough = append(n.passthrough, PassEntry{Pos: pos, El: el})
}

// Passthrough returns the preserved entries in capture order.
func (n *Node) Passthrough() []PassEntry { return n.passthrough }

// TakePassthrough removes and returns the preserved entries. Node types
// that interpret the content themselves use this to consume it.
func (n *Node) TakePassthrough() []PassEntry {
	out := n.passthrough
	n.passthrough = nil
	return out
}

func (n *Node) String() string {
	return fmt.Sprintf("%s(%d attrs, %d children)", n.kind, n.attrs.Len(), len(n.children))
}
