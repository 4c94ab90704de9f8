package convert

import (
	"github.com/gerunddev/mindbridge/markup"
	"github.com/gerunddev/mindbridge/tree"
)

// Descriptor is the behavior bundle registered for one element tag and its
// node kind: how to convert a markup element into a typed node and how to
// revert the node back.
//
// Convert and Revert return tagged results instead of mutating shared
// state: the produced node or element, the ordered list of children still
// to be processed by the engine, and the removal signal. The engine, never
// the descriptor, attaches results to the tree, so exclusive ownership is
// enforced in exactly one place.
type Descriptor interface {
	// Kind is the node kind this descriptor produces and reverts.
	Kind() string
	// Tag is the markup tag this descriptor claims.
	Tag() string

	Convert(el *markup.Element, ctx *Context) (ConvertResult, error)
	Revert(n *tree.Node, ctx *Context) (RevertResult, error)
}

// AdditionalConverter is implemented by descriptors that need a second
// look at their node once the whole tree has its final shape, with the
// final parent reference available.
type AdditionalConverter interface {
	AdditionalConvert(n *tree.Node, ctx *Context) error
}

// AdditionalReverter is the mirrored second pass over the final markup
// tree, used for presentation decisions that depend on final structure,
// such as whitespace layout that differs for childless elements.
type AdditionalReverter interface {
	AdditionalRevert(el *markup.Element, ctx *Context) error
}

// ElementMatcher narrows a descriptor to elements whose attributes match,
// letting several kinds share one tag (rich content TYPE variants, hook
// NAME variants). Matching descriptors win over the plain tag descriptor,
// later registrations first.
type ElementMatcher interface {
	MatchElement(el *markup.Element) bool
}

// ConvertResult is the outcome of a primary conversion step.
type ConvertResult struct {
	// Node is the produced tree node, still detached; the engine attaches
	// it to the parent being converted.
	Node *tree.Node

	// Children are the markup elements the engine should convert as the
	// node's children, in order. A descriptor may return the element's
	// children unchanged, a filtered subset (diverting the rest to its
	// own fields), or a list with injected synthetic elements.
	Children []*markup.Element

	// Drop is the removal signal: the element and its entire subtree are
	// excluded from the result and no descendant is converted.
	Drop bool
}

// RevertResult is the outcome of a primary reversion step.
type RevertResult struct {
	// Element is the produced markup element. Synthetic markup children
	// may already be attached to it; reverted children follow them.
	Element *markup.Element

	// Children are the tree nodes the engine should revert and append to
	// the element, in order.
	Children []*tree.Node

	// Passthrough entries are re-inserted verbatim at their recorded
	// positions once the children above have been reverted.
	Passthrough []tree.PassEntry

	// Drop excludes the node and its subtree from the output.
	Drop bool
}
