package convert

import (
	"fmt"

	"github.com/gerunddev/mindbridge/markup"
	"github.com/gerunddev/mindbridge/tree"
)

// Base is a spec-driven descriptor covering the common case: attributes
// coerced per AttrSpec on the way in, formatted back on the way out, all
// children left to the engine. Concrete descriptors embed Base and
// override the steps they care about.
type Base struct {
	NodeKind string
	ElemTag  string
	Attrs    AttrSpec

	// ChildOrder lists node kinds in the order their elements should be
	// written; children of each listed kind are moved, stably, to the end
	// of the child list in turn.
	ChildOrder []string
}

func (b Base) Kind() string { return b.NodeKind }
func (b Base) Tag() string  { return b.ElemTag }

// Convert populates a node of the base kind from the element's attributes.
// Unrecognized attributes are kept as raw strings rather than dropped;
// values that fail their spec are fatal under strict mode and degrade to
// the raw string plus a diagnostic otherwise.
func (b Base) Convert(el *markup.Element, ctx *Context) (ConvertResult, error) {
	n := tree.New(b.NodeKind)
	for _, a := range el.Attr {
		def, ok := b.Attrs[a.Name]
		if !ok {
			if len(b.Attrs) > 0 {
				ctx.Warnf(el.Tag, "attribute %s is not in the <%s> spec, kept raw", a.Name, el.Tag)
			}
			n.Set(a.Name, a.Value)
			continue
		}
		v, err := def.Coerce(a.Value)
		if err != nil {
			if ctx.Strict() {
				return ConvertResult{}, fmt.Errorf("%w: %s on <%s>: %v", ErrMalformedAttr, a.Name, el.Tag, err)
			}
			ctx.Warnf(el.Tag, "attribute %s: %v, kept raw", a.Name, err)
			n.Set(a.Name, a.Value)
			continue
		}
		n.Set(a.Name, v)
	}
	return ConvertResult{Node: n, Children: el.Children}, nil
}

// Revert renders the node back to an element. Nil-valued attributes are
// omitted, typed values are formatted to their markup spelling, and the
// children are handed to the engine in spec child order.
func (b Base) Revert(n *tree.Node, ctx *Context) (RevertResult, error) {
	el := markup.New(b.ElemTag)
	for _, key := range n.Keys() {
		v, _ := n.Get(key)
		if v == nil {
			continue
		}
		el.SetAttr(key, Format(v))
	}
	return RevertResult{
		Element:     el,
		Children:    SortByKindOrder(n.Children(), b.ChildOrder),
		Passthrough: n.Passthrough(),
	}, nil
}

// AdditionalRevert sets the whitespace layout once the final shape is
// known: elements that ended up with children get a newline before their
// first child, and every element gets a newline tail.
func (b Base) AdditionalRevert(el *markup.Element, ctx *Context) error {
	if len(el.Children) > 0 && el.Text == "" {
		el.Text = "\n"
	}
	if el.Tail == "" {
		el.Tail = "\n"
	}
	return nil
}

// SortByKindOrder moves the children of each listed kind, in list order,
// to the end of the sequence. Relative order within a kind is preserved.
func SortByKindOrder(children []*tree.Node, order []string) []*tree.Node {
	out := append([]*tree.Node(nil), children...)
	for _, kind := range order {
		rest := out[:0:0]
		var matched []*tree.Node
		for _, c := range out {
			if c.Kind() == kind {
				matched = append(matched, c)
			} else {
				rest = append(rest, c)
			}
		}
		out = append(rest, matched...)
	}
	return out
}

// UnknownKind is the fallback kind for elements with no registered
// descriptor. The whole element is preserved verbatim so the round trip
// stays lossless.
const UnknownKind = "UnknownElement"

// unknown is the default fallback descriptor: attribute-preserving
// passthrough. The source element is captured as a single verbatim
// passthrough entry and none of its descendants are converted.
type unknown struct{}

func (unknown) Kind() string { return UnknownKind }
func (unknown) Tag() string  { return "" }

func (unknown) Convert(el *markup.Element, ctx *Context) (ConvertResult, error) {
	n := tree.New(UnknownKind)
	for _, a := range el.Attr {
		n.Set(a.Name, a.Value)
	}
	n.AddPassthrough(0, el.Clone())
	return ConvertResult{Node: n}, nil
}

func (unknown) Revert(n *tree.Node, ctx *Context) (RevertResult, error) {
	// Re-emit the captured element byte for byte. A synthesized unknown
	// node without a capture falls back to its raw attributes.
	if pass := n.Passthrough(); len(pass) > 0 {
		el := pass[0].El.Clone()
		return RevertResult{Element: el}, nil
	}
	el := markup.New(UnknownKind)
	for _, key := range n.Keys() {
		el.SetAttr(key, n.GetString(key))
	}
	return RevertResult{Element: el}, nil
}
