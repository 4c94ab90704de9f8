package convert

import (
	"errors"
	"fmt"

	"github.com/gerunddev/mindbridge/markup"
	"github.com/gerunddev/mindbridge/tree"
)

// Revert maps a typed node tree back to markup, mirroring Convert: primary
// reversion depth-first pre-order, then additional reversion depth-first
// post-order over the final markup shape. Passthrough content is
// re-emitted verbatim at its recorded positions.
func (c *Converter) Revert(root *tree.Node) (*markup.Element, []Diagnostic, error) {
	ctx := newContext(c)
	path := "/" + root.Kind()
	c.log.Debug("reversion started", "root", root.Kind())

	el, err := c.revertNode(root, nil, ctx, path)
	if err != nil {
		return nil, ctx.diags, err
	}
	if el == nil {
		return nil, ctx.diags, pathErr(path, fmt.Errorf("root node removed, reversion produced no document"))
	}
	if err := c.additionalRevert(el, ctx, path); err != nil {
		return nil, ctx.diags, err
	}

	c.log.Debug("reversion completed", "diagnostics", len(ctx.diags))
	return el, ctx.diags, nil
}

// revertNode performs one primary reversion step. Synthetic children a
// descriptor pre-attached to the result element stay first, reverted
// children follow, passthrough entries are re-inserted last at their
// recorded positions.
func (c *Converter) revertNode(n *tree.Node, parentEl *markup.Element, ctx *Context, path string) (*markup.Element, error) {
	d := c.reg.ForKind(n.Kind())
	if d == nil {
		return nil, pathErr(path, fmt.Errorf("%w for kind %q", ErrUnregistered, n.Kind()))
	}

	ctx.path = path
	res, err := d.Revert(n, ctx)
	if err != nil {
		res, err = c.degradeRevert(d, n, ctx, path, err)
		if err != nil {
			return nil, err
		}
	}
	if res.Drop || res.Element == nil {
		return nil, nil
	}

	el := res.Element
	if parentEl != nil {
		parentEl.Append(el)
	}
	for i, child := range res.Children {
		childPath := fmt.Sprintf("%s/%s[%d]", path, child.Kind(), i)
		if _, err := c.revertNode(child, el, ctx, childPath); err != nil {
			return nil, err
		}
	}
	for _, pe := range res.Passthrough {
		el.Insert(pe.Pos, pe.El.Clone())
	}
	return el, nil
}

// degradeRevert is the reverse-direction failure policy: under the default
// mode the node is written out as a raw element with stringified
// attributes so the document stays complete.
func (c *Converter) degradeRevert(d Descriptor, n *tree.Node, ctx *Context, path string, cause error) (RevertResult, error) {
	if ctx.Strict() || errors.Is(cause, tree.ErrOwnership) || c.reg.Fallback() == nil {
		return RevertResult{}, pathErr(path, wrapDescriptor(cause))
	}
	ctx.Warnf(n.Kind(), "reversion failed (%v), node written raw", cause)

	tag := d.Tag()
	if tag == "" {
		tag = n.Kind()
	}
	el := markup.New(tag)
	for _, key := range n.Keys() {
		el.SetAttr(key, n.GetString(key))
	}
	return RevertResult{
		Element:     el,
		Children:    n.Children(),
		Passthrough: n.Passthrough(),
	}, nil
}

// additionalRevert runs the mirrored post-order second pass over the final
// markup tree. Self-attached children cascade exactly like in the forward
// direction; comments are opaque and skipped.
func (c *Converter) additionalRevert(el *markup.Element, ctx *Context, path string) error {
	if el.Comment {
		return nil
	}
	for i, child := range append([]*markup.Element(nil), el.Children...) {
		childPath := fmt.Sprintf("%s/%s[%d]", path, child.Tag, i)
		if err := c.additionalRevert(child, ctx, childPath); err != nil {
			return err
		}
	}

	d := c.reg.ForElement(el)
	if d == nil {
		return pathErr(path, fmt.Errorf("%w for tag %q", ErrUnregistered, el.Tag))
	}
	ar, ok := d.(AdditionalReverter)
	if !ok {
		return nil
	}

	before := make(map[*markup.Element]bool, len(el.Children))
	for _, child := range el.Children {
		before[child] = true
	}

	ctx.path = path
	if err := ar.AdditionalRevert(el, ctx); err != nil {
		if ctx.Strict() {
			return pathErr(path, wrapDescriptor(err))
		}
		ctx.Warnf(el.Tag, "additional reversion failed: %v", err)
		return nil
	}
	for i, child := range el.Children {
		if before[child] {
			continue
		}
		childPath := fmt.Sprintf("%s/%s[%d]", path, child.Tag, i)
		if err := c.additionalRevert(child, ctx, childPath); err != nil {
			return err
		}
	}
	return nil
}
