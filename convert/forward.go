package convert

import (
	"errors"
	"fmt"

	"github.com/gerunddev/mindbridge/markup"
	"github.com/gerunddev/mindbridge/tree"
)

// Convert maps a markup tree onto a typed node tree. The primary pass runs
// depth-first pre-order; the additional pass runs depth-first post-order
// over the tree as finally shaped by every primary conversion. The source
// tree is never mutated.
//
// A fatal error aborts the run; otherwise the tree is returned together
// with the ordered diagnostics of a possibly degraded run.
func (c *Converter) Convert(root *markup.Element) (*tree.Node, []Diagnostic, error) {
	ctx := newContext(c)
	path := "/" + root.Tag
	c.log.Debug("conversion started", "root", root.Tag)

	node, err := c.convertElement(root, nil, ctx, path)
	if err != nil {
		return nil, ctx.diags, err
	}
	if node == nil {
		return nil, ctx.diags, pathErr(path, fmt.Errorf("root element removed, conversion produced no tree"))
	}
	if err := c.additionalConvert(node, ctx); err != nil {
		return nil, ctx.diags, err
	}

	c.log.Debug("conversion completed", "diagnostics", len(ctx.diags))
	return node, ctx.diags, nil
}

// convertElement performs one primary conversion step and recurses over
// the retained children. The engine, not the descriptor, attaches the
// produced node, so the ownership invariant is enforced exactly once per
// element and before descending.
func (c *Converter) convertElement(el *markup.Element, parent *tree.Node, ctx *Context, path string) (*tree.Node, error) {
	d := c.reg.ForElement(el)
	if d == nil {
		return nil, pathErr(path, fmt.Errorf("%w for tag %q", ErrUnregistered, el.Tag))
	}

	ctx.path = path
	res, err := d.Convert(el, ctx)
	if err != nil {
		res, err = c.degradeConvert(el, ctx, path, err)
		if err != nil {
			return nil, err
		}
	}
	if res.Drop || res.Node == nil {
		// Removal signal: the subtree is excluded and no descendant is
		// converted. The signal stops here, at the loop that acts on it.
		return nil, nil
	}

	node := res.Node
	if parent != nil {
		if err := parent.Append(node); err != nil {
			return nil, pathErr(path, err)
		}
	}
	for i, childEl := range res.Children {
		if childEl.Comment {
			node.AddPassthrough(i, childEl.Clone())
			continue
		}
		childPath := fmt.Sprintf("%s/%s[%d]", path, childEl.Tag, i)
		if _, err := c.convertElement(childEl, node, ctx, childPath); err != nil {
			return nil, err
		}
	}
	return node, nil
}

// degradeConvert applies the failure policy for a primary conversion step:
// ownership violations are always fatal, everything else is fatal under
// strict mode and otherwise degrades to the passthrough fallback plus a
// diagnostic.
func (c *Converter) degradeConvert(el *markup.Element, ctx *Context, path string, cause error) (ConvertResult, error) {
	if ctx.Strict() || errors.Is(cause, tree.ErrOwnership) {
		return ConvertResult{}, pathErr(path, wrapDescriptor(cause))
	}
	fb := c.reg.Fallback()
	if fb == nil {
		return ConvertResult{}, pathErr(path, wrapDescriptor(cause))
	}
	ctx.Warnf(el.Tag, "conversion failed (%v), element preserved verbatim", cause)
	res, err := fb.Convert(el, ctx)
	if err != nil {
		return ConvertResult{}, pathErr(path, wrapDescriptor(err))
	}
	return res, nil
}

// additionalConvert runs the post-order second pass. Children attached to
// the visited node by its own callback are queued and visited; children a
// callback attaches to some other node are not revisited.
func (c *Converter) additionalConvert(n *tree.Node, ctx *Context) error {
	for _, child := range append([]*tree.Node(nil), n.Children()...) {
		if child.Parent() != n {
			continue
		}
		if err := c.additionalConvert(child, ctx); err != nil {
			return err
		}
	}

	d := c.reg.ForKind(n.Kind())
	if d == nil {
		return pathErr(nodePath(n), fmt.Errorf("%w for kind %q", ErrUnregistered, n.Kind()))
	}
	ac, ok := d.(AdditionalConverter)
	if !ok {
		return nil
	}

	before := make(map[*tree.Node]bool, len(n.Children()))
	for _, child := range n.Children() {
		before[child] = true
	}

	path := nodePath(n)
	ctx.path = path
	if err := ac.AdditionalConvert(n, ctx); err != nil {
		if ctx.Strict() {
			return pathErr(path, wrapDescriptor(err))
		}
		ctx.Warnf(n.Kind(), "additional conversion failed: %v", err)
		return nil
	}
	for _, child := range n.Children() {
		if before[child] {
			continue
		}
		if err := c.additionalConvert(child, ctx); err != nil {
			return err
		}
	}
	return nil
}

// nodePath renders the ancestry of a node for diagnostics, mirroring the
// element paths of the forward direction.
func nodePath(n *tree.Node) string {
	p := n.Parent()
	if p == nil {
		return "/" + n.Kind()
	}
	return fmt.Sprintf("%s/%s[%d]", nodePath(p), n.Kind(), p.Index(n))
}

func wrapDescriptor(err error) error {
	if errors.Is(err, ErrDescriptor) || errors.Is(err, ErrMalformedAttr) ||
		errors.Is(err, ErrUnregistered) || errors.Is(err, tree.ErrOwnership) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrDescriptor, err)
}
