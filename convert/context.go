package convert

import (
	"fmt"

	"github.com/gerunddev/mindbridge/markup"
	"github.com/gerunddev/mindbridge/tree"
)

// Context is the process-scoped state threaded through every descriptor
// call of a single run. It carries the strict flag, the diagnostic sink,
// an index of nodes by identifier for cross-reference resolution, and a
// scratch area for descriptor-private state. A context belongs to exactly
// one run and is only touched by its single traversal.
type Context struct {
	conv   *Converter
	path   string
	nodes  map[string]*tree.Node
	values map[string]any
	diags  []Diagnostic
}

func newContext(c *Converter) *Context {
	return &Context{
		conv:   c,
		nodes:  make(map[string]*tree.Node),
		values: make(map[string]any),
	}
}

// Strict reports whether the run fails hard on recoverable findings.
func (ctx *Context) Strict() bool { return ctx.conv.strict }

// Path is the element or node path currently being converted, for
// diagnostics.
func (ctx *Context) Path() string { return ctx.path }

// Warnf records a diagnostic at the current path.
func (ctx *Context) Warnf(tag, format string, args ...any) {
	d := Diagnostic{Path: ctx.path, Tag: tag, Message: fmt.Sprintf(format, args...)}
	ctx.diags = append(ctx.diags, d)
	ctx.conv.log.Warn("diagnostic", "path", d.Path, "tag", d.Tag, "msg", d.Message)
}

// RegisterNode indexes a node under an identifier for later reference
// resolution.
func (ctx *Context) RegisterNode(id string, n *tree.Node) {
	if id != "" {
		ctx.nodes[id] = n
	}
}

// NodeByID returns the node registered under id, nil when unknown.
func (ctx *Context) NodeByID(id string) *tree.Node { return ctx.nodes[id] }

// Put stores descriptor-private state for the rest of the run.
func (ctx *Context) Put(key string, v any) { ctx.values[key] = v }

// Value returns state stored with Put, nil when absent.
func (ctx *Context) Value(key string) any { return ctx.values[key] }

// ConvertSubtree runs the primary conversion on an element without
// attaching the result anywhere. Side effects of the descriptors involved
// still happen; the returned node takes no part in the additional pass
// unless the caller attaches it to the tree.
func (ctx *Context) ConvertSubtree(el *markup.Element) (*tree.Node, error) {
	return ctx.conv.convertElement(el, nil, ctx, ctx.path+"/"+el.Tag)
}

// RevertSubtree runs the primary reversion on a node without attaching the
// result to the output tree.
func (ctx *Context) RevertSubtree(n *tree.Node) (*markup.Element, error) {
	return ctx.conv.revertNode(n, nil, ctx, ctx.path+"/"+n.Kind())
}
