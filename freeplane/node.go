package freeplane

import (
	"fmt"
	"regexp"

	"github.com/google/uuid"

	"github.com/gerunddev/mindbridge/convert"
	"github.com/gerunddev/mindbridge/markup"
	"github.com/gerunddev/mindbridge/tree"
)

// htmlMarkup detects markup in node text; plain text becomes a TEXT
// attribute, anything with tags becomes a rich content child.
var htmlMarkup = regexp.MustCompile(`<[^>]+>`)

type nodeDescriptor struct {
	convert.Base
}

func newNode() nodeDescriptor {
	return nodeDescriptor{Base: convert.Base{
		NodeKind: KindNode,
		ElemTag:  "node",
		Attrs: convert.AttrSpec{
			"BACKGROUND_COLOR":  convert.String(),
			"COLOR":             convert.String(),
			"FOLDED":            convert.Bool(),
			"ID":                convert.String(),
			"LINK":              convert.String(),
			"POSITION":          convert.Choice("left", "right"),
			"STYLE":             convert.String(),
			"TEXT":              convert.String(),
			"LOCALIZED_TEXT":    convert.String(),
			"TYPE":              convert.String(),
			"CREATED":           convert.Int(),
			"MODIFIED":          convert.Int(),
			"HGAP":              convert.Int(),
			"VGAP":              convert.Int(),
			"VSHIFT":            convert.Int(),
			"ENCRYPTED_CONTENT": convert.String(),
			"OBJECT":            convert.String(),
			"MIN_WIDTH":         convert.Int(),
			"MAX_WIDTH":         convert.Int(),
		},
		ChildOrder: nodeChildOrder,
	}}
}

// NewID allocates a Freeplane node identifier for synthesized nodes.
func NewID() string {
	return fmt.Sprintf("ID_%d", uuid.New().ID())
}

// Convert gives every node an ID and indexes it in the run context so
// arrow links can resolve their destinations later.
func (d nodeDescriptor) Convert(el *markup.Element, ctx *convert.Context) (convert.ConvertResult, error) {
	res, err := d.Base.Convert(el, ctx)
	if err != nil {
		return res, err
	}
	n := res.Node
	if _, ok := n.Get("ID"); !ok {
		n.Set("ID", NewID())
	}
	ctx.RegisterNode(n.GetString("ID"), n)
	return res, nil
}

// AdditionalConvert hoists a rich text body into the TEXT attribute once
// the tree has its final shape: the NodeText child is consumed and
// removed, its HTML payload becomes the node's text.
func (d nodeDescriptor) AdditionalConvert(n *tree.Node, ctx *convert.Context) error {
	for _, rc := range n.FindAll(KindNodeText) {
		n.Set("TEXT", rc.Text)
		if err := n.Remove(rc); err != nil {
			return err
		}
	}
	return nil
}

// Revert writes plain text as the TEXT attribute and markup-bearing text
// as a synthesized NodeText child, which the rich content descriptor
// materializes into HTML during additional reversion.
func (d nodeDescriptor) Revert(n *tree.Node, ctx *convert.Context) (convert.RevertResult, error) {
	res, err := d.Base.Revert(n, ctx)
	if err != nil {
		return res, err
	}
	text := n.GetString("TEXT")
	if htmlMarkup.MatchString(text) {
		res.Element.RemoveAttr("TEXT")
		nt := tree.New(KindNodeText)
		nt.Set("TYPE", "NODE")
		nt.Text = text
		res.Children = convert.SortByKindOrder(append(res.Children, nt), nodeChildOrder)
	}
	return res, nil
}
