package freeplane

import (
	"fmt"
	"strings"

	"github.com/gerunddev/mindbridge/convert"
	"github.com/gerunddev/mindbridge/markup"
	"github.com/gerunddev/mindbridge/tree"
)

// richContent handles <richcontent> bodies. The HTML children are not
// converted into tree nodes; they are consumed verbatim into the node's
// Text so application code sees one string, and parsed back into markup
// when the reverted element has its final place.
type richContent struct {
	convert.Base
}

// richContentVariant narrows the shared tag by TYPE: NODE text, NOTE and
// DETAILS bodies get their own kinds.
type richContentVariant struct {
	richContent
	typ string
}

func (r richContentVariant) MatchElement(el *markup.Element) bool {
	v, _ := el.GetAttr("TYPE")
	return v == r.typ
}

func rcBase(kind string) convert.Base {
	return convert.Base{
		NodeKind: kind,
		ElemTag:  "richcontent",
		Attrs:    convert.AttrSpec{"TYPE": convert.String()},
	}
}

func newRichContent() richContent {
	return richContent{Base: rcBase(KindRichContent)}
}

func newNodeText() richContentVariant {
	return richContentVariant{richContent{rcBase(KindNodeText)}, "NODE"}
}

func newNodeNote() richContentVariant {
	return richContentVariant{richContent{rcBase(KindNodeNote)}, "NOTE"}
}

func newNodeDetails() richContentVariant {
	return richContentVariant{richContent{rcBase(KindNodeDetails)}, "DETAILS"}
}

// Convert serializes the HTML children into Text and consumes them; none
// of them is converted into a tree node.
func (r richContent) Convert(el *markup.Element, ctx *convert.Context) (convert.ConvertResult, error) {
	res, err := r.Base.Convert(el, ctx)
	if err != nil {
		return res, err
	}
	var sb strings.Builder
	for _, c := range el.Children {
		sb.WriteString(c.String())
	}
	res.Node.Text = sb.String()
	res.Children = nil
	return res, nil
}

// Revert parks the HTML payload in the element text; AdditionalRevert
// turns it back into markup once the element sits in its final position.
func (r richContent) Revert(n *tree.Node, ctx *convert.Context) (convert.RevertResult, error) {
	res, err := r.Base.Revert(n, ctx)
	if err != nil {
		return res, err
	}
	res.Element.Text = n.Text
	return res, nil
}

// AdditionalRevert parses the parked HTML string and attaches the result
// as markup children. The attached children cascade through this pass,
// which is harmless: HTML tags resolve to the passthrough fallback.
func (r richContent) AdditionalRevert(el *markup.Element, ctx *convert.Context) error {
	html := el.Text
	el.Text = ""
	if strings.TrimSpace(html) != "" {
		parsed, err := markup.ParseFragment(html)
		if err != nil {
			return fmt.Errorf("rich content body: %w", err)
		}
		el.Text = "\n"
		for _, h := range parsed {
			if h.Tail == "" {
				h.Tail = "\n"
			}
			el.Append(h)
		}
	}
	if el.Tail == "" {
		el.Tail = "\n"
	}
	return nil
}
