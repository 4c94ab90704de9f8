package markup

import (
	"fmt"
	"io"
	"strings"

	"github.com/antchfx/xmlquery"
)

// Parse reads an XML document and returns its root element.
func Parse(r io.Reader) (*Element, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing markup: %w", err)
	}
	var root *Element
	for n := doc.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == xmlquery.ElementNode {
			root = fromXMLQuery(n)
			break
		}
	}
	if root == nil {
		return nil, fmt.Errorf("parsing markup: document has no root element")
	}
	return root, nil
}

// ParseString parses a complete document held in a string.
func ParseString(s string) (*Element, error) {
	return Parse(strings.NewReader(s))
}

// ParseFragment parses a sequence of sibling elements, such as the HTML body
// of a rich content block. Character data between the fragments is kept as
// Text/Tail in the usual way.
func ParseFragment(s string) ([]*Element, error) {
	doc, err := ParseString("<fragment>" + s + "</fragment>")
	if err != nil {
		return nil, fmt.Errorf("parsing fragment: %w", err)
	}
	return doc.Children, nil
}

// fromXMLQuery converts one xmlquery element and its subtree. xmlquery keeps
// character data as separate text nodes; they are folded back into the
// Text/Tail fields here.
func fromXMLQuery(n *xmlquery.Node) *Element {
	el := &Element{Tag: n.Data}
	for _, a := range n.Attr {
		name := a.Name.Local
		if a.Name.Space != "" {
			name = a.Name.Space + ":" + a.Name.Local
		}
		el.Attr = append(el.Attr, Attr{Name: name, Value: a.Value})
	}

	var last *Element
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case xmlquery.TextNode, xmlquery.CharDataNode:
			if last == nil {
				el.Text += c.Data
			} else {
				last.Tail += c.Data
			}
		case xmlquery.CommentNode:
			last = NewComment(c.Data)
			el.Children = append(el.Children, last)
		case xmlquery.ElementNode:
			last = fromXMLQuery(c)
			el.Children = append(el.Children, last)
		}
	}
	return el
}
