// Package freeplane is the descriptor catalog for the Freeplane 1.3 mind
// map file format: the map and node structure, styling elements, hooks,
// icons, attributes and rich text content. See
// http://freeplane.sourceforge.net/wiki/index.php/Current_Freeplane_File_Format
// for the file format.
package freeplane

import (
	"github.com/gerunddev/mindbridge/convert"
)

// Node kinds produced by this catalog.
const (
	KindMap               = "Map"
	KindNode              = "Node"
	KindCloud             = "Cloud"
	KindHook              = "Hook"
	KindEmbeddedImage     = "EmbeddedImage"
	KindMapConfig         = "MapConfig"
	KindEquation          = "Equation"
	KindAutoEdgeColor     = "AutomaticEdgeColor"
	KindMapStyles         = "MapStyles"
	KindStyleNode         = "StyleNode"
	KindFont              = "Font"
	KindIcon              = "Icon"
	KindEdge              = "Edge"
	KindAttribute         = "Attribute"
	KindAttributeLayout   = "AttributeLayout"
	KindAttributeRegistry = "AttributeRegistry"
	KindProperties        = "Properties"
	KindArrowLink         = "ArrowLink"
	KindRichContent       = "RichContent"
	KindNodeText          = "NodeText"
	KindNodeNote          = "NodeNote"
	KindNodeDetails       = "NodeDetails"
)

// hookKinds and richContentKinds group the variants that share a tag, so
// child-order lists can name the group once.
var hookKinds = []string{KindHook, KindEmbeddedImage, KindMapConfig, KindEquation, KindAutoEdgeColor}

var richContentKinds = []string{KindRichContent, KindNodeText, KindNodeNote, KindNodeDetails}

// defaultChildOrder is the order elements are written within their parent,
// for file readability. Unknown content first, structural nodes last.
var defaultChildOrder = expandOrder(
	convert.UnknownKind, KindArrowLink, KindCloud, KindEdge, KindProperties,
	KindMapStyles, KindIcon, KindAttributeLayout, KindAttribute, KindHook,
	KindFont, KindStyleNode, KindRichContent, KindNode,
)

// nodeChildOrder is the order used within <node> elements.
var nodeChildOrder = expandOrder(
	convert.UnknownKind, KindArrowLink, KindCloud, KindEdge, KindFont,
	KindHook, KindProperties, KindRichContent, KindIcon, KindNode,
	KindAttributeLayout, KindAttribute,
)

// expandOrder replaces the Hook and RichContent group heads with every
// variant kind that shares their tag.
func expandOrder(kinds ...string) []string {
	var out []string
	for _, k := range kinds {
		switch k {
		case KindHook:
			out = append(out, hookKinds...)
		case KindRichContent:
			out = append(out, richContentKinds...)
		default:
			out = append(out, k)
		}
	}
	return out
}

// Registry builds the full Freeplane descriptor catalog.
func Registry() (*convert.Registry, error) {
	r := convert.NewRegistry()
	ds := []convert.Descriptor{
		newMap(),
		newNode(),
		newCloud(),
		newHook(),
		newEmbeddedImage(),
		newMapConfig(),
		newEquation(),
		newAutoEdgeColor(),
		newMapStyles(),
		newStyleNode(),
		newFont(),
		newIcon(),
		newEdge(),
		newAttribute(),
		newAttributeLayout(),
		newAttributeRegistry(),
		newProperties(),
		newArrowLink(),
		newRichContent(),
		newNodeText(),
		newNodeNote(),
		newNodeDetails(),
	}
	for _, d := range ds {
		if err := r.Register(d); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// MustRegistry builds the catalog and panics on a registration conflict,
// which can only be a programming error in the fixed set above.
func MustRegistry() *convert.Registry {
	r, err := Registry()
	if err != nil {
		panic(err)
	}
	return r
}
