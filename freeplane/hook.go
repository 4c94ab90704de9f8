package freeplane

import (
	"github.com/gerunddev/mindbridge/convert"
	"github.com/gerunddev/mindbridge/markup"
)

// hookVariant narrows the shared <hook> tag by its NAME attribute. The
// plain Hook descriptor catches every name without a variant.
type hookVariant struct {
	convert.Base
	name string
}

func (h hookVariant) MatchElement(el *markup.Element) bool {
	v, _ := el.GetAttr("NAME")
	return v == h.name
}

func newHook() convert.Base {
	return convert.Base{
		NodeKind:   KindHook,
		ElemTag:    "hook",
		Attrs:      convert.AttrSpec{"NAME": convert.String()},
		ChildOrder: defaultChildOrder,
	}
}

func newEmbeddedImage() hookVariant {
	return hookVariant{
		name: "ExternalObject",
		Base: convert.Base{
			NodeKind: KindEmbeddedImage,
			ElemTag:  "hook",
			Attrs: convert.AttrSpec{
				"NAME": convert.String(),
				"URI":  convert.String(),
				"SIZE": convert.Float(),
			},
			ChildOrder: defaultChildOrder,
		},
	}
}

func newMapConfig() hookVariant {
	return hookVariant{
		name: "MapStyle",
		Base: convert.Base{
			NodeKind: KindMapConfig,
			ElemTag:  "hook",
			Attrs: convert.AttrSpec{
				"NAME":           convert.String(),
				"max_node_width": convert.Int(),
				"zoom":           convert.Float(),
			},
			ChildOrder: defaultChildOrder,
		},
	}
}

func newEquation() hookVariant {
	return hookVariant{
		name: "plugins/latex/LatexNodeHook.properties",
		Base: convert.Base{
			NodeKind: KindEquation,
			ElemTag:  "hook",
			Attrs: convert.AttrSpec{
				"NAME":     convert.String(),
				"EQUATION": convert.String(),
			},
			ChildOrder: defaultChildOrder,
		},
	}
}

func newAutoEdgeColor() hookVariant {
	return hookVariant{
		name: "AutomaticEdgeColor",
		Base: convert.Base{
			NodeKind: KindAutoEdgeColor,
			ElemTag:  "hook",
			Attrs: convert.AttrSpec{
				"NAME":    convert.String(),
				"COUNTER": convert.Int(),
			},
			ChildOrder: defaultChildOrder,
		},
	}
}
