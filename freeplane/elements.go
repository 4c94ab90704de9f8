package freeplane

import (
	"github.com/gerunddev/mindbridge/convert"
	"github.com/gerunddev/mindbridge/tree"
)

// Cloud shapes, edge styles and widths, icon names and attribute registry
// modes are closed sets in the file format; anything else fails the spec.

var cloudShapes = []string{"ARC", "STAR", "RECT", "ROUND_RECT"}

var edgeStyles = []string{"linear", "bezier", "sharp_linear", "sharp_bezier", "horizontal", "hide_edge"}

var edgeWidths = []string{"thin", "1", "2", "4", "8"}

var builtinIcons = []string{
	"help", "bookmark", "yes", "button_ok", "button_cancel", "idea",
	"messagebox_warning", "stop-sign", "closed", "info", "clanbomber",
	"checked", "unchecked", "wizard", "gohome", "knotify", "password",
	"pencil", "xmag", "bell", "launch", "broken-line", "stop", "prepare",
	"go", "very_negative", "negative", "neutral", "positive",
	"very_positive", "full-1", "full-2", "full-3", "full-4", "full-5",
	"full-6", "full-7", "full-8", "full-9", "full-0", "0%", "25%", "50%",
	"75%", "100%", "attach", "desktop_new", "list", "edit", "kaddressbook",
	"folder", "kmail", "Mail", "revision", "video", "audio", "executable",
	"image", "internet", "internet_warning", "mindmap", "narrative",
	"flag-black", "flag-blue", "flag-green", "flag-orange", "flag-pink",
	"flag", "flag-yellow", "clock", "clock2", "hourglass", "calendar",
	"family", "female1", "female2", "females", "male1", "male2", "males",
	"fema", "group", "ksmiletris", "smiley-neutral", "smiley-oh",
	"smiley-angry", "smiley_bad", "licq", "penguin", "freemind_butterfly",
	"bee", "forward", "back", "up", "down", "addition", "subtraction",
	"multiplication", "division",
}

func newCloud() convert.Base {
	return convert.Base{
		NodeKind: KindCloud,
		ElemTag:  "cloud",
		Attrs: convert.AttrSpec{
			"COLOR": convert.String(),
			"SHAPE": convert.Choice(cloudShapes...),
			"WIDTH": convert.String(),
		},
	}
}

func newMapStyles() convert.Base {
	return convert.Base{
		NodeKind:   KindMapStyles,
		ElemTag:    "map_styles",
		ChildOrder: defaultChildOrder,
	}
}

func newStyleNode() convert.Base {
	return convert.Base{
		NodeKind: KindStyleNode,
		ElemTag:  "stylenode",
		Attrs: convert.AttrSpec{
			"LOCALIZED_TEXT": convert.String(),
			"TEXT":           convert.String(),
			"POSITION":       convert.Choice("left", "right"),
			"COLOR":          convert.String(),
			"MAX_WIDTH":      convert.Int(),
			"STYLE":          convert.String(),
		},
		ChildOrder: defaultChildOrder,
	}
}

func newFont() convert.Base {
	return convert.Base{
		NodeKind: KindFont,
		ElemTag:  "font",
		Attrs: convert.AttrSpec{
			"BOLD":   convert.Bool(),
			"ITALIC": convert.Bool(),
			"NAME":   convert.String(),
			"SIZE":   convert.Int(),
		},
	}
}

func newIcon() convert.Base {
	return convert.Base{
		NodeKind: KindIcon,
		ElemTag:  "icon",
		Attrs: convert.AttrSpec{
			"BUILTIN": convert.Choice(builtinIcons...),
		},
	}
}

func newEdge() convert.Base {
	return convert.Base{
		NodeKind: KindEdge,
		ElemTag:  "edge",
		Attrs: convert.AttrSpec{
			"COLOR": convert.String(),
			"STYLE": convert.Choice(edgeStyles...),
			"WIDTH": convert.Choice(edgeWidths...),
		},
	}
}

func newAttribute() convert.Base {
	return convert.Base{
		NodeKind: KindAttribute,
		ElemTag:  "attribute",
		Attrs: convert.AttrSpec{
			"NAME":   convert.String(),
			"VALUE":  convert.String(),
			"OBJECT": convert.String(),
		},
	}
}

func newAttributeLayout() convert.Base {
	return convert.Base{
		NodeKind: KindAttributeLayout,
		ElemTag:  "attribute_layout",
	}
}

func newProperties() convert.Base {
	return convert.Base{
		NodeKind: KindProperties,
		ElemTag:  "properties",
		Attrs: convert.AttrSpec{
			"show_icon_for_attributes": convert.Bool(),
			"show_note_icons":          convert.Bool(),
			"show_notes_in_map":        convert.Bool(),
		},
	}
}

// attributeRegistry writes itself out only when it restricts attribute
// display; the "all" default carries no information and is omitted from
// the file via the removal signal.
type attributeRegistry struct {
	convert.Base
}

func newAttributeRegistry() attributeRegistry {
	return attributeRegistry{Base: convert.Base{
		NodeKind: KindAttributeRegistry,
		ElemTag:  "attribute_registry",
		Attrs: convert.AttrSpec{
			"SHOW_ATTRIBUTES": convert.Choice("selected", "all", "hide"),
		},
	}}
}

func (d attributeRegistry) Revert(n *tree.Node, ctx *convert.Context) (convert.RevertResult, error) {
	if n.GetString("SHOW_ATTRIBUTES") == "all" {
		return convert.RevertResult{Drop: true}, nil
	}
	return d.Base.Revert(n, ctx)
}

// arrowLink checks its DESTINATION against the node index once every node
// has been registered, which is only guaranteed after the primary pass.
type arrowLink struct {
	convert.Base
}

func newArrowLink() arrowLink {
	return arrowLink{Base: convert.Base{
		NodeKind: KindArrowLink,
		ElemTag:  "arrowlink",
		Attrs: convert.AttrSpec{
			"COLOR":            convert.String(),
			"DESTINATION":      convert.String(),
			"ENDARROW":         convert.String(),
			"ENDINCLINATION":   convert.String(),
			"ID":               convert.String(),
			"STARTARROW":       convert.String(),
			"STARTINCLINATION": convert.String(),
			"SOURCE_LABEL":     convert.String(),
			"MIDDLE_LABEL":     convert.String(),
			"TARGET_LABEL":     convert.String(),
			"EDGE_LIKE":        convert.Bool(),
		},
	}}
}

func (d arrowLink) AdditionalConvert(n *tree.Node, ctx *convert.Context) error {
	dest := n.GetString("DESTINATION")
	if dest != "" && ctx.NodeByID(dest) == nil {
		ctx.Warnf("arrowlink", "DESTINATION %s does not match any node ID", dest)
	}
	return nil
}
