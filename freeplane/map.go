package freeplane

import (
	"github.com/gerunddev/mindbridge/convert"
	"github.com/gerunddev/mindbridge/markup"
)

// downloadNotice is written as the first child of every reverted map, the
// same notice Freeplane itself leaves in saved files.
const downloadNotice = "To view this file, download free mind mapping software Freeplane from http://freeplane.sourceforge.net"

type mapDescriptor struct {
	convert.Base
}

func newMap() mapDescriptor {
	return mapDescriptor{Base: convert.Base{
		NodeKind:   KindMap,
		ElemTag:    "map",
		Attrs:      convert.AttrSpec{"version": convert.String()},
		ChildOrder: defaultChildOrder,
	}}
}

// AdditionalRevert injects the download notice comment once the map has
// its final children, unless the source already carried one.
func (d mapDescriptor) AdditionalRevert(el *markup.Element, ctx *convert.Context) error {
	if err := d.Base.AdditionalRevert(el, ctx); err != nil {
		return err
	}
	for _, c := range el.Children {
		if c.Comment {
			return nil
		}
	}
	notice := markup.NewComment(downloadNotice)
	notice.Tail = "\n"
	el.Insert(0, notice)
	return nil
}
