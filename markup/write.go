package markup

import (
	"bufio"
	"io"
	"strings"
)

// Write serializes the element and its subtree, including the element's
// tail text. The serializer emits attributes in their stored order and
// copies Text/Tail verbatim, so a parse-print cycle is layout stable.
func Write(w io.Writer, el *Element) error {
	bw := bufio.NewWriter(w)
	writeElement(bw, el)
	return bw.Flush()
}

// String renders the element as XML text.
func (e *Element) String() string {
	var sb strings.Builder
	_ = Write(&sb, e)
	return sb.String()
}

func writeElement(w *bufio.Writer, el *Element) {
	if el.Comment {
		w.WriteString("<!--")
		w.WriteString(el.Text)
		w.WriteString("-->")
		w.WriteString(escapeText(el.Tail))
		return
	}
	w.WriteByte('<')
	w.WriteString(el.Tag)
	for _, a := range el.Attr {
		w.WriteByte(' ')
		w.WriteString(a.Name)
		w.WriteString(`="`)
		w.WriteString(escapeAttr(a.Value))
		w.WriteByte('"')
	}
	if len(el.Children) == 0 && el.Text == "" {
		w.WriteString("/>")
	} else {
		w.WriteByte('>')
		w.WriteString(escapeText(el.Text))
		for _, c := range el.Children {
			writeElement(w, c)
		}
		w.WriteString("</")
		w.WriteString(el.Tag)
		w.WriteByte('>')
	}
	w.WriteString(escapeText(el.Tail))
}

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"\n", "&#10;",
	"\t", "&#9;",
)

func escapeText(s string) string {
	return textEscaper.Replace(s)
}

func escapeAttr(s string) string {
	return attrEscaper.Replace(s)
}
