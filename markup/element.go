// Package markup models the hierarchical document format the conversion
// engine reads and writes: elements with a tag, ordered attributes, ordered
// children and surrounding text. Parsing is backed by xmlquery; printing is
// done by this package so attribute order and whitespace layout survive a
// round trip.
package markup

// Attr is a single element attribute. Order of attributes is significant
// and preserved through parse and print.
type Attr struct {
	Name  string
	Value string
}

// Element is one node of the markup tree. Text is the character data
// directly after the start tag, Tail the character data after the end tag
// (same split as xml.etree and lxml use).
type Element struct {
	Tag      string
	Attr     []Attr
	Children []*Element
	Text     string
	Tail     string

	// Comment marks an XML comment; Text holds the comment body and
	// Tag/Attr/Children are unused.
	Comment bool
}

// New returns an element with the given tag.
func New(tag string) *Element {
	return &Element{Tag: tag}
}

// NewComment returns a comment pseudo-element.
func NewComment(text string) *Element {
	return &Element{Comment: true, Text: text}
}

// GetAttr returns the value of the named attribute.
func (e *Element) GetAttr(name string) (string, bool) {
	for _, a := range e.Attr {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr replaces the named attribute in place, or appends it.
func (e *Element) SetAttr(name, value string) {
	for i, a := range e.Attr {
		if a.Name == name {
			e.Attr[i].Value = value
			return
		}
	}
	e.Attr = append(e.Attr, Attr{Name: name, Value: value})
}

// RemoveAttr deletes the named attribute and reports whether it was present.
func (e *Element) RemoveAttr(name string) bool {
	for i, a := range e.Attr {
		if a.Name == name {
			e.Attr = append(e.Attr[:i], e.Attr[i+1:]...)
			return true
		}
	}
	return false
}

// Append adds children to the end of the child list.
func (e *Element) Append(children ...*Element) {
	e.Children = append(e.Children, children...)
}

// Insert places a child at index i, shifting later children right.
func (e *Element) Insert(i int, child *Element) {
	if i < 0 {
		i = 0
	}
	if i >= len(e.Children) {
		e.Children = append(e.Children, child)
		return
	}
	e.Children = append(e.Children[:i], append([]*Element{child}, e.Children[i:]...)...)
}

// FindAll returns the direct children with the given tag.
func (e *Element) FindAll(tag string) []*Element {
	var out []*Element
	for _, c := range e.Children {
		if !c.Comment && c.Tag == tag {
			out = append(out, c)
		}
	}
	return out
}

// Clone returns a deep copy of the element and its subtree.
func (e *Element) Clone() *Element {
	cp := &Element{
		Tag:     e.Tag,
		Text:    e.Text,
		Tail:    e.Tail,
		Comment: e.Comment,
	}
	if len(e.Attr) > 0 {
		cp.Attr = make([]Attr, len(e.Attr))
		copy(cp.Attr, e.Attr)
	}
	for _, c := range e.Children {
		cp.Children = append(cp.Children, c.Clone())
	}
	return cp
}

// InnerText returns the concatenated character data of the subtree.
func (e *Element) InnerText() string {
	if e.Comment {
		return ""
	}
	s := e.Text
	for _, c := range e.Children {
		s += c.InnerText()
		s += c.Tail
	}
	return s
}
