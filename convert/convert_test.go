package convert

import (
	"errors"
	"strings"
	"testing"

	"github.com/gerunddev/mindbridge/markup"
	"github.com/gerunddev/mindbridge/tree"
)

// The test catalog is a small book format exercising every engine
// mechanism: typed attributes, removal signals, variant dispatch, detached
// subtree conversion and second-pass callbacks.

type counters struct {
	markers int
	stamps  int
}

// secret drops itself and its whole subtree in both directions.
type secret struct {
	Base
}

func (s secret) Convert(el *markup.Element, ctx *Context) (ConvertResult, error) {
	return ConvertResult{Drop: true}, nil
}

func (s secret) Revert(n *tree.Node, ctx *Context) (RevertResult, error) {
	return RevertResult{Drop: true}, nil
}

// marker counts how often its primary conversion runs.
type marker struct {
	Base
	c *counters
}

func (m marker) Convert(el *markup.Element, ctx *Context) (ConvertResult, error) {
	m.c.markers++
	return m.Base.Convert(el, ctx)
}

// outline attaches a synthetic child to itself during the second pass; the
// child must then be visited by the same pass.
type outline struct {
	Base
}

func (o outline) AdditionalConvert(n *tree.Node, ctx *Context) error {
	return n.Append(tree.New("Stamp"))
}

// hoister attaches a synthetic child to its parent during the second pass;
// that child must not be visited.
type hoister struct {
	Base
}

func (h hoister) AdditionalConvert(n *tree.Node, ctx *Context) error {
	return n.Parent().Append(tree.New("Stamp"))
}

type stamp struct {
	Base
	c *counters
}

func (s stamp) AdditionalConvert(n *tree.Node, ctx *Context) error {
	s.c.stamps++
	n.Set("stamped", true)
	if p := n.Parent(); p != nil {
		n.Set("under", p.Kind())
	}
	return nil
}

// adopt converts its children detached and attaches them itself, so they
// reach the second pass under their final parent.
type adopt struct {
	Base
}

func (a adopt) Convert(el *markup.Element, ctx *Context) (ConvertResult, error) {
	res, err := a.Base.Convert(el, ctx)
	if err != nil {
		return res, err
	}
	for _, c := range el.Children {
		n, err := ctx.ConvertSubtree(c)
		if err != nil {
			return ConvertResult{}, err
		}
		if n == nil {
			continue
		}
		if err := res.Node.Append(n); err != nil {
			return ConvertResult{}, err
		}
	}
	res.Children = nil
	return res, nil
}

// styled materializes two synthetic markup children from its own state on
// reversion, ahead of the reverted children.
type styled struct {
	Base
}

func (s styled) Revert(n *tree.Node, ctx *Context) (RevertResult, error) {
	res, err := s.Base.Revert(n, ctx)
	if err != nil {
		return res, err
	}
	for _, kind := range []string{"fill", "stroke"} {
		st := markup.New("style")
		st.SetAttr("KIND", kind)
		res.Element.Append(st)
	}
	return res, nil
}

// digest converts its children detached and consumes them into an
// attribute instead of keeping them in the tree.
type digest struct {
	Base
}

func (d digest) Convert(el *markup.Element, ctx *Context) (ConvertResult, error) {
	res, err := d.Base.Convert(el, ctx)
	if err != nil {
		return res, err
	}
	var kinds []string
	for _, c := range el.Children {
		n, err := ctx.ConvertSubtree(c)
		if err != nil {
			return ConvertResult{}, err
		}
		if n != nil {
			kinds = append(kinds, n.Kind())
		}
	}
	res.Node.Set("kinds", strings.Join(kinds, ","))
	res.Children = nil
	return res, nil
}

// gauge narrows the shared widget tag by its TYPE attribute.
type gauge struct {
	Base
}

func (g gauge) MatchElement(el *markup.Element) bool {
	v, _ := el.GetAttr("TYPE")
	return v == "gauge"
}

func testRegistry(t *testing.T, c *counters) *Registry {
	t.Helper()
	r := NewRegistry()
	r.MustRegister(
		Base{NodeKind: "Book", ElemTag: "book"},
		Base{NodeKind: "Chapter", ElemTag: "chapter", Attrs: AttrSpec{
			"title":  String(),
			"pages":  Int(),
			"rating": Float(),
			"draft":  Bool(),
			"layout": Choice("wide", "narrow"),
		}},
		secret{Base{NodeKind: "Secret", ElemTag: "secret"}},
		marker{Base{NodeKind: "Marker", ElemTag: "marker"}, c},
		outline{Base{NodeKind: "Outline", ElemTag: "outline"}},
		hoister{Base{NodeKind: "Hoister", ElemTag: "hoister"}},
		stamp{Base{NodeKind: "Stamp", ElemTag: "stamp"}, c},
		digest{Base{NodeKind: "Digest", ElemTag: "digest"}},
		adopt{Base{NodeKind: "Adopt", ElemTag: "adopt"}},
		styled{Base{NodeKind: "Styled", ElemTag: "styled"}},
		Base{NodeKind: "Widget", ElemTag: "widget", Attrs: AttrSpec{"TYPE": String()}},
		gauge{Base{NodeKind: "Gauge", ElemTag: "widget", Attrs: AttrSpec{"TYPE": String()}}},
	)
	return r
}

const bookDoc = `<book>
<!-- archived -->
<chapter title="Intro" pages="12" rating="0.5" draft="true" layout="wide"/>
<mystery a="1">
<inner x="2"/>
</mystery>
<chapter title="End"/>
</book>`

func TestConvertTypedAttributes(t *testing.T) {
	conv := New(testRegistry(t, &counters{}))
	root, diags, err := conv.Convert(mustParse(t, bookDoc))
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}

	ch := root.FindFirst("Chapter")
	if ch == nil {
		t.Fatal("no Chapter node in the result")
	}
	if v, _ := ch.Get("pages"); v != 12 {
		t.Errorf("pages = %v (%T), want int 12", v, v)
	}
	if v, _ := ch.Get("rating"); v != 0.5 {
		t.Errorf("rating = %v, want 0.5", v)
	}
	if v, _ := ch.Get("draft"); v != true {
		t.Errorf("draft = %v, want true", v)
	}
	if v, _ := ch.Get("layout"); v != "wide" {
		t.Errorf("layout = %v, want wide", v)
	}
}

func TestRoundTripPreservesUnknownContent(t *testing.T) {
	conv := New(testRegistry(t, &counters{}))
	root, _, err := conv.Convert(mustParse(t, bookDoc))
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}

	// The unknown element is captured whole; its descendants are not in
	// the tree, and the comment lives in passthrough rather than as a node.
	unknownNode := root.FindFirst(UnknownKind)
	if unknownNode == nil {
		t.Fatal("no passthrough node for the unknown element")
	}
	if len(unknownNode.Children()) != 0 {
		t.Errorf("unknown element's descendants were converted")
	}
	if got := len(root.Passthrough()); got != 1 {
		t.Fatalf("root has %d passthrough entries, want the comment", got)
	}
	if root.Passthrough()[0].Pos != 0 {
		t.Errorf("comment position = %d, want 0", root.Passthrough()[0].Pos)
	}

	out, diags, err := conv.Revert(root)
	if err != nil {
		t.Fatalf("Revert failed: %v", err)
	}
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if got := out.String(); got != bookDoc+"\n" {
		t.Errorf("round trip diverged:\n%s\nwant:\n%s", got, bookDoc)
	}
}

func TestDropSkipsSubtree(t *testing.T) {
	c := &counters{}
	conv := New(testRegistry(t, c))
	root, _, err := conv.Convert(mustParse(t, `<book><secret><marker/></secret><marker/></book>`))
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}

	if root.FindFirst("Secret") != nil {
		t.Errorf("dropped element produced a node")
	}
	if c.markers != 1 {
		t.Errorf("marker conversions = %d, want 1: the dropped subtree must not be visited", c.markers)
	}
	if len(root.Children()) != 1 {
		t.Errorf("root has %d children, want 1", len(root.Children()))
	}
}

func TestDropRootFails(t *testing.T) {
	conv := New(testRegistry(t, &counters{}))
	_, _, err := conv.Convert(mustParse(t, `<secret/>`))
	if err == nil {
		t.Fatal("dropping the root succeeded, want error")
	}
	var pe *PathError
	if !errors.As(err, &pe) {
		t.Errorf("error %v carries no path", err)
	}
}

func TestRevertDropOmitsNode(t *testing.T) {
	conv := New(testRegistry(t, &counters{}))
	root := tree.New("Book")
	root.Append(tree.New("Secret"))
	root.Append(tree.New("Chapter"))

	out, _, err := conv.Revert(root)
	if err != nil {
		t.Fatalf("Revert failed: %v", err)
	}
	if len(out.FindAll("secret")) != 0 {
		t.Errorf("dropped node was written out")
	}
	if len(out.FindAll("chapter")) != 1 {
		t.Errorf("sibling of the dropped node went missing")
	}
}

func TestConvertSubtreeDetached(t *testing.T) {
	c := &counters{}
	conv := New(testRegistry(t, c))
	root, _, err := conv.Convert(mustParse(t, `<book><digest><marker/><marker/></digest></book>`))
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}

	dig := root.FindFirst("Digest")
	if dig == nil {
		t.Fatal("no Digest node")
	}
	if got := dig.GetString("kinds"); got != "Marker,Marker" {
		t.Errorf("kinds = %q, want Marker,Marker", got)
	}
	if len(dig.Children()) != 0 {
		t.Errorf("detached subtree conversion attached children")
	}
	if c.markers != 2 {
		t.Errorf("marker conversions = %d, want 2: side effects must still run", c.markers)
	}
}

func TestAdditionalPassCascade(t *testing.T) {
	c := &counters{}
	conv := New(testRegistry(t, c))
	root, _, err := conv.Convert(mustParse(t, `<book><outline/></book>`))
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}

	st := root.FindFirst("Outline").FindFirst("Stamp")
	if st == nil {
		t.Fatal("outline did not gain its synthetic child")
	}
	if v, _ := st.Get("stamped"); v != true {
		t.Errorf("self-attached child was not visited by the second pass")
	}
	if c.stamps != 1 {
		t.Errorf("stamp visits = %d, want 1", c.stamps)
	}
}

func TestAdditionalPassSkipsForeignAttach(t *testing.T) {
	c := &counters{}
	conv := New(testRegistry(t, c))
	root, _, err := conv.Convert(mustParse(t, `<book><hoister/></book>`))
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}

	st := root.FindFirst("Stamp")
	if st == nil {
		t.Fatal("hoister did not attach its child to the parent")
	}
	if _, ok := st.Get("stamped"); ok {
		t.Errorf("child attached to a foreign node was visited")
	}
	if c.stamps != 0 {
		t.Errorf("stamp visits = %d, want 0", c.stamps)
	}
}

func TestAdditionalPassSeesFinalParent(t *testing.T) {
	c := &counters{}
	conv := New(testRegistry(t, c))
	root, _, err := conv.Convert(mustParse(t, `<book><adopt><stamp/></adopt></book>`))
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}

	st := root.FindFirst("Adopt").FindFirst("Stamp")
	if st == nil {
		t.Fatal("adopted child missing")
	}
	if c.stamps != 1 {
		t.Errorf("stamp visits = %d, want exactly 1", c.stamps)
	}
	if got := st.GetString("under"); got != "Adopt" {
		t.Errorf("second pass saw parent %q, want the final parent Adopt", got)
	}
}

func TestRevertSyntheticChildrenFirst(t *testing.T) {
	conv := New(testRegistry(t, &counters{}))
	root := tree.New("Book")
	sb := tree.New("Styled")
	root.Append(sb)
	sb.Append(tree.New("Chapter"))

	out, _, err := conv.Revert(root)
	if err != nil {
		t.Fatalf("Revert failed: %v", err)
	}
	el := out.Children[0]
	var tags []string
	for _, c := range el.Children {
		tags = append(tags, c.Tag)
	}
	want := []string{"style", "style", "chapter"}
	if len(tags) != len(want) {
		t.Fatalf("children = %v, want %v", tags, want)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Fatalf("children = %v, want %v", tags, want)
		}
	}
	if v, _ := el.Children[0].GetAttr("KIND"); v != "fill" {
		t.Errorf("first synthetic child KIND = %q, want fill", v)
	}
}

func TestMalformedAttributeTolerant(t *testing.T) {
	conv := New(testRegistry(t, &counters{}))
	root, diags, err := conv.Convert(mustParse(t, `<book><chapter pages="abc"/></book>`))
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}

	ch := root.FindFirst("Chapter")
	if got := ch.GetString("pages"); got != "abc" {
		t.Errorf("pages = %q, want the raw string kept", got)
	}
	if len(diags) != 1 {
		t.Fatalf("diagnostics = %v, want exactly one", diags)
	}
	if diags[0].Path != "/book/chapter[0]" {
		t.Errorf("diagnostic path = %q, want /book/chapter[0]", diags[0].Path)
	}
}

func TestMalformedAttributeStrict(t *testing.T) {
	conv := New(testRegistry(t, &counters{}), WithStrict())
	_, _, err := conv.Convert(mustParse(t, `<book><chapter pages="abc"/></book>`))
	if !errors.Is(err, ErrMalformedAttr) {
		t.Fatalf("strict Convert = %v, want ErrMalformedAttr", err)
	}
	var pe *PathError
	if !errors.As(err, &pe) || pe.Path != "/book/chapter[0]" {
		t.Errorf("error %v does not carry the failing path", err)
	}
}

func TestUnrecognizedAttributeKeptRaw(t *testing.T) {
	conv := New(testRegistry(t, &counters{}))
	root, diags, err := conv.Convert(mustParse(t, `<book><chapter title="A" custom="kept"/></book>`))
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	ch := root.FindFirst("Chapter")
	if got := ch.GetString("custom"); got != "kept" {
		t.Errorf("custom = %q, want kept", got)
	}
	if len(diags) != 1 {
		t.Errorf("diagnostics = %v, want one for the off-spec attribute", diags)
	}
}

func TestVariantDispatch(t *testing.T) {
	conv := New(testRegistry(t, &counters{}))
	root, _, err := conv.Convert(mustParse(t, `<book><widget TYPE="gauge"/><widget TYPE="dial"/><widget/></book>`))
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}

	kids := root.Children()
	if len(kids) != 3 {
		t.Fatalf("got %d children, want 3", len(kids))
	}
	want := []string{"Gauge", "Widget", "Widget"}
	for i, k := range want {
		if kids[i].Kind() != k {
			t.Errorf("child %d kind = %s, want %s", i, kids[i].Kind(), k)
		}
	}
}

func TestSharedNodeIsFatal(t *testing.T) {
	r := NewRegistry()
	shared := tree.New("Twin")
	r.MustRegister(
		Base{NodeKind: "Book", ElemTag: "book"},
		rigged{Base{NodeKind: "Twin", ElemTag: "twin"}, shared},
	)
	conv := New(r)
	_, _, err := conv.Convert(mustParse(t, `<book><twin/><twin/></book>`))
	if !errors.Is(err, tree.ErrOwnership) {
		t.Fatalf("Convert = %v, want ErrOwnership even without strict mode", err)
	}
}

// rigged returns the same node on every conversion, violating exclusive
// ownership on the second element.
type rigged struct {
	Base
	node *tree.Node
}

func (r rigged) Convert(el *markup.Element, ctx *Context) (ConvertResult, error) {
	return ConvertResult{Node: r.node}, nil
}

func TestDisabledFallback(t *testing.T) {
	r := testRegistry(t, &counters{})
	r.DisableFallback()
	conv := New(r)
	_, _, err := conv.Convert(mustParse(t, `<book><mystery/></book>`))
	if !errors.Is(err, ErrUnregistered) {
		t.Fatalf("Convert = %v, want ErrUnregistered", err)
	}
}

func TestFailingDescriptorDegrades(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(
		Base{NodeKind: "Book", ElemTag: "book"},
		broken{Base{NodeKind: "Flaky", ElemTag: "flaky"}},
	)
	conv := New(r)
	root, diags, err := conv.Convert(mustParse(t, `<book><flaky keep="me"/></book>`))
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	fb := root.FindFirst(UnknownKind)
	if fb == nil {
		t.Fatal("failing descriptor did not degrade to passthrough")
	}
	if got := fb.GetString("keep"); got != "me" {
		t.Errorf("attributes lost in degradation: keep = %q", got)
	}
	if len(diags) != 1 {
		t.Errorf("diagnostics = %v, want one", diags)
	}

	strict := New(r, WithStrict())
	if _, _, err := strict.Convert(mustParse(t, `<book><flaky/></book>`)); !errors.Is(err, ErrDescriptor) {
		t.Errorf("strict Convert = %v, want ErrDescriptor", err)
	}
}

type broken struct {
	Base
}

func (b broken) Convert(el *markup.Element, ctx *Context) (ConvertResult, error) {
	return ConvertResult{}, errors.New("intentional failure")
}

func TestRegistryConflicts(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(Base{NodeKind: "Book", ElemTag: "book"}); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}
	if err := r.Register(Base{NodeKind: "Book", ElemTag: "tome"}); !errors.Is(err, ErrDuplicate) {
		t.Errorf("duplicate kind = %v, want ErrDuplicate", err)
	}
	if err := r.Register(Base{NodeKind: "Book2", ElemTag: "book"}); !errors.Is(err, ErrDuplicate) {
		t.Errorf("duplicate tag = %v, want ErrDuplicate", err)
	}
	// Matching descriptors may share a tag with the plain one.
	if err := r.Register(gauge{Base{NodeKind: "Gauge", ElemTag: "book"}}); err != nil {
		t.Errorf("variant on a taken tag = %v, want success", err)
	}
}

func TestRevertChildOrder(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(
		Base{NodeKind: "Book", ElemTag: "book", ChildOrder: []string{"Chapter", "Appendix"}},
		Base{NodeKind: "Chapter", ElemTag: "chapter"},
		Base{NodeKind: "Appendix", ElemTag: "appendix"},
		Base{NodeKind: "Preface", ElemTag: "preface"},
	)
	conv := New(r)

	root := tree.New("Book")
	root.Append(tree.New("Appendix"))
	root.Append(tree.New("Chapter"))
	root.Append(tree.New("Preface"))
	root.Append(tree.New("Chapter"))

	out, _, err := conv.Revert(root)
	if err != nil {
		t.Fatalf("Revert failed: %v", err)
	}
	var tags []string
	for _, c := range out.Children {
		tags = append(tags, c.Tag)
	}
	want := []string{"preface", "chapter", "chapter", "appendix"}
	if len(tags) != len(want) {
		t.Fatalf("children = %v, want %v", tags, want)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Fatalf("children = %v, want %v", tags, want)
		}
	}
}

func mustParse(t *testing.T, doc string) *markup.Element {
	t.Helper()
	el, err := markup.ParseString(doc)
	if err != nil {
		t.Fatalf("parsing test document: %v", err)
	}
	return el
}
