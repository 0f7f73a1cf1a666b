package schema

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/inkwell-dev/inkwell/pkg/doctree"
)

// parseFirst parses fragment HTML and returns its first element.
func parseFirst(t *testing.T, src string) *html.Node {
	t.Helper()
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(src), body)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	for _, n := range nodes {
		if n.Type == html.ElementNode {
			return n
		}
	}
	t.Fatalf("no element in %q", src)
	return nil
}

func noChildren(n *html.Node) []*doctree.Node { return nil }

func TestConvertByTag(t *testing.T) {
	r := Default()

	tests := []struct {
		src      string
		wantKind doctree.ElementKind
	}{
		{`<p>x</p>`, doctree.ElemParagraph},
		{`<h3>x</h3>`, doctree.ElemHeading},
		{`<ol><li>a</li></ol>`, doctree.ElemList},
		{`<blockquote>q</blockquote>`, doctree.ElemQuote},
		{`<address>a</address>`, doctree.ElemAddress},
		{`<pre>p</pre>`, doctree.ElemPreformatted},
		{`<div>d</div>`, doctree.ElemDiv},
		{`<table></table>`, doctree.ElemTable},
	}
	for _, tt := range tests {
		dom := parseFirst(t, tt.src)
		node, ok := r.Convert(dom, noChildren)
		if !ok {
			t.Errorf("Convert(%q): no converter matched", tt.src)
			continue
		}
		if node.ElemKind != tt.wantKind {
			t.Errorf("Convert(%q) = %s, want %s", tt.src, node.ElemKind, tt.wantKind)
		}
	}
}

func TestConvertHeadingLevel(t *testing.T) {
	r := Default()
	node, ok := r.Convert(parseFirst(t, `<h5>x</h5>`), noChildren)
	if !ok || node.Level != 5 {
		t.Fatalf("h5 conversion: ok=%v level=%d", ok, node.Level)
	}
}

func TestConvertChecklist(t *testing.T) {
	r := Default()
	node, ok := r.Convert(parseFirst(t, `<ul data-list="check"></ul>`), noChildren)
	if !ok || node.List != doctree.ListCheck {
		t.Fatalf("check list conversion: ok=%v list=%d", ok, node.List)
	}
	dom, ok := r.ToDOM(node)
	if !ok || Attr(dom, "data-list") != "check" {
		t.Fatalf("check list export lost its marker: %+v", dom)
	}
}

func TestConvertExcludesStyleAndScript(t *testing.T) {
	r := Default()
	for _, tag := range []string{"style", "script"} {
		dom := &html.Node{Type: html.ElementNode, Data: tag}
		if _, ok := r.Convert(dom, noChildren); ok {
			t.Errorf("generic conversion must not touch <%s>", tag)
		}
	}
}

func TestPriorityBreaksTies(t *testing.T) {
	r := Default()

	// A higher-priority converter registered later still wins the tag.
	marker := doctree.Div()
	r.Register(&NodeSpec{
		Type:     "custom-div",
		DOMTag:   "div",
		Priority: 10,
		FromDOM: func(n *html.Node, convert ConvertChildren) *doctree.Node {
			return marker
		},
	})
	node, ok := r.Convert(parseFirst(t, `<div></div>`), noChildren)
	if !ok || node != marker {
		t.Fatal("high-priority converter did not win")
	}
}

func TestConverterFallsThroughOnNil(t *testing.T) {
	r := Default()
	r.Register(&NodeSpec{
		Type:     "picky-div",
		DOMTag:   "div",
		Priority: 10,
		FromDOM: func(n *html.Node, convert ConvertChildren) *doctree.Node {
			if Attr(n, "data-special") == "" {
				return nil // decline; next converter takes over
			}
			return doctree.Preformatted()
		},
	})
	node, ok := r.Convert(parseFirst(t, `<div></div>`), noChildren)
	if !ok || node.ElemKind != doctree.ElemDiv {
		t.Fatalf("fall-through failed: ok=%v kind=%v", ok, node.ElemKind)
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	r := Default()

	tests := []struct {
		name string
		node *doctree.Node
	}{
		{"paragraph", doctree.Paragraph()},
		{"heading", doctree.Heading(4)},
		{"list", doctree.List(doctree.ListOrdered)},
		{"link", doctree.Link("https://example.com")},
		{"address", doctree.Address()},
		{"preformatted", doctree.Preformatted()},
		{"div", doctree.Div()},
		{"stylesheet", doctree.StyleSheet(`<style>.a{color:red}</style>`)},
	}
	for _, tt := range tests {
		state, ok := r.Serialize(tt.node)
		if !ok {
			t.Errorf("%s: Serialize failed", tt.name)
			continue
		}
		back, ok := r.Deserialize(state)
		if !ok {
			t.Errorf("%s: Deserialize failed", tt.name)
			continue
		}
		if back.Kind != tt.node.Kind || back.ElemKind != tt.node.ElemKind {
			t.Errorf("%s: kind changed across serialize round trip", tt.name)
		}
		if back.Level != tt.node.Level || back.List != tt.node.List ||
			back.URL != tt.node.URL || back.OuterHTML != tt.node.OuterHTML {
			t.Errorf("%s: structural metadata lost", tt.name)
		}
	}
}

func TestSerializeKeepsDirection(t *testing.T) {
	r := Default()
	p := doctree.Paragraph()
	p.Dir = "rtl"

	state, _ := r.Serialize(p)
	back, _ := r.Deserialize(state)
	if back.Dir != "rtl" {
		t.Errorf("Dir = %q after round trip, want %q", back.Dir, "rtl")
	}
}

func TestStyleSheetHasNoImportConverter(t *testing.T) {
	r := Default()
	spec, ok := r.Spec("stylesheet")
	if !ok {
		t.Fatal("stylesheet spec missing")
	}
	if spec.FromDOM != nil {
		t.Error("stylesheet must not participate in generic import")
	}
}
