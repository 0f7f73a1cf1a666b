package bridge

import (
	"strings"
	"testing"

	"github.com/inkwell-dev/inkwell/pkg/doctree"
)

func TestImportSimpleParagraph(t *testing.T) {
	b := New(nil)
	nodes, err := b.Import(`<p>Hello <strong>world</strong></p>`)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(nodes) != 1 {
		t.Fatalf("got %d nodes, want 1", len(nodes))
	}
	p := nodes[0]
	if p.ElemKind != doctree.ElemParagraph {
		t.Fatalf("kind = %s, want Paragraph", p.ElemKind)
	}
	if len(p.Children) != 2 {
		t.Fatalf("got %d children, want 2", len(p.Children))
	}
	if p.Children[0].Content != "Hello " || p.Children[0].Format != 0 {
		t.Errorf("first run = %q fmt %s", p.Children[0].Content, p.Children[0].Format)
	}
	if p.Children[1].Content != "world" || !p.Children[1].Format.Has(doctree.FormatBold) {
		t.Errorf("second run = %q fmt %s, want bold world", p.Children[1].Content, p.Children[1].Format)
	}
}

func TestExportBoldNoThemeArtifacts(t *testing.T) {
	b := New(nil)
	nodes, err := b.Import(`<p>Hello <strong>world</strong></p>`)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	out, err := b.Export(nodes)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if out != `<p>Hello <strong>world</strong></p>` {
		t.Errorf("Export = %q", out)
	}
	if strings.Contains(out, ThemeClassPrefix) {
		t.Errorf("theme classes leaked into output: %q", out)
	}
	if strings.Contains(out, `dir="ltr"`) {
		t.Errorf("default direction leaked into output: %q", out)
	}
}

func TestExportImportIdempotent(t *testing.T) {
	b := New(nil)
	inputs := []string{
		`<p>plain</p>`,
		`<p>Hello <strong>world</strong></p>`,
		`<h2>title</h2><p>body</p>`,
		`<ul><li>a</li><li>b</li></ul>`,
		`<ol><li>one</li></ol>`,
		`<ul data-list="check"><li>task</li></ul>`,
		`<blockquote><p>quoted</p></blockquote>`,
		`<table><tr><td>cell</td></tr></table>`,
		`<pre>  spaced</pre>`,
		`<code>x := 1</code>`,
		`<p>inline <code>bits</code> flow</p>`,
		`<address>somewhere</address>`,
		`<div><p>nested</p></div>`,
		`<p><a href="https://example.com">link</a></p>`,
		`<p><em><strong>both</strong></em></p>`,
		`<p><span style="color:red">red</span></p>`,
		`<p>line<br/>break</p>`,
		`<p>above</p><hr/><p>below</p>`,
		`<style>.x{color:red}</style><p>after</p>`,
		`<p dir="rtl">שלום</p>`,
	}
	for _, src := range inputs {
		first, err := b.Import(src)
		if err != nil {
			t.Errorf("Import(%q): %v", src, err)
			continue
		}
		out1, err := b.Export(first)
		if err != nil {
			t.Errorf("Export(%q): %v", src, err)
			continue
		}
		second, err := b.Import(out1)
		if err != nil {
			t.Errorf("re-Import(%q): %v", out1, err)
			continue
		}
		out2, err := b.Export(second)
		if err != nil {
			t.Errorf("re-Export(%q): %v", out1, err)
			continue
		}
		if out1 != out2 {
			t.Errorf("not idempotent for %q:\n first: %q\nsecond: %q", src, out1, out2)
		}
	}
}

func TestCustomKindsSurviveRoundTrip(t *testing.T) {
	b := New(nil)
	tests := []struct {
		name string
		node *doctree.Node
		want func(*doctree.Node) bool
	}{
		{
			"address",
			doctree.Address(doctree.Text("221B Baker St")),
			func(n *doctree.Node) bool { return n.ElemKind == doctree.ElemAddress },
		},
		{
			"preformatted",
			doctree.Preformatted(doctree.Text("x := 1")),
			func(n *doctree.Node) bool { return n.ElemKind == doctree.ElemPreformatted },
		},
		{
			"div",
			doctree.Div(doctree.Paragraph(doctree.Text("inner"))),
			func(n *doctree.Node) bool { return n.ElemKind == doctree.ElemDiv },
		},
		{
			"code",
			doctree.CodeBlock(doctree.Text("x := 1")),
			func(n *doctree.Node) bool { return n.ElemKind == doctree.ElemCodeBlock },
		},
		{
			"horizontalrule",
			doctree.HorizontalRule(),
			func(n *doctree.Node) bool { return n.ElemKind == doctree.ElemHorizontalRule },
		},
		{
			"stylesheet",
			doctree.StyleSheet(`<style>.a{margin:0}</style>`),
			func(n *doctree.Node) bool { return n.Kind == doctree.KindDecorator },
		},
	}
	for _, tt := range tests {
		out, err := b.Export([]*doctree.Node{tt.node})
		if err != nil {
			t.Errorf("%s: Export: %v", tt.name, err)
			continue
		}
		back, err := b.Import(out)
		if err != nil {
			t.Errorf("%s: Import(%q): %v", tt.name, out, err)
			continue
		}
		if len(back) != 1 {
			t.Errorf("%s: got %d nodes from %q, want 1", tt.name, len(back), out)
			continue
		}
		if !tt.want(back[0]) {
			t.Errorf("%s: kind lost across round trip (%q)", tt.name, out)
		}
	}
}

func TestCodeIsBlockAtTopLevelInlineInFlow(t *testing.T) {
	b := New(nil)

	top, err := b.Import(`<code>x := 1</code>`)
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 1 || top[0].ElemKind != doctree.ElemCodeBlock {
		t.Fatalf("top-level <code> imported as %+v, want CodeBlock", top[0])
	}

	nested, err := b.Import(`<p>a <code>x</code></p>`)
	if err != nil {
		t.Fatal(err)
	}
	if len(nested) != 1 || nested[0].ElemKind != doctree.ElemParagraph {
		t.Fatalf("got %+v, want one Paragraph", nested)
	}
	var found bool
	for _, c := range nested[0].Children {
		if c.Kind == doctree.KindText && c.Format.Has(doctree.FormatCode) {
			found = true
		}
	}
	if !found {
		t.Error("nested <code> did not fold into text format")
	}
}

func TestStyleBlockSurvivesWithAttributes(t *testing.T) {
	b := New(nil)
	src := `<style media="print">.sheet{page-break-after:always}</style>`

	nodes, err := b.Import(src + `<p>content</p>`)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("got %d nodes, want 2", len(nodes))
	}
	if nodes[0].Kind != doctree.KindDecorator {
		t.Fatalf("style did not come back first; kind = %s", nodes[0].Kind)
	}

	out, err := b.Export(nodes)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !strings.Contains(out, `media="print"`) {
		t.Errorf("style attributes lost: %q", out)
	}
	if !strings.Contains(out, `.sheet{page-break-after:always}`) {
		t.Errorf("style content lost: %q", out)
	}
}

func TestHoistedStyleKeepsDocumentOrder(t *testing.T) {
	b := New(nil)
	// A leading <style> gets hoisted into <head> by the parser; import
	// must bring it back ahead of the body content.
	nodes, err := b.Import(`<style>.a{}</style><p>text</p>`)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("got %d nodes, want 2", len(nodes))
	}
	if nodes[0].Kind != doctree.KindDecorator || nodes[1].ElemKind != doctree.ElemParagraph {
		t.Errorf("order wrong: %s then %s", nodes[0].Kind, nodes[1].Kind)
	}
}

func TestTopLevelInlineWrappedInParagraph(t *testing.T) {
	b := New(nil)
	nodes, err := b.Import(`loose <strong>text</strong>`)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(nodes) != 1 {
		t.Fatalf("got %d nodes, want 1", len(nodes))
	}
	if nodes[0].ElemKind != doctree.ElemParagraph {
		t.Fatalf("top-level inline not wrapped; got %s", nodes[0].ElemKind)
	}
	if got := nodes[0].TextContent(); got != "loose text" {
		t.Errorf("TextContent = %q", got)
	}
}

func TestUnknownElementUnwraps(t *testing.T) {
	b := New(nil)
	nodes, err := b.Import(`<section><p>kept</p></section>`)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(nodes) != 1 || nodes[0].ElemKind != doctree.ElemParagraph {
		t.Fatalf("unknown container did not unwrap: %+v", nodes)
	}
}

func TestScriptNeverImports(t *testing.T) {
	b := New(nil)
	nodes, err := b.Import(`<p>a</p><script>alert(1)</script>`)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	for _, n := range nodes {
		if strings.Contains(n.TextContent(), "alert") {
			t.Errorf("script content leaked into tree")
		}
	}
}

func TestWhitespaceMarkerSpanUnwraps(t *testing.T) {
	b := New(nil)
	nodes, err := b.Import(`<p><span style="white-space: pre-wrap;">kept  text</span></p>`)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	out, err := b.Export(nodes)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if strings.Contains(out, "span") {
		t.Errorf("marker-only span survived export: %q", out)
	}
	if !strings.Contains(out, "kept  text") {
		t.Errorf("span content lost: %q", out)
	}
}

func TestWhitespaceMarkerDroppedFromRealStyles(t *testing.T) {
	b := New(nil)
	nodes, err := b.Import(`<p><span style="color: red; white-space: pre-wrap">x</span></p>`)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	out, err := b.Export(nodes)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !strings.Contains(out, "span") || !strings.Contains(out, "color: red") {
		t.Errorf("styled span lost: %q", out)
	}
	if strings.Contains(out, "pre-wrap") {
		t.Errorf("marker property survived on styled span: %q", out)
	}
}

func TestImportNeverFailsOnWellFormedInput(t *testing.T) {
	b := New(nil)
	inputs := []string{
		"",
		"plain text",
		"<p>unclosed",
		"<p><div>misnested</p></div>",
		"<!-- comment only -->",
	}
	for _, src := range inputs {
		if _, err := b.Import(src); err != nil {
			t.Errorf("Import(%q) failed: %v", src, err)
		}
	}
}

func TestRTLDirectionSurvives(t *testing.T) {
	b := New(nil)
	nodes, err := b.Import(`<p dir="rtl">x</p>`)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	out, err := b.Export(nodes)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !strings.Contains(out, `dir="rtl"`) {
		t.Errorf("rtl direction stripped: %q", out)
	}
}

func TestLTRDirectionStripped(t *testing.T) {
	b := New(nil)
	nodes, err := b.Import(`<p dir="ltr">x</p>`)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	out, err := b.Export(nodes)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if strings.Contains(out, "dir=") {
		t.Errorf("default direction survived: %q", out)
	}
}
