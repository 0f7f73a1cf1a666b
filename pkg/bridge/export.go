package bridge

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/inkwell-dev/inkwell/pkg/doctree"
)

// Export serializes root-level nodes to HTML text and applies the output
// normalization pass. Exporting the result of Import is idempotent: a
// second import/export cycle reproduces the same bytes up to attribute
// order and whitespace.
func (b *Bridge) Export(nodes []*doctree.Node) (string, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if n.Kind == doctree.KindElement && n.ElemKind == doctree.ElemRoot {
			// A root passed directly exports its children.
			for _, c := range n.Children {
				if err := b.appendDOM(body, c); err != nil {
					return "", err
				}
			}
			continue
		}
		if err := b.appendDOM(body, n); err != nil {
			return "", err
		}
	}

	normalize(body)

	var sb strings.Builder
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&sb, c); err != nil {
			return "", err
		}
	}
	return sb.String(), nil
}

// ExportRoot is shorthand for exporting an instance's root node.
func (b *Bridge) ExportRoot(root *doctree.Node) (string, error) {
	if root == nil {
		return "", nil
	}
	return b.Export([]*doctree.Node{root})
}

// appendDOM builds the DOM form of one node under parent.
func (b *Bridge) appendDOM(parent *html.Node, n *doctree.Node) error {
	switch n.Kind {
	case doctree.KindText:
		appendTextDOM(parent, n)
		return nil
	case doctree.KindElement, doctree.KindDecorator:
		dom, ok := b.registry.ToDOM(n)
		if !ok {
			return fmt.Errorf("bridge: no capability entry for %s node", n.Kind)
		}
		parent.AppendChild(dom)
		for _, c := range n.Children {
			if err := b.appendDOM(dom, c); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("bridge: unknown node kind %d", n.Kind)
	}
}

// appendTextDOM renders a text run: newline splits become <br>, format
// bits become nested formatting tags, inline style becomes a span.
func appendTextDOM(parent *html.Node, n *doctree.Node) {
	target := parent

	if n.Style != "" {
		span := &html.Node{
			Type: html.ElementNode,
			Data: "span",
			Attr: []html.Attribute{{Key: "style", Val: n.Style}},
		}
		parent.AppendChild(span)
		target = span
	}

	for _, wrap := range formatTags(n.Format) {
		el := &html.Node{Type: html.ElementNode, Data: wrap}
		target.AppendChild(el)
		target = el
	}

	parts := strings.Split(n.Content, "\n")
	for i, part := range parts {
		if i > 0 {
			target.AppendChild(&html.Node{Type: html.ElementNode, Data: "br"})
		}
		if part != "" {
			target.AppendChild(&html.Node{Type: html.TextNode, Data: part})
		}
	}
}

// formatTags returns the wrapper tags for a format bitmask, outermost
// first. The order is fixed so output is deterministic.
func formatTags(f doctree.Format) []string {
	var tags []string
	if f.Has(doctree.FormatBold) {
		tags = append(tags, "strong")
	}
	if f.Has(doctree.FormatItalic) {
		tags = append(tags, "em")
	}
	if f.Has(doctree.FormatUnderline) {
		tags = append(tags, "u")
	}
	if f.Has(doctree.FormatStrikethrough) {
		tags = append(tags, "s")
	}
	if f.Has(doctree.FormatSubscript) {
		tags = append(tags, "sub")
	}
	if f.Has(doctree.FormatSuperscript) {
		tags = append(tags, "sup")
	}
	if f.Has(doctree.FormatCode) {
		tags = append(tags, "code")
	}
	return tags
}
