package bridge

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/inkwell-dev/inkwell/pkg/doctree"
	"github.com/inkwell-dev/inkwell/pkg/schema"
)

// Import parses src and converts it into an ordered list of root-level
// document nodes. Inline content arriving at the top level is wrapped in
// a synthetic paragraph; the root never holds bare text. Malformed input
// that reaches fatal parser state yields a *ParseError.
func (b *Bridge) Import(src string) ([]*doctree.Node, error) {
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	body := findElement(doc, "body")
	if body == nil {
		// The html5 algorithm always synthesizes a body; a missing one
		// means the parse went somewhere unrecoverable.
		return nil, &ParseError{Err: errNoBody}
	}

	// Standard parsing hoists <style> out of the body into the head,
	// which breaks the document-order assumption the converter relies
	// on. Put the hoisted elements back at the front of the body, in
	// their original order.
	relocateHeadStyles(doc, body)

	var nodes []*doctree.Node
	var pendingInline []*doctree.Node

	flushInline := func() {
		if len(pendingInline) == 0 {
			return
		}
		nodes = append(nodes, doctree.Paragraph(pendingInline...))
		pendingInline = nil
	}

	for c := body.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c.Type == html.TextNode:
			if strings.TrimSpace(c.Data) == "" {
				continue
			}
			pendingInline = append(pendingInline, b.convertInline(c, 0, "")...)
		case c.Type == html.ElementNode && c.Data == "style":
			// StyleSheet decorators bypass the generic converter path.
			flushInline()
			nodes = append(nodes, doctree.StyleSheet(renderNode(c)))
		case c.Type == html.ElementNode:
			converted, inline := b.convertTopLevel(c)
			if inline {
				pendingInline = append(pendingInline, converted...)
				continue
			}
			flushInline()
			nodes = append(nodes, converted...)
		}
	}
	flushInline()

	return nodes, nil
}

var errNoBody = parseFault("document has no body")

type parseFault string

func (f parseFault) Error() string { return string(f) }

// convertTopLevel converts one top-level element. The second return is
// true when the result is inline content that still needs a paragraph.
func (b *Bridge) convertTopLevel(n *html.Node) ([]*doctree.Node, bool) {
	// <code> is dual-natured: at block context the registry converter
	// wins, while code nested in flow content folds into text format.
	if n.Data == "code" {
		if node, ok := b.registry.Convert(n, b.childConverter()); ok {
			return []*doctree.Node{node}, false
		}
	}
	if isInlineTag(n.Data) {
		return b.convertInline(n, 0, ""), true
	}
	if node, ok := b.registry.Convert(n, b.childConverter()); ok {
		return []*doctree.Node{node}, false
	}
	// Unknown block container: unwrap it and re-classify its content.
	var blocks []*doctree.Node
	var inline []*doctree.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		for _, converted := range b.convertAny(c, 0, "") {
			if converted.IsBlockLevel() {
				if len(inline) > 0 {
					blocks = append(blocks, doctree.Paragraph(inline...))
					inline = nil
				}
				blocks = append(blocks, converted)
			} else {
				inline = append(inline, converted)
			}
		}
	}
	if len(blocks) == 0 {
		return inline, true
	}
	if len(inline) > 0 {
		blocks = append(blocks, doctree.Paragraph(inline...))
	}
	return blocks, false
}

// childConverter adapts the bridge's recursive conversion for registry
// converters.
func (b *Bridge) childConverter() schema.ConvertChildren {
	return func(n *html.Node) []*doctree.Node {
		var out []*doctree.Node
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			out = append(out, b.convertAny(c, 0, "")...)
		}
		return out
	}
}

// convertAny converts a DOM node in element context: inline markup folds
// into text format bits, known blocks go through the registry, unknown
// elements unwrap.
func (b *Bridge) convertAny(n *html.Node, format doctree.Format, style string) []*doctree.Node {
	switch n.Type {
	case html.TextNode:
		return b.convertInline(n, format, style)
	case html.ElementNode:
		if n.Data == "style" || n.Data == "script" {
			return nil
		}
		if isInlineTag(n.Data) {
			return b.convertInline(n, format, style)
		}
		if node, ok := b.registry.Convert(n, b.childConverter()); ok {
			return []*doctree.Node{node}
		}
		var out []*doctree.Node
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			out = append(out, b.convertAny(c, format, style)...)
		}
		return out
	default:
		// Comments and the rest of the lossy tail drop here; the raw
		// source override is the preservation path for them.
		return nil
	}
}

// convertInline folds formatting tags into the inherited format bitmask
// and inline style, emitting text runs and inline links.
func (b *Bridge) convertInline(n *html.Node, format doctree.Format, style string) []*doctree.Node {
	switch n.Type {
	case html.TextNode:
		if n.Data == "" {
			return nil
		}
		return []*doctree.Node{doctree.StyledText(n.Data, format, style)}
	case html.ElementNode:
		// fallthrough below
	default:
		return nil
	}

	switch n.Data {
	case "br":
		return []*doctree.Node{doctree.StyledText("\n", format, style)}
	case "b", "strong":
		format = format.With(doctree.FormatBold)
	case "i", "em":
		format = format.With(doctree.FormatItalic)
	case "u":
		format = format.With(doctree.FormatUnderline)
	case "s", "strike", "del":
		format = format.With(doctree.FormatStrikethrough)
	case "sub":
		format = format.With(doctree.FormatSubscript)
	case "sup":
		format = format.With(doctree.FormatSuperscript)
	case "code":
		format = format.With(doctree.FormatCode)
	case "span":
		style = mergeStyle(style, schema.Attr(n, "style"))
	case "a":
		if node, ok := b.registry.Convert(n, b.childConverter()); ok {
			return []*doctree.Node{node}
		}
	}

	var out []*doctree.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, b.convertInline(c, format, style)...)
	}
	return out
}

// isInlineTag reports whether the tag folds into text formatting when it
// appears inside element content.
func isInlineTag(tag string) bool {
	switch tag {
	case "b", "strong", "i", "em", "u", "s", "strike", "del",
		"sub", "sup", "code", "span", "br", "a":
		return true
	}
	return false
}

// mergeStyle joins two inline CSS declaration lists.
func mergeStyle(base, extra string) string {
	base = strings.TrimSpace(base)
	extra = strings.TrimSpace(extra)
	switch {
	case base == "":
		return extra
	case extra == "":
		return base
	default:
		return strings.TrimSuffix(base, ";") + "; " + extra
	}
}

// findElement walks the parsed document for the first element with the
// given tag.
func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// relocateHeadStyles moves <style> elements the parser hoisted into the
// head back to the front of the body, preserving their order.
func relocateHeadStyles(doc, body *html.Node) {
	head := findElement(doc, "head")
	if head == nil {
		return
	}
	var styles []*html.Node
	for c := head.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "style" {
			styles = append(styles, c)
		}
	}
	anchor := body.FirstChild
	for _, s := range styles {
		head.RemoveChild(s)
		body.InsertBefore(s, anchor)
	}
}

// renderNode serializes a DOM subtree back to HTML text.
func renderNode(n *html.Node) string {
	var sb strings.Builder
	// Render only fails on unwritable writers; strings.Builder never is.
	_ = html.Render(&sb, n)
	return sb.String()
}
