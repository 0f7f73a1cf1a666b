package doctree

import "fmt"

// NewRoot creates the document root. The root has no parent and accepts
// only element and decorator children; import wraps stray inline content
// in a synthetic paragraph before it reaches the root.
func NewRoot(children ...*Node) *Node {
	n := &Node{Kind: KindElement, ElemKind: ElemRoot}
	n.Append(children...)
	return n
}

// Text creates a plain text run.
func Text(content string) *Node {
	return &Node{Kind: KindText, Content: content}
}

// FormattedText creates a text run with the given format bits.
func FormattedText(content string, format Format) *Node {
	return &Node{Kind: KindText, Content: content, Format: format}
}

// StyledText creates a text run carrying inline CSS declarations.
func StyledText(content string, format Format, style string) *Node {
	return &Node{Kind: KindText, Content: content, Format: format, Style: style}
}

// Paragraph creates a <p> element.
func Paragraph(children ...*Node) *Node {
	n := &Node{Kind: KindElement, ElemKind: ElemParagraph, tag: "p"}
	n.Append(children...)
	return n
}

// Heading creates a heading element. Levels outside 1-6 are clamped.
func Heading(level int, children ...*Node) *Node {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	n := &Node{
		Kind:     KindElement,
		ElemKind: ElemHeading,
		Level:    level,
		tag:      fmt.Sprintf("h%d", level),
	}
	n.Append(children...)
	return n
}

// List creates a list container. Ordered lists render as <ol>, unordered
// and check lists as <ul>.
func List(kind ListKind, children ...*Node) *Node {
	tag := "ul"
	if kind == ListOrdered {
		tag = "ol"
	}
	n := &Node{Kind: KindElement, ElemKind: ElemList, List: kind, tag: tag}
	n.Append(children...)
	return n
}

// ListItem creates an <li> element.
func ListItem(children ...*Node) *Node {
	n := &Node{Kind: KindElement, ElemKind: ElemListItem, tag: "li"}
	n.Append(children...)
	return n
}

// Quote creates a <blockquote> element.
func Quote(children ...*Node) *Node {
	n := &Node{Kind: KindElement, ElemKind: ElemQuote, tag: "blockquote"}
	n.Append(children...)
	return n
}

// Link creates an <a> element pointing at url. Links are inline: they may
// not sit directly under the root.
func Link(url string, children ...*Node) *Node {
	n := &Node{Kind: KindElement, ElemKind: ElemLink, URL: url, tag: "a"}
	n.Append(children...)
	return n
}

// Table creates a <table> element.
func Table(rows ...*Node) *Node {
	n := &Node{Kind: KindElement, ElemKind: ElemTable, tag: "table"}
	n.Append(rows...)
	return n
}

// TableRow creates a <tr> element.
func TableRow(cells ...*Node) *Node {
	n := &Node{Kind: KindElement, ElemKind: ElemTableRow, tag: "tr"}
	n.Append(cells...)
	return n
}

// TableCell creates a <td> element.
func TableCell(children ...*Node) *Node {
	n := &Node{Kind: KindElement, ElemKind: ElemTableCell, tag: "td"}
	n.Append(children...)
	return n
}

// CodeBlock creates a block-level <code> element.
func CodeBlock(children ...*Node) *Node {
	n := &Node{Kind: KindElement, ElemKind: ElemCodeBlock, tag: "code"}
	n.Append(children...)
	return n
}

// Address creates an <address> element.
func Address(children ...*Node) *Node {
	n := &Node{Kind: KindElement, ElemKind: ElemAddress, tag: "address"}
	n.Append(children...)
	return n
}

// Preformatted creates a <pre> element.
func Preformatted(children ...*Node) *Node {
	n := &Node{Kind: KindElement, ElemKind: ElemPreformatted, tag: "pre"}
	n.Append(children...)
	return n
}

// Div creates a generic <div> container element.
func Div(children ...*Node) *Node {
	n := &Node{Kind: KindElement, ElemKind: ElemDiv, tag: "div"}
	n.Append(children...)
	return n
}

// HorizontalRule creates an <hr> divider. It takes no children.
func HorizontalRule() *Node {
	return &Node{Kind: KindElement, ElemKind: ElemHorizontalRule, tag: "hr"}
}

// StyleSheet creates a decorator carrying a verbatim <style> element.
// The markup renders byte-for-byte and is never text-editable.
func StyleSheet(outerHTML string) *Node {
	return &Node{Kind: KindDecorator, DecorKind: DecorStyleSheet, OuterHTML: outerHTML}
}
