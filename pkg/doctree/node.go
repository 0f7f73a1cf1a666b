package doctree

// Kind is the node variant discriminator.
type Kind uint8

const (
	KindText      Kind = iota // Inline text run
	KindElement                // Block or inline container
	KindDecorator              // Opaque, non-editable leaf
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "Text"
	case KindElement:
		return "Element"
	case KindDecorator:
		return "Decorator"
	default:
		return "Unknown"
	}
}

// ElementKind identifies the closed set of element variants.
type ElementKind uint8

const (
	ElemRoot ElementKind = iota
	ElemParagraph
	ElemHeading
	ElemList
	ElemListItem
	ElemQuote
	ElemLink
	ElemTable
	ElemTableRow
	ElemTableCell
	ElemCodeBlock
	ElemAddress
	ElemPreformatted
	ElemDiv
	ElemHorizontalRule
)

// String returns the string representation of the ElementKind.
func (e ElementKind) String() string {
	switch e {
	case ElemRoot:
		return "Root"
	case ElemParagraph:
		return "Paragraph"
	case ElemHeading:
		return "Heading"
	case ElemList:
		return "List"
	case ElemListItem:
		return "ListItem"
	case ElemQuote:
		return "Quote"
	case ElemLink:
		return "Link"
	case ElemTable:
		return "Table"
	case ElemTableRow:
		return "TableRow"
	case ElemTableCell:
		return "TableCell"
	case ElemCodeBlock:
		return "CodeBlock"
	case ElemAddress:
		return "Address"
	case ElemPreformatted:
		return "Preformatted"
	case ElemDiv:
		return "Div"
	case ElemHorizontalRule:
		return "HorizontalRule"
	default:
		return "Unknown"
	}
}

// DecoratorKind identifies decorator variants.
type DecoratorKind uint8

const (
	// DecorStyleSheet carries a verbatim <style> element. It is rendered
	// byte-for-byte and holds no editable content.
	DecorStyleSheet DecoratorKind = iota
)

// ListKind distinguishes list container flavors.
type ListKind uint8

const (
	ListUnordered ListKind = iota
	ListOrdered
	ListCheck
)

// Node is one unit of document content. The active fields depend on Kind:
// text nodes use Content, Format and Style; elements use ElemKind, the
// constructor-fixed tag, and Children; decorators use DecorKind and
// OuterHTML. Fields outside the active set are zero.
type Node struct {
	Kind Kind

	// Text fields.
	Content string
	Format  Format
	Style   string // inline CSS declarations, verbatim

	// Element fields.
	ElemKind ElementKind
	Level    int      // heading level 1-6
	List     ListKind // list container flavor
	URL      string   // link destination
	Dir      string   // text direction; "" means unset
	Children []*Node

	// Decorator fields.
	DecorKind DecoratorKind
	OuterHTML string

	// tag is the DOM tag the element renders as. It is fixed at
	// construction; content changes go through child mutation, never
	// through retagging a live node.
	tag string
}

// Tag returns the element's DOM tag. Empty for non-element nodes.
func (n *Node) Tag() string {
	return n.tag
}

// IsBlockLevel reports whether the node may sit directly under the root.
// The root accepts only element and decorator children, never bare text.
func (n *Node) IsBlockLevel() bool {
	if n == nil {
		return false
	}
	switch n.Kind {
	case KindDecorator:
		return true
	case KindElement:
		// Links are inline containers despite being elements.
		return n.ElemKind != ElemLink
	default:
		return false
	}
}

// Append adds children to an element node, skipping nils.
func (n *Node) Append(children ...*Node) {
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
}

// ReplaceChildren swaps the element's child sequence wholesale. This is
// the only sanctioned way to change rendered content: the node's tag
// identity never changes in place.
func (n *Node) ReplaceChildren(children []*Node) {
	n.Children = children
}

// Clone returns a deep copy of the node.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	dup := *n
	if len(n.Children) > 0 {
		dup.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			dup.Children[i] = c.Clone()
		}
	}
	return &dup
}

// TextContent concatenates the text runs beneath the node in order.
func (n *Node) TextContent() string {
	if n == nil {
		return ""
	}
	if n.Kind == KindText {
		return n.Content
	}
	var out string
	for _, c := range n.Children {
		out += c.TextContent()
	}
	return out
}
