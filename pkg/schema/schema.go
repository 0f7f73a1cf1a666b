package schema

import (
	"sort"

	"golang.org/x/net/html"

	"github.com/inkwell-dev/inkwell/pkg/doctree"
)

// State is the persisted form of a node: structural metadata only.
// Styling is never re-derived from the DOM at serialize time.
type State map[string]any

// ConvertChildren converts a DOM node's children into document nodes.
// The HTML bridge supplies it so converters can recurse without the
// schema depending on the bridge.
type ConvertChildren func(n *html.Node) []*doctree.Node

// NodeSpec is the capability table entry for one node kind: the DOM tag
// it renders as, an import converter, and a serializer/deserializer pair.
type NodeSpec struct {
	// Type is the kind's persistent type tag, e.g. "paragraph".
	Type string

	// DOMTag is the tag the kind renders as. Fixed per kind.
	DOMTag string

	// MatchTags lists the DOM tags this spec's converter competes for
	// during import. Defaults to {DOMTag} when empty.
	MatchTags []string

	// Priority breaks ties between converters registered for the same
	// tag. Higher wins; first match at the winning priority is taken.
	Priority int

	// FromDOM converts a matching DOM element into a document node.
	// Returning nil passes the element to the next converter in line.
	FromDOM func(n *html.Node, convert ConvertChildren) *doctree.Node

	// ToDOM renders the node as a DOM element. Children are appended by
	// the bridge, not the spec.
	ToDOM func(n *doctree.Node) *html.Node

	// Serialize captures the node's structural metadata.
	Serialize func(n *doctree.Node) State

	// Deserialize rebuilds a childless node from its persisted state.
	Deserialize func(s State) *doctree.Node
}

// Registry maps node kinds to their capabilities and DOM tags to
// priority-ordered import converters.
type Registry struct {
	specs      []*NodeSpec
	byType     map[string]*NodeSpec
	converters map[string][]*NodeSpec // tag -> specs, priority order
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byType:     make(map[string]*NodeSpec),
		converters: make(map[string][]*NodeSpec),
	}
}

// Register adds a node spec. Registering the same type twice replaces
// the earlier spec for serialization but both converters stay in the
// tag's candidate list, ordered by priority then registration order.
func (r *Registry) Register(spec *NodeSpec) {
	r.specs = append(r.specs, spec)
	r.byType[spec.Type] = spec

	tags := spec.MatchTags
	if len(tags) == 0 {
		tags = []string{spec.DOMTag}
	}
	for _, tag := range tags {
		list := append(r.converters[tag], spec)
		// Stable: equal priorities keep registration order, so the
		// first registered match wins.
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Priority > list[j].Priority
		})
		r.converters[tag] = list
	}
}

// Spec returns the spec registered for the given type tag.
func (r *Registry) Spec(typ string) (*NodeSpec, bool) {
	s, ok := r.byType[typ]
	return s, ok
}

// Convert runs the converters competing for the element's tag in
// priority order and returns the first non-nil result. Style and script
// elements are categorically excluded from this path: the bridge
// special-cases <style> before generic conversion runs, and <script>
// never imports.
func (r *Registry) Convert(n *html.Node, convert ConvertChildren) (*doctree.Node, bool) {
	if n.Type != html.ElementNode {
		return nil, false
	}
	if n.Data == "style" || n.Data == "script" {
		return nil, false
	}
	for _, spec := range r.converters[n.Data] {
		if spec.FromDOM == nil {
			continue
		}
		if node := spec.FromDOM(n, convert); node != nil {
			return node, true
		}
	}
	return nil, false
}

// ToDOM renders a node through its kind's capability entry.
func (r *Registry) ToDOM(n *doctree.Node) (*html.Node, bool) {
	spec, ok := r.byType[typeTag(n)]
	if !ok || spec.ToDOM == nil {
		return nil, false
	}
	return spec.ToDOM(n), true
}

// Serialize captures a node's structural state through its capability
// entry. The result always carries the type tag.
func (r *Registry) Serialize(n *doctree.Node) (State, bool) {
	spec, ok := r.byType[typeTag(n)]
	if !ok || spec.Serialize == nil {
		return nil, false
	}
	s := spec.Serialize(n)
	if s == nil {
		s = State{}
	}
	s["type"] = spec.Type
	return s, true
}

// Deserialize rebuilds a node from persisted state by its type tag.
func (r *Registry) Deserialize(s State) (*doctree.Node, bool) {
	typ, _ := s["type"].(string)
	spec, ok := r.byType[typ]
	if !ok || spec.Deserialize == nil {
		return nil, false
	}
	return spec.Deserialize(s), true
}

// typeTag maps a document node to its registry type tag.
func typeTag(n *doctree.Node) string {
	switch n.Kind {
	case doctree.KindElement:
		switch n.ElemKind {
		case doctree.ElemParagraph:
			return "paragraph"
		case doctree.ElemHeading:
			return "heading"
		case doctree.ElemList:
			return "list"
		case doctree.ElemListItem:
			return "listitem"
		case doctree.ElemQuote:
			return "quote"
		case doctree.ElemLink:
			return "link"
		case doctree.ElemTable:
			return "table"
		case doctree.ElemTableRow:
			return "tablerow"
		case doctree.ElemTableCell:
			return "tablecell"
		case doctree.ElemCodeBlock:
			return "code"
		case doctree.ElemAddress:
			return "address"
		case doctree.ElemPreformatted:
			return "preformatted"
		case doctree.ElemDiv:
			return "div"
		case doctree.ElemHorizontalRule:
			return "horizontalrule"
		}
	case doctree.KindDecorator:
		if n.DecorKind == doctree.DecorStyleSheet {
			return "stylesheet"
		}
	}
	return ""
}
