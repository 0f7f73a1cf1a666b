package schema

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/inkwell-dev/inkwell/pkg/doctree"
)

// Default returns a registry populated with the built-in node kinds.
// StyleSheet is registered for serialization and export only: the
// generic import path excludes style elements, so its FromDOM is nil
// and the bridge special-cases <style> before conversion runs.
func Default() *Registry {
	r := NewRegistry()

	r.Register(&NodeSpec{
		Type:   "paragraph",
		DOMTag: "p",
		FromDOM: func(n *html.Node, convert ConvertChildren) *doctree.Node {
			p := doctree.Paragraph(convert(n)...)
			p.Dir = Attr(n, "dir")
			return p
		},
		ToDOM:       func(n *doctree.Node) *html.Node { return elem("p", dirAttr(n)...) },
		Serialize:   func(n *doctree.Node) State { return State{"dir": n.Dir} },
		Deserialize: func(s State) *doctree.Node { return withDir(doctree.Paragraph(), s) },
	})

	r.Register(&NodeSpec{
		Type:      "heading",
		DOMTag:    "h1",
		MatchTags: []string{"h1", "h2", "h3", "h4", "h5", "h6"},
		FromDOM: func(n *html.Node, convert ConvertChildren) *doctree.Node {
			level, err := strconv.Atoi(strings.TrimPrefix(n.Data, "h"))
			if err != nil {
				return nil
			}
			h := doctree.Heading(level, convert(n)...)
			h.Dir = Attr(n, "dir")
			return h
		},
		ToDOM: func(n *doctree.Node) *html.Node { return elem(n.Tag(), dirAttr(n)...) },
		Serialize: func(n *doctree.Node) State {
			return State{"dir": n.Dir, "level": n.Level}
		},
		Deserialize: func(s State) *doctree.Node {
			return withDir(doctree.Heading(intField(s, "level", 1)), s)
		},
	})

	r.Register(&NodeSpec{
		Type:      "list",
		DOMTag:    "ul",
		MatchTags: []string{"ul", "ol"},
		FromDOM: func(n *html.Node, convert ConvertChildren) *doctree.Node {
			kind := doctree.ListUnordered
			switch {
			case n.Data == "ol":
				kind = doctree.ListOrdered
			case Attr(n, "data-list") == "check":
				kind = doctree.ListCheck
			}
			l := doctree.List(kind, convert(n)...)
			l.Dir = Attr(n, "dir")
			return l
		},
		ToDOM: func(n *doctree.Node) *html.Node {
			attrs := dirAttr(n)
			if n.List == doctree.ListCheck {
				attrs = append(attrs, html.Attribute{Key: "data-list", Val: "check"})
			}
			return elem(n.Tag(), attrs...)
		},
		Serialize: func(n *doctree.Node) State {
			return State{"dir": n.Dir, "list": int(n.List)}
		},
		Deserialize: func(s State) *doctree.Node {
			return withDir(doctree.List(doctree.ListKind(intField(s, "list", 0))), s)
		},
	})

	r.Register(&NodeSpec{
		Type:   "listitem",
		DOMTag: "li",
		FromDOM: func(n *html.Node, convert ConvertChildren) *doctree.Node {
			li := doctree.ListItem(convert(n)...)
			li.Dir = Attr(n, "dir")
			return li
		},
		ToDOM:       func(n *doctree.Node) *html.Node { return elem("li", dirAttr(n)...) },
		Serialize:   func(n *doctree.Node) State { return State{"dir": n.Dir} },
		Deserialize: func(s State) *doctree.Node { return withDir(doctree.ListItem(), s) },
	})

	r.Register(&NodeSpec{
		Type:   "quote",
		DOMTag: "blockquote",
		FromDOM: func(n *html.Node, convert ConvertChildren) *doctree.Node {
			q := doctree.Quote(convert(n)...)
			q.Dir = Attr(n, "dir")
			return q
		},
		ToDOM:       func(n *doctree.Node) *html.Node { return elem("blockquote", dirAttr(n)...) },
		Serialize:   func(n *doctree.Node) State { return State{"dir": n.Dir} },
		Deserialize: func(s State) *doctree.Node { return withDir(doctree.Quote(), s) },
	})

	r.Register(&NodeSpec{
		Type:   "link",
		DOMTag: "a",
		FromDOM: func(n *html.Node, convert ConvertChildren) *doctree.Node {
			return doctree.Link(Attr(n, "href"), convert(n)...)
		},
		ToDOM: func(n *doctree.Node) *html.Node {
			attrs := []html.Attribute{{Key: "href", Val: n.URL}}
			return elem("a", append(attrs, dirAttr(n)...)...)
		},
		Serialize: func(n *doctree.Node) State { return State{"url": n.URL} },
		Deserialize: func(s State) *doctree.Node {
			url, _ := s["url"].(string)
			return doctree.Link(url)
		},
	})

	r.Register(&NodeSpec{
		Type:   "table",
		DOMTag: "table",
		FromDOM: func(n *html.Node, convert ConvertChildren) *doctree.Node {
			return doctree.Table(convert(n)...)
		},
		ToDOM:       func(n *doctree.Node) *html.Node { return elem("table") },
		Serialize:   func(n *doctree.Node) State { return State{} },
		Deserialize: func(s State) *doctree.Node { return doctree.Table() },
	})

	r.Register(&NodeSpec{
		Type:      "tablerow",
		DOMTag:    "tr",
		MatchTags: []string{"tr"},
		FromDOM: func(n *html.Node, convert ConvertChildren) *doctree.Node {
			return doctree.TableRow(convert(n)...)
		},
		ToDOM:       func(n *doctree.Node) *html.Node { return elem("tr") },
		Serialize:   func(n *doctree.Node) State { return State{} },
		Deserialize: func(s State) *doctree.Node { return doctree.TableRow() },
	})

	r.Register(&NodeSpec{
		Type:      "tablecell",
		DOMTag:    "td",
		MatchTags: []string{"td", "th"},
		FromDOM: func(n *html.Node, convert ConvertChildren) *doctree.Node {
			return doctree.TableCell(convert(n)...)
		},
		ToDOM:       func(n *doctree.Node) *html.Node { return elem("td") },
		Serialize:   func(n *doctree.Node) State { return State{} },
		Deserialize: func(s State) *doctree.Node { return doctree.TableCell() },
	})

	r.Register(&NodeSpec{
		Type:   "code",
		DOMTag: "code",
		FromDOM: func(n *html.Node, convert ConvertChildren) *doctree.Node {
			return doctree.CodeBlock(convert(n)...)
		},
		ToDOM:       func(n *doctree.Node) *html.Node { return elem("code") },
		Serialize:   func(n *doctree.Node) State { return State{} },
		Deserialize: func(s State) *doctree.Node { return doctree.CodeBlock() },
	})

	r.Register(&NodeSpec{
		Type:   "address",
		DOMTag: "address",
		FromDOM: func(n *html.Node, convert ConvertChildren) *doctree.Node {
			a := doctree.Address(convert(n)...)
			a.Dir = Attr(n, "dir")
			return a
		},
		ToDOM:       func(n *doctree.Node) *html.Node { return elem("address", dirAttr(n)...) },
		Serialize:   func(n *doctree.Node) State { return State{"dir": n.Dir} },
		Deserialize: func(s State) *doctree.Node { return withDir(doctree.Address(), s) },
	})

	r.Register(&NodeSpec{
		Type:   "preformatted",
		DOMTag: "pre",
		FromDOM: func(n *html.Node, convert ConvertChildren) *doctree.Node {
			p := doctree.Preformatted(convert(n)...)
			p.Dir = Attr(n, "dir")
			return p
		},
		ToDOM:       func(n *doctree.Node) *html.Node { return elem("pre", dirAttr(n)...) },
		Serialize:   func(n *doctree.Node) State { return State{"dir": n.Dir} },
		Deserialize: func(s State) *doctree.Node { return withDir(doctree.Preformatted(), s) },
	})

	r.Register(&NodeSpec{
		Type:   "div",
		DOMTag: "div",
		FromDOM: func(n *html.Node, convert ConvertChildren) *doctree.Node {
			d := doctree.Div(convert(n)...)
			d.Dir = Attr(n, "dir")
			return d
		},
		ToDOM:       func(n *doctree.Node) *html.Node { return elem("div", dirAttr(n)...) },
		Serialize:   func(n *doctree.Node) State { return State{"dir": n.Dir} },
		Deserialize: func(s State) *doctree.Node { return withDir(doctree.Div(), s) },
	})

	r.Register(&NodeSpec{
		Type:   "horizontalrule",
		DOMTag: "hr",
		FromDOM: func(n *html.Node, convert ConvertChildren) *doctree.Node {
			return doctree.HorizontalRule()
		},
		ToDOM:       func(n *doctree.Node) *html.Node { return elem("hr") },
		Serialize:   func(n *doctree.Node) State { return State{} },
		Deserialize: func(s State) *doctree.Node { return doctree.HorizontalRule() },
	})

	r.Register(&NodeSpec{
		Type:   "stylesheet",
		DOMTag: "style",
		// FromDOM stays nil: style elements never reach generic import.
		ToDOM: func(n *doctree.Node) *html.Node {
			return &html.Node{Type: html.RawNode, Data: n.OuterHTML}
		},
		Serialize: func(n *doctree.Node) State { return State{"outerHTML": n.OuterHTML} },
		Deserialize: func(s State) *doctree.Node {
			raw, _ := s["outerHTML"].(string)
			return doctree.StyleSheet(raw)
		},
	})

	return r
}

// Attr returns the value of the named attribute, or "".
func Attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func elem(tag string, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: tag, Attr: attrs}
}

func dirAttr(n *doctree.Node) []html.Attribute {
	if n.Dir == "" {
		return nil
	}
	return []html.Attribute{{Key: "dir", Val: n.Dir}}
}

func withDir(n *doctree.Node, s State) *doctree.Node {
	if dir, ok := s["dir"].(string); ok {
		n.Dir = dir
	}
	return n
}

func intField(s State, key string, fallback int) int {
	switch v := s[key].(type) {
	case int:
		return v
	case float64: // JSON round trip
		return int(v)
	default:
		return fallback
	}
}
