package bridge

import (
	"strings"

	"golang.org/x/net/html"
)

// normalize applies the export normalization pass to the subtree under
// parent, bottom-up so span unwrapping sees already-normalized children:
//
//  1. class tokens carrying the internal theme prefix are stripped, the
//     attribute removed when no tokens remain;
//  2. dir="ltr" is stripped — it is the implicit default and carries no
//     meaning once saved;
//  3. spans whose only style is the whitespace-preservation marker are
//     unwrapped; spans with other real styles keep the span and lose
//     just that property.
func normalize(parent *html.Node) {
	c := parent.FirstChild
	for c != nil {
		next := c.NextSibling
		if c.Type == html.ElementNode {
			normalize(c)
			stripThemeClasses(c)
			stripDefaultDir(c)
			if c.Data == "span" {
				next = normalizeSpan(parent, c, next)
			}
		}
		c = next
	}
}

// stripThemeClasses removes theme-prefixed class tokens.
func stripThemeClasses(n *html.Node) {
	for i, a := range n.Attr {
		if a.Key != "class" {
			continue
		}
		var kept []string
		for _, token := range strings.Fields(a.Val) {
			if !strings.HasPrefix(token, ThemeClassPrefix) {
				kept = append(kept, token)
			}
		}
		if len(kept) == 0 {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
		} else {
			n.Attr[i].Val = strings.Join(kept, " ")
		}
		return
	}
}

// stripDefaultDir removes dir="ltr".
func stripDefaultDir(n *html.Node) {
	for i, a := range n.Attr {
		if a.Key == "dir" && strings.EqualFold(strings.TrimSpace(a.Val), "ltr") {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return
		}
	}
}

// normalizeSpan applies rule 3 to one span and returns the next sibling
// the caller should continue from.
func normalizeSpan(parent, span, next *html.Node) *html.Node {
	decls, hadMarker := splitStyle(styleAttr(span))
	if !hadMarker {
		return next
	}

	if len(decls) == 0 {
		// Marker-only span: replace it with its children.
		first := span.FirstChild
		for span.FirstChild != nil {
			c := span.FirstChild
			span.RemoveChild(c)
			parent.InsertBefore(c, span)
		}
		parent.RemoveChild(span)
		if first != nil {
			return first
		}
		return next
	}

	setStyleAttr(span, strings.Join(decls, "; "))
	return next
}

// splitStyle splits a style attribute into declarations, dropping the
// whitespace-preservation marker. The bool reports whether the marker
// was present.
func splitStyle(style string) ([]string, bool) {
	var kept []string
	hadMarker := false
	for _, decl := range strings.Split(style, ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		if isWhitespaceMarker(decl) {
			hadMarker = true
			continue
		}
		kept = append(kept, decl)
	}
	return kept, hadMarker
}

// isWhitespaceMarker matches the marker declaration tolerating spacing
// and case differences around the colon.
func isWhitespaceMarker(decl string) bool {
	prop, val, ok := strings.Cut(decl, ":")
	if !ok {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(prop), "white-space") &&
		strings.EqualFold(strings.TrimSpace(val), "pre-wrap")
}

func styleAttr(n *html.Node) string {
	for _, a := range n.Attr {
		if a.Key == "style" {
			return a.Val
		}
	}
	return ""
}

func setStyleAttr(n *html.Node, style string) {
	for i, a := range n.Attr {
		if a.Key == "style" {
			n.Attr[i].Val = style
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: "style", Val: style})
}
