// Package doctree defines the document node model shared by the editor
// core: text runs with a format bitmask, a closed set of element
// variants, and opaque decorator leaves.
//
// The model is deliberately closed. Components switch exhaustively on
// Kind and ElemKind instead of dispatching through interfaces, so a new
// variant is a compile-visible change everywhere it matters.
package doctree
