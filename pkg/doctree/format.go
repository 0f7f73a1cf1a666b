package doctree

import "strings"

// Format is the inline text format bitmask.
type Format uint8

const (
	FormatBold Format = 1 << iota
	FormatItalic
	FormatUnderline
	FormatStrikethrough
	FormatSubscript
	FormatSuperscript
	FormatCode
)

// Has reports whether all bits in f are set.
func (f Format) Has(flag Format) bool {
	return f&flag == flag
}

// With returns f with the given bits set.
func (f Format) With(flag Format) Format {
	return f | flag
}

// Without returns f with the given bits cleared.
func (f Format) Without(flag Format) Format {
	return f &^ flag
}

// Toggle returns f with the given bits flipped.
func (f Format) Toggle(flag Format) Format {
	return f ^ flag
}

// String returns a debug representation like "bold|italic".
func (f Format) String() string {
	if f == 0 {
		return "none"
	}
	names := []struct {
		flag Format
		name string
	}{
		{FormatBold, "bold"},
		{FormatItalic, "italic"},
		{FormatUnderline, "underline"},
		{FormatStrikethrough, "strikethrough"},
		{FormatSubscript, "subscript"},
		{FormatSuperscript, "superscript"},
		{FormatCode, "code"},
	}
	var parts []string
	for _, n := range names {
		if f.Has(n.flag) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}
