package server

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

// contentPolicy builds the sanitizer applied to host-supplied HTML at
// the REST boundary. It mirrors what the import pipeline accepts: the
// block and inline tags of the node model, direction metadata, inline
// styles, and <style> blocks (which become decorator nodes, not
// executable content). Scripts and event attributes never pass.
func contentPolicy() *bluemonday.Policy {
	dirRegexp := regexp.MustCompile(`^(ltr|rtl)$`)

	p := bluemonday.NewPolicy()

	p.AllowElements(
		"p", "h1", "h2", "h3", "h4", "h5", "h6",
		"ul", "ol", "li", "blockquote",
		"table", "tbody", "thead", "tr", "td", "th",
		"code", "pre", "address", "div", "hr",
		"b", "strong", "i", "em", "u", "s", "strike", "del",
		"sub", "sup", "span", "br",
	)
	p.AllowAttrs("dir").Matching(dirRegexp).Globally()
	p.AllowAttrs("style").OnElements("span")
	p.AllowAttrs("class").Globally()
	p.AllowAttrs("data-list").Matching(regexp.MustCompile(`^check$`)).OnElements("ul")

	p.AllowAttrs("href").OnElements("a")
	p.AllowStandardURLs()
	p.AllowElements("a")

	// Style blocks survive sanitation so they can become StyleSheet
	// decorators on import.
	p.AllowElements("style")
	p.AllowAttrs("media", "type").OnElements("style")

	return p
}
