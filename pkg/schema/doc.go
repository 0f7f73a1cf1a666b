// Package schema declares the capability table for document node kinds:
// for each kind, the DOM tag it renders as, the import converter that
// competes for matching tags, and the serializer pair persisting its
// structural metadata.
package schema
