// Package doc exposes a minimal, dialect-agnostic attribute tree over the two
// witness document formats (GraphML and YAML). Loaders in graph/ and sequence/
// consume a Node instead of a concrete *xml.Decoder or yaml.Node, so that the
// parsing backend stays swappable and testable in isolation.
package doc

// Node is a single element of a generic (tag, attributes, children) tree.
//
// Both backings (xml.go, yaml.go) implement this over their own concrete
// syntax; callers never see encoding/xml or yaml.v3 types directly.
type Node interface {
	// Tag returns the element's name, e.g. "node" or "waypoint".
	Tag() string

	// Text returns the element's own text content, trimmed of surrounding
	// whitespace. Child elements do not contribute to it.
	Text() string

	// Attr returns the named attribute's value and whether it was present.
	// For the YAML backing, "attributes" are scalar-valued mapping keys.
	Attr(name string) (string, bool)

	// Children returns the element's child nodes, optionally filtered by
	// tag. An empty tag returns every child.
	Children(tag string) []Node
}
