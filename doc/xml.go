package doc

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// xmlNode is a generic recursive tree shape that encoding/xml can unmarshal
// any well-formed document into, regardless of schema: every element's
// attributes land in Attrs, its own text in CharData, and its children
// recurse through Nodes via the ",any" wildcard.
type xmlNode struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	CharData string     `xml:",chardata"`
	Nodes    []xmlNode  `xml:",any"`
}

func (n *xmlNode) Tag() string { return n.XMLName.Local }

func (n *xmlNode) Text() string { return strings.TrimSpace(n.CharData) }

func (n *xmlNode) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func (n *xmlNode) Children(tag string) []Node {
	out := make([]Node, 0, len(n.Nodes))
	for i := range n.Nodes {
		if tag == "" || n.Nodes[i].XMLName.Local == tag {
			out = append(out, &n.Nodes[i])
		}
	}
	return out
}

// ParseXML decodes an XML document (GraphML) into its root Node.
func ParseXML(data []byte) (Node, error) {
	var root xmlNode
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("doc: malformed xml document: %w", err)
	}
	return &root, nil
}
