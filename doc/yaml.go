package doc

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// yamlNode adapts a yaml.v3 node to the Node interface. YAML has no native
// notion of element tag, so the tag a node is known by is the mapping key
// it was reached through; the root node carries an explicit tag supplied by
// the caller.
type yamlNode struct {
	tag  string
	node *yaml.Node
}

func (n *yamlNode) Tag() string { return n.tag }

func (n *yamlNode) Text() string {
	if n.node.Kind == yaml.ScalarNode {
		return strings.TrimSpace(n.node.Value)
	}
	return ""
}

func (n *yamlNode) Attr(name string) (string, bool) {
	if n.node.Kind != yaml.MappingNode {
		return "", false
	}
	for i := 0; i+1 < len(n.node.Content); i += 2 {
		key, val := n.node.Content[i], n.node.Content[i+1]
		if key.Value == name && val.Kind == yaml.ScalarNode {
			return val.Value, true
		}
	}
	return "", false
}

// Children returns, for a mapping node, the values of every key matching
// tag (or every value, if tag is empty); for a sequence node, it flattens
// one level by unwrapping each item's matching key — this mirrors the
// witness-sequence dialect's "{segment: [...]}" / "{waypoint: {...}}"
// nesting, where a YAML sequence item is itself a single-key mapping naming
// the kind of thing it holds.
func (n *yamlNode) Children(tag string) []Node {
	switch n.node.Kind {
	case yaml.MappingNode:
		out := make([]Node, 0, len(n.node.Content)/2)
		for i := 0; i+1 < len(n.node.Content); i += 2 {
			key, val := n.node.Content[i], n.node.Content[i+1]
			if tag == "" || key.Value == tag {
				out = append(out, &yamlNode{tag: key.Value, node: val})
			}
		}
		return out
	case yaml.SequenceNode:
		out := make([]Node, 0, len(n.node.Content))
		for _, item := range n.node.Content {
			if tag == "" {
				// Each sequence item stands on its own; it is not unwrapped
				// by key, since the caller has not named which key it wants.
				out = append(out, &yamlNode{node: item})
				continue
			}
			if item.Kind != yaml.MappingNode {
				continue
			}
			for i := 0; i+1 < len(item.Content); i += 2 {
				key, val := item.Content[i], item.Content[i+1]
				if key.Value == tag {
					out = append(out, &yamlNode{tag: key.Value, node: val})
				}
			}
		}
		return out
	default:
		return nil
	}
}

// ParseYAML decodes a YAML document (the waypoint-sequence dialect) into its
// root Node, tagged "document".
func ParseYAML(data []byte) (Node, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("doc: malformed yaml document: %w", err)
	}
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil, fmt.Errorf("doc: empty yaml document")
		}
		return &yamlNode{tag: "document", node: root.Content[0]}, nil
	}
	return &yamlNode{tag: "document", node: &root}, nil
}
