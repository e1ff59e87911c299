package configtree

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// FromYAML builds a tree from a YAML document. The top level must be a
// mapping (or empty); nested mappings become sections in document order,
// everything else becomes a leaf value. Scalars decode to their natural Go
// types, so an int in the file compares equal to a coerced int override.
func FromYAML(data []byte) (*Tree, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	t := New()
	if len(doc.Content) == 0 {
		return t, nil
	}

	top := doc.Content[0]
	if top.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parse yaml: top-level node is not a mapping")
	}
	if err := fillNode(t.root, top); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return t, nil
}

// ToYAML serializes the tree, keeping sections and keys in insertion
// order.
func (t *Tree) ToYAML() ([]byte, error) {
	node, err := encodeNode(t.root)
	if err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	data, err := yaml.Marshal(node)
	if err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return data, nil
}

// MarshalYAML implements yaml.Marshaler, so trees embed cleanly in larger
// documents.
func (t *Tree) MarshalYAML() (any, error) {
	return encodeNode(t.root)
}

func fillNode(n *Node, y *yaml.Node) error {
	if y.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(y.Content); i += 2 {
			child := n.child(y.Content[i].Value)
			if err := fillNode(child, y.Content[i+1]); err != nil {
				return err
			}
		}
		return nil
	}

	var v any
	if err := y.Decode(&v); err != nil {
		return err
	}
	n.Set(v)
	return nil
}

func encodeNode(n *Node) (*yaml.Node, error) {
	if n.hasValue && len(n.keys) == 0 {
		var leaf yaml.Node
		if err := leaf.Encode(n.value); err != nil {
			return nil, err
		}
		return &leaf, nil
	}

	mapping := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range n.keys {
		var key yaml.Node
		if err := key.Encode(k); err != nil {
			return nil, err
		}
		val, err := encodeNode(n.children[k])
		if err != nil {
			return nil, err
		}
		mapping.Content = append(mapping.Content, &key, val)
	}
	return mapping, nil
}
