// Package configtree provides an in-memory hierarchical configuration
// store for overlay passes. Trees remember key insertion order, so a file
// loaded with FromYAML serializes back with its sections where they were.
//
// Trees are not safe for concurrent use; overlay passes run during startup
// before the configuration is shared.
package configtree

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/librelogin/envoverlay"
)

// Tree is a mutable hierarchical key-value store addressed by ordered
// segment paths. It implements envoverlay.Tree.
type Tree struct {
	root *Node
}

// Node is one addressable cell of a Tree: either a section with ordered
// children or a leaf holding a value.
type Node struct {
	value    any
	hasValue bool
	children map[string]*Node
	keys     []string
}

// New returns an empty tree.
func New() *Tree {
	return &Tree{root: &Node{}}
}

// Set writes value at path, materializing intermediate sections as needed.
// It rejects empty paths and segments IsValidSegment rejects, leaving the
// tree untouched in that case.
func (t *Tree) Set(path []string, value any) error {
	node, err := t.Node(path...)
	if err != nil {
		return err
	}
	node.Set(value)
	return nil
}

// Node returns the writable node at path, materializing intermediate
// sections. Addressing below a leaf converts the leaf back into a section
// and drops its value. The path is validated before anything is created.
func (t *Tree) Node(path ...string) (*Node, error) {
	if len(path) == 0 {
		return nil, envoverlay.ErrEmptyPath
	}
	for _, seg := range path {
		if !IsValidSegment(seg) {
			return nil, fmt.Errorf("%w: %q", envoverlay.ErrInvalidSegment, seg)
		}
	}

	n := t.root
	for _, seg := range path {
		n = n.child(seg)
	}
	return n, nil
}

// Get returns the value stored at path. The boolean reports whether the
// node exists and holds a value; sections and unset nodes report false.
func (t *Tree) Get(path ...string) (any, bool) {
	n := t.root
	for _, seg := range path {
		c, ok := n.children[seg]
		if !ok {
			return nil, false
		}
		n = c
	}
	if !n.hasValue {
		return nil, false
	}
	return n.value, true
}

// Map returns the tree as nested maps, with leaf values shared rather than
// copied. Insertion order is lost; use ToYAML when order matters.
func (t *Tree) Map() map[string]any {
	return t.root.toMap()
}

// Set writes value into the node, replacing any subtree below it.
func (n *Node) Set(value any) {
	n.value = value
	n.hasValue = true
	n.children = nil
	n.keys = nil
}

// Value returns the value held by the node, nil for sections.
func (n *Node) Value() any { return n.value }

// child returns the named child, creating it if needed. A node that gains
// children stops being a leaf.
func (n *Node) child(segment string) *Node {
	if n.children == nil {
		n.children = make(map[string]*Node)
	}
	c, ok := n.children[segment]
	if !ok {
		c = &Node{}
		n.children[segment] = c
		n.keys = append(n.keys, segment)
	}
	n.value = nil
	n.hasValue = false
	return c
}

func (n *Node) toMap() map[string]any {
	out := make(map[string]any, len(n.keys))
	for _, k := range n.keys {
		c := n.children[k]
		if len(c.keys) > 0 {
			out[k] = c.toMap()
		} else {
			out[k] = c.value
		}
	}
	return out
}

// IsValidSegment reports whether s can address a tree node. Segments must
// be non-empty valid UTF-8 without dots (the path separator in key names),
// whitespace, or control characters.
func IsValidSegment(s string) bool {
	if s == "" || strings.Contains(s, ".") {
		return false
	}
	if !utf8.ValidString(s) {
		return false
	}
	for _, r := range s {
		if r < 0x20 || r == 0x7f || unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
