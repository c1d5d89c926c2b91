// Package synast provides the syntax tree model consumed by the change
// analyzer: typed nodes with ordered named fields, an arena assigning a
// stable index to every node, and structural fingerprinting of subtrees.
package synast

import "strings"

// Kind is the node type tag. Values follow the tree-sitter Python grammar
// node names, but the model is grammar-agnostic: any tag round-trips through
// traversal and fingerprinting.
type Kind string

// Node kinds the analyzer dispatches on.
const (
	KindModule   Kind = "module"
	KindFunction Kind = "function_definition"
	KindClass    Kind = "class_definition"
	KindBlock    Kind = "block"
	KindComment  Kind = "comment"
)

// Field names with special meaning to the analyzer.
const (
	FieldName       = "name"
	FieldParameters = "parameters"
	FieldBody       = "body"
	FieldChildren   = "children"
	FieldText       = "text"
)

// FieldTag discriminates the value held by a Field.
type FieldTag uint8

// Field value variants. A field holds exactly one of: leaf text, a single
// child node, or an ordered list of child nodes.
const (
	LeafField FieldTag = iota
	NodeField
	ListField
)

// Span is the byte and line extent of a node in the source it was parsed
// from. Lines are 1-based.
type Span struct {
	StartByte uint32
	EndByte   uint32
	StartLine uint32
	EndLine   uint32
}

// Field is one named slot of a node. Which of Leaf, Child, List is live is
// determined by Tag.
type Field struct {
	Name  string
	Leaf  string
	Child *Node
	List  []*Node
	Tag   FieldTag
}

// Node is a single syntax tree node. Nodes are owned by the Tree that
// produced them and are read-only after construction. Index is the node's
// position in the tree's arena; it identifies the node uniquely within its
// tree, so "is this the same node" questions compare indices rather than
// structure.
type Node struct {
	Kind   Kind
	Index  int
	Span   Span
	Fields []Field
}

// Field returns the field with the given name, or nil if absent.
func (n *Node) Field(name string) *Field {
	for i := range n.Fields {
		if n.Fields[i].Name == name {
			return &n.Fields[i]
		}
	}

	return nil
}

// LeafText returns the node's text leaf field, or "" if the node is not a
// leaf.
func (n *Node) LeafText() string {
	f := n.Field(FieldText)
	if f == nil || f.Tag != LeafField {
		return ""
	}

	return f.Leaf
}

// Name returns the definition name of a function or class node: the leaf
// text of the node held by its "name" field. Returns "" for nodes without
// one.
func (n *Node) Name() string {
	f := n.Field(FieldName)
	if f == nil || f.Tag != NodeField || f.Child == nil {
		return ""
	}

	return f.Child.LeafText()
}

// Parameters returns the parameter-list subtree of a function definition,
// or nil if absent.
func (n *Node) Parameters() *Node {
	f := n.Field(FieldParameters)
	if f == nil || f.Tag != NodeField {
		return nil
	}

	return f.Child
}

// BodyBlock returns the body block node of a function or class definition,
// or nil if absent.
func (n *Node) BodyBlock() *Node {
	f := n.Field(FieldBody)
	if f == nil || f.Tag != NodeField {
		return nil
	}

	return f.Child
}

// Statements returns the ordered statement list of a definition body.
// Returns nil when the definition has no body block.
func (n *Node) Statements() []*Node {
	block := n.BodyBlock()
	if block == nil {
		return nil
	}

	f := block.Field(FieldChildren)
	if f == nil || f.Tag != ListField {
		return nil
	}

	return f.List
}

// ChildNodes returns every node held by the fields, in field order. Leaf
// fields contribute nothing.
func (n *Node) ChildNodes() []*Node {
	var children []*Node

	for i := range n.Fields {
		switch f := &n.Fields[i]; f.Tag {
		case NodeField:
			if f.Child != nil {
				children = append(children, f.Child)
			}
		case ListField:
			children = append(children, f.List...)
		case LeafField:
		}
	}

	return children
}

// Walk visits the subtree rooted at n in pre-order. Returning false from fn
// prunes the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil {
		return
	}

	stack := []*Node{n}

	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !fn(curr) {
			continue
		}

		children := curr.ChildNodes()
		for idx := len(children) - 1; idx >= 0; idx-- {
			stack = append(stack, children[idx])
		}
	}
}

// Find returns all nodes in the subtree (including n) for which the
// predicate holds, in pre-order.
func (n *Node) Find(predicate func(*Node) bool) []*Node {
	var result []*Node

	n.Walk(func(curr *Node) bool {
		if predicate(curr) {
			result = append(result, curr)
		}

		return true
	})

	return result
}

// Tree owns a parsed syntax tree: the root node, the source text it was
// parsed from, and the arena of all nodes. Immutable after construction.
type Tree struct {
	Root   *Node
	Source []byte
	nodes  []*Node
}

// Count returns the number of nodes in the arena.
func (t *Tree) Count() int {
	return len(t.nodes)
}

// NodeAt returns the arena node with the given index, or nil if out of
// range.
func (t *Tree) NodeAt(index int) *Node {
	if index < 0 || index >= len(t.nodes) {
		return nil
	}

	return t.nodes[index]
}

// NodeText returns the source text covered by the node's span.
func (t *Tree) NodeText(n *Node) string {
	if n == nil {
		return ""
	}

	start, end := int(n.Span.StartByte), int(n.Span.EndByte)
	if start < 0 || end > len(t.Source) || start > end {
		return ""
	}

	return string(t.Source[start:end])
}

// NodeLines returns the source text covered by the node's span, split into
// lines.
func (t *Tree) NodeLines(n *Node) []string {
	text := t.NodeText(n)
	if text == "" {
		return nil
	}

	return strings.Split(text, "\n")
}

// TreeBuilder constructs a Tree, assigning arena indices in creation order.
type TreeBuilder struct {
	source []byte
	nodes  []*Node
}

// Arena preallocation size.
const initialArenaCap = 64

// NewTreeBuilder creates a builder for a tree over the given source text.
func NewTreeBuilder(source []byte) *TreeBuilder {
	return &TreeBuilder{
		source: source,
		nodes:  make([]*Node, 0, initialArenaCap),
	}
}

// NewNode allocates a node in the arena and returns it with its stable
// index assigned.
func (b *TreeBuilder) NewNode(kind Kind, span Span) *Node {
	n := &Node{
		Kind:  kind,
		Index: len(b.nodes),
		Span:  span,
	}
	b.nodes = append(b.nodes, n)

	return n
}

// Build finalizes the tree with the given root.
func (b *TreeBuilder) Build(root *Node) *Tree {
	return &Tree{
		Root:   root,
		Source: b.source,
		nodes:  b.nodes,
	}
}
