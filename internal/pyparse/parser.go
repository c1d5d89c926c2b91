// Package pyparse adapts tree-sitter's Python grammar to the synast node
// model: given source text, produce a tree. Everything downstream is
// parser-agnostic.
package pyparse

import (
	"context"
	"errors"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/Sumatoshi-tech/astdiff/pkg/synast"
)

// ErrSyntax is returned when the source contains syntax errors. tree-sitter
// recovers and still yields a tree, but the analyzer's contract is
// all-or-nothing, so an error-bearing tree fails the parse.
var ErrSyntax = errors.New("source contains syntax errors")

// Parse parses Python source into a synast tree. Comment nodes are dropped
// during conversion: the classifier's substrate has no comment nodes, and
// keeping them would make comment-only edits look like statement changes to
// the fingerprint engine.
func Parse(ctx context.Context, source []byte) (*synast.Tree, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	tsTree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse: %w", err)
	}
	defer tsTree.Close()

	root := tsTree.RootNode()
	if root.HasError() {
		return nil, ErrSyntax
	}

	builder := synast.NewTreeBuilder(source)
	converted := convert(builder, root, source)

	return builder.Build(converted), nil
}

// convert maps one tree-sitter node to a synast node. Grammar field names
// become named fields; remaining named children group under a positional
// "children" list field; nodes with no named children become a text leaf.
func convert(builder *synast.TreeBuilder, tsNode *sitter.Node, source []byte) *synast.Node {
	n := builder.NewNode(synast.Kind(tsNode.Type()), spanOf(tsNode))

	if tsNode.NamedChildCount() == 0 {
		n.Fields = append(n.Fields, synast.Field{
			Name: synast.FieldText,
			Tag:  synast.LeafField,
			Leaf: tsNode.Content(source),
		})

		return n
	}

	var positional []*synast.Node

	for idx := 0; idx < int(tsNode.ChildCount()); idx++ {
		child := tsNode.Child(idx)
		if !child.IsNamed() || synast.Kind(child.Type()) == synast.KindComment {
			continue
		}

		childNode := convert(builder, child, source)

		fieldName := tsNode.FieldNameForChild(idx)
		if fieldName == "" {
			positional = append(positional, childNode)

			continue
		}

		appendNamedField(n, fieldName, childNode)
	}

	if len(positional) > 0 {
		n.Fields = append(n.Fields, synast.Field{
			Name: synast.FieldChildren,
			Tag:  synast.ListField,
			List: positional,
		})
	}

	return n
}

// appendNamedField attaches a child under a grammar field name. A repeated
// field name promotes the slot from single-node to list, keeping order.
func appendNamedField(n *synast.Node, name string, child *synast.Node) {
	existing := n.Field(name)
	if existing == nil {
		n.Fields = append(n.Fields, synast.Field{
			Name:  name,
			Tag:   synast.NodeField,
			Child: child,
		})

		return
	}

	if existing.Tag == synast.NodeField {
		existing.List = []*synast.Node{existing.Child, child}
		existing.Child = nil
		existing.Tag = synast.ListField

		return
	}

	existing.List = append(existing.List, child)
}

func spanOf(tsNode *sitter.Node) synast.Span {
	return synast.Span{
		StartByte: tsNode.StartByte(),
		EndByte:   tsNode.EndByte(),
		StartLine: tsNode.StartPoint().Row + 1,
		EndLine:   tsNode.EndPoint().Row + 1,
	}
}
