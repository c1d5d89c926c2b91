// Package symtab builds per-version symbol tables: the last definition
// encountered for every function and class name in a parsed tree.
package symtab

import "github.com/Sumatoshi-tech/astdiff/pkg/synast"

// Table maps definition names to their single current node, separately for
// functions and classes. At most one live entry per name: a later
// definition with the same name silently replaces the earlier one
// (shadowing policy, not an error). Immutable after Build.
type Table struct {
	Functions map[string]*synast.Node
	Classes   map[string]*synast.Node
}

// Build walks every node of the tree in pre-order and records function and
// class definitions by name. Traversal continues into definition bodies, so
// nested functions and methods land in the table too. Any well-formed tree
// produces a table; name collisions just shrink it.
func Build(tree *synast.Tree) *Table {
	table := &Table{
		Functions: make(map[string]*synast.Node),
		Classes:   make(map[string]*synast.Node),
	}

	if tree == nil || tree.Root == nil {
		return table
	}

	tree.Root.Walk(func(n *synast.Node) bool {
		switch n.Kind {
		case synast.KindFunction:
			if name := n.Name(); name != "" {
				table.Functions[name] = n
			}
		case synast.KindClass:
			if name := n.Name(); name != "" {
				table.Classes[name] = n
			}
		}

		return true
	})

	return table
}

// Methods collects the function definitions reachable from a class body,
// keyed by name with the same last-write-wins policy as Build. The class
// node itself is never a function, so no self-exclusion is needed here.
func Methods(class *synast.Node) map[string]*synast.Node {
	methods := make(map[string]*synast.Node)

	if class == nil {
		return methods
	}

	class.Walk(func(n *synast.Node) bool {
		if n.Kind == synast.KindFunction {
			if name := n.Name(); name != "" {
				methods[name] = n
			}
		}

		return true
	})

	return methods
}
