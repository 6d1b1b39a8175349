package extract

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// rootNode unwraps a Tree's opaque Root into the tree-sitter root node,
// for the extractors shared across the sitter-backed languages.
func rootNode(t Tree) (*sitter.Node, bool) {
	tree, ok := t.Root.(*sitter.Tree)
	if !ok || tree == nil {
		return nil, false
	}
	root := tree.RootNode()
	if root == nil {
		return nil, false
	}
	return root, true
}

// walk calls visit for every node in the subtree rooted at n, in
// pre-order, depth first.
func walk(n *sitter.Node, visit func(n *sitter.Node)) {
	if n == nil {
		return
	}
	visit(n)
	for i := 0; i < int(n.ChildCount()); i++ {
		walk(n.Child(i), visit)
	}
}

// nodesOfType collects every descendant (including n itself) whose
// Type() matches one of kinds.
func nodesOfType(n *sitter.Node, kinds ...string) []*sitter.Node {
	set := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		set[k] = true
	}
	var out []*sitter.Node
	walk(n, func(cur *sitter.Node) {
		if set[cur.Type()] {
			out = append(out, cur)
		}
	})
	return out
}

// walkWithAncestors is like walk but also passes the chain of ancestor
// nodes (root-to-parent order) so callers can determine enclosing
// scope without depending on a Node.Parent() accessor.
func walkWithAncestors(n *sitter.Node, ancestors []*sitter.Node, visit func(n *sitter.Node, ancestors []*sitter.Node)) {
	if n == nil {
		return
	}
	visit(n, ancestors)
	childAncestors := make([]*sitter.Node, len(ancestors)+1)
	copy(childAncestors, ancestors)
	childAncestors[len(ancestors)] = n
	for i := 0; i < int(n.ChildCount()); i++ {
		walkWithAncestors(n.Child(i), childAncestors, visit)
	}
}

func location(n *sitter.Node) (line, col, endLine, endCol int) {
	start := n.StartPoint()
	end := n.EndPoint()
	return int(start.Row) + 1, int(start.Column) + 1, int(end.Row) + 1, int(end.Column) + 1
}
