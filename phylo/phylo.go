// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package phylo implements rooted phylogenetic trees
// used to annotate taxa with canonical indices.
//
// A tree is owned by its root:
// every node keeps an ordered list of its children
// and a back reference to its parent.
package phylo

import "fmt"

// A Node is a node of a rooted phylogenetic tree.
type Node struct {
	// Name of the node.
	// Usually it is empty for internal nodes.
	Name string

	// Index is the canonical index of the node.
	// It is -1 if the node is not indexed.
	Index int

	parent   *Node
	children []*Node
}

// NewNode creates a new unindexed node
// with the given name.
func NewNode(name string) *Node {
	return &Node{
		Name:  name,
		Index: -1,
	}
}

// Add adds one or more children to the node.
// Children that already have a parent
// are detached from it.
func (n *Node) Add(children ...*Node) {
	for _, c := range children {
		if c.parent != nil {
			c.parent.remove(c)
		}
		c.parent = n
		n.children = append(n.children, c)
	}
}

func (n *Node) remove(c *Node) {
	for i, x := range n.children {
		if x == c {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}

// Children returns the children of the node
// in their tree order.
func (n *Node) Children() []*Node {
	return n.children
}

// Parent returns the parent of the node.
// It is nil for the root.
func (n *Node) Parent() *Node {
	return n.parent
}

// IsLeaf returns true if the node is a terminal.
func (n *Node) IsLeaf() bool {
	return len(n.children) == 0
}

// IsRoot returns true if the node does not have a parent.
func (n *Node) IsRoot() bool {
	return n.parent == nil
}

// DisplayName returns the name derived from the node index:
// internal nodes are named as "Node(<index>)",
// and terminals keep their own name.
// Unindexed internal nodes keep their name.
func (n *Node) DisplayName() string {
	if n.IsLeaf() || n.Index < 0 {
		return n.Name
	}
	return InternalName(n.Index)
}

// InternalName returns the display name
// of an internal node with the given index.
func InternalName(index int) string {
	return fmt.Sprintf("Node(%d)", index)
}

// Leaves returns the terminals below the node
// in tree order.
func (n *Node) Leaves() []*Node {
	var ls []*Node
	n.preOrder(func(x *Node) {
		if x.IsLeaf() {
			ls = append(ls, x)
		}
	})
	return ls
}

func (n *Node) preOrder(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.preOrder(fn)
	}
}

func (n *Node) postOrder(fn func(*Node)) {
	for _, c := range n.children {
		c.postOrder(fn)
	}
	fn(n)
}

// A Tree is a rooted phylogenetic tree.
type Tree struct {
	root *Node
}

// New creates a new tree from a root node.
func New(root *Node) *Tree {
	if root.parent != nil {
		root.parent.remove(root)
		root.parent = nil
	}
	return &Tree{root: root}
}

// Root returns the root of the tree.
func (t *Tree) Root() *Node {
	return t.root
}

// Leaves returns the terminals of the tree
// in tree order.
func (t *Tree) Leaves() []*Node {
	return t.root.Leaves()
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	var n int
	t.root.preOrder(func(*Node) { n++ })
	return n
}

// PreOrder visits the nodes of the tree,
// each node before its children.
func (t *Tree) PreOrder(fn func(*Node)) {
	t.root.preOrder(fn)
}

// PostOrder visits the nodes of the tree,
// the children of a node before the node.
func (t *Tree) PostOrder(fn func(*Node)) {
	t.root.postOrder(fn)
}

// WithNames replaces the name of each node
// with the value returned by name,
// calls fn,
// and then restores the original names.
// The names are restored in any case,
// even if fn fails or panics.
func (t *Tree) WithNames(name func(*Node) string, fn func() error) error {
	var nodes []*Node
	var orig []string
	t.PreOrder(func(n *Node) {
		nodes = append(nodes, n)
		orig = append(orig, n.Name)
	})
	defer func() {
		for i, n := range nodes {
			n.Name = orig[i]
		}
	}()

	for _, n := range nodes {
		n.Name = name(n)
	}
	return fn()
}
