package sptree

import (
	"iter"

	"github.com/ComputaSean/Hidden-Surface-Visualization/geom"
)

// Node is a node of a tree. It stores the group of items lying on its
// splitting plane, together with the subtrees in front of and behind it.
//
// Nodes are created during construction and never change afterwards, except
// for a single optional attachment set by Tree.Decorate.
type Node[P Partitionable[P]] struct {
	items      []P          // splitter first, then all coincident items
	plane      geom.Segment // splitter's carrier line clipped to the box
	front      *Node[P]     // items in front of the splitting plane
	back       *Node[P]     // items behind the splitting plane
	attachment any
}

// Items returns the group of coincident items at this node. The first item is
// the splitter. Clients must not modify the returned slice.
func (n *Node[P]) Items() []P {
	return n.items[:len(n.items):len(n.items)]
}

// Splitter returns the item whose carrier line partitions the subtrees.
func (n *Node[P]) Splitter() P {
	return n.items[0]
}

// Plane returns the splitting plane, i.e. the splitter's carrier line clipped to
// the bounding box of the tree.
func (n *Node[P]) Plane() geom.Segment {
	return n.plane
}

// Front returns the subtree in front of the splitting plane, or nil.
func (n *Node[P]) Front() *Node[P] {
	return n.front
}

// Back returns the subtree behind the splitting plane, or nil.
func (n *Node[P]) Back() *Node[P] {
	return n.back
}

// IsLeaf is true for nodes without children.
func (n *Node[P]) IsLeaf() bool {
	return n.front == nil && n.back == nil
}

// Attachment returns the value set by Tree.Decorate, or nil.
func (n *Node[P]) Attachment() any {
	return n.attachment
}

// BuildStats collects some numbers about a tree construction.
type BuildStats struct {
	Input  int // number of input items
	Pieces int // number of items in the finished tree
	Splits int // number of items split during construction
	Nodes  int // number of nodes
	Leaves int // number of leaf nodes
	Depth  int // height of the tree, 0 for an empty tree
}

// Tree is a binary space partition of a set of items within a bounding box.
//
// A tree is immutable after construction. Any number of goroutines may
// traverse it concurrently.
type Tree[P Partitionable[P]] struct {
	root      *Node[P]
	box       geom.Box
	cfg       Config
	stats     BuildStats
	decorated bool
}

// Root returns the root node, which is nil for an empty tree.
func (t *Tree[P]) Root() *Node[P] {
	if t == nil {
		return nil
	}
	return t.root
}

// Box returns the bounding box used to clip splitting planes.
func (t *Tree[P]) Box() geom.Box {
	return t.box
}

// Config returns the effective configuration the tree has been built with.
func (t *Tree[P]) Config() Config {
	return t.cfg
}

// IsEmpty reports whether the tree has no nodes.
func (t *Tree[P]) IsEmpty() bool {
	return t == nil || t.root == nil
}

// Stats returns statistics collected during construction.
func (t *Tree[P]) Stats() BuildStats {
	if t == nil {
		return BuildStats{}
	}
	return t.stats
}

// Nodes returns an iterator over all nodes in pre-order (node, front subtree,
// back subtree).
func (t *Tree[P]) Nodes() iter.Seq[*Node[P]] {
	return func(yield func(*Node[P]) bool) {
		if t.IsEmpty() {
			return
		}
		stack := []*Node[P]{t.root}
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(n) {
				return
			}
			if n.back != nil {
				stack = append(stack, n.back)
			}
			if n.front != nil {
				stack = append(stack, n.front)
			}
		}
	}
}

// Items returns an iterator over all items in the tree, in node pre-order.
func (t *Tree[P]) Items() iter.Seq[P] {
	return func(yield func(P) bool) {
		for n := range t.Nodes() {
			for _, item := range n.items {
				if !yield(item) {
					return
				}
			}
		}
	}
}

// Decorate calls fn once for every node and stores the result as the node's
// attachment. This is meant for renderers which want to attach geometry to
// nodes. A tree may be decorated once only; decoration has to be complete
// before concurrent traversals start. Decorate panics if fn is nil.
func (t *Tree[P]) Decorate(fn func(*Node[P]) any) error {
	assert(t != nil, "decorating a nil tree")
	assert(fn != nil, "decorating with a nil function")
	if t.decorated {
		return ErrAlreadyDecorated
	}
	t.decorated = true
	for n := range t.Nodes() {
		n.attachment = fn(n)
	}
	return nil
}
