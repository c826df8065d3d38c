package sptree

import (
	"fmt"

	"github.com/ComputaSean/Hidden-Surface-Visualization/geom"
)

// numerical slack for Check, relative to the box diagonal; split points are
// computed and therefore not exactly on the splitting plane
const checkSlack = 1e-9

// Check validates structural tree invariants:
//
//   - every node holds at least one item,
//   - all items of a node are coincident with the node's splitting plane,
//   - no item of a node's front subtree reaches behind the node's splitting
//     plane, and vice versa for the back subtree,
//   - the number of items matches the construction statistics.
//
// Check is intended for tests and debugging.
func (t *Tree[P]) Check() error {
	if t == nil {
		return fmt.Errorf("%w: nil tree", ErrInvariant)
	}
	if t.root == nil {
		if t.stats.Nodes != 0 {
			return fmt.Errorf("%w: empty tree with %d nodes", ErrInvariant, t.stats.Nodes)
		}
		return nil
	}
	tol := max(t.cfg.Epsilon, checkSlack*t.box.Diagonal())
	var nodes, pieces int
	for n := range t.Nodes() {
		nodes++
		pieces += len(n.items)
		if err := t.checkNode(n, tol); err != nil {
			return err
		}
	}
	if nodes != t.stats.Nodes || pieces != t.stats.Pieces {
		return fmt.Errorf("%w: found %d nodes/%d items, statistics say %d/%d",
			ErrInvariant, nodes, pieces, t.stats.Nodes, t.stats.Pieces)
	}
	return nil
}

func (t *Tree[P]) checkNode(n *Node[P], tol float64) error {
	if len(n.items) == 0 {
		return fmt.Errorf("%w: node without items", ErrInvariant)
	}
	ref := n.items[0].Base()
	for _, item := range n.items[1:] {
		s := item.Base()
		if geom.PointSegmentDistance(s.Start, n.plane) > tol ||
			geom.PointSegmentDistance(s.End, n.plane) > tol {
			return fmt.Errorf("%w: item %v not coincident with plane %v", ErrInvariant, s, n.plane)
		}
	}
	// signed distance is negative in front of ref
	if err := checkSide(n.front, ref, tol, -1); err != nil {
		return err
	}
	return checkSide(n.back, ref, tol, 1)
}

// checkSide makes sure no endpoint in subtree sub lies on the wrong side of
// ref, sign being the expected sign of signed distances.
func checkSide[P Partitionable[P]](sub *Node[P], ref geom.Segment, tol float64, sign float64) error {
	if sub == nil {
		return nil
	}
	stack := []*Node[P]{sub}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, item := range n.items {
			s := item.Base()
			if sign*geom.SignedDistance(s.Start, ref) < -tol || sign*geom.SignedDistance(s.End, ref) < -tol {
				return fmt.Errorf("%w: item %v straddles plane of %v", ErrInvariant, s, ref)
			}
		}
		if n.front != nil {
			stack = append(stack, n.front)
		}
		if n.back != nil {
			stack = append(stack, n.back)
		}
	}
	return nil
}
