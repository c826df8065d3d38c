package sptree

import (
	"iter"

	"github.com/go-gl/mathgl/mgl64"
)

// DrawOrder returns the item groups of the tree in painter's order for a
// viewer located at view: drawing the groups first to last renders far items
// before near ones.
//
// The sequence is lazy. Consumers may stop early at no extra cost, and every
// call (or every range over the returned sequence) starts a fresh, independent
// traversal. Traversals never modify the tree, so any number of them may run
// concurrently.
//
// Inner nodes whose splitting plane runs through the viewpoint are seen
// edge-on and their groups are omitted. Leaf groups are always part of the
// sequence.
func (t *Tree[P]) DrawOrder(view mgl64.Vec2) iter.Seq[[]P] {
	return func(yield func([]P) bool) {
		for n := range t.DrawOrderNodes(view) {
			if !yield(n.Items()) {
				return
			}
		}
	}
}

// DrawOrderNodes is like DrawOrder, but yields the nodes instead of their item
// groups. This is useful for renderers which have decorated the tree.
func (t *Tree[P]) DrawOrderNodes(view mgl64.Vec2) iter.Seq[*Node[P]] {
	return func(yield func(*Node[P]) bool) {
		if t.IsEmpty() {
			return
		}
		// a frame either expands a subtree or emits a node's group
		type frame struct {
			node *Node[P]
			emit bool
		}
		stack := []frame{{node: t.root}}
		push := func(n *Node[P], emit bool) {
			if n != nil {
				stack = append(stack, frame{node: n, emit: emit})
			}
		}
		for len(stack) > 0 {
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			n := f.node
			if f.emit || n.IsLeaf() {
				if !yield(n) {
					return
				}
				continue
			}
			// frames are pushed in reverse order of their processing
			switch t.perspective(view, n) {
			case Front: // back subtree is farther away
				push(n.front, false)
				push(n, true)
				push(n.back, false)
			case Back:
				push(n.back, false)
				push(n, true)
				push(n.front, false)
			default: // On: neither child can occlude the other
				push(n.back, false)
				push(n.front, false)
			}
		}
	}
}

// Classify returns the position of point p relative to the splitting plane of
// node n.
func (t *Tree[P]) Classify(p mgl64.Vec2, n *Node[P]) Perspective {
	return t.perspective(p, n)
}

func (t *Tree[P]) perspective(p mgl64.Vec2, n *Node[P]) Perspective {
	return classify(p, n.plane, n.items[0].Base(), t.cfg.Epsilon)
}
