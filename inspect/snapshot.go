package inspect

import (
	"fmt"
	"io"

	"github.com/ComputaSean/Hidden-Surface-Visualization/geom"
	"github.com/ComputaSean/Hidden-Surface-Visualization/sptree"
	"github.com/segmentio/encoding/json"
)

// Line is a segment as stored in a snapshot: x1, y1, x2, y2.
type Line [4]float64

func lineOf(s geom.Segment) Line {
	return Line{s.Start[0], s.Start[1], s.End[0], s.End[1]}
}

// Segment converts l back to a segment.
func (l Line) Segment() geom.Segment {
	return geom.Seg(l[0], l[1], l[2], l[3])
}

// NodeSnapshot is the geometry of a tree node.
type NodeSnapshot struct {
	Plane Line          `json:"plane"`
	Items []Line        `json:"items"` // splitter first
	Front *NodeSnapshot `json:"front,omitempty"`
	Back  *NodeSnapshot `json:"back,omitempty"`
}

// Snapshot is the geometry of a tree, independent of its item type.
type Snapshot struct {
	Box   Line              `json:"box"` // min x, min y, max x, max y
	Stats sptree.BuildStats `json:"stats"`
	Root  *NodeSnapshot     `json:"root,omitempty"`
}

// TakeSnapshot captures the geometry of a tree.
func TakeSnapshot[P sptree.Partitionable[P]](tree *sptree.Tree[P]) *Snapshot {
	b := tree.Box()
	snap := &Snapshot{
		Box:   Line{b.Min[0], b.Min[1], b.Max[0], b.Max[1]},
		Stats: tree.Stats(),
	}
	if tree.IsEmpty() {
		return snap
	}
	type task struct {
		node *sptree.Node[P]
		link **NodeSnapshot
	}
	stack := []task{{node: tree.Root(), link: &snap.Root}}
	for len(stack) > 0 {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		ns := &NodeSnapshot{Plane: lineOf(t.node.Plane())}
		for _, item := range t.node.Items() {
			ns.Items = append(ns.Items, lineOf(item.Base()))
		}
		*t.link = ns
		if b := t.node.Back(); b != nil {
			stack = append(stack, task{node: b, link: &ns.Back})
		}
		if f := t.node.Front(); f != nil {
			stack = append(stack, task{node: f, link: &ns.Front})
		}
	}
	return snap
}

// Segments returns all items of the snapshot, in node pre-order.
func (s *Snapshot) Segments() []geom.Segment {
	var segs []geom.Segment
	if s.Root == nil {
		return segs
	}
	stack := []*NodeSnapshot{s.Root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, l := range n.Items {
			segs = append(segs, l.Segment())
		}
		if n.Back != nil {
			stack = append(stack, n.Back)
		}
		if n.Front != nil {
			stack = append(stack, n.Front)
		}
	}
	return segs
}

// WriteJSON writes a snapshot of tree to w.
func WriteJSON[P sptree.Partitionable[P]](w io.Writer, tree *sptree.Tree[P]) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(TakeSnapshot(tree)); err != nil {
		tracer().Errorf("inspect: cannot encode snapshot: %v", err)
		return err
	}
	return nil
}

// ReadJSON reads a snapshot written by WriteJSON.
func ReadJSON(r io.Reader) (*Snapshot, error) {
	snap := &Snapshot{}
	if err := json.NewDecoder(r).Decode(snap); err != nil {
		return nil, fmt.Errorf("inspect: cannot decode snapshot: %w", err)
	}
	return snap, nil
}
