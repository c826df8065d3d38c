package sptree

import (
	"github.com/ComputaSean/Hidden-Surface-Visualization/geom"
)

// Partitionable is an item which can be placed into a tree. Seen from above,
// every item is a flat line segment, its base. Items may carry arbitrary
// additional data (height, colour, …).
//
// P is the concrete item type, so that splitting an item produces items of
// the same type:
//
//	type Wall struct { … }
//	func (w *Wall) Base() geom.Segment { … }
//	func (w *Wall) Split(cut geom.Segment) (*Wall, *Wall) { … }
type Partitionable[P any] interface {
	// Base returns the item as a segment in the ground plane.
	Base() geom.Segment
	// Split cuts the item along the carrier line of cut into two new items.
	// Both halves keep the direction of the base and any subtype data.
	// Split will only be called with a cut genuinely crossing the base.
	Split(cut geom.Segment) (P, P)
}

// Line is the plainest possible Partitionable, wrapping a bare segment.
type Line struct {
	seg geom.Segment
}

var _ Partitionable[*Line] = (*Line)(nil)

// NewLine wraps a segment.
func NewLine(seg geom.Segment) *Line {
	return &Line{seg: seg}
}

// Lines wraps a list of segments.
func Lines(segs ...geom.Segment) []*Line {
	lines := make([]*Line, len(segs))
	for i, s := range segs {
		lines[i] = NewLine(s)
	}
	return lines
}

// Base is part of interface Partitionable.
func (l *Line) Base() geom.Segment {
	return l.seg
}

// Split is part of interface Partitionable.
func (l *Line) Split(cut geom.Segment) (*Line, *Line) {
	first, second, ok := l.seg.Cut(cut)
	assert(ok, "line split by a parallel cut")
	return NewLine(first), NewLine(second)
}

func (l *Line) String() string {
	return l.seg.String()
}
