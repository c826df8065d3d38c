package wall

import (
	"fmt"
	"image/color"
	"iter"

	"github.com/ComputaSean/Hidden-Surface-Visualization/geom"
	"github.com/go-gl/mathgl/mgl64"
)

// White is the edge colour of walls created by splitting.
var White = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// Wall is a vertical rectangle standing on a base segment.
//
// Wall implements sptree.Partitionable[*Wall].
type Wall struct {
	base      geom.Segment
	Height    float64
	NodeColor color.RGBA // colour of corner nodes
	EdgeColor color.RGBA // colour of the outline
	WallColor color.RGBA // colour of the face
}

// New creates a wall of a given height on base. Node, edge and face colour are
// set to c.
func New(base geom.Segment, height float64, c color.RGBA) *Wall {
	return &Wall{
		base:      base,
		Height:    height,
		NodeColor: c,
		EdgeColor: c,
		WallColor: c,
	}
}

// Base returns the segment the wall stands on.
func (w *Wall) Base() geom.Segment {
	return w.base
}

// Split cuts the wall at the carrier line of cut. Both halves keep height and
// colours, except that the edges are drawn white to make cuts visible.
//
// Split panics if cut is parallel to the wall's base.
func (w *Wall) Split(cut geom.Segment) (*Wall, *Wall) {
	first, second, ok := w.base.Cut(cut)
	if !ok {
		tracer().Errorf("wall %v cut by parallel %v", w.base, cut)
		panic(fmt.Sprintf("wall %v cannot be split by parallel line %v", w.base, cut))
	}
	a, b := *w, *w
	a.base, b.base = first, second
	a.EdgeColor, b.EdgeColor = White, White
	return &a, &b
}

// Corners returns the corner nodes of the wall's face in counter-clockwise
// order, seen from the front side of the wall: bottom start, bottom end,
// top end, top start.
func (w *Wall) Corners() [4]mgl64.Vec4 {
	s, e, h := w.base.Start, w.base.End, w.Height
	return [4]mgl64.Vec4{
		{s[0], 0, s[1], 1},
		{e[0], 0, e[1], 1},
		{e[0], h, e[1], 1},
		{s[0], h, s[1], 1},
	}
}

// Nodes iterates over the corner nodes of the wall.
func (w *Wall) Nodes() iter.Seq[mgl64.Vec4] {
	return func(yield func(mgl64.Vec4) bool) {
		for _, n := range w.Corners() {
			if !yield(n) {
				return
			}
		}
	}
}

// Edge is a line between two nodes.
type Edge struct {
	From, To mgl64.Vec4
}

// Edges iterates over the four outline edges of the wall, going around the
// face in the order of Corners.
func (w *Wall) Edges() iter.Seq[Edge] {
	return func(yield func(Edge) bool) {
		c := w.Corners()
		for i := range c {
			if !yield(Edge{From: c[i], To: c[(i+1)%len(c)]}) {
				return
			}
		}
	}
}

// Normal returns a segment of unit length, starting at the midpoint of the
// base and pointing to the front side of the wall.
func (w *Wall) Normal() geom.Segment {
	d := w.base.Direction()
	n := mgl64.Vec2{d[1], -d[0]}.Normalize()
	m := w.base.Midpoint()
	return geom.Segment{Start: m, End: m.Add(n)}
}

func (w *Wall) String() string {
	return fmt.Sprintf("wall[%v h=%g]", w.base, w.Height)
}

// Walls creates walls of equal height and colour on a list of segments.
func Walls(segs []geom.Segment, height float64, c color.RGBA) []*Wall {
	walls := make([]*Wall, len(segs))
	for i, s := range segs {
		walls[i] = New(s, height, c)
	}
	return walls
}
