/*
Package sptree builds a binary space partition (BSP) over 2D line segments and
answers painter's-algorithm draw orders for arbitrary viewpoints.

Space partitioning trees

A BSP tree recursively divides the plane by splitting lines. Every node holds a
group of mutually coincident items, the first of which has been chosen as the
splitter. The splitter's carrier line, clipped to the bounding box of the scene,
is the node's splitting plane. Items in front of the plane go into the front
subtree, items behind it go into the back subtree, and items crossed by the
plane are split into two pieces first.

Once built, a tree is immutable. For a viewpoint, drawing the node groups in the
order yielded by DrawOrder renders farther walls before nearer ones, without any
per-frame sorting:

	tree, err := sptree.Build(lines, box, sptree.Config{Seed: 42})
	...
	for group := range tree.DrawOrder(camera) {
		draw(group)
	}

Items are anything implementing Partitionable, i.e. exposing a base segment
and being able to split itself along a cutting segment.

Front and back

The front side of a segment is its right-hand side, looking from the start point
to the end point. A point is in front of a segment if the triangle
(start, end, point) winds clockwise.

Precision

Coincidence is decided by a fixed tolerance (Config.Epsilon, 1e-13 by default).
This tolerance is scale-dependent and should be adapted to the coordinate
system of the scene.

# BSD License

Please refer to the License file for details.
*/
package sptree

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'sptree'
func tracer() tracing.Trace {
	return tracing.Select("sptree")
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
