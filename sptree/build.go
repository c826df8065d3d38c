package sptree

import (
	"fmt"
	"math/rand/v2"

	"github.com/ComputaSean/Hidden-Surface-Visualization/geom"
)

// Build constructs a tree from items, all of which have to lie within box.
//
// Items are rejected up front if their base segments have non-finite
// coordinates, zero length or stick out of the box. Items must not be
// duplicated in the input.
//
// Splitters are chosen by a sampling heuristic: for up to Config.SampleSize
// randomly drawn candidates, the number of pieces the candidate's splitting
// plane would produce from the other sampled items is counted, and the
// candidate producing the fewest pieces wins. The random source is taken from
// the configuration, so builds with equal configuration and input result in
// identical trees.
//
// Construction uses an explicit work stack instead of recursion, so
// degenerate inputs resulting in very deep trees will not exhaust the
// goroutine stack.
func Build[P Partitionable[P]](items []P, box geom.Box, cfg Config) (*Tree[P], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg = cfg.normalized()
	if !box.IsValid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBounds, box)
	}
	if err := validateItems(items, box, cfg.Epsilon); err != nil {
		return nil, err
	}
	tree := &Tree[P]{box: box, cfg: cfg}
	tree.stats.Input = len(items)
	tracer().Debugf("sptree: building tree from %d items within %v", len(items), box)
	b := &builder[P]{
		box:   box,
		eps:   cfg.Epsilon,
		k:     cfg.SampleSize,
		rnd:   cfg.random(),
		stats: &tree.stats,
	}
	if err := b.build(&tree.root, items); err != nil {
		return nil, err
	}
	tracer().Debugf("sptree: tree has %d nodes (%d leaves), depth %d, %d splits",
		tree.stats.Nodes, tree.stats.Leaves, tree.stats.Depth, tree.stats.Splits)
	return tree, nil
}

func validateItems[P Partitionable[P]](items []P, box geom.Box, eps float64) error {
	for i, item := range items {
		s := item.Base()
		switch {
		case !s.IsFinite():
			return fmt.Errorf("%w: item #%d %v", ErrNonFinite, i, s)
		case s.IsDegenerate() || s.Len() < eps:
			return fmt.Errorf("%w: item #%d %v", ErrDegenerateSegment, i, s)
		case !box.ContainsSegment(s, eps):
			return fmt.Errorf("%w: item #%d %v not within %v", ErrOutsideBounds, i, s, box)
		}
	}
	return nil
}

// --- Builder ---------------------------------------------------------------

type builder[P Partitionable[P]] struct {
	box   geom.Box
	eps   float64
	k     int // sample size
	rnd   *rand.Rand
	stats *BuildStats
}

// buildTask is a pending subtree: items still to partition and the link to
// set to the resulting node.
type buildTask[P Partitionable[P]] struct {
	items []P
	link  **Node[P]
	depth int
}

func (b *builder[P]) build(root **Node[P], items []P) error {
	stack := []buildTask[P]{{items: items, link: root, depth: 1}}
	for len(stack) > 0 {
		task := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if len(task.items) == 0 {
			continue
		}
		node, front, back, err := b.partition(task.items)
		if err != nil {
			return err
		}
		*task.link = node
		b.stats.Nodes++
		b.stats.Pieces += len(node.items)
		b.stats.Depth = max(b.stats.Depth, task.depth)
		if len(front) == 0 && len(back) == 0 {
			b.stats.Leaves++
			continue
		}
		stack = append(stack,
			buildTask[P]{items: back, link: &node.back, depth: task.depth + 1},
			buildTask[P]{items: front, link: &node.front, depth: task.depth + 1},
		)
	}
	return nil
}

// partition selects a splitter from items and sorts all other items into the
// splitter's group, the front list or the back list. Items crossed by the
// splitting plane are split and their halves sorted individually.
func (b *builder[P]) partition(items []P) (*Node[P], []P, []P, error) {
	pick, plane, err := b.pickSplitter(items)
	if err != nil {
		return nil, nil, nil, err
	}
	splitter := items[pick]
	ref := splitter.Base()
	node := &Node[P]{items: []P{splitter}, plane: plane}
	var front, back []P
	for i, item := range items {
		if i == pick {
			continue
		}
		switch b.relate(plane, item.Base()) {
		case coincident:
			node.items = append(node.items, item)
		case crossing:
			first, second := item.Split(plane)
			b.stats.Splits++
			tracer().Debugf("sptree: split %v at plane of %v", item.Base(), ref)
			front, back = categorize(first, ref, front, back)
			front, back = categorize(second, ref, front, back)
		default:
			front, back = categorize(item, ref, front, back)
		}
	}
	return node, front, back, nil
}

// categorize appends item to front or back, depending on the side of its
// centroid. item must not be crossed by the splitting plane.
func categorize[P Partitionable[P]](item P, ref geom.Segment, front, back []P) ([]P, []P) {
	if inFront(item.Base().Midpoint(), ref) {
		return append(front, item), back
	}
	return front, append(back, item)
}

type relation int8

const (
	aside relation = iota
	coincident
	crossing
)

// relate checks the endpoint distances before the crossing test, as near-
// coincident segments would otherwise be split by rounding noise.
func (b *builder[P]) relate(plane, s geom.Segment) relation {
	if geom.PointSegmentDistance(s.Start, plane) < b.eps &&
		geom.PointSegmentDistance(s.End, plane) < b.eps {
		return coincident
	}
	if geom.Crosses(plane, s, b.eps) {
		return crossing
	}
	return aside
}

// pickSplitter draws a sample of candidates and returns the index of the
// candidate producing the fewest pieces among the other sampled items,
// together with its splitting plane. Ties go to the first candidate drawn.
func (b *builder[P]) pickSplitter(items []P) (int, geom.Segment, error) {
	sample := b.sample(len(items))
	best, bestPieces := -1, 0
	var bestPlane geom.Segment
	for i, candidate := range sample {
		plane, err := SplittingPlane(items[candidate].Base(), b.box)
		if err != nil {
			return -1, plane, err
		}
		pieces := 0
		for j, other := range sample {
			if j == i {
				continue
			}
			switch b.relate(plane, items[other].Base()) {
			case coincident:
			case crossing:
				pieces += 2
			default:
				pieces++
			}
		}
		if best < 0 || pieces < bestPieces {
			best, bestPieces, bestPlane = candidate, pieces, plane
		}
	}
	assert(best >= 0, "no splitter candidate drawn")
	tracer().Debugf("sptree: splitter %v chosen from %d candidates (%d pieces)",
		items[best].Base(), len(sample), bestPieces)
	return best, bestPlane, nil
}

// sample returns up to b.k distinct indices into a list of n items, drawn
// uniformly at random. For n <= b.k all indices are returned in order.
func (b *builder[P]) sample(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	if n <= b.k {
		return idx
	}
	for i := 0; i < b.k; i++ { // partial Fisher-Yates shuffle
		j := i + b.rnd.IntN(n-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx[:b.k]
}
