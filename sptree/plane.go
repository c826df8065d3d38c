package sptree

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/ComputaSean/Hidden-Surface-Visualization/geom"
	"github.com/go-gl/mathgl/mgl64"
)

// relative tolerance (with respect to the box diagonal) for merging clip
// points which coincide at a box corner
const clipTolerance = 1e-9

// SplittingPlane extends the carrier line of seg to the borders of box and
// returns the clipped line. The direction of the result is unspecified; use
// the originating segment to decide front and back.
//
// seg has to be non-degenerate and lie within box. Lines missing the box or
// yielding fewer than two distinct border points result in ErrSplittingPlane.
func SplittingPlane(seg geom.Segment, box geom.Box) (geom.Segment, error) {
	if seg.IsDegenerate() {
		return geom.Segment{}, fmt.Errorf("%w: degenerate segment %v", ErrSplittingPlane, seg)
	}
	minx, miny, maxx, maxy := box.Bounds()
	p1, p2 := seg.Start, seg.End
	if seg.IsVertical() {
		return geom.Seg(p1[0], miny, p1[0], maxy), nil
	}
	if seg.IsHorizontal() {
		return geom.Seg(minx, p1[1], maxx, p1[1]), nil
	}
	// y = mx + b, intersected with all four box edges
	m := (p2[1] - p1[1]) / (p2[0] - p1[0])
	b := p1[1] - m*p1[0]
	candidates := [...]mgl64.Vec2{
		{minx, m*minx + b},
		{maxx, m*maxx + b},
		{(miny - b) / m, miny},
		{(maxy - b) / m, maxy},
	}
	tol := clipTolerance * box.Diagonal()
	unique := make([]mgl64.Vec2, 0, len(candidates))
	for _, c := range candidates {
		if !slices.ContainsFunc(unique, func(u mgl64.Vec2) bool {
			return math.Abs(u[0]-c[0]) <= tol && math.Abs(u[1]-c[1]) <= tol
		}) {
			unique = append(unique, c)
		}
	}
	// the two points closest to the box are the ones on its border
	slices.SortStableFunc(unique, func(a, b mgl64.Vec2) int {
		return cmp.Compare(box.Distance(a), box.Distance(b))
	})
	if len(unique) < 2 || box.Distance(unique[1]) > tol {
		tracer().Errorf("splitting plane: line of %v does not cross box %v", seg, box)
		return geom.Segment{}, fmt.Errorf("%w: line of %v does not cross box %v", ErrSplittingPlane, seg, box)
	}
	return geom.Segment{Start: unique[0], End: unique[1]}, nil
}
