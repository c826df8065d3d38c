package scene

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/ComputaSean/Hidden-Surface-Visualization/geom"
	"github.com/ComputaSean/Hidden-Surface-Visualization/wall"
	"github.com/dhconnelly/rtreego"
)

// ErrCrowded is returned if no further line could be placed into a scene.
var ErrCrowded = errors.New("scene: no room for another line")

// DefaultAttempts is the default number of random draws per line.
const DefaultAttempts = 1000

// tolerance for touching lines
const touchEps = 1e-9

// Generator places random lines with integer coordinates into a box.
type Generator struct {
	box      geom.Box
	rnd      *rand.Rand
	index    *rtreego.Rtree
	segs     []geom.Segment
	Attempts int // random draws per line before giving up
}

// NewGenerator creates a generator for box, drawing from rnd.
func NewGenerator(box geom.Box, rnd *rand.Rand) *Generator {
	return &Generator{
		box:      box,
		rnd:      rnd,
		index:    rtreego.NewTree(2, 25, 50),
		Attempts: DefaultAttempts,
	}
}

// Segments returns the lines placed so far.
func (g *Generator) Segments() []geom.Segment {
	return g.segs
}

// Add places s into the scene, unless it crosses or duplicates a line already
// present.
func (g *Generator) Add(s geom.Segment) bool {
	e := newEntry(s)
	for _, obj := range g.index.SearchIntersect(e.rect) {
		other := obj.(*entry).seg
		if other == s || other == s.Reversed() || properlyCross(s, other) {
			return false
		}
	}
	g.index.Insert(e)
	g.segs = append(g.segs, s)
	return true
}

// Next draws random lines until one fits into the scene.
func (g *Generator) Next() (geom.Segment, error) {
	minx, miny, maxx, maxy := g.box.Bounds()
	x0, x1 := math.Ceil(minx), math.Floor(maxx)
	y0, y1 := math.Ceil(miny), math.Floor(maxy)
	if x0 > x1 || y0 > y1 || (x0 == x1 && y0 == y1) {
		return geom.Segment{}, fmt.Errorf("%w: box %v has no integer coordinates", ErrCrowded, g.box)
	}
	randint := func(lo, hi float64) float64 {
		return lo + float64(g.rnd.IntN(int(hi-lo)+1))
	}
	for range max(g.Attempts, 1) {
		s := geom.Seg(randint(x0, x1), randint(y0, y1), randint(x0, x1), randint(y0, y1))
		if s.IsDegenerate() {
			continue
		}
		if g.Add(s) {
			return s, nil
		}
	}
	tracer().Infof("scene: giving up after %d attempts, have %d lines", g.Attempts, len(g.segs))
	return geom.Segment{}, fmt.Errorf("%w: %d lines in %v", ErrCrowded, len(g.segs), g.box)
}

// Lines creates n random non-crossing lines within box.
func Lines(box geom.Box, n int, rnd *rand.Rand) ([]geom.Segment, error) {
	g := NewGenerator(box, rnd)
	for range n {
		if _, err := g.Next(); err != nil {
			return g.Segments(), err
		}
	}
	return g.Segments(), nil
}

// Walls creates n random non-crossing walls within box. Heights are integers
// between minH and maxH. Nodes and edges are white, faces get a random opaque
// colour.
func Walls(box geom.Box, n int, minH, maxH int, rnd *rand.Rand) ([]*wall.Wall, error) {
	if minH < 0 || maxH < minH {
		return nil, fmt.Errorf("scene: invalid height range %d…%d", minH, maxH)
	}
	segs, err := Lines(box, n, rnd)
	walls := make([]*wall.Wall, len(segs))
	for i, s := range segs {
		h := float64(minH + rnd.IntN(maxH-minH+1))
		w := wall.New(s, h, RandomColor(rnd))
		w.NodeColor, w.EdgeColor = wall.White, wall.White
		walls[i] = w
	}
	return walls, err
}

// RandomColor returns an opaque colour.
func RandomColor(rnd *rand.Rand) color.RGBA {
	return color.RGBA{
		R: uint8(rnd.IntN(256)),
		G: uint8(rnd.IntN(256)),
		B: uint8(rnd.IntN(256)),
		A: 0xff,
	}
}

// properlyCross is true if the interiors of a and b intersect in a single
// point. Touching and collinear overlapping lines do not cross.
func properlyCross(a, b geom.Segment) bool {
	return geom.Crosses(a, b, touchEps) && geom.Crosses(b, a, touchEps)
}

// --- R-tree entries --------------------------------------------------------

type entry struct {
	seg  geom.Segment
	rect rtreego.Rect
}

var _ rtreego.Spatial = (*entry)(nil)

// newEntry pads the bounding rectangle of s, as rtreego does not report
// rectangles which merely touch, and axis-parallel lines have no extent in
// one dimension.
func newEntry(s geom.Segment) *entry {
	const pad = 0.5
	minx, maxx := math.Min(s.Start[0], s.End[0]), math.Max(s.Start[0], s.End[0])
	miny, maxy := math.Min(s.Start[1], s.End[1]), math.Max(s.Start[1], s.End[1])
	rect, err := rtreego.NewRect(
		rtreego.Point{minx - pad, miny - pad},
		[]float64{maxx - minx + 2*pad, maxy - miny + 2*pad})
	if err != nil { // cannot happen for finite coordinates
		panic(err)
	}
	return &entry{seg: s, rect: rect}
}

func (e *entry) Bounds() rtreego.Rect {
	return e.rect
}
