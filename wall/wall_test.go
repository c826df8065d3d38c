package wall_test

import (
	"image/color"
	"slices"
	"testing"

	"github.com/ComputaSean/Hidden-Surface-Visualization/geom"
	"github.com/ComputaSean/Hidden-Surface-Visualization/sptree"
	"github.com/ComputaSean/Hidden-Surface-Visualization/wall"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
)

var _ sptree.Partitionable[*wall.Wall] = (*wall.Wall)(nil)

var red = color.RGBA{R: 0xff, A: 0xff}

func TestWallCorners(t *testing.T) {
	w := wall.New(geom.Seg(10, 20, 30, 20), 5, red)
	require.Equal(t, [4]mgl64.Vec4{
		{10, 0, 20, 1},
		{30, 0, 20, 1},
		{30, 5, 20, 1},
		{10, 5, 20, 1},
	}, w.Corners())
	nodes := slices.Collect(w.Nodes())
	require.Len(t, nodes, 4)
	edges := slices.Collect(w.Edges())
	require.Len(t, edges, 4)
	for i, e := range edges {
		require.Equal(t, nodes[i], e.From)
		require.Equal(t, nodes[(i+1)%4], e.To)
	}
}

func TestWallNormal(t *testing.T) {
	w := wall.New(geom.Seg(10, 20, 30, 20), 5, red)
	n := w.Normal()
	require.Equal(t, geom.Pt(20, 20), n.Start)
	require.InDelta(t, 1.0, n.Len(), 1e-12)
	require.True(t, geom.IsClockwise(w.Base().Start, w.Base().End, n.End),
		"normal should point to the front side")
}

func TestWallSplit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sptree")
	defer teardown()
	//
	w := wall.New(geom.Seg(10, 10, 90, 10), 7, red)
	a, b := w.Split(geom.Seg(50, 0, 50, 100))
	require.Equal(t, geom.Seg(10, 10, 50, 10), a.Base())
	require.Equal(t, geom.Seg(50, 10, 90, 10), b.Base())
	for _, half := range []*wall.Wall{a, b} {
		require.Equal(t, 7.0, half.Height)
		require.Equal(t, red, half.WallColor)
		require.Equal(t, red, half.NodeColor)
		require.Equal(t, wall.White, half.EdgeColor)
	}
	require.Equal(t, red, w.EdgeColor, "original wall must not change")
	require.Panics(t, func() { w.Split(geom.Seg(0, 50, 100, 50)) })
}

func TestSolid(t *testing.T) {
	green := color.RGBA{G: 0xff, A: 0xff}
	s := wall.NewSolid(geom.Seg(0, 0, 0, 10), 3, red, green)
	require.Len(t, s.Nodes, 4)
	require.Len(t, s.Edges, 4)
	require.Equal(t, mgl64.Vec4{0, 3, 10, 1}, s.Nodes[2])
	require.Equal(t, []int{0, 1, 2, 3}, s.Face.Nodes)
	require.Equal(t, green, s.Face.Color)
	require.Equal(t, wall.SolidEdge{From: 3, To: 0, Color: red}, s.Edges[3])
	moved := s.Transform(mgl64.Translate3D(1, 2, 3))
	require.Equal(t, mgl64.Vec4{1, 5, 13, 1}, moved[2])
}

func TestWallTree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sptree")
	defer teardown()
	//
	walls := wall.Walls([]geom.Segment{
		geom.Seg(10, 10, 90, 10),
		geom.Seg(50, 0, 50, 100),
		geom.Seg(20, 60, 40, 80),
	}, 10, red)
	tree, err := sptree.Build(walls, geom.NewBox(0, 0, 100, 100), sptree.Config{})
	require.NoError(t, err)
	require.NoError(t, tree.Check())
	require.Equal(t, 1, tree.Stats().Splits)
	err = tree.Decorate(func(n *sptree.Node[*wall.Wall]) any {
		return wall.SolidOf(n.Splitter())
	})
	require.NoError(t, err)
	drawn := 0
	for n := range tree.DrawOrderNodes(geom.Pt(75, 80)) {
		solid, ok := n.Attachment().(*wall.Solid)
		require.True(t, ok)
		require.Equal(t, n.Splitter().Height, solid.Nodes[2][1])
		drawn += len(n.Items())
	}
	require.Equal(t, tree.Stats().Pieces, drawn)
}
