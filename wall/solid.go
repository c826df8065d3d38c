package wall

import (
	"image/color"

	"github.com/ComputaSean/Hidden-Surface-Visualization/geom"
	"github.com/go-gl/mathgl/mgl64"
)

// Solid is the renderable geometry of a wall: a wireframe of corner nodes,
// coloured edges between them and a single coloured face. Solids are created
// per tree node and attached with sptree.Tree.Decorate.
type Solid struct {
	Nodes []mgl64.Vec4
	Edges []SolidEdge
	Face  Mesh
}

// SolidEdge connects two nodes of a solid, given as indices into Nodes.
type SolidEdge struct {
	From, To int
	Color    color.RGBA
}

// Mesh is a polygon over nodes of a solid, given as indices into Nodes.
type Mesh struct {
	Nodes []int
	Color color.RGBA
}

// NewSolid builds the wireframe of a wall of height h standing on base.
// Seen from the front of base, the face winds counter-clockwise.
func NewSolid(base geom.Segment, h float64, edge, face color.RGBA) *Solid {
	s, e := base.Start, base.End
	solid := &Solid{
		Nodes: []mgl64.Vec4{
			mgl64.Vec2{s[0], 0}.Vec4(s[1], 1),
			mgl64.Vec2{e[0], 0}.Vec4(e[1], 1),
			mgl64.Vec2{e[0], h}.Vec4(e[1], 1),
			mgl64.Vec2{s[0], h}.Vec4(s[1], 1),
		},
		Face: Mesh{Nodes: []int{0, 1, 2, 3}, Color: face},
	}
	for i := range solid.Nodes {
		solid.Edges = append(solid.Edges, SolidEdge{
			From:  i,
			To:    (i + 1) % len(solid.Nodes),
			Color: edge,
		})
	}
	return solid
}

// SolidOf builds the solid for a wall, using its height and colours.
func SolidOf(w *Wall) *Solid {
	return NewSolid(w.Base(), w.Height, w.EdgeColor, w.WallColor)
}

// Transform returns the nodes of the solid mapped by a homogeneous matrix,
// e.g. a camera's view transformation.
func (s *Solid) Transform(m mgl64.Mat4) []mgl64.Vec4 {
	nodes := make([]mgl64.Vec4, len(s.Nodes))
	for i, n := range s.Nodes {
		nodes[i] = m.Mul4x1(n)
	}
	return nodes
}
