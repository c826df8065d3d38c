package geom

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Box is an axis-aligned rectangle.
type Box struct {
	Min, Max mgl64.Vec2
}

// NewBox creates a box from its bounds.
func NewBox(minx, miny, maxx, maxy float64) Box {
	return Box{Min: mgl64.Vec2{minx, miny}, Max: mgl64.Vec2{maxx, maxy}}
}

// Bounds returns the extent as (minx, miny, maxx, maxy).
func (b Box) Bounds() (float64, float64, float64, float64) {
	return b.Min[0], b.Min[1], b.Max[0], b.Max[1]
}

// IsValid is true for a box with finite bounds and positive width and height.
func (b Box) IsValid() bool {
	for _, v := range [...]float64{b.Min[0], b.Min[1], b.Max[0], b.Max[1]} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return b.Width() > 0 && b.Height() > 0
}

// Width returns the horizontal extent.
func (b Box) Width() float64 {
	return b.Max[0] - b.Min[0]
}

// Height returns the vertical extent.
func (b Box) Height() float64 {
	return b.Max[1] - b.Min[1]
}

// Diagonal returns the length of the box diagonal.
func (b Box) Diagonal() float64 {
	return b.Max.Sub(b.Min).Len()
}

// Contains reports whether p lies within the box or on its border, allowing a
// tolerance of eps.
func (b Box) Contains(p mgl64.Vec2, eps float64) bool {
	return p[0] >= b.Min[0]-eps && p[0] <= b.Max[0]+eps &&
		p[1] >= b.Min[1]-eps && p[1] <= b.Max[1]+eps
}

// ContainsSegment reports whether both endpoints of s are contained in b.
func (b Box) ContainsSegment(s Segment, eps float64) bool {
	return b.Contains(s.Start, eps) && b.Contains(s.End, eps)
}

// Distance returns the distance of p to the box area; it is 0 for every point
// inside the box or on its border.
func (b Box) Distance(p mgl64.Vec2) float64 {
	dx := math.Max(math.Max(b.Min[0]-p[0], 0), p[0]-b.Max[0])
	dy := math.Max(math.Max(b.Min[1]-p[1], 0), p[1]-b.Max[1])
	return math.Hypot(dx, dy)
}

func (b Box) String() string {
	return fmt.Sprintf("[%g,%g]-[%g,%g]", b.Min[0], b.Min[1], b.Max[0], b.Max[1])
}
