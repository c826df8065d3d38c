package geom

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Pt is a shortcut to create a point.
func Pt(x, y float64) mgl64.Vec2 {
	return mgl64.Vec2{x, y}
}

// Segment is a directed line segment in the plane.
//
// The direction matters: the right-hand side of a segment, looking from Start
// to End, is its front side.
type Segment struct {
	Start, End mgl64.Vec2
}

// Seg creates a segment from its endpoint coordinates.
func Seg(x1, y1, x2, y2 float64) Segment {
	return Segment{Start: mgl64.Vec2{x1, y1}, End: mgl64.Vec2{x2, y2}}
}

// Direction returns the (non-normalized) vector from Start to End.
func (s Segment) Direction() mgl64.Vec2 {
	return s.End.Sub(s.Start)
}

// Len returns the length of the segment.
func (s Segment) Len() float64 {
	return s.Direction().Len()
}

// Midpoint returns the centroid of the segment.
func (s Segment) Midpoint() mgl64.Vec2 {
	return s.Start.Add(s.End).Mul(0.5)
}

// IsDegenerate reports whether both endpoints are identical.
func (s Segment) IsDegenerate() bool {
	return s.Start == s.End
}

// IsFinite reports whether all coordinates are finite numbers.
func (s Segment) IsFinite() bool {
	for _, v := range [...]float64{s.Start[0], s.Start[1], s.End[0], s.End[1]} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// IsVertical is true for segments with equal x-coordinates.
func (s Segment) IsVertical() bool {
	return s.Start[0] == s.End[0]
}

// IsHorizontal is true for segments with equal y-coordinates.
func (s Segment) IsHorizontal() bool {
	return s.Start[1] == s.End[1]
}

// Reversed returns the segment with swapped endpoints. Front and back swap
// as well.
func (s Segment) Reversed() Segment {
	return Segment{Start: s.End, End: s.Start}
}

// SplitAt cuts s at point p, which has to lie on s. The two halves keep the
// direction of s.
func (s Segment) SplitAt(p mgl64.Vec2) (Segment, Segment) {
	return Segment{Start: s.Start, End: p}, Segment{Start: p, End: s.End}
}

func (s Segment) String() string {
	return fmt.Sprintf("(%g,%g)-(%g,%g)", s.Start[0], s.Start[1], s.End[0], s.End[1])
}

// --- Predicates ------------------------------------------------------------

// Cross returns twice the signed area of the triangle a, b, c. The result is
// positive for counter-clockwise and negative for clockwise winding.
func Cross(a, b, c mgl64.Vec2) float64 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}

// IsClockwise reports whether the triangle a, b, c winds clockwise.
// Collinear points are not clockwise.
func IsClockwise(a, b, c mgl64.Vec2) bool {
	return Cross(a, b, c) < 0
}

// SignedDistance returns the distance of p from the carrier line of s. It is
// negative on the front (right-hand) side of s.
func SignedDistance(p mgl64.Vec2, s Segment) float64 {
	l := s.Len()
	if l == 0 {
		return p.Sub(s.Start).Len()
	}
	return Cross(s.Start, s.End, p) / l
}

// PointSegmentDistance returns the Euclidean distance of p from segment s.
func PointSegmentDistance(p mgl64.Vec2, s Segment) float64 {
	d := s.Direction()
	l2 := d.LenSqr()
	if l2 == 0 {
		return p.Sub(s.Start).Len()
	}
	t := p.Sub(s.Start).Dot(d) / l2
	switch {
	case t <= 0:
		return p.Sub(s.Start).Len()
	case t >= 1:
		return p.Sub(s.End).Len()
	}
	// perpendicular distance is numerically more stable than subtracting the
	// projected foot point
	return math.Abs(Cross(s.Start, s.End, p)) / math.Sqrt(l2)
}

// LineIntersection intersects the infinite carrier lines of s and t.
// It returns false for parallel (or coincident) lines.
func LineIntersection(s, t Segment) (mgl64.Vec2, bool) {
	d1, d2 := s.Direction(), t.Direction()
	denom := d1[0]*d2[1] - d1[1]*d2[0]
	if denom == 0 {
		return mgl64.Vec2{}, false
	}
	w := t.Start.Sub(s.Start)
	u := (w[0]*d2[1] - w[1]*d2[0]) / denom
	return s.Start.Add(d1.Mul(u)), true
}

// Crosses reports whether plane properly crosses segment s, i.e. the interior
// of s is intersected in exactly one point. Endpoints of s closer than eps to
// the carrier line of plane count as touching, not crossing.
func Crosses(plane, s Segment, eps float64) bool {
	da := SignedDistance(s.Start, plane)
	db := SignedDistance(s.End, plane)
	if math.Abs(da) < eps || math.Abs(db) < eps {
		return false
	}
	if (da < 0) == (db < 0) {
		return false
	}
	// s straddles the carrier line of plane; the intersection has to lie within
	// the finite extent of plane, too
	dc := Cross(s.Start, s.End, plane.Start)
	dd := Cross(s.Start, s.End, plane.End)
	return !(dc < 0 && dd < 0) && !(dc > 0 && dd > 0)
}

// FrontByNormal tells whether p lies on the same side of the carrier line of
// s as the tip of a unit normal erected at the midpoint of s. The normal points
// to the right-hand side of s. This is an alternative to the winding test
// and agrees with it for every point not on the carrier line.
func FrontByNormal(p mgl64.Vec2, s Segment) bool {
	d := s.Direction()
	n := mgl64.Vec2{d[1], -d[0]}.Normalize()
	tip := s.Midpoint().Add(n)
	sp := Cross(s.Start, s.End, p)
	st := Cross(s.Start, s.End, tip)
	return (sp < 0) == (st < 0)
}

// Cut splits s where the carrier line of by intersects it. It returns false
// if the lines are parallel.
func (s Segment) Cut(by Segment) (Segment, Segment, bool) {
	p, ok := LineIntersection(s, by)
	if !ok {
		return s, Segment{}, false
	}
	first, second := s.SplitAt(p)
	return first, second, true
}
