package sptree

import (
	"github.com/ComputaSean/Hidden-Surface-Visualization/geom"
	"github.com/go-gl/mathgl/mgl64"
)

// Perspective describes the position of a point relative to a splitting plane.
type Perspective int8

// Positions of a point relative to a splitting plane.
const (
	On Perspective = iota + 1
	Front
	Back
)

func (p Perspective) String() string {
	switch p {
	case On:
		return "ON"
	case Front:
		return "FRONT"
	case Back:
		return "BACK"
	}
	return "<invalid perspective>"
}

// ClassifyPoint classifies point p relative to the splitting plane of segment
// ref, clipped to box. Points closer than eps to the plane are On, all others
// are Front or Back depending on the winding of (ref.Start, ref.End, p).
func ClassifyPoint(p mgl64.Vec2, ref geom.Segment, box geom.Box, eps float64) (Perspective, error) {
	plane, err := SplittingPlane(ref, box)
	if err != nil {
		return 0, err
	}
	return classify(p, plane, ref, eps), nil
}

// classify has to check the distance first, otherwise points on the plane
// would flicker between front and back.
func classify(p mgl64.Vec2, plane, ref geom.Segment, eps float64) Perspective {
	if geom.PointSegmentDistance(p, plane) < eps {
		return On
	}
	if inFront(p, ref) {
		return Front
	}
	return Back
}

// inFront is true if p lies on the right-hand side of ref, i.e. the triangle
// (start, end, p) winds clockwise.
func inFront(p mgl64.Vec2, ref geom.Segment) bool {
	return geom.IsClockwise(ref.Start, ref.End, p)
}
