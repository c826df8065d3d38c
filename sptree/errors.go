package sptree

import "errors"

var (
	// ErrInvalidConfig signals an invalid build configuration.
	ErrInvalidConfig = errors.New("sptree: invalid configuration")
	// ErrInvalidBounds signals a bounding box which is empty or not finite.
	ErrInvalidBounds = errors.New("sptree: invalid bounding box")
	// ErrNonFinite signals a segment with NaN or infinite coordinates.
	ErrNonFinite = errors.New("sptree: non-finite coordinate")
	// ErrDegenerateSegment signals a segment of (nearly) zero length.
	ErrDegenerateSegment = errors.New("sptree: zero-length segment")
	// ErrOutsideBounds signals a segment not contained in the bounding box.
	ErrOutsideBounds = errors.New("sptree: segment outside bounding box")
	// ErrSplittingPlane signals that a segment's carrier line could not be
	// clipped to the bounding box.
	ErrSplittingPlane = errors.New("sptree: cannot compute splitting plane")
	// ErrAlreadyDecorated signals a second attempt to decorate a tree.
	ErrAlreadyDecorated = errors.New("sptree: tree has already been decorated")
	// ErrInvariant is returned by Check for a malformed tree.
	ErrInvariant = errors.New("sptree: tree invariant violated")
)
