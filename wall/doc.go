/*
Package wall provides vertical walls standing on line segments of the ground
plane. Walls can be partitioned by package sptree and carry what a renderer
needs to draw them: a height, colours and the corner nodes of the wall's face.

Ground coordinates (x, y) map to 3D nodes (x, 0, y, 1) in homogeneous
coordinates, with the second component being the elevation.

# BSD License

Please refer to the License file for details.
*/
package wall

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'sptree'
func tracer() tracing.Trace {
	return tracing.Select("sptree")
}
