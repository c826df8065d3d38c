/*
Package scene generates random scenes of non-crossing lines and walls within a
bounding box. Scenes are meant for demos, benchmarks and property tests of the
space partitioning tree.

Lines may touch each other (an endpoint lying on another line is fine), but no
two lines of a scene properly cross. Candidate lines are checked against the
lines nearby only, which are looked up with an R-tree.

# BSD License

Please refer to the License file for details.
*/
package scene

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'sptree'
func tracer() tracing.Trace {
	return tracing.Select("sptree")
}
