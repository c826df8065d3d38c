/*
Package inspect makes space partitioning trees visible for humans and tools.

Fprint writes a tree as an indented outline to a console, colouring splitters,
coincident items and leaves if the output is a terminal. Snapshots capture the
geometry of a tree as JSON, e.g. to feed external plotting tools or to compare
trees between program runs.

# BSD License

Please refer to the License file for details.
*/
package inspect

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'sptree'
func tracer() tracing.Trace {
	return tracing.Select("sptree")
}
