/*
Package geom provides the small amount of plane geometry needed to partition
line segments: segments, axis-aligned boxes, distances, winding order and the
intersection of carrier lines.

Points are `mgl64.Vec2` values. All functions are pure and safe for concurrent
use.

# BSD License

Please refer to the License file for details.
*/
package geom
