// Package promstats instruments tree construction and traversal with
// Prometheus metrics. Metrics are registered with the default registry.
package promstats

import (
	"errors"
	"iter"
	"time"

	"github.com/ComputaSean/Hidden-Surface-Visualization/geom"
	"github.com/ComputaSean/Hidden-Surface-Visualization/sptree"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultLabel  = "result"
	errTypeLabel = "error_type"
)

var (
	builds = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sptree_builds",
		Help: "The number of tree constructions.",
	}, []string{
		resultLabel,
	})

	buildErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sptree_build_errors",
		Help: "The errors that occured while building a tree.",
	}, []string{
		errTypeLabel,
	})

	buildLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name: "sptree_build_latency",
		Help: "The time to build a tree.",
	})

	splits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sptree_splits",
		Help: "The number of items split during tree construction.",
	})

	treeNodes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "sptree_nodes",
		Help: "The number of nodes of the most recently built tree.",
	})

	treeDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "sptree_depth",
		Help: "The depth of the most recently built tree.",
	})

	traversals = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sptree_traversals",
		Help: "The number of draw-order traversals started.",
	})

	groupsDrawn = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sptree_groups_drawn",
		Help: "The number of item groups yielded by draw-order traversals.",
	})

	framesPublished = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sptree_frames_published",
		Help: "The number of viewpoint changes broadcast to subscribers.",
	})
)

// Build calls sptree.Build and records its outcome, duration and the shape of
// the resulting tree.
func Build[P sptree.Partitionable[P]](items []P, box geom.Box, cfg sptree.Config) (*sptree.Tree[P], error) {
	start := time.Now()
	tree, err := sptree.Build(items, box, cfg)
	if err != nil {
		instrumentBuildError(err)
		return nil, err
	}
	buildLatency.Observe(time.Since(start).Seconds())
	st := tree.Stats()
	builds.With(prometheus.Labels{resultLabel: "ok"}).Inc()
	splits.Add(float64(st.Splits))
	treeNodes.Set(float64(st.Nodes))
	treeDepth.Set(float64(st.Depth))
	return tree, nil
}

// DrawOrder wraps tree.DrawOrder, counting traversals and yielded groups.
func DrawOrder[P sptree.Partitionable[P]](tree *sptree.Tree[P], view mgl64.Vec2) iter.Seq[[]P] {
	return func(yield func([]P) bool) {
		traversals.Inc()
		for group := range tree.DrawOrder(view) {
			groupsDrawn.Inc()
			if !yield(group) {
				return
			}
		}
	}
}

// FramePublished counts a broadcast viewpoint change.
func FramePublished() {
	framesPublished.Inc()
}

func instrumentBuildError(err error) {
	builds.With(prometheus.Labels{resultLabel: "error"}).Inc()
	buildErrors.With(prometheus.Labels{errTypeLabel: ErrorType(err)}).Inc()
}

// ErrorType maps construction errors to a short label value.
func ErrorType(err error) string {
	switch {
	case errors.Is(err, sptree.ErrInvalidConfig):
		return "config"
	case errors.Is(err, sptree.ErrInvalidBounds):
		return "bounds"
	case errors.Is(err, sptree.ErrNonFinite), errors.Is(err, sptree.ErrDegenerateSegment):
		return "segment"
	case errors.Is(err, sptree.ErrOutsideBounds):
		return "outside"
	case errors.Is(err, sptree.ErrSplittingPlane):
		return "splitting_plane"
	}
	return "unknown"
}
