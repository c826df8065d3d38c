/*
Package painter connects a moving viewer to a space partitioning tree.

A camera (or any other source of viewpoints) calls MoveTo whenever the viewer
moves. Every subscriber, typically a renderer, receives a Frame carrying the
new viewpoint and the lazily evaluated draw order for it. Frames are broadcast,
so any number of renderers may follow the same viewer.

# BSD License

Please refer to the License file for details.
*/
package painter

import (
	"context"
	"errors"
	"iter"
	"sync"

	"github.com/ComputaSean/Hidden-Surface-Visualization/promstats"
	"github.com/ComputaSean/Hidden-Surface-Visualization/sptree"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/guiguan/caster"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'sptree'
func tracer() tracing.Trace {
	return tracing.Select("sptree")
}

// ErrClosed is returned when subscribing to a closed painter.
var ErrClosed = errors.New("painter: closed")

// Frame is the draw order for a single viewpoint.
type Frame[P sptree.Partitionable[P]] struct {
	Seq   uint64                    // frame number, starting at 1
	View  mgl64.Vec2                // viewpoint
	Order iter.Seq[[]P]             // groups of items, far to near
	Nodes iter.Seq[*sptree.Node[P]] // nodes in the same order, for decorated trees
}

// Painter broadcasts draw orders of a tree for a moving viewpoint.
type Painter[P sptree.Partitionable[P]] struct {
	tree *sptree.Tree[P]
	cast *caster.Caster // broadcaster for frames
	mx   sync.Mutex     // guards view and seq
	view mgl64.Vec2
	seq  uint64
}

// New creates a painter for tree. Clients must call Close when done.
func New[P sptree.Partitionable[P]](tree *sptree.Tree[P]) *Painter[P] {
	return &Painter[P]{
		tree: tree,
		cast: caster.New(nil),
	}
}

// Tree returns the tree the painter draws.
func (p *Painter[P]) Tree() *sptree.Tree[P] {
	return p.tree
}

// View returns the current viewpoint.
func (p *Painter[P]) View() mgl64.Vec2 {
	p.mx.Lock()
	defer p.mx.Unlock()
	return p.view
}

// MoveTo sets a new viewpoint and broadcasts the corresponding frame to all
// subscribers. It returns false if the painter has been closed.
//
// MoveTo blocks until every subscriber has room for the frame in its buffer.
func (p *Painter[P]) MoveTo(view mgl64.Vec2) bool {
	p.mx.Lock()
	p.view = view
	p.seq++
	frame := p.frame(p.seq, view)
	p.mx.Unlock()
	if !p.cast.Pub(frame) {
		tracer().Debugf("painter: frame #%d dropped, painter closed", frame.Seq)
		return false
	}
	promstats.FramePublished()
	return true
}

// Current returns the frame for the current viewpoint without broadcasting
// it.
func (p *Painter[P]) Current() Frame[P] {
	p.mx.Lock()
	defer p.mx.Unlock()
	return p.frame(p.seq, p.view)
}

func (p *Painter[P]) frame(seq uint64, view mgl64.Vec2) Frame[P] {
	return Frame[P]{
		Seq:   seq,
		View:  view,
		Order: promstats.DrawOrder(p.tree, view),
		Nodes: p.tree.DrawOrderNodes(view),
	}
}

// Subscribe registers a receiver of frames. The returned channel buffers up
// to capacity frames and is closed when ctx is done or the painter is closed.
// A subscriber may stop reading at any time; cancelling ctx releases it
// without blocking the painter.
func (p *Painter[P]) Subscribe(ctx context.Context, capacity uint) (<-chan Frame[P], error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if p.closed() {
		return nil, ErrClosed
	}
	// caster subscriptions never expire; only release or Close end them
	sub, _ := p.cast.Sub(context.Background(), capacity)
	if p.closed() {
		return nil, ErrClosed
	}
	frames := make(chan Frame[P], capacity)
	go p.forward(ctx, sub, frames)
	return frames, nil
}

// forward copies frames from a caster subscription to a subscriber until ctx
// is done or the painter is closed.
func (p *Painter[P]) forward(ctx context.Context, sub chan interface{}, frames chan<- Frame[P]) {
	defer close(frames)
	for {
		select {
		case <-ctx.Done():
			p.release(sub)
			return
		case <-p.cast.Done():
			return
		case m, ok := <-sub:
			if !ok {
				return
			}
			select {
			case frames <- m.(Frame[P]):
			case <-ctx.Done():
				p.release(sub)
				return
			}
		}
	}
}

// release unsubscribes sub. The caster may be blocked sending to sub, so sub
// is drained until the caster closes it.
func (p *Painter[P]) release(sub chan interface{}) {
	go func() {
		for range sub {
		}
	}()
	if !p.cast.Unsub(sub) {
		tracer().Debugf("painter: subscription ended by close")
	}
}

func (p *Painter[P]) closed() bool {
	select {
	case <-p.cast.Done():
		return true
	default:
		return false
	}
}

// Close stops broadcasting and closes all subscriber channels. After Close
// returns, MoveTo reports false and Subscribe fails with ErrClosed.
func (p *Painter[P]) Close() {
	p.cast.Close()
	<-p.cast.Done()
}
