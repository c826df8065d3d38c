package sptree

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/ComputaSean/Hidden-Surface-Visualization/geom"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// randomLines creates n segments with integer coordinates within box100.
// Segments may cross each other.
func randomLines(rnd *rand.Rand, n int) []*Line {
	lines := make([]*Line, 0, n)
	for len(lines) < n {
		s := geom.Seg(
			float64(rnd.IntN(101)), float64(rnd.IntN(101)),
			float64(rnd.IntN(101)), float64(rnd.IntN(101)))
		if s.IsDegenerate() {
			continue
		}
		lines = append(lines, NewLine(s))
	}
	return lines
}

func totalLength[P Partitionable[P]](items []P) float64 {
	l := 0.0
	for _, item := range items {
		l += item.Base().Len()
	}
	return l
}

func collect[P Partitionable[P]](tree *Tree[P]) []P {
	var items []P
	for item := range tree.Items() {
		items = append(items, item)
	}
	return items
}

// sameTree compares two trees node by node.
func sameTree[P Partitionable[P]](a, b *Node[P]) bool {
	if a == nil || b == nil {
		return a == b
	}
	if len(a.items) != len(b.items) || a.plane != b.plane {
		return false
	}
	for i := range a.items {
		if a.items[i].Base() != b.items[i].Base() {
			return false
		}
	}
	return sameTree(a.front, b.front) && sameTree(a.back, b.back)
}

func TestBuildEmpty(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sptree")
	defer teardown()
	//
	tree, err := Build[*Line](nil, box100, Config{})
	if err != nil {
		t.Fatal(err)
	}
	if !tree.IsEmpty() || tree.Root() != nil {
		t.Errorf("expected tree without items to be empty")
	}
	if tree.Stats().Depth != 0 || tree.Stats().Nodes != 0 {
		t.Errorf("expected zero statistics, have %+v", tree.Stats())
	}
	for range tree.DrawOrder(geom.Pt(1, 1)) {
		t.Errorf("expected empty draw order")
	}
	if err = tree.Check(); err != nil {
		t.Error(err)
	}
}

func TestBuildSingle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sptree")
	defer teardown()
	//
	lines := Lines(geom.Seg(10, 10, 90, 10))
	tree, err := Build(lines, box100, Config{})
	if err != nil {
		t.Fatal(err)
	}
	root := tree.Root()
	if root == nil || !root.IsLeaf() || root.Splitter() != lines[0] {
		t.Fatalf("expected a single leaf holding the input line")
	}
	if !sameLine(root.Plane(), geom.Seg(0, 10, 100, 10)) {
		t.Errorf("unexpected splitting plane %v", root.Plane())
	}
}

func TestBuildCrossing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sptree")
	defer teardown()
	//
	a := geom.Seg(10, 10, 90, 10)
	b := geom.Seg(50, 0, 50, 100)
	for _, input := range [][]geom.Segment{{a, b}, {b, a}} {
		tree, err := Build(Lines(input...), box100, Config{})
		if err != nil {
			t.Fatal(err)
		}
		st := tree.Stats()
		if st.Input != 2 || st.Pieces != 3 || st.Splits != 1 || st.Nodes != 3 || st.Leaves != 2 || st.Depth != 2 {
			t.Errorf("unexpected statistics %+v", st)
		}
		splitter := tree.Root().Splitter().Base()
		crossed := a
		if splitter == a {
			crossed = b
		}
		var pieces []geom.Segment
		for item := range tree.Items() {
			if s := item.Base(); s != splitter {
				pieces = append(pieces, s)
			}
		}
		if len(pieces) != 2 {
			t.Fatalf("expected crossed segment to be split into 2 pieces, have %v", pieces)
		}
		// pieces keep the direction of the crossed segment and meet at (50,10)
		first, second := pieces[0], pieces[1]
		if first.Start != crossed.Start {
			first, second = second, first
		}
		if first.Start != crossed.Start || second.End != crossed.End ||
			first.End != geom.Pt(50, 10) || second.Start != geom.Pt(50, 10) {
			t.Errorf("unexpected pieces %v and %v of %v", first, second, crossed)
		}
		if err = tree.Check(); err != nil {
			t.Error(err)
		}
	}
}

func TestBuildCoincidentGroup(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sptree")
	defer teardown()
	//
	lines := Lines(
		geom.Seg(10, 10, 20, 10),
		geom.Seg(40, 10, 30, 10), // same line, opposite direction
		geom.Seg(10, 50, 20, 50),
	)
	tree, err := Build(lines, box100, Config{})
	if err != nil {
		t.Fatal(err)
	}
	root := tree.Root()
	if len(root.Items()) != 2 || root.Splitter() != lines[0] || root.Items()[1] != lines[1] {
		t.Fatalf("expected root to group both lines on y=10, has %v", root.Items())
	}
	if root.Front() != nil || root.Back() == nil || root.Back().Splitter() != lines[2] {
		t.Errorf("expected line on y=50 to be behind the root group")
	}
}

func TestBuildRejectsInvalidInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sptree")
	defer teardown()
	//
	for i, c := range []struct {
		box  geom.Box
		segs []geom.Segment
		cfg  Config
		err  error
	}{
		{box100, []geom.Segment{geom.Seg(0, math.NaN(), 10, 10)}, Config{}, ErrNonFinite},
		{box100, []geom.Segment{geom.Seg(0, 0, math.Inf(1), 10)}, Config{}, ErrNonFinite},
		{box100, []geom.Segment{geom.Seg(5, 5, 5, 5)}, Config{}, ErrDegenerateSegment},
		{box100, []geom.Segment{geom.Seg(5, 5, 6, 5), geom.Seg(-5, 0, 10, 10)}, Config{}, ErrOutsideBounds},
		{box100, []geom.Segment{geom.Seg(5, 5, 5, 5.001)}, Config{Epsilon: 0.01}, ErrDegenerateSegment},
		{geom.NewBox(0, 0, 0, 100), []geom.Segment{geom.Seg(0, 5, 0, 10)}, Config{}, ErrInvalidBounds},
		{geom.NewBox(0, 0, math.NaN(), 100), nil, Config{}, ErrInvalidBounds},
		{box100, nil, Config{Epsilon: -1}, ErrInvalidConfig},
		{box100, nil, Config{Epsilon: math.NaN()}, ErrInvalidConfig},
		{box100, nil, Config{SampleSize: -3}, ErrInvalidConfig},
	} {
		_, err := Build(Lines(c.segs...), c.box, c.cfg)
		if !errors.Is(err, c.err) {
			t.Errorf("case %d: expected error %v, got %v", i, c.err, err)
		}
	}
}

func TestBuildInvariants(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sptree")
	defer teardown()
	//
	rnd := rand.New(rand.NewPCG(1, 2))
	for run := range 50 {
		lines := randomLines(rnd, 1+rnd.IntN(40))
		tree, err := Build(lines, box100, Config{Seed: uint64(run)})
		if err != nil {
			t.Fatalf("run %d: %v", run, err)
		}
		if err = tree.Check(); err != nil {
			t.Fatalf("run %d: %v", run, err)
		}
		st := tree.Stats()
		if st.Pieces != st.Input+st.Splits {
			t.Errorf("run %d: every split should add exactly one piece, have %+v", run, st)
		}
		// total length is conserved by splitting
		before, after := totalLength(lines), totalLength(collect(tree))
		if math.Abs(before-after) > 1e-9*before {
			t.Errorf("run %d: total length changed from %g to %g", run, before, after)
		}
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sptree")
	defer teardown()
	//
	lines := randomLines(rand.New(rand.NewPCG(3, 4)), 60)
	t1, err := Build(lines, box100, Config{Seed: 99})
	if err != nil {
		t.Fatal(err)
	}
	t2, _ := Build(lines, box100, Config{Seed: 99})
	if !sameTree(t1.Root(), t2.Root()) {
		t.Errorf("expected builds with equal seed to produce identical trees")
	}
	t3, _ := Build(lines, box100, Config{Rand: rand.New(rand.NewPCG(99, 99^0x9e3779b97f4a7c15))})
	if !sameTree(t1.Root(), t3.Root()) {
		t.Errorf("expected injected random source to behave like the seeded one")
	}
}

func TestBuildSampleSize(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sptree")
	defer teardown()
	//
	lines := randomLines(rand.New(rand.NewPCG(5, 6)), 30)
	for _, k := range []int{1, 2, 5, 30, 100} {
		tree, err := Build(lines, box100, Config{SampleSize: k})
		if err != nil {
			t.Fatalf("sample size %d: %v", k, err)
		}
		if tree.Config().SampleSize != k {
			t.Errorf("expected sample size %d in tree config, is %d", k, tree.Config().SampleSize)
		}
		if err = tree.Check(); err != nil {
			t.Errorf("sample size %d: %v", k, err)
		}
	}
}

func TestSample(t *testing.T) {
	b := &builder[*Line]{k: 5, rnd: rand.New(rand.NewPCG(0, 0))}
	if s := b.sample(3); len(s) != 3 || s[0] != 0 || s[1] != 1 || s[2] != 2 {
		t.Errorf("expected all indices in order for small lists, got %v", s)
	}
	for range 100 {
		s := b.sample(20)
		if len(s) != 5 {
			t.Fatalf("expected 5 samples, got %d", len(s))
		}
		seen := make(map[int]bool)
		for _, i := range s {
			if i < 0 || i >= 20 || seen[i] {
				t.Fatalf("invalid sample %v", s)
			}
			seen[i] = true
		}
	}
}

func TestDecorate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sptree")
	defer teardown()
	//
	tree, _ := Build(randomLines(rand.New(rand.NewPCG(7, 8)), 10), box100, Config{})
	err := tree.Decorate(func(n *Node[*Line]) any {
		return len(n.Items())
	})
	if err != nil {
		t.Fatal(err)
	}
	for n := range tree.Nodes() {
		if cnt, ok := n.Attachment().(int); !ok || cnt != len(n.Items()) {
			t.Errorf("unexpected attachment %v", n.Attachment())
		}
	}
	if err = tree.Decorate(func(*Node[*Line]) any { return nil }); !errors.Is(err, ErrAlreadyDecorated) {
		t.Errorf("expected second decoration to fail, got %v", err)
	}
}

func TestDecorateNilFunction(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sptree")
	defer teardown()
	//
	tree, _ := Build(randomLines(rand.New(rand.NewPCG(7, 8)), 3), box100, Config{})
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected decoration with nil function to panic")
		}
		if err := tree.Decorate(func(*Node[*Line]) any { return 1 }); err != nil {
			t.Errorf("expected failed decoration to leave tree undecorated, got %v", err)
		}
	}()
	_ = tree.Decorate(nil)
}

func BenchmarkBuild(b *testing.B) {
	lines := randomLines(rand.New(rand.NewPCG(9, 10)), 500)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Build(lines, box100, Config{Seed: uint64(i)}); err != nil {
			b.Fatal(err)
		}
	}
}
