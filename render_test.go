package inkwell

import (
	"math/rand/v2"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoLeaves returns a plain container holding leaves a=[0,0,20,10] and
// b=[25,0,35,10].
func twoLeaves() (root, a, b *testView) {
	root = newTestView(1, Rect(0, 0, 100, 100), "root", nil)
	a = newTestView(2, Rect(0, 0, 20, 10), "a", nil)
	b = newTestView(3, Rect(25, 0, 35, 10), "b", nil)
	root.AddChild(a)
	root.AddChild(b)
	return root, a, b
}

func TestMergeRectDisjoint(t *testing.T) {
	var rects []Rectangle
	rects = mergeRect(rects, Rect(0, 0, 20, 10))
	rects = mergeRect(rects, Rect(25, 0, 35, 10))
	assert.Equal(t, []Rectangle{Rect(0, 0, 20, 10), Rect(25, 0, 35, 10)}, rects)
}

func TestMergeRectTouchCascades(t *testing.T) {
	rects := []Rectangle{Rect(0, 0, 20, 10), Rect(25, 0, 35, 10)}
	rects = mergeRect(rects, Rect(20, 0, 25, 10))
	assert.Equal(t, []Rectangle{Rect(0, 0, 35, 10)}, rects)
}

func TestMergeRectContainedDropped(t *testing.T) {
	rects := []Rectangle{Rect(0, 0, 50, 50), Rect(60, 0, 70, 10)}
	rects = mergeRect(rects, Rect(10, 10, 20, 20))
	assert.Equal(t, []Rectangle{Rect(0, 0, 50, 50), Rect(60, 0, 70, 10)}, rects)
}

func TestMergeRectPartialOverlapKept(t *testing.T) {
	rects := mergeRect(nil, Rect(0, 0, 10, 10))
	rects = mergeRect(rects, Rect(5, 5, 15, 15))
	assert.Len(t, rects, 2)
}

func TestMergeRectIdempotent(t *testing.T) {
	rects := mergeRect(nil, Rect(0, 0, 10, 10))
	rects = mergeRect(rects, Rect(30, 0, 40, 10))
	before := append([]Rectangle(nil), rects...)
	for _, r := range before {
		rects = mergeRect(rects, r)
	}
	assert.Equal(t, before, rects)
}

func TestMergeRectCoversInputs(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	var rects []Rectangle
	var inputs []Rectangle
	for range 200 {
		x, y := rng.IntN(80), rng.IntN(80)
		r := Rect(x, y, x+1+rng.IntN(20), y+1+rng.IntN(20))
		inputs = append(inputs, r)
		rects = mergeRect(rects, r)
	}
	for _, in := range inputs {
		covered := false
		for _, out := range rects {
			if out.Contains(in) {
				covered = true
				break
			}
		}
		assert.True(t, covered, "input %v not covered by %v", in, rects)
	}
}

func TestProcessRenderQueueDisjointLeaves(t *testing.T) {
	ctx, fb := newTestContext(t, 100, 100)
	root, a, b := twoLeaves()
	updating := make(Updating)

	var rq RenderQueue
	rq.Add(NewRenderData(a.ID(), a.Rect(), UpdateGui))
	rq.Add(NewRenderData(b.ID(), b.Rect(), UpdateGui))
	ProcessRenderQueue(root, &rq, ctx, updating)

	assert.Equal(t, []Rectangle{a.Rect()}, a.rendered)
	assert.Equal(t, []Rectangle{b.Rect()}, b.rendered)
	assert.Empty(t, root.rendered)
	assert.Equal(t, []Rectangle{Rect(0, 0, 20, 10), Rect(25, 0, 35, 10)}, fb.updates())
	assert.Len(t, updating, 2)
	assert.True(t, rq.Empty())
	assert.Equal(t, 2.0, testutil.ToFloat64(ctx.Metrics.Refreshes.WithLabelValues("gui")))
	assert.Equal(t, 2.0, testutil.ToFloat64(ctx.Metrics.InFlight))
}

func TestProcessRenderQueueMergesTouchingLeaves(t *testing.T) {
	ctx, fb := newTestContext(t, 100, 100)
	root := newTestView(1, Rect(0, 0, 100, 100), "root", nil)
	leaves := []*testView{
		newTestView(2, Rect(0, 0, 10, 10), "a", nil),
		newTestView(3, Rect(10, 0, 20, 10), "b", nil),
		newTestView(4, Rect(25, 0, 35, 10), "c", nil),
	}
	var rq RenderQueue
	for _, l := range leaves {
		root.AddChild(l)
		rq.Add(NewRenderData(l.ID(), l.Rect(), UpdateGui))
	}
	updating := make(Updating)

	ProcessRenderQueue(root, &rq, ctx, updating)

	for _, l := range leaves {
		assert.Equal(t, []Rectangle{l.Rect()}, l.rendered)
	}
	assert.Equal(t, []Rectangle{Rect(0, 0, 20, 10), Rect(25, 0, 35, 10)}, fb.updates())
	assert.Len(t, updating, 2)
}

func TestProcessRenderQueueWaitsBeforeUpdate(t *testing.T) {
	ctx, fb := newTestContext(t, 100, 100)
	root, a, _ := twoLeaves()
	updating := make(Updating)

	tok, err := fb.Update(Rect(0, 0, 20, 10), UpdateFull)
	require.NoError(t, err)
	updating[tok] = Rect(0, 0, 20, 10)
	far, err := fb.Update(Rect(50, 50, 60, 60), UpdateFull)
	require.NoError(t, err)
	updating[far] = Rect(50, 50, 60, 60)
	fb.calls = nil

	var rq RenderQueue
	rq.Add(NewRenderData(a.ID(), a.Rect(), UpdateGui))
	ProcessRenderQueue(root, &rq, ctx, updating)

	require.Len(t, fb.calls, 2)
	assert.Equal(t, fbCall{Op: "wait", Token: tok}, fb.calls[0])
	assert.Equal(t, "update", fb.calls[1].Op)
	assert.NotContains(t, updating, tok)
	assert.Contains(t, updating, far, "refreshes elsewhere are left alone")
	assert.Contains(t, updating, fb.calls[1].Token)
}

func TestProcessRenderQueueNoWait(t *testing.T) {
	ctx, fb := newTestContext(t, 100, 100)
	root, a, _ := twoLeaves()
	updating := make(Updating)

	tok, err := fb.Update(a.Rect(), UpdateFull)
	require.NoError(t, err)
	updating[tok] = a.Rect()
	fb.calls = nil

	var rq RenderQueue
	rq.Add(NoWait(a.ID(), a.Rect(), UpdateFast))
	ProcessRenderQueue(root, &rq, ctx, updating)

	require.Len(t, fb.calls, 1)
	assert.Equal(t, "update", fb.calls[0].Op)
	assert.Equal(t, UpdateFast, fb.calls[0].Mode)
	assert.Len(t, updating, 2)
}

func TestProcessRenderQueueWaitErrorTreatedAsDone(t *testing.T) {
	ctx, fb := newTestContext(t, 100, 100)
	root, a, _ := twoLeaves()
	updating := Updating{99: a.Rect()}

	var rq RenderQueue
	rq.Add(NewRenderData(a.ID(), a.Rect(), UpdateGui))
	ProcessRenderQueue(root, &rq, ctx, updating)

	assert.Equal(t, []string{"wait 99", "update 1"}, fb.ops())
	assert.NotContains(t, updating, Token(99))
	assert.Equal(t, 1.0, testutil.ToFloat64(ctx.Metrics.WaitErrors))
}

func TestProcessRenderQueueRemovedWidgetSkipped(t *testing.T) {
	ctx, fb := newTestContext(t, 100, 100)
	root, a, b := twoLeaves()
	updating := make(Updating)

	var rq RenderQueue
	rq.Add(NewRenderData(7, Rect(0, 0, 50, 50), UpdateGui))
	ProcessRenderQueue(root, &rq, ctx, updating)

	assert.Empty(t, a.rendered)
	assert.Empty(t, b.rendered)
	assert.Empty(t, fb.calls)
	assert.Empty(t, updating)
}

func TestProcessRenderQueueUpdateErrorDropped(t *testing.T) {
	ctx, fb := newTestContext(t, 100, 100)
	root, a, _ := twoLeaves()
	fb.failUpdate = true
	updating := make(Updating)

	var rq RenderQueue
	rq.Add(NewRenderData(a.ID(), a.Rect(), UpdateFull))
	assert.NotPanics(t, func() { ProcessRenderQueue(root, &rq, ctx, updating) })

	assert.Equal(t, []Rectangle{a.Rect()}, a.rendered)
	assert.Empty(t, updating)
	assert.Equal(t, 1.0, testutil.ToFloat64(ctx.Metrics.RefreshErrors.WithLabelValues("full")))
}

func TestProcessRenderQueueExposeRepaintsOverlapping(t *testing.T) {
	ctx, fb := newTestContext(t, 100, 100)
	root, a, b := twoLeaves()
	updating := make(Updating)

	var rq RenderQueue
	rq.Add(Expose(Rect(10, 0, 30, 10), UpdateGui))
	ProcessRenderQueue(root, &rq, ctx, updating)

	assert.Equal(t, []Rectangle{Rect(10, 0, 20, 10)}, a.rendered)
	assert.Equal(t, []Rectangle{Rect(25, 0, 30, 10)}, b.rendered)
	assert.Equal(t, []Rectangle{a.Rect(), b.Rect()}, fb.updates())
}

func TestProcessRenderQueueLatestRequestWins(t *testing.T) {
	ctx, _ := newTestContext(t, 100, 100)
	root, a, _ := twoLeaves()

	var rq RenderQueue
	rq.Add(NewRenderData(a.ID(), Rect(0, 0, 5, 5), UpdateGui))
	rq.Add(NewRenderData(a.ID(), Rect(5, 5, 10, 10), UpdateGui))
	ProcessRenderQueue(root, &rq, ctx, make(Updating))

	assert.Equal(t, []Rectangle{Rect(5, 5, 10, 10)}, a.rendered,
		"a leaf repainting itself whole stops after the first rectangle")
}

func TestProcessRenderQueueBackgroundRepaintsChildren(t *testing.T) {
	ctx, fb := newTestContext(t, 100, 100)
	bg := newTestView(1, Rect(0, 0, 100, 100), "bg", nil)
	bg.background = true
	child := newTestView(2, Rect(10, 10, 20, 20), "child", nil)
	bg.AddChild(child)

	var rq RenderQueue
	rq.Add(NewRenderData(bg.ID(), bg.Rect(), UpdateFull))
	ProcessRenderQueue(bg, &rq, ctx, make(Updating))

	assert.Equal(t, []Rectangle{bg.Rect()}, bg.rendered)
	assert.Equal(t, []Rectangle{child.Rect()}, child.rendered)
	assert.Equal(t, []Rectangle{bg.Rect()}, fb.updates())
}

func TestProcessRenderQueueContainerForwardsToDescendants(t *testing.T) {
	ctx, _ := newTestContext(t, 100, 100)
	root, a, b := twoLeaves()

	var rq RenderQueue
	rq.Add(NewRenderData(root.ID(), root.Rect(), UpdateGui))
	ProcessRenderQueue(root, &rq, ctx, make(Updating))

	assert.Empty(t, root.rendered, "a plain container paints nothing itself")
	assert.Equal(t, []Rectangle{a.Rect()}, a.rendered)
	assert.Equal(t, []Rectangle{b.Rect()}, b.rendered)
}

func TestProcessRenderQueueGroupOrder(t *testing.T) {
	ctx, fb := newTestContext(t, 100, 100)
	root, a, b := twoLeaves()

	var rq RenderQueue
	rq.Add(NewRenderData(a.ID(), a.Rect(), UpdateFull))
	rq.Add(NewRenderData(b.ID(), b.Rect(), UpdateFast))
	ProcessRenderQueue(root, &rq, ctx, make(Updating))

	require.Len(t, fb.calls, 2)
	assert.Equal(t, UpdateFull, fb.calls[0].Mode)
	assert.Equal(t, UpdateFast, fb.calls[1].Mode)
}

func TestRenderReportsMergedRects(t *testing.T) {
	ctx, _ := newTestContext(t, 100, 100)
	root, a, b := twoLeaves()

	var rects, bgs []Rectangle
	ids := map[ID][]Rectangle{a.ID(): {a.Rect()}, b.ID(): {b.Rect()}}
	Render(root, false, ids, &rects, &bgs, ctx.FB, ctx.Fonts, make(Updating))

	assert.Equal(t, []Rectangle{a.Rect(), b.Rect()}, rects)
}

func TestWaitAllSortedAndEmpties(t *testing.T) {
	fb := newRecordingFB(100, 100)
	updating := make(Updating)
	for range 3 {
		tok, err := fb.Update(Rect(0, 0, 10, 10), UpdateGui)
		require.NoError(t, err)
		updating[tok] = Rect(0, 0, 10, 10)
	}
	fb.calls = nil

	WaitAll(fb, updating, discardLogger())

	assert.Equal(t, []string{"wait 1", "wait 2", "wait 3"}, fb.ops())
	assert.Empty(t, updating)
	assert.Equal(t, 0, fb.Pending())
}
