package inkwell

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDFeederStartsAtOne(t *testing.T) {
	f := NewIDFeeder()
	assert.Equal(t, ID(1), f.Next())
	assert.Equal(t, ID(2), f.Next())
}

func TestIDFeederConcurrentUnique(t *testing.T) {
	f := NewIDFeeder()
	const workers, per = 8, 500

	var mu sync.Mutex
	seen := make(map[ID]bool)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range per {
				id := f.Next()
				mu.Lock()
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Len(t, seen, workers*per)
	assert.False(t, seen[0])
}

func TestBaseChildren(t *testing.T) {
	root := newTestView(1, Rect(0, 0, 100, 100), "root", nil)
	a := newTestView(2, Rect(0, 0, 10, 10), "a", nil)
	b := newTestView(3, Rect(0, 0, 10, 10), "b", nil)
	c := newTestView(4, Rect(0, 0, 10, 10), "c", nil)

	root.AddChild(a)
	root.AddChild(c)
	root.InsertChild(1, b)
	require.Equal(t, 3, root.Len())
	assert.Equal(t, []View{a, b, c}, root.Children())

	removed := root.RemoveChildAt(0)
	assert.Same(t, a, removed)
	assert.Equal(t, []View{b, c}, root.Children())

	root.RetainChildren(func(v View) bool { return v != b })
	assert.Equal(t, []View{c}, root.Children())
}

func TestBaseAddNilPanics(t *testing.T) {
	root := newTestView(1, Rect(0, 0, 10, 10), "root", nil)
	assert.Panics(t, func() { root.AddChild(nil) })
	assert.Panics(t, func() { root.RemoveChildAt(0) })
}

func TestLocateTopmostFirst(t *testing.T) {
	root := newTestView(1, Rect(0, 0, 100, 100), "root", nil)
	root.AddChild(newTestView(2, Rect(0, 0, 10, 10), "a", nil))
	root.AddChild(NewFiller(3, Rect(0, 0, 10, 10), White))
	root.AddChild(newTestView(4, Rect(0, 0, 10, 10), "b", nil))

	i, ok := Locate[*testView](root)
	require.True(t, ok)
	assert.Equal(t, 2, i)

	i, ok = Locate[*Filler](root)
	require.True(t, ok)
	assert.Equal(t, 1, i)

	_, ok = Locate[*Menu](root)
	assert.False(t, ok)
}

func TestFindByIDAndOverlappingRectangle(t *testing.T) {
	root := newTestView(1, Rect(0, 0, 50, 50), "root", nil)
	mid := newTestView(2, Rect(10, 10, 20, 20), "mid", nil)
	deep := newTestView(3, Rect(40, 40, 80, 90), "deep", nil)
	mid.AddChild(deep)
	root.AddChild(mid)

	v, ok := FindByID(root, 3)
	require.True(t, ok)
	assert.Same(t, deep, v)

	_, ok = FindByID(root, 7)
	assert.False(t, ok)

	assert.Equal(t, Rect(0, 0, 80, 90), OverlappingRectangle(root))
	assert.Equal(t, Rect(10, 10, 80, 90), OverlappingRectangle(mid))
}

func TestWalkPrunes(t *testing.T) {
	root := newTestView(1, Rect(0, 0, 50, 50), "root", nil)
	a := newTestView(2, Rect(0, 0, 10, 10), "a", nil)
	a.AddChild(newTestView(3, Rect(0, 0, 5, 5), "a1", nil))
	root.AddChild(a)
	root.AddChild(newTestView(4, Rect(0, 0, 10, 10), "b", nil))

	var visited []ID
	Walk(root, func(v View) bool {
		visited = append(visited, v.ID())
		return v.ID() != 2
	})
	assert.Equal(t, []ID{1, 2, 4}, visited)
}

func TestTransferNotificationsKeepsOrder(t *testing.T) {
	ctx, _ := newTestContext(t, 600, 800)
	ctx.Settings.Timing.NotificationClose = Dur(0)
	var rq RenderQueue

	from := newTestView(ctx.IDs.Next(), ctx.Display.Rect(), "from", nil)
	to := newTestView(ctx.IDs.Next(), ctx.Display.Rect(), "to", nil)
	n1 := NewNotification(ViewMessageNotif, "one", nil, &rq, ctx)
	other := newTestView(ctx.IDs.Next(), Rect(0, 0, 10, 10), "other", nil)
	n2 := NewNotification(ViewScreenshotNotif, "two", nil, &rq, ctx)
	from.AddChild(n1)
	from.AddChild(other)
	from.AddChild(n2)
	rq.Drain()

	TransferNotifications(from, to, &rq)

	assert.Equal(t, []View{other}, from.Children())
	assert.Equal(t, []View{n1, n2}, to.Children())
	assert.Equal(t, 2, rq.Len())
}
