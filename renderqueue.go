package inkwell

// RenderData is a request to repaint part of the screen.
//
// A non-zero ID asks the widget with that ID to repaint within Rect. The zero
// ID, which the feeder never issues, marks a region exposed by a removed
// widget: every view overlapping it repaints its share.
type RenderData struct {
	ID   ID
	Rect Rectangle
	Mode UpdateMode
	Wait bool
}

// NewRenderData requests a repaint of widget id that waits for overlapping
// in-flight refreshes first.
func NewRenderData(id ID, rect Rectangle, mode UpdateMode) RenderData {
	return RenderData{ID: id, Rect: rect, Mode: mode, Wait: true}
}

// NoWait requests a repaint of widget id that may race with in-flight
// refreshes.
func NoWait(id ID, rect Rectangle, mode UpdateMode) RenderData {
	return RenderData{ID: id, Rect: rect, Mode: mode}
}

// Expose requests a repaint of every view overlapping rect.
func Expose(rect Rectangle, mode UpdateMode) RenderData {
	return RenderData{Rect: rect, Mode: mode, Wait: true}
}

// RenderEntry is one queued (widget, region) pair.
type RenderEntry struct {
	ID   ID
	Rect Rectangle
}

type renderKey struct {
	mode UpdateMode
	wait bool
}

// RenderGroup holds the entries queued under one (mode, wait) pair, in
// insertion order.
type RenderGroup struct {
	Mode    UpdateMode
	Wait    bool
	Entries []RenderEntry
}

// RenderQueue accumulates repaint requests during one loop iteration.
// The zero value is ready to use.
type RenderQueue struct {
	index  map[renderKey]int
	groups []RenderGroup
	n      int
}

// Add queues data under its (mode, wait) group.
func (rq *RenderQueue) Add(data RenderData) {
	key := renderKey{data.Mode, data.Wait}
	if rq.index == nil {
		rq.index = make(map[renderKey]int)
	}
	i, ok := rq.index[key]
	if !ok {
		i = len(rq.groups)
		rq.index[key] = i
		rq.groups = append(rq.groups, RenderGroup{Mode: data.Mode, Wait: data.Wait})
	}
	rq.groups[i].Entries = append(rq.groups[i].Entries, RenderEntry{ID: data.ID, Rect: data.Rect})
	rq.n++
}

// Len returns the number of queued entries across all groups.
func (rq *RenderQueue) Len() int {
	return rq.n
}

// Empty reports whether nothing is queued.
func (rq *RenderQueue) Empty() bool {
	return rq.n == 0
}

// Drain returns the queued groups, ordered by the first insertion into each
// group, and leaves the queue empty.
func (rq *RenderQueue) Drain() []RenderGroup {
	groups := rq.groups
	rq.groups = nil
	rq.index = nil
	rq.n = 0
	return groups
}
