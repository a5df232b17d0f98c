package inkwell

import "context"

// Hub is the send side of the application's inbound event channel. Workers
// and timers post to it; the UI loop is the only reader. Events sent from one
// goroutine are received in the order they were sent.
type Hub struct {
	ch   chan<- Event
	done <-chan struct{}
}

// NewHub returns a hub posting on ch. Sends give up once done is closed, so
// no sender outlives the reader.
func NewHub(ch chan<- Event, done <-chan struct{}) *Hub {
	return &Hub{ch: ch, done: done}
}

// Send blocks until evt is queued or the reader has stopped, and reports
// whether evt was queued. Sending on a nil Hub is a no-op.
func (h *Hub) Send(evt Event) bool {
	return h.SendContext(context.Background(), evt)
}

// SendContext is like Send but also gives up when ctx is done.
func (h *Hub) SendContext(ctx context.Context, evt Event) bool {
	if h == nil || h.ch == nil {
		return false
	}
	select {
	case h.ch <- evt:
		return true
	case <-h.done:
		return false
	case <-ctx.Done():
		return false
	}
}

// Bus is the ordered list of events a view hands to its parent during one
// dispatch.
type Bus []Event

// Push appends evt to the bus.
func (b *Bus) Push(evt Event) {
	*b = append(*b, evt)
}

// Len returns the number of pending events.
func (b Bus) Len() int { return len(b) }

// HandleEvent delivers evt to the subtree rooted at view and reports whether
// it was captured.
//
// Children are visited from the topmost down, so higher views get the first
// chance to capture a gesture, and delivery stops at the first child that
// captures. Events the children push on their bus are then offered to view
// itself: the ones it consumes disappear, the others move up to parentBus
// followed by whatever view emitted while handling them. Finally view sees
// evt unless a child captured it.
//
// A view whose MightSkip returns true is bypassed entirely.
func HandleEvent(view View, evt Event, hub *Hub, parentBus *Bus, rq *RenderQueue, ctx *Context) bool {
	if view.MightSkip(evt) {
		return false
	}

	if view.Len() == 0 {
		return view.HandleEvent(evt, hub, parentBus, rq, ctx)
	}

	captured := false
	var childBus Bus

	for i := view.Len() - 1; i >= 0; i-- {
		if HandleEvent(view.ChildAt(i), evt, hub, &childBus, rq, ctx) {
			captured = true
			break
		}
	}

	var tempBus Bus
	kept := childBus[:0]
	for _, childEvt := range childBus {
		if !view.HandleEvent(childEvt, hub, &tempBus, rq, ctx) {
			kept = append(kept, childEvt)
		}
	}

	*parentBus = append(*parentBus, kept...)
	*parentBus = append(*parentBus, tempBus...)

	return captured || view.HandleEvent(evt, hub, parentBus, rq, ctx)
}
