package inkwell

import (
	"context"
	"time"
)

// --- Constants ---

const (
	maxContacts      = 10
	defaultDeadZone  = 24
	defaultHoldDelay = 600 * time.Millisecond
)

// --- Per-contact state ---

type contactState struct {
	down  bool
	start Point
	last  Point
	since time.Duration
	held  bool
}

// GestureRecognizer turns raw finger events into taps, holds and swipes.
// It is not safe for concurrent use; RunGestures owns one per worker.
type GestureRecognizer struct {
	deadZone int
	hold     time.Duration
	contacts [maxContacts]contactState
}

// NewGestureRecognizer returns a recognizer using cfg. Zero values select
// the defaults.
func NewGestureRecognizer(cfg GestureSettings) *GestureRecognizer {
	g := &GestureRecognizer{deadZone: cfg.DeadZone, hold: cfg.Hold.Duration}
	if g.deadZone <= 0 {
		g.deadZone = defaultDeadZone
	}
	if g.hold <= 0 {
		g.hold = defaultHoldDelay
	}
	return g
}

// Feed runs the contact state machine for evt and returns the gestures it
// completes. Contacts with an ID outside [0, 10) are ignored.
func (g *GestureRecognizer) Feed(evt FingerEvent) []Event {
	if evt.ID < 0 || evt.ID >= maxContacts {
		return nil
	}
	c := &g.contacts[evt.ID]

	switch evt.Status {
	case FingerDown:
		*c = contactState{down: true, start: evt.Position, last: evt.Position, since: evt.Time}
		return nil

	case FingerMotion:
		if !c.down {
			return nil
		}
		c.last = evt.Position
		return g.checkHold(c, evt.Time)

	case FingerUp:
		if !c.down {
			return nil
		}
		c.last = evt.Position
		out := g.checkHold(c, evt.Time)
		ended := *c
		*c = contactState{}
		if ended.held {
			return out
		}
		if !g.moved(&ended, evt.Position) {
			return append(out, TapEvent{Center: evt.Position})
		}
		return append(out, SwipeEvent{Dir: swipeDir(ended.start, evt.Position), Start: ended.start, End: evt.Position})
	}
	return nil
}

// Tick reports holds for contacts that stayed put for the hold delay
// without any further finger event.
func (g *GestureRecognizer) Tick(now time.Duration) []Event {
	var out []Event
	for i := range g.contacts {
		c := &g.contacts[i]
		if c.down {
			out = append(out, g.checkHold(c, now)...)
		}
	}
	return out
}

func (g *GestureRecognizer) checkHold(c *contactState, now time.Duration) []Event {
	if c.held || now-c.since < g.hold || g.moved(c, c.last) {
		return nil
	}
	c.held = true
	return []Event{HoldFingerEvent{Position: c.start}}
}

func (g *GestureRecognizer) moved(c *contactState, pt Point) bool {
	return c.start.Dist(pt) >= float64(g.deadZone)
}

func swipeDir(from, to Point) Dir {
	d := to.Sub(from)
	if abs(d.X) > abs(d.Y) {
		if d.X > 0 {
			return DirEast
		}
		return DirWest
	}
	if d.Y > 0 {
		return DirSouth
	}
	return DirNorth
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// RunGestures forwards every finger event read from in to hub, followed by
// the gestures it completes. Holds are also detected between events, every
// tick. now reports the time base of FingerEvent.Time. RunGestures returns
// when ctx is done or in is closed.
func RunGestures(ctx context.Context, in <-chan FingerEvent, hub *Hub, cfg GestureSettings, now func() time.Duration) error {
	g := NewGestureRecognizer(cfg)
	ticker := time.NewTicker(g.hold / 4)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case evt, ok := <-in:
			if !ok {
				return nil
			}
			hub.SendContext(ctx, evt)
			for _, ge := range g.Feed(evt) {
				hub.SendContext(ctx, ge)
			}
		case <-ticker.C:
			for _, ge := range g.Tick(now()) {
				hub.SendContext(ctx, ge)
			}
		}
	}
}
