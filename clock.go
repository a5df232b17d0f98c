package inkwell

import "time"

const clockFormat = "15:04"

// Clock shows the time of day. It refreshes on ClockTickEvent and opens the
// clock menu when tapped.
type Clock struct {
	Base
	now  func() time.Time
	time time.Time
}

// NewClock returns a clock right-aligned in rect, just wide enough for the
// time. now defaults to time.Now.
func NewClock(id ID, rect Rectangle, fonts *Fonts, now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	width := fonts.Plan(FontNormal, "00:00", 0).Width + fonts.Em(FontNormal)
	rect.Min.X = max(rect.Max.X-width, rect.Min.X)
	return &Clock{Base: NewBase(id, rect), now: now, time: now()}
}

// Time returns the time currently displayed.
func (c *Clock) Time() time.Time { return c.time }

func (c *Clock) HandleEvent(evt Event, _ *Hub, bus *Bus, rq *RenderQueue, _ *Context) bool {
	switch e := evt.(type) {
	case ClockTickEvent:
		c.time = c.now()
		rq.Add(NewRenderData(c.id, c.rect, UpdateGui))
		return true
	case TapEvent:
		if c.rect.Includes(e.Center) {
			bus.Push(ToggleNearEvent{ViewID: ViewClockMenu, Rect: c.rect})
			return true
		}
	}
	return false
}

func (c *Clock) Render(fb Framebuffer, _ Rectangle, fonts *Fonts) {
	plan := fonts.Plan(FontNormal, c.time.Format(clockFormat), 0)
	dx := (c.rect.Width() - plan.Width) / 2
	fb.DrawRectangle(c.rect, White)
	fonts.Render(fb.Image(), Black, plan, Pt(c.rect.Min.X+dx, fonts.Baseline(FontNormal, c.rect)))
}
