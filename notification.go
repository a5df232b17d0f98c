package inkwell

import "time"

// Notification is a transient message box that closes itself after the
// configured delay. Successive notifications are stacked three per column,
// alternating between the right and the left side of the screen.
type Notification struct {
	Base
	text     string
	maxWidth int
	index    uint8
	viewID   ViewID
	timer    *time.Timer
}

// NewNotification creates a notification showing text and queues its first
// paint. It sends CloseEvent{viewID} through hub once the close delay from
// ctx.Settings elapses.
func NewNotification(viewID ViewID, text string, hub *Hub, rq *RenderQueue, ctx *Context) *Notification {
	index := ctx.NotificationIndex
	ctx.NotificationIndex++

	width := ctx.Display.Width
	padding := ctx.Fonts.Em(FontNormal)
	maxWidth := width - 5*padding
	plan := ctx.Fonts.Plan(FontNormal, text, maxWidth)

	n := &Notification{
		Base:     NewBase(ctx.IDs.Next(), Rectangle{}),
		text:     text,
		maxWidth: maxWidth,
		index:    index,
		viewID:   viewID,
	}
	w := plan.Width + 3*padding
	h := 7 * ctx.Fonts.XHeight(FontNormal)
	n.rect = n.place(w, h, padding, width)

	rq.Add(NewRenderData(n.id, n.rect, UpdateGui))

	if d := ctx.Settings.Timing.NotificationClose.Duration; d > 0 {
		n.timer = time.AfterFunc(d, func() { hub.Send(CloseEvent{ViewID: viewID}) })
	}
	return n
}

func (n *Notification) place(w, h, padding, screenWidth int) Rectangle {
	side := (n.index / 3) % 2
	dx := padding
	if side == 0 {
		dx = screenWidth - w - padding
	}
	dy := SmallBarHeight + padding + int(n.index%3)*(h+padding)
	return Rect(dx, dy, dx+w, dy+h)
}

// Text returns the message.
func (n *Notification) Text() string { return n.text }

// Stop cancels the pending self-close.
func (n *Notification) Stop() {
	if n.timer != nil {
		n.timer.Stop()
	}
}

func (n *Notification) HandleEvent(evt Event, _ *Hub, _ *Bus, _ *RenderQueue, _ *Context) bool {
	switch e := evt.(type) {
	case TapEvent:
		return n.rect.Includes(e.Center)
	case SwipeEvent:
		return n.rect.Includes(e.Start)
	case HoldFingerEvent:
		return n.rect.Includes(e.Position)
	case FingerEvent:
		return n.rect.Includes(e.Position)
	}
	return false
}

func (n *Notification) Render(fb Framebuffer, _ Rectangle, fonts *Fonts) {
	fb.DrawRoundedRectangle(n.rect, BorderRadius, Black)
	fb.DrawRoundedRectangle(n.rect.Inset(ThicknessLarge), BorderRadius-ThicknessLarge, White)

	plan := fonts.Plan(FontNormal, n.text, n.maxWidth)
	dx := (n.rect.Width() - plan.Width) / 2
	fonts.Render(fb.Image(), Black, plan, Pt(n.rect.Min.X+dx, fonts.Baseline(FontNormal, n.rect)))
}

// Resize keeps the notification in its slot on the new screen.
func (n *Notification) Resize(_ Rectangle, _ *Hub, _ *RenderQueue, ctx *Context) {
	padding := ctx.Fonts.Em(FontNormal)
	n.rect = n.place(n.rect.Width(), n.rect.Height(), padding, ctx.Display.Width)
}

func (n *Notification) ViewID() (ViewID, bool) { return n.viewID, true }
