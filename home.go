package inkwell

import "fmt"

// homeButton describes one button of the home screen grid.
type homeButton struct {
	name  string
	event Event
}

var homeButtons = []homeButton{
	{"Notify", NotifyEvent{Text: "Hello from inkwell"}},
	{"Refresh", UpdateEvent{Mode: UpdateFull}},
	{"Light", ToggleFrontlightEvent{}},
	{"Screenshot", ScreenshotEvent{Label: "home"}},
	{"Wifi", SelectEvent{Entry: Entry(EntryToggleWifi)}},
	{"About", SelectEvent{Entry: Entry(EntryAbout)}},
}

const homeColumns = 2

// Home is the top-level view. It paints a white backdrop under its
// children: the top bar, a separator, a status line and a grid of buttons.
// Menus, dialogs and notifications are stacked on top of them.
type Home struct {
	Base
	topBar    *TopBar
	separator *Filler
	status    *Label
	buttons   []*RoundedButton

	// Set when the home screen comes back on top, cleared once it has been
	// repainted.
	transitioning bool
}

// NewHome lays out the home screen in rect.
func NewHome(rect Rectangle, ctx *Context) *Home {
	h := &Home{Base: NewBase(ctx.IDs.Next(), rect)}
	top, sep, status, grid := homeLayout(rect)

	h.topBar = NewTopBar(top, "inkwell", ctx)
	h.separator = NewFiller(ctx.IDs.Next(), sep, Separator)
	h.status = NewLabel(ctx.IDs.Next(), status, statusText(ctx))
	h.AddChild(h.topBar)
	h.AddChild(h.separator)
	h.AddChild(h.status)
	for i, b := range homeButtons {
		btn := NewRoundedButton(ctx.IDs.Next(), grid[i], b.name, b.event)
		h.buttons = append(h.buttons, btn)
		h.AddChild(btn)
	}
	return h
}

func homeLayout(rect Rectangle) (top, sep, status Rectangle, grid []Rectangle) {
	top = Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+BarHeight)
	sep = Rect(rect.Min.X, top.Max.Y, rect.Max.X, top.Max.Y+ThicknessMedium)
	status = Rect(rect.Min.X, sep.Max.Y, rect.Max.X, sep.Max.Y+SmallBarHeight)

	gap := BarHeight / 2
	w := (rect.Width() - (homeColumns+1)*gap) / homeColumns
	y0 := status.Max.Y + gap
	for i := range homeButtons {
		col, row := i%homeColumns, i/homeColumns
		x := rect.Min.X + gap + col*(w+gap)
		y := y0 + row*(BarHeight+gap)
		grid = append(grid, Rect(x, y, x+w, y+BarHeight))
	}
	return top, sep, status, grid
}

func statusText(ctx *Context) string {
	wifi := "off"
	switch {
	case ctx.Online:
		wifi = "online"
	case ctx.Settings.Wifi:
		wifi = "connecting"
	}
	light := "off"
	if ctx.Settings.Frontlight.Enabled {
		light = fmt.Sprintf("%.0f%%", ctx.Frontlight.Levels().Intensity)
	}
	return fmt.Sprintf("Wifi: %s  Light: %s", wifi, light)
}

// TopBar returns the top bar.
func (h *Home) TopBar() *TopBar { return h.topBar }

// Status returns the status line.
func (h *Home) Status() *Label { return h.status }

// Buttons returns the button grid in layout order.
func (h *Home) Buttons() []*RoundedButton { return h.buttons }

func (h *Home) HandleEvent(evt Event, _ *Hub, _ *Bus, rq *RenderQueue, ctx *Context) bool {
	switch evt.(type) {
	case ReseedEvent:
		h.transitioning = true
		rq.Add(NewRenderData(h.id, h.rect, UpdateGui))
		return true
	case NetUpEvent, SetWifiEvent, ToggleFrontlightEvent:
		h.status.SetText(statusText(ctx), rq)
	}
	return false
}

// Render paints the backdrop; children paint over it.
func (h *Home) Render(fb Framebuffer, rect Rectangle, _ *Fonts) {
	h.transitioning = false
	if r, ok := rect.Intersection(h.rect); ok {
		fb.DrawRectangle(r, White)
	}
}

// The backdrop can repaint any part of the screen.
func (h *Home) RenderRect(rect Rectangle) Rectangle {
	if r, ok := rect.Intersection(h.rect); ok {
		return r
	}
	return h.rect
}

// Resize relays the screen out in rect. Menus and dialogs are dropped since
// their anchors no longer exist; notifications keep their slot.
func (h *Home) Resize(rect Rectangle, hub *Hub, rq *RenderQueue, ctx *Context) {
	h.rect = rect
	top, sep, status, grid := homeLayout(rect)
	h.topBar.Resize(top, hub, rq, ctx)
	h.separator.SetRect(sep)
	h.status.SetRect(status)
	for i, b := range h.buttons {
		b.SetRect(grid[i])
	}
	h.RetainChildren(func(c View) bool {
		switch c.(type) {
		case *Menu, *Dialog:
			return false
		}
		return true
	})
	for _, c := range h.Children() {
		if n, ok := c.(*Notification); ok {
			n.Resize(n.Rect(), hub, rq, ctx)
		}
	}
}

// Transitioning reports whether the home screen is waiting for its repaint
// after coming back on top.
func (h *Home) Transitioning() bool { return h.transitioning }

// Input aimed at a screen that is still being restored is dropped.
func (h *Home) MightSkip(evt Event) bool {
	if !h.transitioning {
		return false
	}
	switch evt.(type) {
	case FingerEvent, TapEvent, HoldFingerEvent, SwipeEvent:
		return true
	}
	return false
}

func (h *Home) IsBackground() bool     { return true }
func (h *Home) ViewID() (ViewID, bool) { return ViewHome, true }
