package inkwell

// MenuItem describes one entry of a Menu.
type MenuItem struct {
	Label   string
	Entry   EntryID
	Checked bool
}

// Menu is a contextual list of commands shown next to the rectangle that
// opened it. Choosing an entry sends a SelectEvent up the bus and closes the
// menu; tapping outside only closes it.
type Menu struct {
	Base
	viewID ViewID
}

// NewMenu builds a menu for items, placed below anchor when it fits and above
// it otherwise, and queues its first paint.
func NewMenu(viewID ViewID, anchor Rectangle, items []MenuItem, rq *RenderQueue, ctx *Context) *Menu {
	padding := ctx.Fonts.Em(FontNormal)
	w := 0
	for _, it := range items {
		w = max(w, ctx.Fonts.Plan(FontNormal, it.Label, 0).Width)
	}
	w += 4*padding + 2*ThicknessLarge
	h := len(items)*SmallBarHeight + 2*ThicknessLarge

	screen := ctx.Display.Rect()
	x := min(max(anchor.Min.X, screen.Min.X), screen.Max.X-w)
	y := anchor.Max.Y
	if y+h > screen.Max.Y {
		y = max(anchor.Min.Y-h, screen.Min.Y)
	}

	m := &Menu{Base: NewBase(ctx.IDs.Next(), Rect(x, y, x+w, y+h)), viewID: viewID}
	m.layout(items, ctx.IDs)
	rq.Add(NewRenderData(m.id, m.rect, UpdateGui))
	return m
}

func (m *Menu) layout(items []MenuItem, ids *IDFeeder) {
	inner := m.rect.Inset(ThicknessLarge)
	for i, it := range items {
		y := inner.Min.Y + i*SmallBarHeight
		r := Rect(inner.Min.X, y, inner.Max.X, y+SmallBarHeight)
		m.AddChild(&MenuEntry{Base: NewBase(ids.Next(), r), item: it})
	}
}

func (m *Menu) HandleEvent(evt Event, _ *Hub, bus *Bus, _ *RenderQueue, _ *Context) bool {
	switch e := evt.(type) {
	case SelectEvent:
		bus.Push(CloseEvent{ViewID: m.viewID})
		return false
	case TapEvent:
		if !m.rect.Includes(e.Center) {
			bus.Push(CloseEvent{ViewID: m.viewID})
		}
		return true
	case HoldFingerEvent:
		return m.rect.Includes(e.Position)
	case SwipeEvent:
		return m.rect.Includes(e.Start)
	case FingerEvent:
		return m.rect.Includes(e.Position)
	}
	return false
}

func (m *Menu) Render(fb Framebuffer, _ Rectangle, _ *Fonts) {
	fb.DrawRectangle(m.rect, White)
	fb.DrawBorder(m.rect, ThicknessLarge, Black)
}

func (m *Menu) IsBackground() bool     { return true }
func (m *Menu) ViewID() (ViewID, bool) { return m.viewID, true }

// --- MenuEntry ---

// MenuEntry is one row of a Menu.
type MenuEntry struct {
	Base
	item   MenuItem
	active bool
}

// Item returns the entry description.
func (e *MenuEntry) Item() MenuItem { return e.item }

func (e *MenuEntry) HandleEvent(evt Event, _ *Hub, bus *Bus, rq *RenderQueue, _ *Context) bool {
	switch ev := evt.(type) {
	case FingerEvent:
		switch {
		case ev.Status == FingerDown && e.rect.Includes(ev.Position):
			e.active = true
			rq.Add(NewRenderData(e.id, e.rect, UpdateFast))
			return true
		case ev.Status == FingerUp && e.active:
			e.active = false
			rq.Add(NewRenderData(e.id, e.rect, UpdateGui))
			return true
		}
	case TapEvent:
		if e.rect.Includes(ev.Center) {
			bus.Push(SelectEvent{Entry: e.item.Entry})
			return true
		}
	}
	return false
}

func (e *MenuEntry) Render(fb Framebuffer, _ Rectangle, fonts *Fonts) {
	bg, fg := White, Black
	if e.active {
		bg, fg = Black, White
	}
	fb.DrawRectangle(e.rect, bg)

	padding := fonts.Em(FontNormal)
	label := e.item.Label
	if e.item.Checked {
		label = "* " + label
	}
	plan := fonts.Plan(FontNormal, label, e.rect.Width()-2*padding)
	fonts.Render(fb.Image(), fg, plan, Pt(e.rect.Min.X+padding, fonts.Baseline(FontNormal, e.rect)))
}

// --- Menus ---

// ClockMenuItems lists the entries of the menu opened from the clock.
func ClockMenuItems() []MenuItem {
	return []MenuItem{
		{Label: "Refresh screen", Entry: Entry(EntryRefresh)},
		{Label: "Take screenshot", Entry: Entry(EntryTakeScreenshot)},
	}
}

// MainMenuItems lists the entries of the main menu, reflecting the current
// state of the display and the radio.
func MainMenuItems(ctx *Context) []MenuItem {
	rotation := ctx.Display.Rotation
	return []MenuItem{
		{Label: "Rotate", Entry: Rotate((rotation + 1) % 4)},
		{Label: "Inverted", Entry: Entry(EntryToggleInverted), Checked: ctx.FB.Inverted()},
		{Label: "Monochrome", Entry: Entry(EntryToggleMonochrome), Checked: ctx.FB.Monochrome()},
		{Label: "Wifi", Entry: Entry(EntryToggleWifi), Checked: ctx.Settings.Wifi},
		{Label: "Frontlight", Entry: Entry(EntryToggleFrontlight), Checked: ctx.Settings.Frontlight.Enabled},
		{Label: "About", Entry: Entry(EntryAbout)},
		{Label: "Quit", Entry: Entry(EntryQuit)},
	}
}
