package inkwell

// TopBar is the strip at the top of the home screen: a menu button, the
// title, a frontlight toggle and the clock.
type TopBar struct {
	Base
	menu  *Label
	title *Label
	light *Label
	clock *Clock
}

// NewTopBar lays out a top bar in rect.
func NewTopBar(rect Rectangle, title string, ctx *Context) *TopBar {
	t := &TopBar{Base: NewBase(ctx.IDs.Next(), rect)}
	t.menu = NewLabel(ctx.IDs.Next(), Rectangle{}, "Menu")
	t.title = NewLabel(ctx.IDs.Next(), Rectangle{}, title)
	t.light = NewLabel(ctx.IDs.Next(), Rectangle{}, "Light")
	t.light.Event = ToggleFrontlightEvent{}
	t.clock = NewClock(ctx.IDs.Next(), rect, ctx.Fonts, ctx.Now)
	t.layout(rect)

	t.AddChild(t.menu)
	t.AddChild(t.title)
	t.AddChild(t.light)
	t.AddChild(t.clock)
	return t
}

func (t *TopBar) layout(rect Rectangle) {
	side := rect.Height() * 2
	clockWidth := t.clock.Rect().Width()

	t.menu.SetRect(Rect(rect.Min.X, rect.Min.Y, rect.Min.X+side, rect.Max.Y))
	t.menu.Event = ToggleNearEvent{ViewID: ViewMainMenu, Rect: t.menu.Rect()}
	t.clock.SetRect(Rect(rect.Max.X-clockWidth, rect.Min.Y, rect.Max.X, rect.Max.Y))
	t.light.SetRect(Rect(rect.Max.X-clockWidth-side, rect.Min.Y, rect.Max.X-clockWidth, rect.Max.Y))
	t.title.SetRect(Rect(rect.Min.X+side, rect.Min.Y, rect.Max.X-clockWidth-side, rect.Max.Y))
}

// Title returns the title label.
func (t *TopBar) Title() *Label { return t.title }

// Clock returns the clock.
func (t *TopBar) Clock() *Clock { return t.clock }

func (t *TopBar) Resize(rect Rectangle, _ *Hub, _ *RenderQueue, _ *Context) {
	t.rect = rect
	t.layout(rect)
}

func (t *TopBar) ViewID() (ViewID, bool) { return ViewTopBar, true }
