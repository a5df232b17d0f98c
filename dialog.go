package inkwell

// Dialog is a modal box with a message and two buttons. Either button closes
// it; the ValidateEvent or CancelEvent they emit is consumed here.
type Dialog struct {
	Base
	viewID ViewID
}

// NewDialog centers a dialog showing text on the screen and queues its first
// paint.
func NewDialog(viewID ViewID, text string, rq *RenderQueue, ctx *Context) *Dialog {
	fonts := ctx.Fonts
	padding := fonts.Em(FontNormal)
	screen := ctx.Display.Rect()

	plan := fonts.Plan(FontNormal, text, screen.Width()-6*padding)
	w := max(plan.Width+4*padding, 2*(6*padding)+3*padding)
	h := 3*padding + BarHeight + SmallBarHeight + 2*padding
	c := screen.Center()
	rect := Rect(c.X-w/2, c.Y-h/2, c.X-w/2+w, c.Y-h/2+h)

	d := &Dialog{Base: NewBase(ctx.IDs.Next(), rect), viewID: viewID}

	msg := Rect(rect.Min.X+padding, rect.Min.Y+padding, rect.Max.X-padding, rect.Min.Y+padding+BarHeight)
	d.AddChild(NewLabel(ctx.IDs.Next(), msg, text))

	bw := (rect.Width() - 3*padding) / 2
	by := rect.Max.Y - padding - SmallBarHeight
	cancel := Rect(rect.Min.X+padding, by, rect.Min.X+padding+bw, by+SmallBarHeight)
	ok := Rect(rect.Max.X-padding-bw, by, rect.Max.X-padding, by+SmallBarHeight)
	d.AddChild(NewRoundedButton(ctx.IDs.Next(), cancel, "Cancel", CancelEvent{}))
	d.AddChild(NewRoundedButton(ctx.IDs.Next(), ok, "OK", ValidateEvent{}))

	rq.Add(NewRenderData(d.id, d.rect, UpdateGui))
	return d
}

func (d *Dialog) HandleEvent(evt Event, _ *Hub, bus *Bus, _ *RenderQueue, _ *Context) bool {
	switch e := evt.(type) {
	case ValidateEvent, CancelEvent:
		bus.Push(CloseEvent{ViewID: d.viewID})
		return true
	case TapEvent, HoldFingerEvent, SwipeEvent:
		return true
	case FingerEvent:
		return d.rect.Includes(e.Position)
	}
	return false
}

func (d *Dialog) Render(fb Framebuffer, _ Rectangle, _ *Fonts) {
	fb.DrawRoundedRectangle(d.rect, BorderRadius, Black)
	fb.DrawRoundedRectangle(d.rect.Inset(ThicknessLarge), BorderRadius-ThicknessLarge, White)
}

func (d *Dialog) IsBackground() bool     { return true }
func (d *Dialog) ViewID() (ViewID, bool) { return d.viewID, true }
