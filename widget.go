package inkwell

// Layout metrics shared by the widgets, in pixels.
const (
	BarHeight       = 48
	SmallBarHeight  = 40
	ThicknessSmall  = 1
	ThicknessMedium = 2
	ThicknessLarge  = 3
	BorderRadius    = 8
)

// --- Filler ---

// Filler paints its rectangle with a solid gray. As a background layer it
// paints beneath its children.
type Filler struct {
	Base
	gray       uint8
	background bool
}

// NewFiller returns a leaf filling rect with gray.
func NewFiller(id ID, rect Rectangle, gray uint8) *Filler {
	return &Filler{Base: NewBase(id, rect), gray: gray}
}

// NewBackdrop returns a Filler meant to hold children painted over it.
func NewBackdrop(id ID, rect Rectangle, gray uint8) *Filler {
	return &Filler{Base: NewBase(id, rect), gray: gray, background: true}
}

func (f *Filler) Render(fb Framebuffer, rect Rectangle, _ *Fonts) {
	if r, ok := rect.Intersection(f.rect); ok {
		fb.DrawRectangle(r, f.gray)
	}
}

// A filler can repaint any part of itself.
func (f *Filler) RenderRect(rect Rectangle) Rectangle {
	if r, ok := rect.Intersection(f.rect); ok {
		return r
	}
	return f.rect
}

func (f *Filler) IsBackground() bool { return f.background }

// --- Label ---

// Label shows one line of centered text. When Event is set, tapping the label
// pushes it on the bus.
type Label struct {
	Base
	text  string
	kind  FontKind
	Event Event
}

// NewLabel returns a label showing text in the normal face.
func NewLabel(id ID, rect Rectangle, text string) *Label {
	return &Label{Base: NewBase(id, rect), text: text}
}

// Text returns the label text.
func (l *Label) Text() string { return l.text }

// SetText changes the text and queues a repaint when it differs.
func (l *Label) SetText(text string, rq *RenderQueue) {
	if l.text == text {
		return
	}
	l.text = text
	rq.Add(NewRenderData(l.id, l.rect, UpdateGui))
}

func (l *Label) HandleEvent(evt Event, _ *Hub, bus *Bus, _ *RenderQueue, _ *Context) bool {
	tap, ok := evt.(TapEvent)
	if !ok || l.Event == nil || !l.rect.Includes(tap.Center) {
		return false
	}
	bus.Push(l.Event)
	return true
}

func (l *Label) Render(fb Framebuffer, _ Rectangle, fonts *Fonts) {
	fb.DrawRectangle(l.rect, White)
	plan := fonts.Plan(l.kind, l.text, l.rect.Width()-2*ThicknessLarge)
	dx := (l.rect.Width() - plan.Width) / 2
	fonts.Render(fb.Image(), Black, plan, Pt(l.rect.Min.X+dx, fonts.Baseline(l.kind, l.rect)))
}

// --- RoundedButton ---

// RoundedButton is a pill-shaped button with a short text. It inverts while
// pressed and pushes its event on the bus when tapped.
type RoundedButton struct {
	Base
	name   string
	event  Event
	active bool
}

// NewRoundedButton returns a button labelled name that emits event.
func NewRoundedButton(id ID, rect Rectangle, name string, event Event) *RoundedButton {
	return &RoundedButton{Base: NewBase(id, rect), name: name, event: event}
}

// Active reports whether the button is pressed.
func (b *RoundedButton) Active() bool { return b.active }

func (b *RoundedButton) HandleEvent(evt Event, _ *Hub, bus *Bus, rq *RenderQueue, _ *Context) bool {
	switch e := evt.(type) {
	case FingerEvent:
		switch {
		case e.Status == FingerDown && b.rect.Includes(e.Position):
			b.active = true
			rq.Add(NewRenderData(b.id, b.rect, UpdateFast))
			return true
		case e.Status == FingerUp && b.active:
			b.active = false
			rq.Add(NewRenderData(b.id, b.rect, UpdateGui))
			return true
		}
	case TapEvent:
		if b.rect.Includes(e.Center) {
			bus.Push(b.event)
			return true
		}
	}
	return false
}

func (b *RoundedButton) Render(fb Framebuffer, _ Rectangle, fonts *Fonts) {
	bg, fg := White, Black
	if b.active {
		bg, fg = Black, White
	}
	radius := b.rect.Height() / 2
	fb.DrawRoundedRectangle(b.rect, radius, fg)
	fb.DrawRoundedRectangle(b.rect.Inset(ThicknessMedium), max(radius-ThicknessMedium, 0), bg)

	plan := fonts.Plan(FontNormal, b.name, b.rect.Width()-radius)
	dx := (b.rect.Width() - plan.Width) / 2
	fonts.Render(fb.Image(), fg, plan, Pt(b.rect.Min.X+dx, fonts.Baseline(FontNormal, b.rect)))
}
