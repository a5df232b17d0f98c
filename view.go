package inkwell

import "sync/atomic"

// --- Identity ---

// ID identifies a widget instance. IDs are issued by an IDFeeder and are
// never reused during the life of a process.
type ID uint64

// IDFeeder hands out increasing widget IDs starting at 1. It is safe for
// concurrent use; the application Context owns one.
type IDFeeder struct {
	last atomic.Uint64
}

// NewIDFeeder returns a feeder whose first ID is 1.
func NewIDFeeder() *IDFeeder {
	return &IDFeeder{}
}

// Next returns a fresh ID.
func (f *IDFeeder) Next() ID {
	return ID(f.last.Add(1))
}

// --- View ---

// View is a node of the widget tree. A view owns its children; children are
// kept in non-decreasing z-order, so the last child is drawn on top and
// receives events first. There are no parent pointers.
//
// Concrete widgets embed Base, which supplies the tree storage and the
// default hooks, and override HandleEvent and Render.
type View interface {
	// HandleEvent offers evt to the view's own logic (children are not
	// visited; see the package-level HandleEvent). It returns true when
	// the event is consumed.
	HandleEvent(evt Event, hub *Hub, bus *Bus, rq *RenderQueue, ctx *Context) bool
	// Render paints the part of the view that lies in rect.
	Render(fb Framebuffer, rect Rectangle, fonts *Fonts)

	Rect() Rectangle
	SetRect(rect Rectangle)
	ID() ID

	Len() int
	ChildAt(i int) View
	Children() []View
	AddChild(child View)
	InsertChild(i int, child View)
	RemoveChildAt(i int) View
	RetainChildren(keep func(View) bool)

	// RenderRect returns the region that will actually change when the
	// view paints rect. Most views can only repaint themselves whole.
	RenderRect(rect Rectangle) Rectangle
	// Resize moves the view to rect, repositioning children as needed.
	Resize(rect Rectangle, hub *Hub, rq *RenderQueue, ctx *Context)
	// MightSkip reports whether the view's whole subtree should ignore evt.
	MightSkip(evt Event) bool
	// MightRotate reports whether the screen may be rotated while the
	// view is on top.
	MightRotate() bool
	// IsBackground marks a container that paints a backdrop beneath its
	// children and therefore renders like a leaf.
	IsBackground() bool
	// ViewID returns the well-known identity of the view, if any.
	ViewID() (ViewID, bool)
}

// Base holds the state every widget shares and implements the default hooks
// of View. It does not handle events and paints nothing.
type Base struct {
	id       ID
	rect     Rectangle
	children []View
}

// NewBase returns a Base with the given identity and geometry.
func NewBase(id ID, rect Rectangle) Base {
	return Base{id: id, rect: rect}
}

func (b *Base) HandleEvent(Event, *Hub, *Bus, *RenderQueue, *Context) bool { return false }
func (b *Base) Render(Framebuffer, Rectangle, *Fonts)                     {}

func (b *Base) Rect() Rectangle        { return b.rect }
func (b *Base) SetRect(rect Rectangle) { b.rect = rect }
func (b *Base) ID() ID                 { return b.id }

func (b *Base) RenderRect(Rectangle) Rectangle { return b.rect }

func (b *Base) Resize(rect Rectangle, _ *Hub, _ *RenderQueue, _ *Context) {
	b.rect = rect
}

func (b *Base) MightSkip(Event) bool   { return false }
func (b *Base) MightRotate() bool      { return true }
func (b *Base) IsBackground() bool     { return false }
func (b *Base) ViewID() (ViewID, bool) { return ViewNone, false }

// --- Tree manipulation ---

// Len returns the number of children.
func (b *Base) Len() int { return len(b.children) }

// ChildAt returns the child at index i.
func (b *Base) ChildAt(i int) View { return b.children[i] }

// Children returns the child list. The returned slice must not be mutated by
// the caller.
func (b *Base) Children() []View { return b.children }

// AddChild appends child on top of its siblings.
// Panics if child is nil.
func (b *Base) AddChild(child View) {
	if child == nil {
		panic("inkwell: cannot add nil child")
	}
	b.children = append(b.children, child)
}

// InsertChild inserts child at index i.
func (b *Base) InsertChild(i int, child View) {
	if child == nil {
		panic("inkwell: cannot add nil child")
	}
	if i < 0 || i > len(b.children) {
		panic("inkwell: child index out of range")
	}
	b.children = append(b.children, nil)
	copy(b.children[i+1:], b.children[i:])
	b.children[i] = child
}

// RemoveChildAt removes and returns the child at index i.
func (b *Base) RemoveChildAt(i int) View {
	if i < 0 || i >= len(b.children) {
		panic("inkwell: child index out of range")
	}
	child := b.children[i]
	copy(b.children[i:], b.children[i+1:])
	b.children[len(b.children)-1] = nil
	b.children = b.children[:len(b.children)-1]
	return child
}

// RetainChildren removes every child for which keep returns false, preserving
// the order of the others.
func (b *Base) RetainChildren(keep func(View) bool) {
	kept := b.children[:0]
	for _, c := range b.children {
		if keep(c) {
			kept = append(kept, c)
		}
	}
	for i := len(kept); i < len(b.children); i++ {
		b.children[i] = nil
	}
	b.children = kept
}

// --- Helpers ---

// Walk calls fn for view and its descendants in depth-first, bottom-to-top
// order. Returning false from fn prunes the subtree below that view.
func Walk(view View, fn func(View) bool) {
	if !fn(view) {
		return
	}
	for _, c := range view.Children() {
		Walk(c, fn)
	}
}

// Locate returns the index of the topmost direct child of view whose dynamic
// type is T.
func Locate[T View](view View) (int, bool) {
	for i := view.Len() - 1; i >= 0; i-- {
		if _, ok := view.ChildAt(i).(T); ok {
			return i, true
		}
	}
	return -1, false
}

// LocateByID returns the index of the topmost direct child of view carrying
// the well-known identity id.
func LocateByID(view View, id ViewID) (int, bool) {
	for i := view.Len() - 1; i >= 0; i-- {
		if vid, ok := view.ChildAt(i).ViewID(); ok && vid == id {
			return i, true
		}
	}
	return -1, false
}

// FindByID returns the first view in the subtree rooted at view whose widget
// ID is id.
func FindByID(view View, id ID) (View, bool) {
	var found View
	Walk(view, func(v View) bool {
		if found != nil {
			return false
		}
		if v.ID() == id {
			found = v
			return false
		}
		return true
	})
	return found, found != nil
}

// OverlappingRectangle returns the bounding box of view and all of its
// descendants. Popups may extend beyond their parent, so this is the region
// to expose when view is removed.
func OverlappingRectangle(view View) Rectangle {
	r := view.Rect()
	for _, c := range view.Children() {
		r.Absorb(OverlappingRectangle(c))
	}
	return r
}

// TransferNotifications moves the notifications shown on top of from to the
// top of to and queues their repaint.
func TransferNotifications(from, to View, rq *RenderQueue) {
	var moved []View
	from.RetainChildren(func(c View) bool {
		if _, ok := c.(*Notification); ok {
			moved = append(moved, c)
			return false
		}
		return true
	})
	for _, n := range moved {
		rq.Add(NewRenderData(n.ID(), n.Rect(), UpdateGui))
		to.AddChild(n)
	}
}
