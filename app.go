package inkwell

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// Version is reported by the about dialog.
const Version = "0.3.0"

const inboxSize = 64

// Display describes the current screen geometry.
type Display struct {
	Width, Height int
	Rotation      int
}

// Rect returns the screen rectangle.
func (d Display) Rect() Rectangle {
	return RectFromSize(d.Width, d.Height)
}

// Context is the state shared by every view. It is owned by the UI loop and
// must not be touched from other goroutines.
type Context struct {
	FB                Framebuffer
	Fonts             *Fonts
	Settings          Settings
	Display           Display
	Frontlight        Frontlight
	NotificationIndex uint8
	Online            bool
	IDs               *IDFeeder
	Logger            *slog.Logger
	Metrics           *Metrics
	// Now is the clock source of the widgets; nil means time.Now.
	Now func() time.Time
}

// NewContext applies the display and frontlight settings to fb and returns a
// context for them. logger and metrics may be nil.
func NewContext(fb Framebuffer, settings Settings, logger *slog.Logger, metrics *Metrics) *Context {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Context{
		FB:         fb,
		Fonts:      NewFonts(),
		Settings:   settings,
		Frontlight: &LightLevels{},
		IDs:        NewIDFeeder(),
		Logger:     logger,
		Metrics:    metrics,
	}

	if err := fb.SetRotation(settings.Display.Rotation); err != nil {
		logger.Warn("can't apply rotation", "rotation", settings.Display.Rotation, "error", err)
	}
	if fb.Inverted() != settings.Display.Inverted {
		fb.ToggleInverted()
	}
	if fb.Monochrome() != settings.Display.Monochrome {
		fb.ToggleMonochrome()
	}
	c.syncDisplay()

	if settings.Frontlight.Enabled {
		c.Frontlight.SetIntensity(settings.Frontlight.Levels.Intensity)
		c.Frontlight.SetWarmth(settings.Frontlight.Levels.Warmth)
	}
	return c
}

func (c *Context) syncDisplay() {
	r := c.FB.Rect()
	c.Display = Display{Width: r.Width(), Height: r.Height(), Rotation: c.FB.Rotation()}
	c.Settings.Display.Rotation = c.Display.Rotation
}

func (c *Context) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

// App runs the UI loop: it owns the top-level view and its history, the
// render queue, the set of in-flight refreshes and the root bus.
type App struct {
	ctx      *Context
	view     View
	history  []View
	rq       RenderQueue
	updating Updating
	bus      Bus

	inbox   chan Event
	hub     *Hub
	pending []Event
	input chan FingerEvent

	ramp    *FrontlightRamp
	debug   bool
	started time.Time
	stopped chan struct{}
}

// NewApp creates the application with a Home view covering the screen and
// queues its first full paint.
func NewApp(ctx *Context) *App {
	inbox := make(chan Event, inboxSize)
	stopped := make(chan struct{})
	a := &App{
		ctx:      ctx,
		updating: make(Updating),
		inbox:    inbox,
		hub:      NewHub(inbox, stopped),
		input:    make(chan FingerEvent, inboxSize),
		started:  time.Now(),
		stopped:  stopped,
	}
	a.view = NewHome(ctx.FB.Rect(), ctx)
	a.rq.Add(NewRenderData(a.view.ID(), a.view.Rect(), UpdateFull))
	return a
}

// Hub returns the inbound event channel. Sends on it give up once Run has
// returned.
func (a *App) Hub() *Hub { return a.hub }

// Input returns the channel device input is posted on. Finger events go
// through gesture recognition before reaching the loop.
func (a *App) Input() chan<- FingerEvent { return a.input }

// Context returns the shared view context.
func (a *App) Context() *Context { return a.ctx }

// View returns the current top-level view.
func (a *App) View() View { return a.view }

// Updating returns the refreshes currently in flight.
func (a *App) Updating() Updating { return a.updating }

// Uptime is the time base of FingerEvent.Time.
func (a *App) Uptime() time.Duration { return time.Since(a.started) }

// SetDebugMode enables per-iteration statistics at debug level.
func (a *App) SetDebugMode(enabled bool) { a.debug = enabled }

// Settings returns the settings as changed while running, with the current
// frontlight levels folded in.
func (a *App) Settings() Settings {
	s := a.ctx.Settings
	if s.Frontlight.Enabled {
		s.Frontlight.Levels = a.ctx.Frontlight.Levels()
	}
	s.Display.Inverted = a.ctx.FB.Inverted()
	s.Display.Monochrome = a.ctx.FB.Monochrome()
	return s
}

// Run drives the application until ctx is cancelled or a quit is selected.
// It must be called at most once.
// The gesture recognizer and the clock ticker run on their own goroutines
// and only talk to the loop through the hub.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return RunGestures(gctx, a.input, a.hub, a.ctx.Settings.Gestures, a.Uptime)
	})
	g.Go(func() error {
		return a.tickClock(gctx)
	})
	g.Go(func() error {
		defer cancel()
		for a.Step(gctx) {
		}
		return nil
	})

	err := g.Wait()
	close(a.stopped)
	WaitAll(a.ctx.FB, a.updating, a.ctx.logger())
	return err
}

func (a *App) tickClock(ctx context.Context) error {
	ticker := time.NewTicker(a.ctx.Settings.Timing.Clock.Duration)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			a.hub.SendContext(ctx, ClockTickEvent{})
		}
	}
}

// Step runs one loop iteration: it routes the events the loop queued for
// itself, then inbound events as long as they keep arriving within the poll
// interval, refreshes the screen and queues the events left on the root bus
// for the next iteration. It returns false when the application should stop.
func (a *App) Step(ctx context.Context) bool {
	poll := a.ctx.Settings.Timing.Poll.Duration
	timer := time.NewTimer(poll)
	defer timer.Stop()

	var stats frameStats
	t0 := time.Now()

	for i := 0; i < len(a.pending); i++ {
		stats.events++
		if a.route(a.pending[i]) {
			return false
		}
	}
	a.pending = a.pending[:0]

recv:
	for {
		select {
		case <-ctx.Done():
			return false
		case evt := <-a.inbox:
			stats.events++
			if a.route(evt) {
				return false
			}
			timer.Reset(poll)
		case <-timer.C:
			break recv
		}
	}
	stats.routeTime = time.Since(t0)

	stats.queued = a.rq.Len()
	t0 = time.Now()
	ProcessRenderQueue(a.view, &a.rq, a.ctx, a.updating)
	stats.renderTime = time.Since(t0)
	stats.inFlight = len(a.updating)
	stats.busEvents = len(a.bus)
	a.debugLog(stats)

	a.pending = append(a.pending, a.bus...)
	a.bus = a.bus[:0]
	return true
}

// --- Routing ---

// route handles evt at the application level or delivers it to the view
// tree. It returns true when the application should quit.
func (a *App) route(evt Event) bool {
	switch e := evt.(type) {
	case CloseEvent:
		a.close(e.ViewID)
	case NotifyEvent:
		a.notify(ViewMessageNotif, e.Text)
	case ToggleNearEvent:
		a.toggleMenu(e.ViewID, e.Rect)
	case ShowEvent:
		a.show(e.ViewID)
	case SelectEvent:
		return a.selectEntry(e)
	case ScreenshotEvent:
		a.screenshot(e.Label)
	case SetWifiEvent:
		a.setWifi(e.Enable)
		a.dispatch(evt)
	case NetUpEvent:
		a.ctx.Online = true
		a.dispatchHome(evt)
	case RotateScreenEvent:
		a.pending = append(a.pending, SelectEvent{Entry: Rotate(e.Rotation)})
	case ToggleFrontlightEvent:
		a.toggleFrontlight()
		a.dispatch(evt)
	case FrontlightTickEvent:
		a.advanceRamp()
	case UpdateEvent:
		a.rq.Add(NewRenderData(a.view.ID(), a.ctx.FB.Rect(), e.Mode))
	case BackEvent:
		a.back()
	default:
		a.dispatch(evt)
	}
	return false
}

func (a *App) dispatch(evt Event) {
	a.ctx.Metrics.dispatched()
	HandleEvent(a.view, evt, a.hub, &a.bus, &a.rq, a.ctx)
}

// dispatchHome delivers evt to the home view even when another view is on
// top of it; in that case the side effects of the delivery are discarded.
func (a *App) dispatchHome(evt Event) {
	if _, ok := a.view.(*Home); ok || len(a.history) == 0 {
		a.dispatch(evt)
		return
	}
	var bus Bus
	var rq RenderQueue
	a.ctx.Metrics.dispatched()
	HandleEvent(a.history[0], evt, nil, &bus, &rq, a.ctx)
}

func (a *App) selectEntry(evt SelectEvent) bool {
	fb := a.ctx.FB
	switch evt.Entry.Kind {
	case EntryRotate:
		a.rotate(evt.Entry.Value)
	case EntryToggleInverted:
		fb.ToggleInverted()
		a.rq.Add(NewRenderData(a.view.ID(), fb.Rect(), UpdateGui))
	case EntryToggleMonochrome:
		fb.ToggleMonochrome()
		a.rq.Add(NewRenderData(a.view.ID(), fb.Rect(), UpdateGui))
	case EntryTakeScreenshot:
		a.screenshot("")
	case EntryToggleWifi:
		a.route(SetWifiEvent{Enable: !a.ctx.Settings.Wifi})
	case EntryToggleFrontlight:
		a.route(ToggleFrontlightEvent{})
	case EntryAbout:
		a.show(ViewAboutDialog)
	case EntryRefresh:
		a.rq.Add(NewRenderData(a.view.ID(), fb.Rect(), UpdateFull))
	case EntryQuit:
		return true
	default:
		a.dispatch(evt)
	}
	return false
}

// rotate waits for every in-flight refresh, since their regions are
// meaningless in the new orientation, then relays the view out.
func (a *App) rotate(n int) {
	if n == a.ctx.Display.Rotation || !a.view.MightRotate() {
		return
	}
	log := a.ctx.logger()
	WaitAll(a.ctx.FB, a.updating, log)
	if err := a.ctx.FB.SetRotation(n); err != nil {
		log.Warn("can't rotate", "rotation", n, "error", err)
		return
	}
	prev := a.ctx.Display
	a.ctx.syncDisplay()
	if a.ctx.Display.Width != prev.Width || a.ctx.Display.Height != prev.Height {
		a.view.Resize(a.ctx.FB.Rect(), a.hub, &a.rq, a.ctx)
	}
	a.rq.Add(NewRenderData(a.view.ID(), a.ctx.FB.Rect(), UpdateFull))
}

// close removes the top-level child carrying id and exposes the region it
// covered. Unknown ids are ignored.
func (a *App) close(id ViewID) {
	i, ok := LocateByID(a.view, id)
	if !ok {
		return
	}
	child := a.view.ChildAt(i)
	a.rq.Add(Expose(OverlappingRectangle(child), UpdateGui))
	a.view.RemoveChildAt(i)
	if n, ok := child.(*Notification); ok {
		n.Stop()
	}
}

func (a *App) notify(id ViewID, text string) {
	a.view.AddChild(NewNotification(id, text, a.hub, &a.rq, a.ctx))
}

func (a *App) toggleMenu(id ViewID, anchor Rectangle) {
	var items []MenuItem
	switch id {
	case ViewClockMenu:
		items = ClockMenuItems()
	case ViewMainMenu:
		items = MainMenuItems(a.ctx)
	default:
		a.ctx.logger().Debug("no menu for view", "view", id)
		return
	}
	if _, ok := LocateByID(a.view, id); ok {
		a.close(id)
		return
	}
	a.view.AddChild(NewMenu(id, anchor, items, &a.rq, a.ctx))
}

func (a *App) show(id ViewID) {
	if _, ok := LocateByID(a.view, id); ok {
		return
	}
	switch id {
	case ViewMainMenu:
		a.toggleMenu(id, Rect(0, 0, BarHeight*2, BarHeight))
	case ViewClockMenu:
		w := a.ctx.Display.Width
		a.toggleMenu(id, Rect(w-BarHeight*2, 0, w, BarHeight))
	case ViewAboutDialog:
		a.view.AddChild(NewDialog(id, "inkwell "+Version, &a.rq, a.ctx))
	case ViewFrontlight:
		if !a.ctx.Settings.Frontlight.Enabled {
			a.route(ToggleFrontlightEvent{})
		}
		lv := a.ctx.Settings.Frontlight.Levels
		a.notify(ViewFrontlight, fmt.Sprintf("Frontlight %.0f%%, warmth %.0f%%", lv.Intensity, lv.Warmth))
	default:
		a.ctx.logger().Debug("nothing to show for view", "view", id)
	}
}

func (a *App) screenshot(label string) {
	msg, err := saveScreenshot(a.ctx.FB, a.ctx.Settings.Screenshots, label, time.Now())
	if err != nil {
		a.ctx.logger().Warn("screenshot failed", "error", err)
		msg = fmt.Sprintf("Couldn't take screenshot: %v.", err)
	}
	a.notify(ViewScreenshotNotif, msg)
}

// setWifi records the radio state. Enabling it reports the network as up
// after the configured delay.
func (a *App) setWifi(enable bool) {
	if a.ctx.Settings.Wifi == enable {
		return
	}
	a.ctx.Settings.Wifi = enable
	if !enable {
		a.ctx.Online = false
		return
	}
	hub := a.hub
	time.AfterFunc(a.ctx.Settings.Timing.NetUpDelay.Duration, func() {
		hub.Send(NetUpEvent{})
	})
}

func (a *App) toggleFrontlight() {
	fl := &a.ctx.Settings.Frontlight
	var target LightLevels
	if fl.Enabled {
		fl.Levels = a.ctx.Frontlight.Levels()
		target = LightLevels{Warmth: fl.Levels.Warmth}
	} else {
		target = fl.Levels
	}
	fl.Enabled = !fl.Enabled
	a.ramp = NewFrontlightRamp(a.ctx.Frontlight, target, a.ctx.Settings.Timing.FrontlightRamp.Duration)
	a.scheduleRampTick()
}

func (a *App) advanceRamp() {
	if a.ramp == nil {
		return
	}
	if a.ramp.Advance(a.ctx.Settings.Timing.FrontlightTick.Duration) {
		a.ramp = nil
		return
	}
	a.scheduleRampTick()
}

func (a *App) scheduleRampTick() {
	hub := a.hub
	time.AfterFunc(a.ctx.Settings.Timing.FrontlightTick.Duration, func() {
		hub.Send(FrontlightTickEvent{})
	})
}

// --- History ---

// Push makes v the top-level view. Open menus are dropped, notifications
// follow the new view and the previous one is kept for BackEvent.
func (a *App) Push(v View) {
	a.view.RetainChildren(func(c View) bool {
		_, isMenu := c.(*Menu)
		return !isMenu
	})
	TransferNotifications(a.view, v, &a.rq)
	a.history = append(a.history, a.view)
	a.view = v
	a.rq.Add(NewRenderData(v.ID(), v.Rect(), UpdateGui))
}

func (a *App) back() {
	if len(a.history) == 0 {
		return
	}
	prev := a.history[len(a.history)-1]
	a.history = a.history[:len(a.history)-1]
	TransferNotifications(a.view, prev, &a.rq)
	a.view = prev
	a.view.HandleEvent(ReseedEvent{}, a.hub, &a.bus, &a.rq, a.ctx)
}
