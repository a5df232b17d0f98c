// Package emulator shows an inkwell application in a desktop window. The
// mouse and touch screens act as the panel's touch layer and the window
// displays the framebuffer's front buffer, refreshes included.
package emulator

import (
	"errors"
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/inkwell"
)

// maxPointers is the number of simultaneous contacts tracked: the mouse in
// slot 0 and up to nine touches.
const maxPointers = 10

// Config holds the window options.
type Config struct {
	Title   string
	Scale   float64
	ShowFPS bool
}

// pointerState tracks one contact between frames.
type pointerState struct {
	down bool
	last inkwell.Point
}

// Game implements ebiten.Game on top of an App and its MemoryFramebuffer.
type Game struct {
	app    *inkwell.App
	fb     *inkwell.MemoryFramebuffer
	cfg    Config
	done   <-chan struct{}
	screen *ebiten.Image
	pixels []byte
	size   image.Point

	pointers     [maxPointers]pointerState
	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	prevTouchIDs []ebiten.TouchID
}

// New returns a game showing fb. The window closes once done is closed.
func New(app *inkwell.App, fb *inkwell.MemoryFramebuffer, cfg Config, done <-chan struct{}) *Game {
	if cfg.Scale <= 0 {
		cfg.Scale = 1
	}
	if cfg.Title == "" {
		cfg.Title = "inkwell"
	}
	return &Game{app: app, fb: fb, cfg: cfg, done: done}
}

// Run opens the window and blocks until it is closed or done is closed.
// Closing the window selects the quit entry.
func Run(g *Game) error {
	r := g.fb.Rect()
	w, h := windowSize(r, g.cfg.Scale)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(g.cfg.Title)
	ebiten.SetWindowClosingHandled(true)
	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	select {
	case <-g.done:
		return ebiten.Termination
	default:
	}
	hub := g.app.Hub()
	if ebiten.IsWindowBeingClosed() || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		hub.Send(inkwell.SelectEvent{Entry: inkwell.Entry(inkwell.EntryQuit)})
	}
	rot := g.fb.Rotation()
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) {
		hub.Send(inkwell.RotateScreenEvent{Rotation: nextRotation(rot, -1)})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) {
		hub.Send(inkwell.RotateScreenEvent{Rotation: nextRotation(rot, 1)})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		hub.Send(inkwell.UpdateEvent{Mode: inkwell.UpdateFull})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		hub.Send(inkwell.ScreenshotEvent{Label: "emulator"})
	}

	mx, my := ebiten.CursorPosition()
	g.processPointer(0, toPanel(mx, my, g.cfg.Scale), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
	g.processTouchPointers()
	return nil
}

// processTouchPointers handles touch input (pointers 1-9).
func (g *Game) processTouchPointers() {
	touchIDs := ebiten.AppendTouchIDs(g.prevTouchIDs[:0])
	g.prevTouchIDs = touchIDs

	var active [maxPointers]bool
	for _, tid := range touchIDs {
		slot := g.touchSlot(tid)
		if slot < 0 {
			continue
		}
		active[slot] = true
		tx, ty := ebiten.TouchPosition(tid)
		g.processPointer(slot, toPanel(tx, ty, g.cfg.Scale), true)
	}

	for i := 1; i < maxPointers; i++ {
		if g.touchUsed[i] && !active[i] {
			g.processPointer(i, g.pointers[i].last, false)
			g.touchUsed[i] = false
			g.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (g *Game) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if g.touchUsed[i] && g.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !g.touchUsed[i] {
			g.touchUsed[i] = true
			g.touchMap[i] = tid
			return i
		}
	}
	return -1
}

func (g *Game) processPointer(id int, pos inkwell.Point, pressed bool) {
	evt, ok := g.pointers[id].step(id, pos, pressed)
	if !ok {
		return
	}
	evt.Time = g.app.Uptime()
	select {
	case g.app.Input() <- evt:
	default:
		// The loop is behind; losing motion is harmless and the next
		// frame reports the contact again.
	}
}

// step runs the pointer state machine and returns the finger event the
// transition produces, if any.
func (p *pointerState) step(id int, pos inkwell.Point, pressed bool) (inkwell.FingerEvent, bool) {
	evt := inkwell.FingerEvent{ID: id, Position: pos}
	switch {
	case pressed && !p.down:
		evt.Status = inkwell.FingerDown
	case pressed && pos != p.last:
		evt.Status = inkwell.FingerMotion
	case !pressed && p.down:
		evt.Status = inkwell.FingerUp
	default:
		return evt, false
	}
	p.down = pressed
	p.last = pos
	return evt, true
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.fb.Snapshot(func(front *image.Gray) {
		size := front.Rect.Size()
		if g.screen == nil || size != g.size {
			g.size = size
			g.screen = ebiten.NewImage(size.X, size.Y)
			g.pixels = make([]byte, 4*size.X*size.Y)
			w, h := windowSize(inkwell.RectFromSize(size.X, size.Y), g.cfg.Scale)
			ebiten.SetWindowSize(w, h)
		}
		grayToRGBA(g.pixels, front)
	})
	g.screen.WritePixels(g.pixels)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(g.cfg.Scale, g.cfg.Scale)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(g.screen, op)

	if g.cfg.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
}

// Layout implements ebiten.Game.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.size == (image.Point{}) {
		return windowSize(g.fb.Rect(), g.cfg.Scale)
	}
	return windowSize(inkwell.RectFromSize(g.size.X, g.size.Y), g.cfg.Scale)
}

// grayToRGBA expands a grayscale image into opaque RGBA pixels.
func grayToRGBA(dst []byte, src *image.Gray) {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+w]
		for x, v := range row {
			i := 4 * (y*w + x)
			dst[i], dst[i+1], dst[i+2], dst[i+3] = v, v, v, 0xff
		}
	}
}

func toPanel(x, y int, scale float64) inkwell.Point {
	return inkwell.Pt(int(float64(x)/scale), int(float64(y)/scale))
}

func windowSize(r inkwell.Rectangle, scale float64) (int, int) {
	return int(float64(r.Width()) * scale), int(float64(r.Height()) * scale)
}

func nextRotation(rot, delta int) int {
	return ((rot+delta)%4 + 4) % 4
}
