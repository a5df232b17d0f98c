package inkwell

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"sync"
	"time"

	"golang.org/x/image/draw"
)

// UpdateMode selects the waveform used for a panel refresh.
type UpdateMode uint8

const (
	// UpdateGui is the default mode for interface elements.
	UpdateGui UpdateMode = iota
	// UpdatePartial refreshes without flashing; ghosting accumulates.
	UpdatePartial
	// UpdateFull flashes the region to clear ghosting.
	UpdateFull
	// UpdateFast is a low-latency mode for immediate feedback.
	UpdateFast
	// UpdateFastMono is UpdateFast restricted to black and white.
	UpdateFastMono
)

func (m UpdateMode) String() string {
	switch m {
	case UpdateGui:
		return "gui"
	case UpdatePartial:
		return "partial"
	case UpdateFull:
		return "full"
	case UpdateFast:
		return "fast"
	case UpdateFastMono:
		return "fast-mono"
	default:
		return "unknown"
	}
}

// Token identifies a refresh that the display driver accepted but may not
// have finished.
type Token uint32

// ErrUnknownToken is returned by Wait for tokens that were never issued or
// were already waited on.
var ErrUnknownToken = errors.New("inkwell: unknown update token")

// Framebuffer is the display driver contract together with the drawing
// surface widgets paint on. Painting only touches the back buffer; a region
// becomes visible once Update is called for it.
type Framebuffer interface {
	// Update starts an asynchronous refresh of rect and returns its token.
	Update(rect Rectangle, mode UpdateMode) (Token, error)
	// Wait blocks until the refresh identified by tok has completed.
	Wait(tok Token) error
	// Save writes what the panel currently shows to path as a PNG.
	Save(path string) error

	Rect() Rectangle
	Rotation() int
	SetRotation(n int) error
	ToggleInverted()
	ToggleMonochrome()
	Inverted() bool
	Monochrome() bool

	// Image returns the back buffer.
	Image() draw.Image
	DrawRectangle(rect Rectangle, gray uint8)
	DrawRoundedRectangle(rect Rectangle, radius int, gray uint8)
	DrawBorder(rect Rectangle, thickness int, gray uint8)
	InvertRegion(rect Rectangle)
}

// MemoryFramebuffer is a Framebuffer backed by two grayscale images. The back
// buffer receives the widgets' painting; the front buffer holds what an
// e-ink panel would display and changes only through Update. Each refresh
// completes after a latency chosen per mode, which makes the asynchronous
// behaviour of real panels observable in tests and in the emulator.
type MemoryFramebuffer struct {
	mu sync.Mutex

	back  *image.Gray
	front *image.Gray

	rotation   int
	inverted   bool
	monochrome bool

	latency  map[UpdateMode]time.Duration
	inFlight map[Token]time.Time
	next     Token
	now      func() time.Time
	sleep    func(time.Duration)

	updates int
}

// NewMemoryFramebuffer returns a white framebuffer of the given portrait
// dimensions. Refreshes complete immediately until SetLatency is called.
func NewMemoryFramebuffer(width, height int) *MemoryFramebuffer {
	fb := &MemoryFramebuffer{
		latency:  make(map[UpdateMode]time.Duration),
		inFlight: make(map[Token]time.Time),
		now:      time.Now,
		sleep:    time.Sleep,
	}
	fb.alloc(width, height)
	return fb
}

func (fb *MemoryFramebuffer) alloc(width, height int) {
	fb.back = image.NewGray(image.Rect(0, 0, width, height))
	fb.front = image.NewGray(image.Rect(0, 0, width, height))
	fill(fb.back, fb.back.Rect, White)
	fill(fb.front, fb.front.Rect, White)
}

// SetLatency sets how long a refresh in mode takes to complete.
func (fb *MemoryFramebuffer) SetLatency(mode UpdateMode, d time.Duration) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.latency[mode] = d
}

// Update copies rect from the back buffer to the front buffer, applying the
// inverted and monochrome display modes, and registers an in-flight token.
func (fb *MemoryFramebuffer) Update(rect Rectangle, mode UpdateMode) (Token, error) {
	fb.mu.Lock()
	defer fb.mu.Unlock()

	bounds := fromImageRect(fb.back.Rect)
	r, ok := rect.Intersection(bounds)
	if !ok {
		return 0, fmt.Errorf("inkwell: update %v outside of %v", rect, bounds)
	}

	mono := fb.monochrome || mode == UpdateFastMono
	for y := r.Min.Y; y < r.Max.Y; y++ {
		src := fb.back.Pix[fb.back.PixOffset(r.Min.X, y):fb.back.PixOffset(r.Max.X, y)]
		dst := fb.front.Pix[fb.front.PixOffset(r.Min.X, y):fb.front.PixOffset(r.Max.X, y)]
		for i, v := range src {
			if mono {
				if v < 0x80 {
					v = Black
				} else {
					v = White
				}
			}
			if fb.inverted {
				v = 0xff - v
			}
			dst[i] = v
		}
	}

	fb.next++
	tok := fb.next
	fb.inFlight[tok] = fb.now().Add(fb.latency[mode])
	fb.updates++
	return tok, nil
}

// Wait blocks until the refresh identified by tok is complete.
func (fb *MemoryFramebuffer) Wait(tok Token) error {
	fb.mu.Lock()
	deadline, ok := fb.inFlight[tok]
	if !ok {
		fb.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrUnknownToken, tok)
	}
	delete(fb.inFlight, tok)
	remaining := deadline.Sub(fb.now())
	fb.mu.Unlock()

	if remaining > 0 {
		fb.sleep(remaining)
	}
	return nil
}

// Pending returns the number of refreshes that were issued and not waited on.
func (fb *MemoryFramebuffer) Pending() int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return len(fb.inFlight)
}

// Updates returns the number of refreshes issued so far.
func (fb *MemoryFramebuffer) Updates() int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.updates
}

// Save writes the front buffer to path as a PNG.
func (fb *MemoryFramebuffer) Save(path string) error {
	fb.mu.Lock()
	img := image.NewGray(fb.front.Rect)
	copy(img.Pix, fb.front.Pix)
	fb.mu.Unlock()
	return writePNG(path, img)
}

// Snapshot calls fn with the front buffer while holding the framebuffer lock.
// fn must not retain the image.
func (fb *MemoryFramebuffer) Snapshot(fn func(*image.Gray)) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fn(fb.front)
}

func (fb *MemoryFramebuffer) Rect() Rectangle {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fromImageRect(fb.back.Rect)
}

func (fb *MemoryFramebuffer) Rotation() int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.rotation
}

// SetRotation switches the panel orientation to n (0-3). Changing between
// portrait and landscape swaps the dimensions and clears both buffers.
func (fb *MemoryFramebuffer) SetRotation(n int) error {
	if n < 0 || n > 3 {
		return fmt.Errorf("inkwell: invalid rotation %d", n)
	}
	fb.mu.Lock()
	defer fb.mu.Unlock()
	if n%2 != fb.rotation%2 {
		b := fb.back.Rect
		fb.alloc(b.Dy(), b.Dx())
	}
	fb.rotation = n
	return nil
}

func (fb *MemoryFramebuffer) ToggleInverted() {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.inverted = !fb.inverted
}

func (fb *MemoryFramebuffer) ToggleMonochrome() {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.monochrome = !fb.monochrome
}

func (fb *MemoryFramebuffer) Inverted() bool {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.inverted
}

func (fb *MemoryFramebuffer) Monochrome() bool {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.monochrome
}

// --- Drawing ---

// Image returns the back buffer. Widgets paint on it from the UI thread only.
func (fb *MemoryFramebuffer) Image() draw.Image {
	return fb.back
}

func (fb *MemoryFramebuffer) DrawRectangle(rect Rectangle, gray uint8) {
	fill(fb.back, toImageRect(rect), gray)
}

// DrawRoundedRectangle fills rect leaving out the corners outside a circle of
// the given radius.
func (fb *MemoryFramebuffer) DrawRoundedRectangle(rect Rectangle, radius int, gray uint8) {
	r := toImageRect(rect).Intersect(fb.back.Rect)
	radius = min(radius, rect.Width()/2, rect.Height()/2)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if outsideCorner(rect, radius, x, y) {
				continue
			}
			fb.back.Pix[fb.back.PixOffset(x, y)] = gray
		}
	}
}

// DrawBorder paints a frame of the given thickness along the inside of rect.
func (fb *MemoryFramebuffer) DrawBorder(rect Rectangle, thickness int, gray uint8) {
	t := min(thickness, rect.Width()/2+1, rect.Height()/2+1)
	fb.DrawRectangle(Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+t), gray)
	fb.DrawRectangle(Rect(rect.Min.X, rect.Max.Y-t, rect.Max.X, rect.Max.Y), gray)
	fb.DrawRectangle(Rect(rect.Min.X, rect.Min.Y, rect.Min.X+t, rect.Max.Y), gray)
	fb.DrawRectangle(Rect(rect.Max.X-t, rect.Min.Y, rect.Max.X, rect.Max.Y), gray)
}

// InvertRegion flips every pixel of rect in the back buffer.
func (fb *MemoryFramebuffer) InvertRegion(rect Rectangle) {
	r := toImageRect(rect).Intersect(fb.back.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := fb.back.Pix[fb.back.PixOffset(r.Min.X, y):fb.back.PixOffset(r.Max.X, y)]
		for i := range row {
			row[i] = 0xff - row[i]
		}
	}
}

// --- Helpers ---

func fill(img draw.Image, r image.Rectangle, gray uint8) {
	draw.Draw(img, r, image.NewUniform(color.Gray{Y: gray}), image.Point{}, draw.Src)
}

func outsideCorner(rect Rectangle, radius, x, y int) bool {
	if radius <= 0 {
		return false
	}
	var cx, cy int
	switch {
	case x < rect.Min.X+radius:
		cx = rect.Min.X + radius
	case x >= rect.Max.X-radius:
		cx = rect.Max.X - radius - 1
	default:
		return false
	}
	switch {
	case y < rect.Min.Y+radius:
		cy = rect.Min.Y + radius
	case y >= rect.Max.Y-radius:
		cy = rect.Max.Y - radius - 1
	default:
		return false
	}
	dx, dy := x-cx, y-cy
	return dx*dx+dy*dy > radius*radius
}

func toImageRect(r Rectangle) image.Rectangle {
	return image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Max.Y)
}

func fromImageRect(r image.Rectangle) Rectangle {
	return Rectangle{Point{r.Min.X, r.Min.Y}, Point{r.Max.X, r.Max.Y}}
}
