package inkwell

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

// fbCall is one Update or Wait observed by recordingFB.
type fbCall struct {
	Op    string
	Token Token
	Rect  Rectangle
	Mode  UpdateMode
}

// recordingFB is a MemoryFramebuffer that logs refresh traffic and can be
// told to fail.
type recordingFB struct {
	*MemoryFramebuffer
	calls      []fbCall
	failUpdate bool
}

var errInjected = errors.New("injected failure")

func newRecordingFB(w, h int) *recordingFB {
	return &recordingFB{MemoryFramebuffer: NewMemoryFramebuffer(w, h)}
}

func (f *recordingFB) Update(rect Rectangle, mode UpdateMode) (Token, error) {
	if f.failUpdate {
		f.calls = append(f.calls, fbCall{Op: "update", Rect: rect, Mode: mode})
		return 0, errInjected
	}
	tok, err := f.MemoryFramebuffer.Update(rect, mode)
	f.calls = append(f.calls, fbCall{Op: "update", Token: tok, Rect: rect, Mode: mode})
	return tok, err
}

func (f *recordingFB) Wait(tok Token) error {
	f.calls = append(f.calls, fbCall{Op: "wait", Token: tok})
	return f.MemoryFramebuffer.Wait(tok)
}

func (f *recordingFB) ops() []string {
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = fmt.Sprintf("%s %d", c.Op, c.Token)
	}
	return out
}

func (f *recordingFB) updates() []Rectangle {
	var out []Rectangle
	for _, c := range f.calls {
		if c.Op == "update" {
			out = append(out, c.Rect)
		}
	}
	return out
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestContext returns a context over a w x h recording framebuffer with
// fresh metrics.
func newTestContext(t *testing.T, w, h int) (*Context, *recordingFB) {
	t.Helper()
	fb := newRecordingFB(w, h)
	s := DefaultSettings()
	s.Display.Width, s.Display.Height = w, h
	ctx := NewContext(fb, s, discardLogger(), NewMetrics(prometheus.NewRegistry()))
	return ctx, fb
}

// testView is a configurable widget that records what happens to it.
type testView struct {
	Base
	name       string
	log        *[]string
	handle     func(evt Event, bus *Bus) bool
	skip       bool
	background bool
	rendered   []Rectangle
}

func newTestView(id ID, rect Rectangle, name string, log *[]string) *testView {
	return &testView{Base: NewBase(id, rect), name: name, log: log}
}

func (v *testView) HandleEvent(evt Event, _ *Hub, bus *Bus, _ *RenderQueue, _ *Context) bool {
	if v.log != nil {
		*v.log = append(*v.log, fmt.Sprintf("%s:%T", v.name, evt))
	}
	if v.handle == nil {
		return false
	}
	return v.handle(evt, bus)
}

func (v *testView) Render(_ Framebuffer, rect Rectangle, _ *Fonts) {
	v.rendered = append(v.rendered, rect)
	if v.log != nil {
		*v.log = append(*v.log, "render:"+v.name)
	}
}

func (v *testView) MightSkip(Event) bool { return v.skip }
func (v *testView) IsBackground() bool   { return v.background }
