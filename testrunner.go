package inkwell

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// scriptStep is a single action of an input script.
type scriptStep struct {
	Action string `json:"action"`
	Label  string `json:"label,omitempty"`
	Text   string `json:"text,omitempty"`
	Entry  string `json:"entry,omitempty"`
	Value  int    `json:"value,omitempty"`
	X      int    `json:"x,omitempty"`
	Y      int    `json:"y,omitempty"`
	FromX  int    `json:"fromX,omitempty"`
	FromY  int    `json:"fromY,omitempty"`
	ToX    int    `json:"toX,omitempty"`
	ToY    int    `json:"toY,omitempty"`
	Steps  int    `json:"steps,omitempty"`
	Millis int    `json:"ms,omitempty"`
}

// script is the top-level JSON structure of an input script.
type script struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner replays a scripted session against a running App: taps,
// swipes, holds, pauses, screenshots, notifications and menu commands.
type ScriptRunner struct {
	steps  []scriptStep
	cursor int
}

// LoadScript parses a JSON input script.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var s script
	if err := json.Unmarshal(jsonData, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range s.Steps {
		switch st.Action {
		case "tap", "swipe", "hold", "wait", "screenshot", "notify", "rotate", "back", "quit":
		case "select":
			if _, ok := parseEntryKind(st.Entry); !ok {
				return nil, fmt.Errorf("parse script: step %d: unknown entry %q", i, st.Entry)
			}
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: s.Steps}, nil
}

// Len returns the number of steps.
func (r *ScriptRunner) Len() int { return len(r.steps) }

// Done reports whether every step has been executed.
func (r *ScriptRunner) Done() bool { return r.cursor >= len(r.steps) }

// Run executes the remaining steps in order. It returns early with ctx's
// error when ctx is cancelled.
func (r *ScriptRunner) Run(ctx context.Context, app *App) error {
	for !r.Done() {
		st := r.steps[r.cursor]
		r.cursor++
		if err := r.exec(ctx, app, st); err != nil {
			return err
		}
	}
	return nil
}

func (r *ScriptRunner) exec(ctx context.Context, app *App, st scriptStep) error {
	var evt Event
	switch st.Action {
	case "tap":
		app.InjectTap(st.X, st.Y)
	case "swipe":
		app.InjectSwipe(Pt(st.FromX, st.FromY), Pt(st.ToX, st.ToY), st.Steps)
	case "hold":
		app.InjectPress(st.X, st.Y)
		if err := sleep(ctx, time.Duration(st.Millis)*time.Millisecond); err != nil {
			return err
		}
		app.InjectRelease(st.X, st.Y)
	case "wait":
		return sleep(ctx, time.Duration(st.Millis)*time.Millisecond)
	case "screenshot":
		evt = ScreenshotEvent{Label: st.Label}
	case "notify":
		evt = NotifyEvent{Text: st.Text}
	case "select":
		kind, _ := parseEntryKind(st.Entry)
		evt = SelectEvent{Entry: EntryID{Kind: kind, Value: st.Value}}
	case "rotate":
		evt = RotateScreenEvent{Rotation: st.Value}
	case "back":
		evt = BackEvent{}
	case "quit":
		evt = SelectEvent{Entry: Entry(EntryQuit)}
	}
	if evt != nil && !app.Hub().SendContext(ctx, evt) {
		return ctx.Err()
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func parseEntryKind(name string) (EntryKind, bool) {
	for k, n := range entryKindNames {
		if n == name {
			return EntryKind(k), true
		}
	}
	return 0, false
}
