package inkwell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drainInput(a *App) []FingerEvent {
	var out []FingerEvent
	for {
		select {
		case evt := <-a.input:
			out = append(out, evt)
		default:
			return out
		}
	}
}

func TestInjectTap(t *testing.T) {
	a, _ := newTestApp(t)
	a.InjectTap(50, 60)

	evts := drainInput(a)
	require.Len(t, evts, 2)
	assert.Equal(t, FingerDown, evts[0].Status)
	assert.Equal(t, FingerUp, evts[1].Status)
	assert.Equal(t, Pt(50, 60), evts[0].Position)
	assert.Equal(t, Pt(50, 60), evts[1].Position)
	assert.LessOrEqual(t, evts[0].Time, evts[1].Time)
}

func TestInjectSwipe(t *testing.T) {
	a, _ := newTestApp(t)
	a.InjectSwipe(Pt(0, 100), Pt(400, 100), 3)

	evts := drainInput(a)
	require.Len(t, evts, 5)
	assert.Equal(t, FingerDown, evts[0].Status)
	for i, x := range []int{100, 200, 300} {
		assert.Equal(t, FingerMotion, evts[i+1].Status)
		assert.Equal(t, Pt(x, 100), evts[i+1].Position)
	}
	assert.Equal(t, FingerEvent{Status: FingerUp, Position: Pt(400, 100), Time: evts[4].Time}, evts[4])

	g := NewGestureRecognizer(GestureSettings{})
	var gestures []Event
	for _, e := range evts {
		gestures = append(gestures, g.Feed(e)...)
	}
	require.Len(t, gestures, 1)
	assert.Equal(t, DirEast, gestures[0].(SwipeEvent).Dir)
}

func TestInjectAfterStopDoesNotBlock(t *testing.T) {
	a, _ := newTestApp(t)
	close(a.stopped)
	for range inboxSize {
		a.InjectTap(1, 1)
	}
	assert.LessOrEqual(t, len(a.input), inboxSize)
}
