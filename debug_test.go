package inkwell

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func debugApp(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()
	a, _ := newTestApp(t)
	var buf bytes.Buffer
	a.ctx.Logger = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return a, &buf
}

func TestDebugModeLogsFrames(t *testing.T) {
	a, buf := debugApp(t)
	a.SetDebugMode(true)

	require.True(t, a.Step(context.Background()))
	assert.Contains(t, buf.String(), "msg=frame")
}

func TestDebugModeOff(t *testing.T) {
	a, buf := debugApp(t)

	require.True(t, a.Step(context.Background()))
	assert.NotContains(t, buf.String(), "msg=frame")
}

func TestDebugIdleFramesAreQuiet(t *testing.T) {
	a, buf := debugApp(t)
	a.SetDebugMode(true)
	a.rq.Drain()

	require.True(t, a.Step(context.Background()))
	assert.Empty(t, buf.String())
}

func TestDebugTreeCheck(t *testing.T) {
	a, buf := debugApp(t)
	a.SetDebugMode(true)
	for range debugMaxChildCount + 1 {
		a.View().AddChild(newTestView(a.ctx.IDs.Next(), Rect(0, 0, 1, 1), "leaf", nil))
	}

	require.True(t, a.Step(context.Background()))
	assert.Contains(t, buf.String(), "view has too many children")
}
