package inkwell

import (
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frontPixel(fb *MemoryFramebuffer, x, y int) uint8 {
	var v uint8
	fb.Snapshot(func(front *image.Gray) { v = front.GrayAt(x, y).Y })
	return v
}

func TestMemoryFramebufferUpdateCopiesRegion(t *testing.T) {
	fb := NewMemoryFramebuffer(40, 30)
	fb.DrawRectangle(Rect(0, 0, 40, 30), Black)

	tok, err := fb.Update(Rect(0, 0, 10, 10), UpdateGui)
	require.NoError(t, err)
	assert.Equal(t, Token(1), tok)

	assert.Equal(t, Black, frontPixel(fb, 5, 5))
	assert.Equal(t, White, frontPixel(fb, 15, 15), "outside the refreshed region")
	assert.Equal(t, 1, fb.Pending())
	assert.Equal(t, 1, fb.Updates())
}

func TestMemoryFramebufferUpdateOutside(t *testing.T) {
	fb := NewMemoryFramebuffer(40, 30)
	_, err := fb.Update(Rect(100, 100, 110, 110), UpdateGui)
	assert.Error(t, err)
	assert.Equal(t, 0, fb.Pending())
}

func TestMemoryFramebufferDisplayModes(t *testing.T) {
	fb := NewMemoryFramebuffer(10, 10)
	fb.DrawRectangle(Rect(0, 0, 10, 10), Gray12)

	_, err := fb.Update(Rect(0, 0, 10, 10), UpdateFastMono)
	require.NoError(t, err)
	assert.Equal(t, White, frontPixel(fb, 0, 0), "fast-mono thresholds")

	fb.ToggleInverted()
	assert.True(t, fb.Inverted())
	_, err = fb.Update(Rect(0, 0, 10, 10), UpdateGui)
	require.NoError(t, err)
	assert.Equal(t, 0xff-Gray12, frontPixel(fb, 0, 0))

	fb.ToggleMonochrome()
	_, err = fb.Update(Rect(0, 0, 10, 10), UpdateGui)
	require.NoError(t, err)
	assert.Equal(t, Black, frontPixel(fb, 0, 0), "white after threshold, then inverted")
}

func TestMemoryFramebufferWait(t *testing.T) {
	fb := NewMemoryFramebuffer(10, 10)
	base := time.Unix(0, 0)
	fb.now = func() time.Time { return base }
	var slept time.Duration
	fb.sleep = func(d time.Duration) { slept += d }
	fb.SetLatency(UpdateFull, 300*time.Millisecond)

	tok, err := fb.Update(Rect(0, 0, 10, 10), UpdateFull)
	require.NoError(t, err)
	require.NoError(t, fb.Wait(tok))
	assert.Equal(t, 300*time.Millisecond, slept)
	assert.Equal(t, 0, fb.Pending())

	err = fb.Wait(tok)
	assert.True(t, errors.Is(err, ErrUnknownToken))
}

func TestMemoryFramebufferRotation(t *testing.T) {
	fb := NewMemoryFramebuffer(60, 80)
	require.NoError(t, fb.SetRotation(1))
	assert.Equal(t, RectFromSize(80, 60), fb.Rect())
	assert.Equal(t, 1, fb.Rotation())

	require.NoError(t, fb.SetRotation(3))
	assert.Equal(t, RectFromSize(80, 60), fb.Rect())

	require.NoError(t, fb.SetRotation(0))
	assert.Equal(t, RectFromSize(60, 80), fb.Rect())

	assert.Error(t, fb.SetRotation(4))
}

func TestMemoryFramebufferDrawing(t *testing.T) {
	fb := NewMemoryFramebuffer(40, 40)
	img := fb.back

	fb.DrawBorder(Rect(0, 0, 20, 20), ThicknessMedium, Black)
	assert.Equal(t, Black, img.GrayAt(0, 10).Y)
	assert.Equal(t, Black, img.GrayAt(19, 10).Y)
	assert.Equal(t, White, img.GrayAt(10, 10).Y)

	fb.DrawRoundedRectangle(Rect(20, 20, 40, 40), 8, Black)
	assert.Equal(t, White, img.GrayAt(20, 20).Y, "corner is cut")
	assert.Equal(t, Black, img.GrayAt(30, 30).Y)

	fb.InvertRegion(Rect(10, 10, 12, 12))
	assert.Equal(t, Black, img.GrayAt(10, 10).Y)
}

func TestMemoryFramebufferSave(t *testing.T) {
	fb := NewMemoryFramebuffer(16, 8)
	fb.DrawRectangle(Rect(0, 0, 8, 8), Black)
	_, err := fb.Update(fb.Rect(), UpdateFull)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "shot.png")
	require.NoError(t, fb.Save(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 16, img.Bounds().Dx())
	r, _, _, _ := img.At(0, 0).RGBA()
	assert.Zero(t, r)
}

func TestUpdateModeString(t *testing.T) {
	assert.Equal(t, "fast-mono", UpdateFastMono.String())
	assert.Equal(t, "full", UpdateFull.String())
}
