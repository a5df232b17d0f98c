package inkwell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderQueueGroupsByModeAndWait(t *testing.T) {
	var rq RenderQueue
	assert.True(t, rq.Empty())

	rq.Add(NewRenderData(1, Rect(0, 0, 10, 10), UpdateGui))
	rq.Add(NewRenderData(2, Rect(0, 0, 5, 5), UpdateFast))
	rq.Add(NoWait(3, Rect(0, 0, 5, 5), UpdateGui))
	rq.Add(NewRenderData(4, Rect(5, 5, 10, 10), UpdateGui))
	rq.Add(Expose(Rect(0, 0, 20, 20), UpdateFast))

	assert.Equal(t, 5, rq.Len())
	assert.False(t, rq.Empty())

	groups := rq.Drain()
	require.Len(t, groups, 3)

	assert.Equal(t, UpdateGui, groups[0].Mode)
	assert.True(t, groups[0].Wait)
	assert.Equal(t, []RenderEntry{
		{ID: 1, Rect: Rect(0, 0, 10, 10)},
		{ID: 4, Rect: Rect(5, 5, 10, 10)},
	}, groups[0].Entries)

	assert.Equal(t, UpdateFast, groups[1].Mode)
	assert.Equal(t, []RenderEntry{
		{ID: 2, Rect: Rect(0, 0, 5, 5)},
		{ID: 0, Rect: Rect(0, 0, 20, 20)},
	}, groups[1].Entries)

	assert.Equal(t, UpdateGui, groups[2].Mode)
	assert.False(t, groups[2].Wait)

	assert.True(t, rq.Empty())
	assert.Empty(t, rq.Drain())
}

func TestRenderQueueReusableAfterDrain(t *testing.T) {
	var rq RenderQueue
	rq.Add(NewRenderData(1, Rect(0, 0, 1, 1), UpdateFull))
	rq.Drain()
	rq.Add(NewRenderData(2, Rect(0, 0, 1, 1), UpdateGui))

	groups := rq.Drain()
	require.Len(t, groups, 1)
	assert.Equal(t, UpdateGui, groups[0].Mode)
	assert.Equal(t, ID(2), groups[0].Entries[0].ID)
}

func TestRenderDataConstructors(t *testing.T) {
	assert.True(t, NewRenderData(1, Rect(0, 0, 1, 1), UpdateGui).Wait)
	assert.False(t, NoWait(1, Rect(0, 0, 1, 1), UpdateGui).Wait)

	e := Expose(Rect(0, 0, 1, 1), UpdateFull)
	assert.Equal(t, ID(0), e.ID)
	assert.True(t, e.Wait)
}
