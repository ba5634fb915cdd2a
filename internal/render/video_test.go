package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVideoPlayerLifecycle(t *testing.T) {
	started := false
	player := NewVideoPlayer("clip.mp4", "poster.jpg", func() { started = true })

	// Deferred start fires only when the scheduled delay elapses
	var scheduledDelay time.Duration
	var scheduledFn func()
	player.schedule = func(d time.Duration, fn func()) {
		scheduledDelay = d
		scheduledFn = fn
	}

	assert.Equal(t, VideoStopped, player.State())

	player.Play()
	assert.Equal(t, VideoPlaying, player.State())
	assert.Equal(t, playStartDelay, scheduledDelay)
	require.NotNil(t, scheduledFn)
	assert.False(t, started)

	scheduledFn()
	assert.True(t, started)

	player.Stop()
	assert.Equal(t, VideoStopped, player.State())
}

func TestVideoPlayerPlayIsIdempotent(t *testing.T) {
	starts := 0
	player := NewVideoPlayer("clip.mp4", "", func() { starts++ })
	player.schedule = func(_ time.Duration, fn func()) { fn() }

	player.Play()
	player.Play()
	assert.Equal(t, 1, starts)
}

func TestVideoPlayerRenderByState(t *testing.T) {
	player := NewVideoPlayer("clip.mp4", "poster.jpg", nil)

	stopped := player.Render()
	poster := findByClass(stopped, "poster")
	require.NotNil(t, poster)
	assert.Equal(t, "poster.jpg", poster.Children[0].Attrs["src"])
	assert.Len(t, stopped.Children, 1)

	player.Play()
	playing := player.Render()
	require.Len(t, playing.Children, 2)
	video := playing.Children[1]
	assert.Equal(t, "video", video.Tag)
	assert.Equal(t, "clip.mp4", video.Attrs["src"])
	assert.Equal(t, "true", video.Attrs["autoplay"])
}
