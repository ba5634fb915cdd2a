package render

import "time"

// VideoState is the playback state of a video player.
type VideoState int

const (
	VideoStopped VideoState = iota
	VideoPlaying
)

// playStartDelay gives the media element time to mount before playback is
// started against it.
const playStartDelay = 100 * time.Millisecond

// VideoPlayer renders a lazily started video. Initially only the poster is
// shown and no media element exists; Play switches to the playing shape and
// defers the actual media start by a short fixed delay. Pause or natural end
// return it to stopped.
type VideoPlayer struct {
	Src       string
	PosterSrc string

	state    VideoState
	onStart  func()
	schedule func(time.Duration, func())
}

// NewVideoPlayer builds a stopped player. onStart, if non-nil, is invoked
// playStartDelay after Play to kick off the mounted media element.
func NewVideoPlayer(src, posterSrc string, onStart func()) *VideoPlayer {
	return &VideoPlayer{
		Src:       src,
		PosterSrc: posterSrc,
		onStart:   onStart,
		schedule: func(d time.Duration, fn func()) {
			time.AfterFunc(d, fn)
		},
	}
}

// State returns the current playback state.
func (v *VideoPlayer) State() VideoState {
	return v.state
}

// Play transitions stopped -> playing.
func (v *VideoPlayer) Play() {
	if v.state == VideoPlaying {
		return
	}
	v.state = VideoPlaying
	if v.onStart != nil {
		v.schedule(playStartDelay, v.onStart)
	}
}

// Stop transitions playing -> stopped, on pause or natural end.
func (v *VideoPlayer) Stop() {
	v.state = VideoStopped
}

// Render produces the player subtree for the current state.
func (v *VideoPlayer) Render() *Node {
	player := Element("div", "video-player",
		Element("div", "poster",
			Element("img", "").WithAttr("src", v.PosterSrc),
			Element("i", "icon", Text("play circle outline")),
		),
	)
	if v.state == VideoPlaying {
		player.Append(Element("video", "").
			WithAttr("src", v.Src).
			WithAttr("autoplay", "true"))
	}
	return player
}
