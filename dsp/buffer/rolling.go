package buffer

import (
	"fmt"

	"github.com/cwbudde/algo-r128/dsp/core"
)

// Rolling stores the last N multichannel frames and exposes them as a
// contiguous window, most recent first.
//
// The backing store holds 2*N frames. PushFront writes each frame to its
// primary slot and to a shadow slot N frames ahead, so a view starting
// at the cursor always spans N valid frames without wrapping. The
// tradeoff is writing every frame twice; the gain is a fixed-length,
// stride-1 window for the filter inner loop.
type Rolling struct {
	buf      []float64 // 2*frames*channels values
	frames   int
	channels int
	position int // frame index, kept in [0, frames]; writes only happen below frames
}

// NewRolling returns a zero-filled rolling buffer holding the given
// number of frames of the given channel width.
func NewRolling(frames, channels int) (*Rolling, error) {
	if frames <= 0 {
		return nil, fmt.Errorf("buffer: frame count must be > 0: %d", frames)
	}

	if channels <= 0 {
		return nil, fmt.Errorf("buffer: channel count must be > 0: %d", channels)
	}

	return &Rolling{
		buf:      make([]float64, 2*frames*channels),
		frames:   frames,
		channels: channels,
		position: frames,
	}, nil
}

// Len returns the window length in frames.
func (r *Rolling) Len() int {
	return r.frames
}

// Channels returns the frame width.
func (r *Rolling) Channels() int {
	return r.channels
}

// PushFront inserts frame as the new most-recent element, logically
// evicting the oldest. Only the channel width of the buffer is consumed
// from frame.
func (r *Rolling) PushFront(frame core.Frame) {
	if r.position == 0 {
		r.position = r.frames - 1
	} else {
		r.position--
	}

	primary := r.position * r.channels
	shadow := primary + r.frames*r.channels

	copy(r.buf[primary:primary+r.channels], frame)
	copy(r.buf[shadow:shadow+r.channels], frame)
}

// View returns the last N frames as one contiguous slice of
// N*channels values, most recent frame first. The slice aliases the
// internal store and is valid until the next PushFront or Reset;
// callers must not mutate it.
func (r *Rolling) View() []float64 {
	start := r.position * r.channels
	return r.buf[start : start+r.frames*r.channels]
}

// Frame returns the i-th most recent frame (0 = newest) as a sub-slice
// of the contiguous window.
func (r *Rolling) Frame(i int) core.Frame {
	v := r.View()
	return core.Frame(v[i*r.channels : (i+1)*r.channels])
}

// Reset restores the all-zero state.
func (r *Rolling) Reset() {
	core.Zero(r.buf)
	r.position = r.frames
}
