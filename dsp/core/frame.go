package core

// Frame is one multichannel sample: a per-channel value tuple of fixed
// width. It has no identity beyond its values and is cheap to copy.
type Frame []float64

// NewFrame returns a zeroed frame with the given channel count.
func NewFrame(channels int) Frame {
	if channels < 0 {
		channels = 0
	}
	return make(Frame, channels)
}

// Channels returns the frame width.
func (f Frame) Channels() int {
	return len(f)
}

// Zero sets all channel values to 0.
func (f Frame) Zero() {
	for i := range f {
		f[i] = 0
	}
}

// ScaleAdd accumulates coeff*other into f in place.
// Both frames must have the same width; extra channels in other are
// ignored, missing ones contribute nothing.
func (f Frame) ScaleAdd(other Frame, coeff float64) {
	n := len(f)
	if len(other) < n {
		n = len(other)
	}
	for i := 0; i < n; i++ {
		f[i] += coeff * other[i]
	}
}

// CopyFrom copies channel values from src into f and returns the number
// of copied channels.
func (f Frame) CopyFrom(src Frame) int {
	return copy(f, src)
}
