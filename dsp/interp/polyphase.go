package interp

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-r128/dsp/buffer"
	"github.com/cwbudde/algo-r128/dsp/core"
)

// Taps is the fixed total tap count of the interpolation kernel. Every
// Polyphase instance splits these taps into factor phases of
// Taps/factor taps each.
const Taps = 48

const almostZero = 1e-6

// Polyphase is an oversampling FIR interpolator over multichannel
// frames. It produces factor output frames per input frame.
type Polyphase struct {
	// kernel[j][p] is the coefficient applied to the j-th most recent
	// frame when computing output phase p. Immutable after construction.
	kernel [][]float64

	history    *buffer.Rolling
	activeTaps int
	factor     int
	channels   int
}

// NewPolyphase returns an interpolator producing factor frames per
// input frame, with activeTaps kernel taps per phase. The parameters
// must satisfy activeTaps*factor == Taps.
func NewPolyphase(activeTaps, factor, channels int) (*Polyphase, error) {
	if activeTaps <= 0 || factor <= 0 {
		return nil, fmt.Errorf("interp: taps and factor must be > 0: %d, %d", activeTaps, factor)
	}

	if activeTaps*factor != Taps {
		return nil, fmt.Errorf("interp: activeTaps*factor must equal %d: %d*%d = %d",
			Taps, activeTaps, factor, activeTaps*factor)
	}

	history, err := buffer.NewRolling(activeTaps, channels)
	if err != nil {
		return nil, fmt.Errorf("interp: %w", err)
	}

	return &Polyphase{
		kernel:     designKernel(activeTaps, factor),
		history:    history,
		activeTaps: activeTaps,
		factor:     factor,
		channels:   channels,
	}, nil
}

// designKernel computes the Hanning-windowed sinc coefficients. The
// window spans all Taps coefficients; flat index j walks the taps in
// phase-major order so column p holds the sub-filter for output phase p.
func designKernel(activeTaps, factor int) [][]float64 {
	kernel := make([][]float64, activeTaps)
	for i := range kernel {
		kernel[i] = make([]float64, factor)
	}

	for j := 0; j < activeTaps*factor; j++ {
		w := 0.5 * (1 - math.Cos(2*math.Pi*float64(j)/Taps))

		m := float64(j) - Taps/2

		c := w
		if math.Abs(m) > almostZero {
			arg := m * math.Pi / float64(factor)
			c = w * math.Sin(arg) / arg
		}

		kernel[j/factor][j%factor] = c
	}

	return kernel
}

// Factor returns the oversampling factor.
func (p *Polyphase) Factor() int {
	return p.factor
}

// Channels returns the frame width.
func (p *Polyphase) Channels() int {
	return p.channels
}

// Interpolate pushes frame into the history and writes factor
// interpolated frames to out, in chronological order between the
// previous and current input sample. out must hold factor frames; they
// are zeroed before accumulation. No allocation.
func (p *Polyphase) Interpolate(frame core.Frame, out []core.Frame) {
	p.history.PushFront(frame)

	for f := 0; f < p.factor; f++ {
		out[f].Zero()
	}

	view := p.history.View()

	for j := 0; j < p.activeTaps; j++ {
		in := core.Frame(view[j*p.channels : (j+1)*p.channels])
		for f, coeff := range p.kernel[j] {
			out[f].ScaleAdd(in, coeff)
		}
	}
}

// MakeOutput allocates a frame slice suitable for [Polyphase.Interpolate].
func (p *Polyphase) MakeOutput() []core.Frame {
	out := make([]core.Frame, p.factor)
	for i := range out {
		out[i] = core.NewFrame(p.channels)
	}

	return out
}

// Reset clears the frame history. The kernel is input-independent and
// persists.
func (p *Polyphase) Reset() {
	p.history.Reset()
}
