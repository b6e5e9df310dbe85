package loudness

import (
	"math"

	"github.com/cwbudde/algo-r128/dsp/core"
	"github.com/cwbudde/algo-r128/dsp/interp"
)

// oversamplingFactor returns the true-peak oversampling factor for a
// sample rate, per the BS.1770-4 annex: 4x below 96 kHz, 2x below
// 192 kHz, none above (the sample peak is already a good estimate at
// such rates).
func oversamplingFactor(sampleRate float64) int {
	switch {
	case sampleRate < 96000:
		return 4
	case sampleRate < 192000:
		return 2
	default:
		return 0
	}
}

// peakTracker keeps running per-channel maxima of the original and,
// when oversampling is enabled, the interpolated signal. Both maxima
// are monotone until reset.
type peakTracker struct {
	samplePeak []float64
	truePeak   []float64

	over    *interp.Polyphase // nil when oversampling is disabled
	overOut []core.Frame
	frame   core.Frame
}

func newPeakTracker(channels int, sampleRate float64, oversample bool) (*peakTracker, error) {
	t := &peakTracker{
		samplePeak: make([]float64, channels),
		truePeak:   make([]float64, channels),
	}

	factor := 0
	if oversample {
		factor = oversamplingFactor(sampleRate)
	}

	if factor > 0 {
		p, err := interp.NewPolyphase(interp.Taps/factor, factor, channels)
		if err != nil {
			return nil, err
		}

		t.over = p
		t.overOut = p.MakeOutput()
		t.frame = core.NewFrame(channels)
	}

	return t, nil
}

// process scans interleaved frames, updating the sample peak from the
// raw samples and the true peak from both the raw and the oversampled
// signal. The true peak covers the original samples too, so it can
// never fall below the sample peak.
func (t *peakTracker) process(interleaved []float64, channels int) {
	for i := 0; i < len(interleaved); i += channels {
		for ch := 0; ch < channels; ch++ {
			if a := math.Abs(interleaved[i+ch]); a > t.samplePeak[ch] {
				t.samplePeak[ch] = a
			}
		}

		if t.over == nil {
			continue
		}

		t.frame.CopyFrom(core.Frame(interleaved[i : i+channels]))
		t.over.Interpolate(t.frame, t.overOut)

		for _, out := range t.overOut {
			for ch := 0; ch < channels; ch++ {
				if a := math.Abs(out[ch]); a > t.truePeak[ch] {
					t.truePeak[ch] = a
				}
			}
		}
	}

	for ch := range t.truePeak {
		if t.samplePeak[ch] > t.truePeak[ch] {
			t.truePeak[ch] = t.samplePeak[ch]
		}
	}
}

func (t *peakTracker) reset() {
	core.Zero(t.samplePeak)
	core.Zero(t.truePeak)

	if t.over != nil {
		t.over.Reset()
	}
}
