package interp

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// KernelSpectrum returns the magnitude spectrum of the flattened
// interpolation kernel, zero-padded to fftSize, with bins normalized so
// that a unity-gain passband reads as factor (the kernel's DC gain).
// fftSize must be a power of two of at least Taps.
//
// The spectrum is a design diagnostic: the passband (below the original
// Nyquist, i.e. the first 1/(2*factor) of the bins) should be flat and
// the stopband should show the windowed-sinc rejection.
func (p *Polyphase) KernelSpectrum(fftSize int) ([]float64, error) {
	if fftSize < Taps {
		return nil, fmt.Errorf("interp: fft size %d below kernel length %d", fftSize, Taps)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("interp: %w", err)
	}

	in := make([]complex128, fftSize)

	for j := 0; j < p.activeTaps; j++ {
		for f := 0; f < p.factor; f++ {
			in[j*p.factor+f] = complex(p.kernel[j][f], 0)
		}
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("interp: %w", err)
	}

	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)

	for i := 0; i < bins; i++ {
		re[i] = real(out[i])
		im[i] = imag(out[i])
	}

	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)

	return mag, nil
}
