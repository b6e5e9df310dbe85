package kweight

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-r128/dsp/filter/biquad"
)

// MinSampleRate is the lowest supported sample rate in Hz. Below this
// the shelf prototype frequency sits too close to Nyquist for the
// bilinear transform to produce a stable, meaningful filter.
const MinSampleRate = 8000.0

// Analog prototype constants from ITU-R BS.1770-4. The shelf gain
// exponent positions the half-gain frequency of the shelf; none of
// these values may be rounded without changing measured loudness.
const (
	shelfFreq     = 1681.974450955533
	shelfGainDB   = 3.999843853973347
	shelfQ        = 0.7071752369554196
	shelfExponent = 0.4996667741545416

	highpassFreq = 38.13547087602444
	highpassQ    = 0.5003270373238773
)

// Design returns the two K-weighting stages for the given sample rate:
// the head-response high shelf and the RLB high pass, in processing
// order. It fails for rates below [MinSampleRate].
func Design(sampleRate float64) (shelf, highpass biquad.Coefficients, err error) {
	if sampleRate < MinSampleRate {
		return biquad.Coefficients{}, biquad.Coefficients{},
			fmt.Errorf("kweight: sample rate %v below minimum %v", sampleRate, MinSampleRate)
	}

	k := math.Tan(math.Pi * shelfFreq / sampleRate)
	vh := math.Pow(10, shelfGainDB/20)
	vb := math.Pow(vh, shelfExponent)

	a0 := 1 + k/shelfQ + k*k
	shelf = biquad.Coefficients{
		B0: (vh + vb*k/shelfQ + k*k) / a0,
		B1: 2 * (k*k - vh) / a0,
		B2: (vh - vb*k/shelfQ + k*k) / a0,
		A1: 2 * (k*k - 1) / a0,
		A2: (1 - k/shelfQ + k*k) / a0,
	}

	k = math.Tan(math.Pi * highpassFreq / sampleRate)

	a0 = 1 + k/highpassQ + k*k
	highpass = biquad.Coefficients{
		B0: 1 / a0,
		B1: -2 / a0,
		B2: 1 / a0,
		A1: 2 * (k*k - 1) / a0,
		A2: (1 - k/highpassQ + k*k) / a0,
	}

	return shelf, highpass, nil
}

// NewChain returns a ready-to-use per-channel K-weighting cascade.
func NewChain(sampleRate float64) (*biquad.Chain, error) {
	shelf, highpass, err := Design(sampleRate)
	if err != nil {
		return nil, err
	}

	return biquad.NewChain(shelf, highpass), nil
}
