package loudness

import (
	"math"

	"github.com/cwbudde/algo-r128/dsp/core"
)

// Gating parameters from BS.1770-4 / EBU Tech 3342.
const (
	absoluteThreshold = -70.0 // LUFS
	relativeGateLU    = -10.0 // integrated loudness relative gate
	rangeGateLU       = -20.0 // loudness range relative gate

	histBins   = 1000
	histStepLU = 0.1
)

// binEnergies holds the mean-square energy at each bin center:
// bin i covers [absoluteThreshold + i*0.1, +0.1) LU.
var binEnergies = func() [histBins]float64 {
	var e [histBins]float64
	for i := range e {
		e[i] = core.LoudnessToEnergy(absoluteThreshold + (float64(i)+0.5)*histStepLU)
	}

	return e
}()

// histogram aggregates gating-block loudness into fixed 0.1 LU bins
// from the absolute gate upward. It stores only occurrence counts;
// individual block energies are discarded after quantization.
type histogram struct {
	counts [histBins]uint64
	total  uint64
}

// add quantizes the block energy into its loudness bin. Blocks at or
// below the absolute gate are discarded; their silence must not bias
// the gated statistics.
func (h *histogram) add(energy float64) {
	lufs := core.EnergyToLoudness(energy)
	if lufs < absoluteThreshold {
		return
	}

	i := int((lufs - absoluteThreshold) / histStepLU)
	if i < 0 {
		i = 0
	}

	if i >= histBins {
		i = histBins - 1
	}

	h.counts[i]++
	h.total++
}

// reset clears all counts.
func (h *histogram) reset() {
	*h = histogram{}
}

// mean returns the energy-domain mean over all stored blocks and the
// block count.
func (h *histogram) mean() (energy float64, count uint64) {
	var sum float64

	for i, c := range h.counts {
		if c != 0 {
			sum += float64(c) * binEnergies[i]
		}
	}

	if h.total == 0 {
		return 0, 0
	}

	return sum / float64(h.total), h.total
}

// gatedLoudness runs the two-stage gating: all stored blocks already
// passed the absolute gate; their mean minus relativeGateLU sets the
// relative gate, and the loudness of the surviving mean is returned.
// Returns the loudness floor when nothing survives.
func gatedLoudness(hists ...*histogram) float64 {
	var (
		sum   float64
		count uint64
	)

	for _, h := range hists {
		for i, c := range h.counts {
			if c != 0 {
				sum += float64(c) * binEnergies[i]
				count += c
			}
		}
	}

	if count == 0 {
		return core.LoudnessFloor
	}

	threshold := core.LoudnessToEnergy(core.EnergyToLoudness(sum/float64(count)) + relativeGateLU)

	sum = 0
	count = 0

	for _, h := range hists {
		for i, c := range h.counts {
			if c != 0 && binEnergies[i] >= threshold {
				sum += float64(c) * binEnergies[i]
				count += c
			}
		}
	}

	if count == 0 {
		return core.LoudnessFloor
	}

	return core.EnergyToLoudness(sum / float64(count))
}

// loudnessRange computes LRA per EBU Tech 3342 over short-term blocks:
// relative gate at rangeGateLU below the gated mean, then the spread
// between the 10th and 95th percentile of the surviving distribution,
// taken over cumulative counts.
func (h *histogram) loudnessRange() float64 {
	meanEnergy, count := h.mean()
	if count == 0 {
		return 0
	}

	threshold := meanEnergy * math.Pow(10, rangeGateLU/10)

	start := 0
	for start < histBins && binEnergies[start] < threshold {
		start++
	}

	var surviving uint64
	for i := start; i < histBins; i++ {
		surviving += h.counts[i]
	}

	if surviving < 2 {
		return 0
	}

	low := h.percentile(start, surviving, 0.10)
	high := h.percentile(start, surviving, 0.95)

	return core.EnergyToLoudness(high) - core.EnergyToLoudness(low)
}

// percentile returns the bin-center energy at the given rank fraction
// of the surviving cumulative counts, starting at bin start.
func (h *histogram) percentile(start int, surviving uint64, fraction float64) float64 {
	rank := uint64(float64(surviving-1)*fraction + 0.5)

	var cum uint64

	for i := start; i < histBins; i++ {
		cum += h.counts[i]
		if cum > rank {
			return binEnergies[i]
		}
	}

	return binEnergies[histBins-1]
}
