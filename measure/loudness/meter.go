package loudness

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-r128/dsp/core"
	"github.com/cwbudde/algo-r128/dsp/filter/biquad"
	"github.com/cwbudde/algo-r128/dsp/filter/kweight"
	"github.com/cwbudde/algo-vecmath"
)

// Gating timing from BS.1770-4: 400 ms blocks advanced every 100 ms
// (75% overlap) for momentary and integrated loudness, 3 s windows for
// short-term loudness, with one short-term block recorded per second
// for loudness range.
const (
	hopDuration = 0.1 // seconds

	blockHops     = 4  // 400 ms
	shortTermHops = 30 // 3 s
	shortTermHop  = 10 // new short-term block every 1 s
)

// ErrNotEnoughData is returned by statistic queries before the
// relevant window has accumulated a full block.
var ErrNotEnoughData = errors.New("loudness: not enough data")

// ErrInvalidMode is returned when a statistic is queried on a meter
// that was not configured to maintain it.
var ErrInvalidMode = errors.New("loudness: statistic not enabled")

// Meter implements EBU R128 / ITU-R BS.1770-4 loudness metering:
// momentary, short-term and integrated loudness, loudness range, and
// sample/true peak. One Meter owns all per-channel filter, gating and
// peak state for a fixed channel count and sample rate; callers must
// serialize all calls against a single Meter, while independent Meters
// are fully parallel.
type Meter struct {
	sampleRate float64
	channels   int
	mode       Mode
	weights    []float64

	// K-weighting cascade, one per channel.
	filters []*biquad.Chain

	// Hop machinery. Each hop accumulates the weighted squared
	// K-filtered samples of all channels over 100 ms; the ring keeps
	// the last 30 completed hop sums so the 400 ms and 3 s windows are
	// both sums over ring tails.
	hopSamples int
	hopRing    []float64
	hopWrite   int
	hopFill    int
	hopAccum   float64
	hopsDone   int64

	blockHist     histogram // 400 ms blocks, integrated loudness
	shortTermHist histogram // 3 s blocks, loudness range

	peaks *peakTracker

	// Scratch reused across ProcessBlock calls.
	raw    []float64
	sq     []float64
	energy []float64
}

// NewMeter creates a loudness meter. It fails on a zero channel count,
// a sample rate below [kweight.MinSampleRate], or a weight override
// whose length does not match the channel count.
func NewMeter(opts ...MeterOption) (*Meter, error) {
	cfg := ApplyMeterOptions(opts...)

	if cfg.Channels <= 0 {
		return nil, fmt.Errorf("loudness: channel count must be > 0: %d", cfg.Channels)
	}

	if cfg.Weights != nil && len(cfg.Weights) != cfg.Channels {
		return nil, fmt.Errorf("loudness: %d weights for %d channels", len(cfg.Weights), cfg.Channels)
	}

	mode := cfg.Mode.normalize()

	m := &Meter{
		sampleRate: cfg.SampleRate,
		channels:   cfg.Channels,
		mode:       mode,
		hopSamples: int(math.Round(hopDuration * cfg.SampleRate)),
	}

	if cfg.Weights != nil {
		m.weights = append([]float64(nil), cfg.Weights...)
	} else {
		m.weights = defaultWeights(cfg.Channels)
	}

	m.filters = make([]*biquad.Chain, cfg.Channels)
	for i := range m.filters {
		chain, err := kweight.NewChain(cfg.SampleRate)
		if err != nil {
			return nil, fmt.Errorf("loudness: %w", err)
		}

		m.filters[i] = chain
	}

	m.hopRing = make([]float64, shortTermHops)

	if mode.has(ModeSamplePeak) {
		tracker, err := newPeakTracker(cfg.Channels, cfg.SampleRate, mode.has(ModeTruePeak))
		if err != nil {
			return nil, fmt.Errorf("loudness: %w", err)
		}

		m.peaks = tracker
	}

	if cfg.BlockSize > 0 {
		m.raw = make([]float64, 0, cfg.BlockSize)
		m.sq = make([]float64, 0, cfg.BlockSize)
		m.energy = make([]float64, 0, cfg.BlockSize)
	}

	return m, nil
}

// SampleRate returns the configured sample rate.
func (m *Meter) SampleRate() float64 {
	return m.sampleRate
}

// Channels returns the configured channel count.
func (m *Meter) Channels() int {
	return m.channels
}

// Mode returns the statistics the meter maintains, with implied modes
// resolved.
func (m *Meter) Mode() Mode {
	return m.mode
}

// SetChannelWeight overrides the gating weight of one channel. A zero
// weight excludes the channel (LFE) from the energy sum. Weights take
// effect for samples processed after the call.
func (m *Meter) SetChannelWeight(channel int, weight float64) error {
	if channel < 0 || channel >= m.channels {
		return fmt.Errorf("loudness: channel %d out of range [0, %d)", channel, m.channels)
	}

	if weight < 0 {
		return fmt.Errorf("loudness: weight must be >= 0: %v", weight)
	}

	m.weights[channel] = weight

	return nil
}

// ProcessBlock processes interleaved samples. The length must be a
// multiple of the channel count; otherwise an error is returned and no
// state is modified.
func (m *Meter) ProcessBlock(interleaved []float64) error {
	if len(interleaved)%m.channels != 0 {
		return fmt.Errorf("loudness: %d samples not a multiple of %d channels",
			len(interleaved), m.channels)
	}

	frames := len(interleaved) / m.channels
	if frames == 0 {
		return nil
	}

	m.raw = core.EnsureLen(m.raw, frames)
	m.sq = core.EnsureLen(m.sq, frames)

	m.energy = core.EnsureLen(m.energy, frames)
	core.Zero(m.energy)

	for ch := 0; ch < m.channels; ch++ {
		for i := 0; i < frames; i++ {
			m.raw[i] = interleaved[i*m.channels+ch]
		}

		m.filters[ch].ProcessBlockTo(m.raw, m.raw)

		vecmath.MulBlock(m.sq, m.raw, m.raw)

		if w := m.weights[ch]; w != 0 {
			for i := 0; i < frames; i++ {
				m.energy[i] += w * m.sq[i]
			}
		}
	}

	for i := 0; i < frames; i++ {
		m.hopAccum += m.energy[i]

		m.hopFill++
		if m.hopFill == m.hopSamples {
			m.finishHop()
		}
	}

	if m.peaks != nil {
		m.peaks.process(interleaved, m.channels)
	}

	return nil
}

// ProcessSample processes a single multichannel frame.
func (m *Meter) ProcessSample(frame []float64) error {
	if len(frame) != m.channels {
		return fmt.Errorf("loudness: frame width %d, want %d", len(frame), m.channels)
	}

	return m.ProcessBlock(frame)
}

// finishHop closes the current 100 ms hop: records its energy sum in
// the ring and, once enough hops exist, quantizes the completed 400 ms
// block (every hop) and 3 s block (every second) into the histograms.
func (m *Meter) finishHop() {
	m.hopRing[m.hopWrite] = m.hopAccum
	m.hopWrite = (m.hopWrite + 1) % shortTermHops

	m.hopAccum = 0
	m.hopFill = 0
	m.hopsDone++

	if m.mode.has(ModeIntegrated) && m.hopsDone >= blockHops {
		m.blockHist.add(m.windowEnergy(blockHops))
	}

	if m.mode.has(ModeLRA) && m.hopsDone >= shortTermHops &&
		(m.hopsDone-shortTermHops)%shortTermHop == 0 {
		m.shortTermHist.add(m.windowEnergy(shortTermHops))
	}
}

// windowEnergy returns the mean-square energy over the last hops
// completed hops.
func (m *Meter) windowEnergy(hops int) float64 {
	var sum float64

	idx := m.hopWrite
	for i := 0; i < hops; i++ {
		idx--
		if idx < 0 {
			idx = shortTermHops - 1
		}

		sum += m.hopRing[idx]
	}

	return sum / (float64(hops) * float64(m.hopSamples))
}

// Momentary returns the loudness of the most recently closed 400 ms
// gating block in LUFS. It returns [ErrNotEnoughData] until the first
// block has closed.
func (m *Meter) Momentary() (float64, error) {
	if !m.mode.has(ModeMomentary) {
		return 0, ErrInvalidMode
	}

	if m.hopsDone < blockHops {
		return 0, ErrNotEnoughData
	}

	return core.EnergyToLoudness(m.windowEnergy(blockHops)), nil
}

// ShortTerm returns the loudness over the most recent 3 s of closed
// hops in LUFS. It returns [ErrNotEnoughData] until 3 s have
// accumulated.
func (m *Meter) ShortTerm() (float64, error) {
	if !m.mode.has(ModeShortTerm) {
		return 0, ErrInvalidMode
	}

	if m.hopsDone < shortTermHops {
		return 0, ErrNotEnoughData
	}

	return core.EnergyToLoudness(m.windowEnergy(shortTermHops)), nil
}

// Integrated returns the gated program loudness in LUFS over all audio
// since construction or the last Reset. Blocks below the -70 LUFS
// absolute gate are discarded; the survivors' mean sets a relative
// gate 10 LU lower, and the mean of what remains is returned. The
// result is the loudness floor (negative infinity) when every block is
// gated out; that is a measurement, not an error.
func (m *Meter) Integrated() (float64, error) {
	if !m.mode.has(ModeIntegrated) {
		return 0, ErrInvalidMode
	}

	if m.hopsDone < blockHops {
		return 0, ErrNotEnoughData
	}

	return gatedLoudness(&m.blockHist), nil
}

// RelativeThreshold returns the current relative gate in LUFS used by
// [Meter.Integrated]: the mean loudness of absolutely-gated blocks
// minus 10 LU, or the absolute threshold itself while no block has
// passed the absolute gate.
func (m *Meter) RelativeThreshold() (float64, error) {
	if !m.mode.has(ModeIntegrated) {
		return 0, ErrInvalidMode
	}

	energy, count := m.blockHist.mean()
	if count == 0 {
		return absoluteThreshold, nil
	}

	return core.EnergyToLoudness(energy) + relativeGateLU, nil
}

// Range returns the loudness range (LRA) in LU per EBU Tech 3342,
// derived from 3 s short-term blocks: absolute gate at -70 LUFS,
// relative gate 20 LU below the gated mean, and the spread between the
// 10th and 95th energy-weighted percentiles. Returns 0 (not an error)
// while fewer than two blocks survive gating.
func (m *Meter) Range() (float64, error) {
	if !m.mode.has(ModeLRA) {
		return 0, ErrInvalidMode
	}

	if m.hopsDone < shortTermHops {
		return 0, ErrNotEnoughData
	}

	return m.shortTermHist.loudnessRange(), nil
}

// SamplePeak returns the largest absolute sample value seen on the
// channel since construction or Reset.
func (m *Meter) SamplePeak(channel int) (float64, error) {
	if !m.mode.has(ModeSamplePeak) {
		return 0, ErrInvalidMode
	}

	if channel < 0 || channel >= m.channels {
		return 0, fmt.Errorf("loudness: channel %d out of range [0, %d)", channel, m.channels)
	}

	return m.peaks.samplePeak[channel], nil
}

// TruePeak returns the largest absolute amplitude seen on the channel
// in either the original or the oversampled signal. It is never below
// the sample peak.
func (m *Meter) TruePeak(channel int) (float64, error) {
	if !m.mode.has(ModeTruePeak) {
		return 0, ErrInvalidMode
	}

	if channel < 0 || channel >= m.channels {
		return 0, fmt.Errorf("loudness: channel %d out of range [0, %d)", channel, m.channels)
	}

	return m.peaks.truePeak[channel], nil
}

// Reset clears all measurement state - filter histories, gating
// histograms, hop ring and peak trackers - while keeping the
// configuration. A reset meter behaves identically to a freshly
// constructed one.
func (m *Meter) Reset() {
	for _, f := range m.filters {
		f.Reset()
	}

	core.Zero(m.hopRing)
	m.hopWrite = 0
	m.hopFill = 0
	m.hopAccum = 0
	m.hopsDone = 0

	m.blockHist.reset()
	m.shortTermHist.reset()

	if m.peaks != nil {
		m.peaks.reset()
	}
}

// IntegratedMultiple returns the gated loudness over the combined
// gating blocks of several meters, e.g. the album loudness across
// per-track meters. All meters must have ModeIntegrated enabled; their
// channel layouts may differ.
func IntegratedMultiple(meters []*Meter) (float64, error) {
	if len(meters) == 0 {
		return 0, ErrNotEnoughData
	}

	hists := make([]*histogram, len(meters))

	for i, meter := range meters {
		if !meter.mode.has(ModeIntegrated) {
			return 0, ErrInvalidMode
		}

		hists[i] = &meter.blockHist
	}

	return gatedLoudness(hists...), nil
}
