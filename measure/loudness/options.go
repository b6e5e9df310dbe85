package loudness

import "github.com/cwbudde/algo-r128/dsp/core"

// Mode selects which statistics a [Meter] maintains. Disabling unused
// statistics avoids their memory and per-sample cost.
type Mode uint

const (
	// ModeMomentary enables the 400 ms momentary loudness window.
	ModeMomentary Mode = 1 << iota
	// ModeShortTerm enables the 3 s short-term loudness window.
	ModeShortTerm
	// ModeIntegrated enables gated program loudness over the whole
	// measurement.
	ModeIntegrated
	// ModeLRA enables loudness range (EBU Tech 3342).
	ModeLRA
	// ModeSamplePeak tracks the per-channel sample peak.
	ModeSamplePeak
	// ModeTruePeak tracks the per-channel inter-sample (true) peak via
	// polyphase oversampling. Implies ModeSamplePeak.
	ModeTruePeak

	// ModeAll enables every statistic.
	ModeAll = ModeMomentary | ModeShortTerm | ModeIntegrated | ModeLRA |
		ModeSamplePeak | ModeTruePeak
)

// normalize resolves implied modes: the longer windows are derived from
// the same hop energies as the momentary window, and true peak always
// covers sample peak.
func (m Mode) normalize() Mode {
	if m&(ModeShortTerm|ModeIntegrated|ModeLRA) != 0 {
		m |= ModeMomentary
	}

	if m&ModeLRA != 0 {
		m |= ModeShortTerm
	}

	if m&ModeTruePeak != 0 {
		m |= ModeSamplePeak
	}

	return m
}

func (m Mode) has(flag Mode) bool {
	return m&flag == flag
}

// MeterConfig defines configuration for the loudness meter.
type MeterConfig struct {
	core.ProcessorConfig

	Channels int
	Mode     Mode

	// Weights holds per-channel gating weights. Empty means the
	// BS.1770 defaults for the channel count are applied.
	Weights []float64
}

// MeterOption mutates a MeterConfig.
type MeterOption func(*MeterConfig)

// DefaultMeterConfig returns sensible defaults: stereo, 48 kHz, all
// statistics enabled.
func DefaultMeterConfig() MeterConfig {
	return MeterConfig{
		ProcessorConfig: core.DefaultProcessorConfig(),
		Channels:        2,
		Mode:            ModeAll,
	}
}

// WithSampleRate sets the processing sample rate. Rates below
// kweight.MinSampleRate are rejected by [NewMeter].
func WithSampleRate(sampleRate float64) MeterOption {
	return func(cfg *MeterConfig) {
		cfg.SampleRate = sampleRate
	}
}

// WithChannels sets the number of channels (1 for mono, 2 for stereo,
// 6 for 5.1). A non-positive count is rejected by [NewMeter].
func WithChannels(channels int) MeterOption {
	return func(cfg *MeterConfig) {
		cfg.Channels = channels
	}
}

// WithBlockSize sets the expected ProcessBlock frame count so scratch
// buffers are allocated up front. Larger blocks still work; they just
// reallocate once.
func WithBlockSize(frames int) MeterOption {
	return func(cfg *MeterConfig) {
		if frames > 0 {
			cfg.BlockSize = frames
		}
	}
}

// WithMode selects the statistics the meter maintains.
func WithMode(mode Mode) MeterOption {
	return func(cfg *MeterConfig) {
		if mode != 0 {
			cfg.Mode = mode
		}
	}
}

// WithChannelWeights overrides the per-channel gating weights. The
// slice length must match the channel count; use 0 to exclude a
// channel (LFE) from the energy sum.
func WithChannelWeights(weights []float64) MeterOption {
	return func(cfg *MeterConfig) {
		cfg.Weights = weights
	}
}

// ApplyMeterOptions applies zero or more options to the default config.
func ApplyMeterOptions(opts ...MeterOption) MeterConfig {
	cfg := DefaultMeterConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// defaultWeights returns the BS.1770-4 gating weights for common
// channel orderings: front channels at unity, surrounds at +1.5 dB
// (1.41), LFE excluded. Layouts without a standard ordering default to
// unity everywhere.
func defaultWeights(channels int) []float64 {
	w := make([]float64, channels)
	for i := range w {
		w[i] = 1
	}

	switch channels {
	case 5: // L R C Ls Rs
		w[3], w[4] = surroundWeight, surroundWeight
	case 6: // L R C LFE Ls Rs
		w[3] = 0
		w[4], w[5] = surroundWeight, surroundWeight
	}

	return w
}

const surroundWeight = 1.41
