// Package interp provides a polyphase oversampling interpolator for
// multichannel audio frames.
//
// [Polyphase] splits one 48-tap Hanning-windowed sinc lowpass into
// `factor` phase sub-filters of `48/factor` taps each, producing
// `factor` interpolated frames per input frame. It is the oversampling
// stage behind inter-sample (true) peak detection: the interpolated
// frames reveal peaks between the original samples that a plain sample
// maximum misses.
package interp
