// Package loudness implements EBU R128 / ITU-R BS.1770-4 loudness
// metering.
//
// A [Meter] consumes interleaved multichannel audio and maintains the
// standard program statistics: momentary (400 ms) and short-term (3 s)
// loudness, gated integrated loudness, loudness range (EBU Tech 3342),
// and per-channel sample and true peaks. Gating blocks are quantized
// into a fixed 0.1 LU histogram, so memory stays constant regardless of
// program length and meters can be merged for album-level measurement
// with [IntegratedMultiple].
//
// All loudness figures are in LUFS, loudness range in LU, peaks in
// linear amplitude. Silence gates out entirely; a fully gated program
// reports negative infinity, which is a measurement rather than an
// error.
package loudness
