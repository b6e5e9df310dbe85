// Package kweight designs the ITU-R BS.1770-4 K-weighting filter: a
// high-frequency shelf modelling the acoustic effect of the head,
// cascaded with the RLB high-pass revision of the B-curve. Both stages
// are second-order sections derived from the standard's analog
// prototype via the bilinear transform at the target sample rate.
//
// The cascade is applied per channel ahead of the mean-square energy
// measurement; its exact coefficients determine the reported LUFS
// values, so the prototype constants here must not be altered.
package kweight
