// Package buffer provides a fixed-capacity rolling history of
// multichannel frames for FIR-style inner loops. The buffer writes every
// frame twice (primary slot plus a shadow slot one capacity ahead) so
// that the most recent N frames are always readable as one contiguous,
// stride-1 window without copying or index wrapping on the read path.
package buffer
