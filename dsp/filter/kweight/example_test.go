package kweight_test

import (
	"fmt"

	"github.com/cwbudde/algo-r128/dsp/filter/kweight"
)

func ExampleNewChain() {
	chain, _ := kweight.NewChain(48000)

	fmt.Printf("100 Hz: %.1f dB\n", chain.MagnitudeDB(100, 48000))
	fmt.Printf("1 kHz:  %.1f dB\n", chain.MagnitudeDB(1000, 48000))
	fmt.Printf("10 kHz: %.1f dB\n", chain.MagnitudeDB(10000, 48000))
	// Output:
	// 100 Hz: -1.2 dB
	// 1 kHz:  0.7 dB
	// 10 kHz: 4.0 dB
}
