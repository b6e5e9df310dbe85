package loudness_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-r128/measure/loudness"
)

func ExampleMeter() {
	fs := 48000.0
	m, err := loudness.NewMeter(
		loudness.WithSampleRate(fs),
		loudness.WithChannels(1),
	)
	if err != nil {
		panic(err)
	}

	// 4 seconds of a 1000 Hz sine at 0.5 amplitude (-6.02 dBFS).
	// Mean square = 0.5^2/2 = 0.125; the K-weighting filter adds about
	// 0.65 dB at 1 kHz, so the loudness comes out near
	// -0.691 + 10*log10(0.125) + 0.65 = -9.07 LUFS. Integrated loudness
	// is additionally quantized to 0.1 LU histogram bins.
	n := int(fs * 4)

	sig := make([]float64, n)
	for i := range sig {
		sig[i] = 0.5 * math.Sin(2*math.Pi*1000.0/fs*float64(i))
	}

	if err := m.ProcessBlock(sig); err != nil {
		panic(err)
	}

	mom, _ := m.Momentary()
	short, _ := m.ShortTerm()
	integrated, _ := m.Integrated()

	fmt.Printf("Momentary: %.2f LUFS\n", mom)
	fmt.Printf("Short-term: %.2f LUFS\n", short)
	fmt.Printf("Integrated: %.2f LUFS\n", integrated)

	// Output:
	// Momentary: -9.07 LUFS
	// Short-term: -9.07 LUFS
	// Integrated: -9.05 LUFS
}

func ExampleMeter_TruePeak() {
	m, err := loudness.NewMeter(
		loudness.WithSampleRate(48000),
		loudness.WithChannels(1),
		loudness.WithMode(loudness.ModeTruePeak),
	)
	if err != nil {
		panic(err)
	}

	// A full-scale tone at the Nyquist frequency: every sample is +1 or
	// -1, but the continuous waveform peaks between the samples.
	sig := make([]float64, 4096)
	for i := range sig {
		if i%2 == 0 {
			sig[i] = 1
		} else {
			sig[i] = -1
		}
	}

	if err := m.ProcessBlock(sig); err != nil {
		panic(err)
	}

	sp, _ := m.SamplePeak(0)
	tp, _ := m.TruePeak(0)

	fmt.Printf("Sample peak: %.3f\n", sp)
	fmt.Printf("True peak: %.3f\n", tp)

	// Output:
	// Sample peak: 1.000
	// True peak: 1.169
}

func ExampleIntegratedMultiple() {
	newTrack := func(amp float64) *loudness.Meter {
		m, err := loudness.NewMeter(
			loudness.WithSampleRate(48000),
			loudness.WithChannels(1),
			loudness.WithMode(loudness.ModeIntegrated),
		)
		if err != nil {
			panic(err)
		}

		sig := make([]float64, 48000*5)
		for i := range sig {
			sig[i] = amp * math.Sin(2*math.Pi*997.0/48000.0*float64(i))
		}

		if err := m.ProcessBlock(sig); err != nil {
			panic(err)
		}

		return m
	}

	tracks := []*loudness.Meter{newTrack(1.0), newTrack(0.5)}

	album, err := loudness.IntegratedMultiple(tracks)
	if err != nil {
		panic(err)
	}

	fmt.Printf("Album loudness: %.2f LUFS\n", album)

	// Output:
	// Album loudness: -5.09 LUFS
}
