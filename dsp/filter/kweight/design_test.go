package kweight

import (
	"math"
	"testing"
)

func TestDesignRejectsLowSampleRate(t *testing.T) {
	if _, _, err := Design(4000); err == nil {
		t.Fatal("expected error below MinSampleRate")
	}

	if _, err := NewChain(0); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
}

func TestCascadeResponse(t *testing.T) {
	// Reference magnitudes of the full K-weighting cascade. The curve
	// is close to sample-rate independent because both stages derive
	// from the same analog prototype.
	cases := []struct {
		freq   float64
		wantDB float64
	}{
		{10, -23.8294},
		{highpassFreq, -6.0149}, // -6 dB at the RLB corner (Q near 0.5)
		{100, -1.1768},
		{997, 0.6477},
		{10000, 3.9986},
	}

	for _, fs := range []float64{44100, 48000, 96000} {
		chain, err := NewChain(fs)
		if err != nil {
			t.Fatal(err)
		}

		for _, tc := range cases {
			got := chain.MagnitudeDB(tc.freq, fs)
			if math.Abs(got-tc.wantDB) > 0.02 {
				t.Errorf("fs=%v f=%v: got %.4f dB, want %.4f dB", fs, tc.freq, got, tc.wantDB)
			}
		}
	}
}

func TestShelfHighFrequencyGain(t *testing.T) {
	shelf, _, err := Design(48000)
	if err != nil {
		t.Fatal(err)
	}

	// The shelf plateaus at the prototype gain well above its corner.
	got := shelf.MagnitudeDB(15000, 48000)
	if math.Abs(got-shelfGainDB) > 0.05 {
		t.Fatalf("shelf gain at 15 kHz = %.4f dB, want ~%.4f dB", got, shelfGainDB)
	}
}

func TestStagesAreStable(t *testing.T) {
	for _, fs := range []float64{8000, 44100, 48000, 96000, 192000} {
		shelf, highpass, err := Design(fs)
		if err != nil {
			t.Fatal(err)
		}

		for _, c := range []struct {
			name   string
			a1, a2 float64
		}{
			{"shelf", shelf.A1, shelf.A2},
			{"highpass", highpass.A1, highpass.A2},
		} {
			// Stability triangle for a normalized biquad denominator.
			if !(math.Abs(c.a2) < 1 && math.Abs(c.a1) < 1+c.a2) {
				t.Errorf("fs=%v %s: poles outside unit circle (a1=%v a2=%v)", fs, c.name, c.a1, c.a2)
			}
		}
	}
}
