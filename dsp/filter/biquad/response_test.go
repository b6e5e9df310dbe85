package biquad

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestResponseIdentity(t *testing.T) {
	c := identity

	for _, f := range []float64{0, 100, 1000, 12000, 23999} {
		h := c.Response(f, 48000)
		if cmplx.Abs(h-1) > 1e-12 {
			t.Errorf("identity response at %v Hz: got %v, want 1", f, h)
		}

		if db := c.MagnitudeDB(f, 48000); math.Abs(db) > 1e-10 {
			t.Errorf("identity magnitude at %v Hz: got %v dB, want 0", f, db)
		}
	}
}

func TestMagnitudeSquaredMatchesResponse(t *testing.T) {
	c := Coefficients{B0: 0.2, B1: 0.4, B2: 0.2, A1: -0.5, A2: 0.1}

	for _, f := range []float64{0, 50, 440, 1000, 5000, 15000} {
		want := math.Pow(cmplx.Abs(c.Response(f, 48000)), 2)

		got := c.MagnitudeSquared(f, 48000)
		if math.Abs(got-want) > 1e-12 {
			t.Errorf("at %v Hz: closed form %v, complex form %v", f, got, want)
		}
	}
}

func TestResponseMovingAverage(t *testing.T) {
	// A two-point average has unity gain at DC and a null at Nyquist.
	c := Coefficients{B0: 0.5, B1: 0.5}

	if m := c.MagnitudeSquared(0, 48000); math.Abs(m-1) > 1e-12 {
		t.Errorf("DC gain: got %v, want 1", m)
	}

	if m := c.MagnitudeSquared(24000, 48000); m > 1e-12 {
		t.Errorf("Nyquist gain: got %v, want 0", m)
	}
}

func TestChainResponseIsProductOfSections(t *testing.T) {
	coeffs := twoSectionCoeffs()
	chain := NewChain(coeffs...)

	for _, f := range []float64{10, 100, 1000, 10000} {
		want := coeffs[0].Response(f, 48000) * coeffs[1].Response(f, 48000)

		got := chain.Response(f, 48000)
		if cmplx.Abs(got-want) > 1e-12 {
			t.Errorf("at %v Hz: chain %v, product %v", f, got, want)
		}

		wantDB := coeffs[0].MagnitudeDB(f, 48000) + coeffs[1].MagnitudeDB(f, 48000)
		if db := chain.MagnitudeDB(f, 48000); math.Abs(db-wantDB) > 1e-9 {
			t.Errorf("at %v Hz: chain %v dB, sum %v dB", f, db, wantDB)
		}
	}
}
