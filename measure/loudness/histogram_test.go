package loudness

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-r128/dsp/core"
)

func TestHistogram_AbsoluteGate(t *testing.T) {
	var h histogram

	h.add(core.LoudnessToEnergy(-80)) // below the gate, discarded
	h.add(core.LoudnessToEnergy(-71))
	h.add(0) // digital silence

	if h.total != 0 {
		t.Fatalf("sub-gate blocks stored: total = %d", h.total)
	}

	h.add(core.LoudnessToEnergy(-69.95))
	if h.total != 1 {
		t.Fatalf("block above gate not stored: total = %d", h.total)
	}
}

func TestHistogram_BinQuantization(t *testing.T) {
	var h histogram

	// Blocks within the same 0.1 LU bin share a count.
	h.add(core.LoudnessToEnergy(-23.01))
	h.add(core.LoudnessToEnergy(-23.09))

	mean, count := h.mean()
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}

	got := core.EnergyToLoudness(mean)
	if math.Abs(got-(-23.05)) > 1e-9 {
		t.Errorf("bin-center loudness: got %v, want -23.05", got)
	}
}

func TestGatedLoudness_SingleLoudBlock(t *testing.T) {
	var h histogram

	// One loud block among material that never clears the absolute
	// gate: the result is the loud block's own loudness.
	h.add(core.LoudnessToEnergy(-10))
	for i := 0; i < 50; i++ {
		h.add(1e-10)
	}

	got := gatedLoudness(&h)
	if math.Abs(got-(-10)) > histStepLU {
		t.Errorf("gated loudness: got %v, want -10", got)
	}
}

func TestGatedLoudness_RelativeGate(t *testing.T) {
	var h histogram

	// 90 blocks at -20 LUFS and 10 at -40. The mean sits near -20, the
	// relative gate near -30, so the -40 blocks are excluded.
	for i := 0; i < 90; i++ {
		h.add(core.LoudnessToEnergy(-20))
	}
	for i := 0; i < 10; i++ {
		h.add(core.LoudnessToEnergy(-40))
	}

	got := gatedLoudness(&h)
	if math.Abs(got-(-20)) > histStepLU {
		t.Errorf("gated loudness: got %v, want -20", got)
	}
}

func TestGatedLoudness_Empty(t *testing.T) {
	var h histogram

	if got := gatedLoudness(&h); !math.IsInf(got, -1) {
		t.Errorf("empty histogram: got %v, want -Inf", got)
	}
}

func TestGatedLoudness_Combined(t *testing.T) {
	var loud, quiet histogram

	for i := 0; i < 100; i++ {
		loud.add(core.LoudnessToEnergy(-10))
		quiet.add(core.LoudnessToEnergy(-30))
	}

	// The quiet histogram falls below the combined relative gate and
	// drops out entirely.
	got := gatedLoudness(&loud, &quiet)
	if math.Abs(got-(-10)) > histStepLU {
		t.Errorf("combined gated loudness: got %v, want -10", got)
	}
}

func TestLoudnessRange_TwoClusters(t *testing.T) {
	var h histogram

	for i := 0; i < 50; i++ {
		h.add(core.LoudnessToEnergy(-10))
		h.add(core.LoudnessToEnergy(-25))
	}

	// Both clusters survive the -20 LU range gate; the percentile
	// endpoints land one in each cluster.
	got := h.loudnessRange()
	if math.Abs(got-15) > histStepLU {
		t.Errorf("loudness range: got %v, want 15", got)
	}
}

func TestLoudnessRange_FewBlocks(t *testing.T) {
	var h histogram

	if got := h.loudnessRange(); got != 0 {
		t.Errorf("empty histogram range: got %v, want 0", got)
	}

	h.add(core.LoudnessToEnergy(-12))
	if got := h.loudnessRange(); got != 0 {
		t.Errorf("single block range: got %v, want 0", got)
	}
}

func TestHistogram_Reset(t *testing.T) {
	var h histogram

	for i := 0; i < 10; i++ {
		h.add(core.LoudnessToEnergy(-15))
	}

	h.reset()

	if h.total != 0 {
		t.Errorf("total after reset: %d", h.total)
	}

	if got := gatedLoudness(&h); !math.IsInf(got, -1) {
		t.Errorf("gated loudness after reset: got %v, want -Inf", got)
	}
}
