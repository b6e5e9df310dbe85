package core

import "testing"

func TestApplyProcessorOptions(t *testing.T) {
	cfg := ApplyProcessorOptions(WithSampleRate(44100), WithBlockSize(256))
	if cfg.SampleRate != 44100 {
		t.Fatalf("SampleRate = %v, want 44100", cfg.SampleRate)
	}

	if cfg.BlockSize != 256 {
		t.Fatalf("BlockSize = %d, want 256", cfg.BlockSize)
	}
}

func TestApplyProcessorOptionsRejectsInvalid(t *testing.T) {
	def := DefaultProcessorConfig()

	cfg := ApplyProcessorOptions(WithSampleRate(-1), WithBlockSize(0), nil)
	if cfg != def {
		t.Fatalf("invalid options must leave defaults: got %+v, want %+v", cfg, def)
	}
}
