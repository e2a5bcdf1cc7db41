package encoder

import (
	"math"
	"testing"
)

func sine(n int, freq float64, rate int) []int16 {
	samples := make([]int16, n)
	for i := range samples {
		samples[i] = int16(8000 * math.Sin(2*math.Pi*freq*float64(i)/float64(rate)))
	}
	return samples
}

func TestFlacEncoder(t *testing.T) {
	samples := sine(3*BlockSize+BlockSize/2, 440, 16000)

	enc, err := NewFlac(16000)
	if err != nil {
		t.Fatalf("NewFlac: %v", err)
	}

	var totalFed uint64
	for i := 0; i < len(samples); i += BlockSize {
		end := min(i+BlockSize, len(samples))
		block := samples[i:end]
		if err := enc.EncodeBlock(block); err != nil {
			t.Fatalf("EncodeBlock at offset %d: %v", i, err)
		}
		totalFed += uint64(len(block))
	}

	if err := enc.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if enc.TotalSamples() != totalFed {
		t.Errorf("TotalSamples = %d, want %d", enc.TotalSamples(), totalFed)
	}

	flacData := enc.Bytes()
	if len(flacData) < 4 || string(flacData[:4]) != "fLaC" {
		t.Fatal("output does not start with FLAC magic")
	}
}

func TestFlacEncoderEmpty(t *testing.T) {
	enc, err := NewFlac(16000)
	if err != nil {
		t.Fatalf("NewFlac: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("Close on empty encoder: %v", err)
	}
	if enc.TotalSamples() != 0 {
		t.Errorf("TotalSamples = %d, want 0", enc.TotalSamples())
	}
	if len(enc.Bytes()) == 0 {
		t.Error("expected non-empty FLAC output (at least header)")
	}
}

func TestFlacEncoderPartialBlock(t *testing.T) {
	enc, err := NewFlac(16000)
	if err != nil {
		t.Fatalf("NewFlac: %v", err)
	}

	partial := sine(BlockSize/4, 220, 16000)
	if err := enc.EncodeBlock(partial); err != nil {
		t.Fatalf("EncodeBlock partial: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if enc.TotalSamples() != uint64(len(partial)) {
		t.Errorf("TotalSamples = %d, want %d", enc.TotalSamples(), len(partial))
	}
}
