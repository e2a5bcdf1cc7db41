package transcriber

import (
	"context"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/ylamidon/whisper-voice/encoder"
)

func silentChunks(n, samplesPerChunk int) [][]byte {
	chunks := make([][]byte, n)
	for i := range chunks {
		chunks[i] = make([]byte, samplesPerChunk*2)
	}
	return chunks
}

func TestPipelineTrimsWhitespace(t *testing.T) {
	fake := NewFake("  bonjour  \n", nil)
	p := NewPipeline(fake, "wav", 16000)

	text, err := p.Transcribe(context.Background(), silentChunks(1, 1024))
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if text != "bonjour" {
		t.Errorf("text = %q, want %q", text, "bonjour")
	}
	if fake.Calls() != 1 {
		t.Errorf("remote called %d times, want 1", fake.Calls())
	}
	if fake.LastFormat() != "wav" {
		t.Errorf("format = %q, want wav", fake.LastFormat())
	}
}

func TestPipelinePayloadSampleCount(t *testing.T) {
	// N identical silent blocks of S samples must encode exactly N×S
	// samples into the payload.
	const n, s = 5, 1024

	fake := NewFake("ok", nil)
	p := NewPipeline(fake, "wav", 16000)

	if _, err := p.Transcribe(context.Background(), silentChunks(n, s)); err != nil {
		t.Fatalf("Transcribe: %v", err)
	}

	payload := fake.LastAudio()
	if len(payload) < 44 {
		t.Fatalf("payload too short: %d bytes", len(payload))
	}
	dataSize := binary.LittleEndian.Uint32(payload[40:])
	if got := dataSize / 2; got != n*s {
		t.Errorf("payload encodes %d samples, want %d", got, n*s)
	}
}

func TestPipelineChunkRegrouping(t *testing.T) {
	// Chunk sizes that straddle encoder blocks must not drop samples.
	fake := NewFake("ok", nil)
	p := NewPipeline(fake, "wav", 16000)

	chunks := [][]byte{
		make([]byte, (encoder.BlockSize-7)*2),
		make([]byte, 10*2),
		make([]byte, (encoder.BlockSize*2+3)*2),
	}
	wantSamples := uint32(encoder.BlockSize - 7 + 10 + encoder.BlockSize*2 + 3)

	if _, err := p.Transcribe(context.Background(), chunks); err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	payload := fake.LastAudio()
	dataSize := binary.LittleEndian.Uint32(payload[40:])
	if got := dataSize / 2; got != wantSamples {
		t.Errorf("payload encodes %d samples, want %d", got, wantSamples)
	}
}

func TestPipelinePropagatesRemoteFailure(t *testing.T) {
	boom := errors.New("API down")
	fake := NewFake("", boom)
	p := NewPipeline(fake, "wav", 16000)

	_, err := p.Transcribe(context.Background(), silentChunks(1, 64))
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped %v", err, boom)
	}
}

func TestPipelineRejectsHalfSample(t *testing.T) {
	fake := NewFake("ok", nil)
	p := NewPipeline(fake, "wav", 16000)

	if _, err := p.Transcribe(context.Background(), [][]byte{make([]byte, 5)}); err == nil {
		t.Fatal("expected error for odd-length chunk")
	}
	if fake.Calls() != 0 {
		t.Error("remote called despite malformed input")
	}
}

func TestPipelineRejectsUnknownFormat(t *testing.T) {
	p := NewPipeline(NewFake("ok", nil), "ogg", 16000)
	if _, err := p.Transcribe(context.Background(), silentChunks(1, 64)); err == nil {
		t.Fatal("expected format error")
	}
}

func TestPipelineFlacFormat(t *testing.T) {
	fake := NewFake("ok", nil)
	p := NewPipeline(fake, "flac", 16000)

	if _, err := p.Transcribe(context.Background(), silentChunks(2, encoder.BlockSize)); err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	payload := fake.LastAudio()
	if len(payload) < 4 || string(payload[:4]) != "fLaC" {
		t.Error("payload is not a FLAC stream")
	}
	if fake.LastFormat() != "flac" {
		t.Errorf("format = %q, want flac", fake.LastFormat())
	}
}
