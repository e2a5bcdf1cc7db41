package transcriber

import (
	"context"
	"encoding/binary"
	"fmt"
	"strings"
	"time"

	"github.com/ylamidon/whisper-voice/encoder"
	"github.com/ylamidon/whisper-voice/log"
)

// Pipeline turns one drained recording into text: it packs the PCM chunks
// into the configured exchange format and hands the payload to the remote
// transcriber. It performs no retries; every failure propagates to the
// caller unchanged.
type Pipeline struct {
	tr         Transcriber
	format     string
	sampleRate int
}

func NewPipeline(tr Transcriber, format string, sampleRate int) *Pipeline {
	return &Pipeline{tr: tr, format: format, sampleRate: sampleRate}
}

// Transcribe encodes chunks (16-bit LE mono PCM, in capture order) and
// returns the whitespace-trimmed transcript. The caller guarantees chunks
// is non-empty.
func (p *Pipeline) Transcribe(ctx context.Context, chunks [][]byte) (string, error) {
	enc, err := encoder.New(p.format, p.sampleRate)
	if err != nil {
		return "", err
	}

	encodeStart := time.Now()
	if err := encodeChunks(enc, chunks); err != nil {
		enc.Close()
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("finalizing %s payload: %w", p.format, err)
	}
	encodeTime := time.Since(encodeStart)

	payload := enc.Bytes()
	result, err := p.tr.Transcribe(ctx, payload, p.format)
	if err != nil {
		return "", err
	}

	rawSize := enc.TotalSamples() * 2
	log.TranscriptionMetrics(log.Metrics{
		AudioLengthS:  float64(enc.TotalSamples()) / float64(p.sampleRate),
		RawSizeKB:     float64(rawSize) / 1024,
		EncodedSizeKB: float64(len(payload)) / 1024,
		EncodeTimeMs:  float64(encodeTime.Milliseconds()),
		TotalTimeMs:   totalMs(result.Metrics),
	}, p.format, p.tr.Name())
	if result.RateLimit != "" && result.RateLimit != "?/?" {
		log.Info("rate_limit: " + result.RateLimit)
	}

	return strings.TrimSpace(result.Text), nil
}

// encodeChunks regroups arbitrarily-sized capture chunks into fixed
// encoder blocks, flushing any partial block at the end.
func encodeChunks(enc encoder.Encoder, chunks [][]byte) error {
	block := make([]int16, 0, encoder.BlockSize)
	for _, chunk := range chunks {
		if len(chunk)%2 != 0 {
			return fmt.Errorf("pcm chunk has a trailing half sample (%d bytes)", len(chunk))
		}
		for i := 0; i+1 < len(chunk); i += 2 {
			block = append(block, int16(binary.LittleEndian.Uint16(chunk[i:])))
			if len(block) == encoder.BlockSize {
				if err := enc.EncodeBlock(block); err != nil {
					return err
				}
				block = block[:0]
			}
		}
	}
	if len(block) > 0 {
		return enc.EncodeBlock(block)
	}
	return nil
}

func totalMs(m *NetworkMetrics) float64 {
	if m == nil {
		return 0
	}
	return float64(m.Total.Milliseconds())
}
