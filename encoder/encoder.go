package encoder

import "fmt"

const (
	Channels      = 1
	BitsPerSample = 16
	BlockSize     = 4096
)

// Encoder turns fixed-format PCM blocks into the payload uploaded to the
// transcription API. Implementations buffer in memory; Bytes is only valid
// after Close.
type Encoder interface {
	EncodeBlock(block []int16) error
	Close() error
	Bytes() []byte
	TotalSamples() uint64
}

func New(format string, sampleRate int) (Encoder, error) {
	switch format {
	case "wav":
		return NewWAV(sampleRate), nil
	case "flac":
		return NewFlac(sampleRate)
	default:
		return nil, fmt.Errorf("unknown format %q (use wav or flac)", format)
	}
}
