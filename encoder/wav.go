package encoder

import (
	"bytes"
	"encoding/binary"
	"sync"
)

const wavHeaderSize = 44

// WAVEncoder writes a RIFF/WAVE container with 16-bit little-endian mono
// PCM. The header is written with placeholder sizes and patched on Close,
// so the whole payload stays in memory until the upload.
type WAVEncoder struct {
	buf          bytes.Buffer
	sampleRate   int
	totalSamples uint64
	mu           sync.Mutex
}

func NewWAV(sampleRate int) *WAVEncoder {
	e := &WAVEncoder{sampleRate: sampleRate}
	e.writeHeader()
	return e
}

func (e *WAVEncoder) writeHeader() {
	bytesPerSample := BitsPerSample / 8
	byteRate := e.sampleRate * Channels * bytesPerSample

	e.buf.WriteString("RIFF")
	binary.Write(&e.buf, binary.LittleEndian, uint32(0)) // patched on Close
	e.buf.WriteString("WAVE")
	e.buf.WriteString("fmt ")
	binary.Write(&e.buf, binary.LittleEndian, uint32(16))
	binary.Write(&e.buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&e.buf, binary.LittleEndian, uint16(Channels))
	binary.Write(&e.buf, binary.LittleEndian, uint32(e.sampleRate))
	binary.Write(&e.buf, binary.LittleEndian, uint32(byteRate))
	binary.Write(&e.buf, binary.LittleEndian, uint16(Channels*bytesPerSample))
	binary.Write(&e.buf, binary.LittleEndian, uint16(BitsPerSample))
	e.buf.WriteString("data")
	binary.Write(&e.buf, binary.LittleEndian, uint32(0)) // patched on Close
}

func (e *WAVEncoder) EncodeBlock(block []int16) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	raw := make([]byte, len(block)*2)
	for i, s := range block {
		binary.LittleEndian.PutUint16(raw[i*2:], uint16(s))
	}
	e.buf.Write(raw)
	e.totalSamples += uint64(len(block))
	return nil
}

func (e *WAVEncoder) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	b := e.buf.Bytes()
	dataSize := uint32(len(b) - wavHeaderSize)
	binary.LittleEndian.PutUint32(b[4:], uint32(len(b)-8))
	binary.LittleEndian.PutUint32(b[40:], dataSize)
	return nil
}

func (e *WAVEncoder) Bytes() []byte {
	return e.buf.Bytes()
}

func (e *WAVEncoder) TotalSamples() uint64 {
	return e.totalSamples
}
