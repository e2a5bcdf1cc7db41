// Package recorder holds the capture state machine: a Session owning the
// shared recording state and a Controller driving it from the hotkey.
//
// Three contexts touch a Session concurrently: the audio driver's data
// callback, the hotkey listener calling Toggle, and one background
// goroutine per finished recording. All shared state lives behind a single
// mutex; the device handle is only ever stopped outside it, because Stop
// waits for an in-flight callback that needs the same mutex.
package recorder

import (
	"errors"
	"sync"

	"github.com/ylamidon/whisper-voice/audio"
)

// ErrAlreadyArmed reports that an Arm call found the session recording.
// The controller treats it as the recording→idle edge of a toggle.
var ErrAlreadyArmed = errors.New("recording already in progress")

// OpenFunc opens a capture stream with the given callback installed.
type OpenFunc func(cb audio.DataCallback) (audio.CaptureDevice, error)

// Session is one capture-to-transcript cycle's mutable state. The zero
// value via NewSession is idle and immediately armable; a drained session
// is reusable for the next cycle.
type Session struct {
	mu      sync.Mutex
	armed   bool
	chunks  [][]byte
	capture audio.CaptureDevice
}

func NewSession() *Session {
	return &Session{}
}

// Armed reports whether the microphone is actively being sampled.
func (s *Session) Armed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.armed
}

// Chunks reports how many blocks have been accepted so far.
func (s *Session) Chunks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.chunks)
}

// append is the capture-sink body. It runs on the audio driver's thread,
// so the critical section is a flag check plus one copy — nothing that
// blocks. The copy is mandatory: the driver reuses data after we return.
func (s *Session) append(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.armed || len(data) == 0 {
		return
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	s.chunks = append(s.chunks, buf)
}

// sink adapts append to the audio callback signature.
func (s *Session) sink(data []byte, _ uint32) {
	s.append(data)
}

// Arm transitions idle→recording: it resets the chunk buffer, opens a
// fresh capture stream with the session's sink installed, and starts it.
// Holding the mutex across open+start makes the toggle decision atomic
// with respect to append and to a concurrent Arm: overlapping hotkey
// presses can never both observe idle and leak a device handle. A failure
// from the device leaves the session idle and propagates to the caller.
func (s *Session) Arm(open OpenFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.armed {
		return ErrAlreadyArmed
	}

	dev, err := open(s.sink)
	if err != nil {
		return err
	}
	if err := dev.Start(); err != nil {
		dev.Close()
		return err
	}

	s.chunks = nil
	s.armed = true
	s.capture = dev
	return nil
}

// DisarmAndDrain ends the recording and returns every chunk accepted
// before it was called, in append order. Clearing the armed flag and
// harvesting the chunk list happen in one critical section: once the
// mutex is released this cycle's chunks are owned exclusively by the
// caller, so a toggle that re-arms during teardown starts a fresh buffer
// and can neither discard nor receive them. The device is then stopped
// outside the mutex: Stop blocks until any in-flight callback has
// returned, and such a callback appends nothing because armed is already
// false. A nil result means nothing was captured, which is a valid
// outcome, not an error. On return the session is idle and armable.
func (s *Session) DisarmAndDrain() [][]byte {
	s.mu.Lock()
	s.armed = false
	dev := s.capture
	s.capture = nil
	chunks := s.chunks
	s.chunks = nil
	s.mu.Unlock()

	if dev != nil {
		dev.Stop()
		dev.Close()
	}
	return chunks
}
