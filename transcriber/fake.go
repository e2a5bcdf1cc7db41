package transcriber

import (
	"context"
	"sync"
)

// Fake returns a canned text or error and records what it was asked to
// transcribe.
type Fake struct {
	Text string
	Err  error

	mu         sync.Mutex
	calls      int
	lastAudio  []byte
	lastFormat string
}

func NewFake(text string, err error) *Fake {
	return &Fake{Text: text, Err: err}
}

func (f *Fake) Name() string { return "fake" }

func (f *Fake) Transcribe(_ context.Context, audio []byte, format string) (*Result, error) {
	f.mu.Lock()
	f.calls++
	f.lastAudio = append([]byte(nil), audio...)
	f.lastFormat = format
	f.mu.Unlock()

	if f.Err != nil {
		return nil, f.Err
	}
	return &Result{Text: f.Text}, nil
}

func (f *Fake) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *Fake) LastAudio() []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastAudio
}

func (f *Fake) LastFormat() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastFormat
}
