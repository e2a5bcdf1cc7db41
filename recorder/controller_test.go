package recorder

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ylamidon/whisper-voice/audio"
)

type deliverRecorder struct {
	mu    sync.Mutex
	texts []string
	err   error
}

func (d *deliverRecorder) deliver(text string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return d.err
	}
	d.texts = append(d.texts, text)
	return nil
}

func (d *deliverRecorder) delivered() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.texts...)
}

func waitDone(t *testing.T, done <-chan struct{}) {
	t.Helper()
	if done == nil {
		t.Fatal("expected a background task, got nil done channel")
	}
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("background task did not finish")
	}
}

func TestToggleFullCycleDeliversTranscript(t *testing.T) {
	ctx := audio.NewFakeContext()
	sess := NewSession()
	out := &deliverRecorder{}

	var transcribedSamples int
	c := NewController(sess, Config{
		Open: fakeOpen(ctx),
		Transcribe: func(_ context.Context, chunks [][]byte) (string, error) {
			for _, ch := range chunks {
				transcribedSamples += len(ch) / 2
			}
			return "bonjour", nil
		},
		Deliver: out.deliver,
	})

	done, err := c.Toggle()
	if err != nil {
		t.Fatalf("Toggle (arm): %v", err)
	}
	if done != nil {
		t.Fatal("arming toggle should not spawn a task")
	}
	if !sess.Armed() {
		t.Fatal("session not armed after toggle")
	}
	if sess.Chunks() != 0 {
		t.Fatal("fresh session has leftover chunks")
	}

	dev := ctx.Last()
	for i := 0; i < 3; i++ {
		dev.Feed(pcmChunk(1024, int16(i)))
	}

	done, err = c.Toggle()
	if err != nil {
		t.Fatalf("Toggle (drain): %v", err)
	}
	waitDone(t, done)

	if transcribedSamples != 3072 {
		t.Errorf("transcribed %d samples, want 3072", transcribedSamples)
	}
	if got := out.delivered(); len(got) != 1 || got[0] != "bonjour" {
		t.Errorf("delivered %q, want exactly [\"bonjour\"]", got)
	}
	if sess.Armed() {
		t.Error("session still armed after cycle")
	}
}

func TestToggleEmptyCaptureSkipsPipeline(t *testing.T) {
	ctx := audio.NewFakeContext()
	sess := NewSession()
	out := &deliverRecorder{}

	transcribeCalls := 0
	var reports []string
	c := NewController(sess, Config{
		Open: fakeOpen(ctx),
		Transcribe: func(context.Context, [][]byte) (string, error) {
			transcribeCalls++
			return "", nil
		},
		Deliver: out.deliver,
		Report:  func(format string, args ...any) { reports = append(reports, format) },
	})

	if _, err := c.Toggle(); err != nil {
		t.Fatalf("Toggle (arm): %v", err)
	}
	done, err := c.Toggle()
	if err != nil {
		t.Fatalf("Toggle (drain): %v", err)
	}
	waitDone(t, done)

	if transcribeCalls != 0 {
		t.Error("transcribe called for empty capture")
	}
	if len(out.delivered()) != 0 {
		t.Error("deliver called for empty capture")
	}
	warned := false
	for _, r := range reports {
		if r == "⚠  No audio captured." {
			warned = true
		}
	}
	if !warned {
		t.Error("empty-capture warning not reported")
	}
}

func TestToggleTranscriptionFailureLeavesIdle(t *testing.T) {
	ctx := audio.NewFakeContext()
	sess := NewSession()
	out := &deliverRecorder{}
	boom := errors.New("API down")

	failures := 0
	c := NewController(sess, Config{
		Open: fakeOpen(ctx),
		Transcribe: func(context.Context, [][]byte) (string, error) {
			return "", boom
		},
		Deliver: out.deliver,
		Report: func(format string, args ...any) {
			if len(args) == 1 && errors.Is(args[0].(error), boom) {
				failures++
			}
		},
	})

	if _, err := c.Toggle(); err != nil {
		t.Fatalf("Toggle (arm): %v", err)
	}
	ctx.Last().Feed(pcmChunk(1024, 5))

	done, err := c.Toggle()
	if err != nil {
		t.Fatalf("Toggle (drain): %v", err)
	}
	waitDone(t, done)

	if len(out.delivered()) != 0 {
		t.Error("deliver called despite transcription failure")
	}
	if failures != 1 {
		t.Errorf("failure reported %d times, want exactly once", failures)
	}

	// System is idle and immediately armable again.
	if sess.Armed() {
		t.Fatal("session armed after failed cycle")
	}
	if _, err := c.Toggle(); err != nil {
		t.Fatalf("re-arm after failure: %v", err)
	}
	if !sess.Armed() {
		t.Error("session not armed on next cycle")
	}
	sess.DisarmAndDrain()
}

func TestToggleDeliveryFailureIsCaught(t *testing.T) {
	ctx := audio.NewFakeContext()
	sess := NewSession()
	out := &deliverRecorder{err: errors.New("injection denied")}

	c := NewController(sess, Config{
		Open:       fakeOpen(ctx),
		Transcribe: func(context.Context, [][]byte) (string, error) { return "hello", nil },
		Deliver:    out.deliver,
	})

	if _, err := c.Toggle(); err != nil {
		t.Fatalf("Toggle (arm): %v", err)
	}
	ctx.Last().Feed(pcmChunk(512, 1))

	done, err := c.Toggle()
	if err != nil {
		t.Fatalf("Toggle (drain): %v", err)
	}
	waitDone(t, done)

	if sess.Armed() {
		t.Error("session armed after delivery failure")
	}
}

func TestToggleArmFailurePropagates(t *testing.T) {
	ctx := audio.NewFakeContext()
	ctx.OpenErr = errDeviceBusy
	sess := NewSession()

	c := NewController(sess, Config{
		Open:       fakeOpen(ctx),
		Transcribe: func(context.Context, [][]byte) (string, error) { return "", nil },
		Deliver:    func(string) error { return nil },
	})

	if _, err := c.Toggle(); !errors.Is(err, errDeviceBusy) {
		t.Fatalf("Toggle = %v, want device-open error", err)
	}
	if sess.Armed() {
		t.Error("session armed after open failure")
	}
}

func TestRapidTogglesNeverDoubleArm(t *testing.T) {
	ctx := audio.NewFakeContext()
	sess := NewSession()

	c := NewController(sess, Config{
		Open:       fakeOpen(ctx),
		Transcribe: func(context.Context, [][]byte) (string, error) { return "x", nil },
		Deliver:    func(string) error { return nil },
	})

	// Hammer Toggle from several goroutines; every drain task must finish
	// and no cycle may leak an open device.
	var wg sync.WaitGroup
	var mu sync.Mutex
	var dones []<-chan struct{}
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			done, err := c.Toggle()
			if err != nil {
				t.Errorf("Toggle: %v", err)
			}
			if done != nil {
				mu.Lock()
				dones = append(dones, done)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	for _, done := range dones {
		waitDone(t, done)
	}
	sess.DisarmAndDrain()

	stillOpen := 0
	for _, dev := range ctx.Captures() {
		if !dev.Closed() {
			stillOpen++
		}
	}
	if stillOpen != 0 {
		t.Errorf("%d device handles leaked", stillOpen)
	}
}
