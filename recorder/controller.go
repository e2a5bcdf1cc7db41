package recorder

import (
	"context"
	"errors"

	"github.com/ylamidon/whisper-voice/log"
)

// Config wires the controller's collaborators. Transcribe and Deliver run
// on the background goroutine and may block. Report receives one
// user-visible line per outcome; nil means no console output.
type Config struct {
	Open       OpenFunc
	Transcribe func(ctx context.Context, chunks [][]byte) (string, error)
	Deliver    func(text string) error
	Report     func(format string, args ...any)
}

// Controller is the hotkey-facing state machine. Each Toggle either arms
// the session or detaches a goroutine that drains it, transcribes, and
// delivers — so the hotkey listener is never blocked on I/O.
type Controller struct {
	session    *Session
	open       OpenFunc
	transcribe func(context.Context, [][]byte) (string, error)
	deliver    func(string) error
	report     func(string, ...any)
}

func NewController(session *Session, cfg Config) *Controller {
	report := cfg.Report
	if report == nil {
		report = func(string, ...any) {}
	}
	return &Controller{
		session:    session,
		open:       cfg.Open,
		transcribe: cfg.Transcribe,
		deliver:    cfg.Deliver,
		report:     report,
	}
}

// Toggle handles one hotkey press. Idle → arm the capture and return; the
// device-open error is the only failure that propagates synchronously,
// since Toggle runs on the hotkey listener. Recording → spawn the
// drain/transcribe/deliver task and return immediately; the returned
// channel closes when that task finishes and is nil on the arming edge.
// Failures inside the task are reported, never propagated: whatever
// happens, the next press finds the system idle or recording, never
// wedged.
func (c *Controller) Toggle() (<-chan struct{}, error) {
	err := c.session.Arm(c.open)
	switch {
	case err == nil:
		log.Info("recording_start")
		c.report("🎙  Recording... (press the hotkey again to stop)")
		return nil, nil

	case errors.Is(err, ErrAlreadyArmed):
		done := make(chan struct{})
		go func() {
			defer close(done)
			c.finishCycle()
		}()
		return done, nil

	default:
		log.Errorf("recording start failed: %v", err)
		return nil, err
	}
}

// finishCycle runs once per recording→idle transition. It owns the drained
// chunks exclusively; no other context observes them again.
func (c *Controller) finishCycle() {
	chunks := c.session.DisarmAndDrain()
	log.Info("recording_stop")

	if len(chunks) == 0 {
		log.Warn("no audio captured")
		c.report("⚠  No audio captured.")
		return
	}

	c.report("⏳ Transcribing...")
	text, err := c.transcribe(context.Background(), chunks)
	if err != nil {
		log.Errorf("transcription failed: %v", err)
		c.report("❌ Transcription failed: %v", err)
		return
	}

	if text == "" {
		log.Warn("empty transcript")
		c.report("⚠  Nothing transcribed.")
		return
	}

	if err := c.deliver(text); err != nil {
		log.Errorf("delivering transcript: %v", err)
		c.report("❌ Could not paste transcript: %v", err)
		return
	}

	log.TranscriptionText(text)
	c.report("✅ %s", text)
}
