package transcriber

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"
)

// Result is one completed remote transcription. Text is returned exactly as
// the API produced it; trimming is the pipeline's job.
type Result struct {
	Text      string
	Metrics   *NetworkMetrics
	RateLimit string // "remaining/limit" or empty
}

// Transcriber is the remote speech-to-text collaborator. Implementations
// make exactly one attempt per call; retry policy, if any, belongs to the
// caller.
type Transcriber interface {
	Name() string
	Transcribe(ctx context.Context, audio []byte, format string) (*Result, error)
}

// New selects a provider from the environment: OpenAI when OPENAI_API_KEY
// is set, otherwise Groq. An empty model picks the provider default.
func New(model, language string) (Transcriber, error) {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return NewOpenAI(key, model, language), nil
	}
	if key := os.Getenv("GROQ_API_KEY"); key != "" {
		return NewGroq(key, model, language), nil
	}
	return nil, fmt.Errorf("set OPENAI_API_KEY or GROQ_API_KEY environment variable")
}

type NetworkMetrics struct {
	DNS         time.Duration
	ConnWait    time.Duration
	TCP         time.Duration
	TLS         time.Duration
	ReqHeaders  time.Duration
	ReqBody     time.Duration
	TTFB        time.Duration
	Download    time.Duration
	Total       time.Duration
	ConnReused  bool
	TLSProtocol string
}

func (m *NetworkMetrics) Sum() time.Duration {
	return m.ConnWait + m.DNS + m.TCP + m.TLS + m.ReqHeaders + m.ReqBody + m.TTFB + m.Download
}

func firstNonEmpty(h http.Header, keys ...string) string {
	for _, k := range keys {
		if v := h.Get(k); v != "" {
			return v
		}
	}
	return "?"
}
