package transcriber

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
)

const defaultGroqModel = "whisper-large-v3-turbo"

// Groq transcribes through Groq's OpenAI-compatible whisper endpoint.
type Groq struct {
	client *TracedClient
	apiURL string
	apiKey string
	model  string
	lang   string
}

func NewGroq(apiKey, model, language string) *Groq {
	if model == "" {
		model = defaultGroqModel
	}
	g := &Groq{
		client: NewTracedClient(),
		apiURL: "https://api.groq.com/openai/v1/audio/transcriptions",
		apiKey: apiKey,
		model:  model,
		lang:   language,
	}
	go g.client.Warm(g.apiURL)
	return g
}

func (g *Groq) Name() string { return "groq" }

func (g *Groq) Transcribe(ctx context.Context, audio []byte, format string) (*Result, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", "audio."+format)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(audio); err != nil {
		return nil, err
	}

	writer.WriteField("model", g.model)
	writer.WriteField("response_format", "json")
	if g.lang != "" {
		writer.WriteField("language", g.lang)
	}
	writer.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.apiURL, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("groq API error %d: %s", resp.StatusCode, string(resp.Body))
	}

	var gResp struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(resp.Body, &gResp); err != nil {
		return nil, fmt.Errorf("groq response parse error: %w", err)
	}

	remaining := firstNonEmpty(resp.Header, "x-ratelimit-remaining-requests")
	limit := firstNonEmpty(resp.Header, "x-ratelimit-limit-requests")

	return &Result{
		Text:      gResp.Text,
		Metrics:   resp.Metrics,
		RateLimit: remaining + "/" + limit,
	}, nil
}
