package transcriber

import (
	"bytes"
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const defaultOpenAIModel = openai.Whisper1

// OpenAI transcribes through the OpenAI audio transcription endpoint.
type OpenAI struct {
	client *openai.Client
	model  string
	lang   string
}

func NewOpenAI(apiKey, model, language string) *OpenAI {
	if model == "" {
		model = defaultOpenAIModel
	}
	return &OpenAI{
		client: openai.NewClient(apiKey),
		model:  model,
		lang:   language,
	}
}

func (o *OpenAI) Name() string { return "openai" }

func (o *OpenAI) Transcribe(ctx context.Context, audio []byte, format string) (*Result, error) {
	resp, err := o.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    o.model,
		FilePath: "audio." + format, // filename hint; the payload is the reader
		Reader:   bytes.NewReader(audio),
		Language: o.lang,
	})
	if err != nil {
		return nil, fmt.Errorf("openai transcription: %w", err)
	}
	return &Result{Text: resp.Text}, nil
}
