package vertex

import (
	"context"

	"cloud.google.com/go/vertexai/genai"
)

// apiClient sends a chat to Vertex AI. history holds every turn but the last.
type apiClient interface {
	SendMessage(ctx context.Context, model string, history []*genai.Content, last string) (*genai.GenerateContentResponse, error)
	Close() error
}

type realAPIClient struct {
	client      *genai.Client
	temperature *float32
	maxTokens   *int32
}

func (r *realAPIClient) SendMessage(ctx context.Context, model string, history []*genai.Content, last string) (*genai.GenerateContentResponse, error) {
	m := r.client.GenerativeModel(model)
	if r.temperature != nil {
		m.SetTemperature(*r.temperature)
	}
	if r.maxTokens != nil {
		m.SetMaxOutputTokens(*r.maxTokens)
	}

	cs := m.StartChat()
	cs.History = history
	return cs.SendMessage(ctx, genai.Text(last))
}

func (r *realAPIClient) Close() error {
	return r.client.Close()
}
