package claude_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/secagent/llm"
	"github.com/m-mizutani/secagent/llm/claude"
)

type fakeAPIClient struct {
	messagesNew func(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error)
}

func (f *fakeAPIClient) MessagesNew(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error) {
	return f.messagesNew(ctx, params)
}

var _ claude.APIClient = &fakeAPIClient{}

func newMessage(t *testing.T, raw string) *anthropic.Message {
	var msg anthropic.Message
	gt.NoError(t, json.Unmarshal([]byte(raw), &msg))
	return &msg
}

func TestGenerate(t *testing.T) {
	t.Run("text blocks are concatenated", func(t *testing.T) {
		var got anthropic.MessageNewParams
		client := claude.NewWithAPIClient(&fakeAPIClient{
			messagesNew: func(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error) {
				got = params
				return newMessage(t, `{
					"id": "msg_01",
					"type": "message",
					"role": "assistant",
					"model": "claude-test",
					"content": [
						{"type": "text", "text": "X 1.2.0 "},
						{"type": "text", "text": "is affected"}
					],
					"stop_reason": "end_turn",
					"usage": {"input_tokens": 10, "output_tokens": 4}
				}`), nil
			},
		}, claude.WithModel("claude-test"), claude.WithMaxTokens(1024))

		text, err := client.Generate(context.Background(), []string{"question", "call", "result"})
		gt.NoError(t, err)
		gt.Equal(t, text, "X 1.2.0 is affected")
		gt.Equal(t, string(got.Model), "claude-test")
		gt.Equal(t, got.MaxTokens, int64(1024))
		gt.A(t, got.Messages).Length(3)
		gt.Equal(t, got.Messages[0].Role, anthropic.MessageParamRoleUser)
		gt.Equal(t, got.Messages[1].Role, anthropic.MessageParamRoleAssistant)
		gt.Equal(t, got.Messages[2].Role, anthropic.MessageParamRoleUser)
	})

	t.Run("api error", func(t *testing.T) {
		client := claude.NewWithAPIClient(&fakeAPIClient{
			messagesNew: func(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error) {
				return nil, errors.New("overloaded")
			},
		})
		_, err := client.Generate(context.Background(), []string{"q"})
		gt.Error(t, err)
		gt.S(t, err.Error()).Contains("overloaded")
	})

	t.Run("invalid turns", func(t *testing.T) {
		client := claude.NewWithAPIClient(&fakeAPIClient{})
		_, err := client.Generate(context.Background(), []string{"q", "a"})
		gt.True(t, errors.Is(err, llm.ErrInvalidTurns))
	})
}

func TestNew(t *testing.T) {
	t.Run("api key is required", func(t *testing.T) {
		_, err := claude.New(context.Background(), "")
		gt.Error(t, err)
	})

	t.Run("base url", func(t *testing.T) {
		client, err := claude.New(context.Background(), "dummy", claude.WithBaseURL("http://localhost:8080"))
		gt.NoError(t, err)
		gt.Equal(t, claude.GetBaseURL(client), "http://localhost:8080")
	})
}

func TestClaudeLive(t *testing.T) {
	apiKey, ok := os.LookupEnv("TEST_CLAUDE_API_KEY")
	if !ok {
		t.Skip("TEST_CLAUDE_API_KEY is not set")
	}

	client, err := claude.New(context.Background(), apiKey)
	gt.NoError(t, err)

	text, err := client.Generate(context.Background(), []string{"Reply with the single word: pong"})
	gt.NoError(t, err)
	gt.S(t, text).Contains("pong")
}
