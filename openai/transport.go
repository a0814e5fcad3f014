// Package openai implements the model transport for OpenAI-compatible chat
// completion endpoints.
package openai

import (
	"context"
	"errors"
	"net/http"

	"github.com/fwojciec/docagent"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// Ensure Transport implements docagent.Transport at compile time.
var _ docagent.Transport = (*Transport)(nil)

// Transport implements docagent.Transport using the chat completions API.
type Transport struct {
	client *openai.Client
}

// NewTransport creates a Transport. An empty baseURL targets the OpenAI
// API; any other value points at a compatible server.
func NewTransport(apiKey, baseURL string) *Transport {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		// docagent's client owns the retry policy.
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	client := openai.NewClient(opts...)
	return &Transport{client: &client}
}

// Send issues a chat completion and returns the content of each choice.
func (t *Transport) Send(ctx context.Context, req *docagent.Request) (*docagent.Response, error) {
	completion, err := t.client.Chat.Completions.New(ctx, BuildParams(req))
	if err != nil {
		return nil, classifyError(ctx, err)
	}

	var parts []string
	for _, choice := range completion.Choices {
		if choice.Message.Content == "" {
			continue
		}
		parts = append(parts, choice.Message.Content)
	}
	return &docagent.Response{Parts: parts}, nil
}

// BuildParams converts req to chat completion parameters.
func BuildParams(req *docagent.Request) openai.ChatCompletionNewParams {
	var messages []openai.ChatCompletionMessageParamUnion
	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}
	messages = append(messages, openai.UserMessage(req.Content))

	return openai.ChatCompletionNewParams{
		Model:               req.Model,
		Messages:            messages,
		MaxCompletionTokens: openai.Int(int64(req.MaxTokens)),
	}
}

func classifyError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode == http.StatusTooManyRequests {
			return docagent.Errorf(docagent.ERATELIMIT, "openai: %s", apiErr.Message)
		}
		return docagent.Errorf(docagent.EUPSTREAM, "openai: %d %s", apiErr.StatusCode, apiErr.Message)
	}
	return docagent.Errorf(docagent.EUPSTREAM, "openai: %v", err)
}
