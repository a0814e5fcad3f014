// Package gemini implements the model transport and token counting on top
// of the Google Gen AI SDK.
package gemini

import (
	"context"
	"errors"
	"net/http"

	"github.com/fwojciec/docagent"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Transport implements docagent.Transport at compile time.
var _ docagent.Transport = (*Transport)(nil)

// Transport implements docagent.Transport using Google Gemini.
type Transport struct {
	client *genai.Client
}

// NewTransport creates a new Transport.
func NewTransport(client *genai.Client) *Transport {
	return &Transport{client: client}
}

// Send generates content for req and returns the text parts of the first
// candidate.
func (t *Transport) Send(ctx context.Context, req *docagent.Request) (*docagent.Response, error) {
	result, err := t.client.Models.GenerateContent(ctx, req.Model,
		[]*genai.Content{genai.NewContentFromText(req.Content, genai.RoleUser)},
		BuildConfig(req),
	)
	if err != nil {
		return nil, classifyError(ctx, err)
	}
	return &docagent.Response{Parts: TextParts(result)}, nil
}

// BuildConfig returns the GenerateContentConfig for req.
func BuildConfig(req *docagent.Request) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(req.MaxTokens),
	}
	if req.System != "" {
		config.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	return config
}

// TextParts returns the text parts of the first candidate, skipping
// thought summaries.
func TextParts(result *genai.GenerateContentResponse) []string {
	if result == nil || len(result.Candidates) == 0 {
		return nil
	}
	content := result.Candidates[0].Content
	if content == nil {
		return nil
	}

	var parts []string
	for _, p := range content.Parts {
		if p == nil || p.Thought || p.Text == "" {
			continue
		}
		parts = append(parts, p.Text)
	}
	return parts
}

// classifyError maps SDK errors to application codes. Throttling becomes
// ERATELIMIT so the client can back off; everything else is EUPSTREAM.
func classifyError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusTooManyRequests || apiErr.Status == "RESOURCE_EXHAUSTED" {
			return docagent.Errorf(docagent.ERATELIMIT, "gemini: %s", apiErr.Message)
		}
		return docagent.Errorf(docagent.EUPSTREAM, "gemini: %d %s", apiErr.Code, apiErr.Message)
	}
	return docagent.Errorf(docagent.EUPSTREAM, "gemini: %v", err)
}
