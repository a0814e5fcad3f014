package gemini

import (
	"context"

	"github.com/fwojciec/docagent"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

var _ docagent.TokenCounter = (*TokenCounter)(nil)

// TokenCounter counts tokens offline using the Gemini tokenizer.
type TokenCounter struct {
	tok   *tokenizer.LocalTokenizer
	model string
}

// NewTokenCounter creates a TokenCounter for model. Models the local
// tokenizer does not know, such as those served through the OpenAI
// transport, are approximated with DefaultModel's vocabulary.
func NewTokenCounter(model string) (*TokenCounter, error) {
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		if model == DefaultModel {
			return nil, err
		}
		model = DefaultModel
		if tok, err = tokenizer.NewLocalTokenizer(model); err != nil {
			return nil, err
		}
	}
	return &TokenCounter{tok: tok, model: model}, nil
}

// Model returns the model whose vocabulary is used for counting.
func (tc *TokenCounter) Model() string {
	return tc.model
}

// CountTokens counts the number of tokens in the given text.
func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}

	result, err := tc.tok.CountTokens([]*genai.Content{genai.NewContentFromText(text, genai.RoleUser)}, nil)
	if err != nil {
		return 0, err
	}

	return int(result.TotalTokens), nil
}
