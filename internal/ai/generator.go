// Package ai wraps the model provider: a vision call that describes a
// screenshot and a text call that generates component code, with the
// output normalizer applied before anything leaves this package.
package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/hxaxnxa/Image-to-React/internal/types"
	"github.com/hxaxnxa/Image-to-React/internal/utils"
	"github.com/hxaxnxa/Image-to-React/pkg/logger"
)

// completionFunc is the seam tests use to stub the provider; production
// code points it at the OpenAI client.
type completionFunc func(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)

type Generator struct {
	complete      completionFunc
	modelID       string
	visionModelID string
	configured    bool
}

// NewGenerator builds a generator against the configured provider.
// baseURL is an optional endpoint override.
func NewGenerator(apiKey, baseURL, modelID, visionModelID string) *Generator {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	client := openai.NewClientWithConfig(cfg)

	if modelID == "" {
		modelID = openai.GPT4o
	}
	if visionModelID == "" {
		visionModelID = modelID
	}

	return &Generator{
		complete:      client.CreateChatCompletion,
		modelID:       modelID,
		visionModelID: visionModelID,
		configured:    apiKey != "",
	}
}

// NewGeneratorWithCompletion injects a completion function directly,
// used by tests to avoid a live network dependency.
func NewGeneratorWithCompletion(complete func(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)) *Generator {
	return &Generator{
		complete:      complete,
		modelID:       openai.GPT4o,
		visionModelID: openai.GPT4o,
		configured:    true,
	}
}

// invoke runs one chat completion with the bounded transient retry and
// returns the completion text. The returned text satisfies no
// structural property; all validation belongs to the normalizer.
func (g *Generator) invoke(ctx context.Context, req openai.ChatCompletionRequest) (string, error) {
	if !g.configured {
		return "", fmt.Errorf("%w: model API key is not configured", types.ErrConfiguration)
	}

	resp, err := g.complete(ctx, req)
	if err != nil && utils.ShouldRetry(err) {
		logger.Warnf("Model call failed with a transient error, retrying once: %v", err)
		time.Sleep(2 * time.Second)
		resp, err = g.complete(ctx, req)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", types.ErrModelInvocation, err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		logger.Warnf("Model returned an empty completion, usage: %+v", resp.Usage)
		return "", fmt.Errorf("%w: %v", types.ErrModelInvocation, errors.New("empty completion"))
	}
	return resp.Choices[0].Message.Content, nil
}
