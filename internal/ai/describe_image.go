package ai

import (
	"context"
	"encoding/base64"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/hxaxnxa/Image-to-React/internal/ai/prompts"
	"github.com/hxaxnxa/Image-to-React/internal/types"
	"github.com/hxaxnxa/Image-to-React/pkg/logger"
)

// DescribeImage asks the vision model for an implementable description
// of the screenshot. The image travels inline as a base64 data URL.
func (g *Generator) DescribeImage(ctx context.Context, image []byte, mimeType string, device types.DeviceType) (string, error) {
	if len(image) == 0 {
		return "", fmt.Errorf("%w: image is empty", types.ErrConfiguration)
	}
	if mimeType == "" {
		mimeType = "image/png"
	}

	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image))

	req := openai.ChatCompletionRequest{
		Model: g.visionModelID,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompts.DescriptionSystemPrompt},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: prompts.DescriptionPrompt(device)},
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: dataURL, Detail: openai.ImageURLDetailAuto},
					},
				},
			},
		},
		MaxTokens:   1500,
		Temperature: 0.4,
	}

	description, err := g.invoke(ctx, req)
	if err != nil {
		return "", fmt.Errorf("describing screenshot: %w", err)
	}

	logger.Debugf("Vision model produced a %d-character description", len(description))
	return description, nil
}
