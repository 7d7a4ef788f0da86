package ai

import (
	"context"

	openai "github.com/sashabaranov/go-openai"

	"github.com/hxaxnxa/Image-to-React/internal/ai/prompts"
	"github.com/hxaxnxa/Image-to-React/internal/normalize"
	"github.com/hxaxnxa/Image-to-React/internal/types"
	"github.com/hxaxnxa/Image-to-React/pkg/logger"
)

// maxRefineAttempts bounds the refine-and-resend loop: when the
// structural validator reports missing properties, the model gets at
// most this many chances to repair its output before the normalizer's
// fallback stands.
const maxRefineAttempts = 2

// GenerateCode turns a generation request into normalized code for its
// target format. Normalization never fails; a Fallback result means the
// model output was unusable even after the bounded refine attempts.
func (g *Generator) GenerateCode(ctx context.Context, req types.GenerationRequest) (types.NormalizedCode, error) {
	prompt, err := prompts.BuildCodePrompt(req)
	if err != nil {
		return types.NormalizedCode{}, err
	}

	raw, err := g.invoke(ctx, g.codeRequest(prompt))
	if err != nil {
		return types.NormalizedCode{}, err
	}

	code := normalize.Normalize(types.RawModelOutput{Text: raw}, req.CodeFormat)
	for attempt := 1; attempt <= maxRefineAttempts && code.Fallback; attempt++ {
		missing := normalize.MissingProperties(normalize.StripFences(raw), req.CodeFormat)
		if len(missing) == 0 {
			missing = []string{"a complete, self-contained component following the original instructions"}
		}
		logger.Infof("Model output for %s was unusable, refining (attempt %d/%d)",
			req.CodeFormat, attempt, maxRefineAttempts)

		refined, err := g.invoke(ctx, g.codeRequest(prompts.RefinePrompt(raw, missing)))
		if err != nil {
			// The fallback from the previous output is still the best
			// answer available; the refine failure only costs the repair.
			logger.Warnf("Refine attempt failed: %v", err)
			break
		}
		raw = refined
		code = normalize.Normalize(types.RawModelOutput{Text: raw}, req.CodeFormat)
	}

	if code.Fallback {
		logger.Warnf("Normalization fell back to the placeholder component for format %s", req.CodeFormat)
	}
	return code, nil
}

func (g *Generator) codeRequest(prompt string) openai.ChatCompletionRequest {
	return openai.ChatCompletionRequest{
		Model: g.modelID,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompts.CodeGenerationSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   4096,
		Temperature: 0.3,
	}
}
