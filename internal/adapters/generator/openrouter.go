package generator

import (
	"context"
	"fmt"

	"github.com/revrost/go-openrouter"
)

type OpenRouterGenerator struct {
	client       *openrouter.Client
	systemPrompt string
	model        string
}

func NewOpenRouterGenerator(apiKey, systemPrompt, model string) *OpenRouterGenerator {
	return &OpenRouterGenerator{
		systemPrompt: systemPrompt,
		model:        model,
		client: openrouter.NewClient(
			apiKey,
			openrouter.WithXTitle("borgo"),
		),
	}
}

func (c *OpenRouterGenerator) Complete(ctx context.Context, prompt string) (string, error) {
	ccr := openrouter.ChatCompletionRequest{
		Model: c.model,
		Messages: []openrouter.ChatCompletionMessage{
			{
				Role:    openrouter.ChatMessageRoleSystem,
				Content: openrouter.Content{Text: c.systemPrompt},
			},
			{
				Role:    openrouter.ChatMessageRoleUser,
				Content: openrouter.Content{Text: prompt},
			},
		},
	}

	resp, err := c.client.CreateChatCompletion(ctx, ccr)
	if err != nil {
		return "", fmt.Errorf("openrouter API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openrouter returned no choices")
	}

	return resp.Choices[0].Message.Content.Text, nil
}
