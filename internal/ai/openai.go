package ai

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/d60-Lab/quickai/config"
)

// completionTemperature matches the provider setting the product was tuned
// against.
const completionTemperature = 0.7

// OpenAIClient implements TextCompleter over any OpenAI-compatible endpoint
// (the default config points it at Gemini's compatibility layer).
type OpenAIClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIClient(cfg config.OpenAIConfig) *OpenAIClient {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &OpenAIClient{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
	}
}

func (c *OpenAIClient) CompleteText(ctx context.Context, prompt string, maxTokens int) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: completionTemperature,
	}
	if maxTokens > 0 {
		req.MaxTokens = maxTokens
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%w: chat completion: %v", ErrUpstream, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: completion returned no choices", ErrUpstream)
	}
	return resp.Choices[0].Message.Content, nil
}
