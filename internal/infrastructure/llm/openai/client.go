// Package openai implements the RecommendationRanker port on top of the
// OpenAI chat-completions API.
package openai

import (
	"context"
	"fmt"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/kirillkom/anime-recommender/internal/infrastructure/resilience"
)

// Client wraps the reasoning service behind the single low-level call the
// ranking strategies need: system prompt, user prompt, temperature, JSON out.
type Client struct {
	api   *goopenai.Client
	model string
	exec  *resilience.Executor
}

// New builds a client for the hosted API; a non-empty baseURL points it at an
// OpenAI-compatible proxy instead.
func New(apiKey, baseURL, model string, exec *resilience.Executor) *Client {
	clientCfg := goopenai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientCfg.BaseURL = baseURL
	}
	return &Client{
		api:   goopenai.NewClientWithConfig(clientCfg),
		model: model,
		exec:  exec,
	}
}

func (c *Client) complete(ctx context.Context, systemPrompt, userPrompt string, temperature float32) (string, error) {
	request := goopenai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: temperature,
		ResponseFormat: &goopenai.ChatCompletionResponseFormat{
			Type: goopenai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: goopenai.ChatMessageRoleUser, Content: userPrompt},
		},
	}

	var content string
	err := c.exec.Execute(ctx, "openai_complete", func(ctx context.Context) error {
		response, err := c.api.CreateChatCompletion(ctx, request)
		if err != nil {
			return fmt.Errorf("openai chat completion: %w", err)
		}
		if len(response.Choices) == 0 {
			return fmt.Errorf("openai returned no choices")
		}
		content = response.Choices[0].Message.Content
		return nil
	}, classifyCompletionError)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(content), nil
}
